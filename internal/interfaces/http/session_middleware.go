package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-servicios/internal/application/admin"
)

// LocalSession clave de c.Locals con la *admin.Session de la petición.
const LocalSession = "admin_session"

// SessionMiddleware resuelve la sesión del panel a partir del parámetro :sid.
func SessionMiddleware(store *admin.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Params("sid")
		if sid == "" {
			return badRequest(c, "MISSING_SESSION", "id de sesión requerido")
		}
		s, err := store.Get(sid)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// GetSession devuelve la sesión cargada por SessionMiddleware.
func GetSession(c *fiber.Ctx) *admin.Session {
	s, _ := c.Locals(LocalSession).(*admin.Session)
	return s
}
