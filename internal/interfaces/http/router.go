package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalogo-servicios/internal/application/admin"
	"github.com/jhoicas/catalogo-servicios/internal/application/search"
	"github.com/jhoicas/catalogo-servicios/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Storefront   *usecase.StorefrontUseCase
	Orchestrator *admin.Orchestrator
	Sessions     *admin.SessionStore
	Engine       *search.Engine
	Log          zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Buscador público
	catalogo := api.Group("/catalogo")
	catalogHandler := NewCatalogHandler(deps.Storefront)
	catalogo.Get("/items", catalogHandler.Items)
	catalogo.Get("/categorias", catalogHandler.Categorias)
	catalogo.Get("/lista-precios.pdf", catalogHandler.PriceList)

	// Panel de administración
	adminHandler := NewAdminHandler(deps.Orchestrator, deps.Sessions, deps.Engine, deps.Log)
	api.Post("/admin/sesiones", adminHandler.CreateSession)

	sesion := api.Group("/admin/sesiones/:sid", SessionMiddleware(deps.Sessions))
	sesion.Get("/", adminHandler.SessionState)
	sesion.Delete("/", adminHandler.DeleteSession)
	sesion.Post("/recargar", adminHandler.Reload)
	sesion.Get("/items", adminHandler.Items)
	sesion.Put("/filtros", adminHandler.SetFilters)
	sesion.Delete("/filtros", adminHandler.ResetFilters)
	sesion.Put("/expansion", adminHandler.SetExpansion)
	sesion.Put("/modales", adminHandler.SetModal)
	sesion.Put("/ediciones", adminHandler.SetEdit)
	sesion.Post("/operaciones/:kind/solicitar", adminHandler.Request)
	sesion.Post("/operaciones/:kind/confirmar", adminHandler.Confirm)
	sesion.Post("/operaciones/:kind/cancelar", adminHandler.Cancel)
	sesion.Post("/servicios/:id/guardar", adminHandler.SaveServicio)
}
