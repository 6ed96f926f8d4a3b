package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalogo-servicios/internal/application/admin"
	"github.com/jhoicas/catalogo-servicios/internal/application/dto"
	"github.com/jhoicas/catalogo-servicios/internal/application/search"
	"github.com/jhoicas/catalogo-servicios/internal/application/usecase"
)

// AdminHandler expone el panel de administración: sesiones con su estado y las
// operaciones de dos fases (solicitar y confirmar).
type AdminHandler struct {
	orch     *admin.Orchestrator
	sessions *admin.SessionStore
	engine   *search.Engine
	log      zerolog.Logger
}

// NewAdminHandler construye el handler.
func NewAdminHandler(orch *admin.Orchestrator, sessions *admin.SessionStore, engine *search.Engine, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{orch: orch, sessions: sessions, engine: engine, log: log}
}

// SessionResponse estado de la sesión y, si hubo, los avisos de la petición.
type SessionResponse struct {
	admin.State
	Notificaciones []dto.NotificationResponse `json:"notificaciones,omitempty"`
}

// SolicitudResponse resultado de solicitar una operación.
type SolicitudResponse struct {
	Abierta   bool                   `json:"abierta"`
	Operacion admin.PendingOperation `json:"operacion"`
}

func notifications(col *admin.Collector) []dto.NotificationResponse {
	list := col.Notifications()
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{Tipo: n.Tipo, Mensaje: n.Mensaje})
	}
	return out
}

func cascadeResponse(res *admin.CascadeResult) *dto.CascadeResponse {
	if res == nil {
		return nil
	}
	out := &dto.CascadeResponse{
		CategoriaID:          res.CategoriaID,
		ServiciosEliminados:  res.Succeeded,
		SubcategoriasLimpias: res.SubcategoriasRemoved,
	}
	if out.ServiciosEliminados == nil {
		out.ServiciosEliminados = []int64{}
	}
	if f := res.Failed; f != nil {
		out.FalloPaso = string(f.Step)
		out.FalloServicioID = f.ServicioID
		out.FalloServicioNombre = f.ServicioNombre
	}
	return out
}

// ── Sesiones ──────────────────────────────────────────────────────────────────

// CreateSession godoc
// @Summary      Abrir sesión del panel
// @Description  Crea la sesión y hace la carga inicial de categorías, servicios, ítems y características.
// @Tags         admin
// @Produce      json
// @Success      201  {object}  SessionResponse
// @Router       /api/admin/sesiones [post]
func (h *AdminHandler) CreateSession(c *fiber.Ctx) error {
	s := h.sessions.Create()
	var avisos []dto.NotificationResponse
	if err := h.orch.Load(c.UserContext(), s); err != nil {
		// La sesión queda abierta; el panel puede reintentar con /recargar.
		avisos = append(avisos, dto.NotificationResponse{Tipo: admin.NotificationError, Mensaje: "No se pudieron cargar los datos del catálogo."})
	}
	return c.Status(fiber.StatusCreated).JSON(SessionResponse{State: s.Snapshot(), Notificaciones: avisos})
}

// SessionState godoc
// @Summary      Estado de la sesión
// @Tags         admin
// @Produce      json
// @Param        sid  path  string  true  "ID de sesión"
// @Success      200  {object}  SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/sesiones/{sid} [get]
func (h *AdminHandler) SessionState(c *fiber.Ctx) error {
	return c.JSON(SessionResponse{State: GetSession(c).Snapshot()})
}

// DeleteSession godoc
// @Summary      Cerrar sesión del panel
// @Tags         admin
// @Param        sid  path  string  true  "ID de sesión"
// @Success      204
// @Router       /api/admin/sesiones/{sid} [delete]
func (h *AdminHandler) DeleteSession(c *fiber.Ctx) error {
	h.sessions.Delete(GetSession(c).ID())
	return c.SendStatus(fiber.StatusNoContent)
}

// Reload godoc
// @Summary      Recargar datos del catálogo
// @Description  Vuelve a leer las cuatro listas conservando las secciones abiertas.
// @Tags         admin
// @Produce      json
// @Param        sid  path  string  true  "ID de sesión"
// @Success      200  {object}  SessionResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/admin/sesiones/{sid}/recargar [post]
func (h *AdminHandler) Reload(c *fiber.Ctx) error {
	s := GetSession(c)
	err := admin.PreserveAcross(s.ExpansionSnapshot, s.RestoreExpansion, func() error {
		return h.orch.Refresh(c.UserContext(), s)
	})
	if err != nil {
		h.log.Error().Err(err).Str("session", s.ID()).Msg("admin: recarga fallida")
		return writeError(c, err)
	}
	s.MarkLoaded()
	return c.JSON(SessionResponse{State: s.Snapshot()})
}

// ── Vista ─────────────────────────────────────────────────────────────────────

// Items godoc
// @Summary      Ítems filtrados de la sesión
// @Description  Aplica los filtros guardados en la sesión sobre la copia local del catálogo.
// @Tags         admin
// @Produce      json
// @Param        sid  path  string  true  "ID de sesión"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/admin/sesiones/{sid}/items [get]
func (h *AdminHandler) Items(c *fiber.Ctx) error {
	s := GetSession(c)
	f := s.Filters()
	filtered := h.engine.FilterItems(s.Items(), &f, s.Servicios())
	out := make([]dto.ItemResponse, 0, len(filtered))
	for _, it := range filtered {
		out = append(out, usecase.ToItemResponse(it, f.SearchTerm))
	}
	return c.JSON(dto.ItemListResponse{
		Items:        out,
		Total:        len(out),
		FiltroActivo: search.IsFilterActive(&f),
		Page:         dto.PageResponse{Limit: len(out), Total: len(out)},
	})
}

// SetFilters godoc
// @Summary      Guardar filtros
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        sid   path  string              true  "ID de sesión"
// @Param        body  body  dto.FiltersRequest  true  "Filtros"
// @Success      200  {object}  search.Filters
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/sesiones/{sid}/filtros [put]
func (h *AdminHandler) SetFilters(c *fiber.Ctx) error {
	var in dto.FiltersRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	f := search.Filters{
		SearchTerm:  in.SearchTerm,
		MinPrice:    in.MinPrice,
		MaxPrice:    in.MaxPrice,
		ServicioID:  in.ServicioID,
		CategoriaID: in.CategoriaID,
	}
	if f.ServicioID == "" {
		f.ServicioID = search.AllFilter
	}
	if f.CategoriaID == "" {
		f.CategoriaID = search.AllFilter
	}
	s := GetSession(c)
	s.SetFilters(f)
	return c.JSON(s.Filters())
}

// ResetFilters godoc
// @Summary      Restablecer filtros
// @Tags         admin
// @Produce      json
// @Param        sid  path  string  true  "ID de sesión"
// @Success      200  {object}  search.Filters
// @Router       /api/admin/sesiones/{sid}/filtros [delete]
func (h *AdminHandler) ResetFilters(c *fiber.Ctx) error {
	s := GetSession(c)
	s.ResetFilters()
	return c.JSON(s.Filters())
}

// SetExpansion godoc
// @Summary      Abrir o cerrar una sección
// @Tags         admin
// @Accept       json
// @Param        sid   path  string                true  "ID de sesión"
// @Param        body  body  dto.ExpansionRequest  true  "Sección"
// @Success      200  {object}  admin.Expansion
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/sesiones/{sid}/expansion [put]
func (h *AdminHandler) SetExpansion(c *fiber.Ctx) error {
	var in dto.ExpansionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	s := GetSession(c)
	switch in.Tipo {
	case "servicio":
		s.SetServicioExpanded(in.ID, in.Abierto)
	case "item":
		s.SetItemExpanded(in.ID, in.Abierto)
	default:
		return badRequest(c, "VALIDATION", "tipo debe ser servicio o item")
	}
	return c.JSON(s.ExpansionSnapshot())
}

// SetModal godoc
// @Summary      Mostrar u ocultar un modal
// @Tags         admin
// @Accept       json
// @Param        sid   path  string            true  "ID de sesión"
// @Param        body  body  dto.ModalRequest  true  "Modal"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/sesiones/{sid}/modales [put]
func (h *AdminHandler) SetModal(c *fiber.Ctx) error {
	var in dto.ModalRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	m, ok := admin.ParseModal(in.Modal)
	if !ok {
		return badRequest(c, "VALIDATION", "modal desconocido: "+in.Modal)
	}
	GetSession(c).SetModal(m, in.Visible)
	return c.SendStatus(fiber.StatusNoContent)
}

// SetEdit godoc
// @Summary      Guardar un cambio sin confirmar
// @Description  Nombre de servicio, nombre de subcategoría o precio de ítem. Se confirma con /servicios/{id}/guardar.
// @Tags         admin
// @Accept       json
// @Param        sid   path  string              true  "ID de sesión"
// @Param        body  body  dto.EdicionRequest  true  "Cambio"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/sesiones/{sid}/ediciones [put]
func (h *AdminHandler) SetEdit(c *fiber.Ctx) error {
	var in dto.EdicionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	if in.ID <= 0 {
		return badRequest(c, "VALIDATION", "id requerido")
	}
	s := GetSession(c)
	switch in.Tipo {
	case "servicio":
		s.SetServicioNombreEdit(in.ID, in.Valor)
	case "subcategoria":
		s.SetSubcategoriaNombreEdit(in.ID, in.Valor)
	case "precio":
		s.SetItemPrecioEdit(in.ID, in.Valor)
	default:
		return badRequest(c, "VALIDATION", "tipo debe ser servicio, subcategoria o precio")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Operaciones ───────────────────────────────────────────────────────────────

func operationKind(c *fiber.Ctx) (admin.OperationKind, bool) {
	return admin.ParseOperationKind(c.Params("kind"))
}

// Request godoc
// @Summary      Solicitar una operación
// @Description  Abre la confirmación con el resumen del objetivo. Un objetivo desconocido no abre nada.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        sid   path  string                true  "ID de sesión"
// @Param        kind  path  string                true  "delete_servicio, delete_categoria, delete_item, delete_caracteristica, create_categoria o update_categoria"
// @Param        body  body  dto.SolicitudRequest  false "Objetivo"
// @Success      200  {object}  SolicitudResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/sesiones/{sid}/operaciones/{kind}/solicitar [post]
func (h *AdminHandler) Request(c *fiber.Ctx) error {
	kind, ok := operationKind(c)
	if !ok {
		return badRequest(c, "VALIDATION", "operación desconocida: "+c.Params("kind"))
	}
	var in dto.SolicitudRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", err.Error())
		}
	}
	s := GetSession(c)
	var opened bool
	switch kind {
	case admin.OpDeleteServicio:
		opened = h.orch.RequestDeleteServicio(s, in.ID)
	case admin.OpDeleteCategoria:
		opened = h.orch.RequestDeleteCategoria(s, in.ID)
	case admin.OpDeleteItem:
		opened = h.orch.RequestDeleteItem(s, in.ID)
	case admin.OpDeleteCaracteristica:
		opened = h.orch.RequestDeleteCaracteristica(s, in.ID)
	case admin.OpCreateCategoria:
		opened = h.orch.RequestCreateCategoria(s)
	case admin.OpUpdateCategoria:
		opened = h.orch.RequestUpdateCategoria(s, in.ID)
	default:
		return badRequest(c, "VALIDATION", "la operación no se solicita: "+string(kind))
	}
	return c.JSON(SolicitudResponse{Abierta: opened, Operacion: s.Pending(kind)})
}

// Confirm godoc
// @Summary      Confirmar una operación
// @Description  Ejecuta la operación solicitada. El cuerpo lleva los datos de la categoría en create_categoria y update_categoria.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        sid   path  string  true  "ID de sesión"
// @Param        kind  path  string  true  "Tipo de operación"
// @Success      200  {object}  dto.OperationResponse
// @Failure      400  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.OperationResponse
// @Failure      409  {object}  dto.OperationResponse
// @Failure      422  {object}  dto.OperationResponse
// @Failure      500  {object}  dto.OperationResponse
// @Router       /api/admin/sesiones/{sid}/operaciones/{kind}/confirmar [post]
func (h *AdminHandler) Confirm(c *fiber.Ctx) error {
	kind, ok := operationKind(c)
	if !ok {
		return badRequest(c, "VALIDATION", "operación desconocida: "+c.Params("kind"))
	}
	s := GetSession(c)
	col := &admin.Collector{}
	ctx := c.UserContext()

	var (
		err     error
		cascada *admin.CascadeResult
	)
	switch kind {
	case admin.OpDeleteServicio:
		err = h.orch.ConfirmDeleteServicio(ctx, s, col)
	case admin.OpDeleteCategoria:
		cascada, err = h.orch.ConfirmDeleteCategoria(ctx, s, col)
	case admin.OpDeleteItem:
		err = h.orch.ConfirmDeleteItem(ctx, s, col)
	case admin.OpDeleteCaracteristica:
		err = h.orch.ConfirmDeleteCaracteristica(ctx, s, col)
	case admin.OpCreateCategoria, admin.OpUpdateCategoria:
		var in dto.CategoriaRequest
		if perr := c.BodyParser(&in); perr != nil {
			return badRequest(c, "INVALID_BODY", perr.Error())
		}
		if kind == admin.OpCreateCategoria {
			_, err = h.orch.ConfirmCreateCategoria(ctx, s, col, in)
		} else {
			err = h.orch.ConfirmUpdateCategoria(ctx, s, col, in)
		}
	default:
		return badRequest(c, "VALIDATION", "la operación no se confirma por esta ruta: "+string(kind))
	}
	return h.operationResult(c, err, col, cascada)
}

// Cancel godoc
// @Summary      Cancelar una operación solicitada
// @Tags         admin
// @Param        sid   path  string  true  "ID de sesión"
// @Param        kind  path  string  true  "Tipo de operación"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/sesiones/{sid}/operaciones/{kind}/cancelar [post]
func (h *AdminHandler) Cancel(c *fiber.Ctx) error {
	kind, ok := operationKind(c)
	if !ok {
		return badRequest(c, "VALIDATION", "operación desconocida: "+c.Params("kind"))
	}
	if !h.orch.Cancel(GetSession(c), kind) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OPERATION_IN_PROGRESS", Message: "la operación ya está en curso"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SaveServicio godoc
// @Summary      Guardar los cambios de un servicio
// @Description  Confirma el nombre del servicio, los nombres de sus subcategorías y los precios de sus ítems.
// @Tags         admin
// @Produce      json
// @Param        sid  path  string  true  "ID de sesión"
// @Param        id   path  int     true  "ID del servicio"
// @Success      200  {object}  dto.OperationResponse
// @Failure      400  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.OperationResponse
// @Failure      422  {object}  dto.OperationResponse
// @Router       /api/admin/sesiones/{sid}/servicios/{id}/guardar [post]
func (h *AdminHandler) SaveServicio(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest(c, "VALIDATION", "id de servicio inválido")
	}
	col := &admin.Collector{}
	err = h.orch.SaveServicioEdits(c.UserContext(), GetSession(c), col, id)
	return h.operationResult(c, err, col, nil)
}

// operationResult responde siempre con dto.OperationResponse; el estado HTTP
// refleja la clase de fallo y los avisos son los mismos que vería el panel.
func (h *AdminHandler) operationResult(c *fiber.Ctx, err error, col *admin.Collector, cascada *admin.CascadeResult) error {
	res := dto.OperationResponse{
		OK:             err == nil,
		Notificaciones: notifications(col),
		Cascada:        cascadeResponse(cascada),
	}
	if err != nil {
		status, _ := statusFor(err)
		return c.Status(status).JSON(res)
	}
	return c.JSON(res)
}
