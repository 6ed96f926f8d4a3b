package admin

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/catalogo-servicios/internal/application/search"
	"github.com/jhoicas/catalogo-servicios/internal/domain"
	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

// Session es el estado del panel de un administrador: visibilidad de modales,
// operaciones pendientes, buffers de edición, secciones expandidas, filtros y los
// espejos del catálogo (categorías, servicios, ítems aplanados, características).
//
// Es el único dueño de ese estado; el orquestador y el buscador lo leen y lo
// modifican solo a través de estos métodos. Los espejos se reemplazan enteros.
type Session struct {
	mu sync.Mutex

	id       string
	lastSeen time.Time

	modals  map[Modal]bool
	pending map[OperationKind]PendingOperation

	servicioNombres     map[int64]string
	subcategoriaNombres map[int64]string
	itemPrecios         map[int64]string

	expandedItems     map[int64]bool
	expandedServicios map[int64]bool

	filters     search.Filters
	initialLoad bool

	categorias      []entity.Categoria
	servicios       []entity.Servicio
	items           []entity.ItemDetalle
	caracteristicas []entity.Caracteristica
}

// NewSession crea una sesión vacía, pendiente de la carga inicial.
func NewSession(id string) *Session {
	return &Session{
		id:                  id,
		lastSeen:            time.Now(),
		modals:              make(map[Modal]bool),
		pending:             make(map[OperationKind]PendingOperation),
		servicioNombres:     make(map[int64]string),
		subcategoriaNombres: make(map[int64]string),
		itemPrecios:         make(map[int64]string),
		expandedItems:       make(map[int64]bool),
		expandedServicios:   make(map[int64]bool),
		filters:             search.DefaultFilters(),
		initialLoad:         true,
	}
}

// ID identificador de la sesión.
func (s *Session) ID() string { return s.id }

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// ── Carga inicial ─────────────────────────────────────────────────────────────

// NeedsInitialLoad es true hasta la primera carga completa.
func (s *Session) NeedsInitialLoad() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialLoad
}

// MarkLoaded apaga la bandera de carga inicial.
func (s *Session) MarkLoaded() {
	s.mu.Lock()
	s.initialLoad = false
	s.mu.Unlock()
}

// ── Modales ───────────────────────────────────────────────────────────────────

// SetModal muestra u oculta un modal.
func (s *Session) SetModal(m Modal, visible bool) {
	s.mu.Lock()
	s.modals[m] = visible
	s.mu.Unlock()
}

// ModalVisible indica si el modal está abierto.
func (s *Session) ModalVisible(m Modal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modals[m]
}

// ── Operaciones pendientes ────────────────────────────────────────────────────

// Pending devuelve la operación del tipo indicado (en reposo si no hay ninguna).
func (s *Session) Pending(kind OperationKind) PendingOperation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingLocked(kind)
}

func (s *Session) pendingLocked(kind OperationKind) PendingOperation {
	if op, ok := s.pending[kind]; ok {
		return op
	}
	return PendingOperation{Kind: kind}
}

// OpenPending abre la confirmación de op. Falla si ya hay una del mismo tipo cargando.
func (s *Session) OpenPending(op PendingOperation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingLocked(op.Kind).IsLoading {
		return false
	}
	op.Open = true
	op.IsLoading = false
	s.pending[op.Kind] = op
	if m, ok := modalFor[op.Kind]; ok {
		s.modals[m] = true
	}
	return true
}

// BeginOperation marca la operación como cargando y devuelve su estado. Devuelve
// domain.ErrOperationInProgress si ya estaba cargando.
func (s *Session) BeginOperation(kind OperationKind) (PendingOperation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op := s.pendingLocked(kind)
	if op.IsLoading {
		return op, domain.ErrOperationInProgress
	}
	op.IsLoading = true
	s.pending[kind] = op
	return op, nil
}

// ResetPending devuelve la operación a reposo y cierra su modal.
func (s *Session) ResetPending(kind OperationKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, kind)
	if m, ok := modalFor[kind]; ok {
		s.modals[m] = false
	}
}

// CancelPending descarta una operación abierta. Una operación que ya está
// cargando no se puede cancelar.
func (s *Session) CancelPending(kind OperationKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingLocked(kind).IsLoading {
		return false
	}
	delete(s.pending, kind)
	if m, ok := modalFor[kind]; ok {
		s.modals[m] = false
	}
	return true
}

// ── Buffers de edición ────────────────────────────────────────────────────────

// SetServicioNombreEdit guarda un nombre de servicio sin confirmar.
func (s *Session) SetServicioNombreEdit(id int64, nombre string) {
	s.mu.Lock()
	s.servicioNombres[id] = nombre
	s.mu.Unlock()
}

// SetSubcategoriaNombreEdit guarda un nombre de subcategoría sin confirmar.
func (s *Session) SetSubcategoriaNombreEdit(id int64, nombre string) {
	s.mu.Lock()
	s.subcategoriaNombres[id] = nombre
	s.mu.Unlock()
}

// SetItemPrecioEdit guarda un precio sin confirmar (texto tal cual lo escribió el usuario).
func (s *Session) SetItemPrecioEdit(id int64, precio string) {
	s.mu.Lock()
	s.itemPrecios[id] = precio
	s.mu.Unlock()
}

// ServicioEdits son los cambios sin confirmar que afectan a un servicio.
type ServicioEdits struct {
	Nombre        *string
	Subcategorias map[int64]string
	Precios       map[int64]string
}

// Empty indica que no hay nada que guardar.
func (e ServicioEdits) Empty() bool {
	return e.Nombre == nil && len(e.Subcategorias) == 0 && len(e.Precios) == 0
}

// EditsForServicio reúne los buffers del servicio, sus subcategorías y sus ítems.
func (s *Session) EditsForServicio(servicioID int64) ServicioEdits {
	s.mu.Lock()
	defer s.mu.Unlock()
	edits := ServicioEdits{
		Subcategorias: make(map[int64]string),
		Precios:       make(map[int64]string),
	}
	if n, ok := s.servicioNombres[servicioID]; ok {
		edits.Nombre = &n
	}
	for _, sub := range s.subcategoriasOfLocked(servicioID) {
		if n, ok := s.subcategoriaNombres[sub]; ok {
			edits.Subcategorias[sub] = n
		}
	}
	for _, it := range s.items {
		if it.ServicioID != servicioID {
			continue
		}
		if p, ok := s.itemPrecios[it.ID]; ok {
			edits.Precios[it.ID] = p
		}
	}
	return edits
}

// ClearServicioEdits vacía los buffers del servicio, sus subcategorías y sus ítems.
func (s *Session) ClearServicioEdits(servicioID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.servicioNombres, servicioID)
	for _, sub := range s.subcategoriasOfLocked(servicioID) {
		delete(s.subcategoriaNombres, sub)
	}
	for _, it := range s.items {
		if it.ServicioID == servicioID {
			delete(s.itemPrecios, it.ID)
		}
	}
}

func (s *Session) subcategoriasOfLocked(servicioID int64) []int64 {
	var ids []int64
	for _, sv := range s.servicios {
		if sv.ID != servicioID {
			continue
		}
		for _, sub := range sv.Subcategorias {
			ids = append(ids, sub.ID)
		}
	}
	return ids
}

// ── Expansión ─────────────────────────────────────────────────────────────────

// Expansion es la proyección de secciones abiertas que se preserva entre recargas.
type Expansion struct {
	Items     map[int64]bool `json:"expandedItems"`
	Servicios map[int64]bool `json:"expandedServices"`
}

// SetItemExpanded abre o cierra el detalle de un ítem.
func (s *Session) SetItemExpanded(id int64, open bool) {
	s.mu.Lock()
	s.expandedItems[id] = open
	s.mu.Unlock()
}

// SetServicioExpanded abre o cierra la sección de un servicio.
func (s *Session) SetServicioExpanded(id int64, open bool) {
	s.mu.Lock()
	s.expandedServicios[id] = open
	s.mu.Unlock()
}

// ServicioExpanded indica si la sección del servicio está abierta.
func (s *Session) ServicioExpanded(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expandedServicios[id]
}

// ExpansionSnapshot copia el estado de expansión actual.
func (s *Session) ExpansionSnapshot() Expansion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Expansion{Items: maps.Clone(s.expandedItems), Servicios: maps.Clone(s.expandedServicios)}
}

// RestoreExpansion reemplaza el estado de expansión por snap.
func (s *Session) RestoreExpansion(snap Expansion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expandedItems = maps.Clone(snap.Items)
	s.expandedServicios = maps.Clone(snap.Servicios)
	if s.expandedItems == nil {
		s.expandedItems = make(map[int64]bool)
	}
	if s.expandedServicios == nil {
		s.expandedServicios = make(map[int64]bool)
	}
}

// CollapseAll cierra todas las secciones de servicios e ítems.
func (s *Session) CollapseAll() {
	s.mu.Lock()
	s.expandedServicios = make(map[int64]bool)
	s.expandedItems = make(map[int64]bool)
	s.mu.Unlock()
}

// ── Filtros ───────────────────────────────────────────────────────────────────

// SetFilters reemplaza los criterios activos.
func (s *Session) SetFilters(f search.Filters) {
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()
}

// Filters criterios activos.
func (s *Session) Filters() search.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// ResetFilters vuelve a los criterios por defecto.
func (s *Session) ResetFilters() { s.SetFilters(search.DefaultFilters()) }

// ── Espejos del catálogo ──────────────────────────────────────────────────────

// ReplaceCategorias reemplaza la lista de categorías.
func (s *Session) ReplaceCategorias(list []entity.Categoria) {
	s.mu.Lock()
	s.categorias = list
	s.mu.Unlock()
}

// ReplaceServicios reemplaza la lista completa de servicios. No toca la expansión.
func (s *Session) ReplaceServicios(list []entity.Servicio) {
	s.mu.Lock()
	s.servicios = list
	s.mu.Unlock()
}

// ReplaceItems reemplaza la lista aplanada de ítems.
func (s *Session) ReplaceItems(list []entity.ItemDetalle) {
	s.mu.Lock()
	s.items = list
	s.mu.Unlock()
}

// ReplaceCaracteristicas reemplaza la lista de características.
func (s *Session) ReplaceCaracteristicas(list []entity.Caracteristica) {
	s.mu.Lock()
	s.caracteristicas = list
	s.mu.Unlock()
}

// Categorias copia de la lista de categorías.
func (s *Session) Categorias() []entity.Categoria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categorias)
}

// Servicios copia de la lista de servicios.
func (s *Session) Servicios() []entity.Servicio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.servicios)
}

// Items copia de la lista aplanada de ítems.
func (s *Session) Items() []entity.ItemDetalle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Caracteristicas copia de la lista de características.
func (s *Session) Caracteristicas() []entity.Caracteristica {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.caracteristicas)
}

// FindCategoria busca una categoría en el espejo.
func (s *Session) FindCategoria(id int64) (entity.Categoria, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categorias {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Categoria{}, false
}

// FindServicio busca un servicio en el espejo.
func (s *Session) FindServicio(id int64) (entity.Servicio, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sv := range s.servicios {
		if sv.ID == id {
			return sv, true
		}
	}
	return entity.Servicio{}, false
}

// FindItem busca un ítem en el espejo.
func (s *Session) FindItem(id int64) (entity.ItemDetalle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return entity.ItemDetalle{}, false
}

// FindCaracteristica busca una característica en el espejo.
func (s *Session) FindCaracteristica(id int64) (entity.Caracteristica, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.caracteristicas {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Caracteristica{}, false
}

// ServiciosByCategoria servicios de la categoría, en el orden del espejo.
func (s *Session) ServiciosByCategoria(categoriaID int64) []entity.Servicio {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Servicio
	for _, sv := range s.servicios {
		if sv.CategoriaID == categoriaID {
			out = append(out, sv)
		}
	}
	return out
}

// ItemsByServicio ítems del servicio.
func (s *Session) ItemsByServicio(servicioID int64) []entity.ItemDetalle {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.ItemDetalle
	for _, it := range s.items {
		if it.ServicioID == servicioID {
			out = append(out, it)
		}
	}
	return out
}

// ItemsByCategoria ítems cuyos servicios pertenecen a la categoría.
func (s *Session) ItemsByCategoria(categoriaID int64) []entity.ItemDetalle {
	s.mu.Lock()
	defer s.mu.Unlock()
	inCat := make(map[int64]bool)
	for _, sv := range s.servicios {
		if sv.CategoriaID == categoriaID {
			inCat[sv.ID] = true
		}
	}
	var out []entity.ItemDetalle
	for _, it := range s.items {
		if inCat[it.ServicioID] {
			out = append(out, it)
		}
	}
	return out
}

// ServiciosWithCaracteristica cuenta los servicios vinculados a la característica.
func (s *Session) ServiciosWithCaracteristica(caracteristicaID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sv := range s.servicios {
		for _, c := range sv.Caracteristicas {
			if c.ID == caracteristicaID {
				n++
				break
			}
		}
	}
	return n
}

// ── Vista ─────────────────────────────────────────────────────────────────────

// State es una copia del estado completo de la sesión, para serializar.
type State struct {
	ID                  string                             `json:"id"`
	InitialLoad         bool                               `json:"initialLoad"`
	Modals              map[Modal]bool                     `json:"modals"`
	Pending             map[OperationKind]PendingOperation `json:"pending"`
	ServicioNombres     map[int64]string                   `json:"editingServicioNames"`
	SubcategoriaNombres map[int64]string                   `json:"editingSubcategoriaNames"`
	ItemPrecios         map[int64]string                   `json:"editingPrices"`
	Expansion           Expansion                          `json:"expansion"`
	Filters             search.Filters                     `json:"filters"`
	Categorias          []entity.Categoria                 `json:"categorias"`
	Servicios           []entity.Servicio                  `json:"allServicios"`
	Items               []entity.ItemDetalle               `json:"itemsWithDetails"`
	Caracteristicas     []entity.Caracteristica            `json:"caracteristicas"`
}

// Snapshot copia el estado de la sesión.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:                  s.id,
		InitialLoad:         s.initialLoad,
		Modals:              maps.Clone(s.modals),
		Pending:             maps.Clone(s.pending),
		ServicioNombres:     maps.Clone(s.servicioNombres),
		SubcategoriaNombres: maps.Clone(s.subcategoriaNombres),
		ItemPrecios:         maps.Clone(s.itemPrecios),
		Expansion: Expansion{
			Items:     maps.Clone(s.expandedItems),
			Servicios: maps.Clone(s.expandedServicios),
		},
		Filters:         s.filters,
		Categorias:      slices.Clone(s.categorias),
		Servicios:       slices.Clone(s.servicios),
		Items:           slices.Clone(s.items),
		Caracteristicas: slices.Clone(s.caracteristicas),
	}
}
