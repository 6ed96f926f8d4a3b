package admin

// OperationKind identifica una operación del panel. Hay como mucho una
// PendingOperation activa por tipo.
type OperationKind string

const (
	OpDeleteServicio       OperationKind = "delete_servicio"
	OpDeleteCategoria      OperationKind = "delete_categoria"
	OpDeleteItem           OperationKind = "delete_item"
	OpDeleteCaracteristica OperationKind = "delete_caracteristica"
	OpCreateCategoria      OperationKind = "create_categoria"
	OpUpdateCategoria      OperationKind = "update_categoria"
	OpSaveServicioEdits    OperationKind = "save_servicio_edits"
)

var operationKinds = []OperationKind{
	OpDeleteServicio, OpDeleteCategoria, OpDeleteItem, OpDeleteCaracteristica,
	OpCreateCategoria, OpUpdateCategoria, OpSaveServicioEdits,
}

// ParseOperationKind valida el nombre de un tipo de operación.
func ParseOperationKind(s string) (OperationKind, bool) {
	for _, k := range operationKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// PendingOperation describe la operación en curso de un tipo: a qué apunta,
// el resumen que se muestra en la confirmación y si está cargando.
type PendingOperation struct {
	Kind              OperationKind `json:"kind"`
	TargetID          int64         `json:"targetId,omitempty"`
	Name              string        `json:"name,omitempty"`
	ItemCount         int           `json:"itemCount"`
	SubcategoriaCount int           `json:"subcategoriaCount"`
	ServicioCount     int           `json:"servicioCount"`
	Open              bool          `json:"open"`
	IsLoading         bool          `json:"isLoading"`
}

// IsIdle indica que la operación está en reposo (sin modal, sin carga, sin objetivo).
func (p PendingOperation) IsIdle() bool {
	return !p.Open && !p.IsLoading && p.TargetID == 0 && p.Name == ""
}

// Modal identifica un modal del panel.
type Modal string

const (
	ModalCreateCategoria      Modal = "create_categoria"
	ModalEditCategoria        Modal = "edit_categoria"
	ModalDeleteCategoria      Modal = "delete_categoria"
	ModalCreateServicio       Modal = "create_servicio"
	ModalEditServicio         Modal = "edit_servicio"
	ModalDeleteServicio       Modal = "delete_servicio"
	ModalCreateItem           Modal = "create_item"
	ModalEditItem             Modal = "edit_item"
	ModalDeleteItem           Modal = "delete_item"
	ModalCreateCaracteristica Modal = "create_caracteristica"
	ModalEditCaracteristica   Modal = "edit_caracteristica"
	ModalDeleteCaracteristica Modal = "delete_caracteristica"
	ModalColorPicker          Modal = "color_picker"
	ModalBanner               Modal = "banner"
)

var modals = []Modal{
	ModalCreateCategoria, ModalEditCategoria, ModalDeleteCategoria,
	ModalCreateServicio, ModalEditServicio, ModalDeleteServicio,
	ModalCreateItem, ModalEditItem, ModalDeleteItem,
	ModalCreateCaracteristica, ModalEditCaracteristica, ModalDeleteCaracteristica,
	ModalColorPicker, ModalBanner,
}

// ParseModal valida el nombre de un modal.
func ParseModal(s string) (Modal, bool) {
	for _, m := range modals {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// modalFor es el modal de confirmación asociado a cada tipo de operación.
var modalFor = map[OperationKind]Modal{
	OpDeleteServicio:       ModalDeleteServicio,
	OpDeleteCategoria:      ModalDeleteCategoria,
	OpDeleteItem:           ModalDeleteItem,
	OpDeleteCaracteristica: ModalDeleteCaracteristica,
	OpCreateCategoria:      ModalCreateCategoria,
	OpUpdateCategoria:      ModalEditCategoria,
}
