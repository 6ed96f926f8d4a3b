// Package admin es el núcleo del panel de administración del catálogo: el estado de
// sesión del panel (Session) y el orquestador de operaciones destructivas
// (Orchestrator), incluido el borrado en cascada Categoría → Servicios → Ítems.
package admin

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-servicios/internal/application/dto"
	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

// Backend es la capacidad de acceso a datos que consume el orquestador.
// Un error devuelto es un rechazo del backend y su mensaje se muestra tal cual.
type Backend interface {
	ListCategorias(ctx context.Context) ([]entity.Categoria, error)
	ListServicios(ctx context.Context) ([]entity.Servicio, error)
	ListItemsWithDetails(ctx context.Context) ([]entity.ItemDetalle, error)
	ListCaracteristicas(ctx context.Context) ([]entity.Caracteristica, error)

	CreateCategoria(ctx context.Context, in dto.CategoriaRequest) (*entity.Categoria, error)
	UpdateCategoria(ctx context.Context, id int64, in dto.CategoriaRequest) error
	DeleteCategoria(ctx context.Context, id int64) error

	// DeleteServicio borra el servicio con sus ítems y subcategorías. El resultado
	// puede ser nil si el backend no informa conteos.
	DeleteServicio(ctx context.Context, id int64) (*dto.DeleteServicioResult, error)
	DeleteItem(ctx context.Context, id int64) error
	DeleteCaracteristica(ctx context.Context, id int64) error

	UpdateServicioNombre(ctx context.Context, id int64, nombre string) error
	UpdateSubcategoriaNombre(ctx context.Context, id int64, nombre string) error
	UpdateItemPrecio(ctx context.Context, id int64, precio decimal.Decimal) error

	// CleanupUnusedSubcategorias borra las subcategorías de los ítems afectados que
	// ya no referencia ningún ítem. Devuelve cuántas borró.
	CleanupUnusedSubcategorias(ctx context.Context, affected []entity.ItemDetalle) (int, error)
}

// Notifier recibe los mensajes para el usuario.
type Notifier interface {
	Success(message string)
	ShowError(message string)
}

// Recorder registra métricas de las operaciones del panel.
type Recorder interface {
	ObserveOperation(kind string, outcome string, elapsed time.Duration)
	AddCascadeServicios(n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, string, time.Duration) {}
func (nopRecorder) AddCascadeServicios(int)                        {}
