package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
	"github.com/jhoicas/catalogo-servicios/pkg/textnorm"
)

// ErrInvalidFilter marca un valor de filtro que no se puede interpretar.
var ErrInvalidFilter = errors.New("criterio de filtro inválido")

// FilterFault es el fallo al evaluar un ítem concreto (un pánico recuperado).
type FilterFault struct {
	ItemID int64
	Field  string
	Err    error
}

func (f *FilterFault) Error() string {
	return fmt.Sprintf("item %d, filtro %s: %v", f.ItemID, f.Field, f.Err)
}

func (f *FilterFault) Unwrap() error { return f.Err }

// FaultPolicy decide si un ítem cuya evaluación falló se incluye en el resultado.
type FaultPolicy func(item entity.ItemDetalle, fault error) bool

// IncludeOnFault incluye el ítem: preferimos un falso positivo a ocultar datos.
func IncludeOnFault(entity.ItemDetalle, error) bool { return true }

// ExcludeOnFault descarta el ítem.
func ExcludeOnFault(entity.ItemDetalle, error) bool { return false }

// Engine aplica los filtros del panel de administración y del buscador público.
type Engine struct {
	log    zerolog.Logger
	policy FaultPolicy

	beforeEvaluate func(entity.ItemDetalle)
}

// Option configura el Engine.
type Option func(*Engine)

// WithFaultPolicy reemplaza la política por defecto (IncludeOnFault).
func WithFaultPolicy(p FaultPolicy) Option {
	return func(e *Engine) {
		if p != nil {
			e.policy = p
		}
	}
}

// NewEngine construye el motor de búsqueda.
func NewEngine(log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{log: log, policy: IncludeOnFault}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// criteria son los filtros ya interpretados. Un precio ilegible vuelve a su cota
// por defecto (0 o sin máximo); un id ilegible no coincide con ningún ítem. Los
// valores descartados quedan en invalid para el log.
type criteria struct {
	term string

	min, max decimal.Decimal
	hasMax   bool

	servicioID  int64
	hasServicio bool

	categoriaID     int64
	hasCategoria    bool
	categoriaByServ map[int64]int64

	// matchNone: algún id de filtro no es un número.
	matchNone bool
	invalid   []error
}

func compile(f Filters, servicios []entity.Servicio) criteria {
	c := criteria{term: textnorm.Normalize(f.SearchTerm)}

	if v := strings.TrimSpace(f.MinPrice); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			c.min = d
		} else {
			c.invalid = append(c.invalid, fmt.Errorf("%w: precio mínimo %q", ErrInvalidFilter, f.MinPrice))
		}
	}
	if v := strings.TrimSpace(f.MaxPrice); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			c.max, c.hasMax = d, true
		} else {
			c.invalid = append(c.invalid, fmt.Errorf("%w: precio máximo %q", ErrInvalidFilter, f.MaxPrice))
		}
	}

	if !isAll(f.ServicioID) {
		id, err := strconv.ParseInt(strings.TrimSpace(f.ServicioID), 10, 64)
		if err != nil {
			c.matchNone = true
			c.invalid = append(c.invalid, fmt.Errorf("%w: servicio %q", ErrInvalidFilter, f.ServicioID))
		}
		c.servicioID, c.hasServicio = id, true
	}

	if !isAll(f.CategoriaID) {
		id, err := strconv.ParseInt(strings.TrimSpace(f.CategoriaID), 10, 64)
		if err != nil {
			c.matchNone = true
			c.invalid = append(c.invalid, fmt.Errorf("%w: categoría %q", ErrInvalidFilter, f.CategoriaID))
		}
		c.categoriaID, c.hasCategoria = id, true
		c.categoriaByServ = make(map[int64]int64, len(servicios))
		for _, s := range servicios {
			c.categoriaByServ[s.ID] = s.CategoriaID
		}
	}
	return c
}

// FilterItems devuelve los ítems que cumplen todos los criterios.
//
// items nil devuelve una lista vacía; filters o servicios nil devuelven items sin
// tocar. Si ningún criterio está activo se devuelve items tal cual. Los criterios
// son conjuntivos aunque alguno traiga un valor ilegible (ver criteria). Un ítem
// cuya evaluación falla se resuelve con la FaultPolicy del motor; un fallo general
// devuelve la lista original.
func (e *Engine) FilterItems(items []entity.ItemDetalle, filters *Filters, servicios []entity.Servicio) (out []entity.ItemDetalle) {
	if items == nil {
		e.log.Warn().Msg("search: lista de ítems ausente, se devuelve vacía")
		return []entity.ItemDetalle{}
	}
	if filters == nil {
		e.log.Warn().Msg("search: filtros ausentes, se devuelven todos los ítems")
		return items
	}
	if servicios == nil {
		e.log.Warn().Msg("search: lista de servicios ausente, se devuelven todos los ítems")
		return items
	}
	if !IsFilterActive(filters) {
		return items
	}

	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Msg("search: fallo al filtrar, se devuelve la lista original")
			out = items
		}
	}()

	c := compile(*filters, servicios)
	for _, err := range c.invalid {
		e.log.Warn().Err(err).Msg("search: valor de filtro ilegible")
	}
	out = make([]entity.ItemDetalle, 0, len(items))
	faults := 0
	for _, it := range items {
		ok, err := e.evaluate(it, &c)
		if err != nil {
			faults++
			ok = e.policy(it, err)
			e.log.Debug().Err(err).Int64("item_id", it.ID).Bool("incluido", ok).Msg("search: fallo evaluando ítem")
		}
		if ok {
			out = append(out, it)
		}
	}
	if faults > 0 {
		e.log.Warn().Int("fallos", faults).Int("total", len(items)).Msg("search: ítems con fallos de evaluación")
	}
	return out
}

// Evaluate evalúa un único ítem contra filters.
func (e *Engine) Evaluate(item entity.ItemDetalle, filters Filters, servicios []entity.Servicio) (bool, error) {
	c := compile(filters, servicios)
	return e.evaluate(item, &c)
}

func (e *Engine) evaluate(item entity.ItemDetalle, c *criteria) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, &FilterFault{ItemID: item.ID, Field: "item", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if e.beforeEvaluate != nil {
		e.beforeEvaluate(item)
	}
	if c.matchNone {
		return false, nil
	}

	if c.term != "" &&
		!strings.Contains(textnorm.Normalize(item.ServicioNombre), c.term) &&
		!strings.Contains(textnorm.Normalize(item.SubcategoriaNombre), c.term) {
		return false, nil
	}

	price := ParsePrice(item.Precio)
	if price.LessThan(c.min) || (c.hasMax && price.GreaterThan(c.max)) {
		return false, nil
	}

	if c.hasServicio && item.ServicioID != c.servicioID {
		return false, nil
	}

	if c.hasCategoria {
		catID, found := c.categoriaByServ[item.ServicioID]
		if !found || catID != c.categoriaID {
			return false, nil
		}
	}
	return true, nil
}
