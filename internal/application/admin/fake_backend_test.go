package admin_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-servicios/internal/application/dto"
	"github.com/jhoicas/catalogo-servicios/internal/domain"
	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

// fakeBackend reproduce en memoria las reglas de la base: borrar un servicio
// borra sus ítems y subcategorías, una categoría con servicios no se puede
// borrar y los ítems que apuntan a una subcategoría borrada quedan sin ella.
type fakeBackend struct {
	mu sync.Mutex

	categorias      map[int64]entity.Categoria
	servicios       map[int64]entity.Servicio
	subcategorias   map[int64]entity.Subcategoria
	items           map[int64]entity.Item
	caracteristicas map[int64]entity.Caracteristica
	links           map[int64][]int64 // servicio → características

	nextID int64
	calls  []string
	// hooks por llamada ("delete_servicio:11"); pueden devolver error o entrar en pánico.
	hooks   map[string]func() error
	listErr error
}

func ptr(v int64) *int64 { return &v }

func precio(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newScenario: categoría 1 con S1 (11) y S2 (12); categoría 2 con S3 (13).
// S1 tiene dos ítems, uno en SC2 (subcategoría de S3 que solo usa S1).
// S2 tiene un ítem en SC1, su propia subcategoría. S3 conserva un ítem en SC3.
func newScenario() *fakeBackend {
	return &fakeBackend{
		categorias: map[int64]entity.Categoria{
			1: {ID: 1, Nombre: "Fiscal", Color: "#112233"},
			2: {ID: 2, Nombre: "Laboral", Color: "#445566"},
		},
		servicios: map[int64]entity.Servicio{
			11: {ID: 11, Nombre: "S1", CategoriaID: 1},
			12: {ID: 12, Nombre: "S2", CategoriaID: 1},
			13: {ID: 13, Nombre: "S3", CategoriaID: 2},
		},
		subcategorias: map[int64]entity.Subcategoria{
			100: {ID: 100, Nombre: "SC1", ServicioID: 12},
			200: {ID: 200, Nombre: "SC2", ServicioID: 13},
			300: {ID: 300, Nombre: "SC3", ServicioID: 13},
		},
		items: map[int64]entity.Item{
			1: {ID: 1, Nombre: "I1", Precio: precio("10"), ServicioID: 11},
			2: {ID: 2, Nombre: "I2", Precio: precio("20"), ServicioID: 11, SubcategoriaID: ptr(200)},
			3: {ID: 3, Nombre: "I3", Precio: precio("30"), ServicioID: 12, SubcategoriaID: ptr(100)},
			4: {ID: 4, Nombre: "I4", Precio: precio("40"), ServicioID: 13, SubcategoriaID: ptr(300)},
		},
		caracteristicas: map[int64]entity.Caracteristica{
			7: {ID: 7, Nombre: "Online"},
		},
		links:  map[int64][]int64{11: {7}, 13: {7}},
		nextID: 1000,
		hooks:  map[string]func() error{},
	}
}

func (b *fakeBackend) on(call string, fn func() error) {
	b.mu.Lock()
	b.hooks[call] = fn
	b.mu.Unlock()
}

// record anota la llamada y ejecuta su hook fuera del candado.
func (b *fakeBackend) record(call string) error {
	b.mu.Lock()
	b.calls = append(b.calls, call)
	hook := b.hooks[call]
	b.mu.Unlock()
	if hook != nil {
		return hook()
	}
	return nil
}

func (b *fakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.calls)
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (b *fakeBackend) ListCategorias(context.Context) ([]entity.Categoria, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listErr != nil {
		return nil, b.listErr
	}
	out := []entity.Categoria{}
	for _, id := range sortedKeys(b.categorias) {
		out = append(out, b.categorias[id])
	}
	return out, nil
}

func (b *fakeBackend) ListServicios(context.Context) ([]entity.Servicio, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []entity.Servicio{}
	for _, id := range sortedKeys(b.servicios) {
		sv := b.servicios[id]
		sv.Subcategorias = nil
		for _, subID := range sortedKeys(b.subcategorias) {
			if sub := b.subcategorias[subID]; sub.ServicioID == id {
				sv.Subcategorias = append(sv.Subcategorias, sub)
			}
		}
		sv.Caracteristicas = nil
		for _, cID := range b.links[id] {
			sv.Caracteristicas = append(sv.Caracteristicas, b.caracteristicas[cID])
		}
		out = append(out, sv)
	}
	return out, nil
}

func (b *fakeBackend) ListItemsWithDetails(context.Context) ([]entity.ItemDetalle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []entity.ItemDetalle{}
	for _, id := range sortedKeys(b.items) {
		it := b.items[id]
		sv := b.servicios[it.ServicioID]
		d := entity.ItemDetalle{
			ID:              it.ID,
			Nombre:          it.Nombre,
			Precio:          it.Precio.String(),
			ServicioID:      sv.ID,
			ServicioNombre:  sv.Nombre,
			SubcategoriaID:  it.SubcategoriaID,
			CategoriaID:     sv.CategoriaID,
			CategoriaNombre: b.categorias[sv.CategoriaID].Nombre,
		}
		if it.SubcategoriaID != nil {
			d.SubcategoriaNombre = b.subcategorias[*it.SubcategoriaID].Nombre
		}
		out = append(out, d)
	}
	return out, nil
}

func (b *fakeBackend) ListCaracteristicas(context.Context) ([]entity.Caracteristica, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []entity.Caracteristica{}
	for _, id := range sortedKeys(b.caracteristicas) {
		out = append(out, b.caracteristicas[id])
	}
	return out, nil
}

// ── Escrituras ────────────────────────────────────────────────────────────────

func (b *fakeBackend) CreateCategoria(_ context.Context, in dto.CategoriaRequest) (*entity.Categoria, error) {
	if err := b.record("create_categoria"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	c := entity.Categoria{ID: b.nextID, Nombre: in.Nombre, Color: in.Color}
	b.categorias[c.ID] = c
	return &c, nil
}

func (b *fakeBackend) UpdateCategoria(_ context.Context, id int64, in dto.CategoriaRequest) error {
	if err := b.record(fmt.Sprintf("update_categoria:%d", id)); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.categorias[id]; !ok {
		return domain.ErrNotFound
	}
	b.categorias[id] = entity.Categoria{ID: id, Nombre: in.Nombre, Color: in.Color}
	return nil
}

func (b *fakeBackend) DeleteCategoria(_ context.Context, id int64) error {
	if err := b.record(fmt.Sprintf("delete_categoria:%d", id)); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sv := range b.servicios {
		if sv.CategoriaID == id {
			return domain.ErrCategoriaConServicio
		}
	}
	delete(b.categorias, id)
	return nil
}

func (b *fakeBackend) DeleteServicio(_ context.Context, id int64) (*dto.DeleteServicioResult, error) {
	if err := b.record(fmt.Sprintf("delete_servicio:%d", id)); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.servicios[id]; !ok {
		return nil, domain.ErrNotFound
	}
	res := &dto.DeleteServicioResult{}
	for itemID, it := range b.items {
		if it.ServicioID == id {
			delete(b.items, itemID)
			res.ItemsDeleted++
		}
	}
	for subID, sub := range b.subcategorias {
		if sub.ServicioID != id {
			continue
		}
		delete(b.subcategorias, subID)
		res.SubcategoriasDeleted++
		for itemID, it := range b.items {
			if it.SubcategoriaID != nil && *it.SubcategoriaID == subID {
				it.SubcategoriaID = nil
				b.items[itemID] = it
			}
		}
	}
	delete(b.links, id)
	delete(b.servicios, id)
	return res, nil
}

func (b *fakeBackend) DeleteItem(_ context.Context, id int64) error {
	if err := b.record(fmt.Sprintf("delete_item:%d", id)); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(b.items, id)
	return nil
}

func (b *fakeBackend) DeleteCaracteristica(_ context.Context, id int64) error {
	if err := b.record(fmt.Sprintf("delete_caracteristica:%d", id)); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for svID, ids := range b.links {
		b.links[svID] = slices.DeleteFunc(ids, func(c int64) bool { return c == id })
	}
	delete(b.caracteristicas, id)
	return nil
}

func (b *fakeBackend) UpdateServicioNombre(_ context.Context, id int64, nombre string) error {
	if err := b.record(fmt.Sprintf("update_servicio:%d", id)); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	sv, ok := b.servicios[id]
	if !ok {
		return domain.ErrNotFound
	}
	sv.Nombre = nombre
	b.servicios[id] = sv
	return nil
}

func (b *fakeBackend) UpdateSubcategoriaNombre(_ context.Context, id int64, nombre string) error {
	if err := b.record(fmt.Sprintf("update_subcategoria:%d", id)); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.subcategorias[id]
	if !ok {
		return domain.ErrNotFound
	}
	sub.Nombre = nombre
	b.subcategorias[id] = sub
	return nil
}

func (b *fakeBackend) UpdateItemPrecio(_ context.Context, id int64, p decimal.Decimal) error {
	if err := b.record(fmt.Sprintf("update_precio:%d", id)); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	it, ok := b.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Precio = p
	b.items[id] = it
	return nil
}

func (b *fakeBackend) CleanupUnusedSubcategorias(_ context.Context, affected []entity.ItemDetalle) (int, error) {
	if err := b.record("cleanup"); err != nil {
		return 0, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	used := make(map[int64]bool)
	for _, it := range b.items {
		if it.SubcategoriaID != nil {
			used[*it.SubcategoriaID] = true
		}
	}
	removed := 0
	for _, it := range affected {
		if it.SubcategoriaID == nil || used[*it.SubcategoriaID] {
			continue
		}
		if _, ok := b.subcategorias[*it.SubcategoriaID]; ok {
			delete(b.subcategorias, *it.SubcategoriaID)
			removed++
		}
	}
	return removed, nil
}

var errRechazo = errors.New("el servidor rechazó la operación")
