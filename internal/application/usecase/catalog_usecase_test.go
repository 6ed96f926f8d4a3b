package usecase_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-servicios/internal/application/dto"
	"github.com/jhoicas/catalogo-servicios/internal/application/search"
	"github.com/jhoicas/catalogo-servicios/internal/application/usecase"
	"github.com/jhoicas/catalogo-servicios/internal/domain"
	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorios
// ──────────────────────────────────────────────────────────────────────────────

type memCategorias struct {
	rows   map[int64]entity.Categoria
	nextID int64
}

func (m *memCategorias) Create(_ context.Context, c *entity.Categoria) error {
	m.nextID++
	c.ID = m.nextID
	m.rows[c.ID] = *c
	return nil
}

func (m *memCategorias) GetByID(_ context.Context, id int64) (*entity.Categoria, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memCategorias) Update(_ context.Context, c *entity.Categoria) error {
	m.rows[c.ID] = *c
	return nil
}

func (m *memCategorias) List(context.Context) ([]*entity.Categoria, error) {
	var out []*entity.Categoria
	for _, id := range keys(m.rows) {
		c := m.rows[id]
		out = append(out, &c)
	}
	return out, nil
}

func (m *memCategorias) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memServicios struct {
	rows     map[int64]entity.Servicio
	unlinked []int64
	deleted  []int64
}

func (m *memServicios) GetByID(_ context.Context, id int64) (*entity.Servicio, error) {
	s, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memServicios) ListWithDetails(context.Context) ([]*entity.Servicio, error) {
	var out []*entity.Servicio
	for _, id := range keys(m.rows) {
		s := m.rows[id]
		out = append(out, &s)
	}
	return out, nil
}

func (m *memServicios) UpdateNombre(_ context.Context, id int64, nombre string) error {
	s := m.rows[id]
	s.Nombre = nombre
	m.rows[id] = s
	return nil
}

func (m *memServicios) CountByCategoria(_ context.Context, categoriaID int64) (int, error) {
	n := 0
	for _, s := range m.rows {
		if s.CategoriaID == categoriaID {
			n++
		}
	}
	return n, nil
}

func (m *memServicios) UnlinkCaracteristicas(_ context.Context, id int64) error {
	m.unlinked = append(m.unlinked, id)
	return nil
}

func (m *memServicios) Delete(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.rows, id)
	return nil
}

type memSubcategorias struct {
	deleteByServicio int
	unusedAsked      []int64
	err              error
}

func (m *memSubcategorias) GetByID(context.Context, int64) (*entity.Subcategoria, error) {
	return nil, nil
}

func (m *memSubcategorias) UpdateNombre(context.Context, int64, string) error { return nil }

func (m *memSubcategorias) DeleteByServicio(context.Context, int64) (int, error) {
	return m.deleteByServicio, m.err
}

func (m *memSubcategorias) DeleteUnused(_ context.Context, ids []int64) (int, error) {
	m.unusedAsked = ids
	return len(ids), nil
}

type memItems struct {
	detalles []entity.ItemDetalle
	precios  map[int64]decimal.Decimal
}

func (m *memItems) GetByID(context.Context, int64) (*entity.Item, error) { return nil, nil }

func (m *memItems) ListWithDetails(context.Context) ([]entity.ItemDetalle, error) {
	return m.detalles, nil
}

func (m *memItems) UpdatePrecio(_ context.Context, id int64, p decimal.Decimal) error {
	m.precios[id] = p
	return nil
}

func (m *memItems) DeleteByServicio(_ context.Context, servicioID int64) (int, error) {
	before := len(m.detalles)
	m.detalles = slices.DeleteFunc(m.detalles, func(it entity.ItemDetalle) bool { return it.ServicioID == servicioID })
	return before - len(m.detalles), nil
}

func (m *memItems) Delete(context.Context, int64) error { return nil }

type memCaracteristicas struct{ calls []string }

func (m *memCaracteristicas) GetByID(context.Context, int64) (*entity.Caracteristica, error) {
	return nil, nil
}

func (m *memCaracteristicas) List(context.Context) ([]*entity.Caracteristica, error) {
	return nil, nil
}

func (m *memCaracteristicas) UnlinkServicios(context.Context, int64) error {
	m.calls = append(m.calls, "unlink")
	return nil
}

func (m *memCaracteristicas) Delete(context.Context, int64) error {
	m.calls = append(m.calls, "delete")
	return nil
}

// fakeTx ejecuta fn sobre los mismos repos y cuenta commits y rollbacks.
type fakeTx struct {
	repos              usecase.CatalogRepos
	commits, rollbacks int
}

func (f *fakeTx) RunCatalog(_ context.Context, fn func(usecase.CatalogRepos) error) error {
	if err := fn(f.repos); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

func keys[V any](m map[int64]V) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func ptr(v int64) *int64 { return &v }

type world struct {
	uc    *usecase.CatalogUseCase
	cats  *memCategorias
	servs *memServicios
	subs  *memSubcategorias
	items *memItems
	chars *memCaracteristicas
	tx    *fakeTx
}

func newWorld() *world {
	w := &world{
		cats: &memCategorias{rows: map[int64]entity.Categoria{1: {ID: 1, Nombre: "Fiscal", Color: "#112233"}}, nextID: 10},
		servs: &memServicios{rows: map[int64]entity.Servicio{
			11: {ID: 11, Nombre: "Declaración IVA", CategoriaID: 1},
		}},
		subs: &memSubcategorias{deleteByServicio: 2},
		items: &memItems{
			detalles: []entity.ItemDetalle{
				{ID: 1, Nombre: "Trimestral", Precio: "15.5", ServicioID: 11, ServicioNombre: "Declaración IVA", SubcategoriaID: ptr(5), SubcategoriaNombre: "Autónomos"},
				{ID: 2, Nombre: "Anual", Precio: "30", ServicioID: 11, ServicioNombre: "Declaración IVA", SubcategoriaID: ptr(5), SubcategoriaNombre: "Autónomos"},
				{ID: 3, Nombre: "Mensual", Precio: "8", ServicioID: 11, ServicioNombre: "Declaración IVA"},
			},
			precios: map[int64]decimal.Decimal{},
		},
		chars: &memCaracteristicas{},
	}
	repos := usecase.CatalogRepos{
		Categorias:      w.cats,
		Servicios:       w.servs,
		Subcategorias:   w.subs,
		Items:           w.items,
		Caracteristicas: w.chars,
	}
	w.tx = &fakeTx{repos: repos}
	w.uc = usecase.NewCatalogUseCase(repos, w.tx)
	return w
}

// ──────────────────────────────────────────────────────────────────────────────
// CatalogUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteServicio_CascadaEnUnaTransaccion(t *testing.T) {
	w := newWorld()
	res, err := w.uc.DeleteServicio(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, &dto.DeleteServicioResult{ItemsDeleted: 3, SubcategoriasDeleted: 2}, res)
	assert.Equal(t, []int64{11}, w.servs.unlinked)
	assert.Equal(t, []int64{11}, w.servs.deleted)
	assert.Equal(t, 1, w.tx.commits)
}

func TestDeleteServicio_NoEncontrado(t *testing.T) {
	w := newWorld()
	_, err := w.uc.DeleteServicio(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, w.tx.rollbacks)
}

func TestDeleteServicio_FalloHaceRollback(t *testing.T) {
	w := newWorld()
	w.subs.err = errors.New("fk")
	_, err := w.uc.DeleteServicio(context.Background(), 11)
	require.Error(t, err)
	assert.Equal(t, 1, w.tx.rollbacks)
	assert.Empty(t, w.servs.deleted)
}

func TestDeleteCategoria_ConServiciosEsConflicto(t *testing.T) {
	w := newWorld()
	err := w.uc.DeleteCategoria(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrCategoriaConServicio)

	delete(w.servs.rows, 11)
	require.NoError(t, w.uc.DeleteCategoria(context.Background(), 1))
	assert.Empty(t, w.cats.rows)
}

func TestCreateYUpdateCategoria(t *testing.T) {
	w := newWorld()
	c, err := w.uc.CreateCategoria(context.Background(), dto.CategoriaRequest{Nombre: "Laboral", Color: "#abcdef"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), c.ID)

	_, err = w.uc.CreateCategoria(context.Background(), dto.CategoriaRequest{Nombre: "", Color: "#abcdef"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = w.uc.UpdateCategoria(context.Background(), 404, dto.CategoriaRequest{Nombre: "X", Color: "#000000"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCaracteristica_DesvinculaAntesDeBorrar(t *testing.T) {
	w := newWorld()
	require.NoError(t, w.uc.DeleteCaracteristica(context.Background(), 7))
	assert.Equal(t, []string{"unlink", "delete"}, w.chars.calls)
}

func TestCleanupUnusedSubcategorias_IdsUnicos(t *testing.T) {
	w := newWorld()
	n, err := w.uc.CleanupUnusedSubcategorias(context.Background(), w.items.detalles)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []int64{5}, w.subs.unusedAsked)

	n, err = w.uc.CleanupUnusedSubcategorias(context.Background(), []entity.ItemDetalle{{ID: 3}})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpdates_Validacion(t *testing.T) {
	w := newWorld()
	assert.ErrorIs(t, w.uc.UpdateItemPrecio(context.Background(), 1, decimal.NewFromInt(-1)), domain.ErrInvalidInput)
	assert.ErrorIs(t, w.uc.UpdateServicioNombre(context.Background(), 11, "  "), domain.ErrInvalidInput)
	assert.ErrorIs(t, w.uc.UpdateSubcategoriaNombre(context.Background(), 5, ""), domain.ErrInvalidInput)

	require.NoError(t, w.uc.UpdateItemPrecio(context.Background(), 1, decimal.RequireFromString("12.40")))
	assert.True(t, w.items.precios[1].Equal(decimal.RequireFromString("12.4")))
}

// ──────────────────────────────────────────────────────────────────────────────
// StorefrontUseCase
// ──────────────────────────────────────────────────────────────────────────────

type capturePDF struct{ got *dto.ListaPrecios }

func (c *capturePDF) GeneratePriceListPDF(_ context.Context, l *dto.ListaPrecios) ([]byte, error) {
	c.got = l
	return []byte("%PDF"), nil
}

func TestStorefrontSearch_ResaltaYPagina(t *testing.T) {
	w := newWorld()
	sf := usecase.NewStorefrontUseCase(w.uc, search.NewEngine(zerolog.Nop()), &capturePDF{}, "Lista", "EUR")

	f := search.DefaultFilters()
	f.SearchTerm = "autonomos"
	res, err := sf.Search(context.Background(), f, dto.PageRequest{Limit: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	assert.True(t, res.FiltroActivo)
	require.Len(t, res.Items, 1)
	it := res.Items[0]
	assert.Equal(t, "15.50", it.PrecioFormateado)
	assert.Equal(t, []dto.SegmentResponse{{Text: "Autónomos", IsMatch: true}}, it.SubcategoriaResaltada)
	assert.Equal(t, []dto.SegmentResponse{{Text: "Declaración IVA"}}, it.ServicioResaltado)

	res, err = sf.Search(context.Background(), f, dto.PageRequest{Limit: 10, Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 2, res.Total)

	res, err = sf.Search(context.Background(), f, dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, dto.MaxPageLimit, res.Page.Limit)
	assert.Len(t, res.Items, 2)
}

func TestStorefrontPriceList_AgrupaPorCategoriaYServicio(t *testing.T) {
	w := newWorld()
	gen := &capturePDF{}
	sf := usecase.NewStorefrontUseCase(w.uc, search.NewEngine(zerolog.Nop()), gen, "Lista de precios", "EUR")

	out, err := sf.PriceListPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)

	require.NotNil(t, gen.got)
	assert.Equal(t, "Lista de precios", gen.got.Titulo)
	assert.WithinDuration(t, time.Now(), gen.got.Generada, time.Minute)
	require.Len(t, gen.got.Categorias, 1)
	require.Len(t, gen.got.Categorias[0].Servicios, 1)
	items := gen.got.Categorias[0].Servicios[0].Items
	require.Len(t, items, 3)
	assert.Equal(t, "30.00", items[1].Precio)
}
