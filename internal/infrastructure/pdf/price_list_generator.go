// Package pdf genera la lista de precios imprimible del catálogo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                         │  Fecha + Moneda    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATEGORÍA (franja con su color)                             │
//	│    Servicio                                                  │
//	│      Ítem | Subcategoría | Precio                            │
//	│  ...                                                         │
//	│  FOOTER: QR al catálogo público (opcional)                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/catalogo-servicios/internal/application/dto"
	"github.com/jhoicas/catalogo-servicios/internal/application/usecase"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.PriceListGenerator = (*PriceListGenerator)(nil)

// PriceListGenerator genera la lista de precios con Maroto v2.
type PriceListGenerator struct {
	publicURL string
}

// NewPriceListGenerator construye el generador. Si publicURL no está vacío se
// imprime un QR que apunta al catálogo en línea.
func NewPriceListGenerator(publicURL string) *PriceListGenerator {
	return &PriceListGenerator{publicURL: publicURL}
}

// GeneratePriceListPDF genera el PDF y devuelve sus bytes.
func (g *PriceListGenerator) GeneratePriceListPDF(_ context.Context, lista *dto.ListaPrecios) ([]byte, error) {
	if lista == nil {
		return nil, fmt.Errorf("pdf: lista de precios vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(lista.Titulo, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(lista))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(lista.Categorias) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("El catálogo no tiene servicios publicados.", props.Text{Size: 9, Top: 3, Color: colorGray}),
		)))
	}
	for _, cat := range lista.Categorias {
		m.AddRows(categoriaRow(cat))
		for _, sv := range cat.Servicios {
			m.AddRows(servicioRows(sv, lista.Moneda)...)
		}
		m.AddRows(row.New(3))
	}

	if g.publicURL != "" {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(footerRow(g.publicURL))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha + moneda (der).
func headerRow(lista *dto.ListaPrecios) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(lista.Titulo, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+lista.Generada.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Precios en "+lista.Moneda, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// categoriaRow: franja con el color de la categoría.
func categoriaRow(cat dto.ListaPreciosCategoria) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(strings.ToUpper(cat.Nombre), props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorWhite, Top: 1.5, Left: 2,
		})),
	).WithStyle(&props.Cell{BackgroundColor: hexColor(cat.Color)})
}

// servicioRows: nombre del servicio y una fila por ítem.
func servicioRows(sv dto.ListaPreciosServicio, moneda string) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New(sv.Nombre, props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2, Left: 2, Color: colorPrimary,
		}))),
	}
	if len(sv.Items) == 0 {
		return append(rows, row.New(5).Add(col.New(12).Add(text.New("Sin ítems", props.Text{
			Size: 8, Left: 6, Color: colorGray,
		}))))
	}
	for _, it := range sv.Items {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(it.Nombre, props.Text{Size: 8, Left: 6})),
			col.New(3).Add(text.New(nonEmpty(it.Subcategoria, "—"), props.Text{Size: 8, Color: colorGray})),
			col.New(3).Add(text.New(formatMoney(it.Precio)+" "+moneda, props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

// footerRow: QR al catálogo en línea.
func footerRow(url string) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(url, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Consulte el catálogo actualizado en:", props.Text{Size: 8, Top: 8, Left: 3, Color: colorGray}),
			text.New(url, props.Text{Style: fontstyle.Bold, Size: 9, Top: 14, Left: 3, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// hexColor convierte "#RRGGBB" en color; si no es válido usa el color primario.
func hexColor(s string) *props.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return colorPrimary
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return colorPrimary
	}
	return &props.Color{Red: int(v >> 16 & 0xff), Green: int(v >> 8 & 0xff), Blue: int(v & 0xff)}
}

// formatMoney agrupa miles con punto y usa coma decimal.
// Ej: "1250.00" → "1.250,00", "-3.50" → "-3,50"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	entero, dec, _ := strings.Cut(s, ".")
	n := len(entero)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(entero) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := sign + string(buf)
	if dec != "" {
		out += "," + dec
	}
	return out
}
