// seed_catalogo genera una migración SQL con el catálogo inicial a partir de una
// hoja de cálculo exportada a CSV (separador ';', UTF-8 o ISO-8859-1).
//
// Columnas: categoria;color;servicio;subcategoria;item;precio
// La primera fila es la cabecera. subcategoria puede ir vacía.
//
// Uso: go run ./cmd/seed_catalogo [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/00002_seed_catalogo.sql
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type fila struct {
	categoria    string
	color        string
	servicio     string
	subcategoria string
	item         string
	precio       decimal.Decimal
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}

	filas, err := parse(decodeInput(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "00002_seed_catalogo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, filas); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d ítems\n", outPath, len(filas))
}

// decodeInput devuelve un lector UTF-8. Si el archivo no es UTF-8 válido se
// asume ISO-8859-1 (exportación típica de hojas de cálculo en Windows).
func decodeInput(raw []byte) io.Reader {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

func parse(r io.Reader) ([]fila, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = 6
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("archivo vacío")
	}

	var out []fila
	for i, rec := range records[1:] {
		line := i + 2
		f := fila{
			categoria:    strings.TrimSpace(rec[0]),
			color:        strings.TrimSpace(rec[1]),
			servicio:     strings.TrimSpace(rec[2]),
			subcategoria: strings.TrimSpace(rec[3]),
			item:         strings.TrimSpace(rec[4]),
		}
		if f.categoria == "" || f.servicio == "" || f.item == "" {
			return nil, fmt.Errorf("línea %d: categoria, servicio e item son obligatorios", line)
		}
		if f.color == "" {
			f.color = "#6B7280"
		}
		if !hexColor.MatchString(f.color) {
			return nil, fmt.Errorf("línea %d: color %q no es #RRGGBB", line, f.color)
		}
		// Admite coma decimal ("15,50").
		p, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[5]), ",", "."))
		if err != nil || p.IsNegative() {
			return nil, fmt.Errorf("línea %d: precio %q inválido", line, rec[5])
		}
		f.precio = p.Round(2)
		out = append(out, f)
	}
	return out, nil
}

// writeSQL escribe la migración. Las sentencias son idempotentes: volver a
// aplicarlas no duplica categorías, servicios, subcategorías ni ítems.
func writeSQL(w io.Writer, filas []fila) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial generado por cmd/seed_catalogo\n")
	b.WriteString("-- +goose Up\n\n")

	b.WriteString("-- 1. Categorías\n")
	seenCat := make(map[string]bool)
	for _, f := range filas {
		if seenCat[f.categoria] {
			continue
		}
		seenCat[f.categoria] = true
		fmt.Fprintf(&b, "INSERT INTO categorias (nombre, color) VALUES ('%s', '%s')\n", escapeSQL(f.categoria), f.color)
		b.WriteString("ON CONFLICT (nombre) DO UPDATE SET color = EXCLUDED.color;\n")
	}

	b.WriteString("\n-- 2. Servicios\n")
	seenSrv := make(map[[2]string]bool)
	for _, f := range filas {
		key := [2]string{f.categoria, f.servicio}
		if seenSrv[key] {
			continue
		}
		seenSrv[key] = true
		fmt.Fprintf(&b, "INSERT INTO servicios (nombre, id_categoria)\n")
		fmt.Fprintf(&b, "SELECT '%s', c.id FROM categorias c WHERE c.nombre = '%s'\n", escapeSQL(f.servicio), escapeSQL(f.categoria))
		fmt.Fprintf(&b, "AND NOT EXISTS (SELECT 1 FROM servicios s WHERE s.nombre = '%s' AND s.id_categoria = c.id);\n", escapeSQL(f.servicio))
	}

	b.WriteString("\n-- 3. Subcategorías\n")
	seenSub := make(map[[2]string]bool)
	for _, f := range filas {
		key := [2]string{f.servicio, f.subcategoria}
		if f.subcategoria == "" || seenSub[key] {
			continue
		}
		seenSub[key] = true
		fmt.Fprintf(&b, "INSERT INTO subcategorias (nombre, id_servicio)\n")
		fmt.Fprintf(&b, "SELECT '%s', s.id FROM servicios s JOIN categorias c ON c.id = s.id_categoria\n", escapeSQL(f.subcategoria))
		fmt.Fprintf(&b, "WHERE s.nombre = '%s' AND c.nombre = '%s'\n", escapeSQL(f.servicio), escapeSQL(f.categoria))
		fmt.Fprintf(&b, "AND NOT EXISTS (SELECT 1 FROM subcategorias x WHERE x.nombre = '%s' AND x.id_servicio = s.id);\n", escapeSQL(f.subcategoria))
	}

	b.WriteString("\n-- 4. Ítems\n")
	for _, f := range filas {
		sub := "NULL"
		if f.subcategoria != "" {
			sub = fmt.Sprintf("(SELECT x.id FROM subcategorias x WHERE x.nombre = '%s' AND x.id_servicio = s.id LIMIT 1)", escapeSQL(f.subcategoria))
		}
		fmt.Fprintf(&b, "INSERT INTO items (nombre, precio, id_servicio, id_subcategoria)\n")
		fmt.Fprintf(&b, "SELECT '%s', %s, s.id, %s FROM servicios s JOIN categorias c ON c.id = s.id_categoria\n",
			escapeSQL(f.item), f.precio.StringFixed(2), sub)
		fmt.Fprintf(&b, "WHERE s.nombre = '%s' AND c.nombre = '%s'\n", escapeSQL(f.servicio), escapeSQL(f.categoria))
		fmt.Fprintf(&b, "AND NOT EXISTS (SELECT 1 FROM items i WHERE i.nombre = '%s' AND i.id_servicio = s.id);\n", escapeSQL(f.item))
	}

	b.WriteString("\n-- +goose Down\n")
	b.WriteString("-- Los datos de catálogo no se revierten automáticamente.\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
