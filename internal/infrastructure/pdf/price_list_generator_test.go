package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-servicios/internal/application/dto"
	"github.com/jhoicas/catalogo-servicios/internal/infrastructure/pdf"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0.00":       "0,00",
		"15.50":      "15,50",
		"1250.00":    "1.250,00",
		"1000000.10": "1.000.000,10",
		"-3.50":      "-3,50",
		"999":        "999",
	}
	for in, want := range cases {
		assert.Equal(t, want, pdf.FormatMoney(in), in)
	}
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, &props.Color{Red: 0x11, Green: 0x22, Blue: 0x33}, pdf.HexColor("#112233"))
	assert.Equal(t, &props.Color{Red: 0, Green: 70, Blue: 127}, pdf.HexColor("rojo"))
}

func TestGeneratePriceListPDF(t *testing.T) {
	lista := &dto.ListaPrecios{
		Titulo:   "Lista de precios",
		Moneda:   "EUR",
		Generada: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Categorias: []dto.ListaPreciosCategoria{{
			Nombre: "Fiscal",
			Color:  "#1F6FEB",
			Servicios: []dto.ListaPreciosServicio{
				{Nombre: "Declaración IVA", Items: []dto.ListaPreciosItem{{Nombre: "Trimestral", Subcategoria: "Autónomos", Precio: "15.50"}}},
				{Nombre: "Sin ítems"},
			},
		}},
	}

	out, err := pdf.NewPriceListGenerator("https://catalogo.example.com").GeneratePriceListPDF(context.Background(), lista)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = pdf.NewPriceListGenerator("").GeneratePriceListPDF(context.Background(), nil)
	assert.Error(t, err)
}
