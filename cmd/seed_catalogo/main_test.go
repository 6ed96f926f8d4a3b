package main

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cabecera = "categoria;color;servicio;subcategoria;item;precio\n"

func TestParse_UTF8(t *testing.T) {
	in := cabecera +
		"Fiscal;#FF0000;Declaración IVA;Autónomos;Trimestral;15,5\n" +
		"Fiscal;;Nómina;;Mensual;30\n"

	filas, err := parse(decodeInput([]byte(in)))
	require.NoError(t, err)
	require.Len(t, filas, 2)
	assert.Equal(t, "Declaración IVA", filas[0].servicio)
	assert.Equal(t, "15.50", filas[0].precio.StringFixed(2))
	assert.Equal(t, "#6B7280", filas[1].color, "color por defecto")
	assert.Empty(t, filas[1].subcategoria)
}

func TestParse_Latin1(t *testing.T) {
	// "Nómina" en ISO-8859-1: ó = 0xF3
	in := cabecera + "Laboral;#00FF00;N\xf3mina;;Mensual;30\n"

	filas, err := parse(decodeInput([]byte(in)))
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Equal(t, "Nómina", filas[0].servicio)
}

func TestParse_Errores(t *testing.T) {
	cases := map[string]string{
		"precio negativo":   cabecera + "Fiscal;#FF0000;IVA;;Anual;-1\n",
		"precio texto":      cabecera + "Fiscal;#FF0000;IVA;;Anual;gratis\n",
		"color inválido":    cabecera + "Fiscal;rojo;IVA;;Anual;1\n",
		"sin item":          cabecera + "Fiscal;#FF0000;IVA;;;1\n",
		"columnas de menos": cabecera + "Fiscal;#FF0000;IVA\n",
	}
	for name, in := range cases {
		_, err := parse(strings.NewReader(in))
		assert.Error(t, err, name)
	}
}

func TestWriteSQL_Idempotente(t *testing.T) {
	in := cabecera +
		"Fiscal;#FF0000;IVA;Autónomos;Trimestral;15.5\n" +
		"Fiscal;#FF0000;IVA;Autónomos;Anual;50\n" +
		"Fiscal;#FF0000;O'Donnell;;Consulta;10\n"
	filas, err := parse(strings.NewReader(in))
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, writeSQL(io.Writer(&b), filas))
	sql := b.String()

	assert.Contains(t, sql, "-- +goose Up")
	assert.Equal(t, 1, strings.Count(sql, "INSERT INTO categorias"), "categoría repetida se escribe una vez")
	assert.Equal(t, 2, strings.Count(sql, "INSERT INTO servicios"))
	assert.Equal(t, 1, strings.Count(sql, "INSERT INTO subcategorias"))
	assert.Equal(t, 3, strings.Count(sql, "INSERT INTO items"))
	assert.Contains(t, sql, "'O''Donnell'")
	assert.Contains(t, sql, "15.50")
}
