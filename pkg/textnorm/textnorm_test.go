package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/catalogo-servicios/pkg/textnorm"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"José", "jose"},
		{"  Declaración IVA  ", "declaracion iva"},
		{"NÓMINA", "nomina"},
		{"Pingüino", "pinguino"},
		{"año", "ano"},
		{"é", "e"}, // ya descompuesto
		{"İstanbul", "istanbul"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textnorm.Normalize(tc.in), "Normalize(%q)", tc.in)
	}
}

func TestNormalize_Idempotente(t *testing.T) {
	inputs := []string{
		"José Pérez", "  ÁÉÍÓÚ ñ ü ", "Ça va", "İİ", "한국어", "Ǆemal", "straße", "é́",
	}
	for _, in := range inputs {
		once := textnorm.Normalize(in)
		assert.Equal(t, once, textnorm.Normalize(once), "normalizar dos veces %q", in)
	}
}

func TestFold_NoRecortaEspacios(t *testing.T) {
	assert.Equal(t, "  jose ", textnorm.Fold("  José "))
}

func TestContains(t *testing.T) {
	assert.True(t, textnorm.Contains("Declaración IVA", "declaracion"))
	assert.True(t, textnorm.Contains("Nómina", ""))
	assert.False(t, textnorm.Contains("Nómina", "iva"))
}
