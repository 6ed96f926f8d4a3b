package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/catalogo-servicios/internal/application/dto"
)

func TestPageRequest_Clamp(t *testing.T) {
	cases := []struct {
		name string
		in   dto.PageRequest
		want dto.PageRequest
	}{
		{"cero usa el límite por defecto", dto.PageRequest{}, dto.PageRequest{Limit: dto.DefaultPageLimit}},
		{"negativos", dto.PageRequest{Limit: -3, Offset: -1}, dto.PageRequest{Limit: dto.DefaultPageLimit}},
		{"por encima del máximo", dto.PageRequest{Limit: 500, Offset: 40}, dto.PageRequest{Limit: dto.MaxPageLimit, Offset: 40}},
		{"dentro de rango", dto.PageRequest{Limit: 7, Offset: 3}, dto.PageRequest{Limit: 7, Offset: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in
			got.Clamp()
			assert.Equal(t, tc.want, got)
		})
	}
}
