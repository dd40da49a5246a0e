package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"accented", "Asunción", "asuncion"},
		{"upper accented", "ASUNCIÓN", "asuncion"},
		{"already plain", "asuncion", "asuncion"},
		{"enye", "Ñemby", "nemby"},
		{"diaeresis", "Güemes", "guemes"},
		{"surrounding space", "  Luque \t", "luque"},
		{"inner space collapsed", "San   Lorenzo", "san lorenzo"},
		{"decomposed input", "Asuncio\u0301n", "asuncion"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeNameIsIdempotent(t *testing.T) {
	inputs := []string{"Asunción", "Ciudad del Este", "  ÑEEMBUCÚ ", "Fernando de la Mora", "Caaguazú", ""}
	for _, in := range inputs {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "input %q", in)
	}
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Warehouse A", "warehouse-a"},
		{"Depósito Luque (Centro)", "deposito-luque-centro"},
		{"  Retiro -- Shopping del Sol ", "retiro-shopping-del-sol"},
		{"Men's T-Shirt!", "mens-t-shirt"},
		{"¡¿?!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestIsAmount(t *testing.T) {
	assert.True(t, IsAmount(""))
	assert.True(t, IsAmount(" 15 "))
	assert.True(t, IsAmount("25000"))
	assert.True(t, IsAmount("12.50"))
	assert.False(t, IsAmount("-1"))
	assert.False(t, IsAmount("Gs. 10"))
	assert.False(t, IsAmount("Inf"))
}
