package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Mezar Taşı", "mezar-tasi"},
		{"Çiçeklik Vazo", "ciceklik-vazo"},
		{"Öğretmen Anıtı", "ogretmen-aniti"},
		{"Üçlü Şamdan", "uclu-samdan"},
		{"İstanbul Granit", "istanbul-granit"},
		{"  Double  Spaces  ", "double-spaces"},
		{"Already-Slugged", "already-slugged"},
		{"Weird!@#Chars", "weirdchars"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}
