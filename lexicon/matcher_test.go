package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAnimal(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"simple mention", "vi un león enorme", "León"},
		{"uppercase input", "EL TIGRE ES RÁPIDO", "Tigre"},
		{"substring without word boundary", "qué día tan hermoso", "Oso"},
		{"list order tie-break", "el tigre persiguió al león", "León"},
		{"accented vocabulary", "el pingüino camina raro", "Pingüino"},
		{"two-word entry", "un león marino tomaba sol", "León"},
		{"no animal", "hola, ¿cómo estás hoy?", ""},
		{"empty text", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectAnimal(tt.text))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "León", Capitalize("león"))
	assert.Equal(t, "Águila", Capitalize("águila"))
	assert.Equal(t, "", Capitalize(""))
}
