package lexicon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAnimalNamePatternPass(t *testing.T) {
	// The pattern pass must resolve these; later passes never run.
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"request verb with article", "muéstrame un tigre", "tigre"},
		{"indefinite article", "quiero un elefante grande", "elefante"},
		{"definite article", "el leopardo corre mucho", "leopardo"},
		{"de preposition", "una imagen de un caballo", "caballo"},
		{"stop word skipped", "muéstrame una imagen de un zorro", "zorro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractAnimalName(tt.prompt))
		})
	}
}

func TestExtractAnimalNameFrequencyPass(t *testing.T) {
	// No article pattern yields a candidate, but the repeated word wins.
	prompt := "jirafas jirafas comen hojas altas cada tarde tranquila"
	assert.Equal(t, "jirafas", ExtractAnimalName(prompt))
}

func TestExtractAnimalNameLastResortTruncates(t *testing.T) {
	prompt := strings.Repeat("xy ", 40) // no word survives any pass
	got := ExtractAnimalName(prompt)
	assert.Equal(t, 50, len([]rune(got)))
	assert.True(t, strings.HasPrefix(prompt, got))
}

func TestExtractAnimalNameNeverEmpty(t *testing.T) {
	for _, prompt := range []string{"", "a b c", "¡¡¡!!!", "uno dos"} {
		got := ExtractAnimalName(prompt)
		if prompt == "" {
			assert.Equal(t, "", got) // empty prompt truncates to itself
		}
		assert.Equal(t, truncateRunes(prompt, 50), got, "prompt %q", prompt)
	}
}

func TestTranslateAnimal(t *testing.T) {
	assert.Equal(t, "tiger", TranslateAnimal("tigre"))
	assert.Equal(t, "lion", TranslateAnimal("León"))
	assert.Equal(t, "wombat", TranslateAnimal("wombat"))
}

func TestImagePromptEmbedsAnimalTwice(t *testing.T) {
	prompt := ImagePrompt("tiger")
	assert.Equal(t, 2, strings.Count(prompt, "tiger"))
}
