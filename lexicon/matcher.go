// Package lexicon turns free-form Spanish chat text into animal names:
// a fixed-vocabulary substring matcher used when persisting messages,
// and a layered heuristic extractor used to build image prompts.
package lexicon

import (
	"strings"
	"unicode"
)

// animals is the curated vocabulary, in priority order. Matching is a
// plain substring check with no word boundaries; the first entry found
// wins, so list order is the tie-break.
var animals = []string{
	"león", "tigre", "elefante", "jirafa", "cebra", "rinoceronte", "hipopótamo",
	"cocodrilo", "serpiente", "águila", "búho", "loro", "tucán", "pingüino",
	"delfín", "ballena", "tiburón", "oso", "lobo", "zorro", "conejo", "ardilla",
	"perro", "gato", "caballo", "vaca", "cerdo", "gallina", "pato", "pavo",
	"mono", "gorila", "chimpancé", "orangután", "canguro", "koala", "panda",
	"rana", "sapo", "tortuga", "galápago", "lagarto", "iguana", "camaleón",
	"mariposa", "abeja", "hormiga", "araña", "mosquito", "mosca", "escarabajo",
	"pájaro", "paloma", "gorrión", "canario", "flamenco", "pelícano", "gaviota",
	"pez", "salmón", "atún", "trucha", "carpa", "piraña", "anguila",
	"venado", "ciervo", "alce", "bisonte", "búfalo", "camello", "dromedario",
	"llama", "alpaca", "oveja", "cabra", "burro", "mula", "yak",
	"jaguar", "leopardo", "guepardo", "pantera", "lince", "puma", "ocelote",
	"mapache", "tejón", "nutria", "foca", "morsa", "león marino",
	"murciélago", "rata", "ratón", "hámster", "cobaya", "erizo", "topo",
}

// DetectAnimal returns the first vocabulary entry contained in text,
// capitalized, or "" when none matches.
func DetectAnimal(text string) string {
	lower := strings.ToLower(text)
	for _, animal := range animals {
		if strings.Contains(lower, animal) {
			return Capitalize(animal)
		}
	}
	return ""
}

// Capitalize upper-cases the first rune only, preserving accents.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
