package lexicon

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// The extractor guesses which animal a vague image request refers to.
// The prompt normally carries both the user's request and the
// assistant's reply, so the chain leans on articles, request verbs and
// word repetition. The pass ordering and stop-word sets are a
// behavioral contract: a prompt must resolve through the same stage to
// the same word, even when the word is not actually an animal.

// Letter-class boundaries instead of \b: RE2 word boundaries are ASCII
// and mis-handle accented Spanish letters.
var articlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|[^a-záéíóúñü])(?:un|una)\s+([a-záéíóúñü]+s?)`),
	regexp.MustCompile(`(?:^|[^a-záéíóúñü])(?:el|la|los|las)\s+([a-záéíóúñü]+s?)`),
	regexp.MustCompile(`(?:^|[^a-záéíóúñü])(?:de|del|sobre)\s+(?:un|una|el|la|los|las)?\s*([a-záéíóúñü]+s?)`),
	regexp.MustCompile(`(?:^|[^a-záéíóúñü])(?:muestras?|muéstrame|genera|pinta|dibuja)\s+(?:un|una|el|la|los|las)?\s*([a-záéíóúñü]+s?)`),
}

var patternStopWords = map[string]bool{
	"imagen": true, "foto": true, "dibujo": true, "claro": true, "aquí": true,
	"para": true, "desde": true, "esta": true, "este": true, "belleza": true,
	"pradera": true, "vista": true, "libertad": true, "viento": true,
}

var frequencyStopWords = map[string]bool{
	"imagen": true, "foto": true, "dibujo": true, "animal": true, "claro": true,
	"aquí": true, "tiene": true, "hermoso": true, "belleza": true, "quieres": true,
	"saber": true, "sobre": true, "esta": true, "este": true, "encantan": true,
	"elegantes": true, "fuertes": true, "sabías": true, "pueden": true,
	"desde": true, "hasta": true, "raza": true, "razas": true, "favorita": true,
	"animales": true, "majestuosos": true, "super": true, "inteligentes": true,
	"práctica": true, "practico": true, "gustaría": true, "gustaria": true,
	"compartir": true, "estoy": true, "para": true, "fascina": true,
	"emocionado": true, "admirar": true, "admires": true, "supuesto": true,
}

var finalStopWords = map[string]bool{
	"imagen": true, "muestras": true, "claro": true, "aquí": true,
	"tienes": true, "desde": true, "pradera": true,
}

var requestPhrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`me\s+(?:pasas|muestras|generas?|das)\s+(?:una?\s+)?(?:imagen|foto|dibujo|ilustraci[oó]n)\s+(?:de|del?)\s+`),
	regexp.MustCompile(`quiero\s+(?:ver|una?\s+imagen\s+de)\s+`),
	regexp.MustCompile(`mu[eé]strame\s+(?:una?\s+)?(?:imagen\s+de\s+)?`),
	regexp.MustCompile(`genera\s+(?:una?\s+)?(?:imagen\s+de\s+)?`),
	regexp.MustCompile(`(?:c[oó]mo|como)\s+(?:se|es)\s+ve\s+`),
	regexp.MustCompile(`(?:imagen|foto|dibujo)\s+de\s+`),
	regexp.MustCompile(`^(?:un|una|el|la|los|las)\s+`),
	regexp.MustCompile(`ese\s+animal`),
}

var wordPattern = regexp.MustCompile(`[a-záéíóúñü]+`)

// ExtractAnimalName never returns "": the last resort is the raw
// prompt truncated to 50 characters.
func ExtractAnimalName(prompt string) string {
	lower := strings.ToLower(prompt)

	// Pass 1: article/request-verb patterns, first accepted candidate
	// across patterns in order wins.
	var name string
	for _, pattern := range articlePatterns {
		for _, match := range pattern.FindAllStringSubmatch(lower, -1) {
			candidate := strings.TrimSpace(match[1])
			if runeLen(candidate) >= 4 && !patternStopWords[candidate] {
				name = candidate
				break
			}
		}
		if name != "" {
			break
		}
	}

	// Pass 2: frequency analysis. A word the conversation keeps
	// repeating is almost always the animal being discussed.
	if name == "" || runeLen(name) < 4 {
		if frequent := mostFrequentWord(lower); frequent != "" {
			name = frequent
		}
	}

	// Pass 3: strip request phrasing, keep the first meaningful word.
	if name == "" || runeLen(name) < 3 {
		cleaned := lower
		for _, pattern := range requestPhrasePatterns {
			cleaned = pattern.ReplaceAllString(cleaned, "")
		}
		for _, word := range strings.Fields(cleaned) {
			if runeLen(word) >= 4 {
				name = word
				break
			}
		}
	}

	// Pass 4: any standalone longer word not in the final stop set.
	if name == "" || runeLen(name) < 4 {
		for _, candidate := range wordPattern.FindAllString(lower, -1) {
			if runeLen(candidate) >= 5 && !finalStopWords[candidate] {
				name = candidate
				break
			}
		}
	}

	// Last resort: the raw prompt, truncated.
	if name == "" || runeLen(name) < 4 {
		name = truncateRunes(prompt, 50)
	}

	return name
}

// mostFrequentWord prefers the most frequent word occurring at least
// twice, else the most frequent overall. Ties break on first
// occurrence so the result is deterministic.
func mostFrequentWord(lower string) string {
	counts := map[string]int{}
	var order []string

	for _, word := range wordPattern.FindAllString(lower, -1) {
		if runeLen(word) < 4 || frequencyStopWords[word] {
			continue
		}
		if _, seen := counts[word]; !seen {
			order = append(order, word)
		}
		counts[word]++
	}

	if len(order) == 0 {
		return ""
	}

	pick := func(minCount int) string {
		best := ""
		bestCount := 0
		for _, word := range order {
			if counts[word] >= minCount && counts[word] > bestCount {
				best = word
				bestCount = counts[word]
			}
		}
		return best
	}

	if repeated := pick(2); repeated != "" {
		return repeated
	}
	return pick(1)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
