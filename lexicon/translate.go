package lexicon

import (
	"fmt"
	"strings"
)

// translations maps common Spanish animal nouns (singular and plural)
// to English for the image model. Unmapped names pass through as-is.
var translations = map[string]string{
	"oso": "bear", "osos": "bear",
	"tigre": "tiger", "tigres": "tiger",
	"león": "lion", "leones": "lion", "leon": "lion",
	"elefante": "elephant", "elefantes": "elephant",
	"jirafa": "giraffe", "jirafas": "giraffe",
	"cebra": "zebra", "cebras": "zebra",
	"perro": "dog", "perros": "dog",
	"gato": "cat", "gatos": "cat",
	"lobo": "wolf", "lobos": "wolf",
	"zorro": "fox", "zorros": "fox",
	"conejo": "rabbit", "conejos": "rabbit",
	"caballo": "horse", "caballos": "horse",
	"panda": "panda", "pandas": "panda",
	"koala": "koala", "koalas": "koala",
	"mono": "monkey", "monos": "monkey",
	"ballena": "whale", "ballenas": "whale",
	"delfín": "dolphin", "delfines": "dolphin", "delfin": "dolphin",
	"tiburón": "shark", "tiburones": "shark", "tiburon": "shark",
	"águila": "eagle", "águilas": "eagle", "aguila": "eagle", "aguilas": "eagle",
	"búho": "owl", "búhos": "owl", "buho": "owl", "buhos": "owl",
	"loro": "parrot", "loros": "parrot",
	"serpiente": "snake", "serpientes": "snake",
	"cocodrilo": "crocodile", "cocodrilos": "crocodile",
	"tortuga": "turtle", "tortugas": "turtle",
	"pingüino": "penguin", "pingüinos": "penguin", "pinguino": "penguin", "pinguinos": "penguin",
	"flamenco": "flamingo", "flamencos": "flamingo",
	"hipopótamo": "hippopotamus", "hipopótamos": "hippopotamus", "hipopotamo": "hippopotamus",
	"rinoceronte": "rhinoceros", "rinocerontes": "rhinoceros",
	"canguro": "kangaroo", "canguros": "kangaroo",
	"dragón": "dragon", "dragones": "dragon", "dragon": "dragon",
}

// TranslateAnimal maps a Spanish animal name to English, defaulting to
// the input when no translation exists.
func TranslateAnimal(name string) string {
	if english, ok := translations[strings.ToLower(name)]; ok {
		return english
	}
	return name
}

// ImagePrompt builds the fixed photographic prompt, embedding the
// (English) animal name twice as the image model expects.
func ImagePrompt(animal string) string {
	return fmt.Sprintf(
		"Professional wildlife photograph of a %s in its natural habitat. "+
			"High quality National Geographic style. Photorealistic, highly detailed. "+
			"The %s is the main subject, centered in frame, facing camera. "+
			"Natural lighting, vivid colors, sharp focus on the animal. "+
			"Blurred background with natural habitat elements (forest, savanna, ocean, etc). "+
			"Suitable for children's educational content. "+
			"No text, no watermarks, no cartoons.",
		animal, animal)
}

// NegativePrompt excludes the styles and subjects the product never
// wants in a generated image.
const NegativePrompt = "cartoon, anime, drawing, illustration, painting, sketch, " +
	"multiple animals, crowd, group, " +
	"text, watermark, logo, signature, " +
	"scary, frightening, horror, dark, violent, gore, " +
	"ugly, deformed, mutation, distorted, blurry, " +
	"low quality, low resolution, pixelated, " +
	"text, watermark, signature, frame"
