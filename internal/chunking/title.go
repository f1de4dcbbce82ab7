package chunking

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ExtractTitle extracts a document title: the first level-1 heading, then the
// first level-2 heading, then the filename without extension with each word
// capitalized.
func ExtractTitle(text, filename string) string {
	l := scanLayout(text)

	var firstH2 string
	for _, h := range l.Headings {
		if h.Level == 1 && h.Title != "" {
			return h.Title
		}
		if h.Level == 2 && firstH2 == "" {
			firstH2 = h.Title
		}
	}
	if firstH2 != "" {
		return firstH2
	}

	return titleFromFilename(filename)
}

func titleFromFilename(filename string) string {
	name := filepath.Base(filename)
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
