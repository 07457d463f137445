package ingest

import (
	"regexp"
	"strings"
	"unicode"
)

var nonWord = regexp.MustCompile(`\W+`)

// Key normalizes a jurisdiction name into the key used for file names and
// configuration overrides, e.g. "New York" -> "new_york".
func Key(name string) string {
	return strings.ToLower(nonWord.ReplaceAllString(capitalizeWords(name), "_"))
}

// DisplayName turns a key back into a human readable name, e.g.
// "new_york" -> "New York".
func DisplayName(key string) string {
	return capitalizeWords(strings.ReplaceAll(key, "_", " "))
}

// capitalizeWords lowercases s and upper-cases the first letter of every
// whitespace separated word.
func capitalizeWords(s string) string {
	runes := []rune(strings.ToLower(s))
	for i, r := range runes {
		if i == 0 || unicode.IsSpace(runes[i-1]) {
			runes[i] = unicode.ToUpper(r)
		}
	}
	return string(runes)
}
