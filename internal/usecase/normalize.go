package usecase

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex patterns for performance
var (
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
	nonKeyCharsRegex    = regexp.MustCompile(`[^a-z0-9\s-]`)
)

// foldText lowercases, strips diacritics and collapses whitespace.
// "Sauté  the Onions" becomes "saute the onions".
func foldText(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	folded := norm.NFC.String(b.String())
	folded = multipleSpacesRegex.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}

// normalizeIngredientName folds a name, drops punctuation and singularizes the last word
func normalizeIngredientName(name string) string {
	folded := foldText(name)
	folded = nonKeyCharsRegex.ReplaceAllString(folded, "")
	folded = strings.TrimSpace(multipleSpacesRegex.ReplaceAllString(folded, " "))
	if folded == "" {
		return ""
	}
	words := strings.Fields(folded)
	words[len(words)-1] = singularize(words[len(words)-1])
	return strings.Join(words, " ")
}

// singularize handles the regular English plurals common in ingredient lists
func singularize(word string) string {
	switch {
	case len(word) <= 3:
		return word
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "oes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"),
		strings.HasSuffix(word, "sses"), strings.HasSuffix(word, "xes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ss"), strings.HasSuffix(word, "us"), strings.HasSuffix(word, "is"):
		return word
	case strings.HasSuffix(word, "s"):
		return word[:len(word)-1]
	}
	return word
}

// round rounds half away from zero to the given number of decimal places
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
