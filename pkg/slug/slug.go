// Package slug derives URL slugs from Turkish product and category names.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var turkishFold = map[rune]rune{
	'ç': 'c', 'ğ': 'g', 'ı': 'i', 'ö': 'o', 'ş': 's', 'ü': 'u',
	'â': 'a', 'î': 'i', 'û': 'u',
}

// Make lowercases name, folds Turkish letters to ASCII and joins the remaining
// alphanumeric runs with single hyphens.
//
//   - "Kadın Giyim" → "kadin-giyim"
//   - "Keten Gömlek (Beyaz)" → "keten-gomlek-beyaz"
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	gap := false
	for _, r := range strings.ToLower(name) {
		if folded, ok := turkishFold[r]; ok {
			r = folded
		}
		if r >= utf8.RuneSelf || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte('-')
		}
		gap = false
		b.WriteRune(r)
	}
	return b.String()
}
