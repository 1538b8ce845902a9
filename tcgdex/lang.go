package tcgdex

import (
	"fmt"
	"strings"
)

// Lang is a two-letter language code supported by TCGdex
type Lang string

const (
	// EN is English, the default language
	EN Lang = "en"
	// FR is French
	FR Lang = "fr"
	// DE is German
	DE Lang = "de"
	// IT is Italian
	IT Lang = "it"
	// PT is Portuguese
	PT Lang = "pt"
	// ES is Spanish
	ES Lang = "es"
)

// Langs lists every supported language
var Langs = []Lang{EN, FR, DE, IT, PT, ES}

// String returns the lowercase language code used in URLs
func (l Lang) String() string {
	return string(l)
}

// Valid reports whether l is a supported language
func (l Lang) Valid() bool {
	for _, known := range Langs {
		if l == known {
			return true
		}
	}
	return false
}

// ParseLang parses a language code, case-insensitively
func ParseLang(s string) (Lang, error) {
	l := Lang(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLang, s)
	}
	return l, nil
}
