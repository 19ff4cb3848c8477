// Package locale resolves display strings for the supported site languages.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported display language.
type Locale string

const (
	English Locale = "en"
	Amharic Locale = "am"
	Oromo   Locale = "om"

	// Primary is the locale every lookup falls back to.
	Primary = English
)

var supported = []Locale{English, Amharic, Oromo}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Amharic,
	language.MustParse("om"),
})

// Locales returns the supported locales, primary first.
func Locales() []Locale {
	return append([]Locale(nil), supported...)
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	for _, s := range supported {
		if l == s {
			return true
		}
	}
	return false
}

// Parse normalizes s and reports whether it names a supported locale.
func Parse(s string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	return l, l.Valid()
}

// Match picks the best supported locale for an Accept-Language header.
// Unparseable or unmatched headers give Primary.
func Match(acceptLanguage string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Primary
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Primary
	}
	return supported[idx]
}
