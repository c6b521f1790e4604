// Package search normaliza texto para búsquedas sin distinguir mayúsculas ni acentos.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold quita diacríticos y aplica case folding: "Pérez" → "perez".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(strings.TrimSpace(out))
}

// Matcher compara un término ya normalizado contra varios campos.
type Matcher struct {
	term string
}

// NewMatcher normaliza el término una sola vez. Un término vacío coincide con todo.
func NewMatcher(term string) Matcher {
	return Matcher{term: Fold(term)}
}

// Empty informa si el término es vacío.
func (m Matcher) Empty() bool { return m.term == "" }

// Match devuelve true si alguno de los campos contiene el término.
func (m Matcher) Match(fields ...string) bool {
	if m.term == "" {
		return true
	}
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(Fold(f), m.term) {
			return true
		}
	}
	return false
}
