package entity

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// NormalizeName returns the form used to compare category and country
// names: surrounding white space removed, Unicode case folded.
func NormalizeName(name string) string {
	return folder.String(strings.TrimSpace(name))
}

// SameName reports whether two names collide under NormalizeName.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
