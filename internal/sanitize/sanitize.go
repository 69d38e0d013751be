// Package sanitize cleans free text supplied by users before it is stored or
// exported.
package sanitize

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text drops HTML markup and unprintable runes and trims the result. Entities
// produced by the policy are decoded again so "M&M" survives unchanged.
func Text(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' {
			return r
		}

		return -1
	}, s)

	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Cell guards a spreadsheet cell against formula injection by quoting values
// that start with a formula trigger.
func Cell(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}

	switch trimmed[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}

	return s
}
