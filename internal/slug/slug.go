// Package slug derives URL-safe identifiers from titles and names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Make converts a string to a URL-friendly slug: accents are decomposed and
// stripped, the result is lowercased, spaces become hyphens, everything else
// outside [a-z0-9-] is dropped, and hyphen runs collapse to one.
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, _ := transform.String(t, s)

	out = strings.ToLower(out)
	out = strings.ReplaceAll(out, " ", "-")
	out = nonSlugChars.ReplaceAllString(out, "")
	out = multipleHyphens.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// IsValid reports whether s is a well-formed slug: non-empty, only lowercase
// letters, digits and single hyphens, no hyphen at either end.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	return !strings.Contains(s, "--")
}
