package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile("[^a-z0-9 -]+")
	slugHyphenRuns   = regexp.MustCompile("-+")
)

// StripAccents removes combining diacritical marks, e.g. "Asunción" -> "Asuncion"
// and "Ñemby" -> "Nemby". Input that fails to transform is returned unchanged.
func StripAccents(input string) string {
	// transformers carry state, so a fresh chain is built per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

// NormalizeName returns the comparable form of a free-text place name:
// trimmed, inner whitespace collapsed, accents stripped and lower-cased.
// NormalizeName(NormalizeName(s)) == NormalizeName(s).
func NormalizeName(input string) string {
	s := strings.Join(strings.Fields(input), " ")
	if s == "" {
		return ""
	}
	s = StripAccents(s)
	return cases.Lower(language.Und).String(s)
}

// GenerateSlug converts a string into a URL-friendly slug.
// e.g. "Depósito Luque (Centro)" -> "deposito-luque-centro"
func GenerateSlug(input string) string {
	s := strings.ToLower(StripAccents(input))

	// keep a-z, 0-9, space and hyphen
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), "-")
	s = slugHyphenRuns.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// IsAmount reports whether s is empty or a non-negative decimal amount.
func IsAmount(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return f >= 0 && !math.IsInf(f, 1)
}
