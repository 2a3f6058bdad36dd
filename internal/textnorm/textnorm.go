// Package textnorm canonicalizes cell text pulled out of shipping workbooks.
//
// Two modes exist: Tight, used when matching header and label synonyms, and
// Loose, used when a cell value is kept in the output record. The empty
// string stands in for a missing cell throughout the decoder.
package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	hanRe         = regexp.MustCompile(`[\x{4e00}-\x{9fff}]+`)
	innerDigitGap = regexp.MustCompile(`(\d) (\d)`)
)

// Tight collapses a cell to its synonym-matching form: every whitespace
// character removed, uppercased, and the ASCII and full-width colons dropped.
func Tight(s string) string {
	if s == "" {
		return ""
	}
	s = whitespaceRe.ReplaceAllString(s, "")
	s = strings.ToUpper(s)
	s = strings.NewReplacer(":", "", "：", "").Replace(s)
	return s
}

// Loose keeps a cell readable while stripping workbook noise: Han characters
// removed, newlines folded into spaces, space runs collapsed, ends trimmed.
func Loose(s string) string {
	if s == "" {
		return ""
	}
	s = hanRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// IsNumeric reports whether the cell parses as a decimal number once single
// spaces between digit groups ("12 345") are removed.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for {
		collapsed := innerDigitGap.ReplaceAllString(s, "$1$2")
		if collapsed == s {
			break
		}
		s = collapsed
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// HasDigit reports whether the string contains at least one ASCII digit.
func HasDigit(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
}
