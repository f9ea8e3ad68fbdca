package domain

import "strings"

// NormalizeText is the comparison form of free text such as tags and
// subject filters: lowercase, trimmed, with every whitespace run folded to
// a single space. Punctuation and diacritics are kept.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
