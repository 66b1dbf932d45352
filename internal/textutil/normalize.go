package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// noiseReplacer strips the bracket and separator characters platforms wrap
// around edition suffixes, featured artists, and version tags.
var noiseReplacer = strings.NewReplacer(
	"(", "",
	")", "",
	"[", "",
	"]", "",
	"{", "",
	"}", "",
	"-", "",
	"_", "",
)

// Normalize converts text to a canonical comparison key: half-width folded,
// lowercased, with all whitespace and bracket/punctuation noise removed.
// It is total over all inputs; the empty string normalizes to itself.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	folded := width.Fold.String(text)
	lowered := strings.ToLower(folded)
	stripped := noiseReplacer.Replace(lowered)
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ContainsNormalized reports whether the normalized haystack contains the
// normalized needle. An empty needle never matches; search results routinely
// contain empty cells and an empty term matching everything would defeat the
// disambiguation the normalizer exists for.
func ContainsNormalized(haystack, needle string) bool {
	n := Normalize(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Normalize(haystack), n)
}

// MutualContains reports whether either normalized string contains the other.
// Platform title cells truncate long album names and append edition tags, so
// containment in either direction counts as a match.
func MutualContains(a, b string) bool {
	na := Normalize(a)
	nb := Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
