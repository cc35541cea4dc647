// Package textkit holds the string normalisation shared by the import and
// sync pipelines: slug derivation and the natural (numeric-aware) ordering
// used for folder and file names.
package textkit

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Slugify folds value to ASCII, lowercases it and collapses every run of
// non-alphanumeric characters into a single hyphen. An input with nothing
// usable left becomes "product" so a slug is never empty.
func Slugify(value string) string {
	folded := norm.NFKD.String(value)

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := true // swallow leading separators
	for _, r := range folded {
		if unicode.Is(unicode.Mn, r) || r > unicode.MaxASCII {
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "product"
	}
	return slug
}

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English, collate.Numeric, collate.Loose)
)

// Compare orders a and b the way a file browser would: case-insensitive,
// with digit runs compared by value so "c2" sorts before "c10".
func Compare(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// Less is a sort.Slice-friendly wrapper around Compare.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}
