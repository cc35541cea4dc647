package catalogsync

import (
	"strconv"
	"strings"
)

// Spreadsheet column layout. The sheet has no reliable header row, so the
// mapping is positional; precedence below mirrors how the sheet is
// actually filled in.
const (
	colName       = 0
	colCategory   = 6
	colBrand      = 8
	colFolderPath = 9
)

// descriptionColumns is the fallback chain for the description text.
var descriptionColumns = []int{4, 2, 3, 5}

// priceColumns are checked first; only then is the whole row scanned for a
// currency-bearing cell.
var priceColumns = []int{11, 10, 12}

// ParsePrice extracts a price from a raw cell value. It refuses URLs (they
// carry digits and dots but are not prices), strips currency symbols, and
// disambiguates separators: both "," and "." present means "," is a
// thousands separator; "," alone is a decimal comma. Negative, non-finite
// and implausibly large (>100000) values are rejected.
func ParsePrice(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return 0, false
	}

	var cleaned strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			cleaned.WriteRune(r)
		}
	}
	value := cleaned.String()
	if value == "" {
		return 0, false
	}

	hasComma := strings.Contains(value, ",")
	hasDot := strings.Contains(value, ".")
	switch {
	case hasComma && hasDot:
		value = strings.ReplaceAll(value, ",", "")
	case hasComma:
		value = strings.ReplaceAll(value, ",", ".")
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 || parsed > 100000 {
		return 0, false
	}
	return parsed, true
}

// DetectPrice finds the row's price: preferred columns first, then any cell
// carrying a pound sign. Returns false when no cell parses, in which case
// the row is dropped rather than priced at zero.
func DetectPrice(row []string) (float64, bool) {
	for _, idx := range priceColumns {
		if idx < len(row) {
			if price, ok := ParsePrice(row[idx]); ok {
				return price, true
			}
		}
	}
	for _, cell := range row {
		// "¬£" is the UTF-8 pound sign seen through a Latin-1 export;
		// the sheet contains both spellings.
		if strings.Contains(cell, "£") || strings.Contains(cell, "¬£") {
			if price, ok := ParsePrice(cell); ok {
				return price, true
			}
		}
	}
	return 0, false
}
