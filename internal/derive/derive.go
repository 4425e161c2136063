// Package derive computes the three searchable fields of a catalog item
// (description, synonym, keywords) from its raw attributes. All functions are
// pure; the lifecycle core calls them on every transition that touches a
// dependency column.
package derive

import (
	"strconv"
	"strings"
)

// SpecPair is one KEY: VALUE segment of a specification string.
type SpecPair struct {
	Key   string
	Value string
}

// ParseSpecification splits a "KEY: VALUE; KEY: VALUE" string into ordered
// pairs. Segments without a colon are dropped; the count of dropped segments
// is returned so the caller can warn about malformed input instead of losing
// it silently.
func ParseSpecification(spec string) ([]SpecPair, int) {
	if strings.TrimSpace(spec) == "" {
		return nil, 0
	}

	var pairs []SpecPair
	dropped := 0
	for _, seg := range strings.Split(spec, ";") {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		key, value, found := strings.Cut(seg, ":")
		if !found {
			dropped++
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if value == "" {
			dropped++
			continue
		}
		pairs = append(pairs, SpecPair{Key: key, Value: value})
	}
	return pairs, dropped
}

// Description is the space-joined list of specification values, keys discarded.
func Description(spec string) string {
	pairs, _ := ParseSpecification(spec)
	values := make([]string, 0, len(pairs))
	for _, p := range pairs {
		values = append(values, p.Value)
	}
	return strings.Join(values, " ")
}

// IsPlaceholder reports whether a business field means "not applicable":
// empty, or containing only dash and whitespace characters. A lone dash is
// the catalog convention for an absent value.
func IsPlaceholder(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	for _, r := range trimmed {
		if r != '-' && r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

// QuantityToken renders "2KG" style tokens. Empty when quantity is not a
// positive number.
func QuantityToken(quantity float64, unit string) string {
	if quantity <= 0 {
		return ""
	}
	return strconv.FormatFloat(quantity, 'f', -1, 64) + strings.TrimSpace(unit)
}

// Synonym builds the human-readable composite label:
// item, description, brand and the quantity token joined by spaces, then the
// packaging clause and, for multi-unit commercial packs, the commercial
// clause. Placeholder dashes in brand and packaging count as absent.
func Synonym(item, description, brand string, quantity float64, unit, packaging string, commercialQty int, commercialPackaging string) string {
	parts := make([]string, 0, 6)
	appendPart := func(s string) {
		if !IsPlaceholder(s) {
			parts = append(parts, strings.TrimSpace(s))
		}
	}

	appendPart(item)
	appendPart(description)
	appendPart(brand)
	appendPart(QuantityToken(quantity, unit))

	if !IsPlaceholder(packaging) {
		parts = append(parts, "COMERCIALIZADO EM "+strings.TrimSpace(packaging))
	}
	if commercialQty != 0 && commercialQty != 1 {
		clause := "COM " + strconv.Itoa(commercialQty)
		if !IsPlaceholder(commercialPackaging) {
			clause += " " + strings.TrimSpace(commercialPackaging)
		}
		parts = append(parts, clause)
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// Keywords builds the comma-joined searchable tag string. Subfamily falls
// back to family when it is a placeholder; empty parts are skipped; the
// quantity token is appended as one more part when present.
func Keywords(subfamily, item, brand, packaging string, quantity float64, unit, family string) string {
	class := subfamily
	if IsPlaceholder(class) {
		class = family
	}

	parts := make([]string, 0, 5)
	for _, s := range []string{class, item, brand, packaging} {
		if !IsPlaceholder(s) {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	if token := QuantityToken(quantity, unit); token != "" {
		parts = append(parts, token)
	}

	return strings.Join(parts, ", ")
}
