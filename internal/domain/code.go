package domain

import "strings"

// NormalizeCode reduces a product code to its canonical comparison form:
// uppercase with every non-alphanumeric character removed. Flexxus emits the
// same code with different casing and punctuation depending on the endpoint,
// so all code equality checks go through this.
func NormalizeCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(code)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StripLeadingZeros removes leading zeros from a code. "00123" becomes "123".
func StripLeadingZeros(code string) string {
	return strings.TrimLeft(strings.TrimSpace(code), "0")
}

// PadCode left-pads a code with zeros to the canonical 5-digit storage width
// used by the overrides file.
func PadCode(code string) string {
	code = strings.TrimSpace(code)
	for len(code) < 5 {
		code = "0" + code
	}
	return code
}

// CodeVariants returns the surface forms under which a code may appear:
// as submitted, zero-stripped, and zero-padded to 5 characters. Lookups
// against the inventory index and the overrides mapping must try all of them.
func CodeVariants(code string) []string {
	code = strings.TrimSpace(code)
	stripped := StripLeadingZeros(code)
	padded := PadCode(stripped)

	variants := []string{code}
	if stripped != code {
		variants = append(variants, stripped)
	}
	if padded != code && padded != stripped {
		variants = append(variants, padded)
	}
	return variants
}

// CanonicalCode collapses every surface form of a code (leading zeros,
// punctuation, casing) into one comparison key.
func CanonicalCode(code string) string {
	return NormalizeCode(StripLeadingZeros(code))
}

// SameCode reports whether two codes refer to the same product. An empty
// code never matches anything.
func SameCode(a, b string) bool {
	ca, cb := CanonicalCode(a), CanonicalCode(b)
	return ca != "" && ca == cb
}
