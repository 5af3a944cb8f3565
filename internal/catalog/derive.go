package catalog

import (
	"regexp"
	"strings"
)

// knownColors is the closed set of color names recognized as a trailing
// color token when the description lacks the explicit " COLOR " marker.
var knownColors = []string{
	"ROJO", "NEGRO", "BLANCO", "AZUL", "GRIS",
	"VERDE", "BEIGE", "MARRON", "MARRÓN", "PLATA", "AMARILLO",
}

var sizeMarker = regexp.MustCompile(`TALLE\s+([A-Z0-9]+)`)

// ModelAndColor splits a description into its model base and trailing color.
//
// The " COLOR " marker wins when present: everything after it is the color.
// Otherwise the last whitespace token is tested against the known color set.
// If neither rule matches, the whole description is the model with no color.
func ModelAndColor(description string) (modelBase, color string) {
	text := strings.TrimSpace(description)
	if text == "" {
		return "", ""
	}

	upper := strings.ToUpper(text)
	if idx := strings.LastIndex(upper, " COLOR "); idx != -1 {
		return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+7:])
	}

	parts := strings.Fields(text)
	last := strings.ToUpper(parts[len(parts)-1])
	for _, c := range knownColors {
		if last == c {
			return strings.Join(parts[:len(parts)-1], " "), last
		}
	}

	return text, ""
}

// ModelBase returns the uppercased model base used as a grouping key.
func ModelBase(description string) string {
	base, _ := ModelAndColor(description)
	return strings.ToUpper(base)
}

// SizeFromDescription extracts the token following the TALLE marker.
// Absence yields the empty string.
func SizeFromDescription(description string) string {
	m := sizeMarker.FindStringSubmatch(strings.ToUpper(description))
	if m == nil {
		return ""
	}
	return m[1]
}

// StripSize removes the TALLE marker and its token, yielding the size-free
// model base used to group helmet and apparel variants.
func StripSize(description string) string {
	return strings.TrimSpace(sizeMarker.ReplaceAllString(strings.ToUpper(description), ""))
}

// HelmetType buckets a helmet by the construction keyword in its description.
func HelmetType(description string) string {
	d := strings.ToUpper(description)
	switch {
	case strings.Contains(d, "INTEGRAL"):
		return "Integral"
	case strings.Contains(d, "REBATIBLE"):
		return "Rebatible"
	case strings.Contains(d, "CROSS"):
		return "Cross"
	case strings.Contains(d, "ABIERTO"):
		return "Abierto"
	default:
		return "Otro"
	}
}
