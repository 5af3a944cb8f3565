package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00123", "00123"},
		{"ab-123", "AB123"},
		{"  a.b 12 ", "AB12"},
		{"código", "CDIGO"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCode(tt.in), "NormalizeCode(%q)", tt.in)
	}
}

func TestCodeVariants(t *testing.T) {
	assert.Equal(t, []string{"00123", "123"}, CodeVariants("00123"))
	assert.Equal(t, []string{"123", "00123"}, CodeVariants("123"))
	assert.Equal(t, []string{"98765"}, CodeVariants("98765"))
}

func TestPadCode(t *testing.T) {
	assert.Equal(t, "00123", PadCode("123"))
	assert.Equal(t, "98765", PadCode("98765"))
	assert.Equal(t, "123456", PadCode("123456"))
}

// Any surface form of a code must match any other surface form of the same
// code, in both directions.
func TestSameCode_VariantsAgree(t *testing.T) {
	forms := []string{"00123", "123", "0123", "1-2-3"}
	for _, a := range forms {
		for _, b := range forms {
			assert.True(t, SameCode(a, b), "SameCode(%q, %q)", a, b)
		}
	}

	assert.True(t, SameCode("00123", "123"))
	assert.True(t, SameCode("123", "00123"))
	assert.False(t, SameCode("123", "124"))
	assert.False(t, SameCode("", "123"))
	assert.False(t, SameCode("123", ""))
}

func TestOverrideMerge(t *testing.T) {
	price := 1000.0
	img := "x.jpg"

	merged := OverrideRecord{}.
		Merge(OverrideRecord{ManualPrice: &price}).
		Merge(OverrideRecord{PrimaryImage: &img})

	// Merge, not replace: both fields survive.
	if assert.NotNil(t, merged.ManualPrice) {
		assert.Equal(t, 1000.0, *merged.ManualPrice)
	}
	if assert.NotNil(t, merged.PrimaryImage) {
		assert.Equal(t, "x.jpg", *merged.PrimaryImage)
	}
	assert.Nil(t, merged.SpecSheetURL)
}
