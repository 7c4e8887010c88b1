package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeConversions(t *testing.T) {
	tests := []struct {
		name        string
		qty         float64
		inputUnit   string
		productUnit string
		wantQty     float64
		wantUnit    string
	}{
		{"grams to kg", 500, "g", "kg", 0.5, "kg"},
		{"gm alias", 250, "gm", "kg", 0.25, "kg"},
		{"two kilos of grams", 2000, "g", "kg", 2.0, "kg"},
		{"ml to litres", 750, "ml", "ltr", 0.75, "ltr"},
		{"dozen to pieces", 2, "dozen", "pcs", 24, "pcs"},
		{"bag counts as one", 3, "bag", "pcs", 3, "pcs"},
		{"identity kg", 1.5, "kg", "kg", 1.5, "kg"},
		{"case insensitive", 500, " G ", "kg", 0.5, "kg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, unit := Normalize(tt.qty, tt.inputUnit, tt.productUnit)
			assert.InDelta(t, tt.wantQty, qty, 1e-9)
			assert.Equal(t, tt.wantUnit, unit)
		})
	}
}

func TestNormalizeIdempotentOnBaseUnit(t *testing.T) {
	for _, u := range []string{"kg", "ltr", "pcs"} {
		qty, unit := Normalize(7.25, u, u)
		assert.Equal(t, 7.25, qty, u)
		assert.Equal(t, u, unit)
	}
}

func TestNormalizeUnrecognizedUnitPassesThrough(t *testing.T) {
	qty, unit := Normalize(42, "bundles", "kg")
	assert.Equal(t, 42.0, qty)
	assert.Equal(t, "bundles", unit)
}

func TestNormalizeRefusesCrossDimension(t *testing.T) {
	// 500 g against a pieces-priced product must not become a count.
	qty, unit := Normalize(500, "g", "pcs")
	assert.Equal(t, 500.0, qty)
	assert.Equal(t, "g", unit)

	qty, unit = Normalize(2, "dozen", "kg")
	assert.Equal(t, 2.0, qty)
	assert.Equal(t, "dozen", unit)
}

func TestCompatible(t *testing.T) {
	assert.True(t, Compatible("g", "kg"))
	assert.True(t, Compatible("dozen", "pcs"))
	assert.False(t, Compatible("g", "pcs"))
	assert.False(t, Compatible("bundles", "kg"))
}

func TestIsWeightBased(t *testing.T) {
	assert.True(t, IsWeightBased("kg"))
	assert.True(t, IsWeightBased("ltr"))
	assert.True(t, IsWeightBased("ml"))
	assert.False(t, IsWeightBased("pcs"))
	assert.False(t, IsWeightBased("bag"))
	assert.False(t, IsWeightBased("whatever"))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "₹315.00", FormatCurrency(315))
	assert.Equal(t, "₹292.19", FormatCurrency(292.194))
}
