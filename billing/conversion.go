// Package billing prices cart lines: unit normalization, customer-tier
// discounts and GST. All functions here are pure; rounding happens only at
// formatting boundaries so per-line errors never compound across a bill.
package billing

import (
	"fmt"
	"strings"
)

type conversionRule struct {
	base   string
	factor float64 // multiply the entered qty by this to get base-unit qty
}

// Every recognized unit string maps to its base unit. A 500 "g" entry on a
// kg-priced product becomes 0.5 kg instead of a 1000x pricing error.
var conversionTable = map[string]conversionRule{
	// weight
	"g":         {base: "kg", factor: 0.001},
	"gm":        {base: "kg", factor: 0.001},
	"gram":      {base: "kg", factor: 0.001},
	"grams":     {base: "kg", factor: 0.001},
	"kg":        {base: "kg", factor: 1},
	"kilogram":  {base: "kg", factor: 1},
	"kilograms": {base: "kg", factor: 1},
	// volume
	"ml":         {base: "ltr", factor: 0.001},
	"milliliter": {base: "ltr", factor: 0.001},
	"ltr":        {base: "ltr", factor: 1},
	"litre":      {base: "ltr", factor: 1},
	"liter":      {base: "ltr", factor: 1},
	"l":          {base: "ltr", factor: 1},
	// count
	"pcs":     {base: "pcs", factor: 1},
	"piece":   {base: "pcs", factor: 1},
	"pieces":  {base: "pcs", factor: 1},
	"pkt":     {base: "pcs", factor: 1},
	"packet":  {base: "pcs", factor: 1},
	"packets": {base: "pcs", factor: 1},
	"bag":     {base: "pcs", factor: 1},
	"box":     {base: "pcs", factor: 1},
	"dozen":   {base: "pcs", factor: 12},
}

// Normalize converts qty from inputUnit to the product's canonical unit.
// Unrecognized units come back unchanged with the original unit string, and
// so does a unit whose base differs from productUnit (no converting grams
// into a pieces count). Callers that need hard validation should check
// Compatible first.
func Normalize(qty float64, inputUnit, productUnit string) (float64, string) {
	key := strings.ToLower(strings.TrimSpace(inputUnit))
	rule, ok := conversionTable[key]
	if !ok {
		return qty, inputUnit
	}
	if productUnit != "" && rule.base != strings.ToLower(strings.TrimSpace(productUnit)) {
		return qty, inputUnit
	}
	return qty * rule.factor, rule.base
}

// Compatible reports whether inputUnit is recognized and shares a base with
// productUnit.
func Compatible(inputUnit, productUnit string) bool {
	rule, ok := conversionTable[strings.ToLower(strings.TrimSpace(inputUnit))]
	if !ok {
		return false
	}
	return rule.base == strings.ToLower(strings.TrimSpace(productUnit))
}

// IsWeightBased reports whether unit is a weight or volume unit, i.e. the
// product is sold by measure rather than by count.
func IsWeightBased(unit string) bool {
	rule, ok := conversionTable[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return false
	}
	return rule.base == "kg" || rule.base == "ltr"
}

// FormatCurrency renders an amount for display. This is the only place the
// two-decimal rounding happens.
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}
