package billing

import (
	"backend/models"
)

// Item is one cart line handed to the calculator: a product snapshot plus a
// quantity already expressed in, or convertible to, the product's unit.
type Item struct {
	Product  models.Product
	Quantity float64
	Unit     string // empty means the product's own unit
}

// LineResult carries the priced components of a single line. LineTotal is
// always UnitPriceWithGST * NormalizedQty.
type LineResult struct {
	NormalizedQty       float64
	DiscountedUnitPrice float64
	GSTAmount           float64 // per normalized unit
	UnitPriceWithGST    float64
	LineTotal           float64
}

type CartTotals struct {
	Subtotal   float64 `json:"subtotal"`
	TotalGST   float64 `json:"totalgst"`
	GrandTotal float64 `json:"grandtotal"`
}

// PriceLine prices one line for a customer tier. Quantity is normalized to
// the product unit first; the tier discount applies to the unit price, GST
// applies to the discounted price. No intermediate rounding.
func PriceLine(p models.Product, qty float64, inputUnit string, tier models.CustomerTier) LineResult {
	unit := inputUnit
	if unit == "" {
		unit = p.Unit
	}
	normalizedQty, _ := Normalize(qty, unit, p.Unit)

	discounted := p.Price * tier.Multiplier()
	gst := discounted * float64(p.GSTPercent) / 100
	withGST := discounted + gst

	return LineResult{
		NormalizedQty:       normalizedQty,
		DiscountedUnitPrice: discounted,
		GSTAmount:           gst,
		UnitPriceWithGST:    withGST,
		LineTotal:           withGST * normalizedQty,
	}
}

// PriceCart aggregates per-line results into cart totals. It has no side
// effects and is safe to call on every cart mutation for a live display.
func PriceCart(items []Item, tier models.CustomerTier) CartTotals {
	var t CartTotals
	for _, it := range items {
		r := PriceLine(it.Product, it.Quantity, it.Unit, tier)
		t.Subtotal += r.DiscountedUnitPrice * r.NormalizedQty
		t.TotalGST += r.GSTAmount * r.NormalizedQty
		t.GrandTotal += r.UnitPriceWithGST * r.NormalizedQty
	}
	return t
}
