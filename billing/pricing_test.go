package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/models"
)

func product(name, unit string, price float64, gst int) models.Product {
	return models.Product{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Unit:       unit,
		Price:      price,
		GSTPercent: gst,
		IsActive:   true,
	}
}

func TestPriceLineWeighedEntry(t *testing.T) {
	// 2000 g of a 150/kg product at 5% GST, no discount.
	rice := product("Basmati Rice", "kg", 150, 5)
	r := PriceLine(rice, 2000, "g", models.TierHouse)

	assert.InDelta(t, 2.0, r.NormalizedQty, 1e-9)
	assert.InDelta(t, 150.0, r.DiscountedUnitPrice, 1e-9)
	assert.InDelta(t, 7.5, r.GSTAmount, 1e-9)
	assert.InDelta(t, 157.5, r.UnitPriceWithGST, 1e-9)
	assert.InDelta(t, 315.0, r.LineTotal, 1e-9)
}

func TestPriceLineInternalConsistency(t *testing.T) {
	tiers := []models.CustomerTier{
		models.TierHouse, models.TierSmallShop, models.TierHotel,
		models.TierFunction, models.TierWholesale, models.TierVIP,
		models.CustomerTier("nonsense"),
	}
	butter := product("Amul Butter", "pcs", 56, 12)
	for _, tier := range tiers {
		r := PriceLine(butter, 3, "", tier)
		assert.InDelta(t, r.UnitPriceWithGST*r.NormalizedQty, r.LineTotal, 1e-9, string(tier))
		assert.InDelta(t, r.DiscountedUnitPrice+r.GSTAmount, r.UnitPriceWithGST, 1e-9, string(tier))
	}
}

func TestPriceLineUnknownTierNoDiscount(t *testing.T) {
	oil := product("Sunflower Oil", "ltr", 180, 5)
	known := PriceLine(oil, 1, "", models.TierHouse)
	unknown := PriceLine(oil, 1, "", models.CustomerTier("mystery"))
	assert.Equal(t, known, unknown)
}

func TestPriceCartSmallShopDiscount(t *testing.T) {
	// Two lines with the small-shop multiplier 0.9:
	// 1 kg at 130/kg 5% and 3 pcs at 56/pcs 12%.
	dal := product("Toor Dal", "kg", 130, 5)
	butter := product("Amul Butter", "pcs", 56, 12)

	items := []Item{
		{Product: dal, Quantity: 1},
		{Product: butter, Quantity: 3},
	}
	totals := PriceCart(items, models.TierSmallShop)

	assert.InDelta(t, 268.2, totals.Subtotal, 1e-9)
	assert.InDelta(t, 23.994, totals.TotalGST, 1e-9)
	assert.InDelta(t, 292.194, totals.GrandTotal, 1e-9)
}

func TestPriceCartEqualsSumOfLines(t *testing.T) {
	items := []Item{
		{Product: product("Basmati Rice", "kg", 150, 5), Quantity: 2.5},
		{Product: product("Maggi Noodles", "pcs", 14, 18), Quantity: 7},
		{Product: product("Sunflower Oil", "ltr", 180, 5), Quantity: 0.5},
	}
	tier := models.TierHotel
	totals := PriceCart(items, tier)

	var subtotal, gst, grand float64
	for _, it := range items {
		r := PriceLine(it.Product, it.Quantity, it.Unit, tier)
		subtotal += r.DiscountedUnitPrice * r.NormalizedQty
		gst += r.GSTAmount * r.NormalizedQty
		grand += r.LineTotal
	}
	require.InDelta(t, subtotal, totals.Subtotal, 1e-9)
	require.InDelta(t, gst, totals.TotalGST, 1e-9)
	require.InDelta(t, grand, totals.GrandTotal, 1e-9)
}

func TestPriceCartEmpty(t *testing.T) {
	totals := PriceCart(nil, models.TierHouse)
	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.TotalGST)
	assert.Zero(t, totals.GrandTotal)
}
