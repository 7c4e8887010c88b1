package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierMultipliers(t *testing.T) {
	cases := []struct {
		tier CustomerTier
		want float64
	}{
		{TierHouse, 1.0},
		{TierSmallShop, 0.9},
		{TierHotel, 0.88},
		{TierFunction, 0.92},
		{TierWholesale, 0.8},
		{TierVIP, 1.0},
		{CustomerTier("corporate"), 1.0}, // unknown tier pays full price
		{CustomerTier(""), 1.0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.tier.Multiplier(), "tier %q", c.tier)
	}
}

func TestTierDefaultCreditLimits(t *testing.T) {
	assert.Equal(t, 2000.0, TierProfiles[TierHouse].CreditLimit)
	assert.Equal(t, 5000.0, TierProfiles[TierSmallShop].CreditLimit)
	assert.Equal(t, 10000.0, TierProfiles[TierHotel].CreditLimit)
	assert.Equal(t, 15000.0, TierProfiles[TierFunction].CreditLimit)
	assert.Equal(t, 25000.0, TierProfiles[TierWholesale].CreditLimit)
	assert.Equal(t, 5000.0, TierProfiles[TierVIP].CreditLimit)
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentCash, PaymentUPI, PaymentCard, PaymentUdhaar} {
		assert.True(t, m.Valid(), "%s", m)
	}
	assert.False(t, PaymentMethod("CHEQUE").Valid())
	assert.False(t, PaymentMethod("").Valid())
	assert.False(t, PaymentMethod("cash").Valid(), "methods are case sensitive")
}

func TestPaymentMethodDeferred(t *testing.T) {
	assert.True(t, PaymentUdhaar.Deferred())
	assert.False(t, PaymentCash.Deferred())
	assert.False(t, PaymentUPI.Deferred())
	assert.False(t, PaymentCard.Deferred())
}

func TestValidGSTPercent(t *testing.T) {
	for _, s := range GSTSlabs {
		assert.True(t, ValidGSTPercent(s), "slab %d", s)
	}
	assert.False(t, ValidGSTPercent(10))
	assert.False(t, ValidGSTPercent(-5))
	assert.False(t, ValidGSTPercent(3))
}
