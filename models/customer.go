package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerTier classifies a customer for pricing. The set is closed: every
// tier maps to exactly one discount multiplier, and anything outside the set
// falls back to no discount.
type CustomerTier string

const (
	TierHouse     CustomerTier = "house"
	TierSmallShop CustomerTier = "small_shop"
	TierHotel     CustomerTier = "hotel"
	TierFunction  CustomerTier = "function"
	TierWholesale CustomerTier = "wholesale"
	TierVIP       CustomerTier = "vip"
)

type TierProfile struct {
	Label       string
	Pricing     float64 // multiplier applied to the product's base price
	CreditLimit float64 // default udhaar limit for new customers of this tier
}

var TierProfiles = map[CustomerTier]TierProfile{
	TierHouse:     {Label: "House / Family", Pricing: 1.0, CreditLimit: 2000},
	TierSmallShop: {Label: "Small Shop / Retailer", Pricing: 0.9, CreditLimit: 5000},
	TierHotel:     {Label: "Hotel / Restaurant", Pricing: 0.88, CreditLimit: 10000},
	TierFunction:  {Label: "Function / Event", Pricing: 0.92, CreditLimit: 15000},
	TierWholesale: {Label: "Wholesale Buyer", Pricing: 0.8, CreditLimit: 25000},
	TierVIP:       {Label: "Regular VIP", Pricing: 1.0, CreditLimit: 5000},
}

// Multiplier returns the pricing factor for the tier, 1.0 for unknown tiers.
func (t CustomerTier) Multiplier() float64 {
	if p, ok := TierProfiles[t]; ok {
		return p.Pricing
	}
	return 1.0
}

type Customer struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UdhaarID          string             `bson:"udhaarid" json:"udhaarid"`
	Name              string             `bson:"name" json:"name" binding:"required"`
	Phone             string             `bson:"phone" json:"phone" binding:"required"`
	HouseNo           string             `bson:"houseno,omitempty" json:"houseno,omitempty"`
	WhatsAppNumber    string             `bson:"whatsappnumber,omitempty" json:"whatsappnumber,omitempty"`
	Tier              CustomerTier       `bson:"tier" json:"tier"`
	CreditLimit       float64            `bson:"creditlimit" json:"creditlimit"`
	TotalOutstanding  float64            `bson:"totaloutstanding" json:"totaloutstanding"`
	FirstPurchaseDate string             `bson:"firstpurchasedate,omitempty" json:"firstpurchasedate,omitempty"`
	IsActive          bool               `bson:"isactive" json:"isactive"`
}

type UpdateCustomer struct {
	Name           string       `json:"name,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	HouseNo        string       `json:"houseno,omitempty"`
	WhatsAppNumber string       `json:"whatsappnumber,omitempty"`
	Tier           CustomerTier `json:"tier,omitempty"`
	CreditLimit    *float64     `json:"creditlimit,omitempty"`
}
