package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GSTSlabs are the only tax rates a product may carry.
var GSTSlabs = []int{0, 5, 12, 18, 28}

func ValidGSTPercent(p int) bool {
	for _, s := range GSTSlabs {
		if p == s {
			return true
		}
	}
	return false
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name" binding:"required"`
	Category      string             `bson:"category" json:"category"`
	Unit          string             `bson:"unit" json:"unit" binding:"required"`
	Price         float64            `bson:"price" json:"price" binding:"required"`
	PurchasePrice float64            `bson:"purchaseprice" json:"purchaseprice"`
	GSTPercent    int                `bson:"gstpercent" json:"gstpercent"`
	CurrentStock  float64            `bson:"currentstock" json:"currentstock"`
	MinThreshold  float64            `bson:"minthreshold" json:"minthreshold"`
	SupplierID    string             `bson:"supplierid,omitempty" json:"supplierid,omitempty"`
	SupplierPhone string             `bson:"supplierphone,omitempty" json:"supplierphone,omitempty"`
	ImageURL      string             `bson:"imageurl,omitempty" json:"imageurl,omitempty"`
	PreviewURL    string             `bson:"previewurl,omitempty" json:"previewurl,omitempty"`
	IsWeightBased bool               `bson:"isweightbased" json:"isweightbased"`
	IsActive      bool               `bson:"isactive" json:"isactive"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt     time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type UpdateProduct struct {
	Name          string  `json:"name,omitempty"`
	Category      string  `json:"category,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	Price         float64 `json:"price,omitempty"`
	PurchasePrice float64 `json:"purchaseprice,omitempty"`
	GSTPercent    *int    `json:"gstpercent,omitempty"`
	MinThreshold  float64 `json:"minthreshold,omitempty"`
	SupplierID    string  `json:"supplierid,omitempty"`
	SupplierPhone string  `json:"supplierphone,omitempty"`
}
