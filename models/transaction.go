package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentUPI    PaymentMethod = "UPI"
	PaymentCard   PaymentMethod = "CARD"
	PaymentUdhaar PaymentMethod = "UDHAAR" // deferred payment, goes on the customer ledger
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCard, PaymentUdhaar:
		return true
	}
	return false
}

// Deferred reports whether the method leaves the amount outstanding on the
// customer's udhaar ledger instead of settling at the counter.
func (m PaymentMethod) Deferred() bool {
	return m == PaymentUdhaar
}

// TransactionItem snapshots a product at sale time. Later product edits must
// never alter a committed bill, so name, price and GST are copied here.
type TransactionItem struct {
	ProductID string  `bson:"productid" json:"productid"`
	Name      string  `bson:"name" json:"name"`
	Qty       float64 `bson:"qty" json:"qty"` // in the product's canonical unit
	Unit      string  `bson:"unit" json:"unit"`
	Price     float64 `bson:"price" json:"price"` // discounted unit price, pre-GST
	GST       int     `bson:"gst" json:"gst"`
	Total     float64 `bson:"total" json:"total"`
}

// Transaction is immutable once inserted. The core never updates or deletes
// transaction documents.
type Transaction struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BillNo     string             `bson:"billno" json:"billno"`
	Items      []TransactionItem  `bson:"items" json:"items"`
	Subtotal   float64            `bson:"subtotal" json:"subtotal"`
	TotalGST   float64            `bson:"totalgst" json:"totalgst"`
	GrandTotal float64            `bson:"grandtotal" json:"grandtotal"`
	Payment    PaymentMethod      `bson:"payment" json:"payment"`
	CustomerID string             `bson:"customerid,omitempty" json:"customerid,omitempty"`
	CashierID  string             `bson:"cashierid" json:"cashierid"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	IsReturn   bool               `bson:"isreturn" json:"isreturn"`
}
