package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"backend/billing"
	"backend/models"
)

const seedMarker = "seeded"

type seedProduct struct {
	Name          string
	Category      string
	Price         float64
	GST           int
	Stock         float64
	MinThreshold  float64
	Unit          string
	SupplierID    string
	SupplierPhone string
	PurchasePrice float64
}

// The demonstration dataset a fresh install starts with.
var seedProducts = []seedProduct{
	{"Basmati Rice", "Grains", 150, 5, 50, 10, "kg", "sup-1", "9876543210", 120},
	{"Toor Dal", "Pulses", 130, 5, 30, 8, "kg", "sup-1", "9876543210", 100},
	{"Amul Butter", "Dairy", 56, 12, 25, 5, "pcs", "sup-2", "9876543211", 48},
	{"Aashirvaad Atta", "Grains", 320, 5, 15, 5, "bag", "sup-1", "9876543210", 280},
	{"Sugar", "Essentials", 45, 5, 40, 10, "kg", "sup-3", "9876543212", 38},
	{"Sunflower Oil", "Oils", 180, 5, 3, 5, "ltr", "sup-3", "9876543212", 155},
	{"Red Chilli Powder", "Spices", 220, 12, 12, 3, "kg", "sup-4", "9876543213", 180},
	{"Maggi Noodles", "Snacks", 14, 18, 100, 20, "pcs", "sup-5", "9876543214", 11},
	{"Parle-G Biscuit", "Snacks", 10, 18, 2, 15, "pcs", "sup-5", "9876543214", 8},
	{"Haldi Powder", "Spices", 200, 5, 8, 3, "kg", "sup-4", "9876543213", 160},
}

type seedCustomer struct {
	UdhaarID    string
	Name        string
	Phone       string
	HouseNo     string
	Tier        models.CustomerTier
	Outstanding float64
	WhatsApp    string
	FirstSale   string
}

var seedCustomers = []seedCustomer{
	{"UDH-001", "Rajesh Kumar", "9001234567", "H-12", models.TierHouse, 450, "919001234567", "2025-01-15"},
	{"UDH-002", "Priya Sharma", "9001234568", "H-45", models.TierHouse, 0, "919001234568", "2025-02-10"},
	{"UDH-003", "Sai Krishna Store", "9001234569", "", models.TierSmallShop, 1200, "919001234569", "2025-01-01"},
	{"UDH-004", "Hotel Spice Garden", "9001234570", "", models.TierHotel, 3500, "919001234570", "2024-12-01"},
	{"UDH-005", "Meena Devi", "9001234571", "H-78", models.TierVIP, 200, "919001234571", "2024-11-20"},
}

// seedNeeded interprets the marker lookup result. Only a confirmed missing
// marker means seed; any other error is surfaced so a transient read failure
// cannot cause a double insert of the dataset.
func seedNeeded(err error) (bool, error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return true, nil
	default:
		return false, fmt.Errorf("read seed marker: %w", err)
	}
}

// EnsureSeed populates a fresh database with the demonstration dataset and
// sets a marker so it runs exactly once. Subsequent calls are no-ops.
func (s *Store) EnsureSeed(ctx context.Context) error {
	var marker bson.M
	needed, err := seedNeeded(s.meta.FindOne(ctx, bson.M{"_id": seedMarker}).Decode(&marker))
	if err != nil {
		return err
	}
	if !needed {
		return nil
	}

	products := make([]models.Product, len(seedProducts))
	ids := make([]string, len(seedProducts))
	now := time.Now()
	for i, sp := range seedProducts {
		p := models.Product{
			ID:            primitive.NewObjectID(),
			Name:          sp.Name,
			Category:      sp.Category,
			Unit:          sp.Unit,
			Price:         sp.Price,
			PurchasePrice: sp.PurchasePrice,
			GSTPercent:    sp.GST,
			CurrentStock:  sp.Stock,
			MinThreshold:  sp.MinThreshold,
			SupplierID:    sp.SupplierID,
			SupplierPhone: sp.SupplierPhone,
			IsWeightBased: billing.IsWeightBased(sp.Unit),
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		products[i] = p
		ids[i] = p.ID.Hex()
	}

	customers := make([]models.Customer, len(seedCustomers))
	customerIDs := make([]string, len(seedCustomers))
	for i, sc := range seedCustomers {
		c := models.Customer{
			ID:                primitive.NewObjectID(),
			UdhaarID:          sc.UdhaarID,
			Name:              sc.Name,
			Phone:             sc.Phone,
			HouseNo:           sc.HouseNo,
			WhatsAppNumber:    sc.WhatsApp,
			Tier:              sc.Tier,
			CreditLimit:       models.TierProfiles[sc.Tier].CreditLimit,
			TotalOutstanding:  sc.Outstanding,
			FirstPurchaseDate: sc.FirstSale,
			IsActive:          true,
		}
		customers[i] = c
		customerIDs[i] = c.ID.Hex()
	}

	transactions := []models.Transaction{
		{
			ID: primitive.NewObjectID(), BillNo: "#9001",
			Items: []models.TransactionItem{
				{ProductID: ids[0], Name: "Basmati Rice", Qty: 2, Unit: "kg", Price: 150, GST: 5, Total: 315},
				{ProductID: ids[4], Name: "Sugar", Qty: 1, Unit: "kg", Price: 45, GST: 5, Total: 47.25},
			},
			Subtotal: 345, TotalGST: 17.25, GrandTotal: 362.25,
			Payment: models.PaymentCash, CustomerID: customerIDs[0], CashierID: "cashier-1",
			Timestamp: now,
		},
		{
			ID: primitive.NewObjectID(), BillNo: "#9002",
			Items: []models.TransactionItem{
				{ProductID: ids[2], Name: "Amul Butter", Qty: 3, Unit: "pcs", Price: 56, GST: 12, Total: 188.16},
			},
			Subtotal: 168, TotalGST: 20.16, GrandTotal: 188.16,
			Payment: models.PaymentUPI, CustomerID: customerIDs[1], CashierID: "cashier-1",
			Timestamp: now,
		},
		{
			ID: primitive.NewObjectID(), BillNo: "#9003",
			Items: []models.TransactionItem{
				{ProductID: ids[3], Name: "Aashirvaad Atta", Qty: 5, Unit: "bag", Price: 320, GST: 5, Total: 1680},
				{ProductID: ids[5], Name: "Sunflower Oil", Qty: 3, Unit: "ltr", Price: 180, GST: 5, Total: 567},
			},
			Subtotal: 2140, TotalGST: 107, GrandTotal: 2247,
			Payment: models.PaymentUdhaar, CustomerID: customerIDs[3], CashierID: "cashier-1",
			Timestamp: now,
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users := []models.User{
		{ID: primitive.NewObjectID(), Name: "Owner", Phone: "9000000001", Role: models.RoleOwner, Password: string(hash), IsActive: true, CreatedAt: now},
		{ID: primitive.NewObjectID(), Name: "Counter Cashier", Phone: "9000000002", Role: models.RoleCashier, Password: string(hash), IsActive: true, CreatedAt: now},
	}

	productDocs := make([]interface{}, len(products))
	for i, p := range products {
		productDocs[i] = p
	}
	if _, err := s.products.InsertMany(ctx, productDocs); err != nil {
		return err
	}
	customerDocs := make([]interface{}, len(customers))
	for i, c := range customers {
		customerDocs[i] = c
	}
	if _, err := s.customers.InsertMany(ctx, customerDocs); err != nil {
		return err
	}
	txnDocs := make([]interface{}, len(transactions))
	for i, t := range transactions {
		txnDocs[i] = t
	}
	if _, err := s.transactions.InsertMany(ctx, txnDocs); err != nil {
		return err
	}
	userDocs := make([]interface{}, len(users))
	for i, u := range users {
		userDocs[i] = u
	}
	if _, err := s.users.InsertMany(ctx, userDocs); err != nil {
		return err
	}

	_, err = s.meta.UpdateOne(ctx,
		bson.M{"_id": seedMarker},
		bson.M{"$set": bson.M{"at": now}},
		options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	log.Println("seeded demonstration dataset")
	return nil
}
