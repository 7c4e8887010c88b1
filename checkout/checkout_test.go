package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/cart"
	"backend/models"
)

// fakeStore keeps everything in maps and supports failure injection per
// step, standing in for the mongo-backed store. Guarded like the real one
// so concurrent checkouts can run against it.
type fakeStore struct {
	mu           sync.Mutex
	products     map[string]*models.Product
	customers    map[string]*models.Customer
	transactions []models.Transaction

	failInsert    error
	failDecrement map[string]error
	failBalance   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:      make(map[string]*models.Product),
		customers:     make(map[string]*models.Customer),
		failDecrement: make(map[string]error),
	}
}

func (f *fakeStore) addProduct(name, unit string, price float64, gst int, stock float64) models.Product {
	p := models.Product{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Unit:         unit,
		Price:        price,
		GSTPercent:   gst,
		CurrentStock: stock,
		IsActive:     true,
	}
	f.products[p.ID.Hex()] = &p
	return p
}

func (f *fakeStore) addCustomer(name string, tier models.CustomerTier, outstanding, limit float64) *models.Customer {
	c := models.Customer{
		ID:               primitive.NewObjectID(),
		Name:             name,
		Tier:             tier,
		TotalOutstanding: outstanding,
		CreditLimit:      limit,
		IsActive:         true,
	}
	f.customers[c.ID.Hex()] = &c
	return &c
}

func (f *fakeStore) Product(ctx context.Context, id string) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return models.Product{}, errors.New("not found")
	}
	return *p, nil
}

func (f *fakeStore) InsertTransaction(ctx context.Context, t models.Transaction) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert != nil {
		return "", f.failInsert
	}
	t.ID = primitive.NewObjectID()
	f.transactions = append(f.transactions, t)
	return t.ID.Hex(), nil
}

func (f *fakeStore) DecrementStock(ctx context.Context, id string, qty float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failDecrement[id]; err != nil {
		return err
	}
	p, ok := f.products[id]
	if !ok {
		return errors.New("not found")
	}
	if p.CurrentStock < qty {
		return fmt.Errorf("insufficient stock for product %s", id)
	}
	p.CurrentStock -= qty
	return nil
}

func (f *fakeStore) AdjustBalance(ctx context.Context, customerID string, delta float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failBalance != nil {
		return f.failBalance
	}
	c, ok := f.customers[customerID]
	if !ok {
		return errors.New("not found")
	}
	c.TotalOutstanding += delta
	return nil
}

type fakeRenderer struct {
	url string
	err error
}

func (r *fakeRenderer) RenderBill(ctx context.Context, t models.Transaction) (string, error) {
	return r.url, r.err
}

type fakeSender struct {
	sent []string
	err  error
}

func (s *fakeSender) SendBill(ctx context.Context, phone, billNo, artifactURL string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, phone)
	return nil
}

func TestCheckoutEmptyCart(t *testing.T) {
	fs := newFakeStore()
	o := New(fs, &fakeRenderer{url: "u"}, &fakeSender{})

	_, err := o.Checkout(context.Background(), cart.New(), nil, models.PaymentCash, "cashier-1")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, fs.transactions)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	fs := newFakeStore()
	oil := fs.addProduct("Sunflower Oil", "ltr", 180, 5, 3)

	crt := cart.New()
	crt.AddItem(oil, 10)

	o := New(fs, &fakeRenderer{url: "u"}, &fakeSender{})
	_, err := o.Checkout(context.Background(), crt, nil, models.PaymentCash, "cashier-1")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Reason, "Sunflower Oil")
	// Nothing was written: no transaction, stock untouched.
	assert.Empty(t, fs.transactions)
	assert.Equal(t, 3.0, fs.products[oil.ID.Hex()].CurrentStock)
}

func TestCheckoutCashSale(t *testing.T) {
	fs := newFakeStore()
	rice := fs.addProduct("Basmati Rice", "kg", 150, 5, 50)
	sugar := fs.addProduct("Sugar", "kg", 45, 5, 40)
	customer := fs.addCustomer("Rajesh Kumar", models.TierHouse, 450, 2000)

	crt := cart.New()
	crt.AddItem(rice, 2)
	crt.AddItem(sugar, 1)
	crt.AttachCustomer(customer.ID.Hex(), customer.Tier)

	sender := &fakeSender{}
	o := New(fs, &fakeRenderer{url: "http://x/bill.html"}, sender)
	res, err := o.Checkout(context.Background(), crt, customer, models.PaymentCash, "cashier-1")
	require.NoError(t, err)

	assert.InDelta(t, 345.0, res.Totals.Subtotal, 1e-9)
	assert.InDelta(t, 17.25, res.Totals.TotalGST, 1e-9)
	assert.InDelta(t, 362.25, res.Totals.GrandTotal, 1e-9)

	// Stock depleted by the sold quantities.
	assert.Equal(t, 48.0, fs.products[rice.ID.Hex()].CurrentStock)
	assert.Equal(t, 39.0, fs.products[sugar.ID.Hex()].CurrentStock)

	// Cash does not touch the ledger.
	assert.Equal(t, 450.0, customer.TotalOutstanding)

	// Bill committed once, cart cleared, back to idle.
	require.Len(t, fs.transactions, 1)
	txn := fs.transactions[0]
	assert.Equal(t, models.PaymentCash, txn.Payment)
	require.Len(t, txn.Items, 2)
	assert.Equal(t, "Basmati Rice", txn.Items[0].Name)
	assert.InDelta(t, 315.0, txn.Items[0].Total, 1e-9)
	assert.Equal(t, 0, crt.Len())
	assert.Equal(t, StateIdle, o.State())
	assert.Equal(t, "http://x/bill.html", res.ArtifactURL)
}

func TestCheckoutUdhaarAdjustsLedger(t *testing.T) {
	fs := newFakeStore()
	rice := fs.addProduct("Basmati Rice", "kg", 150, 5, 50)
	sugar := fs.addProduct("Sugar", "kg", 45, 5, 40)
	customer := fs.addCustomer("Rajesh Kumar", models.TierHouse, 450, 2000)

	crt := cart.New()
	crt.AddItem(rice, 2)
	crt.AddItem(sugar, 1)
	crt.AttachCustomer(customer.ID.Hex(), customer.Tier)

	o := New(fs, &fakeRenderer{url: "u"}, &fakeSender{})
	res, err := o.Checkout(context.Background(), crt, customer, models.PaymentUdhaar, "cashier-1")
	require.NoError(t, err)

	assert.InDelta(t, 362.25, res.Totals.GrandTotal, 1e-9)
	assert.InDelta(t, 812.25, customer.TotalOutstanding, 1e-9)
	assert.Empty(t, res.Warnings) // 812.25 is within the 2000 limit
}

func TestCheckoutUdhaarOverLimitWarns(t *testing.T) {
	fs := newFakeStore()
	atta := fs.addProduct("Aashirvaad Atta", "bag", 320, 5, 15)
	customer := fs.addCustomer("Hotel Spice Garden", models.TierHouse, 1900, 2000)

	crt := cart.New()
	crt.AddItem(atta, 1)
	crt.AttachCustomer(customer.ID.Hex(), customer.Tier)

	o := New(fs, &fakeRenderer{url: "u"}, &fakeSender{})
	res, err := o.Checkout(context.Background(), crt, customer, models.PaymentUdhaar, "cashier-1")

	// Policy: over-limit is a warning for the operator, never a hard stop.
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "credit limit exceeded")
}

func TestCheckoutPartialStockFailure(t *testing.T) {
	fs := newFakeStore()
	rice := fs.addProduct("Basmati Rice", "kg", 150, 5, 50)
	dal := fs.addProduct("Toor Dal", "kg", 130, 5, 30)
	fs.failDecrement[dal.ID.Hex()] = errors.New("write timeout")

	crt := cart.New()
	crt.AddItem(rice, 1)
	crt.AddItem(dal, 1)

	o := New(fs, &fakeRenderer{url: "u"}, &fakeSender{})
	res, err := o.Checkout(context.Background(), crt, nil, models.PaymentCash, "cashier-1")

	var pErr *PersistenceError
	require.ErrorAs(t, err, &pErr)

	// The sale is on record; the step ledger shows which line failed.
	require.Len(t, fs.transactions, 1)
	assert.Equal(t, pErr.TransactionID, res.TransactionID)
	require.Len(t, res.Steps, 2)
	assert.Empty(t, res.Steps[0].Error)
	assert.Equal(t, "write timeout", res.Steps[1].Error)
	assert.Equal(t, 49.0, fs.products[rice.ID.Hex()].CurrentStock)
	assert.Equal(t, 30.0, fs.products[dal.ID.Hex()].CurrentStock)
	assert.Equal(t, StateFailed, o.State())
	assert.Equal(t, 0, crt.Len())
}

func TestCheckoutCommitFailureWritesNothing(t *testing.T) {
	fs := newFakeStore()
	rice := fs.addProduct("Basmati Rice", "kg", 150, 5, 50)
	fs.failInsert = errors.New("disk full")

	crt := cart.New()
	crt.AddItem(rice, 1)

	o := New(fs, &fakeRenderer{url: "u"}, &fakeSender{})
	_, err := o.Checkout(context.Background(), crt, nil, models.PaymentCash, "cashier-1")

	var pErr *PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.Empty(t, pErr.TransactionID)
	assert.Equal(t, 50.0, fs.products[rice.ID.Hex()].CurrentStock)
}

func TestCheckoutCollaboratorFailureIsSoft(t *testing.T) {
	fs := newFakeStore()
	rice := fs.addProduct("Basmati Rice", "kg", 150, 5, 50)
	customer := fs.addCustomer("Priya Sharma", models.TierHouse, 0, 2000)
	customer.WhatsAppNumber = "919001234568"

	crt := cart.New()
	crt.AddItem(rice, 1)
	crt.AttachCustomer(customer.ID.Hex(), customer.Tier)

	o := New(fs, &fakeRenderer{err: errors.New("renderer down")}, &fakeSender{})
	res, err := o.Checkout(context.Background(), crt, customer, models.PaymentCash, "cashier-1")

	require.NoError(t, err)
	assert.Empty(t, res.ArtifactURL)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "render bill")
	require.Len(t, fs.transactions, 1)
}

func TestCheckoutDeliversBillToCustomer(t *testing.T) {
	fs := newFakeStore()
	rice := fs.addProduct("Basmati Rice", "kg", 150, 5, 50)
	customer := fs.addCustomer("Priya Sharma", models.TierHouse, 0, 2000)
	customer.WhatsAppNumber = "919001234568"

	crt := cart.New()
	crt.AddItem(rice, 1)
	crt.AttachCustomer(customer.ID.Hex(), customer.Tier)

	sender := &fakeSender{}
	o := New(fs, &fakeRenderer{url: "http://x/b.html"}, sender)
	_, err := o.Checkout(context.Background(), crt, customer, models.PaymentCash, "cashier-1")

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "919001234568", sender.sent[0])
}

func TestCheckoutConcurrentCashiers(t *testing.T) {
	fs := newFakeStore()
	rice := fs.addProduct("Basmati Rice", "kg", 150, 5, 1000)
	o := New(fs, &fakeRenderer{url: "u"}, &fakeSender{})

	// One orchestrator serves every counter; run a sale per cashier in
	// parallel and make sure nothing is lost or double counted. The race
	// detector covers the shared state field.
	const cashiers = 8
	errs := make([]error, cashiers)
	var wg sync.WaitGroup
	for i := 0; i < cashiers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			crt := cart.New()
			crt.AddItem(rice, 1)
			_, errs[i] = o.Checkout(context.Background(), crt, nil, models.PaymentCash, fmt.Sprintf("cashier-%d", i))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "cashier %d", i)
	}
	require.Len(t, fs.transactions, cashiers)
	assert.Equal(t, 992.0, fs.products[rice.ID.Hex()].CurrentStock)
	assert.Equal(t, StateIdle, o.State())
}

func TestCheckoutStockNeverNegative(t *testing.T) {
	fs := newFakeStore()
	biscuit := fs.addProduct("Parle-G Biscuit", "pcs", 10, 18, 2)
	o := New(fs, &fakeRenderer{url: "u"}, &fakeSender{})

	// Sequential sales: the second must fail validation, leaving stock at 0.
	crt := cart.New()
	crt.AddItem(biscuit, 2)
	_, err := o.Checkout(context.Background(), crt, nil, models.PaymentCash, "cashier-1")
	require.NoError(t, err)

	crt2 := cart.New()
	crt2.AddItem(biscuit, 1)
	_, err = o.Checkout(context.Background(), crt2, nil, models.PaymentCash, "cashier-1")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0.0, fs.products[biscuit.ID.Hex()].CurrentStock)
}
