// Package checkout drives the commit sequence that turns a cart into a
// transaction plus its side effects: stock depletion, ledger adjustment and
// bill dispatch. The orchestrator depends only on narrow interfaces so the
// store and the collaborators stay swappable.
package checkout

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"backend/billing"
	"backend/cart"
	"backend/models"
)

type State int

const (
	StateIdle State = iota
	StatePricing
	StateCommitting
	StateStockAdjusting
	StateLedgerAdjusting
	StateArtifactDispatch
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePricing:
		return "pricing"
	case StateCommitting:
		return "committing"
	case StateStockAdjusting:
		return "stock_adjusting"
	case StateLedgerAdjusting:
		return "ledger_adjusting"
	case StateArtifactDispatch:
		return "artifact_dispatch"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Store is the slice of the persistent store checkout needs.
type Store interface {
	Product(ctx context.Context, id string) (models.Product, error)
	InsertTransaction(ctx context.Context, t models.Transaction) (string, error)
	DecrementStock(ctx context.Context, id string, qty float64) error
	AdjustBalance(ctx context.Context, customerID string, delta float64) error
}

// BillRenderer produces a retrievable bill artifact for a committed
// transaction and returns its reference (a URL).
type BillRenderer interface {
	RenderBill(ctx context.Context, t models.Transaction) (string, error)
}

// BillSender delivers the bill reference to the customer's contact channel.
type BillSender interface {
	SendBill(ctx context.Context, phone, billNo, artifactURL string) error
}

// StepResult records the outcome of one post-commit mutation so a partial
// failure is visible to the caller instead of silently swallowed.
type StepResult struct {
	Step      string `json:"step"`
	ProductID string `json:"productid,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Result struct {
	TransactionID string             `json:"transaction_id"`
	BillNo        string             `json:"bill_no"`
	ArtifactURL   string             `json:"artifact_url,omitempty"`
	Totals        billing.CartTotals `json:"totals"`
	Steps         []StepResult       `json:"steps,omitempty"`
	Warnings      []string           `json:"warnings,omitempty"`
}

var (
	checkoutsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_checkouts_total",
		Help: "Committed checkouts by payment method",
	}, []string{"payment"})
	checkoutFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_checkout_failures_total",
		Help: "Checkout failures by stage",
	}, []string{"stage"})
)

func init() {
	prometheus.MustRegister(checkoutsTotal, checkoutFailures)
}

// Orchestrator is shared by every cashier request, so the state field is
// mutex-guarded. State reports the most recent progression, which is enough
// for the health surface it feeds.
type Orchestrator struct {
	store    Store
	renderer BillRenderer
	sender   BillSender

	mu    sync.Mutex
	state State
}

func New(store Store, renderer BillRenderer, sender BillSender) *Orchestrator {
	return &Orchestrator{store: store, renderer: renderer, sender: sender}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) fail(stage string) {
	o.setState(StateFailed)
	checkoutFailures.WithLabelValues(stage).Inc()
}

// Checkout validates and prices crt, commits the transaction, then applies
// side effects strictly in order: stock, ledger, artifact. Once the insert
// in the commit step succeeds the sale has happened; later failures surface
// with the transaction id but do not undo it. On any committed outcome the
// cart is cleared.
func (o *Orchestrator) Checkout(ctx context.Context, crt *cart.Cart, customer *models.Customer, method models.PaymentMethod, cashierID string) (*Result, error) {
	items := crt.Items()
	if len(items) == 0 {
		o.fail("validation")
		return nil, &ValidationError{Reason: "cart is empty"}
	}
	if !method.Valid() {
		o.fail("validation")
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown payment method %q", method)}
	}

	tier := models.TierHouse
	if customer != nil {
		tier = customer.Tier
	}

	// Validation: fresh stock reads, before pricing and before any write.
	fresh := make([]models.Product, len(items))
	for i, it := range items {
		if it.Quantity <= 0 {
			o.fail("validation")
			return nil, &ValidationError{Reason: fmt.Sprintf("non-positive quantity for %s", it.Product.Name)}
		}
		p, err := o.store.Product(ctx, it.Product.ID.Hex())
		if err != nil {
			o.fail("validation")
			return nil, &PersistenceError{Step: "stock read", Err: err}
		}
		if it.Quantity > p.CurrentStock {
			o.fail("validation")
			return nil, &ValidationError{Reason: fmt.Sprintf(
				"%s: requested %.3f %s but only %.3f in stock", p.Name, it.Quantity, p.Unit, p.CurrentStock)}
		}
		fresh[i] = p
	}

	// Pricing: authoritative totals and the immutable bill snapshot.
	o.setState(StatePricing)
	billingItems := make([]billing.Item, len(items))
	txnItems := make([]models.TransactionItem, len(items))
	for i, it := range items {
		p := fresh[i]
		r := billing.PriceLine(p, it.Quantity, p.Unit, tier)
		billingItems[i] = billing.Item{Product: p, Quantity: it.Quantity}
		txnItems[i] = models.TransactionItem{
			ProductID: p.ID.Hex(),
			Name:      p.Name,
			Qty:       r.NormalizedQty,
			Unit:      p.Unit,
			Price:     r.DiscountedUnitPrice,
			GST:       p.GSTPercent,
			Total:     r.LineTotal,
		}
	}
	totals := billing.PriceCart(billingItems, tier)

	txn := models.Transaction{
		BillNo:     crt.BillNo(),
		Items:      txnItems,
		Subtotal:   totals.Subtotal,
		TotalGST:   totals.TotalGST,
		GrandTotal: totals.GrandTotal,
		Payment:    method,
		CashierID:  cashierID,
		Timestamp:  time.Now(),
	}
	if customer != nil {
		txn.CustomerID = customer.ID.Hex()
	}

	// Committing: the point of record.
	o.setState(StateCommitting)
	txnID, err := o.store.InsertTransaction(ctx, txn)
	if err != nil {
		o.fail("commit")
		return nil, &PersistenceError{Step: "commit", Err: err}
	}
	res := &Result{TransactionID: txnID, BillNo: txn.BillNo, Totals: totals}

	// StockAdjusting: best-effort per line; a failure stops the sequence but
	// the transaction stands. The step ledger records which lines went
	// through for reconciliation.
	o.setState(StateStockAdjusting)
	for _, it := range txnItems {
		err := o.store.DecrementStock(ctx, it.ProductID, it.Qty)
		step := StepResult{Step: "stock", ProductID: it.ProductID}
		if err != nil {
			step.Error = err.Error()
			res.Steps = append(res.Steps, step)
			o.fail("stock")
			crt.Clear()
			log.Printf("checkout %s: stock adjustment incomplete: %v (adjusted %d of %d lines)",
				txnID, err, len(res.Steps)-1, len(txnItems))
			return res, &PersistenceError{Step: "stock adjustment", TransactionID: txnID, Err: err}
		}
		res.Steps = append(res.Steps, step)
	}

	// LedgerAdjusting: only deferred payment against an attached customer
	// touches the udhaar ledger.
	o.setState(StateLedgerAdjusting)
	if method.Deferred() && customer != nil {
		if err := o.store.AdjustBalance(ctx, customer.ID.Hex(), totals.GrandTotal); err != nil {
			res.Steps = append(res.Steps, StepResult{Step: "ledger", Error: err.Error()})
			o.fail("ledger")
			crt.Clear()
			return res, &PersistenceError{Step: "ledger adjustment", TransactionID: txnID, Err: err}
		}
		res.Steps = append(res.Steps, StepResult{Step: "ledger"})
		if customer.TotalOutstanding+totals.GrandTotal > customer.CreditLimit {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"credit limit exceeded: %s now owes %s against a limit of %s",
				customer.Name,
				billing.FormatCurrency(customer.TotalOutstanding+totals.GrandTotal),
				billing.FormatCurrency(customer.CreditLimit)))
		}
	}

	// ArtifactDispatch: never fatal. The sale is already on record.
	o.setState(StateArtifactDispatch)
	if o.renderer != nil {
		artifactURL, err := o.renderer.RenderBill(ctx, txn)
		if err != nil {
			warn := &CollaboratorError{Op: "render bill", Err: err}
			res.Warnings = append(res.Warnings, warn.Error())
			log.Printf("checkout %s: %v", txnID, warn)
		} else {
			res.ArtifactURL = artifactURL
			if o.sender != nil && customer != nil && customer.WhatsAppNumber != "" {
				if err := o.sender.SendBill(ctx, customer.WhatsAppNumber, txn.BillNo, artifactURL); err != nil {
					warn := &CollaboratorError{Op: "deliver bill", Err: err}
					res.Warnings = append(res.Warnings, warn.Error())
					log.Printf("checkout %s: %v", txnID, warn)
				}
			}
		}
	}

	crt.Clear()
	o.setState(StateIdle)
	checkoutsTotal.WithLabelValues(string(method)).Inc()
	return res, nil
}
