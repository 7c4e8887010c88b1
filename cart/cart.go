// Package cart holds the transient in-progress sale for each cashier. Carts
// are never persisted; a cart lives from the first added item to checkout or
// cancellation and is then discarded.
package cart

import (
	"fmt"
	"sync"
	"time"

	"backend/billing"
	"backend/models"
)

type Item struct {
	Product  models.Product `json:"product"`
	Quantity float64        `json:"quantity"` // in the product's canonical unit
}

// Cart is an ordered set of (product, quantity) lines keyed by product id.
// Lines for the same product are always merged. Quantities are stored in the
// product's canonical unit; entry-time unit conversion is the caller's job.
type Cart struct {
	mu         sync.Mutex
	items      []Item
	index      map[string]int
	customerID string
	tier       models.CustomerTier
	billNo     string
}

func New() *Cart {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	return &Cart{
		index:  make(map[string]int),
		tier:   models.TierHouse,
		billNo: "#" + millis[len(millis)-4:],
	}
}

// AddItem merges qty into an existing line for the product or appends a new
// one. Stock validation is the caller's concern, not the cart's.
func (c *Cart) AddItem(p models.Product, qty float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := p.ID.Hex()
	if i, ok := c.index[id]; ok {
		c.items[i].Quantity += qty
		return
	}
	c.index[id] = len(c.items)
	c.items = append(c.items, Item{Product: p, Quantity: qty})
}

// RemoveItem deletes the line for productID; absent lines are not an error.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

func (c *Cart) remove(productID string) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].Product.ID.Hex()] = j
	}
}

// SetQuantity replaces the quantity for productID; qty <= 0 removes the line.
func (c *Cart) SetQuantity(productID string, qty float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if qty <= 0 {
		c.remove(productID)
		return
	}
	if i, ok := c.index[productID]; ok {
		c.items[i].Quantity = qty
	}
}

// AttachCustomer ties the sale to a customer so pricing uses their tier.
func (c *Cart) AttachCustomer(customerID string, tier models.CustomerTier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customerID = customerID
	c.tier = tier
}

func (c *Cart) DetachCustomer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customerID = ""
	c.tier = models.TierHouse
}

// Clear empties the cart and detaches the customer.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.index = make(map[string]int)
	c.customerID = ""
	c.tier = models.TierHouse
}

// Items returns a copy; callers cannot mutate the cart through it.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) CustomerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customerID
}

func (c *Cart) Tier() models.CustomerTier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tier
}

func (c *Cart) BillNo() string { return c.billNo }

// Totals prices the cart speculatively; nothing is committed.
func (c *Cart) Totals() billing.CartTotals {
	c.mu.Lock()
	items := make([]billing.Item, len(c.items))
	for i, it := range c.items {
		items[i] = billing.Item{Product: it.Product, Quantity: it.Quantity}
	}
	tier := c.tier
	c.mu.Unlock()
	return billing.PriceCart(items, tier)
}

// Manager maps a cashier id (the Cashier-ID request header) to that
// operator's live cart. One cashier, one in-progress sale.
type Manager struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewManager() *Manager {
	return &Manager{carts: make(map[string]*Cart)}
}

// Get returns the cashier's cart, creating one on first use.
func (m *Manager) Get(cashierID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[cashierID]; ok {
		return c
	}
	c := New()
	m.carts[cashierID] = c
	return c
}

// Drop discards the cashier's cart entirely. The next Get starts a fresh
// sale with a new bill number.
func (m *Manager) Drop(cashierID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, cashierID)
}
