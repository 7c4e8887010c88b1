package cart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/models"
)

func product(name string, price float64) models.Product {
	return models.Product{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Unit:       "pcs",
		Price:      price,
		GSTPercent: 5,
		IsActive:   true,
	}
}

func TestAddItemMergesSameProduct(t *testing.T) {
	c := New()
	p := product("Maggi Noodles", 14)

	c.AddItem(p, 2)
	c.AddItem(p, 3)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5.0, items[0].Quantity)
}

func TestAddItemKeepsOrder(t *testing.T) {
	c := New()
	a, b, d := product("A", 1), product("B", 2), product("D", 3)
	c.AddItem(a, 1)
	c.AddItem(b, 1)
	c.AddItem(d, 1)
	c.RemoveItem(b.ID.Hex())
	c.AddItem(b, 1)

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "A", items[0].Product.Name)
	assert.Equal(t, "D", items[1].Product.Name)
	assert.Equal(t, "B", items[2].Product.Name)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := New()
	c.AddItem(product("A", 1), 1)
	c.RemoveItem(primitive.NewObjectID().Hex())
	assert.Equal(t, 1, c.Len())
}

func TestSetQuantity(t *testing.T) {
	c := New()
	p := product("Sugar", 45)
	c.AddItem(p, 1)

	c.SetQuantity(p.ID.Hex(), 4)
	assert.Equal(t, 4.0, c.Items()[0].Quantity)

	c.SetQuantity(p.ID.Hex(), 0)
	assert.Equal(t, 0, c.Len())
}

func TestClearDetachesCustomer(t *testing.T) {
	c := New()
	c.AddItem(product("A", 1), 1)
	c.AttachCustomer("cust-1", models.TierWholesale)

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.CustomerID())
	assert.Equal(t, models.TierHouse, c.Tier())
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.AddItem(product("A", 1), 1)
	items := c.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1.0, c.Items()[0].Quantity)
}

func TestTotalsUseAttachedTier(t *testing.T) {
	c := New()
	c.AddItem(product("Butter", 100), 1)

	house := c.Totals()
	c.AttachCustomer("cust-1", models.TierWholesale) // 0.8
	wholesale := c.Totals()

	assert.InDelta(t, 105.0, house.GrandTotal, 1e-9)
	assert.InDelta(t, 84.0, wholesale.GrandTotal, 1e-9)
}

func TestBillNoFormat(t *testing.T) {
	c := New()
	require.True(t, strings.HasPrefix(c.BillNo(), "#"))
	assert.Len(t, c.BillNo(), 5)
}

func TestManagerPerCashierCarts(t *testing.T) {
	m := NewManager()
	a := m.Get("cashier-a")
	b := m.Get("cashier-b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, m.Get("cashier-a"))

	m.Drop("cashier-a")
	assert.NotSame(t, a, m.Get("cashier-a"))
}
