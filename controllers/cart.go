package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/billing"
	"backend/store"
)

// cashierCart resolves the operator's live cart from the Cashier-ID header.
func (ct *Controller) cashierCart(c *gin.Context) (string, bool) {
	cashierID := c.GetHeader("Cashier-ID")
	if cashierID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cashier-ID header is required"})
		return "", false
	}
	return cashierID, true
}

// AddCartItem puts a product into the cashier's cart. The entered quantity
// is normalized to the product's unit here, at the entry boundary, so the
// cart only ever holds canonical quantities. Incompatible units are rejected
// before normalization is used for pricing.
func (ct *Controller) AddCartItem(c *gin.Context) {
	cashierID, ok := ct.cashierCart(c)
	if !ok {
		return
	}

	var input struct {
		ProductID string  `json:"product_id" binding:"required"`
		Quantity  float64 `json:"quantity"`
		Unit      string  `json:"unit"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	p, err := ct.store.Product(c.Request.Context(), input.ProductID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}
	if !p.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product is no longer sold"})
		return
	}

	qty := input.Quantity
	if input.Unit != "" && input.Unit != p.Unit {
		if !billing.Compatible(input.Unit, p.Unit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unit " + input.Unit + " does not match product unit " + p.Unit})
			return
		}
		qty, _ = billing.Normalize(input.Quantity, input.Unit, p.Unit)
	}

	crt := ct.carts.Get(cashierID)
	crt.AddItem(p, qty)
	c.JSON(http.StatusOK, gin.H{"items": crt.Items(), "totals": crt.Totals(), "bill_no": crt.BillNo()})
}

func (ct *Controller) RemoveCartItem(c *gin.Context) {
	cashierID, ok := ct.cashierCart(c)
	if !ok {
		return
	}
	crt := ct.carts.Get(cashierID)
	crt.RemoveItem(c.Param("productID"))
	c.JSON(http.StatusOK, gin.H{"items": crt.Items(), "totals": crt.Totals()})
}

func (ct *Controller) SetCartQuantity(c *gin.Context) {
	cashierID, ok := ct.cashierCart(c)
	if !ok {
		return
	}
	var input struct {
		Quantity float64 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	crt := ct.carts.Get(cashierID)
	crt.SetQuantity(c.Param("productID"), input.Quantity)
	c.JSON(http.StatusOK, gin.H{"items": crt.Items(), "totals": crt.Totals()})
}

func (ct *Controller) AttachCartCustomer(c *gin.Context) {
	cashierID, ok := ct.cashierCart(c)
	if !ok {
		return
	}
	var input struct {
		CustomerID string `json:"customer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := ct.store.Customer(c.Request.Context(), input.CustomerID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve customer"})
		return
	}

	crt := ct.carts.Get(cashierID)
	crt.AttachCustomer(customer.ID.Hex(), customer.Tier)
	c.JSON(http.StatusOK, gin.H{"customer": customer, "totals": crt.Totals()})
}

func (ct *Controller) DetachCartCustomer(c *gin.Context) {
	cashierID, ok := ct.cashierCart(c)
	if !ok {
		return
	}
	crt := ct.carts.Get(cashierID)
	crt.DetachCustomer()
	c.JSON(http.StatusOK, gin.H{"totals": crt.Totals()})
}

// GetCart returns the live cart with speculative totals; nothing commits.
func (ct *Controller) GetCart(c *gin.Context) {
	cashierID, ok := ct.cashierCart(c)
	if !ok {
		return
	}
	crt := ct.carts.Get(cashierID)
	c.JSON(http.StatusOK, gin.H{
		"items":       crt.Items(),
		"totals":      crt.Totals(),
		"customer_id": crt.CustomerID(),
		"bill_no":     crt.BillNo(),
	})
}

// CancelCart discards the in-progress sale entirely. No state was mutated,
// so there is nothing to roll back.
func (ct *Controller) CancelCart(c *gin.Context) {
	cashierID, ok := ct.cashierCart(c)
	if !ok {
		return
	}
	ct.carts.Drop(cashierID)
	c.JSON(http.StatusOK, gin.H{"message": "Cart discarded"})
}
