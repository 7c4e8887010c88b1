package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/checkout"
	"backend/models"
	"backend/store"
)

// Checkout commits the cashier's cart. Validation problems come back 400
// with nothing written; a persistence failure after commit comes back 502
// carrying the transaction id and the step ledger so the operator can
// reconcile; collaborator trouble never fails the sale.
func (ct *Controller) Checkout(c *gin.Context) {
	cashierID, ok := ct.cashierCart(c)
	if !ok {
		return
	}

	var input struct {
		PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crt := ct.carts.Get(cashierID)

	var customer *models.Customer
	if id := crt.CustomerID(); id != "" {
		cu, err := ct.store.Customer(c.Request.Context(), id)
		if err == store.ErrNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Attached customer no longer exists"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve customer"})
			return
		}
		customer = &cu
	}

	res, err := ct.orch.Checkout(c.Request.Context(), crt, customer, input.PaymentMethod, cashierID)
	if err != nil {
		var vErr *checkout.ValidationError
		var pErr *checkout.PersistenceError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason})
		case errors.As(err, &pErr) && pErr.TransactionID != "":
			// The sale is committed; side effects are incomplete.
			ct.carts.Drop(cashierID)
			c.JSON(http.StatusBadGateway, gin.H{
				"error":          pErr.Error(),
				"transaction_id": pErr.TransactionID,
				"steps":          res.Steps,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	ct.carts.Drop(cashierID)
	c.JSON(http.StatusCreated, res)
}
