package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"backend/models"
	"backend/store"
)

func (ct *Controller) ListCustomers(c *gin.Context) {
	customers, err := ct.store.Customers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (ct *Controller) GetCustomer(c *gin.Context) {
	customer, err := ct.store.Customer(c.Request.Context(), c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve customer"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (ct *Controller) CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if customer.Tier == "" {
		customer.Tier = models.TierHouse
	}
	if _, ok := models.TierProfiles[customer.Tier]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown customer tier"})
		return
	}
	customer.IsActive = true

	id, err := ct.store.InsertCustomer(c.Request.Context(), customer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (ct *Controller) UpdateCustomer(c *gin.Context) {
	var input models.UpdateCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := bson.M{}
	if input.Name != "" {
		fields["name"] = input.Name
	}
	if input.Phone != "" {
		fields["phone"] = input.Phone
	}
	if input.HouseNo != "" {
		fields["houseno"] = input.HouseNo
	}
	if input.WhatsAppNumber != "" {
		fields["whatsappnumber"] = input.WhatsAppNumber
	}
	if input.Tier != "" {
		if _, ok := models.TierProfiles[input.Tier]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown customer tier"})
			return
		}
		fields["tier"] = input.Tier
	}
	if input.CreditLimit != nil {
		fields["creditlimit"] = *input.CreditLimit
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	err := ct.store.UpdateCustomer(c.Request.Context(), c.Param("id"), fields)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer updated"})
}

// RecordPayment takes a udhaar repayment: the amount comes off the
// customer's outstanding balance.
func (ct *Controller) RecordPayment(c *gin.Context) {
	var input struct {
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	err := ct.store.AdjustBalance(c.Request.Context(), c.Param("id"), -input.Amount)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment recorded"})
}

func (ct *Controller) CustomerTransactions(c *gin.Context) {
	txns, err := ct.store.CustomerTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customer transactions"})
		return
	}
	c.JSON(http.StatusOK, txns)
}

// Udhaar summarizes the credit ledger: who owes, how much in total, and the
// five largest debts.
func (ct *Controller) Udhaar(c *gin.Context) {
	debtors, err := ct.store.Debtors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list debtors"})
		return
	}

	var total float64
	for _, d := range debtors {
		total += d.TotalOutstanding
	}
	top := debtors
	if len(top) > 5 {
		top = top[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":         debtors,
		"total_outstanding": total,
		"top_debtors":       top,
	})
}
