package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ScanProduct runs the photo through the recognition service. A null result
// is a normal answer: the client falls back to manual entry.
func (ct *Controller) ScanProduct(c *gin.Context) {
	var input struct {
		Image string `json:"image" binding:"required"` // base64
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guess, err := ct.recognizer.IdentifyProduct(c.Request.Context(), input.Image)
	if err != nil || guess == nil {
		c.JSON(http.StatusOK, gin.H{"recognized": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recognized": true, "product": guess})
}

// ScanSlip transcribes a handwritten slip and matches its lines to known
// products by name so the client can prefill a cart.
func (ct *Controller) ScanSlip(c *gin.Context) {
	var input struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slip, err := ct.recognizer.TranscribeSlip(c.Request.Context(), input.Image)
	if err != nil || slip == nil {
		c.JSON(http.StatusOK, gin.H{"recognized": false})
		return
	}

	products, err := ct.store.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	type matchedItem struct {
		Name      string  `json:"name"`
		Qty       float64 `json:"qty"`
		ProductID string  `json:"productid,omitempty"`
	}
	matched := make([]matchedItem, 0, len(slip.Items))
	for _, it := range slip.Items {
		m := matchedItem{Name: it.Name, Qty: it.Qty}
		needle := strings.ToLower(it.Name)
		for _, p := range products {
			if p.IsActive && strings.Contains(strings.ToLower(p.Name), needle) {
				m.ProductID = p.ID.Hex()
				break
			}
		}
		matched = append(matched, m)
	}

	c.JSON(http.StatusOK, gin.H{
		"recognized": true,
		"name":       slip.Name,
		"phone":      slip.Phone,
		"items":      matched,
	})
}
