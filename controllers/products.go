package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"backend/billing"
	"backend/models"
	"backend/store"
)

func (ct *Controller) ListProducts(c *gin.Context) {
	products, err := ct.store.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	if c.Query("active") == "true" {
		filtered := products[:0]
		for _, p := range products {
			if p.IsActive {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	c.JSON(http.StatusOK, products)
}

func (ct *Controller) GetProduct(c *gin.Context) {
	p, err := ct.store.Product(c.Request.Context(), c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ct *Controller) CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidGSTPercent(p.GSTPercent) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gstpercent must be one of 0, 5, 12, 18, 28"})
		return
	}
	if p.CurrentStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currentstock cannot be negative"})
		return
	}
	p.IsWeightBased = billing.IsWeightBased(p.Unit)
	p.IsActive = true

	id, err := ct.store.InsertProduct(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (ct *Controller) UpdateProduct(c *gin.Context) {
	var input models.UpdateProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := bson.M{}
	if input.Name != "" {
		fields["name"] = input.Name
	}
	if input.Category != "" {
		fields["category"] = input.Category
	}
	if input.Unit != "" {
		fields["unit"] = input.Unit
		fields["isweightbased"] = billing.IsWeightBased(input.Unit)
	}
	if input.Price != 0 {
		fields["price"] = input.Price
	}
	if input.PurchasePrice != 0 {
		fields["purchaseprice"] = input.PurchasePrice
	}
	if input.GSTPercent != nil {
		if !models.ValidGSTPercent(*input.GSTPercent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "gstpercent must be one of 0, 5, 12, 18, 28"})
			return
		}
		fields["gstpercent"] = *input.GSTPercent
	}
	if input.MinThreshold != 0 {
		fields["minthreshold"] = input.MinThreshold
	}
	if input.SupplierID != "" {
		fields["supplierid"] = input.SupplierID
	}
	if input.SupplierPhone != "" {
		fields["supplierphone"] = input.SupplierPhone
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	err := ct.store.UpdateProduct(c.Request.Context(), c.Param("id"), fields)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeactivateProduct retires a product. The core never hard-deletes: old
// transactions keep referencing the id.
func (ct *Controller) DeactivateProduct(c *gin.Context) {
	err := ct.store.UpdateProduct(c.Request.Context(), c.Param("id"), bson.M{"isactive": false})
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deactivated"})
}

func (ct *Controller) RestockProduct(c *gin.Context) {
	var input struct {
		Quantity float64 `json:"quantity" binding:"required"`
		Unit     string  `json:"unit"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	p, err := ct.store.Product(c.Request.Context(), c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}

	qty := input.Quantity
	if input.Unit != "" {
		if !billing.Compatible(input.Unit, p.Unit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unit " + input.Unit + " does not match product unit " + p.Unit})
			return
		}
		qty, _ = billing.Normalize(input.Quantity, input.Unit, p.Unit)
	}

	if err := ct.store.Restock(c.Request.Context(), p.ID.Hex(), qty); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product restocked", "added": qty, "unit": p.Unit})
}

func (ct *Controller) LowStockProducts(c *gin.Context) {
	products, err := ct.store.LowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list low-stock products"})
		return
	}
	c.JSON(http.StatusOK, products)
}
