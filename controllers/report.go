package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Dashboard aggregates the numbers the owner checks first: today's sales,
// low stock and the udhaar total.
func (ct *Controller) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todays, err := ct.store.TransactionsBetween(ctx, dayStart, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load today's transactions"})
		return
	}

	var revenue, gst float64
	for _, t := range todays {
		revenue += t.GrandTotal
		gst += t.TotalGST
	}

	lowStock, err := ct.store.LowStock(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load low-stock products"})
		return
	}

	debtors, err := ct.store.Debtors(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load debtors"})
		return
	}
	var outstanding float64
	for _, d := range debtors {
		outstanding += d.TotalOutstanding
	}

	c.JSON(http.StatusOK, gin.H{
		"sales_today":       len(todays),
		"revenue_today":     revenue,
		"gst_today":         gst,
		"low_stock_count":   len(lowStock),
		"total_outstanding": outstanding,
	})
}
