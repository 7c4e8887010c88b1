package billpdf

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/models"
)

func TestRenderBill(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, "https://shop.example.com")

	txn := models.Transaction{
		BillNo: "#4821",
		Items: []models.TransactionItem{
			{Name: "Basmati Rice", Qty: 2, Unit: "kg", Price: 150, GST: 5, Total: 315},
			{Name: "Sugar", Qty: 1, Unit: "kg", Price: 45, GST: 5, Total: 47.25},
		},
		Subtotal:   345,
		TotalGST:   17.25,
		GrandTotal: 362.25,
		Payment:    models.PaymentCash,
		Timestamp:  time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}

	url, err := r.RenderBill(context.Background(), txn)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://shop.example.com/uploads/bills/"))
	assert.True(t, strings.HasSuffix(url, ".html"))

	name := url[strings.LastIndex(url, "/")+1:]
	body, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	html := string(body)
	assert.Contains(t, html, "Bill #4821")
	assert.Contains(t, html, "Basmati Rice")
	assert.Contains(t, html, "2.000 kg")
	assert.Contains(t, html, "₹362.25")
	assert.Contains(t, html, "CASH")
}

func TestRenderBillDistinctNames(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, "http://x")

	txn := models.Transaction{BillNo: "#0001", Payment: models.PaymentUPI, Timestamp: time.Now()}
	a, err := r.RenderBill(context.Background(), txn)
	require.NoError(t, err)
	b, err := r.RenderBill(context.Background(), txn)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
