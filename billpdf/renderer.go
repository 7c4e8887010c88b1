// Package billpdf renders committed transactions into shareable bill
// artifacts under the uploads directory, which the router serves statically.
package billpdf

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"backend/billing"
	"backend/models"
)

var billTmpl = template.Must(template.New("bill").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Bill {{.Txn.BillNo}}</title></head>
<body>
<h2>Family Grocery</h2>
<p>Bill {{.Txn.BillNo}} &middot; {{.Txn.Timestamp.Format "02 Jan 2006 15:04"}} &middot; {{.Txn.Payment}}</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Item</th><th>Qty</th><th>Rate</th><th>GST%</th><th>Total</th></tr>
{{range .Txn.Items}}<tr><td>{{.Name}}</td><td>{{printf "%.3f" .Qty}} {{.Unit}}</td><td>{{printf "%.2f" .Price}}</td><td>{{.GST}}</td><td>{{printf "%.2f" .Total}}</td></tr>
{{end}}</table>
<p>Subtotal: {{.Subtotal}}<br>GST: {{.GST}}<br><b>Grand total: {{.Grand}}</b></p>
</body></html>`))

type Renderer struct {
	dir     string // e.g. ./uploads/bills
	baseURL string // public prefix, e.g. https://shop.example.com
}

func NewRenderer(dir, baseURL string) *Renderer {
	return &Renderer{dir: dir, baseURL: baseURL}
}

// RenderBill writes the bill file and returns its public URL. The file name
// is an unguessable token so bill links can be shared without auth.
func (r *Renderer) RenderBill(ctx context.Context, t models.Transaction) (string, error) {
	if err := os.MkdirAll(r.dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create bills directory: %w", err)
	}

	name := uuid.NewString() + ".html"
	f, err := os.Create(filepath.Join(r.dir, name))
	if err != nil {
		return "", fmt.Errorf("create bill file: %w", err)
	}
	defer f.Close()

	data := struct {
		Txn      models.Transaction
		Subtotal string
		GST      string
		Grand    string
	}{
		Txn:      t,
		Subtotal: billing.FormatCurrency(t.Subtotal),
		GST:      billing.FormatCurrency(t.TotalGST),
		Grand:    billing.FormatCurrency(t.GrandTotal),
	}
	if err := billTmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("render bill: %w", err)
	}

	return fmt.Sprintf("%s/uploads/bills/%s", r.baseURL, name), nil
}
