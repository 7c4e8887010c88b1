package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurfaceOf(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/cashier/checkout", "cashier"},
		{"/cashier", "cashier"},
		{"/owner/products/:id", "owner"},
		{"/stock/products/lowstock", "stock"},
		{"/accountant/udhaar", "accountant"},
		{"/scan/slip", "scan"},
		{"/login", "public"},
		{"/healthz", "public"},
		{"/cashiers", "public"}, // prefix must match a whole segment
		{"unmatched", "public"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, surfaceOf(c.path), c.path)
	}
}
