package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillMessage(t *testing.T) {
	msg := BillMessage("#4821", "https://shop.example.com/uploads/bills/abc.html")
	assert.Equal(t,
		"Hello! Here is your bill #4821 from Family Grocery. You can view it here: https://shop.example.com/uploads/bills/abc.html",
		msg)
}

func TestSendPostsToGateway(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewWhatsAppSender(srv.URL, nil)
	err := sender.Send(context.Background(), "919001234567", "hello")
	require.NoError(t, err)
	assert.Equal(t, "919001234567", got["phone"])
	assert.Equal(t, "hello", got["message"])
}

func TestSendGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	sender := NewWhatsAppSender(srv.URL, nil)
	err := sender.Send(context.Background(), "919001234567", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSendBillUsesBillMessage(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	sender := NewWhatsAppSender(srv.URL, nil)
	err := sender.SendBill(context.Background(), "919001234567", "#4821", "http://x/b.html")
	require.NoError(t, err)
	assert.Equal(t, BillMessage("#4821", "http://x/b.html"), got["message"])
}
