// Package jobs holds the scheduled work main registers with gocron: the
// low-stock supplier sweep and the owner's daily sales digest.
package jobs

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"backend/billing"
	"backend/notify"
	"backend/store"
)

// LowStockSweep messages each supplier a list of their products at or below
// the reorder threshold.
func LowStockSweep(s *store.Store, sender *notify.WhatsAppSender) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	products, err := s.LowStock(ctx)
	if err != nil {
		log.Printf("low-stock sweep: %v", err)
		return
	}
	if len(products) == 0 {
		return
	}

	bySupplier := make(map[string][]string)
	for _, p := range products {
		if p.SupplierPhone == "" {
			continue
		}
		line := fmt.Sprintf("%s: %.2f %s left (reorder at %.2f)", p.Name, p.CurrentStock, p.Unit, p.MinThreshold)
		bySupplier[p.SupplierPhone] = append(bySupplier[p.SupplierPhone], line)
	}

	for phone, lines := range bySupplier {
		msg := "Family Grocery restock request:\n" + strings.Join(lines, "\n")
		if err := sender.Send(ctx, phone, msg); err != nil {
			log.Printf("low-stock sweep: supplier %s: %v", phone, err)
		}
	}
	log.Printf("low-stock sweep: %d products, %d suppliers notified", len(products), len(bySupplier))
}

// DailySalesDigest emails yesterday's totals to the owner.
func DailySalesDigest(s *store.Store, mailer *notify.Mailer, ownerEmail string) {
	if ownerEmail == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	txns, err := s.TransactionsBetween(ctx, dayStart.AddDate(0, 0, -1), dayStart)
	if err != nil {
		log.Printf("daily digest: %v", err)
		return
	}

	var revenue, gst, udhaar float64
	for _, t := range txns {
		revenue += t.GrandTotal
		gst += t.TotalGST
		if t.Payment.Deferred() {
			udhaar += t.GrandTotal
		}
	}

	body := fmt.Sprintf(
		"Sales for %s\n\nBills: %d\nRevenue: %s\nGST collected: %s\nOn udhaar: %s\n",
		dayStart.AddDate(0, 0, -1).Format("02 Jan 2006"),
		len(txns),
		billing.FormatCurrency(revenue),
		billing.FormatCurrency(gst),
		billing.FormatCurrency(udhaar),
	)

	if err := mailer.Send(ownerEmail, "Daily sales summary", body); err != nil {
		log.Printf("daily digest: %v", err)
	}
}
