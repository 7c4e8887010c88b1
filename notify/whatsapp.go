// Package notify covers outbound messaging: bill delivery over the SMS
// gateway (as WhatsApp-style messages with the bill link) and the owner's
// email digests.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const smsLimitPerMinute = 6

// WhatsAppSender posts messages to the shop's SMS/WhatsApp gateway. A mongo
// log throttles per-phone volume; a nil log disables throttling.
type WhatsAppSender struct {
	gatewayURL string
	smsLog     *mongo.Collection
	client     *http.Client
}

func NewWhatsAppSender(gatewayURL string, smsLog *mongo.Collection) *WhatsAppSender {
	return &WhatsAppSender{
		gatewayURL: gatewayURL,
		smsLog:     smsLog,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// BillMessage is the text sent with a committed bill.
func BillMessage(billNo, artifactURL string) string {
	return fmt.Sprintf("Hello! Here is your bill %s from Family Grocery. You can view it here: %s", billNo, artifactURL)
}

// SendBill delivers the bill link to the customer's number. Failures are the
// caller's to surface; the sale itself is already committed.
func (w *WhatsAppSender) SendBill(ctx context.Context, phone, billNo, artifactURL string) error {
	return w.Send(ctx, phone, BillMessage(billNo, artifactURL))
}

// Send posts one message to the gateway, enforcing the per-minute limit and
// recording the attempt in the log.
func (w *WhatsAppSender) Send(ctx context.Context, phone, message string) error {
	var entry struct {
		LastSent      time.Time `bson:"last_sent"`
		SMSLastMinute int       `bson:"sms_last_minute"`
	}
	shouldReset := false
	if w.smsLog != nil {
		err := w.smsLog.FindOne(ctx, bson.M{"phone": phone}).Decode(&entry)
		if err == nil {
			if time.Since(entry.LastSent).Minutes() >= 1 {
				shouldReset = true
			}
			if !shouldReset && entry.SMSLastMinute >= smsLimitPerMinute {
				return fmt.Errorf("sms limit reached for %s, try again later", phone)
			}
		}
	}

	payload, _ := json.Marshal(map[string]string{"phone": phone, "message": message})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.logFailure(ctx, phone)
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		w.logFailure(ctx, phone)
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, body)
	}

	if w.smsLog != nil {
		update := bson.M{
			"$set": bson.M{"last_sent": time.Now()},
			"$inc": bson.M{"total_sent": 1},
		}
		if shouldReset {
			update["$set"].(bson.M)["sms_last_minute"] = 1
		} else {
			update["$inc"].(bson.M)["sms_last_minute"] = 1
		}
		if _, err := w.smsLog.UpdateOne(ctx, bson.M{"phone": phone}, update, options.Update().SetUpsert(true)); err != nil {
			log.Printf("sms log update failed for %s: %v", phone, err)
		}
	}
	return nil
}

func (w *WhatsAppSender) logFailure(ctx context.Context, phone string) {
	if w.smsLog == nil {
		return
	}
	_, err := w.smsLog.UpdateOne(ctx, bson.M{"phone": phone},
		bson.M{"$inc": bson.M{"failed_attempts": 1}},
		options.Update().SetUpsert(true))
	if err != nil {
		log.Printf("sms log update failed for %s: %v", phone, err)
	}
}
