// Package recognize is the client for the AI recognition service: product
// identification from a photo and handwritten-slip transcription. The
// service is best-effort by contract: any transport, auth or decode
// problem yields a nil result and the caller falls back to manual entry.
package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// ProductGuess is what the service inferred from a product photo.
type ProductGuess struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit"`
}

// SlipItem is one line read off a handwritten slip.
type SlipItem struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
}

type SlipResult struct {
	Name  string     `json:"name,omitempty"`
	Phone string     `json:"phone,omitempty"`
	Items []SlipItem `json:"items"`
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient returns a recognition client. An empty baseURL means the service
// is not configured; every call then returns nil without a network trip.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// IdentifyProduct asks the service to name a grocery product from a base64
// photo. Returns nil when unconfigured or the service can't tell.
func (c *Client) IdentifyProduct(ctx context.Context, imageBase64 string) (*ProductGuess, error) {
	if c.baseURL == "" {
		log.Println("recognition service not configured, falling back to manual entry")
		return nil, nil
	}
	var guess ProductGuess
	if ok := c.post(ctx, "/identify", imageBase64, &guess); !ok || guess.Name == "" {
		return nil, nil
	}
	return &guess, nil
}

// TranscribeSlip reads a handwritten grocery slip. Returns nil when the
// service is unavailable or found nothing usable.
func (c *Client) TranscribeSlip(ctx context.Context, imageBase64 string) (*SlipResult, error) {
	if c.baseURL == "" {
		log.Println("recognition service not configured, falling back to manual entry")
		return nil, nil
	}
	var slip SlipResult
	if ok := c.post(ctx, "/slip", imageBase64, &slip); !ok || len(slip.Items) == 0 {
		return nil, nil
	}
	return &slip, nil
}

func (c *Client) post(ctx context.Context, path, imageBase64 string, out interface{}) bool {
	payload, _ := json.Marshal(map[string]string{"image": imageBase64})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		log.Printf("recognition request build failed: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("recognition call failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("recognition service returned %d", resp.StatusCode)
		return false
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Printf("recognition response decode failed: %v", err)
		return false
	}
	return true
}
