// Package store owns the durable collections: products, customers,
// transactions and users. It is constructed once in main and injected into
// the handlers and the checkout orchestrator; nothing here is a package
// singleton.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("not found")

// InsufficientStockError is returned by DecrementStock when the guarded
// update matches no document, i.e. the decrement would take stock negative.
type InsufficientStockError struct {
	ProductID string
	Requested float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %.3f", e.ProductID, e.Requested)
}

type Store struct {
	client       *mongo.Client
	products     *mongo.Collection
	customers    *mongo.Collection
	transactions *mongo.Collection
	users        *mongo.Collection
	meta         *mongo.Collection
	smsLog       *mongo.Collection
}

// New connects to MongoDB and binds the collections. Ping failures surface
// here so the process can refuse to start without a database.
func New(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(dbName)
	return &Store{
		client:       client,
		products:     db.Collection("products"),
		customers:    db.Collection("customers"),
		transactions: db.Collection("transactions"),
		users:        db.Collection("users"),
		meta:         db.Collection("meta"),
		smsLog:       db.Collection("smslog"),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// SMSLog exposes the gateway throttle log collection for the notifier.
func (s *Store) SMSLog() *mongo.Collection { return s.smsLog }
