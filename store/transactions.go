package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/models"
)

// InsertTransaction commits a bill. The document is never updated afterwards.
func (s *Store) InsertTransaction(ctx context.Context, t models.Transaction) (string, error) {
	t.ID = primitive.NewObjectID()
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	if _, err := s.transactions.InsertOne(ctx, t); err != nil {
		return "", err
	}
	return t.ID.Hex(), nil
}

func (s *Store) Transaction(ctx context.Context, id string) (models.Transaction, error) {
	var t models.Transaction
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return t, ErrNotFound
	}
	err = s.transactions.FindOne(ctx, bson.M{"_id": objID}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return t, ErrNotFound
	}
	return t, err
}

// RecentTransactions returns up to limit transactions, newest first.
func (s *Store) RecentTransactions(ctx context.Context, limit int64) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cursor, err := s.transactions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Transaction
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CustomerTransactions returns a customer's purchase history, newest first.
func (s *Store) CustomerTransactions(ctx context.Context, customerID string) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := s.transactions.Find(ctx, bson.M{"customerid": customerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Transaction
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TransactionsBetween returns transactions in [from, to), oldest first.
// Used by the dashboard and the daily sales digest.
func (s *Store) TransactionsBetween(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := s.transactions.Find(ctx, bson.M{
		"timestamp": bson.M{"$gte": from, "$lt": to},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Transaction
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
