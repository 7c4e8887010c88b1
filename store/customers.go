package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/models"
)

func (s *Store) Customers(ctx context.Context) ([]models.Customer, error) {
	cursor, err := s.customers.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Customer
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Customer(ctx context.Context, id string) (models.Customer, error) {
	var c models.Customer
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return c, ErrNotFound
	}
	err = s.customers.FindOne(ctx, bson.M{"_id": objID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return c, ErrNotFound
	}
	return c, err
}

// InsertCustomer assigns the id and, when absent, the human-facing ledger id
// (UDH-NNN, sequential over the collection).
func (s *Store) InsertCustomer(ctx context.Context, c models.Customer) (string, error) {
	c.ID = primitive.NewObjectID()
	if c.UdhaarID == "" {
		n, err := s.customers.CountDocuments(ctx, bson.M{})
		if err != nil {
			return "", err
		}
		c.UdhaarID = fmt.Sprintf("UDH-%03d", n+1)
	}
	if c.CreditLimit == 0 {
		if p, ok := models.TierProfiles[c.Tier]; ok {
			c.CreditLimit = p.CreditLimit
		}
	}
	if _, err := s.customers.InsertOne(ctx, c); err != nil {
		return "", err
	}
	return c.ID.Hex(), nil
}

func (s *Store) UpdateCustomer(ctx context.Context, id string, fields bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.customers.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustBalance adds delta to totalOutstanding. Credit sales pass a positive
// delta, payments a negative one. No floor or ceiling is enforced here.
func (s *Store) AdjustBalance(ctx context.Context, id string, delta float64) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.customers.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$inc": bson.M{"totaloutstanding": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Debtors lists customers with money outstanding, largest debt first.
func (s *Store) Debtors(ctx context.Context) ([]models.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "totaloutstanding", Value: -1}})
	cursor, err := s.customers.Find(ctx, bson.M{"totaloutstanding": bson.M{"$gt": 0}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Customer
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
