package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/models"
)

// Products returns a snapshot of the whole collection, newest first.
func (s *Store) Products(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Product
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Product(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return p, ErrNotFound
	}
	err = s.products.FindOne(ctx, bson.M{"_id": objID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return p, ErrNotFound
	}
	return p, err
}

// InsertProduct assigns the id; caller-supplied ids are ignored.
func (s *Store) InsertProduct(ctx context.Context, p models.Product) (string, error) {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	if _, err := s.products.InsertOne(ctx, p); err != nil {
		return "", err
	}
	return p.ID.Hex(), nil
}

// UpdateProduct applies a partial update. Fields holds bson field names.
func (s *Store) UpdateProduct(ctx context.Context, id string, fields bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	fields["updated_at"] = time.Now()
	res, err := s.products.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Restock increments currentStock by qty (canonical unit).
func (s *Store) Restock(ctx context.Context, id string, qty float64) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.products.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$inc": bson.M{"currentstock": qty},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock subtracts qty from currentStock. The filter guards against
// going negative: if the product doesn't have qty in stock the update
// matches nothing and an InsufficientStockError comes back.
func (s *Store) DecrementStock(ctx context.Context, id string, qty float64) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.products.UpdateOne(ctx, bson.M{
		"_id":          objID,
		"currentstock": bson.M{"$gte": qty},
	}, bson.M{
		"$inc": bson.M{"currentstock": -qty},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &InsufficientStockError{ProductID: id, Requested: qty}
	}
	return nil
}

// LowStock lists active products at or below their reorder threshold.
func (s *Store) LowStock(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.products.Find(ctx, bson.M{
		"isactive": true,
		"$expr":    bson.M{"$lte": bson.A{"$currentstock", "$minthreshold"}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Product
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
