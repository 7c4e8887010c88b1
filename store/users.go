package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/models"
)

func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.User
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UserByPhone(ctx context.Context, phone string) (models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"phone": phone}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return u, ErrNotFound
	}
	return u, err
}

func (s *Store) InsertUser(ctx context.Context, u models.User) (string, error) {
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		return "", err
	}
	return u.ID.Hex(), nil
}
