package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/madhuka-dev/dataclaim-service/internal/domain"
)

const claimsCollection = "data_claims"

// ClaimStore persists claim records in the data_claims collection.
type ClaimStore struct {
	cache *Cache
}

// NewClaimStore creates a claim repository over the shared connection cache.
func NewClaimStore(cache *Cache) *ClaimStore {
	return &ClaimStore{cache: cache}
}

// Insert writes one claim and returns it with the store-assigned id.
func (s *ClaimStore) Insert(ctx context.Context, rec domain.ClaimRecord) (domain.ClaimRecord, error) {
	db, err := s.cache.Handle(ctx)
	if err != nil {
		return domain.ClaimRecord{}, err
	}

	res, err := db.Collection(claimsCollection).InsertOne(ctx, rec)
	if err != nil {
		return domain.ClaimRecord{}, &domain.StorageError{Op: "insert claim", Err: err}
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = id
	}
	return rec, nil
}

// Recent returns up to limit claims, newest first by submission time.
func (s *ClaimStore) Recent(ctx context.Context, limit int64) ([]domain.ClaimRecord, error) {
	db, err := s.cache.Handle(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := db.Collection(claimsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, &domain.StorageError{Op: "find claims", Err: err}
	}
	defer cursor.Close(ctx)

	var claims []domain.ClaimRecord
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, &domain.StorageError{Op: "decode claims", Err: err}
	}
	return claims, nil
}
