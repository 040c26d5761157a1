package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/madhuka-dev/dataclaim-service/internal/domain"
)

const locationsCollection = "locations"

// LocationStore persists catalog points in the locations collection.
type LocationStore struct {
	cache *Cache
}

// NewLocationStore creates a location repository over the shared connection cache.
func NewLocationStore(cache *Cache) *LocationStore {
	return &LocationStore{cache: cache}
}

// List returns up to limit points in store-native order.
func (s *LocationStore) List(ctx context.Context, limit int64) ([]domain.LocationPoint, error) {
	db, err := s.cache.Handle(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := db.Collection(locationsCollection).Find(ctx, bson.D{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, &domain.StorageError{Op: "find locations", Err: err}
	}
	defer cursor.Close(ctx)

	var points []domain.LocationPoint
	if err := cursor.All(ctx, &points); err != nil {
		return nil, &domain.StorageError{Op: "decode locations", Err: err}
	}
	return points, nil
}

// Insert writes one point and returns it with the store-assigned id.
func (s *LocationStore) Insert(ctx context.Context, p domain.LocationPoint) (domain.LocationPoint, error) {
	db, err := s.cache.Handle(ctx)
	if err != nil {
		return domain.LocationPoint{}, err
	}

	res, err := db.Collection(locationsCollection).InsertOne(ctx, p)
	if err != nil {
		return domain.LocationPoint{}, &domain.StorageError{Op: "insert location", Err: err}
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return p, nil
}

// InsertMany writes the given points in one call. Used by catalog bootstrap.
func (s *LocationStore) InsertMany(ctx context.Context, points []domain.LocationPoint) error {
	if len(points) == 0 {
		return nil
	}
	db, err := s.cache.Handle(ctx)
	if err != nil {
		return err
	}

	docs := make([]any, len(points))
	for i := range points {
		docs[i] = points[i]
	}
	if _, err := db.Collection(locationsCollection).InsertMany(ctx, docs); err != nil {
		return &domain.StorageError{Op: "insert seed locations", Err: err}
	}
	return nil
}
