package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocationPoint is a named geographic point in the locations collection.
// Coordinates are not bounds-checked; see the package documentation.
type LocationPoint struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Latitude    float64            `json:"latitude" bson:"latitude"`
	Longitude   float64            `json:"longitude" bson:"longitude"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// NewLocationPoint builds an unsaved point with CreatedAt assigned from the
// domain clock. An empty description stays empty rather than null.
func NewLocationPoint(name string, latitude, longitude float64, description string) LocationPoint {
	return LocationPoint{
		Name:        name,
		Latitude:    latitude,
		Longitude:   longitude,
		Description: description,
		CreatedAt:   clock.Now().UTC(),
	}
}

// SeedLocations returns the fixed set of example points inserted the first
// time the catalog is read while empty. CreatedAt is stamped per call so the
// seeded rows carry the bootstrap time.
func SeedLocations() []LocationPoint {
	return []LocationPoint{
		NewLocationPoint("Central Park", 40.7829, -73.9654, "A large public park in Manhattan"),
		NewLocationPoint("Times Square", 40.7580, -73.9855, "A major commercial intersection in Manhattan"),
		NewLocationPoint("Brooklyn Bridge", 40.7061, -73.9969, "A hybrid cable-stayed/suspension bridge in New York City"),
	}
}
