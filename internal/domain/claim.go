package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GBOptions is the fixed enumeration of data-quota tiers a claim may request.
var GBOptions = []string{"1", "2", "5", "10", "20", "other"}

// Position is a single device fix: WGS-84 coordinates, the reported accuracy
// radius in meters, and the time the fix was captured.
type Position struct {
	Latitude   float64   `json:"latitude" bson:"latitude"`
	Longitude  float64   `json:"longitude" bson:"longitude"`
	Accuracy   float64   `json:"accuracy" bson:"accuracy"`
	CapturedAt time.Time `json:"capturedAt" bson:"capturedAt"`
}

// ClaimRecord is one data-claim submission as persisted in the data_claims
// collection. Location is nil only when acquisition failed and the caller
// chose to proceed without a fix.
type ClaimRecord struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	SelectedGB  string             `json:"selectedGB" bson:"selectedGB"`
	Location    *Position          `json:"location" bson:"location"`
	SubmittedAt time.Time          `json:"submittedAt" bson:"submittedAt"`
	SourceIP    string             `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent   string             `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
}

// NewClaimRecord builds an unsaved claim with the submission timestamp
// assigned from the domain clock. The id is left for the store to assign.
func NewClaimRecord(phoneNumber, selectedGB string, location *Position, sourceIP, userAgent string) ClaimRecord {
	return ClaimRecord{
		PhoneNumber: phoneNumber,
		SelectedGB:  selectedGB,
		Location:    location,
		SubmittedAt: clock.Now().UTC(),
		SourceIP:    sourceIP,
		UserAgent:   userAgent,
	}
}
