package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaimRecord_AssignsSubmittedAtFromClock(t *testing.T) {
	frozen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	rec := NewClaimRecord("+94 (555) 123-4567", "5", &Position{Latitude: 6.9, Longitude: 79.8, Accuracy: 10}, "203.0.113.7", "claimctl/1.0")

	assert.Equal(t, frozen, rec.SubmittedAt)
	assert.True(t, rec.ID.IsZero(), "id belongs to the store")
	assert.Equal(t, "+94 (555) 123-4567", rec.PhoneNumber)
	assert.Equal(t, "5", rec.SelectedGB)
	require.NotNil(t, rec.Location)
	assert.Equal(t, 6.9, rec.Location.Latitude)
}

func TestSeedLocations(t *testing.T) {
	frozen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	seeds := SeedLocations()
	require.Len(t, seeds, 3)

	names := []string{seeds[0].Name, seeds[1].Name, seeds[2].Name}
	assert.Equal(t, []string{"Central Park", "Times Square", "Brooklyn Bridge"}, names)
	for _, s := range seeds {
		assert.True(t, s.ID.IsZero())
		assert.Equal(t, frozen, s.CreatedAt)
		assert.NotEmpty(t, s.Description)
	}
}

func TestNewLocationPoint_EmptyDescriptionStaysEmpty(t *testing.T) {
	p := NewLocationPoint("Test Point", 40.1, -73.9, "")
	assert.Equal(t, "", p.Description)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestStorageError_WrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := &StorageError{Op: "insert claim", Err: cause}

	assert.Equal(t, "insert claim: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	var se *StorageError
	assert.ErrorAs(t, error(err), &se)
}
