package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/madhuka-dev/dataclaim-service/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := domain.ClaimRecord{
		ID:          primitive.NewObjectID(),
		PhoneNumber: "+94 (555) 123-4567",
		SelectedGB:  "5",
		Location:    &domain.Position{Latitude: 6.9271, Longitude: 79.8612, Accuracy: 10, CapturedAt: now},
		SubmittedAt: now,
	}

	msg, err := serializeToMessage(rec)
	require.NoError(t, err)

	assert.Equal(t, []byte(rec.ID.Hex()), msg.Key)
	assert.Contains(t, string(msg.Value), `"phoneNumber":"+94 (555) 123-4567"`)
	assert.Contains(t, string(msg.Value), `"selectedGB":"5"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "selected_gb", msg.Headers[0].Key)
	assert.Equal(t, []byte("5"), msg.Headers[0].Value)
	assert.Equal(t, "submitted_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_NoLocation(t *testing.T) {
	rec := domain.ClaimRecord{
		ID:          primitive.NewObjectID(),
		PhoneNumber: "+94 (555) 123-4567",
		SelectedGB:  "other",
		SubmittedAt: time.Now().UTC(),
	}

	msg, err := serializeToMessage(rec)
	require.NoError(t, err)
	assert.Contains(t, string(msg.Value), `"location":null`)
}
