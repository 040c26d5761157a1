package geolocate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madhuka-dev/dataclaim-service/internal/domain"
)

type stubProvider struct {
	pos   domain.Position
	err   error
	calls int
	block bool // wait for ctx cancellation instead of answering
}

func (s *stubProvider) CurrentPosition(ctx context.Context, _ bool) (domain.Position, error) {
	s.calls++
	if s.block {
		<-ctx.Done()
		return domain.Position{}, ctx.Err()
	}
	return s.pos, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAcquire_Success(t *testing.T) {
	provider := &stubProvider{pos: domain.Position{Latitude: 6.9271, Longitude: 79.8612, Accuracy: 10}}
	a := New(provider, DefaultOptions(), discardLogger())

	frozen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a.SetClock(clockwork.NewFakeClockAt(frozen))

	pos, err := a.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6.9271, pos.Latitude)
	assert.Equal(t, 79.8612, pos.Longitude)
	assert.Equal(t, frozen, pos.CapturedAt, "acquirer stamps fixes the provider left unstamped")
}

func TestAcquire_ReturnsCachedFixWithinMaxAge(t *testing.T) {
	provider := &stubProvider{pos: domain.Position{Latitude: 1, Longitude: 2, Accuracy: 5}}
	a := New(provider, DefaultOptions(), discardLogger())

	first, err := a.Acquire(context.Background())
	require.NoError(t, err)
	second, err := a.Acquire(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls, "second acquire must not contact the provider")
}

func TestAcquire_ZeroMaxAgeDisablesCaching(t *testing.T) {
	provider := &stubProvider{pos: domain.Position{Latitude: 1, Longitude: 2}}
	opts := DefaultOptions()
	opts.MaxAge = 0
	a := New(provider, opts, discardLogger())

	_, err := a.Acquire(context.Background())
	require.NoError(t, err)
	_, err = a.Acquire(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, provider.calls)
}

func TestAcquire_TimeoutClassified(t *testing.T) {
	provider := &stubProvider{block: true}
	opts := DefaultOptions()
	opts.Timeout = 20 * time.Millisecond
	a := New(provider, opts, discardLogger())

	_, err := a.Acquire(context.Background())
	require.Error(t, err)

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, KindTimeout, ge.Kind)
	assert.Equal(t, "Location request timed out", ge.Error())
}

func TestAcquire_ProviderTypedErrorPassesThrough(t *testing.T) {
	provider := &stubProvider{err: &Error{Kind: KindPermissionDenied, Err: errors.New("403")}}
	a := New(provider, DefaultOptions(), discardLogger())

	_, err := a.Acquire(context.Background())

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, KindPermissionDenied, ge.Kind)
	assert.Equal(t, "Location access denied by user", ge.Error())
}

func TestAcquire_UnknownErrorMapsToUnavailable(t *testing.T) {
	provider := &stubProvider{err: errors.New("socket exploded")}
	a := New(provider, DefaultOptions(), discardLogger())

	_, err := a.Acquire(context.Background())

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, KindUnavailable, ge.Kind)
	assert.Equal(t, "Unable to retrieve your location", ge.Error())
	assert.ErrorContains(t, ge.Err, "socket exploded")
}

func TestAcquire_FailureIsNotCached(t *testing.T) {
	provider := &stubProvider{err: errors.New("flaky")}
	a := New(provider, DefaultOptions(), discardLogger())

	_, err := a.Acquire(context.Background())
	require.Error(t, err)

	provider.err = nil
	provider.pos = domain.Position{Latitude: 3}
	pos, err := a.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3.0, pos.Latitude)
	assert.Equal(t, 2, provider.calls)
}

func TestErrorMessages_FixedPerKind(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPermissionDenied, "Location access denied by user"},
		{KindPositionUnavailable, "Location information is unavailable"},
		{KindTimeout, "Location request timed out"},
		{KindUnavailable, "Unable to retrieve your location"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, (&Error{Kind: tt.kind}).Error())
	}
}
