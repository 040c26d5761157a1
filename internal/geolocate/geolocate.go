// Package geolocate acquires a single device position with bounded wait time
// and a typed failure taxonomy. It is used by the claim submission flow only:
// acquisition failures never reach the server, they abort the submission on
// the client side with one of four fixed user-facing messages.
package geolocate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	gocache "github.com/patrickmn/go-cache"

	"github.com/madhuka-dev/dataclaim-service/internal/domain"
)

// Kind classifies an acquisition failure.
type Kind int

const (
	// KindPermissionDenied: the position source refused access.
	KindPermissionDenied Kind = iota + 1
	// KindPositionUnavailable: the source answered but produced no usable fix.
	KindPositionUnavailable
	// KindTimeout: no fix arrived within the configured bound.
	KindTimeout
	// KindUnavailable: any failure outside the three specific kinds.
	KindUnavailable
)

// Fixed user-facing messages, surfaced verbatim.
var kindMessages = map[Kind]string{
	KindPermissionDenied:    "Location access denied by user",
	KindPositionUnavailable: "Location information is unavailable",
	KindTimeout:             "Location request timed out",
	KindUnavailable:         "Unable to retrieve your location",
}

// Error is a classified acquisition failure. Its message is fixed per kind;
// the underlying cause stays attached for diagnostics.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if msg, ok := kindMessages[e.Kind]; ok {
		return msg
	}
	return kindMessages[KindUnavailable]
}

func (e *Error) Unwrap() error { return e.Err }

// Provider is a single-shot position source.
type Provider interface {
	CurrentPosition(ctx context.Context, highAccuracy bool) (domain.Position, error)
}

// Options configure acquisition: high accuracy, a bounded wait, and
// acceptance of a cached fix up to MaxAge old.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaxAge       time.Duration
}

// DefaultOptions returns the standard acquisition settings.
func DefaultOptions() Options {
	return Options{
		HighAccuracy: true,
		Timeout:      10 * time.Second,
		MaxAge:       5 * time.Minute,
	}
}

const lastFixKey = "last-fix"

// Acquirer wraps a Provider with timeout, max-age caching, and error
// classification. Concurrent Acquire calls are not deduplicated; that
// discipline belongs to the caller.
type Acquirer struct {
	provider Provider
	opts     Options
	fixes    *gocache.Cache // holds at most the last fix, expiring at MaxAge
	clk      clockwork.Clock
	logger   *slog.Logger
}

// New creates an Acquirer around the given provider.
func New(provider Provider, opts Options, logger *slog.Logger) *Acquirer {
	a := &Acquirer{
		provider: provider,
		opts:     opts,
		clk:      clockwork.NewRealClock(),
		logger:   logger,
	}
	if opts.MaxAge > 0 {
		a.fixes = gocache.New(opts.MaxAge, opts.MaxAge)
	}
	return a
}

// SetClock swaps the time source used to stamp fixes. Pass nil to reset.
func (a *Acquirer) SetClock(c clockwork.Clock) {
	if c == nil {
		a.clk = clockwork.NewRealClock()
		return
	}
	a.clk = c
}

// Acquire returns a position or a classified *Error. A cached fix younger
// than MaxAge is returned without contacting the provider. The only bound on
// wait time is the configured timeout; there is no explicit cancellation
// beyond the caller's context.
func (a *Acquirer) Acquire(ctx context.Context) (domain.Position, error) {
	if a.fixes != nil {
		if v, ok := a.fixes.Get(lastFixKey); ok {
			pos := v.(domain.Position)
			a.logger.Debug("returning cached position", "captured_at", pos.CapturedAt)
			return pos, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	pos, err := a.provider.CurrentPosition(ctx, a.opts.HighAccuracy)
	if err != nil {
		return domain.Position{}, classify(err)
	}
	if pos.CapturedAt.IsZero() {
		pos.CapturedAt = a.clk.Now().UTC()
	}

	if a.fixes != nil {
		a.fixes.SetDefault(lastFixKey, pos)
	}
	return pos, nil
}

// classify maps provider failures onto the four fixed kinds. Providers that
// already return *Error pass through; deadline expiry becomes a timeout;
// everything else is the generic unavailable kind.
func classify(err error) error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindUnavailable, Err: err}
}
