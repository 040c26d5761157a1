// Package store owns the MongoDB connection lifecycle and the claim and
// location repositories. A single lazily-established connection is cached for
// the process lifetime; everything else is per-request.
package store

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"

	"github.com/madhuka-dev/dataclaim-service/internal/domain"
	"github.com/madhuka-dev/dataclaim-service/internal/observability"
)

// DefaultDatabase is used when the connection URI carries no database name.
const DefaultDatabase = "test"

// Cache is the process-wide lazily-initialized MongoDB handle. Handle is
// idempotent: the first successful establishment wins and later calls return
// the cached pair without reconnecting. Establishment failure propagates to
// the calling request but leaves the cache empty, so a later call retries
// from scratch.
type Cache struct {
	uri     string
	logger  *slog.Logger
	metrics *observability.Metrics

	group singleflight.Group

	mu   sync.RWMutex
	conn *connection
}

type connection struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewCache creates an unconnected cache around the configured URI. No I/O
// happens until the first Handle call.
func NewCache(uri string, logger *slog.Logger, metrics *observability.Metrics) *Cache {
	return &Cache{
		uri:     uri,
		logger:  logger,
		metrics: metrics,
	}
}

// Handle returns the cached database handle, establishing the connection on
// first use. Concurrent cold-start calls are coalesced into a single
// establishment attempt.
func (c *Cache) Handle(ctx context.Context) (*mongo.Database, error) {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn != nil {
		return conn.db, nil
	}

	v, err, _ := c.group.Do("connect", func() (any, error) {
		// A racer may have populated the cache while this call waited on the gate.
		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()
		if conn != nil {
			return conn.db, nil
		}
		return c.connect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Database), nil
}

func (c *Cache) connect(ctx context.Context) (*mongo.Database, error) {
	if c.uri == "" {
		return nil, &domain.ConfigurationError{Message: "MONGODB_URI environment variable is not set"}
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.uri))
	if err != nil {
		return nil, &domain.StorageError{Op: "connect to mongodb", Err: err}
	}
	// Connect only validates options; Ping confirms a live topology.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, &domain.StorageError{Op: "ping mongodb", Err: err}
	}

	name := DatabaseName(c.uri)
	conn := &connection{client: client, db: client.Database(name)}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.metrics.StoreConnects.Inc()
	c.metrics.StoreConnected.Set(1)
	c.logger.Info("connected to mongodb", "database", name)

	return conn.db, nil
}

// CheckReadiness reports whether the store is usable, establishing the
// connection if this is the first store-backed call of the process.
func (c *Cache) CheckReadiness(ctx context.Context) error {
	_, err := c.Handle(ctx)
	return err
}

// Connected reports whether a live connection is currently cached.
func (c *Cache) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil
}

// Close disconnects the cached client, if any. Used at shutdown only.
func (c *Cache) Close(ctx context.Context) error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	c.metrics.StoreConnected.Set(0)
	return conn.client.Disconnect(ctx)
}

// DatabaseName derives the target database from the trailing path segment of
// the connection URI, stripping any query suffix. An empty segment falls back
// to DefaultDatabase. A URI with no path at all yields its host segment;
// deployments that omit the database name use a trailing slash.
func DatabaseName(uri string) string {
	name := uri[strings.LastIndex(uri, "/")+1:]
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return DefaultDatabase
	}
	return name
}
