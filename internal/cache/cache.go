package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/forgesight/forgesight/dashboard"
	"github.com/forgesight/forgesight/engine"
)

// SnapshotCache holds serialized dashboard payloads in Redis, keyed by a
// canonical encoding of the filter criteria. The dataset is immutable for a
// session, so entries only need a TTL to bound memory, not for correctness.
//
// Cache failures are logged and otherwise ignored: the caller recomputes.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, addr string, ttl time.Duration, logger *zap.Logger) (*SnapshotCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &SnapshotCache{client: client, ttl: ttl, logger: logger}, nil
}

// Get returns the cached snapshot for the criteria, or nil on miss.
func (c *SnapshotCache) Get(ctx context.Context, criteria engine.Criteria) *dashboard.Snapshot {
	data, err := c.client.Get(ctx, Key(criteria)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", zap.Error(err))
		}
		return nil
	}

	var snap dashboard.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		c.logger.Warn("cache entry corrupt, ignoring", zap.Error(err))
		return nil
	}
	return &snap
}

// Put stores a snapshot with the configured TTL.
func (c *SnapshotCache) Put(ctx context.Context, criteria engine.Criteria, snap *dashboard.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, Key(criteria), data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache put failed", zap.Error(err))
	}
}

// Close releases the Redis connection.
func (c *SnapshotCache) Close() error { return c.client.Close() }

// Key builds a canonical cache key for a criteria value. Filter sets are
// sorted so that logically equal criteria map to the same key regardless of
// the order query parameters arrived in.
func Key(criteria engine.Criteria) string {
	var b strings.Builder
	b.WriteString("forgesight:dashboard:")
	b.WriteString("r=" + canonical(criteria.Regions))
	b.WriteString(";c=" + canonical(criteria.Countries))
	b.WriteString(";o=" + canonical(criteria.Owners))
	fmt.Fprintf(&b, ";cap=%g..%g", criteria.CapacityMin, criteria.CapacityMax)
	return b.String()
}

func canonical(values []string) string {
	if len(values) == 0 {
		return ""
	}
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}
