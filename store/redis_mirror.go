package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const mirrorWriteTimeout = 5 * time.Second

// RedisMirror replicates records to a shared Redis instance so other
// terminals can see them. Writes are opportunistic: a failure is logged
// and swallowed, never retried, and never surfaced to the caller.
type RedisMirror struct {
	rdb *redis.Client
}

// NewRedisMirror connects to Redis at addr. A nil mirror is a valid
// receiver everywhere, so callers can pass the result through unchecked.
func NewRedisMirror(addr string) *RedisMirror {
	if addr == "" {
		return nil
	}
	return &RedisMirror{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Write mirrors one record. Safe to call on a nil mirror.
func (m *RedisMirror) Write(entity Entity, id string, record interface{}) {
	if m == nil {
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		log.Printf("mirror: marshal %s/%s failed: %v", entity, id, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mirrorWriteTimeout)
	defer cancel()

	key := fmt.Sprintf("smartqueue:%s:%s", entity, id)
	if err := m.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		log.Printf("mirror: write %s failed, using local store only: %v", key, err)
	}
}

// Ping reports whether the mirror is reachable. Safe on a nil mirror.
func (m *RedisMirror) Ping(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.rdb.Ping(ctx).Err()
}

// Close releases the underlying connection. Safe on a nil mirror.
func (m *RedisMirror) Close() error {
	if m == nil {
		return nil
	}
	return m.rdb.Close()
}
