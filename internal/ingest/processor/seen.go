package processor

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const seenKeyPrefix = "ingest:seen:"

// KeyValue is the part of the Redis client the Redis seen set uses.
type KeyValue interface {
	SetNX(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// RedisSeenSet keeps ids for window across every ingest replica.
type RedisSeenSet struct {
	kv     KeyValue
	window time.Duration
}

func NewRedisSeenSet(kv KeyValue, window time.Duration) *RedisSeenSet {
	return &RedisSeenSet{kv: kv, window: window}
}

func (s *RedisSeenSet) Seen(ctx context.Context, eventID string) (bool, error) {
	return s.kv.Exists(ctx, seenKeyPrefix+eventID)
}

func (s *RedisSeenSet) Mark(ctx context.Context, eventID string) error {
	_, err := s.kv.SetNX(ctx, seenKeyPrefix+eventID, s.window)
	return err
}

// MemorySeenSet is a per-process seen set bounded by size and age.
type MemorySeenSet struct {
	mu  sync.Mutex
	ids *expirable.LRU[string, struct{}]
}

func NewMemorySeenSet(size int, window time.Duration) *MemorySeenSet {
	return &MemorySeenSet{ids: expirable.NewLRU[string, struct{}](size, nil, window)}
}

func (s *MemorySeenSet) Seen(ctx context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids.Contains(eventID), nil
}

func (s *MemorySeenSet) Mark(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids.Add(eventID, struct{}{})
	return nil
}
