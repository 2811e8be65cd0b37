package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/banquet-seating/internal/model"
)

// DefaultViewKey is the Redis key of the persisted view toggle.
const DefaultViewKey = "banquet:view"

// RedisViewStore persists the view state as JSON under a single key.
type RedisViewStore struct {
	rdb *redis.Client
	key string
}

// NewRedisViewStore binds a view store to key (DefaultViewKey when empty).
func NewRedisViewStore(rdb *redis.Client, key string) *RedisViewStore {
	if key == "" {
		key = DefaultViewKey
	}
	return &RedisViewStore{rdb: rdb, key: key}
}

// Get returns the stored view or ErrNoViewState.
func (s *RedisViewStore) Get(ctx context.Context) (model.ViewState, error) {
	bs, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.ViewState{}, ErrNoViewState
	}
	if err != nil {
		return model.ViewState{}, err
	}
	var v model.ViewState
	if err := json.Unmarshal(bs, &v); err != nil {
		return model.ViewState{}, err
	}
	return v, nil
}

// Put stores v without expiry.
func (s *RedisViewStore) Put(ctx context.Context, v model.ViewState) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, bs, 0).Err()
}

// MemoryViewStore keeps the view state in process memory.
type MemoryViewStore struct {
	mu  sync.Mutex
	v   model.ViewState
	set bool
}

func NewMemoryViewStore() *MemoryViewStore { return &MemoryViewStore{} }

func (s *MemoryViewStore) Get(ctx context.Context) (model.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return model.ViewState{}, ErrNoViewState
	}
	v := s.v
	if v.SelectedID != nil {
		v = v.WithSelection(*v.SelectedID)
	}
	return v, nil
}

func (s *MemoryViewStore) Put(ctx context.Context, v model.ViewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.SelectedID != nil {
		v = v.WithSelection(*v.SelectedID)
	}
	s.v, s.set = v, true
	return nil
}
