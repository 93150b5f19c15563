package checkout

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/recyclelect/storefront-backend/pkg/errors"
	"github.com/recyclelect/storefront-backend/pkg/redis"
)

// Repository persists in-progress checkout state per session. Get
// returns nil, without error, when no checkout is underway.
type Repository interface {
	Get(ctx context.Context, sessionID string) (*State, error)
	Save(ctx context.Context, sessionID string, state *State) error
	Delete(ctx context.Context, sessionID string) error
}

type memoryRepository struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewMemoryRepository() Repository {
	return &memoryRepository{states: make(map[string]State)}
}

func (r *memoryRepository) Get(_ context.Context, sessionID string) (*State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.states[sessionID]
	if !ok {
		return nil, nil
	}
	clone := stored
	clone.Upgrades = make(map[string]string, len(stored.Upgrades))
	for k, v := range stored.Upgrades {
		clone.Upgrades[k] = v
	}
	return &clone, nil
}

func (r *memoryRepository) Save(_ context.Context, sessionID string, state *State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *state
	clone.Upgrades = make(map[string]string, len(state.Upgrades))
	for k, v := range state.Upgrades {
		clone.Upgrades[k] = v
	}
	r.states[sessionID] = clone
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, sessionID)
	return nil
}

type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(client *redis.Client, ttl time.Duration) Repository {
	return &redisRepository{client: client, ttl: ttl}
}

func (r *redisRepository) Get(ctx context.Context, sessionID string) (*State, error) {
	raw, err := r.client.Get(ctx, r.client.CheckoutKey(sessionID))
	if redis.IsNil(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "loading checkout state")
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "decoding checkout state")
	}
	if state.Upgrades == nil {
		state.Upgrades = make(map[string]string)
	}
	return &state, nil
}

func (r *redisRepository) Save(ctx context.Context, sessionID string, state *State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding checkout state")
	}
	if err := r.client.Set(ctx, r.client.CheckoutKey(sessionID), string(raw), r.ttl); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "storing checkout state")
	}
	return nil
}

func (r *redisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.client.CheckoutKey(sessionID)); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "deleting checkout state")
	}
	return nil
}
