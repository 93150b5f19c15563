package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/recyclelect/storefront-backend/pkg/errors"
	"github.com/recyclelect/storefront-backend/pkg/redis"
)

// Repository persists per-session cart snapshots. Get returns an empty
// cart, never an error, for sessions without one.
type Repository interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, cart Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type memoryRepository struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

// NewMemoryRepository keeps carts in process memory. State is lost on
// restart, which matches the single-instance default deployment.
func NewMemoryRepository() Repository {
	return &memoryRepository{carts: make(map[string]Cart)}
}

func (r *memoryRepository) Get(_ context.Context, sessionID string) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.carts[sessionID]
	if !ok {
		return New(), nil
	}
	return stored.Clone(), nil
}

func (r *memoryRepository) Save(_ context.Context, sessionID string, cart Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cart.IsEmpty() {
		delete(r.carts, sessionID)
		return nil
	}
	r.carts[sessionID] = cart.Clone()
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}

type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository stores carts as JSON snapshots under the session
// key, with a sliding TTL refreshed on every write.
func NewRedisRepository(client *redis.Client, ttl time.Duration) Repository {
	return &redisRepository{client: client, ttl: ttl}
}

func (r *redisRepository) Get(ctx context.Context, sessionID string) (Cart, error) {
	raw, err := r.client.Get(ctx, r.client.CartKey(sessionID))
	if redis.IsNil(err) {
		return New(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "loading cart snapshot")
	}
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "decoding cart snapshot")
	}
	if cart == nil {
		cart = New()
	}
	return cart, nil
}

func (r *redisRepository) Save(ctx context.Context, sessionID string, cart Cart) error {
	key := r.client.CartKey(sessionID)
	if cart.IsEmpty() {
		if err := r.client.Del(ctx, key); err != nil {
			return errors.Wrap(errors.CodeDependency, err, "clearing cart snapshot")
		}
		return nil
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding cart snapshot")
	}
	if err := r.client.Set(ctx, key, string(raw), r.ttl); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "storing cart snapshot")
	}
	return nil
}

func (r *redisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.client.CartKey(sessionID)); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "deleting cart snapshot")
	}
	return nil
}
