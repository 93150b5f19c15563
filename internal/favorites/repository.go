package favorites

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/recyclelect/storefront-backend/pkg/errors"
	"github.com/recyclelect/storefront-backend/pkg/redis"
)

// Repository persists per-session favorite sets. Get returns an empty
// set for sessions without one.
type Repository interface {
	Get(ctx context.Context, sessionID string) (Favorites, error)
	Save(ctx context.Context, sessionID string, favs Favorites) error
	Delete(ctx context.Context, sessionID string) error
}

type memoryRepository struct {
	mu   sync.RWMutex
	sets map[string]Favorites
}

func NewMemoryRepository() Repository {
	return &memoryRepository{sets: make(map[string]Favorites)}
}

func (r *memoryRepository) Get(_ context.Context, sessionID string) (Favorites, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.sets[sessionID]
	if !ok {
		return New(), nil
	}
	return stored.Clone(), nil
}

func (r *memoryRepository) Save(_ context.Context, sessionID string, favs Favorites) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if favs.IsEmpty() {
		delete(r.sets, sessionID)
		return nil
	}
	r.sets[sessionID] = favs.Clone()
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, sessionID)
	return nil
}

type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository stores favorites as a JSON id array under the
// session key.
func NewRedisRepository(client *redis.Client, ttl time.Duration) Repository {
	return &redisRepository{client: client, ttl: ttl}
}

func (r *redisRepository) Get(ctx context.Context, sessionID string) (Favorites, error) {
	raw, err := r.client.Get(ctx, r.client.FavoritesKey(sessionID))
	if redis.IsNil(err) {
		return New(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "loading favorites snapshot")
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "decoding favorites snapshot")
	}
	favs := New()
	for _, id := range ids {
		favs[id] = struct{}{}
	}
	return favs, nil
}

func (r *redisRepository) Save(ctx context.Context, sessionID string, favs Favorites) error {
	key := r.client.FavoritesKey(sessionID)
	if favs.IsEmpty() {
		if err := r.client.Del(ctx, key); err != nil {
			return errors.Wrap(errors.CodeDependency, err, "clearing favorites snapshot")
		}
		return nil
	}
	raw, err := json.Marshal(favs.IDs())
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding favorites snapshot")
	}
	if err := r.client.Set(ctx, key, string(raw), r.ttl); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "storing favorites snapshot")
	}
	return nil
}

func (r *redisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.client.FavoritesKey(sessionID)); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "deleting favorites snapshot")
	}
	return nil
}
