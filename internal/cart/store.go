package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nharmon/slicehaus-backend/pkg/config"
	pkgerrors "github.com/nharmon/slicehaus-backend/pkg/errors"
	"github.com/nharmon/slicehaus-backend/pkg/redis"
)

type cartKV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// Store persists carts in Redis keyed by session id. Carts are small JSON
// blobs; a missing key reads back as an empty cart.
type Store struct {
	kv  cartKV
	ttl time.Duration
}

// NewStore builds a cart store on top of the shared Redis client.
func NewStore(client *redis.Client, cfg config.CartConfig) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &Store{kv: client, ttl: cfg.TTL}, nil
}

// Load returns the session's cart, or an empty one when nothing is stored.
func (s *Store) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return New(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		// A corrupt blob is unrecoverable; start the session over instead
		// of failing every cart request until the key expires.
		return New(), nil
	}
	return FromRecord(record), nil
}

// Save writes the cart back under the session key, refreshing the TTL. An
// empty cart is deleted rather than stored.
func (s *Store) Save(ctx context.Context, sessionID string, c *Cart) error {
	if c == nil || c.Len() == 0 {
		return s.Delete(ctx, sessionID)
	}

	payload, err := json.Marshal(c.Record())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(sessionID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

// Delete drops the session's cart.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	return nil
}
