// Package redishandoff provides a Redis-backed handoff store for deployments
// that run more than one instance behind a load balancer.
package redishandoff

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/handoff"
)

// Store holds handoff claims in Redis under a key prefix, relying on Redis
// TTLs for expiry and GETDEL for consume-once semantics.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

type payload struct {
	Claim     domainauth.Claim `json:"claim"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewStore creates a Redis handoff store with the given TTL. A zero TTL falls
// back to the in-memory default.
func NewStore(client redis.UniversalClient, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = handoff.DefaultTTL
	}
	return &Store{client: client, prefix: "handoff:", ttl: ttl}
}

// Create stores claim under a fresh random key and returns the key.
func (s *Store) Create(ctx context.Context, claim domainauth.Claim) (string, error) {
	if !claim.Valid() {
		return "", errors.New("claim has no subject")
	}

	data, err := json.Marshal(payload{Claim: claim, CreatedAt: time.Now().UTC()})
	if err != nil {
		return "", fmt.Errorf("marshal handoff payload: %w", err)
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate handoff key: %w", err)
	}
	key := hex.EncodeToString(buf)

	if err := s.client.Set(ctx, s.prefix+key, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set: %w", err)
	}
	return key, nil
}

// Consume atomically removes and returns the claim stored under key. A key
// that is absent, already consumed, or lapsed returns handoff.ErrNotFound.
func (s *Store) Consume(ctx context.Context, key string) (domainauth.Claim, error) {
	if key == "" {
		return domainauth.Claim{}, handoff.ErrNotFound
	}

	data, err := s.client.GetDel(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Claim{}, handoff.ErrNotFound
		}
		return domainauth.Claim{}, fmt.Errorf("redis getdel: %w", err)
	}

	var p payload
	if unmarshalErr := json.Unmarshal([]byte(data), &p); unmarshalErr != nil {
		return domainauth.Claim{}, fmt.Errorf("unmarshal handoff payload: %w", unmarshalErr)
	}

	// Redis TTL already bounds the entry lifetime; the stored timestamp
	// backstops clock drift between instances.
	if time.Now().UTC().After(p.CreatedAt.Add(s.ttl)) {
		return domainauth.Claim{}, handoff.ErrExpired
	}
	return p.Claim, nil
}
