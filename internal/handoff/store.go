package handoff

// Package handoff implements the in-process one-time relay used to complete
// third-party login. The provider callback cannot reliably set a first-party
// cookie before redirecting the browser back to the front end, so it parks
// the completed identity here under an unguessable key and the verify
// request redeems it.
//
// The store is process-wide state with no persistence: a restart drops all
// pending hand-offs, which is acceptable because entries live for minutes.

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
)

var (
	// ErrNotFound is returned when a key is unknown or already consumed.
	ErrNotFound = errors.New("handoff entry not found")
	// ErrExpired is returned when an entry outlived the store TTL before
	// being consumed.
	ErrExpired = errors.New("handoff entry expired")
)

// DefaultTTL bounds how long an unconsumed entry stays redeemable.
const DefaultTTL = 5 * time.Minute

// keyBytes gives 128 bits of entropy per key.
const keyBytes = 16

type entry struct {
	claim     domainauth.Claim
	createdAt time.Time
}

// Config holds the store configuration.
type Config struct {
	// TTL after which an unconsumed entry is rejected. Defaults to DefaultTTL.
	TTL time.Duration
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Store is a mutex-guarded map from one-time keys to pending identity
// claims. Entries expire lazily on read; Sweep exists only to bound memory
// for entries that are never redeemed.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewStore constructs a Store from Config.
func NewStore(cfg Config) *Store {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     now,
	}
}

// Create stores claim under a fresh cryptographically random key and returns
// the key. Safe for concurrent use.
func (s *Store) Create(_ context.Context, claim domainauth.Claim) (string, error) {
	key, err := generateKey()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A 128-bit collision is not expected within the lifetime of the
	// process; regenerate rather than overwrite if it ever happens.
	for {
		if _, exists := s.entries[key]; !exists {
			break
		}
		key, err = generateKey()
		if err != nil {
			return "", err
		}
	}
	s.entries[key] = entry{claim: claim, createdAt: s.now()}
	return key, nil
}

// Consume removes the entry for key and returns its claim. The entry is
// deleted no matter the outcome, so a second Consume with the same key
// always fails with ErrNotFound. Entries older than the TTL fail with
// ErrExpired.
func (s *Store) Consume(_ context.Context, key string) (domainauth.Claim, error) {
	if key == "" {
		return domainauth.Claim{}, ErrNotFound
	}

	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	now := s.now()
	s.mu.Unlock()

	if !ok {
		return domainauth.Claim{}, ErrNotFound
	}
	if now.Sub(e.createdAt) > s.ttl {
		return domainauth.Claim{}, ErrExpired
	}
	return e.claim, nil
}

// Len reports the number of entries currently held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep removes entries past the TTL and reports how many were dropped.
// Expiry is already enforced at read time; sweeping only bounds memory used
// by entries nobody ever redeems.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if now.Sub(e.createdAt) > s.ttl {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps at the given interval until ctx is canceled. Interval
// defaults to the TTL when not positive.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func generateKey() (string, error) {
	b := make([]byte, keyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
