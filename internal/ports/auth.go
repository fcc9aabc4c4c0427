package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/token, internal/handoff, internal/data and
// internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/model"
)

// TokenCodec creates and verifies signed, time-bounded bearer tokens.
//
// There is no revocation: once issued, a token stays cryptographically valid
// until its embedded expiry. Sign-out replaces the client's cookie with an
// already-expired token and relies on the client forgetting the old one.
type TokenCodec interface {
	// Issue encodes the claim with an absolute expiry of now + ttl and signs
	// it under the server secret. A ttl <= 0 produces a token that is already
	// expired, which is how sign-out tokens are minted.
	Issue(claim domainauth.Claim, ttl time.Duration) (string, error)

	// Verify checks the signature before the expiry and returns the embedded
	// claim. Failures are token.ErrInvalidSignature or token.ErrExpired.
	Verify(token string) (domainauth.Claim, error)
}

// HandoffStore is the one-time relay bridging the OAuth provider callback to
// the subsequent same-origin verify request. Entries are single-use: Consume
// deletes the entry whether or not it was still fresh.
type HandoffStore interface {
	// Create stores the claim under a new unguessable key and returns the key.
	Create(ctx context.Context, claim domainauth.Claim) (string, error)

	// Consume removes and returns the entry for key. Unknown or already
	// consumed keys fail with handoff.ErrNotFound; entries older than the
	// store TTL fail with handoff.ErrExpired (and are removed as well).
	Consume(ctx context.Context, key string) (domainauth.Claim, error)
}

// PasswordHasher hashes and verifies local account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches the stored hash.
	Compare(hash, password string) error
}

// OAuthProvider runs the code exchange leg of a third-party login.
type OAuthProvider interface {
	// Name identifies the provider (e.g. "google") for account records.
	Name() string

	// AuthCodeURL returns the provider consent URL carrying the given state.
	AuthCodeURL(state string) string

	// Exchange redeems the authorization code and returns the verified
	// provider identity.
	Exchange(ctx context.Context, code string) (domainauth.ProviderIdentity, error)
}

// IdentityStore persists users and their accounts.
//
// CreateLocalUser and CreateThirdPartyUser create the user row and the
// account row atomically: both succeed or neither is visible. Duplicate
// emails surface as data.ErrEmailTaken or data.ErrEmailTakenThirdParty so
// callers can tell a local duplicate from a third-party one.
type IdentityStore interface {
	CreateLocalUser(ctx context.Context, params model.CreateLocalUserParams) (string, error)
	CreateThirdPartyUser(ctx context.Context, params model.CreateThirdPartyUserParams) (string, error)
	AccountByEmail(ctx context.Context, email string) (*model.UserAccount, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
	// ProfileByID joins the user and account rows into the credential-free
	// view handed to clients. Unknown IDs fail with data.ErrUserNotFound.
	ProfileByID(ctx context.Context, id string) (*model.Profile, error)
}

// ConnectionStore persists user-to-user connections.
type ConnectionStore interface {
	AddConnection(ctx context.Context, params model.CreateConnectionParams) (*model.Connection, error)
	ListConnections(ctx context.Context, userID string) ([]model.ConnectionProfile, error)
	ListUsersExcept(ctx context.Context, userID string) ([]model.Profile, error)
}
