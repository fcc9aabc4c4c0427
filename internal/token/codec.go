package token

// Package token implements the bearer token codec: stateless, HS256-signed
// JWTs carrying the authenticated claim and an absolute expiry.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
)

var (
	// ErrInvalidSignature is returned when a token's signature does not
	// verify under the server secret, or the token is malformed.
	ErrInvalidSignature = errors.New("token signature is invalid")
	// ErrExpired is returned when a correctly signed token is past its
	// embedded expiry.
	ErrExpired = errors.New("token is expired")
)

const minSecretLen = 32

// Config holds the codec configuration.
type Config struct {
	// Secret is the symmetric signing key. Must be at least 32 bytes.
	Secret string
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Codec issues and verifies bearer tokens. Tokens are stateless; nothing is
// recorded server-side and there is no revocation list.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// bearerClaims is the wire shape of the token payload.
type bearerClaims struct {
	jwt.RegisteredClaims
	Role       string `json:"role,omitempty"`
	Incomplete bool   `json:"incomplete,omitempty"`
}

// NewCodec constructs a Codec from Config.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) < minSecretLen {
		return nil, fmt.Errorf("token secret must be at least %d bytes", minSecretLen)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Codec{secret: []byte(cfg.Secret), now: now}, nil
}

// Issue encodes claim with expiry now + ttl and signs it. Issue-time is
// embedded, so two tokens for the same claim are not byte-identical across
// seconds. A ttl <= 0 yields an already-expired token; sign-out uses this to
// replace the client's cookie with a dead credential.
func (c *Codec) Issue(claim domainauth.Claim, ttl time.Duration) (string, error) {
	if !claim.Valid() {
		return "", errors.New("claim subject is required")
	}

	now := c.now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, bearerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:       string(claim.Role),
		Incomplete: claim.Incomplete,
	})

	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature first and only then the expiry, so a tampered
// token never reports Expired. On success the embedded claim is returned.
func (c *Codec) Verify(token string) (domainauth.Claim, error) {
	var parsed bearerClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return domainauth.Claim{}, ErrInvalidSignature
	}

	if parsed.Subject == "" || parsed.ExpiresAt == nil {
		return domainauth.Claim{}, ErrInvalidSignature
	}

	if !c.now().UTC().Before(parsed.ExpiresAt.Time) {
		return domainauth.Claim{}, ErrExpired
	}

	return domainauth.Claim{
		UserID:     parsed.Subject,
		Role:       domainauth.Role(parsed.Role),
		Incomplete: parsed.Incomplete,
	}, nil
}
