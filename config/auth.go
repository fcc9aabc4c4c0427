package config

import (
	"fmt"
	"strings"
	"time"
)

// HandoffBackend selects where one-time sign-in handoff entries live.
type HandoffBackend string

const (
	// HandoffBackendMemory keeps entries in process memory. Suitable for a
	// single instance.
	HandoffBackendMemory HandoffBackend = "memory"
	// HandoffBackendRedis keeps entries in Redis so any instance behind a
	// load balancer can redeem them.
	HandoffBackendRedis HandoffBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for HandoffBackend.
func (b *HandoffBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "memory", "redis":
		*b = HandoffBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid HandoffBackend: %q (valid options: memory, redis)", v)
	}
}

// GoogleConfig contains the Google OAuth client configuration.
type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:8080/api/auth/third-party/google/callback"`
}

// Enabled reports whether a Google client is configured. The Google routes
// are skipped entirely when it is not.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// TokenSecret signs bearer tokens. Must be at least 32 bytes.
	TokenSecret string `env:"AUTH_TOKEN_SECRET,required"`

	// TokenTTL is the bearer token lifetime.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`

	// HandoffTTL bounds how long a third-party sign-in handoff entry stays
	// redeemable.
	HandoffTTL time.Duration `env:"AUTH_HANDOFF_TTL" envDefault:"5m"`

	// HandoffBackend selects the handoff store implementation.
	HandoffBackend HandoffBackend `env:"AUTH_HANDOFF_BACKEND" envDefault:"memory"`

	// HandoffSweepInterval is how often the in-memory store drops lapsed
	// entries.
	HandoffSweepInterval time.Duration `env:"AUTH_HANDOFF_SWEEP_INTERVAL" envDefault:"1m"`

	// BcryptCost is the bcrypt work factor for password hashing. Zero means
	// the library default.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"10"`

	// Google OAuth client configuration.
	Google GoogleConfig `envPrefix:"GOOGLE_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.TokenTTL <= 0 {
		a.TokenTTL = 24 * time.Hour
	}
	if a.HandoffTTL <= 0 {
		a.HandoffTTL = 5 * time.Minute
	}
	if a.HandoffSweepInterval <= 0 {
		a.HandoffSweepInterval = time.Minute
	}
	if a.BcryptCost < 0 {
		a.BcryptCost = 0
	}
}
