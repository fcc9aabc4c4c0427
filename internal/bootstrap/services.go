package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/IRIS-LABS/social-wallat-app-back-end/config"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/adapters/google"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/adapters/passwords"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/adapters/redishandoff"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/data"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/handoff"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/ports"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/service"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/token"
)

// ServiceDeps groups what NewServices needs to build the service layer.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient // Required only for the redis handoff backend.
	Logger      *slog.Logger
}

// ServiceContainer holds the constructed services plus the shared codec and
// the in-memory handoff store (nil when the redis backend is active).
type ServiceContainer struct {
	Auth        *service.AuthService
	ThirdParty  *service.ThirdPartyService
	Connections *service.ConnectionService
	Codec       *token.Codec
	Sweepable   *handoff.Store
}

// NewServices wires adapters and services from configuration.
func NewServices(ctx context.Context, deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config

	codec, err := token.NewCodec(token.Config{Secret: cfg.Auth.TokenSecret})
	if err != nil {
		return nil, fmt.Errorf("build token codec: %w", err)
	}

	identities := data.NewIdentityRepo(deps.DB)
	connections := data.NewConnectionRepo(deps.DB)
	hasher := &passwords.BcryptHasher{Cost: cfg.Auth.BcryptCost}

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Identities: identities,
		Hasher:     hasher,
		Codec:      codec,
		TokenTTL:   cfg.Auth.TokenTTL,
	})

	container := &ServiceContainer{
		Auth:  authSvc,
		Codec: codec,
		Connections: service.NewConnectionService(service.ConnectionServiceOptions{
			Connections: connections,
		}),
	}

	if cfg.Auth.Google.Enabled() {
		provider, providerErr := google.NewProvider(ctx, google.ProviderConfig{
			ClientID:     cfg.Auth.Google.ClientID,
			ClientSecret: cfg.Auth.Google.ClientSecret,
			RedirectURL:  cfg.Auth.Google.RedirectURL,
		})
		if providerErr != nil {
			return nil, fmt.Errorf("build google provider: %w", providerErr)
		}

		handoffs, store, handoffErr := buildHandoffStore(cfg, deps.RedisClient)
		if handoffErr != nil {
			return nil, handoffErr
		}
		container.Sweepable = store

		container.ThirdParty = service.NewThirdPartyService(service.ThirdPartyServiceOptions{
			Provider:   provider,
			Identities: identities,
			Handoffs:   handoffs,
			Auth:       authSvc,
		})
	} else if deps.Logger != nil {
		deps.Logger.Info("google sign-in disabled", "reason", "no client configured")
	}

	return container, nil
}

//nolint:ireturn // the port is the point: callers only see the HandoffStore.
func buildHandoffStore(cfg *config.AppConfig, client redis.UniversalClient) (ports.HandoffStore, *handoff.Store, error) {
	switch cfg.Auth.HandoffBackend {
	case config.HandoffBackendRedis:
		if client == nil {
			return nil, nil, fmt.Errorf("handoff backend %q requires a redis connection", cfg.Auth.HandoffBackend)
		}
		return redishandoff.NewStore(client, cfg.Auth.HandoffTTL), nil, nil
	default:
		store := handoff.NewStore(handoff.Config{TTL: cfg.Auth.HandoffTTL})
		return store, store, nil
	}
}
