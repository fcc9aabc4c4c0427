package httpx

import (
	"context"

	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
)

// claimKey is an unexported context key type to avoid collisions across
// packages. Centralized here so the pipeline, handlers, and the OAuth
// callback all use the same key.
type claimKey struct{}

// SetClaimInContext returns a child context carrying the authenticated claim.
func SetClaimInContext(ctx context.Context, claim domainauth.Claim) context.Context {
	return context.WithValue(ctx, claimKey{}, claim)
}

// GetClaimFromContext returns the claim from context and whether one is present.
func GetClaimFromContext(ctx context.Context) (domainauth.Claim, bool) {
	claim, ok := ctx.Value(claimKey{}).(domainauth.Claim)
	return claim, ok && claim.Valid()
}
