package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/data"
	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/model"
	apperrors "github.com/IRIS-LABS/social-wallat-app-back-end/internal/errors"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/handoff"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/ports"
)

// Redirect error codes carried back to the frontend when a third-party
// sign-in cannot proceed. The frontend maps them to user-facing screens.
const (
	// RedirectCodeEmailNotVerified reports that the provider has not
	// verified ownership of the email address.
	RedirectCodeEmailNotVerified = 2112262
	// RedirectCodeLocalAccount reports that the email already belongs to a
	// password-based account.
	RedirectCodeLocalAccount = 2112263
)

// RedirectError aborts an OAuth callback with a code the frontend renders.
// It satisfies error so it flows through the usual return paths.
type RedirectError struct {
	Code int
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("third-party sign-in rejected (code %d)", e.Code)
}

// ThirdPartyServiceOptions groups dependencies for ThirdPartyService.
type ThirdPartyServiceOptions struct {
	Provider   ports.OAuthProvider
	Identities ports.IdentityStore
	Handoffs   ports.HandoffStore
	Auth       *AuthService
}

// ThirdPartyService orchestrates the OAuth sign-in flow: code exchange,
// account classification, and the handoff relay that bridges the provider
// callback to the frontend's verify request.
type ThirdPartyService struct {
	provider   ports.OAuthProvider
	identities ports.IdentityStore
	handoffs   ports.HandoffStore
	auth       *AuthService
}

// NewThirdPartyService constructs a new ThirdPartyService.
func NewThirdPartyService(opts ThirdPartyServiceOptions) *ThirdPartyService {
	return &ThirdPartyService{
		provider:   opts.Provider,
		identities: opts.Identities,
		handoffs:   opts.Handoffs,
		auth:       opts.Auth,
	}
}

// ProviderName identifies the configured provider.
func (s *ThirdPartyService) ProviderName() string { return s.provider.Name() }

// AuthCodeURL returns the provider consent URL for the given state.
func (s *ThirdPartyService) AuthCodeURL(state string) string {
	return s.provider.AuthCodeURL(state)
}

// Authenticate redeems the authorization code and resolves the provider
// identity to a local claim. First-time identities get a user created on the
// spot with Incomplete set, signalling the frontend to collect the remaining
// profile fields.
//
// Rejections that must bounce back through the frontend are returned as
// *RedirectError; everything else follows the normal error taxonomy.
func (s *ThirdPartyService) Authenticate(ctx context.Context, code string) (domainauth.Claim, error) {
	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return domainauth.Claim{}, err
	}

	if !identity.EmailVerified {
		return domainauth.Claim{}, &RedirectError{Code: RedirectCodeEmailNotVerified}
	}

	account, err := s.identities.AccountByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		return s.claimForExisting(account, identity)
	case errors.Is(err, data.ErrAccountNotFound):
		return s.register(ctx, identity)
	default:
		return domainauth.Claim{}, fmt.Errorf("look up account: %w", err)
	}
}

func (s *ThirdPartyService) claimForExisting(account *model.UserAccount, identity domainauth.ProviderIdentity) (domainauth.Claim, error) {
	if !account.ThirdParty {
		return domainauth.Claim{}, &RedirectError{Code: RedirectCodeLocalAccount}
	}
	if account.Provider != identity.Provider || account.ProviderUserID != identity.ProviderUserID {
		return domainauth.Claim{}, apperrors.Wrap(
			fmt.Errorf("provider identity mismatch for account %s", account.UserID),
			apperrors.ErrCodeUpstream, "Request can't be processed")
	}
	return domainauth.Claim{UserID: account.UserID, Role: account.Role}, nil
}

func (s *ThirdPartyService) register(ctx context.Context, identity domainauth.ProviderIdentity) (domainauth.Claim, error) {
	userID, err := s.identities.CreateThirdPartyUser(ctx, model.CreateThirdPartyUserParams{
		FirstName:      identity.FirstName,
		LastName:       identity.LastName,
		Email:          identity.Email,
		Provider:       identity.Provider,
		ProviderUserID: identity.ProviderUserID,
	})
	if err != nil {
		if errors.Is(err, data.ErrEmailTaken) {
			// Raced with a local sign-up between lookup and insert.
			return domainauth.Claim{}, &RedirectError{Code: RedirectCodeLocalAccount}
		}
		return domainauth.Claim{}, fmt.Errorf("create third-party user: %w", err)
	}
	return domainauth.Claim{UserID: userID, Role: domainauth.RoleCustomer, Incomplete: true}, nil
}

// Stash parks the claim in the handoff store and returns the one-time key
// embedded in the redirect back to the frontend.
func (s *ThirdPartyService) Stash(ctx context.Context, claim domainauth.Claim) (string, error) {
	key, err := s.handoffs.Create(ctx, claim)
	if err != nil {
		return "", fmt.Errorf("stash handoff claim: %w", err)
	}
	return key, nil
}

// Complete redeems the one-time handoff key for a signed bearer token. A key
// that is unknown, reused or lapsed fails with an unauthenticated or expired
// error; the entry is gone either way.
func (s *ThirdPartyService) Complete(ctx context.Context, key string) (*IssuedToken, error) {
	claim, err := s.handoffs.Consume(ctx, key)
	if err != nil {
		switch {
		case errors.Is(err, handoff.ErrExpired):
			return nil, apperrors.Expired("Your sign-in attempt has expired. Please try again")
		case errors.Is(err, handoff.ErrNotFound):
			return nil, apperrors.Unauthenticated("Authentication is required")
		}
		return nil, fmt.Errorf("consume handoff key: %w", err)
	}
	return s.auth.issue(claim)
}
