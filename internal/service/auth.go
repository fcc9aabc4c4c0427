package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/data"
	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/model"
	apperrors "github.com/IRIS-LABS/social-wallat-app-back-end/internal/errors"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/ports"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/token"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Identities ports.IdentityStore
	Hasher     ports.PasswordHasher
	Codec      ports.TokenCodec
	TokenTTL   time.Duration
}

// AuthService orchestrates local sign-up, sign-in and sign-out.
type AuthService struct {
	identities ports.IdentityStore
	hasher     ports.PasswordHasher
	codec      ports.TokenCodec
	tokenTTL   time.Duration
}

// DefaultTokenTTL bounds bearer token lifetime when no TTL is configured.
const DefaultTokenTTL = 24 * time.Hour

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{
		identities: opts.Identities,
		hasher:     opts.Hasher,
		codec:      opts.Codec,
		tokenTTL:   ttl,
	}
}

// SignUpInput groups parameters for registering a local user.
type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// IssuedToken pairs a signed bearer token with its absolute expiry, which
// handlers reuse for the cookie Expires attribute.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// SignUp registers a local user and returns a signed token for the new
// identity. A duplicate email is reported differently depending on whether
// the existing account is local or third-party.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*IssuedToken, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.identities.CreateLocalUser(ctx, model.CreateLocalUserParams{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEmailTaken):
			return nil, apperrors.Conflict("Email address is already registered")
		case errors.Is(err, data.ErrEmailTakenThirdParty):
			return nil, apperrors.Conflict("You are already registered using the google authorization service")
		}
		return nil, fmt.Errorf("create local user: %w", err)
	}

	return s.issue(domainauth.Claim{UserID: userID, Role: domainauth.RoleCustomer})
}

// SignInInput groups parameters for a local sign-in.
type SignInInput struct {
	Email    string
	Password string
}

// SignIn verifies the credentials and returns a signed token. An unknown
// email and a wrong password produce the same message so the response does
// not reveal which accounts exist.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*IssuedToken, error) {
	account, err := s.identities.AccountByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, data.ErrAccountNotFound) {
			return nil, apperrors.Unauthenticated("Email or password is incorrect")
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}

	if account.ThirdParty {
		return nil, apperrors.Validation("You registered using the google authorization service, Please use the google sign in to access the account")
	}

	if compareErr := s.hasher.Compare(account.PasswordHash, input.Password); compareErr != nil {
		if apperrors.IsUnauthenticated(compareErr) {
			return nil, apperrors.Unauthenticated("Email or password is incorrect")
		}
		return nil, compareErr
	}

	return s.issue(domainauth.Claim{UserID: account.UserID, Role: account.Role})
}

// SignOutToken mints an already-expired token for the given claim. Handlers
// set it as the cookie value so well-behaved clients stop presenting the old
// credential; the old token itself stays valid until its embedded expiry.
func (s *AuthService) SignOutToken(claim domainauth.Claim) (string, error) {
	tok, err := s.codec.Issue(claim, -time.Second)
	if err != nil {
		return "", fmt.Errorf("issue sign-out token: %w", err)
	}
	return tok, nil
}

// Verify decodes a bearer token into its claim, translating codec failures
// into the application error taxonomy.
func (s *AuthService) Verify(bearer string) (domainauth.Claim, error) {
	claim, err := s.codec.Verify(bearer)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			return domainauth.Claim{}, apperrors.Expired("Your session has expired. Please sign in again")
		case errors.Is(err, token.ErrInvalidSignature):
			return domainauth.Claim{}, apperrors.Unauthenticated("Authentication is required")
		}
		return domainauth.Claim{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "Authentication is required")
	}
	return claim, nil
}

// Profile returns the credential-free view of the authenticated user.
func (s *AuthService) Profile(ctx context.Context, claim domainauth.Claim) (*model.Profile, error) {
	profile, err := s.identities.ProfileByID(ctx, claim.UserID)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return profile, nil
}

// TokenTTL exposes the configured bearer lifetime for cookie attributes.
func (s *AuthService) TokenTTL() time.Duration { return s.tokenTTL }

func (s *AuthService) issue(claim domainauth.Claim) (*IssuedToken, error) {
	tok, err := s.codec.Issue(claim, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &IssuedToken{Token: tok, ExpiresAt: time.Now().Add(s.tokenTTL)}, nil
}
