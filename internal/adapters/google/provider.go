// Package google provides the Google OIDC adapter behind the OAuthProvider port.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
	apperrors "github.com/IRIS-LABS/social-wallat-app-back-end/internal/errors"
)

const issuer = "https://accounts.google.com"

// ProviderConfig holds configuration for the Google provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Issuer       string       // Optional, defaults to the Google issuer.
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client.
}

// Provider implements the OAuthProvider port against Google's OIDC endpoints.
type Provider struct {
	config   *oauth2.Config
	verifier *gooidc.IDTokenVerifier
}

// NewProvider creates a Google provider. It performs a single discovery fetch
// against the issuer.
func NewProvider(ctx context.Context, config ProviderConfig) (*Provider, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if config.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	iss := config.Issuer
	if iss == "" {
		iss = issuer
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	op, err := gooidc.NewProvider(ctx, iss)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURL,
			Scopes:       []string{gooidc.ScopeOpenID, "profile", "email"},
			Endpoint:     op.Endpoint(),
		},
		verifier: op.Verifier(&gooidc.Config{ClientID: config.ClientID}),
	}, nil
}

// Name returns the provider identifier recorded against third-party accounts.
func (p *Provider) Name() string { return "google" }

// AuthCodeURL builds the consent-screen URL carrying the given state.
func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
}

// Exchange swaps the authorization code for tokens, verifies the returned
// id_token and maps its claims to a ProviderIdentity.
func (p *Provider) Exchange(ctx context.Context, code string) (domainauth.ProviderIdentity, error) {
	if code == "" {
		return domainauth.ProviderIdentity{}, apperrors.Validation("authorization code is required")
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return domainauth.ProviderIdentity{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "google token exchange failed")
	}

	rawID, ok := token.Extra("id_token").(string)
	if !ok || rawID == "" {
		return domainauth.ProviderIdentity{}, apperrors.Wrap(errors.New("token response missing id_token"), apperrors.ErrCodeUpstream, "google token exchange failed")
	}

	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return domainauth.ProviderIdentity{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "google token verification failed")
	}

	var claims struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		GivenName     string `json:"given_name"`
		FamilyName    string `json:"family_name"`
	}
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return domainauth.ProviderIdentity{}, apperrors.Wrap(claimsErr, apperrors.ErrCodeUpstream, "google token verification failed")
	}
	if claims.Sub == "" {
		return domainauth.ProviderIdentity{}, apperrors.Wrap(errors.New("id_token missing subject"), apperrors.ErrCodeUpstream, "google token verification failed")
	}

	return domainauth.ProviderIdentity{
		Provider:       p.Name(),
		ProviderUserID: claims.Sub,
		Email:          claims.Email,
		EmailVerified:  claims.EmailVerified,
		FirstName:      claims.GivenName,
		LastName:       claims.FamilyName,
	}, nil
}
