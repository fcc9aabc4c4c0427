package model

import (
	"regexp"
	"strings"
	"time"

	apperrors "github.com/IRIS-LABS/social-wallat-app-back-end/internal/errors"
)

// User holds the profile data for a registered person. Credentials live on
// the associated UserAccount.
type User struct {
	ID          string    `json:"userID"      db:"user_id"`
	FirstName   string    `json:"firstName"   db:"first_name"`
	LastName    string    `json:"lastName"    db:"last_name"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number"`
	JobTitle    string    `json:"jobTitle"    db:"job_title"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// namePattern matches the English-letters-and-spaces rule enforced on
// sign-up names.
var namePattern = regexp.MustCompile(`^[a-z A-Z]+$`)

// CreateLocalUserParams carries the fields needed to register a local
// (password-based) user together with its account row.
type CreateLocalUserParams struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

// Validate checks structural requirements before the row is written.
// Request-level validation happens earlier in the HTTP pipeline; this is the
// storage-facing guard.
func (p *CreateLocalUserParams) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" || !namePattern.MatchString(p.FirstName) {
		return apperrors.ValidationField("firstName", "First name must contain english characters (a-z, A-Z) only")
	}
	if strings.TrimSpace(p.LastName) == "" || !namePattern.MatchString(p.LastName) {
		return apperrors.ValidationField("lastName", "Last name must contain english characters (a-z, A-Z) only")
	}
	if strings.TrimSpace(p.Email) == "" {
		return apperrors.ValidationField("email", "Email address is required")
	}
	if p.PasswordHash == "" {
		return apperrors.ValidationField("password", "Password hash is required")
	}
	return nil
}

// CreateThirdPartyUserParams carries the fields needed to register a user
// whose identity is vouched for by an OAuth provider. No password is stored;
// profile fields beyond the name arrive later.
type CreateThirdPartyUserParams struct {
	FirstName      string
	LastName       string
	Email          string
	Provider       string
	ProviderUserID string
}

// Validate checks structural requirements before the row is written.
func (p *CreateThirdPartyUserParams) Validate() error {
	if strings.TrimSpace(p.Email) == "" {
		return apperrors.ValidationField("email", "Email address is required")
	}
	if strings.TrimSpace(p.Provider) == "" {
		return apperrors.ValidationField("provider", "Provider is required")
	}
	if strings.TrimSpace(p.ProviderUserID) == "" {
		return apperrors.ValidationField("providerUserID", "Provider user ID is required")
	}
	return nil
}
