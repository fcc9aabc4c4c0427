package model

import (
	"time"

	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
)

// UserAccount is the credential record attached to a User. Exactly one
// account exists per user; the email is unique across the system.
//
// For local accounts PasswordHash holds the bcrypt digest and the provider
// fields are empty. For third-party accounts ThirdParty is true, the provider
// fields identify the external identity, and no password is stored.
type UserAccount struct {
	UserID         string          `db:"user_id"`
	Email          string          `db:"email"`
	PasswordHash   string          `db:"password_hash"`
	ThirdParty     bool            `db:"third_party"`
	Provider       string          `db:"provider"`
	ProviderUserID string          `db:"provider_user_id"`
	Role           domainauth.Role `db:"role"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// Profile is the credential-free view of a user exposed to other users.
// It never carries password hashes or provider identifiers.
type Profile struct {
	UserID      string `json:"userID"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	JobTitle    string `json:"jobTitle,omitempty"`
	Email       string `json:"email"`
	ThirdParty  bool   `json:"thirdParty"`
}
