package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Identity repository sentinels.
	ErrAccountNotFound = errors.New("user account not found")
	ErrUserNotFound    = errors.New("user not found")
	// ErrEmailTaken signals the email already belongs to a local account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrEmailTakenThirdParty signals the email already belongs to a
	// third-party account.
	ErrEmailTakenThirdParty = errors.New("email already registered via third-party provider")
	// ErrProviderMismatch signals a third-party account exists for the email
	// but under a different provider subject.
	ErrProviderMismatch = errors.New("provider user ID does not match existing account")

	// Connection repository sentinels.
	ErrConnectionExists = errors.New("connection already exists")
)
