package auth

// Package auth contains domain-level types for authentication.
// It is pure and free of framework/adapter concerns.

// Role represents an application's authorization role.
// Keep string form for easy persistence and token claims.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Claim is the authenticated subject carried by a bearer token or injected
// into the request context by an upstream authentication step.
type Claim struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role,omitempty"`

	// Incomplete marks a first-time third-party sign-in whose profile has
	// not been filled in yet.
	Incomplete bool `json:"incomplete,omitempty"`
}

// Valid reports whether the claim identifies a subject.
func (c Claim) Valid() bool { return c.UserID != "" }

// ProviderIdentity is the raw identity returned by a third-party OAuth
// provider after its own handshake. Adapters map provider-specific claims
// into this shape.
type ProviderIdentity struct {
	Provider       string
	ProviderUserID string
	Email          string
	EmailVerified  bool
	FirstName      string
	LastName       string
}
