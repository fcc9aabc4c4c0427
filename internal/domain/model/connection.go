package model

import (
	"strings"
	"time"

	apperrors "github.com/IRIS-LABS/social-wallat-app-back-end/internal/errors"
)

// Connection links one user to another. Connections are directional; the
// owning user is UserID.
type Connection struct {
	ID              string    `json:"connectionID"    db:"id"`
	UserID          string    `json:"userID"          db:"user_id"`
	ConnectedUserID string    `json:"connectedUserID" db:"connected_user_id"`
	CreatedAt       time.Time `json:"createdAt"       db:"created_at"`
}

// ConnectionProfile is a connection joined with the connected user's
// credential-free profile, as returned by the list endpoint.
type ConnectionProfile struct {
	ConnectionID string    `json:"connectionID"`
	CreatedAt    time.Time `json:"createdAt"`
	User         Profile   `json:"user"`
}

// CreateConnectionParams carries the fields needed to add a connection.
type CreateConnectionParams struct {
	UserID          string
	ConnectedUserID string
}

// Validate checks structural requirements before the row is written.
func (p *CreateConnectionParams) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return apperrors.ValidationField("userID", "User ID is required")
	}
	if strings.TrimSpace(p.ConnectedUserID) == "" {
		return apperrors.ValidationField("connectedUserID", "Connected User ID is required")
	}
	if p.UserID == p.ConnectedUserID {
		return apperrors.ValidationField("connectedUserID", "Can not add connection to same user")
	}
	return nil
}
