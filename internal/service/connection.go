package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/data"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/model"
	apperrors "github.com/IRIS-LABS/social-wallat-app-back-end/internal/errors"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/ports"
)

// ConnectionServiceOptions groups dependencies for ConnectionService.
type ConnectionServiceOptions struct {
	Connections ports.ConnectionStore
}

// ConnectionService manages a user's connections to other users.
type ConnectionService struct {
	connections ports.ConnectionStore
}

// NewConnectionService constructs a new ConnectionService.
func NewConnectionService(opts ConnectionServiceOptions) *ConnectionService {
	return &ConnectionService{connections: opts.Connections}
}

// AddConnection links the authenticated user to another user.
func (s *ConnectionService) AddConnection(ctx context.Context, userID, connectedUserID string) (*model.Connection, error) {
	conn, err := s.connections.AddConnection(ctx, model.CreateConnectionParams{
		UserID:          userID,
		ConnectedUserID: connectedUserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, data.ErrConnectionExists):
			return nil, apperrors.Conflict("Connection already exists")
		case errors.Is(err, data.ErrUserNotFound):
			return nil, apperrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("add connection: %w", err)
	}
	return conn, nil
}

// ListConnections returns the authenticated user's connections with the
// connected users' profiles.
func (s *ConnectionService) ListConnections(ctx context.Context, userID string) ([]model.ConnectionProfile, error) {
	out, err := s.connections.ListConnections(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return out, nil
}

// ListOtherUsers returns every user except the authenticated one, as
// candidates for new connections.
func (s *ConnectionService) ListOtherUsers(ctx context.Context, userID string) ([]model.Profile, error) {
	out, err := s.connections.ListUsersExcept(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}
