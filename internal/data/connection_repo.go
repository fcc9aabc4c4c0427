package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/data/pgxutil"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/model"
)

// ConnectionRepo provides database operations for user connections.
type ConnectionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewConnectionRepo creates a new ConnectionRepo with a real time provider.
func NewConnectionRepo(db *sql.DB) *ConnectionRepo {
	return &ConnectionRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// AddConnection inserts a new connection row. A duplicate pair aborts with
// ErrConnectionExists; an unknown connected user aborts with ErrUserNotFound.
func (r *ConnectionRepo) AddConnection(ctx context.Context, params model.CreateConnectionParams) (*model.Connection, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	conn := model.Connection{
		ID:              uuid.NewString(),
		UserID:          params.UserID,
		ConnectedUserID: params.ConnectedUserID,
		CreatedAt:       r.timeProvider.Now().UTC(),
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO connections (id, user_id, connected_user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, conn.ID, conn.UserID, conn.ConnectedUserID, conn.CreatedAt)
	if err != nil {
		return nil, mapConnectionWriteErr(err)
	}

	return &conn, nil
}

// ListConnections retrieves the connections owned by userID, each joined
// with the connected user's credential-free profile.
func (r *ConnectionRepo) ListConnections(ctx context.Context, userID string) ([]model.ConnectionProfile, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	var out []model.ConnectionProfile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			SELECT c.id, c.created_at,
			       u.user_id, u.first_name, u.last_name,
			       COALESCE(u.phone_number, ''), COALESCE(u.job_title, ''),
			       a.email, a.third_party
			FROM connections c
			JOIN users u ON u.user_id = c.connected_user_id
			JOIN user_accounts a ON a.user_id = u.user_id
			WHERE c.user_id = $1
			ORDER BY c.created_at DESC
		`, userID)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		for rows.Next() {
			var cp model.ConnectionProfile
			if scanErr := rows.Scan(
				&cp.ConnectionID, &cp.CreatedAt,
				&cp.User.UserID, &cp.User.FirstName, &cp.User.LastName,
				&cp.User.PhoneNumber, &cp.User.JobTitle,
				&cp.User.Email, &cp.User.ThirdParty,
			); scanErr != nil {
				return scanErr
			}
			out = append(out, cp)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return out, nil
}

// ListUsersExcept retrieves the credential-free profiles of every user other
// than userID.
func (r *ConnectionRepo) ListUsersExcept(ctx context.Context, userID string) ([]model.Profile, error) {
	var out []model.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			SELECT u.user_id, u.first_name, u.last_name,
			       COALESCE(u.phone_number, ''), COALESCE(u.job_title, ''),
			       a.email, a.third_party
			FROM users u
			JOIN user_accounts a ON a.user_id = u.user_id
			WHERE u.user_id <> $1
			ORDER BY u.created_at
		`, userID)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		for rows.Next() {
			var p model.Profile
			if scanErr := rows.Scan(
				&p.UserID, &p.FirstName, &p.LastName,
				&p.PhoneNumber, &p.JobTitle,
				&p.Email, &p.ThirdParty,
			); scanErr != nil {
				return scanErr
			}
			out = append(out, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func mapConnectionWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrConnectionExists
		case pgerrcode.ForeignKeyViolation:
			return ErrUserNotFound
		}
	}
	return err
}
