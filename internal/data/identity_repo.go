package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/data/pgxutil"
	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/model"
)

// IdentityRepo provides database operations for users and their accounts.
type IdentityRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewIdentityRepo creates a new IdentityRepo with a real time provider.
func NewIdentityRepo(db *sql.DB) *IdentityRepo {
	return &IdentityRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewIdentityRepoWithTimeProvider creates a new IdentityRepo with a custom time provider (useful for tests).
func NewIdentityRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *IdentityRepo {
	return &IdentityRepo{DB: db, timeProvider: tp}
}

// CreateLocalUser inserts a user row and its local account row in one
// transaction. A duplicate email aborts with ErrEmailTaken or
// ErrEmailTakenThirdParty depending on how the email is already registered.
func (r *IdentityRepo) CreateLocalUser(ctx context.Context, params model.CreateLocalUserParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	userID := uuid.NewString()
	email := normalizeEmail(params.Email)
	now := r.timeProvider.Now().UTC()

	err := pgxutil.WithSQLTx(ctx, r.DB, func(tx *sql.Tx) error {
		if checkErr := checkEmailFree(ctx, tx, email); checkErr != nil {
			return checkErr
		}

		if _, execErr := tx.ExecContext(ctx, `
			INSERT INTO users (user_id, first_name, last_name, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
		`, userID, strings.TrimSpace(params.FirstName), strings.TrimSpace(params.LastName), now); execErr != nil {
			return fmt.Errorf("insert user: %w", execErr)
		}

		if _, execErr := tx.ExecContext(ctx, `
			INSERT INTO user_accounts (user_id, email, password_hash, third_party, role, created_at, updated_at)
			VALUES ($1, $2, $3, FALSE, $4, $5, $5)
		`, userID, email, params.PasswordHash, string(domainauth.RoleCustomer), now); execErr != nil {
			return fmt.Errorf("insert user account: %w", execErr)
		}

		return nil
	})
	if err != nil {
		return "", r.mapWriteErr(err)
	}

	return userID, nil
}

// CreateThirdPartyUser inserts a user row and its third-party account row in
// one transaction. No password is stored; the email must be free.
func (r *IdentityRepo) CreateThirdPartyUser(ctx context.Context, params model.CreateThirdPartyUserParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	userID := uuid.NewString()
	email := normalizeEmail(params.Email)
	now := r.timeProvider.Now().UTC()

	err := pgxutil.WithSQLTx(ctx, r.DB, func(tx *sql.Tx) error {
		if checkErr := checkEmailFree(ctx, tx, email); checkErr != nil {
			return checkErr
		}

		if _, execErr := tx.ExecContext(ctx, `
			INSERT INTO users (user_id, first_name, last_name, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
		`, userID, strings.TrimSpace(params.FirstName), strings.TrimSpace(params.LastName), now); execErr != nil {
			return fmt.Errorf("insert user: %w", execErr)
		}

		if _, execErr := tx.ExecContext(ctx, `
			INSERT INTO user_accounts (user_id, email, third_party, provider, provider_user_id, role, created_at, updated_at)
			VALUES ($1, $2, TRUE, $3, $4, $5, $6, $6)
		`, userID, email, params.Provider, params.ProviderUserID, string(domainauth.RoleCustomer), now); execErr != nil {
			return fmt.Errorf("insert user account: %w", execErr)
		}

		return nil
	})
	if err != nil {
		return "", r.mapWriteErr(err)
	}

	return userID, nil
}

// AccountByEmail retrieves the account registered under email, or
// ErrAccountNotFound.
func (r *IdentityRepo) AccountByEmail(ctx context.Context, email string) (*model.UserAccount, error) {
	var out model.UserAccount
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			SELECT user_id, email, COALESCE(password_hash, '') AS password_hash, third_party,
			       COALESCE(provider, '') AS provider, COALESCE(provider_user_id, '') AS provider_user_id,
			       role, created_at, updated_at
			FROM user_accounts
			WHERE email = $1
		`, normalizeEmail(email))
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		out, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.UserAccount])
		return collectErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return &out, nil
}

// UserByID retrieves a user by ID, or ErrUserNotFound.
func (r *IdentityRepo) UserByID(ctx context.Context, id string) (*model.User, error) {
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			SELECT user_id, first_name, last_name, COALESCE(phone_number, '') AS phone_number,
			       COALESCE(job_title, '') AS job_title, created_at, updated_at
			FROM users
			WHERE user_id = $1
		`, id)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		out, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return collectErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by ID: %w", err)
	}
	return &out, nil
}

// ProfileByID joins the user and account rows into a credential-free
// profile, or ErrUserNotFound.
func (r *IdentityRepo) ProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	var out model.Profile
	err := r.DB.QueryRowContext(ctx, `
		SELECT u.user_id, u.first_name, u.last_name,
		       COALESCE(u.phone_number, ''), COALESCE(u.job_title, ''),
		       a.email, a.third_party
		FROM users u
		JOIN user_accounts a ON a.user_id = u.user_id
		WHERE u.user_id = $1
	`, id).Scan(
		&out.UserID, &out.FirstName, &out.LastName,
		&out.PhoneNumber, &out.JobTitle,
		&out.Email, &out.ThirdParty,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile by ID: %w", err)
	}
	return &out, nil
}

// checkEmailFree aborts with the appropriate taken-sentinel when the email
// is already registered.
func checkEmailFree(ctx context.Context, tx *sql.Tx, email string) error {
	var thirdParty bool
	err := tx.QueryRowContext(ctx,
		`SELECT third_party FROM user_accounts WHERE email = $1`, email,
	).Scan(&thirdParty)
	switch {
	case err == nil:
		if thirdParty {
			return ErrEmailTakenThirdParty
		}
		return ErrEmailTaken
	case errors.Is(err, sql.ErrNoRows):
		return nil
	default:
		return fmt.Errorf("check email: %w", err)
	}
}

// mapWriteErr translates constraint violations into sentinel errors. The
// unique index on email is the backstop for concurrent sign-ups that pass
// the in-transaction existence check.
func (r *IdentityRepo) mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmailTaken
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
