package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/model"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/testutil"
)

func seedUser(t *testing.T, db *sql.DB, first, email string) string {
	t.Helper()
	repo := NewIdentityRepo(db)
	id, err := repo.CreateLocalUser(context.Background(), model.CreateLocalUserParams{
		FirstName:    first,
		LastName:     "Smith",
		Email:        email,
		PasswordHash: "bcrypt-digest",
	})
	require.NoError(t, err)
	return id
}

func TestConnectionRepo_AddConnection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewConnectionRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	conn, err := repo.AddConnection(ctx, model.CreateConnectionParams{
		UserID:          alice,
		ConnectedUserID: bob,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, conn.ID)
	assert.Equal(t, alice, conn.UserID)
	assert.Equal(t, bob, conn.ConnectedUserID)
	assert.False(t, conn.CreatedAt.IsZero())
}

func TestConnectionRepo_AddConnection_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewConnectionRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	params := model.CreateConnectionParams{UserID: alice, ConnectedUserID: bob}
	_, err := repo.AddConnection(ctx, params)
	require.NoError(t, err)

	_, err = repo.AddConnection(ctx, params)
	assert.ErrorIs(t, err, ErrConnectionExists)
}

func TestConnectionRepo_AddConnection_ReverseDirectionAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewConnectionRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	_, err := repo.AddConnection(ctx, model.CreateConnectionParams{UserID: alice, ConnectedUserID: bob})
	require.NoError(t, err)

	// Connections are directional; bob may also connect to alice.
	_, err = repo.AddConnection(ctx, model.CreateConnectionParams{UserID: bob, ConnectedUserID: alice})
	assert.NoError(t, err)
}

func TestConnectionRepo_AddConnection_UnknownUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewConnectionRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "alice@example.com")

	_, err := repo.AddConnection(ctx, model.CreateConnectionParams{
		UserID:          alice,
		ConnectedUserID: "00000000-0000-0000-0000-000000000000",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestConnectionRepo_ListConnections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewConnectionRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")
	carol := seedUser(t, db, "Carol", "carol@example.com")

	_, err := repo.AddConnection(ctx, model.CreateConnectionParams{UserID: alice, ConnectedUserID: bob})
	require.NoError(t, err)
	_, err = repo.AddConnection(ctx, model.CreateConnectionParams{UserID: alice, ConnectedUserID: carol})
	require.NoError(t, err)
	_, err = repo.AddConnection(ctx, model.CreateConnectionParams{UserID: bob, ConnectedUserID: carol})
	require.NoError(t, err)

	conns, err := repo.ListConnections(ctx, alice)
	require.NoError(t, err)
	require.Len(t, conns, 2)

	emails := []string{conns[0].User.Email, conns[1].User.Email}
	assert.ElementsMatch(t, []string{"bob@example.com", "carol@example.com"}, emails)
	for _, c := range conns {
		assert.NotEmpty(t, c.ConnectionID)
		assert.NotEmpty(t, c.User.FirstName)
	}
}

func TestConnectionRepo_ListConnections_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewConnectionRepo(db)

	alice := seedUser(t, db, "Alice", "alice@example.com")

	conns, err := repo.ListConnections(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, conns)
}

func TestConnectionRepo_ListUsersExcept(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewConnectionRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "alice@example.com")
	seedUser(t, db, "Bob", "bob@example.com")
	seedUser(t, db, "Carol", "carol@example.com")

	users, err := repo.ListUsersExcept(ctx, alice)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, alice, u.UserID)
		assert.NotEmpty(t, u.Email)
	}
}
