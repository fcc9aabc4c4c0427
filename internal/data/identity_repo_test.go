package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/model"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/testutil"
)

func localAliceParams() model.CreateLocalUserParams {
	return model.CreateLocalUserParams{
		FirstName:    "Alice",
		LastName:     "Smith",
		Email:        "alice@example.com",
		PasswordHash: "bcrypt-digest",
	}
}

func googleAliceParams() model.CreateThirdPartyUserParams {
	return model.CreateThirdPartyUserParams{
		FirstName:      "Alice",
		LastName:       "Smith",
		Email:          "alice@example.com",
		Provider:       "google",
		ProviderUserID: "google-user-1",
	}
}

func TestIdentityRepo_CreateLocalUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewIdentityRepo(db)
	ctx := context.Background()

	userID, err := repo.CreateLocalUser(ctx, localAliceParams())
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	account, err := repo.AccountByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, account.UserID)
	assert.Equal(t, "bcrypt-digest", account.PasswordHash)
	assert.False(t, account.ThirdParty)
	assert.Equal(t, domainauth.RoleCustomer, account.Role)

	user, err := repo.UserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.FirstName)
	assert.Equal(t, "Smith", user.LastName)
}

func TestIdentityRepo_CreateLocalUser_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewIdentityRepo(db)
	ctx := context.Background()

	_, err := repo.CreateLocalUser(ctx, localAliceParams())
	require.NoError(t, err)

	_, err = repo.CreateLocalUser(ctx, localAliceParams())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestIdentityRepo_CreateLocalUser_EmailCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewIdentityRepo(db)
	ctx := context.Background()

	_, err := repo.CreateLocalUser(ctx, localAliceParams())
	require.NoError(t, err)

	upper := localAliceParams()
	upper.Email = "ALICE@example.com"
	_, err = repo.CreateLocalUser(ctx, upper)
	assert.ErrorIs(t, err, ErrEmailTaken)

	account, err := repo.AccountByEmail(ctx, "Alice@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", account.Email)
}

func TestIdentityRepo_CreateLocalUser_EmailTakenByThirdParty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewIdentityRepo(db)
	ctx := context.Background()

	_, err := repo.CreateThirdPartyUser(ctx, googleAliceParams())
	require.NoError(t, err)

	_, err = repo.CreateLocalUser(ctx, localAliceParams())
	assert.ErrorIs(t, err, ErrEmailTakenThirdParty)
}

func TestIdentityRepo_CreateThirdPartyUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewIdentityRepo(db)
	ctx := context.Background()

	userID, err := repo.CreateThirdPartyUser(ctx, googleAliceParams())
	require.NoError(t, err)

	account, err := repo.AccountByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, account.UserID)
	assert.True(t, account.ThirdParty)
	assert.Equal(t, "google", account.Provider)
	assert.Equal(t, "google-user-1", account.ProviderUserID)
	assert.Empty(t, account.PasswordHash)
}

func TestIdentityRepo_AccountByEmail_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewIdentityRepo(db)

	_, err := repo.AccountByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestIdentityRepo_UserByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewIdentityRepo(db)

	_, err := repo.UserByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIdentityRepo_ProfileByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewIdentityRepo(db)
	ctx := context.Background()

	userID, err := repo.CreateLocalUser(ctx, localAliceParams())
	require.NoError(t, err)

	profile, err := repo.ProfileByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, "Alice", profile.FirstName)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.False(t, profile.ThirdParty)
}

func TestIdentityRepo_ProfileByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	repo := NewIdentityRepo(db)

	_, err := repo.ProfileByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
