package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
	apperrors "github.com/IRIS-LABS/social-wallat-app-back-end/internal/errors"
	mocksauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/mocks/auth"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/token"
)

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec(token.Config{Secret: "0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	return codec
}

func newAuthFixture(t *testing.T) (*AuthService, *mocksauth.MemoryIdentityStore, *token.Codec) {
	t.Helper()
	identities := mocksauth.NewMemoryIdentityStore()
	codec := newTestCodec(t)
	svc := NewAuthService(AuthServiceOptions{
		Identities: identities,
		Hasher:     mocksauth.PlainHasher{},
		Codec:      codec,
		TokenTTL:   time.Hour,
	})
	return svc, identities, codec
}

func signUpAlice(t *testing.T, svc *AuthService) *IssuedToken {
	t.Helper()
	issued, err := svc.SignUp(context.Background(), SignUpInput{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Password:  "Abcd123!",
	})
	require.NoError(t, err)
	return issued
}

func TestAuthService_SignUp_IssuesCustomerToken(t *testing.T) {
	svc, _, codec := newAuthFixture(t)

	issued := signUpAlice(t, svc)
	require.NotEmpty(t, issued.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	claim, err := codec.Verify(issued.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, claim.UserID)
	assert.Equal(t, domainauth.RoleCustomer, claim.Role)
	assert.False(t, claim.Incomplete)
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	signUpAlice(t, svc)

	_, err := svc.SignUp(context.Background(), SignUpInput{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Password:  "Abcd123!",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "Email address is already registered", apperrors.GetMessage(err))
}

func TestAuthService_SignUp_DuplicateThirdPartyEmail(t *testing.T) {
	svc, identities, _ := newAuthFixture(t)

	_, err := identities.CreateThirdPartyUser(context.Background(), thirdPartyAliceParams())
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), SignUpInput{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Password:  "Abcd123!",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "You are already registered using the google authorization service", apperrors.GetMessage(err))
}

func TestAuthService_SignIn_Success(t *testing.T) {
	svc, _, codec := newAuthFixture(t)
	signUpAlice(t, svc)

	issued, err := svc.SignIn(context.Background(), SignInInput{
		Email:    "alice@example.com",
		Password: "Abcd123!",
	})
	require.NoError(t, err)

	claim, err := codec.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleCustomer, claim.Role)
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	signUpAlice(t, svc)

	_, err := svc.SignIn(context.Background(), SignInInput{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthenticated(err))
	assert.Equal(t, "Email or password is incorrect", apperrors.GetMessage(err))
}

func TestAuthService_SignIn_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.SignIn(context.Background(), SignInInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthenticated(err))
	// Unknown email and wrong password are indistinguishable to the client.
	assert.Equal(t, "Email or password is incorrect", apperrors.GetMessage(err))
}

func TestAuthService_SignIn_ThirdPartyAccount(t *testing.T) {
	svc, identities, _ := newAuthFixture(t)

	_, err := identities.CreateThirdPartyUser(context.Background(), thirdPartyAliceParams())
	require.NoError(t, err)

	_, err = svc.SignIn(context.Background(), SignInInput{
		Email:    "alice@example.com",
		Password: "Abcd123!",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t,
		"You registered using the google authorization service, Please use the google sign in to access the account",
		apperrors.GetMessage(err))
}

func TestAuthService_SignOutToken_IsExpired(t *testing.T) {
	svc, _, codec := newAuthFixture(t)

	tok, err := svc.SignOutToken(domainauth.Claim{UserID: "user-1", Role: domainauth.RoleCustomer})
	require.NoError(t, err)

	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, token.ErrExpired)
}

func TestAuthService_Verify(t *testing.T) {
	svc, _, codec := newAuthFixture(t)

	good, err := codec.Issue(domainauth.Claim{UserID: "user-1", Role: domainauth.RoleCustomer}, time.Hour)
	require.NoError(t, err)
	stale, err := codec.Issue(domainauth.Claim{UserID: "user-1"}, -time.Second)
	require.NoError(t, err)

	claim, err := svc.Verify(good)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claim.UserID)

	_, err = svc.Verify(stale)
	assert.True(t, apperrors.IsExpired(err))
	assert.Equal(t, "Your session has expired. Please sign in again", apperrors.GetMessage(err))

	_, err = svc.Verify("garbage")
	assert.True(t, apperrors.IsUnauthenticated(err))
	assert.Equal(t, "Authentication is required", apperrors.GetMessage(err))
}

func TestAuthService_Profile(t *testing.T) {
	svc, _, codec := newAuthFixture(t)
	issued := signUpAlice(t, svc)

	claim, err := codec.Verify(issued.Token)
	require.NoError(t, err)

	profile, err := svc.Profile(context.Background(), claim)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.FirstName)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.False(t, profile.ThirdParty)
}

func TestAuthService_Profile_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Profile(context.Background(), domainauth.Claim{UserID: "missing"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "User not found", apperrors.GetMessage(err))
}
