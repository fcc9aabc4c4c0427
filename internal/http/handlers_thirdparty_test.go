package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThirdParty_Start(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/third-party/google", nil)
	w := f.do(req)

	assert.Equal(t, http.StatusFound, w.Code)

	state := findCookie(w, oauthStateCookie)
	require.NotNil(t, state)
	assert.NotEmpty(t, state.Value)
	assert.True(t, state.HttpOnly)

	location := w.Header().Get("Location")
	assert.Contains(t, location, "https://mock-idp/auth")
	assert.Contains(t, location, "state="+state.Value)
}

// callback drives the provider callback with a matching state cookie.
func (f *routerFixture) callback(t *testing.T, code string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet,
		"/api/auth/third-party/google/callback?state=test-state&code="+url.QueryEscape(code), nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "test-state"})
	return f.do(req)
}

func TestThirdParty_Callback_FirstTimeRedirectsToVerify(t *testing.T) {
	f := newRouterFixture(t)

	w := f.callback(t, "auth-code")

	assert.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "http://front.example.com/google/verify/"), location)

	key := strings.TrimPrefix(location, "http://front.example.com/google/verify/")
	assert.NotEmpty(t, key)
	assert.Equal(t, 1, f.handoffs.Len())

	// The state cookie is cleared on the way out.
	cleared := findCookie(w, oauthStateCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestThirdParty_Callback_MissingState(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/auth/third-party/google/callback?code=auth-code", nil)
	w := f.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or missing state parameter", decodeEnvelope(t, w).Message)
}

func TestThirdParty_Callback_StateMismatch(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/auth/third-party/google/callback?state=attacker&code=auth-code", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "test-state"})
	w := f.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestThirdParty_Callback_MissingCode(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/auth/third-party/google/callback?state=test-state", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "test-state"})
	w := f.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Authorization code is required", decodeEnvelope(t, w).Message)
}

func TestThirdParty_Callback_UnverifiedEmail(t *testing.T) {
	f := newRouterFixture(t)
	f.provider.Identity.EmailVerified = false

	w := f.callback(t, "auth-code")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://front.example.com/error?code=2112262", w.Header().Get("Location"))
}

func TestThirdParty_Callback_LocalAccountSameEmail(t *testing.T) {
	f := newRouterFixture(t)
	f.signUp(t, "mock.user@example.com")

	w := f.callback(t, "auth-code")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://front.example.com/error?code=2112263", w.Header().Get("Location"))
}

func TestThirdParty_Verify_Success(t *testing.T) {
	f := newRouterFixture(t)

	w := f.callback(t, "auth-code")
	key := strings.TrimPrefix(w.Header().Get("Location"), "http://front.example.com/google/verify/")
	require.NotEmpty(t, key)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/third-party/verify?token="+key, nil)
	w = f.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "Third party authorization is completed", env.Message)

	cookie := findCookie(w, AccessTokenCookie)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	// The cookie works against an authenticated route.
	req = httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.AddCookie(cookie)
	w = f.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestThirdParty_Verify_KeyIsSingleUse(t *testing.T) {
	f := newRouterFixture(t)

	w := f.callback(t, "auth-code")
	key := strings.TrimPrefix(w.Header().Get("Location"), "http://front.example.com/google/verify/")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/third-party/verify?token="+key, nil)
	w = f.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/third-party/verify?token="+key, nil)
	w = f.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Third party authorization failed", decodeEnvelope(t, w).Message)
	assert.Nil(t, findCookie(w, AccessTokenCookie))
}

func TestThirdParty_Verify_MissingToken(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/third-party/verify", nil)
	w := f.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Token is required", env.Message)
	assert.Equal(t, "token", env.Field)
}

func TestThirdParty_Verify_UnknownToken(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/third-party/verify?token=never-issued", nil)
	w := f.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Third party authorization failed", decodeEnvelope(t, w).Message)
}

func TestThirdParty_RoutesAbsentWhenDisabled(t *testing.T) {
	handler := NewRouter(RouterServices{
		Pipeline: NewPipeline(nil, nil),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/third-party/google", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestThirdParty_ReturningUserKeepsSameIdentity(t *testing.T) {
	f := newRouterFixture(t)
	ctx := context.Background()

	w := f.callback(t, "auth-code")
	require.Equal(t, http.StatusFound, w.Code)

	account, err := f.identities.AccountByEmail(ctx, "mock.user@example.com")
	require.NoError(t, err)

	w = f.callback(t, "auth-code")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/google/verify/")

	again, err := f.identities.AccountByEmail(ctx, "mock.user@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.UserID, again.UserID)
}
