package httpx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/http/validation"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/service"
)

const oauthStateCookie = "oauth_state"

var verifyPolicy = RoutePolicy{
	Validation: true,
	Schema: Schema{
		Query: []FieldRule{
			{Field: "token", Validators: []validation.Validator{
				validation.Required("Token", 200),
			}},
		},
	},
}

// ThirdPartyHandlers provides HTTP handlers for the Google sign-in flow.
type ThirdPartyHandlers struct {
	Svc          *service.ThirdPartyService
	Auth         *AuthHandlers
	FrontendURL  string
	CookieDomain string
	Logger       *slog.Logger
}

func (h *ThirdPartyHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Start handles GET /api/auth/third-party/google. It parks a random state in
// a short-lived cookie and bounces the browser to the provider consent URL.
func (h *ThirdPartyHandlers) Start(w http.ResponseWriter, r *http.Request) {
	state, err := generateState()
	if err != nil {
		RenderServiceError(w, h.logger(), err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.Svc.AuthCodeURL(state), http.StatusFound)
}

// Callback handles GET /api/auth/third-party/google/callback. Known
// rejections redirect to the frontend error page with a fixed numeric code;
// success stashes the claim and redirects to the frontend verify page with
// the one-time key.
func (h *ThirdPartyHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || stateCookie.Value != state {
		WriteFailure(w, http.StatusBadRequest, "Invalid or missing state parameter", "")
		return
	}
	h.clearStateCookie(w, r)

	code := r.URL.Query().Get("code")
	if code == "" {
		WriteFailure(w, http.StatusBadRequest, "Authorization code is required", "")
		return
	}

	claim, err := h.Svc.Authenticate(r.Context(), code)
	if err != nil {
		var redirect *service.RedirectError
		if errors.As(err, &redirect) {
			http.Redirect(w, r, fmt.Sprintf("%s/error?code=%d", h.FrontendURL, redirect.Code), http.StatusFound)
			return
		}
		RenderServiceError(w, h.logger(), err)
		return
	}

	key, err := h.Svc.Stash(r.Context(), claim)
	if err != nil {
		RenderServiceError(w, h.logger(), err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s/google/verify/%s", h.FrontendURL, key), http.StatusFound)
}

// Verify handles GET /api/auth/third-party/verify?token=<key>. It redeems
// the one-time key for the session cookie. A missing, reused or lapsed key
// reports failure and sets no cookie.
func (h *ThirdPartyHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	issued, err := h.Svc.Complete(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		h.logger().Warn("third-party verify failed", slog.Any("error", err))
		WriteFailure(w, http.StatusBadRequest, "Third party authorization failed", "")
		return
	}

	h.Auth.setAccessTokenCookie(w, r, issued.Token, issued.ExpiresAt)
	WriteSuccess(w, http.StatusOK, "Third party authorization is completed", nil)
}

func (h *ThirdPartyHandlers) clearStateCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func generateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
