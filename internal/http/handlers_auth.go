package httpx

import (
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/http/validation"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/service"
)

var namePattern = regexp.MustCompile(`^[a-z A-Z]+$`)

// Route policies for the auth endpoints. Sign-up and sign-in are validated
// but anonymous; sign-out requires an authenticated claim.
var (
	signUpPolicy = RoutePolicy{
		Validation: true,
		Schema: Schema{
			Body: []FieldRule{
				{Field: "firstName", Validators: []validation.Validator{
					validation.Required("First name", 100),
					validation.Pattern("First name", "First name must contain english characters (a-z, A-Z) only", namePattern),
				}},
				{Field: "lastName", Validators: []validation.Validator{
					validation.Required("Last name", 100),
					validation.Pattern("Last name", "Last name must contain english characters (a-z, A-Z) only", namePattern),
				}},
				{Field: "email", Validators: []validation.Validator{
					validation.Email("Email address"),
				}},
				{Field: "password", Validators: []validation.Validator{
					validation.DefaultPasswordComplexity.Validate("Password"),
				}},
			},
		},
	}

	signInPolicy = RoutePolicy{
		Validation: true,
		Schema: Schema{
			Body: []FieldRule{
				{Field: "email", Validators: []validation.Validator{
					validation.Email("Email address"),
				}},
				{Field: "password", Validators: []validation.Validator{
					validation.Required("Password", 100),
				}},
			},
		},
	}

	signOutPolicy = RoutePolicy{Authentication: true}

	profilePolicy = RoutePolicy{Authentication: true}
)

// AuthHandlers provides HTTP handlers for local authentication.
type AuthHandlers struct {
	Svc          *service.AuthService
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type signUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// SignUp handles POST /api/auth/sign-up.
func (h *AuthHandlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	issued, err := h.Svc.SignUp(r.Context(), service.SignUpInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		RenderServiceError(w, h.logger(), err)
		return
	}

	h.setAccessTokenCookie(w, r, issued.Token, issued.ExpiresAt)
	WriteSuccess(w, http.StatusOK, "Successfully registered the new user", nil)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn handles POST /api/auth/sign-in.
func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	issued, err := h.Svc.SignIn(r.Context(), service.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		RenderServiceError(w, h.logger(), err)
		return
	}

	h.setAccessTokenCookie(w, r, issued.Token, issued.ExpiresAt)
	WriteSuccess(w, http.StatusOK, "User is successfully authenticated", nil)
}

// SignOut handles POST /api/auth/sign-out. There is no server-side session to
// revoke; the cookie is replaced with an already-expired token so the browser
// stops presenting the old one.
func (h *AuthHandlers) SignOut(w http.ResponseWriter, r *http.Request) {
	claim, ok := GetClaimFromContext(r.Context())
	if !ok {
		WriteFailure(w, http.StatusUnauthorized, "Authentication is required", "")
		return
	}

	expired, err := h.Svc.SignOutToken(claim)
	if err != nil {
		RenderServiceError(w, h.logger(), err)
		return
	}

	h.setAccessTokenCookie(w, r, expired, time.Now().Add(-time.Hour))
	WriteSuccess(w, http.StatusOK, "User is successfully signed out", nil)
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	claim, ok := GetClaimFromContext(r.Context())
	if !ok {
		WriteFailure(w, http.StatusUnauthorized, "Authentication is required", "")
		return
	}

	profile, err := h.Svc.Profile(r.Context(), claim)
	if err != nil {
		RenderServiceError(w, h.logger(), err)
		return
	}
	WriteSuccess(w, http.StatusOK, "Successfully retrieved profile", profile)
}

func (h *AuthHandlers) setAccessTokenCookie(w http.ResponseWriter, r *http.Request, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}
