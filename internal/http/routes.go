package httpx

import (
	"log/slog"
	"net/http"

	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth         *service.AuthService
	ThirdParty   *service.ThirdPartyService // Optional; Google routes are skipped when nil.
	Connections  *service.ConnectionService
	Pipeline     *Pipeline
	FrontendURL  string
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter wires every route through its declared policy.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()
	pipe := services.Pipeline

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	connectionHandlers := &ConnectionHandlers{Svc: services.Connections, Logger: services.Logger}

	mux.Handle("POST /api/auth/sign-up", pipe.Secure(signUpPolicy, http.HandlerFunc(authHandlers.SignUp)))
	mux.Handle("POST /api/auth/sign-in", pipe.Secure(signInPolicy, http.HandlerFunc(authHandlers.SignIn)))
	mux.Handle("POST /api/auth/sign-out", pipe.Secure(signOutPolicy, http.HandlerFunc(authHandlers.SignOut)))
	mux.Handle("GET /api/auth/profile", pipe.Secure(profilePolicy, http.HandlerFunc(authHandlers.Profile)))

	if services.ThirdParty != nil {
		thirdPartyHandlers := &ThirdPartyHandlers{
			Svc:          services.ThirdParty,
			Auth:         authHandlers,
			FrontendURL:  services.FrontendURL,
			CookieDomain: services.CookieDomain,
			Logger:       services.Logger,
		}
		mux.Handle("GET /api/auth/third-party/google",
			pipe.Secure(RoutePolicy{}, http.HandlerFunc(thirdPartyHandlers.Start)))
		mux.Handle("GET /api/auth/third-party/google/callback",
			pipe.Secure(RoutePolicy{}, http.HandlerFunc(thirdPartyHandlers.Callback)))
		mux.Handle("GET /api/auth/third-party/verify",
			pipe.Secure(verifyPolicy, http.HandlerFunc(thirdPartyHandlers.Verify)))
	}

	mux.Handle("POST /api/connection/add-connection",
		pipe.Secure(addConnectionPolicy, http.HandlerFunc(connectionHandlers.AddConnection)))
	mux.Handle("GET /api/connection/connections",
		pipe.Secure(listConnectionsPolicy, http.HandlerFunc(connectionHandlers.ListConnections)))
	mux.Handle("GET /api/connection/users",
		pipe.Secure(listUsersPolicy, http.HandlerFunc(connectionHandlers.ListUsers)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}
