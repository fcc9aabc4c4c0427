package httpx

import (
	"log/slog"
	"net/http"

	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/http/validation"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/service"
)

var (
	addConnectionPolicy = RoutePolicy{
		Validation:     true,
		Authentication: true,
		Schema: Schema{
			Body: []FieldRule{
				{Field: "connectedUserID", Validators: []validation.Validator{
					validation.Required("Connected User ID", 100),
				}},
			},
		},
	}

	listConnectionsPolicy = RoutePolicy{Authentication: true}
	listUsersPolicy       = RoutePolicy{Authentication: true}
)

// ConnectionHandlers provides HTTP handlers for user connections.
type ConnectionHandlers struct {
	Svc    *service.ConnectionService
	Logger *slog.Logger
}

func (h *ConnectionHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type addConnectionRequest struct {
	ConnectedUserID string `json:"connectedUserID"`
}

// AddConnection handles POST /api/connection/add-connection.
func (h *ConnectionHandlers) AddConnection(w http.ResponseWriter, r *http.Request) {
	claim, ok := GetClaimFromContext(r.Context())
	if !ok {
		WriteFailure(w, http.StatusUnauthorized, "Authentication is required", "")
		return
	}

	var req addConnectionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if _, err := h.Svc.AddConnection(r.Context(), claim.UserID, req.ConnectedUserID); err != nil {
		RenderServiceError(w, h.logger(), err)
		return
	}
	WriteSuccess(w, http.StatusOK, "Successfully added new connection", nil)
}

// ListConnections handles GET /api/connection/connections.
func (h *ConnectionHandlers) ListConnections(w http.ResponseWriter, r *http.Request) {
	claim, ok := GetClaimFromContext(r.Context())
	if !ok {
		WriteFailure(w, http.StatusUnauthorized, "Authentication is required", "")
		return
	}

	connections, err := h.Svc.ListConnections(r.Context(), claim.UserID)
	if err != nil {
		RenderServiceError(w, h.logger(), err)
		return
	}
	WriteSuccess(w, http.StatusOK, "Successfully retrieved connections", connections)
}

// ListUsers handles GET /api/connection/users.
func (h *ConnectionHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	claim, ok := GetClaimFromContext(r.Context())
	if !ok {
		WriteFailure(w, http.StatusUnauthorized, "Authentication is required", "")
		return
	}

	users, err := h.Svc.ListOtherUsers(r.Context(), claim.UserID)
	if err != nil {
		RenderServiceError(w, h.logger(), err)
		return
	}
	WriteSuccess(w, http.StatusOK, "Successfully retrieved users", users)
}
