package httpx

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/IRIS-LABS/social-wallat-app-back-end/internal/errors"
)

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Data    any    `json:"data,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

// genericFailureMessage is what clients see when a failure has no safe
// client-facing classification.
const genericFailureMessage = "Request can't be processed"

// WriteJSON writes a JSON response with the given status code and body.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// WriteSuccess writes a success envelope.
func WriteSuccess(w http.ResponseWriter, code int, message string, data any) {
	WriteJSON(w, code, Envelope{Status: statusSuccess, Message: message, Data: data})
}

// WriteFailure writes a failure envelope. Field is optional and names the
// offending input field for validation failures.
func WriteFailure(w http.ResponseWriter, code int, message, field string) {
	WriteJSON(w, code, Envelope{Status: statusError, Message: message, Field: field})
}

// DecodeJSON decodes the request body into dst and writes a failure response
// on malformed input. Returns false when the response has been written.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		WriteFailure(w, http.StatusBadRequest, "Request body must be valid JSON", "")
		return false
	}
	return true
}

// RenderServiceError maps an application error to its HTTP status and writes
// the failure envelope. Unclassified errors are logged and rendered as a
// generic 500 so internals never leak to clients.
func RenderServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	code := statusForError(err)
	message := apperrors.GetMessage(err)
	if code == http.StatusInternalServerError || message == "" {
		if logger != nil {
			logger.Error("request failed", slog.Any("error", err))
		}
		WriteFailure(w, http.StatusInternalServerError, genericFailureMessage, "")
		return
	}
	WriteFailure(w, code, message, apperrors.GetField(err))
}

func statusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeExpired:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
