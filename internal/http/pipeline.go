package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"

	domainauth "github.com/IRIS-LABS/social-wallat-app-back-end/internal/domain/auth"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/http/validation"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/ports"
	"github.com/IRIS-LABS/social-wallat-app-back-end/internal/token"
)

// AccessTokenCookie is the cookie carrying the bearer JWT.
const AccessTokenCookie = "accessToken"

// maxBodyBytes caps how much request body the pipeline will buffer.
const maxBodyBytes = 1 << 20

// FieldRule binds a named request field to the validators that must accept it.
type FieldRule struct {
	Field      string
	Validators []validation.Validator
}

// Schema declares which request sections a route validates. Absent sections
// are not inspected.
type Schema struct {
	Body   []FieldRule
	Query  []FieldRule
	Params []FieldRule
}

// RoutePolicy declares the security requirements of a route. Disabled layers
// are skipped entirely; enabled layers run in a fixed order ahead of the
// handler: validation, then authentication, then authorization.
type RoutePolicy struct {
	Validation     bool
	Authentication bool
	Authorization  bool
	AllowedRoles   []domainauth.Role
	Schema         Schema
}

// Pipeline evaluates RoutePolicy declarations around handlers.
type Pipeline struct {
	Codec  ports.TokenCodec
	Logger *slog.Logger
}

// NewPipeline constructs a Pipeline.
func NewPipeline(codec ports.TokenCodec, logger *slog.Logger) *Pipeline {
	return &Pipeline{Codec: codec, Logger: logger}
}

// Secure wraps handler with the policy's layers. A failing layer writes its
// own response and the handler never runs.
func (p *Pipeline) Secure(policy RoutePolicy, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if policy.Validation {
			if !p.validate(w, r, policy.Schema) {
				return
			}
		}

		if policy.Authentication || policy.Authorization {
			claim, ok := p.authenticate(w, r)
			if !ok {
				return
			}
			if policy.Authorization && !slices.Contains(policy.AllowedRoles, claim.Role) {
				WriteFailure(w, http.StatusForbidden, "You do not have permission to perform this action", "")
				return
			}
			r = r.WithContext(SetClaimInContext(r.Context(), claim))
		}

		handler.ServeHTTP(w, r)
	})
}

// validate runs the schema against the request. The body is buffered and
// restored so the handler can decode it again. The first failing field wins.
func (p *Pipeline) validate(w http.ResponseWriter, r *http.Request, schema Schema) bool {
	if len(schema.Body) > 0 {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			WriteFailure(w, http.StatusBadRequest, "Request body could not be read", "")
			return false
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var fields map[string]any
		if len(body) > 0 {
			if unmarshalErr := json.Unmarshal(body, &fields); unmarshalErr != nil {
				WriteFailure(w, http.StatusBadRequest, "Request body must be valid JSON", "")
				return false
			}
		}
		if !p.checkRules(w, schema.Body, func(name string) string {
			return stringField(fields, name)
		}) {
			return false
		}
	}

	if len(schema.Query) > 0 {
		query := r.URL.Query()
		if !p.checkRules(w, schema.Query, query.Get) {
			return false
		}
	}

	if len(schema.Params) > 0 {
		if !p.checkRules(w, schema.Params, r.PathValue) {
			return false
		}
	}

	return true
}

func (p *Pipeline) checkRules(w http.ResponseWriter, rules []FieldRule, lookup func(string) string) bool {
	for _, rule := range rules {
		value := lookup(rule.Field)
		for _, validate := range rule.Validators {
			if msg := validate(value); msg != "" {
				WriteFailure(w, http.StatusBadRequest, msg, rule.Field)
				return false
			}
		}
	}
	return true
}

// authenticate verifies the bearer cookie and returns the embedded claim.
func (p *Pipeline) authenticate(w http.ResponseWriter, r *http.Request) (domainauth.Claim, bool) {
	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		WriteFailure(w, http.StatusUnauthorized, "Authentication is required", "")
		return domainauth.Claim{}, false
	}

	claim, err := p.Codec.Verify(cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			WriteFailure(w, http.StatusUnauthorized, "Your session has expired. Please sign in again", "")
		case errors.Is(err, token.ErrInvalidSignature):
			WriteFailure(w, http.StatusUnauthorized, "Authentication is required", "")
		default:
			if p.Logger != nil {
				p.Logger.Error("token verification failed", slog.Any("error", err))
			}
			WriteFailure(w, http.StatusUnauthorized, "Authentication is required", "")
		}
		return domainauth.Claim{}, false
	}
	return claim, true
}

// stringField pulls a named body field as a string. Scalars that arrived as
// JSON numbers or booleans are rendered so validators see their text form;
// missing or composite values validate as empty.
func stringField(fields map[string]any, name string) string {
	v, ok := fields[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64, bool:
		return fmt.Sprint(t)
	default:
		return ""
	}
}
