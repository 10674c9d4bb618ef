package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/otiai10/rolegate/internal/audit"
)

const bearerPrefix = "Bearer "

// Gate returns middleware that runs the two-stage check: token
// verification followed by the role check. Requires Authorization
// header: Bearer <token>. On success the verified Identity is added to
// the request context and the next handler runs exactly once; on any
// failure the request is terminated with a classified JSON rejection
// and the next handler is never invoked.
//
// The gate holds no per-request state and is safe for concurrent use.
func Gate(verifier TokenVerifier, authorizer *RoleAuthorizer, roles ...string) func(http.Handler) http.Handler {
	return GateWithRecorder(verifier, authorizer, nil, roles...)
}

// GateWithRecorder is Gate with an optional audit recorder. Every
// terminal decision is recorded; recording never alters the decision.
func GateWithRecorder(verifier TokenVerifier, authorizer *RoleAuthorizer, recorder audit.Recorder, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, rej := check(r, verifier, authorizer, roles)
			if rej != nil {
				subject := ""
				if identity != nil {
					subject = identity.UID
				}
				writeRejection(w, r, recorder, subject, rej)
				return
			}

			record(recorder, r, identity.UID, true, "", "")

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// check runs both stages. A fault that escapes either stage is caught
// here and classified as UNKNOWN, so a partially-completed check can
// never resolve to an allow.
func check(r *http.Request, verifier TokenVerifier, authorizer *RoleAuthorizer, roles []string) (identity *Identity, rej *Rejection) {
	defer func() {
		if v := recover(); v != nil {
			identity, rej = nil, reject(CodeUnknown, "unexpected gate failure: %v", v)
		}
	}()

	// Stage 1: local header check, then provider verification.
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, reject(CodeNoToken, "authorization header with Bearer token required")
	}

	token := authHeader[len(bearerPrefix):]
	identity, err := verifier.VerifyIDToken(r.Context(), token)
	if err != nil {
		// All provider failures collapse into one classification.
		return nil, reject(CodeInvalidToken, "%v", err)
	}

	// Stage 2: role check against the user store.
	if rej := authorizer.Authorize(r.Context(), identity.UID, roles); rej != nil {
		return identity, rej
	}

	return identity, nil
}

// rejectionBody is the response envelope for a denied request
type rejectionBody struct {
	Message string        `json:"message"`
	Data    rejectionData `json:"data"`
}

type rejectionData struct {
	Error   Code   `json:"error"`
	Message string `json:"message"`
}

// writeRejection writes the terminal rejection response and records the decision
func writeRejection(w http.ResponseWriter, r *http.Request, recorder audit.Recorder, subject string, rej *Rejection) {
	record(recorder, r, subject, false, string(rej.Code), rej.Message)

	status := rej.Status()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(rejectionBody{
		Message: statusMessage(status),
		Data: rejectionData{
			Error:   rej.Code,
			Message: rej.Message,
		},
	})
}

// statusMessage returns the human-readable top-level message for a status
func statusMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Authentication required"
	case http.StatusForbidden:
		return "Forbidden"
	default:
		return "Internal server error"
	}
}

func record(recorder audit.Recorder, r *http.Request, subject string, allowed bool, code, message string) {
	if recorder == nil {
		return
	}
	recorder.Record(r.Context(), audit.Entry{
		Time:    time.Now().UTC(),
		Subject: subject,
		Method:  r.Method,
		Path:    r.URL.Path,
		Allowed: allowed,
		Code:    code,
		Message: message,
	})
}
