package api

import (
	"fmt"
	"net/http"

	"github.com/otiai10/rolegate/internal/audit"
	"github.com/otiai10/rolegate/internal/auth"
	"github.com/otiai10/rolegate/internal/user"
	"github.com/otiai10/rolegate/internal/version"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	UserRepo      user.Repository
	TokenVerifier auth.TokenVerifier
	AuditLog      *audit.Log // nil disables decision recording and audit routes
	AllowedRoles  []string   // role set for the protected API routes
}

// NewRouter creates the HTTP router. Public routes bypass the gate;
// everything under /api is gated. The audit routes run with an
// admin-only role set regardless of the configured AllowedRoles.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	registerPublicRoutes(mux)

	authorizer := auth.NewRoleAuthorizer(cfg.UserRepo)

	var recorder audit.Recorder
	if cfg.AuditLog != nil {
		recorder = cfg.AuditLog
	}

	meHandler := NewMeHandler(cfg.UserRepo)
	meMux := http.NewServeMux()
	meMux.HandleFunc("/api/me", requireGet(meHandler.GetProfile))

	gate := auth.GateWithRecorder(cfg.TokenVerifier, authorizer, recorder, cfg.AllowedRoles...)
	mux.Handle("/api/me", gate(meMux))

	if cfg.AuditLog != nil {
		auditHandler := NewAuditHandler(cfg.AuditLog)
		auditMux := http.NewServeMux()
		auditMux.HandleFunc("/api/audit/recent", requireGet(auditHandler.Recent))
		auditMux.HandleFunc("/api/audit/stream", requireGet(auditHandler.Stream))

		adminGate := auth.GateWithRecorder(cfg.TokenVerifier, authorizer, recorder, user.RoleAdmin)
		mux.Handle("/api/audit/", adminGate(auditMux))
	}

	return Chain(RecoveryMiddleware, LoggingMiddleware, CORSMiddleware)(mux)
}

// registerPublicRoutes registers routes that don't require authentication
func registerPublicRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(fmt.Sprintf(`{"status":"ok","hash":"%s"}`, version.CommitHash)))
	})
}

// requireGet rejects all methods other than GET
func requireGet(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}
