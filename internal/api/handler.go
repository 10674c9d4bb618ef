package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/otiai10/rolegate/internal/audit"
	"github.com/otiai10/rolegate/internal/auth"
	"github.com/otiai10/rolegate/internal/user"
)

// ErrorResponse is the body for plain handler-level errors
type ErrorResponse struct {
	Error string `json:"error"`
}

// MeHandler serves the caller's own user record
type MeHandler struct {
	userRepo user.Repository
}

// NewMeHandler creates a new MeHandler
func NewMeHandler(userRepo user.Repository) *MeHandler {
	return &MeHandler{userRepo: userRepo}
}

// GetProfile handles GET /api/me.
// The gate guarantees the identity is present and its record exists.
func (h *MeHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentity(r.Context())

	u, err := h.userRepo.FindByID(r.Context(), identity.UID)
	if err != nil {
		writeError(w, "failed to get user", http.StatusInternalServerError)
		return
	}
	if u == nil {
		writeError(w, "user not found", http.StatusNotFound)
		return
	}

	writeJSON(w, u, http.StatusOK)
}

// AuditHandler serves the recorded gate decisions
type AuditHandler struct {
	log *audit.Log
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(log *audit.Log) *AuditHandler {
	return &AuditHandler{log: log}
}

// defaultRecentLimit bounds GET /api/audit/recent when no limit is given
const defaultRecentLimit = 50

// Recent handles GET /api/audit/recent?limit=N
func (h *AuditHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries := h.log.Recent(limit)
	if entries == nil {
		entries = []audit.Entry{}
	}
	writeJSON(w, entries, http.StatusOK)
}

func writeJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Already wrote headers, can only log
		return
	}
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
