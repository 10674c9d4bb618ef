package auth

import (
	"context"
	"slices"

	"github.com/otiai10/rolegate/internal/user"
)

// RoleAuthorizer decides whether a verified subject may proceed, based
// on the role stored in its user record. The allowed-role set is a
// per-call parameter so different protected operations can reuse one
// authorizer with different required roles.
type RoleAuthorizer struct {
	users user.Repository
}

// NewRoleAuthorizer creates a new RoleAuthorizer backed by the given repository
func NewRoleAuthorizer(users user.Repository) *RoleAuthorizer {
	return &RoleAuthorizer{users: users}
}

// Authorize checks the subject's stored role against the allowed set.
// It returns nil when the subject is allowed, or a Rejection with the
// first failing check. Checks are strictly ordered: subject precondition,
// record lookup, role presence, role membership. Exactly one store read
// is performed, and only after the precondition passes.
func (a *RoleAuthorizer) Authorize(ctx context.Context, subjectID string, allowed []string) *Rejection {
	if subjectID == "" {
		return reject(CodeInvalidSubjectID, "subject id must be a non-empty string")
	}

	u, err := a.users.FindByID(ctx, subjectID)
	if err != nil {
		return reject(CodeStoreFailure, "user store lookup failed: %v", err)
	}

	if u == nil {
		return reject(CodeUserNotFound, "no user record for subject %q", subjectID)
	}

	if u.Role == "" {
		return reject(CodeRoleUndefined, "user %q has no role defined", subjectID)
	}

	if !slices.Contains(allowed, u.Role) {
		return reject(CodeRoleNotPermitted, "role %q is not permitted", u.Role)
	}

	return nil
}
