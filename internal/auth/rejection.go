package auth

import (
	"fmt"
	"net/http"
)

// Code classifies a terminal gate rejection
type Code string

// Classification codes carried in the rejection body
const (
	CodeNoToken          Code = "NO_TOKEN"
	CodeInvalidToken     Code = "INVALID_TOKEN"
	CodeUserNotFound     Code = "USER_NOT_FOUND"
	CodeRoleUndefined    Code = "ROLE_UNDEFINED"
	CodeRoleNotPermitted Code = "ROLE_NOT_PERMITTED"
	CodeInvalidSubjectID Code = "INVALID_SUBJECT_ID"
	CodeStoreFailure     Code = "STORE_FAILURE"
	CodeUnknown          Code = "UNKNOWN"
)

// Rejection is a terminal deny decision. It carries the classification
// code and a diagnostic message; it is never retried and never cached
// across requests.
type Rejection struct {
	Code    Code
	Message string
}

// Error implements the error interface
func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

// Status maps the classification to an HTTP status code.
// 401 is reserved for the missing-credential case; verification and
// authorization content failures are 403; store and unknown faults are
// server-side 500s.
func (r *Rejection) Status() int {
	switch r.Code {
	case CodeNoToken:
		return http.StatusUnauthorized
	case CodeInvalidToken, CodeUserNotFound, CodeRoleUndefined, CodeRoleNotPermitted, CodeInvalidSubjectID:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// reject is a convenience constructor for a Rejection
func reject(code Code, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Message: fmt.Sprintf(format, args...)}
}
