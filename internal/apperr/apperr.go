// Package apperr defines the closed set of error kinds the API can
// return. Every failure that reaches the client is one of these values;
// raw internal errors are never rendered. Each Error carries the HTTP
// status, a stable machine-readable code clients can branch on, a
// human-readable detail (free to change wording over time) and any
// status-specific headers such as the Bearer challenge on 401.
package apperr

import "net/http"

// Error is immutable once constructed. Handlers and middleware return
// it up the chain; the central HTTP error handler renders it.
type Error struct {
	Status  int
	Code    string
	Detail  string
	Headers map[string]string
}

func (e *Error) Error() string { return e.Detail }

// Stable machine-readable codes. These are part of the wire contract;
// detail strings are not.
const (
	CodeBadRequest         = "bad_request"
	CodeValidation         = "validation_error"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeConflict           = "conflict"
	CodeRateLimited        = "rate_limited"
	CodeBodyTooLarge       = "body_too_large"
	CodeInternal           = "internal_error"
	CodeMissingCredentials = "missing_credentials"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUserNotFound       = "user_not_found"
	CodeInactiveUser       = "inactive_user"
	CodeUsernameExists     = "username_exists"
	CodeEmailExists        = "email_exists"
)

func BadRequest(detail string) *Error {
	if detail == "" {
		detail = "Bad request"
	}
	return &Error{Status: http.StatusBadRequest, Code: CodeBadRequest, Detail: detail}
}

func Validation(detail string) *Error {
	if detail == "" {
		detail = "Validation error"
	}
	return &Error{Status: http.StatusUnprocessableEntity, Code: CodeValidation, Detail: detail}
}

// Unauthorized always carries the Bearer challenge header so the
// response keeps its authentication semantics through the central
// responder.
func Unauthorized(code, detail string) *Error {
	if code == "" {
		code = CodeUnauthorized
	}
	if detail == "" {
		detail = "Authentication required"
	}
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    code,
		Detail:  detail,
		Headers: map[string]string{"WWW-Authenticate": "Bearer"},
	}
}

func Forbidden(code, detail string) *Error {
	if code == "" {
		code = CodeForbidden
	}
	if detail == "" {
		detail = "Permission denied"
	}
	return &Error{Status: http.StatusForbidden, Code: code, Detail: detail}
}

func NotFound(code, detail string) *Error {
	if code == "" {
		code = CodeNotFound
	}
	if detail == "" {
		detail = "Resource not found"
	}
	return &Error{Status: http.StatusNotFound, Code: code, Detail: detail}
}

func Conflict(code, detail string) *Error {
	if code == "" {
		code = CodeConflict
	}
	if detail == "" {
		detail = "Resource conflict"
	}
	return &Error{Status: http.StatusConflict, Code: code, Detail: detail}
}

func RateLimited(retryAfter string) *Error {
	e := &Error{
		Status: http.StatusTooManyRequests,
		Code:   CodeRateLimited,
		Detail: "Too many requests",
	}
	if retryAfter != "" {
		e.Headers = map[string]string{"Retry-After": retryAfter}
	}
	return e
}

func BodyTooLarge(detail string) *Error {
	if detail == "" {
		detail = "Request body too large"
	}
	return &Error{Status: http.StatusRequestEntityTooLarge, Code: CodeBodyTooLarge, Detail: detail}
}

// Internal is the fallback for unclassified failures. The detail is a
// fixed message so internal error text can never reach the client.
func Internal() *Error {
	return &Error{
		Status: http.StatusInternalServerError,
		Code:   CodeInternal,
		Detail: "An unexpected error occurred",
	}
}

// Domain kinds used by the principal resolver and the auth handlers.

// MissingCredentials is returned when no bearer token was supplied.
func MissingCredentials() *Error {
	return Unauthorized(CodeMissingCredentials, "Missing bearer token")
}

// InvalidCredentials covers both bad login passwords and bad tokens
// (tampered, expired, malformed, missing required claim). Unknown
// usernames at login deliberately map here too, so the response does
// not reveal whether the account exists.
func InvalidCredentials() *Error {
	return Unauthorized(CodeInvalidCredentials, "Invalid credentials")
}

// UserNotFound is returned when a verified token names a subject the
// user store cannot resolve, e.g. an account deleted after issuance.
func UserNotFound() *Error {
	return Unauthorized(CodeUserNotFound, "User not found")
}

// InactiveUser is returned for disabled accounts.
func InactiveUser() *Error {
	return Forbidden(CodeInactiveUser, "User account is inactive")
}

func UsernameExists() *Error {
	return Conflict(CodeUsernameExists, "Username already exists")
}

func EmailExists() *Error {
	return Conflict(CodeEmailExists, "User with this email already exists")
}
