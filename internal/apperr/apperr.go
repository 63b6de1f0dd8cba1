// Package apperr defines the error taxonomy shared by the identity gate, the
// record store and the tracker: validation errors block an action before any
// store call, auth errors carry a subcode that maps to a user-facing message,
// store errors are logged and the previous state is kept.
package apperr

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindAuth       Kind = "AUTH"
	KindStore      Kind = "STORE"
	KindNotFound   Kind = "NOT_FOUND"
)

// AuthCode identifies a known identity-provider failure. Anything the
// provider reports that is not listed here maps to AuthUnknown.
type AuthCode string

const (
	AuthEmailInUse      AuthCode = "auth/email-already-in-use"
	AuthInvalidEmail    AuthCode = "auth/invalid-email"
	AuthWeakPassword    AuthCode = "auth/weak-password"
	AuthUserNotFound    AuthCode = "auth/user-not-found"
	AuthWrongPassword   AuthCode = "auth/wrong-password"
	AuthTooManyRequests AuthCode = "auth/too-many-requests"
	AuthUnknown         AuthCode = "auth/unknown"
)

type Error struct {
	Kind    Kind
	Code    AuthCode
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Auth(code AuthCode, msg string) *Error {
	return &Error{Kind: KindAuth, Code: code, Message: msg}
}

func Store(msg string, cause error) *Error {
	return &Error{Kind: KindStore, Message: msg, cause: errors.WithStack(cause)}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// IsKind reports whether err is an *Error of the given kind anywhere in its
// chain.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// CodeOf extracts the auth subcode from err, or AuthUnknown.
func CodeOf(err error) AuthCode {
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return AuthUnknown
}

// UserMessage maps a known auth subcode to the message shown in the error
// banner. Unknown subcodes get the generic message.
func UserMessage(err error) string {
	switch CodeOf(err) {
	case AuthEmailInUse:
		return "This email address is already in use."
	case AuthInvalidEmail:
		return "Please enter a valid email address."
	case AuthWeakPassword:
		return "Password must be at least 6 characters."
	case AuthUserNotFound:
		return "Account not found."
	case AuthWrongPassword:
		return "Email address or password is incorrect."
	case AuthTooManyRequests:
		return "Too many login attempts. Please try again later."
	default:
		return "Authentication failed. Please try again."
	}
}
