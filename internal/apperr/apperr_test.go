package apperr

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindsAndStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		kind   Kind
		status int
	}{
		{"validation", Validation("missing field"), KindValidation, http.StatusBadRequest},
		{"auth", Auth(AuthWrongPassword, "bad password"), KindAuth, http.StatusUnauthorized},
		{"not found", NotFound("gone"), KindNotFound, http.StatusNotFound},
		{"store", Store("write failed", errors.New("io")), KindStore, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsKind(tt.err, tt.kind))
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
		})
	}
}

func TestIsKindSeesThroughWrapping(t *testing.T) {
	wrapped := errors.Wrap(Validation("bad input"), "while creating job")
	assert.True(t, IsKind(wrapped, KindValidation))
	assert.False(t, IsKind(wrapped, KindStore))
	assert.False(t, IsKind(errors.New("plain"), KindValidation))
}

func TestUserMessageMapsKnownCodes(t *testing.T) {
	assert.Equal(t, "Account not found.", UserMessage(Auth(AuthUserNotFound, "x")))
	assert.Equal(t, "This email address is already in use.", UserMessage(Auth(AuthEmailInUse, "x")))
	assert.Equal(t, "Too many login attempts. Please try again later.", UserMessage(Auth(AuthTooManyRequests, "x")))

	// Unknown subcodes and foreign errors both get the generic banner.
	assert.Equal(t, "Authentication failed. Please try again.", UserMessage(Auth(AuthUnknown, "x")))
	assert.Equal(t, "Authentication failed. Please try again.", UserMessage(errors.New("boom")))
}

func TestStoreErrorPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Store("create job", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "create job")
}
