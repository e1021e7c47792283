package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCode(t *testing.T) {
	err := NewInvalidState("already resolved", nil)
	assert.True(t, IsCode(err, "INVALID_STATE"))
	assert.False(t, IsCode(err, "NOT_FOUND"))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, IsCode(wrapped, "INVALID_STATE"))

	assert.False(t, IsCode(errors.New("plain"), "INVALID_STATE"))
	assert.False(t, IsCode(nil, "INVALID_STATE"))
}

func TestConstructorsCarryHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewNotFound("grievance", nil), "NOT_FOUND", http.StatusNotFound},
		{NewInvalidState("bad move", nil), "INVALID_STATE", http.StatusConflict},
		{NewUnauthorized("no token"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbidden("wrong role"), "FORBIDDEN", http.StatusForbidden},
		{NewStorageError(errors.New("down")), "STORAGE_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		var domainErr *DomainError
		require.ErrorAs(t, tc.err, &domainErr)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	notFound := ToDomainError(fmt.Errorf("lookup: %w", pgx.ErrNoRows))
	require.NotNil(t, notFound)
	assert.Equal(t, "NOT_FOUND", notFound.Code)

	passthrough := ToDomainError(NewValidationError("bad", nil))
	require.NotNil(t, passthrough)
	assert.Equal(t, "VALIDATION_FAILED", passthrough.Code)

	generic := ToDomainError(errors.New("boom"))
	require.NotNil(t, generic)
	assert.Equal(t, "STORAGE_ERROR", generic.Code)
	assert.ErrorContains(t, generic, "boom")
}

func TestStorageErrorUnwraps(t *testing.T) {
	base := errors.New("pool closed")
	err := NewStorageError(base)
	assert.ErrorIs(t, err, base)
}
