package identity_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/personalblog/identity"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      *errors.Error
		category errors.Category
		textCode string
	}{
		{"not found", identity.ErrNotFound, errors.CategoryNotFound, "identity_not_found"},
		{"duplicate name", identity.ErrDuplicateName, errors.CategoryConflict, "identity_duplicate_name"},
		{"authentication failed", identity.ErrAuthenticationFailed, errors.CategoryAuth, "identity_invalid_credentials"},
		{"invalid argument", identity.ErrInvalidArgument, errors.CategoryBadInput, "identity_invalid_argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.textCode, tt.err.TextCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, identity.IsNotFound(identity.ErrNotFound))
	assert.True(t, identity.IsNotFound(fmt.Errorf("loading user: %w", identity.ErrNotFound)))
	assert.False(t, identity.IsNotFound(identity.ErrDuplicateName))
	assert.False(t, identity.IsNotFound(nil))
}

func TestIsDuplicateName(t *testing.T) {
	assert.True(t, identity.IsDuplicateName(identity.ErrDuplicateName))
	assert.True(t, identity.IsDuplicateName(fmt.Errorf("adding user: %w", identity.ErrDuplicateName)))
	assert.False(t, identity.IsDuplicateName(identity.ErrNotFound))
	assert.False(t, identity.IsDuplicateName(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("postgres unique violation", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "users_name_idx"}
		assert.True(t, identity.IsUniqueViolation(err))
		assert.True(t, identity.IsUniqueViolation(fmt.Errorf("insert: %w", err)))
	})

	t.Run("other postgres errors do not match", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23503"}
		assert.False(t, identity.IsUniqueViolation(err))
	})

	t.Run("sqlite unique violation", func(t *testing.T) {
		err := stderrors.New("constraint failed: UNIQUE constraint failed: users.name (2067)")
		assert.True(t, identity.IsUniqueViolation(err))
	})

	t.Run("unrelated errors do not match", func(t *testing.T) {
		assert.False(t, identity.IsUniqueViolation(nil))
		assert.False(t, identity.IsUniqueViolation(stderrors.New("connection refused")))
	})
}
