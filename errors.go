package identity

import (
	stderrors "errors"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	TextCodeNotFound        = "identity_not_found"
	TextCodeDuplicateName   = "identity_duplicate_name"
	TextCodeInvalidCreds    = "identity_invalid_credentials"
	TextCodeInvalidArgument = "identity_invalid_argument"
)

// ErrNotFound is returned when no entity matches the requested key,
// credentials, or filter.
var ErrNotFound = errors.New("record not found", errors.CategoryNotFound).
	WithTextCode(TextCodeNotFound).
	WithCode(errors.CodeNotFound)

// ErrDuplicateName is returned when an add would violate name or id
// uniqueness.
var ErrDuplicateName = errors.New("name already taken", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateName).
	WithCode(errors.CodeConflict)

// ErrAuthenticationFailed is the only credential failure SignIn surfaces; a
// wrong name and a wrong password are indistinguishable to the caller.
var ErrAuthenticationFailed = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidArgument flags a nil or missing required object handed to an
// internal step. It is a programming error, not a user-facing condition.
var ErrInvalidArgument = errors.New("invalid argument", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidArgument).
	WithCode(errors.CodeBadRequest)

// IsNotFound reports whether err is the not-found signal.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// IsDuplicateName reports whether err is the uniqueness violation signal.
func IsDuplicateName(err error) bool {
	return stderrors.Is(err, ErrDuplicateName)
}

// IsUniqueViolation will check for the storage engine's unique constraint
// signal: SQLSTATE 23505 on postgres, the constraint message on sqlite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
