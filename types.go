package identity

import (
	"context"
	"fmt"
	"strings"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds the process-wide identity settings. Values are read once at
// construction time and treated as read-only afterwards.
type Config interface {
	GetSigningKey() string
	GetPasswordPepper() string
	GetFeatureCount() int
}

// Identity is the authenticated principal a session token is minted for.
type Identity interface {
	Identifier() string
	RoleNames() []string
}

// PasswordHasher is a deterministic one-way transform from plaintext
// password to a storable hash. Identical input always yields an identical
// hash, which is what allows credential checks to run as an equality lookup.
type PasswordHasher interface {
	Hash(password string) string
}

// TokenIssuer mints and verifies signed session tokens.
type TokenIssuer interface {
	Issue(identity Identity) (string, error)
	Validate(token string) (*JWTClaims, error)
}

// Authenticator is the inbound surface the routing layer delegates to.
type Authenticator interface {
	SignIn(ctx context.Context, name, password string) (string, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] IDENTITY "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] IDENTITY "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] IDENTITY "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] IDENTITY "+newline(format), args...)
}

func newline(format string) string {
	if strings.HasSuffix(format, "\n") {
		return format
	}
	return format + "\n"
}
