package identity

import (
	"context"
)

// CredentialVerifier is the slice of UserService the authenticator needs.
type CredentialVerifier interface {
	GetByCredentials(ctx context.Context, name, password string) (*User, error)
}

// Auther wires credential verification to token issuance. It is the
// concrete Authenticator handed to the routing layer.
type Auther struct {
	users  CredentialVerifier
	tokens TokenIssuer
	logger Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(users CredentialVerifier, tokens TokenIssuer) *Auther {
	return &Auther{
		users:  users,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// SignIn verifies the credentials and returns a signed session token. Any
// credential failure surfaces as ErrAuthenticationFailed so callers cannot
// tell which factor was wrong.
func (s *Auther) SignIn(ctx context.Context, name, password string) (string, error) {
	user, err := s.users.GetByCredentials(ctx, name, password)
	if err != nil {
		if IsNotFound(err) {
			s.logger.Info("SignIn rejected credentials for %s", name)
			return "", ErrAuthenticationFailed
		}
		s.logger.Error("SignIn credential lookup error: %v", err)
		return "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("SignIn token issuance error: %v", err)
		return "", err
	}

	return token, nil
}
