package identity

import (
	"fmt"
	"reflect"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenTTL is the fixed validity window of issued tokens. Expiry is
// absolute; there is no refresh mechanism.
const TokenTTL = 60 * time.Minute

// TokenServiceImpl implements TokenIssuer with symmetric HS256 signing. The
// signing key is injected at construction and is not reachable through any
// global.
type TokenServiceImpl struct {
	signingKey []byte
	logger     Logger
}

var _ TokenIssuer = (*TokenServiceImpl)(nil)

// NewTokenService creates a new TokenIssuer instance
func NewTokenService(signingKey []byte, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		logger:     logger,
	}
}

// Issue mints a token for the given identity: one name claim, one roles
// entry per attached role name (zero or more), not-before at the issuance
// instant and expiry at issuance plus TokenTTL.
func (ts *TokenServiceImpl) Issue(identity Identity) (string, error) {
	if identity == nil || reflect.ValueOf(identity).IsZero() {
		return "", errors.New("identity is required", errors.CategoryBadInput)
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		Name:  identity.Identifier(),
		Roles: identity.RoleNames(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signed, nil
}

// Validate parses and validates a token string, returning its claims.
// Verification of issued tokens normally happens on the consuming side; this
// is the reference implementation those parties mirror.
func (ts *TokenServiceImpl) Validate(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryAuth, "token validation failed")
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode claims")
	return nil, errors.New("unable to map claims", errors.CategoryAuth)
}
