package identity

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims is the payload of an issued session token: one name claim, one
// roles entry per attached role, not-before and expiry timestamps.
type JWTClaims struct {
	jwt.RegisteredClaims
	Name  string   `json:"name"`
	Roles []string `json:"roles,omitempty"`
}

// UserName returns the identity claim.
func (c *JWTClaims) UserName() string {
	return c.Name
}

// HasRole checks whether the token carries the given role claim.
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
