package identity

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 4096
	hashKeyLength  = 32
)

// KeyedHasher derives password hashes with PBKDF2-SHA256 under a
// process-wide pepper. The derivation is deterministic so the credential
// check can match name and hash in one equality predicate, while the pepper
// keeps stored hashes from being a bare digest of the password.
type KeyedHasher struct {
	pepper []byte
}

var _ PasswordHasher = (*KeyedHasher)(nil)

// NewKeyedHasher creates a hasher bound to the given pepper. Changing the
// pepper invalidates every stored hash.
func NewKeyedHasher(pepper string) *KeyedHasher {
	return &KeyedHasher{pepper: []byte(pepper)}
}

// Hash transforms a plaintext password into its storable hash. Any input
// string is valid, including the empty string.
func (h *KeyedHasher) Hash(password string) string {
	key := pbkdf2.Key([]byte(password), h.pepper, hashIterations, hashKeyLength, sha256.New)
	return hex.EncodeToString(key)
}
