package security

import (
	"golang.org/x/crypto/bcrypt"
)

// SecretHasher hashes and verifies shared secrets (e.g. the provider webhook
// secret) using bcrypt, so the plaintext never needs to be stored.
type SecretHasher struct {
	Cost int
}

// NewSecretHasher returns a SecretHasher with the given bcrypt cost (4–31).
func NewSecretHasher(cost int) *SecretHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &SecretHasher{Cost: cost}
}

// Hash produces a bcrypt hash of secret, suitable for storage.
func (h *SecretHasher) Hash(secret []byte) (string, error) {
	b, err := bcrypt.GenerateFromPassword(secret, h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare verifies secret against the stored hash in constant time. Returns
// nil on match; bcrypt.ErrMismatchedHashAndPassword (or another error) otherwise.
func (h *SecretHasher) Compare(hash string, secret []byte) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), secret)
}
