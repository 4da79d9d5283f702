package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher provides one-way salted hashing and verification of
// passwords.
type PasswordHasher interface {
	// Hash produces a salted hash of the raw password.
	Hash(rawPassword string) (string, error)

	// Verify reports whether the raw password matches the stored hash.
	// A malformed stored hash counts as a mismatch, not a fatal error.
	Verify(rawPassword, hashText string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt. The comparison is
// constant-time at the hash-verification level.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the given cost factor.
// A cost of zero or less falls back to the bcrypt default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(rawPassword string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(rawPassword, hashText string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashText), []byte(rawPassword)) == nil
}
