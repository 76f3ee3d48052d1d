package security

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword computes a salted bcrypt hash of the plaintext. The salt is
// embedded in the output; cost is the configured work factor.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a candidate against a stored bcrypt hash.
// bcrypt's comparison does not leak prefix-match timing.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
