package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const resetTokenBytes = 32

// GenerateResetToken draws a high-entropy single-use token for password
// recovery. The plain form is mailed to the user and never persisted; only
// the sha256 hash is stored, alongside the expiry. The stored hash is a
// lookup key for an unguessable random value, not a user-chosen secret, so
// it takes a fast deterministic hash rather than bcrypt.
func GenerateResetToken(ttl time.Duration) (plain, hash string, expires time.Time, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", time.Time{}, err
	}
	plain = hex.EncodeToString(buf)
	hash = HashResetToken(plain)
	expires = time.Now().Add(ttl)
	return plain, hash, expires, nil
}

// HashResetToken maps a presented plain token to its stored form.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
