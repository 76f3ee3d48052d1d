package security

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	t.Parallel()

	before := time.Now()
	plain, hash, expires, err := GenerateResetToken(10 * time.Minute)
	require.NoError(t, err)

	// 32 random bytes, hex-encoded
	assert.Len(t, plain, 64)
	_, err = hex.DecodeString(plain)
	require.NoError(t, err)

	// Stored form is the sha256 of the plain token, never the token itself.
	sum := sha256.Sum256([]byte(plain))
	assert.Equal(t, hex.EncodeToString(sum[:]), hash)
	assert.NotEqual(t, plain, hash)

	assert.True(t, expires.After(before.Add(9*time.Minute)))
	assert.True(t, expires.Before(before.Add(11*time.Minute)))
}

func TestGenerateResetToken_Unpredictable(t *testing.T) {
	t.Parallel()

	p1, _, _, err := GenerateResetToken(time.Minute)
	require.NoError(t, err)
	p2, _, _, err := GenerateResetToken(time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
}

func TestHashResetToken_Deterministic(t *testing.T) {
	t.Parallel()

	plain, hash, _, err := GenerateResetToken(time.Minute)
	require.NoError(t, err)

	// Redemption recomputes the same hash from the presented token.
	assert.Equal(t, hash, HashResetToken(plain))
	assert.NotEqual(t, hash, HashResetToken(plain+"x"))
}
