package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Secret123", 4)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Secret123", hash)

	assert.True(t, CheckPasswordHash("Secret123", hash))
	assert.False(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestHashPassword_SaltedOutputDiffers(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("Secret123", 4)
	require.NoError(t, err)
	h2, err := HashPassword("Secret123", 4)
	require.NoError(t, err)

	// Embedded random salt makes two hashes of the same input distinct.
	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPasswordHash("Secret123", h1))
	assert.True(t, CheckPasswordHash("Secret123", h2))
}

func TestHashPassword_CostOutOfRangeFallsBack(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Secret123", 99)
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("Secret123", hash))
}

func TestCheckPasswordHash_GarbageHash(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPasswordHash("Secret123", "not-a-bcrypt-hash"))
}
