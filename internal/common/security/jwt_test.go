package security

import (
	"testing"
	"time"

	"tourbase/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT(exp time.Duration) *JWT {
	return NewJWT(&config.Config{JWTKey: []byte("test-signing-secret"), JWTExp: exp})
}

func TestJWT_GenerateAndVerify(t *testing.T) {
	t.Parallel()

	j := testJWT(time.Hour)
	before := time.Now().Add(-time.Second)

	tok, err := j.GenerateToken("user-123")
	require.NoError(t, err)

	userID, issuedAt, err := j.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.True(t, issuedAt.After(before))
	assert.True(t, issuedAt.Before(time.Now().Add(time.Second)))
}

func TestJWT_VerifyExpired(t *testing.T) {
	t.Parallel()

	j := testJWT(-time.Minute)
	tok, err := j.GenerateToken("user-123")
	require.NoError(t, err)

	_, _, err = j.VerifyToken(tok)
	require.Error(t, err)
}

func TestJWT_VerifyWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := testJWT(time.Hour).GenerateToken("user-123")
	require.NoError(t, err)

	other := NewJWT(&config.Config{JWTKey: []byte("another-secret"), JWTExp: time.Hour})
	_, _, err = other.VerifyToken(tok)
	require.Error(t, err)
}

func TestJWT_VerifyMalformed(t *testing.T) {
	t.Parallel()

	j := testJWT(time.Hour)
	for _, tok := range []string{"", "not.a.jwt", "a.b", "a.b.c.d"} {
		_, _, err := j.VerifyToken(tok)
		assert.Error(t, err, "token %q", tok)
	}
}
