package auth_test

import (
	"strings"
	"testing"

	"careerai-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *auth.Hasher {
	t.Helper()
	h, err := auth.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestHasherRoundTrip(t *testing.T) {
	h := newTestHasher(t)

	for _, pw := range []string{"password123", "ünïcödé-пароль", "a", strings.Repeat("x", 72)} {
		hash, err := h.Hash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hash)
		assert.True(t, h.Verify(pw, hash), "password %q should verify", pw)
	}
}

func TestHasherRejectsEmpty(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash("")
	assert.ErrorIs(t, err, auth.ErrEmptyPassword)

	hash, err := h.Hash("secret-password")
	require.NoError(t, err)
	assert.False(t, h.Verify("", hash))
}

func TestHasherMismatch(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.False(t, h.Verify("correct horse battery stapler", hash))
	assert.False(t, h.Verify("anything", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("anything", ""))
}

func TestHasherTruncatesAt72Bytes(t *testing.T) {
	h := newTestHasher(t)
	prefix := strings.Repeat("p", auth.MaxPasswordBytes)

	hash, err := h.Hash(prefix + "tail-one")
	require.NoError(t, err)

	// Bytes past the limit are ignored for both hashing and verification.
	assert.True(t, h.Verify(prefix+"tail-two", hash))
	assert.True(t, h.Verify(prefix, hash))

	// A difference inside the first 72 bytes still fails.
	assert.False(t, h.Verify("q"+prefix[1:]+"tail-one", hash))
}

func TestNewHasherCostBounds(t *testing.T) {
	_, err := auth.NewHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)

	_, err = auth.NewHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)

	h, err := auth.NewHasher(auth.DefaultCost)
	require.NoError(t, err)
	assert.NotNil(t, h)
}
