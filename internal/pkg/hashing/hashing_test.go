package hashing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := Hash("secret123")
	require.NoError(t, err)
	h2, err := Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same input must differ")

	for _, h := range []string{h1, h2} {
		ok, err := Verify("secret123", h)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	h, err := Hash("secret123")
	require.NoError(t, err)

	ok, err := Verify("secret124", h)
	require.NoError(t, err, "a wrong password is not an error")
	assert.False(t, ok)
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	ok, err := Verify("whatever", "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.ErrorIs(t, err, ErrMalformedHash)
}
