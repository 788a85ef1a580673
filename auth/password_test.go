package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	second, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "bcrypt output should differ per call")
	assert.True(t, CheckPassword("correct horse battery staple", first))
	assert.True(t, CheckPassword("correct horse battery staple", second))
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("right-password")
	require.NoError(t, err)

	assert.False(t, CheckPassword("wrong-password", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_TruncatesAt72Bytes(t *testing.T) {
	prefix := strings.Repeat("a", 72)
	long := prefix + "ignored tail"

	hash, err := HashPassword(long)
	require.NoError(t, err)

	// Only the first 72 bytes count, so the exact prefix verifies and a
	// different tail makes no difference.
	assert.True(t, CheckPassword(prefix, hash))
	assert.True(t, CheckPassword(prefix+"another tail entirely", hash))
	assert.False(t, CheckPassword(strings.Repeat("b", 72), hash))
}
