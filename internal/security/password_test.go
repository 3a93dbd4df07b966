package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same input")
	require.NoError(t, err)
	second, err := HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("same input", first))
	assert.True(t, VerifyPassword("same input", second))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"not a hash",
		"$argon2id$v=19$t=3,m=65536,p=2$invalid!!$invalid!!",
		"$argon2id$v=19$t=x,m=y,p=z$c2FsdA==$aGFzaA==",
		"$bcrypt$whatever",
		"$argon2id$v=19$t=3,m=65536,p=2$c2FsdA==",
	}

	for _, encoded := range cases {
		assert.False(t, VerifyPassword("anything", encoded), "hash %q must not verify", encoded)
	}
}
