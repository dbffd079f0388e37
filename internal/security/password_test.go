package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$v=19$")

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same input")
	require.NoError(t, err)
	second, err := HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsGarbageHash(t *testing.T) {
	for _, encoded := range []string{
		"not-an-encoded-hash",
		"$argon2id$v=19$t=3,m=65536,p=2$onlyonepart",
		"$scrypt$v=19$t=3,m=65536,p=2$c2FsdA==$aGFzaA==",
		"$argon2id$v=19$t=x,m=y,p=z$c2FsdA==$aGFzaA==",
	} {
		_, err := VerifyPassword("anything", encoded)
		assert.Error(t, err, encoded)
	}
}
