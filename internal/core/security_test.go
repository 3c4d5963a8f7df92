// AngelaMos | 2026
// security_test.go

package core

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("correct horse battery", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	t.Run("valid current params", func(t *testing.T) {
		check, err := CheckPassword("s3cret-pass", hash)
		require.NoError(t, err)
		assert.True(t, check.Valid)
		assert.Empty(t, check.Rehash)
	})

	t.Run("wrong password", func(t *testing.T) {
		check, err := CheckPassword("nope", hash)
		require.NoError(t, err)
		assert.False(t, check.Valid)
	})

	t.Run("unknown account", func(t *testing.T) {
		check, err := CheckPassword("s3cret-pass", "")
		require.NoError(t, err)
		assert.False(t, check.Valid)
	})

	t.Run("outdated params are rehashed", func(t *testing.T) {
		salt := []byte("0123456789abcdef")
		key := argon2.IDKey([]byte("s3cret-pass"), salt, 2, 32*1024, 2, 32)
		old := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
			argon2.Version, 32*1024, 2, 2,
			base64.RawStdEncoding.EncodeToString(salt),
			base64.RawStdEncoding.EncodeToString(key),
		)

		check, err := CheckPassword("s3cret-pass", old)
		require.NoError(t, err)
		assert.True(t, check.Valid)
		require.NotEmpty(t, check.Rehash)
		assert.False(t, needsRehash(check.Rehash))
	})
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	_, err := VerifyPassword("x", "not-a-hash")
	assert.Error(t, err)

	_, err = VerifyPassword("x", "$bcrypt$v=19$m=1,t=1,p=1$aa$bb")
	assert.Error(t, err)
}
