package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/local-hotel/pkg/config"
)

func testHasher() *PasswordHasher {
	return NewPasswordHasher(config.Argon2Config{Memory: 1024, Iterations: 1, Parallelism: 1})
}

func TestPasswordHasher(t *testing.T) {
	h := testHasher()

	t.Run("hash and verify round trip", func(t *testing.T) {
		encoded, err := h.Hash("correct horse")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))
		assert.True(t, h.Verify("correct horse", encoded))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		encoded, err := h.Hash("correct horse")
		require.NoError(t, err)
		assert.False(t, h.Verify("battery staple", encoded))
	})

	t.Run("same password gets a fresh salt", func(t *testing.T) {
		a, err := h.Hash("same")
		require.NoError(t, err)
		b, err := h.Hash("same")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
		assert.True(t, h.Verify("same", a))
		assert.True(t, h.Verify("same", b))
	})

	t.Run("malformed hash is a mismatch", func(t *testing.T) {
		for _, encoded := range []string{"", "plaintext", "$argon2id$v=19$broken", "$bcrypt$whatever$x$y"} {
			assert.False(t, h.Verify("anything", encoded), encoded)
		}
	})

	t.Run("hash from other params still verifies", func(t *testing.T) {
		other := NewPasswordHasher(config.Argon2Config{Memory: 2048, Iterations: 2, Parallelism: 1})
		encoded, err := other.Hash("pw")
		require.NoError(t, err)
		assert.True(t, h.Verify("pw", encoded))
	})
}
