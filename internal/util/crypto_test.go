package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Run("generates 64 character hex string", func(t *testing.T) {
		token, err := GenerateToken()
		require.NoError(t, err)
		assert.Len(t, token, 64)
	})

	t.Run("generates unique tokens", func(t *testing.T) {
		token1, _ := GenerateToken()
		token2, _ := GenerateToken()
		assert.NotEqual(t, token1, token2)
	})

	t.Run("generates valid hex", func(t *testing.T) {
		token, _ := GenerateToken()
		for _, c := range token {
			assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'))
		}
	})
}

func TestGenerateURLToken(t *testing.T) {
	t.Run("encodes 32 bytes without padding", func(t *testing.T) {
		token, err := GenerateURLToken()
		require.NoError(t, err)
		assert.Len(t, token, 43)
		assert.NotContains(t, token, "=")
	})

	t.Run("uses only URL-safe characters", func(t *testing.T) {
		token, err := GenerateURLToken()
		require.NoError(t, err)
		for _, c := range token {
			ok := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
			assert.True(t, ok, "unexpected character %q", c)
		}
	})

	t.Run("generates unique tokens", func(t *testing.T) {
		token1, _ := GenerateURLToken()
		token2, _ := GenerateURLToken()
		assert.NotEqual(t, token1, token2)
	})
}

func TestHashToken(t *testing.T) {
	t.Run("returns 64 character hex string", func(t *testing.T) {
		hash := HashToken("test-token")
		assert.Len(t, hash, 64)
	})

	t.Run("same input produces same hash", func(t *testing.T) {
		hash1 := HashToken("test-token")
		hash2 := HashToken("test-token")
		assert.Equal(t, hash1, hash2)
	})

	t.Run("different input produces different hash", func(t *testing.T) {
		hash1 := HashToken("token-1")
		hash2 := HashToken("token-2")
		assert.NotEqual(t, hash1, hash2)
	})
}

func TestHmacSHA256(t *testing.T) {
	t.Run("returns 64 character hex string", func(t *testing.T) {
		result := HmacSHA256("secret", "data")
		assert.Len(t, result, 64)
	})

	t.Run("same inputs produce same result", func(t *testing.T) {
		result1 := HmacSHA256("secret", "data")
		result2 := HmacSHA256("secret", "data")
		assert.Equal(t, result1, result2)
	})

	t.Run("different secret produces different result", func(t *testing.T) {
		result1 := HmacSHA256("secret1", "data")
		result2 := HmacSHA256("secret2", "data")
		assert.NotEqual(t, result1, result2)
	})

	t.Run("different data produces different result", func(t *testing.T) {
		result1 := HmacSHA256("secret", "data1")
		result2 := HmacSHA256("secret", "data2")
		assert.NotEqual(t, result1, result2)
	})

	t.Run("produces expected HMAC", func(t *testing.T) {
		// Known test vector
		result := HmacSHA256("key", "The quick brown fox jumps over the lazy dog")
		assert.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", result)
	})
}

func TestConstantTimeEqual(t *testing.T) {
	t.Run("returns true for equal strings", func(t *testing.T) {
		assert.True(t, ConstantTimeEqual("abc", "abc"))
	})

	t.Run("returns false for different strings", func(t *testing.T) {
		assert.False(t, ConstantTimeEqual("abc", "def"))
	})

	t.Run("returns false for different lengths", func(t *testing.T) {
		assert.False(t, ConstantTimeEqual("abc", "abcd"))
	})

	t.Run("returns true for empty strings", func(t *testing.T) {
		assert.True(t, ConstantTimeEqual("", ""))
	})
}

func TestEncryptDecrypt(t *testing.T) {
	key := "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

	t.Run("round trips plaintext", func(t *testing.T) {
		sealed, err := Encrypt(key, "Messi")
		require.NoError(t, err)
		assert.NotContains(t, sealed, "Messi")

		plain, err := Decrypt(key, sealed)
		require.NoError(t, err)
		assert.Equal(t, "Messi", plain)
	})

	t.Run("uses a fresh nonce each time", func(t *testing.T) {
		a, err := Encrypt(key, "same")
		require.NoError(t, err)
		b, err := Encrypt(key, "same")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("rejects short key", func(t *testing.T) {
		_, err := Encrypt("abcd", "x")
		assert.Error(t, err)
	})

	t.Run("rejects tampered ciphertext", func(t *testing.T) {
		sealed, err := Encrypt(key, "Messi")
		require.NoError(t, err)
		other := "1f1e1d1c1b1a191817161514131211100f0e0d0c0b0a09080706050403020100"
		_, err = Decrypt(other, sealed)
		assert.Error(t, err)
	})
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc23", "ABC23"},
		{"  ab c2 3 ", "ABC23"},
		{"\tAB\nC", "ABC"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeCode(tc.in))
		})
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("3f1c5a52-9a53-4c3e-8a4c-0e2f7a8b9c10"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("3F1C5A52-9A53-4C3E-8A4C-0E2F7A8B9C10"))
}
