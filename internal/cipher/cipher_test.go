// server/internal/cipher/cipher_test.go
package cipher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestNewRejectsBadKeys(t *testing.T) {
	_, err := New("")
	assert.Error(t, err, "empty key must be rejected, no fallback")

	_, err = New("not-hex")
	assert.Error(t, err)

	_, err = New("abcd") // 2 bytes
	assert.Error(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c, err := New(testKey)
	require.NoError(t, err)

	for _, plaintext := range []string{"hello", "", "pad-boundary-16b", "Jane Q. Cardholder", "4242"} {
		encrypted, err := c.Encrypt(plaintext)
		require.NoError(t, err)
		assert.Contains(t, encrypted, ":")
		if plaintext != "" {
			assert.NotContains(t, encrypted, plaintext)
		}

		decrypted, err := c.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestEncryptUsesFreshIV(t *testing.T) {
	c, err := New(testKey)
	require.NoError(t, err)

	first, err := c.Encrypt("same input")
	require.NoError(t, err)
	second, err := c.Encrypt("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	c, err := New(testKey)
	require.NoError(t, err)

	for _, bad := range []string{"", "no-separator", "zz:zz", "abcd:1234"} {
		_, err := c.Decrypt(bad)
		assert.Error(t, err, bad)
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	c1, err := New(testKey)
	require.NoError(t, err)
	c2, err := New(strings.Repeat("ff", 32))
	require.NoError(t, err)

	encrypted, err := c1.Encrypt("secret")
	require.NoError(t, err)

	decrypted, err := c2.Decrypt(encrypted)
	if err == nil {
		// CBC with a wrong key can decode to garbage with valid padding;
		// it must at least not recover the plaintext.
		assert.NotEqual(t, "secret", decrypted)
	}
}
