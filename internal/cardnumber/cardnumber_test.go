package cardnumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestNewCipherRejectsBadKey(t *testing.T) {
	_, err := NewCipher("too-short")
	require.Error(t, err)

	var encErr *EncryptError
	assert.ErrorAs(t, err, &encErr)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cipher, err := NewCipher(testKey)
	require.NoError(t, err)

	number := "4000123412341234"
	encrypted, err := cipher.Encrypt(number)
	require.NoError(t, err)
	assert.NotEqual(t, number, encrypted)

	plain, err := cipher.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, number, plain)
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	cipher, err := NewCipher(testKey)
	require.NoError(t, err)

	first, err := cipher.Encrypt("4000123412341234")
	require.NoError(t, err)
	second, err := cipher.Encrypt("4000123412341234")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	cipher, err := NewCipher(testKey)
	require.NoError(t, err)

	encrypted, err := cipher.Encrypt("4000123412341234")
	require.NoError(t, err)

	// Flip one character of the base64 payload.
	tampered := []byte(encrypted)
	if tampered[len(tampered)-5] == 'A' {
		tampered[len(tampered)-5] = 'B'
	} else {
		tampered[len(tampered)-5] = 'A'
	}

	_, err = cipher.Decrypt(string(tampered))
	require.Error(t, err)

	var encErr *EncryptError
	assert.ErrorAs(t, err, &encErr)
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	cipher, err := NewCipher(testKey)
	require.NoError(t, err)

	for _, input := range []string{"", "not base64!!!", "QQ=="} {
		_, err := cipher.Decrypt(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestMask(t *testing.T) {
	cipher, err := NewCipher(testKey)
	require.NoError(t, err)

	assert.Equal(t, "**** **** **** 1234", cipher.Mask("4000123412341234", false))

	encrypted, err := cipher.Encrypt("4000567856785678")
	require.NoError(t, err)
	assert.Equal(t, "**** **** **** 5678", cipher.Mask(encrypted, true))
}

func TestMaskFallsBackOnUndecryptableValue(t *testing.T) {
	cipher, err := NewCipher(testKey)
	require.NoError(t, err)

	// A corrupt stored value must never leak digits or fail the read.
	assert.Equal(t, "**** **** **** ****", cipher.Mask("garbage-ciphertext", true))
}

func TestGenerate(t *testing.T) {
	number, err := Generate()
	require.NoError(t, err)
	require.Len(t, number, 16)
	for _, r := range number {
		assert.True(t, r >= '0' && r <= '9', "non-digit %q in %s", r, number)
	}

	other, err := Generate()
	require.NoError(t, err)
	assert.NotEqual(t, number, other)
}
