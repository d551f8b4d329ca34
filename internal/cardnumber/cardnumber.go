// Package cardnumber generates bank card numbers and handles their
// at-rest encryption and display masking.
package cardnumber

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	numberLength = 16
	nonceSize    = 12

	// maskFallback is returned when a stored number cannot be decrypted.
	// A corrupt ciphertext must never break a listing response.
	maskFallback = "**** **** **** ****"
)

// EncryptError reports a cryptographic failure in the card number codec,
// distinct from business-rule errors. It carries the underlying cause.
type EncryptError struct {
	Op  string
	Err error
}

func (e *EncryptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card number %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("card number %s failed", e.Op)
}

func (e *EncryptError) Unwrap() error {
	return e.Err
}

// Cipher encrypts card numbers with AES-GCM. Each call uses a fresh
// random nonce, so the same number never produces the same ciphertext.
type Cipher struct {
	aead cipher.AEAD
}

func NewCipher(key string) (*Cipher, error) {
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, &EncryptError{Op: "key setup", Err: err}
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, &EncryptError{Op: "key setup", Err: err}
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt returns base64(nonce || ciphertext) for storage.
func (c *Cipher) Encrypt(number string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", &EncryptError{Op: "encrypt", Err: err}
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(number), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. It fails if the value is malformed or the
// authentication tag does not verify.
func (c *Cipher) Decrypt(encrypted string) (string, error) {
	combined, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", &EncryptError{Op: "decrypt", Err: err}
	}
	if len(combined) < nonceSize {
		return "", &EncryptError{Op: "decrypt", Err: errors.New("ciphertext too short")}
	}

	nonce, sealed := combined[:nonceSize], combined[nonceSize:]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", &EncryptError{Op: "decrypt", Err: err}
	}
	return string(plain), nil
}

// Mask renders a number for display, keeping only the last four digits.
// When encrypted is true the value is decrypted first; if that fails the
// fully masked placeholder is returned instead of an error.
func (c *Cipher) Mask(value string, encrypted bool) string {
	if encrypted {
		plain, err := c.Decrypt(value)
		if err != nil {
			return maskFallback
		}
		value = plain
	}
	if len(value) < 4 {
		return maskFallback
	}
	return "**** **** **** " + value[len(value)-4:]
}

// Generate returns 16 random decimal digits from a cryptographically
// secure source. Collisions are left to the unique index on the cards
// table; there is no retry here.
func Generate() (string, error) {
	raw := make([]byte, numberLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate card number: %w", err)
	}

	var b strings.Builder
	b.Grow(numberLength)
	for _, v := range raw {
		b.WriteByte(v%10 + '0')
	}
	return b.String(), nil
}
