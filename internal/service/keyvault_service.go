package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// ErrIntegrity is returned when a ciphertext fails authentication: tampered
// bytes, truncation, or a wrong vault key. Callers must treat it as fatal for
// the operation, never fall back to the raw bytes.
var ErrIntegrity = errors.New("vault: ciphertext integrity check failed")

// AESKeyVault implements ports.KeyVault using AES-256-GCM. Signing keys are
// stored as hex(nonce || ciphertext || tag); plaintext key material only
// exists inside the scope of a Decrypt call.
type AESKeyVault struct {
	key []byte // 32-byte key for AES-256
}

// NewAESKeyVault creates a vault from a 64-character hex key (32 bytes decoded).
func NewAESKeyVault(hexKey string) (*AESKeyVault, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding vault key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("vault key must be 32 bytes, got %d", len(key))
	}
	return &AESKeyVault{key: key}, nil
}

// Encrypt seals plaintext and returns hex-encoded nonce + ciphertext.
func (v *AESKeyVault) Encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(v.key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("creating GCM: %w", err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	ciphertext := aesGCM.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(ciphertext), nil
}

// Decrypt opens a hex-encoded ciphertext. Any authentication failure is
// reported as ErrIntegrity.
func (v *AESKeyVault) Decrypt(ciphertextHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return nil, fmt.Errorf("decoding ciphertext: %w", err)
	}

	block, err := aes.NewCipher(v.key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrIntegrity
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrIntegrity
	}

	return plaintext, nil
}
