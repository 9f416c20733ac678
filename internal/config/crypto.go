// internal/config/crypto.go
package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/99designs/keyring"
)

const masterKeyName = "__master_key__"

// secretStore is the part of KeyringStore the master key needs
type secretStore interface {
	Get(key string) (string, error)
	Set(key, secret string) error
}

// GetMasterKey retrieves or generates a master key from the keyring
func GetMasterKey() ([]byte, error) {
	ks, err := NewKeyringStore()
	if err != nil {
		return nil, err
	}
	return masterKey(ks)
}

// masterKey generates a key only when the keyring has none. Any other
// failure is returned so an existing key is never overwritten.
func masterKey(ks secretStore) ([]byte, error) {
	keyHex, err := ks.Get(masterKeyName)
	switch {
	case err == nil:
		return hex.DecodeString(keyHex)
	case !errors.Is(err, keyring.ErrKeyNotFound):
		return nil, fmt.Errorf("failed to read master key: %w", err)
	}

	// Generate new key
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}

	if err := ks.Set(masterKeyName, hex.EncodeToString(key)); err != nil {
		return nil, err
	}

	return key, nil
}

// Sealer encrypts field values with a fixed key
type Sealer struct {
	key []byte
}

// NewSealer creates a Sealer backed by the keyring master key
func NewSealer() (*Sealer, error) {
	key, err := GetMasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key: %w", err)
	}
	return NewSealerWithKey(key)
}

// NewSealerWithKey creates a Sealer for a 16, 24 or 32 byte AES key
func NewSealerWithKey(key []byte) (*Sealer, error) {
	switch len(key) {
	case 16, 24, 32:
		return &Sealer{key: key}, nil
	default:
		return nil, errors.New("invalid master key length")
	}
}

// Seal encrypts plain
func (s *Sealer) Seal(plain string) (string, error) {
	return Encrypt(plain, s.key)
}

// Open decrypts a value produced by Seal
func (s *Sealer) Open(sealed string) (string, error) {
	return Decrypt(sealed, s.key)
}

// Encrypt encrypts a string using AES-GCM
func Encrypt(plainText string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	cipherText := gcm.Seal(nonce, nonce, []byte(plainText), nil)
	return hex.EncodeToString(cipherText), nil
}

// Decrypt decrypts a hex string using AES-GCM
func Decrypt(cipherTextHex string, key []byte) (string, error) {
	cipherText, err := hex.DecodeString(cipherTextHex)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(cipherText) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, actualCipherText := cipherText[:nonceSize], cipherText[nonceSize:]
	plainText, err := gcm.Open(nil, nonce, actualCipherText, nil)
	if err != nil {
		return "", err
	}

	return string(plainText), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
