// Package crypto, hassas alanların (banka hesap numaraları) veritabanında
// şifreli saklanması için AES-256-GCM sarmalayıcısı sağlar.
//
// Şifreli değer base64(nonce || ciphertext || tag) biçimindedir. Her
// şifrelemede rastgele 12-byte nonce üretilir; aynı plaintext iki kez
// şifrelendiğinde farklı çıktılar oluşur.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// ErrDecrypt, yanlış anahtar veya bozulmuş veri durumunda döner.
var ErrDecrypt = errors.New("decryption failed")

// ParseKey, 64 hex karakterlik ENCRYPTION_KEY değerini 32-byte anahtara çevirir.
func ParseKey(hexKey string) ([]byte, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid hex key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be exactly 32 bytes (64 hex chars), got %d bytes", len(key))
	}
	return key, nil
}

// FieldCipher, tek bir anahtarla alan şifreleyen AEAD sarmalayıcı.
// Oluşturulduktan sonra değişmez, eşzamanlı kullanım güvenlidir.
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher, 32-byte anahtardan FieldCipher oluşturur.
func NewFieldCipher(key []byte) (*FieldCipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}

	return &FieldCipher{aead: aead}, nil
}

// Encrypt, plaintext'i şifreler ve base64 string döner.
func (c *FieldCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("nonce generation: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt, Encrypt çıktısını çözer.
func (c *FieldCipher) Decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode: %v", ErrDecrypt, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	return string(plaintext), nil
}
