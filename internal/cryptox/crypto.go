// Package cryptox seals secrets at rest. Keys are derived with argon2id
// and payloads are encrypted with AES-GCM.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/argon2"
)

const nonceSize = 12

var ErrMalformedSealed = errors.New("malformed sealed value")

// DeriveKey stretches secret into a 32-byte AES-256 key.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// Encrypt encrypts plaintext using AES-GCM with a fresh random 12-byte nonce.
//
// The key must be a valid AES key length (16, 24, or 32 bytes).
func Encrypt(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	return aesgcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Decrypt reverses Encrypt. It fails when the key or nonce differ from the
// ones used for encryption or when the ciphertext was tampered with.
func Decrypt(ciphertext, nonce, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Sealer encrypts short strings into a single printable token
// (base64 of nonce followed by ciphertext).
type Sealer struct {
	key []byte
}

func NewSealer(secret, salt []byte) *Sealer {
	return &Sealer{key: DeriveKey(secret, salt)}
}

func (s *Sealer) Seal(plaintext string) (string, error) {
	ct, nonce, err := Encrypt([]byte(plaintext), s.key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(append(nonce, ct...)), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) <= nonceSize {
		return "", ErrMalformedSealed
	}
	pt, err := Decrypt(raw[nonceSize:], raw[:nonceSize], s.key)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}
