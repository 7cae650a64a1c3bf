package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// GetSigned reads a cookie written by SetSigned, verifying its
// HMAC-SHA256 signature. Tampered or malformed values return
// ErrBadSig.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	// Wire format: base64(value).base64(signature)
	encodedValue, encodedSig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrBadSig
	}

	value, err := base64.RawURLEncoding.DecodeString(encodedValue)
	if err != nil {
		return "", ErrBadSig
	}
	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return "", ErrBadSig
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write(value)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", ErrBadSig
	}

	return string(value), nil
}

// SetSigned writes a cookie whose value carries an HMAC-SHA256
// signature.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(value))

	encoded := base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	http.SetCookie(w, m.bake(name, encoded, maxAge))
	return nil
}

// GetEncrypted reads a cookie written by SetEncrypted. Corrupted or
// tampered values return ErrDecrypt.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrDecrypt
	}

	plaintext, err := m.open(data)
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}

// SetEncrypted writes an AES-256-GCM encrypted cookie.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}

	ciphertext, err := m.seal([]byte(value))
	if err != nil {
		return err
	}

	http.SetCookie(w, m.bake(name, base64.RawURLEncoding.EncodeToString(ciphertext), maxAge))
	return nil
}

// Flash reads and deletes a single-use encrypted value, decoding it
// into dest.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	if m.secret == nil {
		return ErrNoSecret
	}

	name := "flash_" + key
	raw, err := m.GetEncrypted(r, name)
	if err != nil {
		return err
	}

	m.Delete(w, name)

	return json.Unmarshal([]byte(raw), dest)
}

// SetFlash stores a single-use encrypted value for the next request.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	if m.secret == nil {
		return ErrNoSecret
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return m.SetEncrypted(w, "flash_"+key, string(data), 0)
}

func (m *Manager) gcm() (cipher.AEAD, error) {
	// The AES key is always the SHA-256 digest of the secret, so any
	// 32+ byte secret works.
	key := sha256.Sum256(m.secret)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (m *Manager) seal(plaintext []byte) ([]byte, error) {
	aead, err := m.gcm()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (m *Manager) open(ciphertext []byte) ([]byte, error) {
	aead, err := m.gcm()
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < aead.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:aead.NonceSize()]
	return aead.Open(nil, nonce, ciphertext[aead.NonceSize():], nil)
}
