// Package aead implements password-based authenticated encryption for
// vault payloads: scrypt (encryption preset) stretches the password into
// an AES-256-GCM key, and the salt, IV and ciphertext travel together as
// a hex-encoded payload.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/quantumpurse/keyvault-go/internal/kdf"
	"github.com/quantumpurse/keyvault-go/internal/securemem"
)

const (
	// SaltLen is the scrypt salt length in bytes (128-bit).
	SaltLen = 16
	// IVLen is the AES-GCM nonce length in bytes (96-bit).
	IVLen = 12
	// TagLen is the AES-GCM authentication tag length in bytes.
	TagLen = 16
)

var (
	// ErrAuthFailed is returned on any GCM open failure. Wrong password
	// and corrupted ciphertext are deliberately indistinguishable.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrEncoding is returned when a stored payload field is not valid
	// hex. It indicates corruption of data at rest, not a bad password.
	ErrEncoding = errors.New("payload encoding invalid")
)

// Payload is an encrypted secret at rest. All fields are hex-encoded;
// CipherText includes the trailing GCM authentication tag.
type Payload struct {
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
	CipherText string `json:"cipher_text"`
}

// Encrypt seals plaintext under a password-derived key. Salt and IV are
// drawn fresh from crypto/rand on every call and never reused. Wiping
// the password and plaintext afterwards is the caller's responsibility.
func Encrypt(password, plaintext []byte) (Payload, error) {
	random, err := securemem.Random(SaltLen + IVLen)
	if err != nil {
		return Payload{}, err
	}
	defer random.Wipe()
	salt := random.Bytes()[:SaltLen]
	iv := random.Bytes()[SaltLen:]

	key, err := kdf.Derive(password, salt, kdf.Encryption)
	if err != nil {
		return Payload{}, err
	}
	defer key.Wipe()

	gcm, err := newGCM(key.Bytes())
	if err != nil {
		return Payload{}, err
	}
	cipherText := gcm.Seal(nil, iv, plaintext, nil)

	return Payload{
		Salt:       hex.EncodeToString(salt),
		IV:         hex.EncodeToString(iv),
		CipherText: hex.EncodeToString(cipherText),
	}, nil
}

// Decrypt opens a payload with a password-derived key. The key is
// re-derived from the stored salt, so the same password always unlocks
// the same payload.
func Decrypt(password []byte, p Payload) (*securemem.Buffer, error) {
	salt, err := hex.DecodeString(p.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: salt", ErrEncoding)
	}
	iv, err := hex.DecodeString(p.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: iv", ErrEncoding)
	}
	cipherText, err := hex.DecodeString(p.CipherText)
	if err != nil {
		return nil, fmt.Errorf("%w: cipher_text", ErrEncoding)
	}
	if len(salt) != SaltLen || len(iv) != IVLen || len(cipherText) < TagLen {
		return nil, fmt.Errorf("%w: field length", ErrEncoding)
	}

	key, err := kdf.Derive(password, salt, kdf.Encryption)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	gcm, err := newGCM(key.Bytes())
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, iv, cipherText, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}

	out := securemem.FromBytes(plaintext)
	securemem.Zero(plaintext)
	return out, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
