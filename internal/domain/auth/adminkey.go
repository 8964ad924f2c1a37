package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/go-faster/errors"
)

// KeyVerifier checks the admin key sent with back office requests. Only the
// HMAC-SHA256 of the key under a server pepper is configured.
type KeyVerifier struct {
	hash   []byte
	pepper []byte
}

// NewKeyVerifier creates a verifier for the hex encoded keyHash.
func NewKeyVerifier(keyHash string, pepper []byte) (*KeyVerifier, error) {
	hash, err := hex.DecodeString(keyHash)
	if err != nil {
		return nil, errors.Wrap(err, "decode admin key hash")
	}
	if len(hash) != sha256.Size {
		return nil, errors.Errorf("admin key hash must be %d bytes, got %d", sha256.Size, len(hash))
	}
	return &KeyVerifier{hash: hash, pepper: pepper}, nil
}

// Verify reports whether key matches in constant time.
func (v *KeyVerifier) Verify(key string) bool {
	if key == "" {
		return false
	}
	return subtle.ConstantTimeCompare(mac(key, v.pepper), v.hash) == 1
}

// HashKey returns the hex HMAC of key, the value to configure.
func HashKey(key string, pepper []byte) string {
	return hex.EncodeToString(mac(key, pepper))
}

func mac(key string, pepper []byte) []byte {
	m := hmac.New(sha256.New, pepper)
	m.Write([]byte(key))
	return m.Sum(nil)
}
