// Package cryptox turns the configured session passphrase into signing key
// material.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// SessionKeySalt binds derived keys to the session credential use.
var SessionKeySalt = []byte("fleetcheck/session/v1")

// DeriveSigningKey stretches passphrase into a 32-byte key with Argon2id.
func DeriveSigningKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// KeyID is a short fingerprint of key, safe to log.
func KeyID(key []byte) string {
	hash := sha256.Sum256(key)
	return hex.EncodeToString(hash[:4])
}
