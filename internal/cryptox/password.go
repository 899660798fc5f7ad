// Package cryptox implements the password hashing scheme used for stored
// account credentials: PBKDF2-HMAC-SHA256 with a per-password random salt,
// stored as a single base64 string.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"

	"github.com/avolkovs/securebank/internal/common"
)

const (
	// Iterations is the fixed PBKDF2 iteration count. Changing it
	// invalidates every stored hash, so treat it as part of the format.
	Iterations = 100_000

	// SaltSize is the length of the random salt in bytes.
	SaltSize = 32

	// KeySize is the length of the derived key in bytes.
	KeySize = 32
)

// HashPassword derives a key from password with a fresh random salt and
// returns base64(salt ‖ derivedKey), an opaque string suitable for storage
// inside an account record. The raw password is never stored or logged.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(SaltSize)
	key := pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New)

	combined := make([]byte, 0, SaltSize+KeySize)
	combined = append(combined, salt...)
	combined = append(combined, key...)

	return base64.StdEncoding.EncodeToString(combined)
}

// VerifyPassword reports whether password matches the stored record produced
// by HashPassword. The comparison of derived keys is constant-time.
//
// A malformed or undecodable record yields false, never an error: a bad hash
// in the store must fail the login, not crash the caller.
func VerifyPassword(password []byte, record string) bool {
	combined, err := base64.StdEncoding.DecodeString(record)
	if err != nil {
		return false
	}
	if len(combined) != SaltSize+KeySize {
		return false
	}

	salt := combined[:SaltSize]
	stored := combined[SaltSize:]

	key := pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New)

	return subtle.ConstantTimeCompare(key, stored) == 1
}
