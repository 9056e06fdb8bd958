// Package security holds the credential hasher and the token service, the
// two leaf components everything authentication-related is built on.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (OWASP-recommended).
const (
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

// fakeHash and fakePassword feed FakeVerify. The digest matches nothing; only
// the parameters matter, so the argon2 work factor is identical to a genuine
// verification.
const (
	fakeHash = "$argon2id$v=19$m=65536,t=1,p=4$" +
		"AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	fakePassword = "hunter2hunter2"
)

// PasswordHasher salts, hashes and verifies passwords.
type PasswordHasher interface {
	// Hash produces a PHC-format argon2id hash. Two calls with the same
	// password yield different strings (fresh random salt).
	Hash(password string) (string, error)
	// Verify reports whether password matches the stored hash. Malformed
	// hash strings verify as false, never as an error.
	Verify(password, hash string) bool
	// FakeVerify consumes the same CPU time as a real verification, for use
	// when no user record exists, so response timing does not reveal
	// whether a lookup found anything.
	FakeVerify()
}

// Argon2Hasher implements PasswordHasher with argon2id.
type Argon2Hasher struct{}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{}
}

// Hash hashes the password into a self-describing PHC string:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<digest>
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// Verify recomputes the digest with the parameters carried in the stored hash
// and compares in constant time.
func (h *Argon2Hasher) Verify(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if threads == 0 || threads > 255 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1
}

// FakeVerify runs a full verification against a hardcoded hash and password.
func (h *Argon2Hasher) FakeVerify() {
	h.Verify(fakePassword, fakeHash)
}
