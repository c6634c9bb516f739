// Package auth provides password hashing and verification.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Scheme names a password hashing scheme.
type Scheme string

// Supported schemes.
//
// SchemeSHA256 is an unsalted single-round digest. It matches the format of
// existing account data and stays the default; SchemeArgon2id is the salted,
// memory-hard alternative and must be opted into.
const (
	SchemeSHA256   Scheme = "sha256"
	SchemeArgon2id Scheme = "argon2id"
)

// Argon2id parameters (OWASP 2024 recommended minimum).
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

var (
	// ErrInvalidHash indicates the hash format is invalid.
	ErrInvalidHash = errors.New("invalid hash format")
	// ErrIncompatibleVersion indicates the hash version is not supported.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
	// ErrUnknownScheme indicates an unsupported hashing scheme name.
	ErrUnknownScheme = errors.New("unknown password hash scheme")
)

// ParseScheme converts a configuration value to a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(name))) {
	case "", SchemeSHA256:
		return SchemeSHA256, nil
	case SchemeArgon2id:
		return SchemeArgon2id, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}

// Hasher hashes new passwords with one scheme and verifies stored hashes of
// any supported scheme.
type Hasher struct {
	scheme Scheme
}

// NewHasher creates a Hasher that produces hashes with the given scheme.
func NewHasher(scheme Scheme) (*Hasher, error) {
	if scheme != SchemeSHA256 && scheme != SchemeArgon2id {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	return &Hasher{scheme: scheme}, nil
}

// Scheme returns the scheme used for new hashes.
func (h *Hasher) Scheme() Scheme {
	return h.scheme
}

// Hash returns the encoded hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	if h.scheme == SchemeArgon2id {
		return HashArgon2id(password)
	}
	return HashSHA256(password), nil
}

// Verify checks password against an encoded hash. The scheme is detected from
// the encoding, so accounts created under either scheme keep working.
func (h *Hasher) Verify(password, encodedHash string) (bool, error) {
	if strings.HasPrefix(encodedHash, "$argon2id$") {
		return VerifyArgon2id(password, encodedHash)
	}
	return VerifySHA256(password, encodedHash)
}

// HashSHA256 returns the lowercase hex SHA-256 digest of password.
func HashSHA256(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifySHA256 compares password against a hex SHA-256 digest in constant time.
func VerifySHA256(password, encodedHash string) (bool, error) {
	if len(encodedHash) != sha256.Size*2 {
		return false, ErrInvalidHash
	}
	if _, err := hex.DecodeString(encodedHash); err != nil {
		return false, ErrInvalidHash
	}

	computed := HashSHA256(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToLower(encodedHash))) == 1, nil
}

// HashArgon2id creates an Argon2id hash of the given password.
// Returns the hash in PHC string format.
func HashArgon2id(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		argon2Time,
		argon2Memory,
		argon2Threads,
		argon2KeyLen,
	)

	// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyArgon2id checks if the password matches a PHC-encoded Argon2id hash.
func VerifyArgon2id(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, ErrInvalidHash
	}

	if parts[1] != "argon2id" {
		return false, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrInvalidHash
	}
	if version != argon2.Version {
		return false, ErrIncompatibleVersion
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrInvalidHash
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrInvalidHash
	}

	computedHash := argon2.IDKey(
		[]byte(password),
		salt,
		iterations,
		memory,
		threads,
		uint32(len(expectedHash)),
	)

	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1, nil
}
