package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
)

// ErrInvalidHash is returned when a stored password hash is structurally
// corrupt or uses an unsupported format.
var ErrInvalidHash = errors.New("invalid argon2id hash format")

const argon2Version = 19 // argon2.Version (0x13)

// Argon2idParams defines the Argon2id cost parameters used for new hashes.
type Argon2idParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2idParams returns the cost parameters for new password hashes.
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{
		MemoryKiB:   64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// HashPassword hashes a password with Argon2id and returns a PHC-style
// encoded string: $argon2id$v=19$m=<mem>,t=<iter>,p=<par>$<salt>$<key>.
// The plaintext is never retained or logged.
func HashPassword(password string) (string, error) {
	return hashPasswordWithParams(password, DefaultArgon2idParams())
}

func hashPasswordWithParams(password string, p Argon2idParams) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", apperrors.Internal(fmt.Errorf("generate salt: %w", err))
	}

	key := argon2.IDKey([]byte(password), salt, p.Iterations, p.MemoryKiB, p.Parallelism, p.KeyLength)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Version,
		p.MemoryKiB,
		p.Iterations,
		p.Parallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	), nil
}

// CheckPassword verifies a password against a stored PHC-encoded hash.
// A non-matching password returns (false, nil); an error is returned only
// when the stored hash itself is corrupt, classified as internal.
// The comparison is constant-time over the derived keys.
func CheckPassword(password, encodedHash string) (bool, error) {
	params, salt, expected, err := decodeHash(encodedHash)
	if err != nil {
		return false, apperrors.Internal(err)
	}

	key := argon2.IDKey([]byte(password), salt, params.Iterations, params.MemoryKiB, params.Parallelism, uint32(len(expected)))

	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

// decodeHash parses a PHC-encoded Argon2id hash into its parameters, salt,
// and expected key. Bounds on the decoded parameters keep attacker-supplied
// hash strings from driving pathological memory use during verification.
func decodeHash(encoded string) (Argon2idParams, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}

	if parts[2] != fmt.Sprintf("v=%d", argon2Version) {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}

	var mem, iter, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iter, &par); err != nil {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}
	limits := DefaultArgon2idParams()
	if mem == 0 || mem > limits.MemoryKiB*2 || iter == 0 || iter > limits.Iterations*4 || par == 0 || par > 16 {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}
	if len(salt) < 8 || len(salt) > 64 || len(key) < 16 || len(key) > 128 {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}

	return Argon2idParams{
		MemoryKiB:   mem,
		Iterations:  iter,
		Parallelism: uint8(par),
		SaltLength:  uint32(len(salt)),
		KeyLength:   uint32(len(key)),
	}, salt, key, nil
}
