package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters for operator passwords. Changing these does
// not invalidate stored hashes: Verify reads the costs back out of the
// encoded string.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // KiB, so 64MB
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

// Argon2HashService implements ports.HashService using Argon2id.
type Argon2HashService struct{}

func NewArgon2HashService() *Argon2HashService {
	return &Argon2HashService{}
}

// Hash derives an Argon2id hash of password under a fresh random salt,
// encoded as $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>.
func (s *Argon2HashService) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	sum := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Verify reports whether password matches encodedHash. The comparison
// is constant-time over the derived keys.
func (s *Argon2HashService) Verify(password string, encodedHash string) (bool, error) {
	salt, want, costs, err := parseArgon2(encodedHash)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey([]byte(password), salt, costs.time, costs.memory, costs.threads, costs.keyLen)

	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

type argon2Costs struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

// parseArgon2 splits an encoded hash into its salt, digest, and the
// cost parameters it was derived with.
func parseArgon2(encodedHash string) ([]byte, []byte, argon2Costs, error) {
	var costs argon2Costs

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, costs, fmt.Errorf("invalid hash format: expected 6 parts, got %d", len(parts))
	}
	if parts[1] != "argon2id" {
		return nil, nil, costs, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, costs, fmt.Errorf("parsing version: %w", err)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &costs.memory, &costs.time, &costs.threads); err != nil {
		return nil, nil, costs, fmt.Errorf("parsing params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, costs, fmt.Errorf("decoding salt: %w", err)
	}
	sum, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, costs, fmt.Errorf("decoding hash: %w", err)
	}
	costs.keyLen = uint32(len(sum))

	return salt, sum, costs, nil
}
