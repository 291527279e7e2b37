package visitors

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hasher turns client addresses into stable, salted identifiers. The same
// address hashes the same way for the lifetime of one salt.
type Hasher struct {
	salt string
}

func NewHasher(salt string) *Hasher {
	return &Hasher{salt: salt}
}

// RandomHasher uses a fresh salt, so hashes do not survive a restart.
func RandomHasher() (*Hasher, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}
	return &Hasher{salt: hex.EncodeToString(b)}, nil
}

// Hash returns the first 16 hex characters of sha256(ip + salt).
func (h *Hasher) Hash(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])[:16]
}
