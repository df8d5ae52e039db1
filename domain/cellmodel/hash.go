package cellmodel

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// HashSize is the size of a Hash in bytes.
const HashSize = 32

// Hash is a 32 byte hash, such as a transaction hash or a script code hash.
type Hash [HashSize]byte

// NewHashFromString parses a hex encoded hash, with or without a 0x prefix.
func NewHashFromString(s string) (*Hash, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hash %q", s)
	}
	if len(decoded) != HashSize {
		return nil, errors.Errorf("invalid hash length of %d, expected %d", len(decoded), HashSize)
	}
	var hash Hash
	copy(hash[:], decoded)
	return &hash, nil
}

// MustHashFromString is NewHashFromString for compile-time constants. It
// panics on invalid input.
func MustHashFromString(s string) Hash {
	hash, err := NewHashFromString(s)
	if err != nil {
		panic(err)
	}
	return *hash
}

// String returns the hash as 0x prefixed hex.
func (hash Hash) String() string {
	return "0x" + hex.EncodeToString(hash[:])
}
