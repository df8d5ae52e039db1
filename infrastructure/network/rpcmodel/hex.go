package rpcmodel

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Uint64 is a quantity encoded as a 0x prefixed hex string, e.g. "0x3e8".
type Uint64 uint64

// MarshalText implements encoding.TextMarshaler.
func (u Uint64) MarshalText() ([]byte, error) {
	return []byte("0x" + strconv.FormatUint(uint64(u), 16)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Uint64) UnmarshalText(text []byte) error {
	s := string(text)
	if !strings.HasPrefix(s, "0x") {
		return errors.Errorf("quantity %q lacks the 0x prefix", s)
	}
	value, err := strconv.ParseUint(s[2:], 16, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid quantity %q", s)
	}
	*u = Uint64(value)
	return nil
}

// Uint32 is Uint64 for 32 bit quantities such as out point indexes.
type Uint32 uint32

// MarshalText implements encoding.TextMarshaler.
func (u Uint32) MarshalText() ([]byte, error) {
	return Uint64(u).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Uint32) UnmarshalText(text []byte) error {
	var value Uint64
	if err := value.UnmarshalText(text); err != nil {
		return err
	}
	if value > Uint64(^uint32(0)) {
		return errors.Errorf("quantity %s overflows 32 bits", text)
	}
	*u = Uint32(value)
	return nil
}

// Bytes is a byte string encoded as 0x prefixed hex, e.g. "0x" for none.
type Bytes []byte

// MarshalText implements encoding.TextMarshaler.
func (b Bytes) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(b)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes) UnmarshalText(text []byte) error {
	s := string(text)
	if !strings.HasPrefix(s, "0x") {
		return errors.Errorf("bytes %q lack the 0x prefix", s)
	}
	decoded, err := hex.DecodeString(s[2:])
	if err != nil {
		return errors.Wrapf(err, "invalid bytes %q", s)
	}
	*b = decoded
	return nil
}
