package cellmodel

import (
	"bytes"
	"fmt"
)

// HashType describes how a script's CodeHash is matched against cell deps.
type HashType byte

// The HashType values a script can carry.
const (
	HashTypeData HashType = iota
	HashTypeType
	HashTypeData1
)

func (hashType HashType) String() string {
	switch hashType {
	case HashTypeData:
		return "data"
	case HashTypeType:
		return "type"
	case HashTypeData1:
		return "data1"
	default:
		return fmt.Sprintf("unknown(%d)", byte(hashType))
	}
}

// Script is a spending condition (lock) or type constraint attached to a
// cell.
type Script struct {
	CodeHash Hash
	HashType HashType
	Args     []byte
}

// NewScript returns a new Script. args is copied.
func NewScript(codeHash Hash, hashType HashType, args []byte) *Script {
	return &Script{
		CodeHash: codeHash,
		HashType: hashType,
		Args:     append([]byte(nil), args...),
	}
}

// Equal returns whether script and other describe the same condition.
// A nil script is equal only to another nil script.
func (script *Script) Equal(other *Script) bool {
	if script == nil || other == nil {
		return script == other
	}
	return script.CodeHash == other.CodeHash &&
		script.HashType == other.HashType &&
		bytes.Equal(script.Args, other.Args)
}

// Clone returns a deep copy of the script.
func (script *Script) Clone() *Script {
	if script == nil {
		return nil
	}
	return NewScript(script.CodeHash, script.HashType, script.Args)
}

func (script *Script) String() string {
	return fmt.Sprintf("{code_hash: %s, hash_type: %s, args: 0x%x}", script.CodeHash, script.HashType, script.Args)
}
