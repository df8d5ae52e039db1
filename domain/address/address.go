package address

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/domain/netconfig"
	"github.com/pkg/errors"
)

// Short address payloads are: formatShort | codeHashIndex | args.
const (
	formatShort = 0x01

	codeHashIndexSecp256k1    = 0x00
	codeHashIndexAnyoneCanPay = 0x02

	// ArgsSize is the size of the lock args a short address carries: a
	// blake160 public key hash.
	ArgsSize = 20
)

// ErrUnsupportedFormat is returned for well formed addresses of a format
// this package doesn't handle.
var ErrUnsupportedFormat = errors.New("unsupported address format")

// Address is a human readable name of a lock script on a specific network.
type Address struct {
	params *netconfig.Params
	lock   *cellmodel.Script
}

// New returns the address of lock on the network described by params. Only
// secp256k1 and anyone-can-pay locks with ArgsSize args have an address.
func New(params *netconfig.Params, lock *cellmodel.Script) (*Address, error) {
	if _, err := codeHashIndex(params, lock); err != nil {
		return nil, err
	}
	if len(lock.Args) != ArgsSize {
		return nil, errors.Errorf("lock args have %d bytes, short addresses hold %d", len(lock.Args), ArgsSize)
	}
	return &Address{params: params, lock: lock.Clone()}, nil
}

func codeHashIndex(params *netconfig.Params, lock *cellmodel.Script) (byte, error) {
	switch {
	case params.Secp256k1Lock.Matches(lock):
		return codeHashIndexSecp256k1, nil
	case params.AnyoneCanPayLock.Matches(lock):
		return codeHashIndexAnyoneCanPay, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedFormat, "lock %s is not a known lock of %s", lock, params.Name)
	}
}

// Decode parses an address of any registered network.
func Decode(encoded string) (*Address, error) {
	prefix, payload, err := decodePayload(encoded)
	if err != nil {
		return nil, err
	}
	params, err := netconfig.ParamsByPrefix(prefix)
	if err != nil {
		return nil, err
	}
	return fromPayload(params, payload)
}

// DecodeForNetwork parses an address and verifies it belongs to the network
// described by params.
func DecodeForNetwork(encoded string, params *netconfig.Params) (*Address, error) {
	prefix, payload, err := decodePayload(encoded)
	if err != nil {
		return nil, err
	}
	if prefix != params.AddressPrefix {
		return nil, errors.Errorf("address %s has prefix %q, expected %q for %s",
			encoded, prefix, params.AddressPrefix, params.Name)
	}
	return fromPayload(params, payload)
}

func decodePayload(encoded string) (string, []byte, error) {
	prefix, data, err := bech32.Decode(encoded)
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to decode address %s", encoded)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to decode address %s", encoded)
	}
	return prefix, payload, nil
}

func fromPayload(params *netconfig.Params, payload []byte) (*Address, error) {
	if len(payload) == 0 {
		return nil, errors.New("empty address payload")
	}
	if payload[0] != formatShort {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "format type 0x%02x", payload[0])
	}
	if len(payload) != 2+ArgsSize {
		return nil, errors.Errorf("short address payload has %d bytes, expected %d", len(payload), 2+ArgsSize)
	}

	args := payload[2:]
	var lock *cellmodel.Script
	switch payload[1] {
	case codeHashIndexSecp256k1:
		lock = params.Secp256k1Lock.Script(args)
	case codeHashIndexAnyoneCanPay:
		lock = params.AnyoneCanPayLock.Script(args)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "code hash index 0x%02x", payload[1])
	}
	return &Address{params: params, lock: lock}, nil
}

// String returns the bech32 encoding of the address.
func (address *Address) String() string {
	index, err := codeHashIndex(address.params, address.lock)
	if err != nil {
		// New and the decoders only create addresses of known locks
		panic(err)
	}
	payload := make([]byte, 0, 2+len(address.lock.Args))
	payload = append(payload, formatShort, index)
	payload = append(payload, address.lock.Args...)

	converted, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		panic(err)
	}
	encoded, err := bech32.Encode(address.params.AddressPrefix, converted)
	if err != nil {
		panic(err)
	}
	return encoded
}

// ToLockScript returns the lock script the address stands for.
func (address *Address) ToLockScript() *cellmodel.Script {
	return address.lock.Clone()
}

// Params returns the network the address belongs to.
func (address *Address) Params() *netconfig.Params {
	return address.params
}

// IsAnyoneCanPay returns whether the address locks cells with the
// anyone-can-pay lock, which accepts deposits of any size.
func (address *Address) IsAnyoneCanPay() bool {
	return address.params.AnyoneCanPayLock.Matches(address.lock)
}
