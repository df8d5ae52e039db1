package address

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/domain/netconfig"
	"github.com/pkg/errors"
)

func mustDecodeHex(t *testing.T, s string) []byte {
	decoded, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("DecodeString: %+v", err)
	}
	return decoded
}

func TestDecodeShortSecp256k1Address(t *testing.T) {
	const encoded = "ckb1qyqt8xaupvm8837nv3gtc9x0ekkj64vud3jqfwyw5v"
	args := mustDecodeHex(t, "b39bbc0b3673c7d36450bc14cfcdad2d559c6c64")

	address, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %+v", err)
	}
	if address.Params() != &netconfig.MainnetParams {
		t.Fatalf("Decode: got network %s, want mainnet", address.Params().Name)
	}
	lock := address.ToLockScript()
	if !netconfig.MainnetParams.Secp256k1Lock.Matches(lock) {
		t.Fatalf("Decode: unexpected lock %s", lock)
	}
	if !bytes.Equal(lock.Args, args) {
		t.Fatalf("Decode: got args %x, want %x", lock.Args, args)
	}
	if address.IsAnyoneCanPay() {
		t.Fatalf("a secp256k1 address reports anyone-can-pay")
	}
	if address.String() != encoded {
		t.Fatalf("String: got %s, want %s", address.String(), encoded)
	}
}

func TestAddressRoundTrip(t *testing.T) {
	args := bytes.Repeat([]byte{0x5a}, ArgsSize)
	for _, params := range []*netconfig.Params{&netconfig.MainnetParams, &netconfig.TestnetParams} {
		for _, lockConfig := range []*netconfig.LockScriptConfig{&params.Secp256k1Lock, &params.AnyoneCanPayLock} {
			address, err := New(params, lockConfig.Script(args))
			if err != nil {
				t.Fatalf("New: %+v", err)
			}
			decoded, err := DecodeForNetwork(address.String(), params)
			if err != nil {
				t.Fatalf("DecodeForNetwork: %+v", err)
			}
			if !decoded.ToLockScript().Equal(lockConfig.Script(args)) {
				t.Fatalf("lock changed in a round trip: %s", decoded.ToLockScript())
			}
			if decoded.IsAnyoneCanPay() != (lockConfig == &params.AnyoneCanPayLock) {
				t.Fatalf("IsAnyoneCanPay is wrong for %s", decoded)
			}
		}
	}
}

func TestDecodeForNetworkRejectsOtherNetworks(t *testing.T) {
	address, err := New(&netconfig.TestnetParams, netconfig.TestnetParams.Secp256k1Lock.Script(make([]byte, ArgsSize)))
	if err != nil {
		t.Fatalf("New: %+v", err)
	}
	if _, err := DecodeForNetwork(address.String(), &netconfig.MainnetParams); err == nil {
		t.Fatalf("DecodeForNetwork accepted a testnet address on mainnet")
	}
}

func TestNewRejectsUnknownLocks(t *testing.T) {
	unknown := cellmodel.NewScript(cellmodel.Hash{1}, cellmodel.HashTypeData, make([]byte, ArgsSize))
	if _, err := New(&netconfig.MainnetParams, unknown); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("New: expected ErrUnsupportedFormat, got %v", err)
	}

	shortArgs := netconfig.MainnetParams.Secp256k1Lock.Script(make([]byte, ArgsSize-1))
	if _, err := New(&netconfig.MainnetParams, shortArgs); err == nil {
		t.Fatalf("New accepted args of %d bytes", len(shortArgs.Args))
	}
}

func TestDecodeRejectsInvalidAddresses(t *testing.T) {
	invalid := []string{
		"",
		"ckb1qyqt8xaupvm8837nv3gtc9x0ekkj64vud3jqfwyw5w", // bad checksum
		"xyz1qyqt8xaupvm8837nv3gtc9x0ekkj64vud3jqfwyw5v", // unknown prefix
		"not an address",
	}
	for _, encoded := range invalid {
		if _, err := Decode(encoded); err == nil {
			t.Errorf("Decode(%q) unexpectedly succeeded", encoded)
		}
	}
}
