package netconfig

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParamsByPrefix(t *testing.T) {
	for _, params := range []*Params{&MainnetParams, &TestnetParams} {
		found, err := ParamsByPrefix(params.AddressPrefix)
		if err != nil {
			t.Fatalf("ParamsByPrefix: %+v", err)
		}
		if found != params {
			t.Fatalf("ParamsByPrefix(%q) returned %s", params.AddressPrefix, found.Name)
		}
	}

	_, err := ParamsByPrefix("xyz")
	if !errors.Is(err, ErrUnknownPrefix) {
		t.Fatalf("ParamsByPrefix: expected ErrUnknownPrefix, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	err := Register(&Params{Name: "duplicate", AddressPrefix: MainnetAddressPrefix})
	if !errors.Is(err, ErrDuplicatePrefix) {
		t.Fatalf("Register: expected ErrDuplicatePrefix, got %v", err)
	}

	devnet := &Params{Name: "devnet", AddressPrefix: "ckd"}
	if err := Register(devnet); err != nil {
		t.Fatalf("Register: %+v", err)
	}
	found, err := ParamsByPrefix("ckd")
	if err != nil {
		t.Fatalf("ParamsByPrefix: %+v", err)
	}
	if found != devnet {
		t.Fatalf("ParamsByPrefix returned %s instead of the registered devnet", found.Name)
	}
}

func TestLockScriptConfigMatches(t *testing.T) {
	lock := MainnetParams.Secp256k1Lock.Script(make([]byte, 20))
	if !MainnetParams.Secp256k1Lock.Matches(lock) {
		t.Fatalf("a secp256k1 lock doesn't match its own config")
	}
	if MainnetParams.AnyoneCanPayLock.Matches(lock) {
		t.Fatalf("a secp256k1 lock matches the anyone-can-pay config")
	}
	if MainnetParams.Secp256k1Lock.Matches(nil) {
		t.Fatalf("a nil lock matches")
	}
}
