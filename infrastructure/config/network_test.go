package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/domain/netconfig"
)

func TestResolveNetwork(t *testing.T) {
	networkFlags := &NetworkFlags{}
	if err := networkFlags.ResolveNetwork(nil); err != nil {
		t.Fatalf("ResolveNetwork: %+v", err)
	}
	if networkFlags.NetParams().Name != netconfig.MainnetParams.Name {
		t.Fatalf("the default network is %s, want mainnet", networkFlags.NetParams().Name)
	}

	networkFlags = &NetworkFlags{Testnet: true}
	if err := networkFlags.ResolveNetwork(nil); err != nil {
		t.Fatalf("ResolveNetwork: %+v", err)
	}
	if networkFlags.NetParams().AddressPrefix != netconfig.TestnetAddressPrefix {
		t.Fatalf("--testnet resolved to %s", networkFlags.NetParams().Name)
	}
}

func TestOverrideNetParams(t *testing.T) {
	const depTxHash = "0x1111111111111111111111111111111111111111111111111111111111111111"
	overrideFile := filepath.Join(t.TempDir(), "override.json")
	err := os.WriteFile(overrideFile, []byte(`{
		"minFeeRate": 2000,
		"defaultIndexerURL": "http://127.0.0.1:8116",
		"secp256k1CellDepTxHash": "`+depTxHash+`"
	}`), 0600)
	if err != nil {
		t.Fatalf("WriteFile: %+v", err)
	}

	networkFlags := &NetworkFlags{Testnet: true, OverrideNetParamsFile: overrideFile}
	if err := networkFlags.ResolveNetwork(nil); err != nil {
		t.Fatalf("ResolveNetwork: %+v", err)
	}
	params := networkFlags.NetParams()
	if params.MinFeeRate != 2000 || params.DefaultIndexerURL != "http://127.0.0.1:8116" {
		t.Fatalf("overrides weren't applied: %+v", params)
	}
	if params.Secp256k1Lock.CellDep.OutPoint.TxHash != cellmodel.MustHashFromString(depTxHash) {
		t.Fatalf("cell dep override wasn't applied")
	}
	if params.AnyoneCanPayLock != netconfig.TestnetParams.AnyoneCanPayLock {
		t.Fatalf("a lock without overrides was changed")
	}
	if netconfig.TestnetParams.MinFeeRate == 2000 ||
		netconfig.TestnetParams.Secp256k1Lock.CellDep.OutPoint.TxHash == params.Secp256k1Lock.CellDep.OutPoint.TxHash {
		t.Fatalf("overrides leaked into the registered testnet params")
	}
}

func TestOverrideNetParamsRejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"unknown field": `{"maxFeeRate": 1}`,
		"invalid hash":  `{"anyoneCanPayCodeHash": "0x12"}`,
		"not json":      `minFeeRate = 1`,
	}
	for name, content := range tests {
		overrideFile := filepath.Join(dir, name+".json")
		if err := os.WriteFile(overrideFile, []byte(content), 0600); err != nil {
			t.Fatalf("WriteFile: %+v", err)
		}
		networkFlags := &NetworkFlags{OverrideNetParamsFile: overrideFile}
		if err := networkFlags.ResolveNetwork(nil); err == nil {
			t.Errorf("%s: ResolveNetwork unexpectedly succeeded", name)
		}
	}

	networkFlags := &NetworkFlags{OverrideNetParamsFile: filepath.Join(dir, "missing.json")}
	if err := networkFlags.ResolveNetwork(nil); err == nil {
		t.Errorf("ResolveNetwork unexpectedly succeeded with a missing file")
	}
}
