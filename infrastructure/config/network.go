package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/domain/netconfig"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet               bool   `long:"testnet" description:"Use the test network"`
	OverrideNetParamsFile string `long:"override-net-params-file" description:"Overrides network params from a JSON file"`

	ActiveNetParams *netconfig.Params
}

type overrideNetParamsConfig struct {
	MinFeeRate                *uint64 `json:"minFeeRate"`
	DefaultIndexerURL         *string `json:"defaultIndexerURL"`
	Secp256k1CellDepTxHash    *string `json:"secp256k1CellDepTxHash"`
	AnyoneCanPayCodeHash      *string `json:"anyoneCanPayCodeHash"`
	AnyoneCanPayCellDepTxHash *string `json:"anyoneCanPayCellDepTxHash"`
}

// ResolveNetwork parses the network command line argument and sets ActiveNetParams accordingly.
// The default network is mainnet.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	params := netconfig.MainnetParams
	if networkFlags.Testnet {
		params = netconfig.TestnetParams
	}
	// The selected params are a copy, so overrides don't leak into the
	// registered networks.
	networkFlags.ActiveNetParams = &params

	err := networkFlags.overrideNetParams()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if parser != nil {
			parser.WriteHelp(os.Stderr)
		}
		return err
	}
	return nil
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *netconfig.Params {
	return networkFlags.ActiveNetParams
}

func (networkFlags *NetworkFlags) overrideNetParams() error {
	if networkFlags.OverrideNetParamsFile == "" {
		return nil
	}

	overrideNetParamsFile, err := os.Open(networkFlags.OverrideNetParamsFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer overrideNetParamsFile.Close()

	decoder := json.NewDecoder(overrideNetParamsFile)
	decoder.DisallowUnknownFields()
	config := &overrideNetParamsConfig{}
	err = decoder.Decode(config)
	if err != nil {
		return errors.Wrapf(err, "error parsing %s", networkFlags.OverrideNetParamsFile)
	}

	params := networkFlags.ActiveNetParams
	if config.MinFeeRate != nil {
		params.MinFeeRate = *config.MinFeeRate
	}

	if config.DefaultIndexerURL != nil {
		params.DefaultIndexerURL = *config.DefaultIndexerURL
	}

	hashOverrides := []struct {
		value  *string
		target *cellmodel.Hash
	}{
		{config.Secp256k1CellDepTxHash, &params.Secp256k1Lock.CellDep.OutPoint.TxHash},
		{config.AnyoneCanPayCodeHash, &params.AnyoneCanPayLock.CodeHash},
		{config.AnyoneCanPayCellDepTxHash, &params.AnyoneCanPayLock.CellDep.OutPoint.TxHash},
	}
	for _, override := range hashOverrides {
		if override.value == nil {
			continue
		}
		hash, err := cellmodel.NewHashFromString(*override.value)
		if err != nil {
			return err
		}
		*override.target = *hash
	}

	return nil
}
