package netconfig

import (
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/pkg/errors"
)

// Address prefixes (bech32 human readable parts) of the known networks.
const (
	MainnetAddressPrefix = "ckb"
	TestnetAddressPrefix = "ckt"
)

// LockScriptConfig describes a lock script deployed on a network: the code
// hash scripts refer to and the cell dep transactions must carry to run it.
type LockScriptConfig struct {
	CodeHash cellmodel.Hash
	HashType cellmodel.HashType
	CellDep  cellmodel.CellDep
}

// Script returns a lock script of this kind with the given args.
func (config *LockScriptConfig) Script(args []byte) *cellmodel.Script {
	return cellmodel.NewScript(config.CodeHash, config.HashType, args)
}

// Matches returns whether script is a lock script of this kind.
func (config *LockScriptConfig) Matches(script *cellmodel.Script) bool {
	return script != nil && script.CodeHash == config.CodeHash && script.HashType == config.HashType
}

// Params defines a network by its address prefix, deployed lock scripts and
// wallet defaults.
type Params struct {
	// Name is a human-readable identifier for the network.
	Name string

	// AddressPrefix is the human readable part of the network's addresses.
	AddressPrefix string

	// Secp256k1Lock is the default single signature lock.
	Secp256k1Lock LockScriptConfig

	// AnyoneCanPayLock is the lock of cells that accept payments of any size
	// without the owner's signature.
	AnyoneCanPayLock LockScriptConfig

	// MinFeeRate is the lowest fee rate, in shannons per 1000 bytes, nodes
	// relay transactions with.
	MinFeeRate uint64

	// DefaultIndexerURL is the indexer RPC endpoint used when none is given.
	DefaultIndexerURL string
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:          "mainnet",
	AddressPrefix: MainnetAddressPrefix,
	Secp256k1Lock: LockScriptConfig{
		CodeHash: cellmodel.MustHashFromString("0x9bd7e06f3ecf4be0f2fcd2188b23f1b9fcc88e5d4b65a8637b17723bbda3cce8"),
		HashType: cellmodel.HashTypeType,
		CellDep: cellmodel.CellDep{
			OutPoint: cellmodel.OutPoint{
				TxHash: cellmodel.MustHashFromString("0x71a7ba8fc96349fea0ed3a5c47992e3b4084b031a42264a018e0072e8172e46c"),
				Index:  0,
			},
			DepType: cellmodel.DepTypeDepGroup,
		},
	},
	AnyoneCanPayLock: LockScriptConfig{
		CodeHash: cellmodel.MustHashFromString("0xd369597ff47f29fbc0d47d2e3775370d1250b85140c670e4718af712983a2354"),
		HashType: cellmodel.HashTypeType,
		CellDep: cellmodel.CellDep{
			OutPoint: cellmodel.OutPoint{
				TxHash: cellmodel.MustHashFromString("0x4153a2014952d7cac45f285ce9a7c5c0c0e1b21f2d378b82ac1433cb11c25c4d"),
				Index:  0,
			},
			DepType: cellmodel.DepTypeDepGroup,
		},
	},
	MinFeeRate:        1000,
	DefaultIndexerURL: "https://mainnet.ckb.dev/indexer",
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:          "testnet",
	AddressPrefix: TestnetAddressPrefix,
	Secp256k1Lock: LockScriptConfig{
		CodeHash: cellmodel.MustHashFromString("0x9bd7e06f3ecf4be0f2fcd2188b23f1b9fcc88e5d4b65a8637b17723bbda3cce8"),
		HashType: cellmodel.HashTypeType,
		CellDep: cellmodel.CellDep{
			OutPoint: cellmodel.OutPoint{
				TxHash: cellmodel.MustHashFromString("0xf8de3bb47d055cdf460d93a2a6e1b05f7432f9777c8c474abf4eec1d4aee5d37"),
				Index:  0,
			},
			DepType: cellmodel.DepTypeDepGroup,
		},
	},
	AnyoneCanPayLock: LockScriptConfig{
		CodeHash: cellmodel.MustHashFromString("0x3419a1c09eb2567f6552ee7a8ecffd64155cffe0f1796e6e61ec088d740c1356"),
		HashType: cellmodel.HashTypeType,
		CellDep: cellmodel.CellDep{
			OutPoint: cellmodel.OutPoint{
				TxHash: cellmodel.MustHashFromString("0xec26b0f85ed839ece5f11c4c4e837ec359f5adc4420410f6453b1f6b60fb96a6"),
				Index:  0,
			},
			DepType: cellmodel.DepTypeDepGroup,
		},
	},
	MinFeeRate:        1000,
	DefaultIndexerURL: "https://testnet.ckb.dev/indexer",
}

var registeredNets = map[string]*Params{
	MainnetParams.AddressPrefix: &MainnetParams,
	TestnetParams.AddressPrefix: &TestnetParams,
}

// ErrUnknownPrefix describes an error where the provided address prefix
// doesn't belong to any registered network.
var ErrUnknownPrefix = errors.New("unknown address prefix")

// ErrDuplicatePrefix describes an error where the parameters for a network
// could not be registered because its address prefix is already taken.
var ErrDuplicatePrefix = errors.New("duplicate address prefix")

// Register registers the network parameters of a network, so addresses
// with its prefix can be resolved with ParamsByPrefix.
func Register(params *Params) error {
	if _, ok := registeredNets[params.AddressPrefix]; ok {
		return errors.Wrapf(ErrDuplicatePrefix, "prefix %q", params.AddressPrefix)
	}
	registeredNets[params.AddressPrefix] = params
	return nil
}

// ParamsByPrefix returns the parameters of the network using prefix.
func ParamsByPrefix(prefix string) (*Params, error) {
	params, ok := registeredNets[prefix]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPrefix, "prefix %q", prefix)
	}
	return params, nil
}
