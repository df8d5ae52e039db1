package rpcmodel

import (
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/util"
	"github.com/pkg/errors"
)

// Script is the JSON representation of a cellmodel.Script.
type Script struct {
	CodeHash string `json:"code_hash"`
	HashType string `json:"hash_type"`
	Args     Bytes  `json:"args"`
}

// OutPoint is the JSON representation of a cellmodel.OutPoint.
type OutPoint struct {
	TxHash string `json:"tx_hash"`
	Index  Uint32 `json:"index"`
}

// CellDep is the JSON representation of a cellmodel.CellDep.
type CellDep struct {
	OutPoint OutPoint `json:"out_point"`
	DepType  string   `json:"dep_type"`
}

// CellInput is the JSON representation of a transaction input.
type CellInput struct {
	Since          Uint64   `json:"since"`
	PreviousOutput OutPoint `json:"previous_output"`
}

// CellOutput is the JSON representation of a cell's capacity and scripts.
type CellOutput struct {
	Capacity Uint64  `json:"capacity"`
	Lock     Script  `json:"lock"`
	Type     *Script `json:"type"`
}

// Transaction is the JSON representation of a cellmodel.Transaction, as
// accepted by a node's send_transaction.
type Transaction struct {
	Version     Uint32       `json:"version"`
	CellDeps    []CellDep    `json:"cell_deps"`
	HeaderDeps  []string     `json:"header_deps"`
	Inputs      []CellInput  `json:"inputs"`
	Outputs     []CellOutput `json:"outputs"`
	OutputsData []Bytes      `json:"outputs_data"`
	Witnesses   []Bytes      `json:"witnesses"`
}

// ScriptFromDomain converts a domain script into its JSON representation.
func ScriptFromDomain(script *cellmodel.Script) Script {
	return Script{
		CodeHash: script.CodeHash.String(),
		HashType: script.HashType.String(),
		Args:     script.Args,
	}
}

// ToDomain converts the script into a domain script.
func (script *Script) ToDomain() (*cellmodel.Script, error) {
	codeHash, err := cellmodel.NewHashFromString(script.CodeHash)
	if err != nil {
		return nil, err
	}
	var hashType cellmodel.HashType
	switch script.HashType {
	case "data":
		hashType = cellmodel.HashTypeData
	case "type":
		hashType = cellmodel.HashTypeType
	case "data1":
		hashType = cellmodel.HashTypeData1
	default:
		return nil, errors.Errorf("unknown hash type %q", script.HashType)
	}
	return cellmodel.NewScript(*codeHash, hashType, script.Args), nil
}

// OutPointFromDomain converts a domain out point into its JSON representation.
func OutPointFromDomain(outPoint *cellmodel.OutPoint) OutPoint {
	return OutPoint{
		TxHash: outPoint.TxHash.String(),
		Index:  Uint32(outPoint.Index),
	}
}

// ToDomain converts the out point into a domain out point.
func (outPoint *OutPoint) ToDomain() (*cellmodel.OutPoint, error) {
	txHash, err := cellmodel.NewHashFromString(outPoint.TxHash)
	if err != nil {
		return nil, err
	}
	return &cellmodel.OutPoint{TxHash: *txHash, Index: uint32(outPoint.Index)}, nil
}

// CellOutputFromDomain converts the output part of a cell into its JSON
// representation.
func CellOutputFromDomain(cell *cellmodel.Cell) (CellOutput, error) {
	capacity, ok := cell.Capacity.Uint64()
	if !ok {
		return CellOutput{}, errors.Errorf("cell capacity %s doesn't fit in 64 bits", cell.Capacity)
	}
	output := CellOutput{
		Capacity: Uint64(capacity),
		Lock:     ScriptFromDomain(cell.Lock),
	}
	if cell.Type != nil {
		typeScript := ScriptFromDomain(cell.Type)
		output.Type = &typeScript
	}
	return output, nil
}

// ToDomain converts the output into a domain cell without an out point.
func (output *CellOutput) ToDomain() (*cellmodel.Cell, error) {
	lock, err := output.Lock.ToDomain()
	if err != nil {
		return nil, errors.Wrap(err, "lock")
	}
	cell := cellmodel.NewCell(util.NewAmount(uint64(output.Capacity)), lock)
	if output.Type != nil {
		cell.Type, err = output.Type.ToDomain()
		if err != nil {
			return nil, errors.Wrap(err, "type")
		}
	}
	return cell, nil
}

// TransactionFromDomain converts a domain transaction into its JSON
// representation.
func TransactionFromDomain(tx *cellmodel.Transaction) (*Transaction, error) {
	rpcTransaction := &Transaction{
		Version:     Uint32(tx.Raw.Version),
		CellDeps:    make([]CellDep, len(tx.Raw.CellDeps)),
		HeaderDeps:  make([]string, len(tx.Raw.HeaderDeps)),
		Inputs:      make([]CellInput, len(tx.Raw.Inputs)),
		Outputs:     make([]CellOutput, len(tx.Raw.Outputs)),
		OutputsData: make([]Bytes, len(tx.Raw.Outputs)),
		Witnesses:   make([]Bytes, len(tx.Witnesses)),
	}
	for i, cellDep := range tx.Raw.CellDeps {
		rpcTransaction.CellDeps[i] = CellDep{
			OutPoint: OutPointFromDomain(&cellDep.OutPoint),
			DepType:  cellDep.DepType.String(),
		}
	}
	for i, headerDep := range tx.Raw.HeaderDeps {
		rpcTransaction.HeaderDeps[i] = headerDep.String()
	}
	for i, input := range tx.Raw.Inputs {
		if input.OutPoint == nil {
			return nil, errors.Errorf("input %d has no out point", i)
		}
		rpcTransaction.Inputs[i] = CellInput{
			Since:          cellmodel.SinceNone,
			PreviousOutput: OutPointFromDomain(input.OutPoint),
		}
	}
	for i, output := range tx.Raw.Outputs {
		var err error
		rpcTransaction.Outputs[i], err = CellOutputFromDomain(output)
		if err != nil {
			return nil, errors.Wrapf(err, "output %d", i)
		}
		rpcTransaction.OutputsData[i] = output.Data
		if rpcTransaction.OutputsData[i] == nil {
			rpcTransaction.OutputsData[i] = Bytes{}
		}
	}
	for i, witness := range tx.Witnesses {
		rpcTransaction.Witnesses[i] = witness
	}
	return rpcTransaction, nil
}

