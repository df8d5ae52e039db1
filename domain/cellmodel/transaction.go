package cellmodel

import (
	"github.com/kaspanet/cellwallet/util"
	"github.com/pkg/errors"
)

// TransactionVersion is the only transaction version the ledger accepts.
const TransactionVersion = 0

// SinceNone is the "since" value of an input that has no relative or
// absolute lock time.
const SinceNone = 0

// RawTransaction is a transaction without its witnesses. Inputs are the
// live cells being consumed; Outputs are the cells being created.
type RawTransaction struct {
	Version    uint32
	CellDeps   []*CellDep
	HeaderDeps []Hash
	Inputs     []*Cell
	Outputs    []*Cell
}

// NewRawTransaction returns a raw transaction consuming inputs and creating
// outputs. The slices are copied, the cells themselves are shared.
func NewRawTransaction(cellDeps []*CellDep, inputs []*Cell, outputs []*Cell) *RawTransaction {
	return &RawTransaction{
		Version:  TransactionVersion,
		CellDeps: append([]*CellDep(nil), cellDeps...),
		Inputs:   append([]*Cell(nil), inputs...),
		Outputs:  append([]*Cell(nil), outputs...),
	}
}

// OutputsData returns the data of every output, in output order.
func (raw *RawTransaction) OutputsData() [][]byte {
	outputsData := make([][]byte, len(raw.Outputs))
	for i, output := range raw.Outputs {
		outputsData[i] = output.Data
	}
	return outputsData
}

// InputCapacity returns the total capacity consumed by the transaction.
func (raw *RawTransaction) InputCapacity() util.Amount {
	return SumCapacity(raw.Inputs)
}

// OutputCapacity returns the total capacity created by the transaction.
func (raw *RawTransaction) OutputCapacity() util.Amount {
	return SumCapacity(raw.Outputs)
}

// Transaction is a RawTransaction together with its witnesses, one per
// expected signature.
type Transaction struct {
	Raw       *RawTransaction
	Witnesses [][]byte
}

// NewTransaction returns a transaction with the given witnesses.
func NewTransaction(raw *RawTransaction, witnesses [][]byte) *Transaction {
	return &Transaction{
		Raw:       raw,
		Witnesses: append([][]byte(nil), witnesses...),
	}
}

// ReplaceOutput returns a new transaction identical to tx except for the
// output at index, which is replaced by output. tx is left untouched.
func (tx *Transaction) ReplaceOutput(index int, output *Cell) (*Transaction, error) {
	if index < 0 || index >= len(tx.Raw.Outputs) {
		return nil, errors.Errorf("output index %d is out of range, transaction has %d outputs",
			index, len(tx.Raw.Outputs))
	}
	outputs := append([]*Cell(nil), tx.Raw.Outputs...)
	outputs[index] = output

	raw := *tx.Raw
	raw.Outputs = outputs
	return NewTransaction(&raw, tx.Witnesses), nil
}

// Fee returns the capacity consumed by the transaction and not paid to any
// output.
func (tx *Transaction) Fee() (util.Amount, error) {
	inputCapacity := tx.Raw.InputCapacity()
	outputCapacity := tx.Raw.OutputCapacity()
	if inputCapacity.Lt(outputCapacity) {
		return util.AmountZero, errors.Errorf("transaction outputs (%s) exceed its inputs (%s)",
			outputCapacity.FormatCKB(), inputCapacity.FormatCKB())
	}
	return inputCapacity.Sub(outputCapacity), nil
}
