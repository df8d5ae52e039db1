package serialization

import (
	"encoding/binary"

	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/util"
	"github.com/pkg/errors"
)

const (
	outPointSize  = cellmodel.HashSize + 4
	cellInputSize = 8 + outPointSize
	cellDepSize   = outPointSize + 1

	// transactionOffsetSize is the size of the offset a transaction occupies
	// in the transactions vector of a block.
	transactionOffsetSize = 4
)

// SerializeScript encodes a script.
func SerializeScript(script *cellmodel.Script) []byte {
	return encodeTable(
		script.CodeHash[:],
		[]byte{byte(script.HashType)},
		encodeBytes(script.Args),
	)
}

func serializeScriptOpt(script *cellmodel.Script) []byte {
	if script == nil {
		return nil
	}
	return SerializeScript(script)
}

// DeserializeScript decodes a script encoded by SerializeScript.
func DeserializeScript(buf []byte) (*cellmodel.Script, error) {
	fields, err := decodeTable(buf, 3)
	if err != nil {
		return nil, errors.Wrap(err, "script")
	}
	if len(fields[0]) != cellmodel.HashSize {
		return nil, errors.Errorf("script code hash has %d bytes", len(fields[0]))
	}
	if len(fields[1]) != 1 {
		return nil, errors.Errorf("script hash type has %d bytes", len(fields[1]))
	}
	args, err := decodeBytes(fields[2])
	if err != nil {
		return nil, errors.Wrap(err, "script args")
	}

	var codeHash cellmodel.Hash
	copy(codeHash[:], fields[0])
	return cellmodel.NewScript(codeHash, cellmodel.HashType(fields[1][0]), args), nil
}

// SerializeOutPoint encodes an out point.
func SerializeOutPoint(outPoint *cellmodel.OutPoint) []byte {
	buf := make([]byte, 0, outPointSize)
	buf = append(buf, outPoint.TxHash[:]...)
	return appendUint32(buf, outPoint.Index)
}

// DeserializeOutPoint decodes an out point encoded by SerializeOutPoint.
func DeserializeOutPoint(buf []byte) (*cellmodel.OutPoint, error) {
	if len(buf) != outPointSize {
		return nil, errors.Errorf("out point has %d bytes, expected %d", len(buf), outPointSize)
	}
	outPoint := &cellmodel.OutPoint{Index: binary.LittleEndian.Uint32(buf[cellmodel.HashSize:])}
	copy(outPoint.TxHash[:], buf[:cellmodel.HashSize])
	return outPoint, nil
}

func serializeCellInput(input *cellmodel.Cell) ([]byte, error) {
	if input.OutPoint == nil {
		return nil, errors.Errorf("input cell %s has no out point", input)
	}
	buf := make([]byte, 0, cellInputSize)
	buf = appendUint64(buf, cellmodel.SinceNone)
	return append(buf, SerializeOutPoint(input.OutPoint)...), nil
}

func serializeCellDep(cellDep *cellmodel.CellDep) []byte {
	buf := make([]byte, 0, cellDepSize)
	buf = append(buf, SerializeOutPoint(&cellDep.OutPoint)...)
	return append(buf, byte(cellDep.DepType))
}

// SerializeCellOutput encodes the output part of a cell: its capacity, lock
// and type. Data and out point aren't part of a cell output.
func SerializeCellOutput(cell *cellmodel.Cell) ([]byte, error) {
	capacity, ok := cell.Capacity.Uint64()
	if !ok {
		return nil, errors.Errorf("cell capacity %s doesn't fit in 64 bits", cell.Capacity)
	}
	if cell.Lock == nil {
		return nil, errors.New("cell has no lock script")
	}
	return encodeTable(
		appendUint64(nil, capacity),
		SerializeScript(cell.Lock),
		serializeScriptOpt(cell.Type),
	), nil
}

// DeserializeCellOutput decodes a cell output encoded by SerializeCellOutput.
func DeserializeCellOutput(buf []byte) (*cellmodel.Cell, error) {
	fields, err := decodeTable(buf, 3)
	if err != nil {
		return nil, errors.Wrap(err, "cell output")
	}
	if len(fields[0]) != 8 {
		return nil, errors.Errorf("cell capacity has %d bytes", len(fields[0]))
	}
	lock, err := DeserializeScript(fields[1])
	if err != nil {
		return nil, errors.Wrap(err, "cell lock")
	}
	cell := cellmodel.NewCell(util.NewAmount(binary.LittleEndian.Uint64(fields[0])), lock)
	if len(fields[2]) > 0 {
		cell.Type, err = DeserializeScript(fields[2])
		if err != nil {
			return nil, errors.Wrap(err, "cell type")
		}
	}
	return cell, nil
}

// SerializeRawTransaction encodes a raw transaction.
func SerializeRawTransaction(raw *cellmodel.RawTransaction) ([]byte, error) {
	cellDeps := make([][]byte, len(raw.CellDeps))
	for i, cellDep := range raw.CellDeps {
		cellDeps[i] = serializeCellDep(cellDep)
	}

	headerDeps := make([][]byte, len(raw.HeaderDeps))
	for i := range raw.HeaderDeps {
		headerDeps[i] = raw.HeaderDeps[i][:]
	}

	inputs := make([][]byte, len(raw.Inputs))
	for i, input := range raw.Inputs {
		var err error
		inputs[i], err = serializeCellInput(input)
		if err != nil {
			return nil, errors.Wrapf(err, "input %d", i)
		}
	}

	outputs := make([][]byte, len(raw.Outputs))
	outputsData := make([][]byte, len(raw.Outputs))
	for i, output := range raw.Outputs {
		var err error
		outputs[i], err = SerializeCellOutput(output)
		if err != nil {
			return nil, errors.Wrapf(err, "output %d", i)
		}
		outputsData[i] = encodeBytes(output.Data)
	}

	return encodeTable(
		appendUint32(nil, raw.Version),
		encodeFixVec(cellDeps),
		encodeFixVec(headerDeps),
		encodeFixVec(inputs),
		encodeTable(outputs...),
		encodeTable(outputsData...),
	), nil
}

// SerializeWitnessArgs encodes structured witness arguments.
func SerializeWitnessArgs(witnessArgs *cellmodel.WitnessArgs) []byte {
	return encodeTable(
		encodeBytesOpt(witnessArgs.Lock),
		encodeBytesOpt(witnessArgs.InputType),
		encodeBytesOpt(witnessArgs.OutputType),
	)
}

// DeserializeWitnessArgs decodes witness arguments encoded by
// SerializeWitnessArgs.
func DeserializeWitnessArgs(buf []byte) (*cellmodel.WitnessArgs, error) {
	fields, err := decodeTable(buf, 3)
	if err != nil {
		return nil, errors.Wrap(err, "witness args")
	}
	witnessArgs := &cellmodel.WitnessArgs{}
	for i, target := range []*[]byte{&witnessArgs.Lock, &witnessArgs.InputType, &witnessArgs.OutputType} {
		*target, err = decodeBytesOpt(fields[i])
		if err != nil {
			return nil, errors.Wrapf(err, "witness args field %d", i)
		}
	}
	return witnessArgs, nil
}

// SerializeTransaction encodes a transaction with its witnesses.
func SerializeTransaction(tx *cellmodel.Transaction) ([]byte, error) {
	raw, err := SerializeRawTransaction(tx.Raw)
	if err != nil {
		return nil, err
	}
	witnesses := make([][]byte, len(tx.Witnesses))
	for i, witness := range tx.Witnesses {
		witnesses[i] = encodeBytes(witness)
	}
	return encodeTable(raw, encodeTable(witnesses...)), nil
}

// TransactionSize returns the number of bytes tx takes in a block, which is
// the size fees are charged for.
func TransactionSize(tx *cellmodel.Transaction) (uint64, error) {
	serialized, err := SerializeTransaction(tx)
	if err != nil {
		return 0, err
	}
	return uint64(len(serialized)) + transactionOffsetSize, nil
}
