package serialization

import (
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/pkg/errors"
)

// SerializeLiveCell encodes a live cell, including its out point and data,
// for local storage.
func SerializeLiveCell(cell *cellmodel.Cell) ([]byte, error) {
	if cell.OutPoint == nil {
		return nil, errors.Errorf("cell %s is not live", cell)
	}
	output, err := SerializeCellOutput(cell)
	if err != nil {
		return nil, err
	}
	return encodeTable(SerializeOutPoint(cell.OutPoint), output, encodeBytes(cell.Data)), nil
}

// DeserializeLiveCell decodes a cell encoded by SerializeLiveCell.
func DeserializeLiveCell(buf []byte) (*cellmodel.Cell, error) {
	fields, err := decodeTable(buf, 3)
	if err != nil {
		return nil, errors.Wrap(err, "live cell")
	}
	outPoint, err := DeserializeOutPoint(fields[0])
	if err != nil {
		return nil, err
	}
	cell, err := DeserializeCellOutput(fields[1])
	if err != nil {
		return nil, err
	}
	cell.Data, err = decodeBytes(fields[2])
	if err != nil {
		return nil, errors.Wrap(err, "cell data")
	}
	cell.OutPoint = outPoint
	return cell, nil
}
