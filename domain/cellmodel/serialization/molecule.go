package serialization

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Molecule is the ledger's canonical encoding. Fixed size types (structs)
// are plain concatenations; variable size types carry a little endian uint32
// header:
//
//	fixvec: item count, then the items
//	table/dynvec: total size, one offset per field, then the fields
//
// An absent option encodes as zero bytes. The layouts match the serializers
// of github.com/nervosnetwork/ckb-sdk-go/types byte for byte.

const numberSize = 4

func appendUint32(buf []byte, value uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, value)
}

func appendUint64(buf []byte, value uint64) []byte {
	return binary.LittleEndian.AppendUint64(buf, value)
}

func encodeBytes(value []byte) []byte {
	buf := make([]byte, 0, numberSize+len(value))
	buf = appendUint32(buf, uint32(len(value)))
	return append(buf, value...)
}

func encodeBytesOpt(value []byte) []byte {
	if value == nil {
		return nil
	}
	return encodeBytes(value)
}

func encodeFixVec(items [][]byte) []byte {
	size := numberSize
	for _, item := range items {
		size += len(item)
	}
	buf := make([]byte, 0, size)
	buf = appendUint32(buf, uint32(len(items)))
	for _, item := range items {
		buf = append(buf, item...)
	}
	return buf
}

// encodeTable encodes fields as a table. A dynvec has the exact same layout,
// so it's encoded by this function as well.
func encodeTable(fields ...[]byte) []byte {
	headerSize := numberSize * (len(fields) + 1)
	totalSize := headerSize
	for _, field := range fields {
		totalSize += len(field)
	}

	buf := make([]byte, 0, totalSize)
	buf = appendUint32(buf, uint32(totalSize))
	offset := headerSize
	for _, field := range fields {
		buf = appendUint32(buf, uint32(offset))
		offset += len(field)
	}
	for _, field := range fields {
		buf = append(buf, field...)
	}
	return buf
}

func readUint32(buf []byte) (uint32, error) {
	if len(buf) < numberSize {
		return 0, errors.Errorf("expected at least %d bytes, got %d", numberSize, len(buf))
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// decodeTable splits an encoded table into its fields, verifying the header
// against the expected field count.
func decodeTable(buf []byte, fieldCount int) ([][]byte, error) {
	totalSize, err := readUint32(buf)
	if err != nil {
		return nil, errors.Wrap(err, "table size")
	}
	if int(totalSize) != len(buf) {
		return nil, errors.Errorf("table declares size %d but has %d bytes", totalSize, len(buf))
	}
	if fieldCount == 0 {
		if totalSize != numberSize {
			return nil, errors.Errorf("empty table has size %d", totalSize)
		}
		return nil, nil
	}

	headerSize := numberSize * (fieldCount + 1)
	if len(buf) < headerSize {
		return nil, errors.Errorf("table header needs %d bytes, got %d", headerSize, len(buf))
	}
	firstOffset := binary.LittleEndian.Uint32(buf[numberSize:])
	if int(firstOffset) != headerSize {
		return nil, errors.Errorf("table has %d fields, expected %d",
			int(firstOffset)/numberSize-1, fieldCount)
	}

	offsets := make([]int, fieldCount+1)
	for i := 0; i < fieldCount; i++ {
		offsets[i] = int(binary.LittleEndian.Uint32(buf[numberSize*(i+1):]))
	}
	offsets[fieldCount] = len(buf)

	fields := make([][]byte, fieldCount)
	for i := 0; i < fieldCount; i++ {
		if offsets[i] > offsets[i+1] || offsets[i] < headerSize {
			return nil, errors.Errorf("table field %d has invalid offset %d", i, offsets[i])
		}
		fields[i] = buf[offsets[i]:offsets[i+1]]
	}
	return fields, nil
}

func decodeBytes(buf []byte) ([]byte, error) {
	length, err := readUint32(buf)
	if err != nil {
		return nil, errors.Wrap(err, "bytes length")
	}
	if int(length) != len(buf)-numberSize {
		return nil, errors.Errorf("bytes declare length %d but have %d", length, len(buf)-numberSize)
	}
	return append([]byte{}, buf[numberSize:]...), nil
}

func decodeBytesOpt(buf []byte) ([]byte, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	return decodeBytes(buf)
}
