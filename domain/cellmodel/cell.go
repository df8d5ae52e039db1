package cellmodel

import (
	"fmt"

	"github.com/kaspanet/cellwallet/util"
)

// OutPoint identifies a cell by the transaction that created it and its
// index in that transaction's outputs.
type OutPoint struct {
	TxHash Hash
	Index  uint32
}

func (outPoint OutPoint) String() string {
	return fmt.Sprintf("%s:%d", outPoint.TxHash, outPoint.Index)
}

// DepType tells whether a cell dep points at code or at a group of deps.
type DepType byte

// The DepType values a cell dep can carry.
const (
	DepTypeCode DepType = iota
	DepTypeDepGroup
)

func (depType DepType) String() string {
	if depType == DepTypeDepGroup {
		return "dep_group"
	}
	return "code"
}

// CellDep is a cell referenced by a transaction for its scripts' code.
type CellDep struct {
	OutPoint OutPoint
	DepType  DepType
}

// Cell is a ledger output record. Cells are values: once built they're not
// modified, WithCapacity returns an altered copy instead.
type Cell struct {
	Capacity util.Amount
	Lock     *Script
	Type     *Script
	Data     []byte

	// OutPoint is set for live cells read from the ledger and nil for cells
	// that are only being created.
	OutPoint *OutPoint
}

// NewCell returns a new output cell with the given capacity and lock.
func NewCell(capacity util.Amount, lock *Script) *Cell {
	return &Cell{
		Capacity: capacity,
		Lock:     lock,
	}
}

// NewLiveCell returns a cell that already exists on the ledger at outPoint.
func NewLiveCell(capacity util.Amount, lock *Script, outPoint OutPoint) *Cell {
	return &Cell{
		Capacity: capacity,
		Lock:     lock,
		OutPoint: &outPoint,
	}
}

// WithCapacity returns a copy of the cell holding capacity instead.
func (cell *Cell) WithCapacity(capacity util.Amount) *Cell {
	clone := cell.Clone()
	clone.Capacity = capacity
	return clone
}

// Clone returns a deep copy of the cell.
func (cell *Cell) Clone() *Cell {
	clone := &Cell{
		Capacity: cell.Capacity,
		Lock:     cell.Lock.Clone(),
		Type:     cell.Type.Clone(),
	}
	if cell.Data != nil {
		clone.Data = append([]byte(nil), cell.Data...)
	}
	if cell.OutPoint != nil {
		outPoint := *cell.OutPoint
		clone.OutPoint = &outPoint
	}
	return clone
}

// AsOutput returns a copy of the cell without its OutPoint, for reuse of a
// live cell's contents in a new output.
func (cell *Cell) AsOutput() *Cell {
	clone := cell.Clone()
	clone.OutPoint = nil
	return clone
}

func (cell *Cell) String() string {
	if cell.OutPoint == nil {
		return fmt.Sprintf("{capacity: %s, lock: %s}", cell.Capacity, cell.Lock)
	}
	return fmt.Sprintf("{out_point: %s, capacity: %s, lock: %s}", cell.OutPoint, cell.Capacity, cell.Lock)
}

// SumCapacity returns the total capacity of cells.
func SumCapacity(cells []*Cell) util.Amount {
	sum := util.AmountZero
	for _, cell := range cells {
		sum = sum.MustAdd(cell.Capacity)
	}
	return sum
}
