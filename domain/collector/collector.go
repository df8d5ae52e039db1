package collector

import (
	"context"

	"github.com/kaspanet/cellwallet/domain/address"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/util"
)

// Collector is a source of spendable cells.
//
// Collect returns cells locked by address's lock script, in the order they
// should be spent. It may return more or fewer cells than neededAmount
// requires: selection is up to the caller.
//
// Collectors don't track which cells were handed out. Builds that run
// concurrently, or back to back before the first transaction is committed,
// may be given overlapping cells and produce conflicting transactions.
// Keeping them apart is up to the collector's owner, e.g. through a
// ReservingCollector.
type Collector interface {
	Collect(ctx context.Context, address *address.Address, neededAmount util.Amount) ([]*cellmodel.Cell, error)
}

// IsSpendable returns whether cell holds nothing but capacity, and can
// therefore be consumed by a plain transfer.
func IsSpendable(cell *cellmodel.Cell) bool {
	return cell.OutPoint != nil && cell.Type == nil && len(cell.Data) == 0
}

// accumulator gathers spendable cells until their capacity strictly exceeds
// the needed amount.
type accumulator struct {
	needed util.Amount
	sum    util.Amount
	cells  []*cellmodel.Cell
}

func newAccumulator(needed util.Amount) *accumulator {
	return &accumulator{needed: needed, sum: util.AmountZero}
}

// add adds cell if it's spendable, and returns whether enough was gathered.
func (a *accumulator) add(cell *cellmodel.Cell) (done bool, err error) {
	if !IsSpendable(cell) {
		return a.done(), nil
	}
	a.sum, err = a.sum.Add(cell.Capacity)
	if err != nil {
		return false, err
	}
	a.cells = append(a.cells, cell)
	return a.done(), nil
}

func (a *accumulator) done() bool {
	return a.sum.Gt(a.needed)
}
