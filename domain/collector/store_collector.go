package collector

import (
	"context"

	"github.com/kaspanet/cellwallet/domain/address"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/util"
)

// CellIterator iterates over the live cells of a lock, such as a
// cellstore.CellStore.
type CellIterator interface {
	ForEachCell(lock *cellmodel.Script, f func(cell *cellmodel.Cell) (bool, error)) error
}

// StoreCollector collects cells from a local cell store.
type StoreCollector struct {
	store CellIterator
}

// NewStoreCollector returns a collector reading cells from store.
func NewStoreCollector(store CellIterator) *StoreCollector {
	return &StoreCollector{store: store}
}

// Collect implements Collector. It stops reading as soon as the collected
// capacity exceeds neededAmount.
func (c *StoreCollector) Collect(ctx context.Context, address *address.Address, neededAmount util.Amount) (
	[]*cellmodel.Cell, error) {

	acc := newAccumulator(neededAmount)
	err := c.store.ForEachCell(address.ToLockScript(), func(cell *cellmodel.Cell) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		done, err := acc.add(cell)
		return !done, err
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("Collected %d cells holding %s from the cell store", len(acc.cells), acc.sum.FormatCKB())
	return acc.cells, nil
}
