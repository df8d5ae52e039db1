package collector

import (
	"context"
	"sync"

	"github.com/kaspanet/cellwallet/domain/address"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/util"
)

// MemoryCollector serves a fixed set of cells kept in memory. Every spendable
// cell of the requested lock is returned, in the order it was added.
type MemoryCollector struct {
	mtx   sync.RWMutex
	cells []*cellmodel.Cell
}

// NewMemoryCollector returns a MemoryCollector serving cells.
func NewMemoryCollector(cells ...*cellmodel.Cell) *MemoryCollector {
	return &MemoryCollector{cells: append([]*cellmodel.Cell(nil), cells...)}
}

// Add adds cells to the collector.
func (c *MemoryCollector) Add(cells ...*cellmodel.Cell) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.cells = append(c.cells, cells...)
}

// Collect implements Collector.
func (c *MemoryCollector) Collect(_ context.Context, address *address.Address, _ util.Amount) ([]*cellmodel.Cell, error) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	lock := address.ToLockScript()
	var cells []*cellmodel.Cell
	for _, cell := range c.cells {
		if cell.Lock.Equal(lock) && IsSpendable(cell) {
			cells = append(cells, cell)
		}
	}
	return cells, nil
}
