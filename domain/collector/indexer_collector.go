package collector

import (
	"context"

	"github.com/kaspanet/cellwallet/domain/address"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/infrastructure/network/indexer"
	"github.com/kaspanet/cellwallet/util"
	"github.com/pkg/errors"
)

// DefaultPageSize is the number of cells requested from the indexer at once.
const DefaultPageSize = 100

// CellsFetcher fetches pages of live cells, such as an indexer.Client.
type CellsFetcher interface {
	GetCells(ctx context.Context, lock *cellmodel.Script, order indexer.Order, limit uint32,
		cursor []byte) (*indexer.GetCellsResult, error)
}

// IndexerCollector collects cells from a ckb-indexer, oldest first.
type IndexerCollector struct {
	fetcher  CellsFetcher
	pageSize uint32
}

// NewIndexerCollector returns a collector fetching cells through fetcher.
func NewIndexerCollector(fetcher CellsFetcher) *IndexerCollector {
	return &IndexerCollector{fetcher: fetcher, pageSize: DefaultPageSize}
}

// SetPageSize sets the number of cells requested per indexer call. A page
// size of 0 restores DefaultPageSize.
func (c *IndexerCollector) SetPageSize(pageSize uint32) {
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	c.pageSize = pageSize
}

// Collect implements Collector. It fetches pages until the collected
// capacity exceeds neededAmount or the indexer runs out of cells.
func (c *IndexerCollector) Collect(ctx context.Context, address *address.Address, neededAmount util.Amount) (
	[]*cellmodel.Cell, error) {

	lock := address.ToLockScript()
	acc := newAccumulator(neededAmount)
	var cursor []byte
	for page := 0; ; page++ {
		result, err := c.fetcher.GetCells(ctx, lock, indexer.OrderAsc, c.pageSize, cursor)
		if err != nil {
			return nil, err
		}
		log.Tracef("Got page %d with %d cells from the indexer", page, len(result.Objects))

		for _, indexedCell := range result.Objects {
			cell, err := indexedCell.ToCell()
			if err != nil {
				return nil, errors.Wrap(err, "the indexer returned an invalid cell")
			}
			done, err := acc.add(cell)
			if err != nil {
				return nil, err
			}
			if done {
				return acc.cells, nil
			}
		}
		if uint32(len(result.Objects)) < c.pageSize || len(result.LastCursor) == 0 {
			return acc.cells, nil
		}
		cursor = result.LastCursor
	}
}
