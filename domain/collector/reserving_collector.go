package collector

import (
	"context"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/kaspanet/cellwallet/domain/address"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/util"
	"github.com/pkg/errors"
)

// DefaultReservationTTL is how long cells stay reserved when the
// transaction spending them is neither committed nor released.
const DefaultReservationTTL = 10 * time.Minute

// ReservingCollector hides cells spent by recently built transactions from
// the collector it wraps, so two builds in a row don't pick the same cells.
//
// Its methods are safe for concurrent use, but a Collect followed by a
// Reserve isn't atomic: two goroutines building at once can both collect a
// cell before either reserves it. Callers that build concurrently must
// serialize each build with the Reserve of its transaction.
type ReservingCollector struct {
	collector Collector
	reserved  *ttlcache.Cache
}

// NewReservingCollector wraps collector, keeping reservations for ttl.
func NewReservingCollector(collector Collector, ttl time.Duration) (*ReservingCollector, error) {
	reserved := ttlcache.NewCache()
	reserved.SkipTTLExtensionOnHit(true)
	if err := reserved.SetTTL(ttl); err != nil {
		return nil, errors.WithStack(err)
	}
	return &ReservingCollector{
		collector: collector,
		reserved:  reserved,
	}, nil
}

// Reserve reserves the inputs of tx.
func (c *ReservingCollector) Reserve(tx *cellmodel.Transaction) error {
	for _, input := range tx.Raw.Inputs {
		if input.OutPoint == nil {
			continue
		}
		if err := c.reserved.Set(input.OutPoint.String(), input.Capacity); err != nil {
			return errors.WithStack(err)
		}
	}
	log.Debugf("Reserved %d cells", len(tx.Raw.Inputs))
	return nil
}

// Release releases the inputs of tx, typically after it was abandoned.
func (c *ReservingCollector) Release(tx *cellmodel.Transaction) error {
	for _, input := range tx.Raw.Inputs {
		if input.OutPoint == nil {
			continue
		}
		err := c.reserved.Remove(input.OutPoint.String())
		if err != nil && !errors.Is(err, ttlcache.ErrNotFound) {
			return errors.WithStack(err)
		}
	}
	return nil
}

// IsReserved returns whether outPoint is currently reserved.
func (c *ReservingCollector) IsReserved(outPoint *cellmodel.OutPoint) (bool, error) {
	_, err := c.reserved.Get(outPoint.String())
	if errors.Is(err, ttlcache.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.WithStack(err)
	}
	return true, nil
}

// Close stops expiring reservations. The collector can't be used afterwards.
func (c *ReservingCollector) Close() error {
	return c.reserved.Close()
}

// Collect implements Collector. When reserved cells are filtered out, the
// wrapped collector is asked again for that much more, until either enough
// unreserved capacity is found or no further reserved cells turn up.
func (c *ReservingCollector) Collect(ctx context.Context, address *address.Address, neededAmount util.Amount) (
	[]*cellmodel.Cell, error) {

	skippedSum := util.AmountZero
	for {
		target, err := neededAmount.Add(skippedSum)
		if err != nil {
			return nil, err
		}
		cells, err := c.collector.Collect(ctx, address, target)
		if err != nil {
			return nil, err
		}

		unreserved := make([]*cellmodel.Cell, 0, len(cells))
		newSkippedSum := util.AmountZero
		for _, cell := range cells {
			if cell.OutPoint == nil {
				unreserved = append(unreserved, cell)
				continue
			}
			isReserved, err := c.IsReserved(cell.OutPoint)
			if err != nil {
				return nil, err
			}
			if isReserved {
				newSkippedSum = newSkippedSum.MustAdd(cell.Capacity)
				continue
			}
			unreserved = append(unreserved, cell)
		}

		if newSkippedSum.Lte(skippedSum) || cellmodel.SumCapacity(unreserved).Gt(neededAmount) {
			if !newSkippedSum.IsZero() {
				log.Debugf("Skipped reserved cells holding %s", newSkippedSum.FormatCKB())
			}
			return unreserved, nil
		}
		skippedSum = newSkippedSum
	}
}
