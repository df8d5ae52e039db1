package builders

import (
	"context"

	"github.com/kaspanet/cellwallet/domain/address"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/util"
)

// SimpleBuilder transfers amount from one address to another. The inputs
// come from the sender, who also receives the change.
//
// Transfers below the minimum change can't leave a viable change cell, so
// they're delegated to the low value builder, an anyone-can-pay transfer
// unless configured otherwise.
type SimpleBuilder struct {
	from            *address.Address
	to              *address.Address
	amount          util.Amount
	options         *options
	lowValueBuilder Builder
}

// NewSimpleBuilder returns a builder of a transfer of amount from from to to.
func NewSimpleBuilder(from, to *address.Address, amount util.Amount, opts ...Option) (*SimpleBuilder, error) {
	o := newOptions(from.Params(), opts)
	if err := validateAddresses(o, from, to); err != nil {
		return nil, err
	}

	lowValueBuilder := o.lowValueBuilder
	if lowValueBuilder == nil {
		var err error
		lowValueBuilder, err = NewSimpleACPBuilder(from, to, amount, opts...)
		if err != nil {
			return nil, err
		}
	}

	return &SimpleBuilder{
		from:            from,
		to:              to,
		amount:          amount,
		options:         o,
		lowValueBuilder: lowValueBuilder,
	}, nil
}

// Build implements Builder. On success the inputs' capacity equals the
// outputs' capacity plus the fee, and the change holds at least the minimum
// change.
func (b *SimpleBuilder) Build(ctx context.Context) (*cellmodel.Transaction, error) {
	if b.amount.Lt(b.options.minChange) {
		log.Debugf("Transfer of %s is below the minimum change, delegating", b.amount.FormatCKB())
		return b.lowValueBuilder.Build(ctx)
	}

	onEnd := log.MeasureExecutionTime("SimpleBuilder.Build")
	defer onEnd()

	return settleFee(ctx, b.options, b.fund)
}

func (b *SimpleBuilder) fund(ctx context.Context, feeHint util.Amount) (*draft, error) {
	target, err := fundingTarget(b.options, b.amount, feeHint)
	if err != nil {
		return nil, err
	}
	inputs, inputSum, err := collectInputs(ctx, b.options, b.from, target)
	if err != nil {
		return nil, err
	}

	outputs := []*cellmodel.Cell{
		cellmodel.NewCell(b.amount, b.to.ToLockScript()),
		cellmodel.NewCell(inputSum.Sub(b.amount), b.from.ToLockScript()),
	}
	raw := cellmodel.NewRawTransaction(
		cellDeps(&b.options.params.Secp256k1Lock.CellDep), inputs, outputs)
	return &draft{
		tx:          cellmodel.NewTransaction(raw, [][]byte{secp256k1Witness()}),
		changeIndex: 1,
	}, nil
}
