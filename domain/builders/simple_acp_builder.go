package builders

import (
	"context"

	"github.com/kaspanet/cellwallet/domain/address"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/util"
)

// SimpleACPBuilder transfers amount into an existing anyone-can-pay cell of
// the recipient. No new cell is created for the recipient, so amount may be
// below the minimum change.
type SimpleACPBuilder struct {
	from    *address.Address
	to      *address.Address
	amount  util.Amount
	options *options
}

// NewSimpleACPBuilder returns a builder of a transfer of amount from from to
// the anyone-can-pay address to.
func NewSimpleACPBuilder(from, to *address.Address, amount util.Amount, opts ...Option) (*SimpleACPBuilder, error) {
	o := newOptions(from.Params(), opts)
	if err := validateAddresses(o, from, to); err != nil {
		return nil, err
	}
	return &SimpleACPBuilder{
		from:    from,
		to:      to,
		amount:  amount,
		options: o,
	}, nil
}

// Build implements Builder. The recipient's cell is the last input and the
// first output; the sender's change is the second output.
func (b *SimpleACPBuilder) Build(ctx context.Context) (*cellmodel.Transaction, error) {
	if !b.to.IsAnyoneCanPay() {
		return nil, ErrNotAnyoneCanPay
	}

	onEnd := log.MeasureExecutionTime("SimpleACPBuilder.Build")
	defer onEnd()

	recipientCell, err := b.recipientCell(ctx)
	if err != nil {
		return nil, err
	}
	return settleFee(ctx, b.options, func(ctx context.Context, feeHint util.Amount) (*draft, error) {
		return b.fund(ctx, recipientCell, feeHint)
	})
}

func (b *SimpleACPBuilder) recipientCell(ctx context.Context) (*cellmodel.Cell, error) {
	cells, err := b.options.collector.Collect(ctx, b.to, util.AmountZero)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, ErrNoAnyoneCanPayCell
	}
	return cells[0], nil
}

func (b *SimpleACPBuilder) fund(ctx context.Context, recipientCell *cellmodel.Cell, feeHint util.Amount) (
	*draft, error) {

	target, err := fundingTarget(b.options, b.amount, feeHint)
	if err != nil {
		return nil, err
	}
	senderInputs, inputSum, err := collectInputs(ctx, b.options, b.from, target)
	if err != nil {
		return nil, err
	}

	recipientCapacity, err := recipientCell.Capacity.Add(b.amount)
	if err != nil {
		return nil, err
	}
	outputs := []*cellmodel.Cell{
		recipientCell.AsOutput().WithCapacity(recipientCapacity),
		cellmodel.NewCell(inputSum.Sub(b.amount), b.from.ToLockScript()),
	}
	inputs := append(senderInputs, recipientCell)

	// The sender's lock group is signed in the first witness. The rest of
	// the inputs, the recipient's cell included, need no witness of their own.
	witnesses := make([][]byte, len(inputs))
	witnesses[0] = secp256k1Witness()
	for i := 1; i < len(witnesses); i++ {
		witnesses[i] = []byte{}
	}

	params := b.options.params
	raw := cellmodel.NewRawTransaction(
		cellDeps(&params.Secp256k1Lock.CellDep, &params.AnyoneCanPayLock.CellDep), inputs, outputs)
	return &draft{
		tx:          cellmodel.NewTransaction(raw, witnesses),
		changeIndex: 1,
	}, nil
}
