package builders

import (
	"context"

	"github.com/kaspanet/cellwallet/domain/address"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/domain/cellmodel/serialization"
	"github.com/kaspanet/cellwallet/util"
	"github.com/pkg/errors"
)

// MinChange is the smallest capacity a change cell may hold: the capacity a
// secp256k1 locked cell occupies. Transfers below it are delegated to the
// low value builder.
var MinChange = util.NewAmount(61 * util.ShannonsPerCKB)

// DefaultMaxFeeIterations is the default number of funding attempts before
// a build fails with ErrFeeNotConverged.
const DefaultMaxFeeIterations = 16

// Builder builds an unsigned transfer transaction. Its witnesses are
// placeholders of the final witnesses' size.
type Builder interface {
	Build(ctx context.Context) (*cellmodel.Transaction, error)
}

// draft is a candidate transaction together with the position of its change
// output.
type draft struct {
	tx          *cellmodel.Transaction
	changeIndex int
}

// fundFunc builds a draft whose change holds at least the minimum change
// plus feeHint.
type fundFunc func(ctx context.Context, feeHint util.Amount) (*draft, error)

// settleFee funds drafts until one has enough change to pay its own fee,
// and returns it with the fee taken out of the change. Each failed attempt
// raises the fee hint to the fee of the failed draft.
func settleFee(ctx context.Context, o *options, fund fundFunc) (*cellmodel.Transaction, error) {
	feeHint := util.AmountZero
	for attempt := 1; attempt <= o.maxFeeIterations; attempt++ {
		d, err := fund(ctx, feeHint)
		if err != nil {
			return nil, err
		}
		fee, err := o.feeCalculator.CalculateFee(d.tx, o.feeRate)
		if err != nil {
			return nil, err
		}

		changeCell := d.tx.Raw.Outputs[d.changeIndex]
		requiredChange, err := o.minChange.Add(fee)
		if err != nil {
			return nil, err
		}
		if changeCell.Capacity.Gte(requiredChange) {
			log.Debugf("Fee settled at %s after %d attempt(s)", fee.FormatCKB(), attempt)
			return d.tx.ReplaceOutput(d.changeIndex, changeCell.WithCapacity(changeCell.Capacity.Sub(fee)))
		}

		log.Debugf("Attempt %d: change of %s can't pay a fee of %s, re-funding",
			attempt, changeCell.Capacity.FormatCKB(), fee.FormatCKB())
		feeHint = fee
	}
	return nil, errors.Wrapf(ErrFeeNotConverged, "last fee %s after %d attempts",
		feeHint.FormatCKB(), o.maxFeeIterations)
}

// fundingTarget is the capacity the inputs of a transfer of amount must
// exceed: the amount, a viable change and the assumed fee.
func fundingTarget(o *options, amount util.Amount, feeHint util.Amount) (util.Amount, error) {
	target, err := amount.Add(o.minChange)
	if err != nil {
		return util.AmountZero, err
	}
	return target.Add(feeHint)
}

// collectInputs takes cells of from in the order the collector yields them,
// stopping as soon as their capacity strictly exceeds target.
func collectInputs(ctx context.Context, o *options, from *address.Address, target util.Amount) (
	inputs []*cellmodel.Cell, inputSum util.Amount, err error) {

	cells, err := o.collector.Collect(ctx, from, target)
	if err != nil {
		return nil, util.AmountZero, err
	}

	inputSum = util.AmountZero
	for _, cell := range cells {
		inputs = append(inputs, cell)
		inputSum, err = inputSum.Add(cell.Capacity)
		if err != nil {
			return nil, util.AmountZero, err
		}
		if inputSum.Gt(target) {
			log.Tracef("Selected %d input(s) holding %s for a target of %s",
				len(inputs), inputSum.FormatCKB(), target.FormatCKB())
			return inputs, inputSum, nil
		}
	}
	return nil, util.AmountZero, &InsufficientFundsError{Required: target, Available: inputSum}
}

// secp256k1Witness returns the placeholder witness of a secp256k1 lock group.
func secp256k1Witness() []byte {
	return serialization.SerializeWitnessArgs(cellmodel.NewSecp256k1WitnessArgs())
}

func cellDeps(deps ...*cellmodel.CellDep) []*cellmodel.CellDep {
	var unique []*cellmodel.CellDep
	for _, dep := range deps {
		isDuplicate := false
		for _, existing := range unique {
			if *existing == *dep {
				isDuplicate = true
				break
			}
		}
		if !isDuplicate {
			unique = append(unique, dep)
		}
	}
	return unique
}

func validateAddresses(o *options, from, to *address.Address) error {
	if o.collector == nil {
		return errors.New("a builder requires a collector")
	}
	if from.Params().AddressPrefix != o.params.AddressPrefix || to.Params().AddressPrefix != o.params.AddressPrefix {
		return errors.Errorf("transfer from %s to %s doesn't take place on %s", from, to, o.params.Name)
	}
	if o.maxFeeIterations < 1 {
		return errors.Errorf("at least one fee iteration is required, got %d", o.maxFeeIterations)
	}
	return nil
}
