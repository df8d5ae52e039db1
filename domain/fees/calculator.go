package fees

import (
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/domain/cellmodel/serialization"
	"github.com/kaspanet/cellwallet/util"
	"github.com/pkg/errors"
)

// MinFeeRate is the lowest fee rate nodes relay transactions with, in
// shannons per 1000 bytes.
const MinFeeRate = 1000

// feeRateUnit is the number of bytes a fee rate is quoted for.
const feeRateUnit = 1000

// Calculator computes the fee a transaction must pay at a given fee rate.
// Implementations must be deterministic: the same transaction and rate
// always yield the same fee.
type Calculator interface {
	CalculateFee(tx *cellmodel.Transaction, feeRate uint64) (util.Amount, error)
}

// CalculatorFunc adapts an ordinary function to a Calculator.
type CalculatorFunc func(tx *cellmodel.Transaction, feeRate uint64) (util.Amount, error)

// CalculateFee calls f(tx, feeRate).
func (f CalculatorFunc) CalculateFee(tx *cellmodel.Transaction, feeRate uint64) (util.Amount, error) {
	return f(tx, feeRate)
}

// SizeCalculator charges for the serialized size of a transaction:
// fee = ceil(size * feeRate / 1000).
type SizeCalculator struct{}

// NewSizeCalculator returns a new SizeCalculator.
func NewSizeCalculator() *SizeCalculator {
	return &SizeCalculator{}
}

// CalculateFee returns the fee tx must pay at feeRate shannons per 1000
// bytes.
func (c *SizeCalculator) CalculateFee(tx *cellmodel.Transaction, feeRate uint64) (util.Amount, error) {
	size, err := serialization.TransactionSize(tx)
	if err != nil {
		return util.AmountZero, err
	}
	return FeeForSize(size, feeRate)
}

// FeeForSize returns the fee of size bytes at feeRate shannons per 1000
// bytes, rounded up so the rate is never undershot.
func FeeForSize(size uint64, feeRate uint64) (util.Amount, error) {
	total, err := util.NewAmount(size).MulUint64(feeRate)
	if err != nil {
		return util.AmountZero, errors.Wrapf(err, "fee of %d bytes at rate %d", size, feeRate)
	}
	return total.DivCeilUint64(feeRateUnit), nil
}
