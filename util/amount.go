package util

import (
	"math/big"
	"regexp"

	"github.com/decred/dcrd/math/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ShannonsPerCKB is the number of shannons in one CKB.
const ShannonsPerCKB = 100_000_000

// AmountUnit describes a method of converting an Amount to something other
// than the base unit.
type AmountUnit int

// These constants define the units an Amount can be displayed and parsed in.
const (
	AmountUnitShannon AmountUnit = iota
	AmountUnitCKB
)

func (u AmountUnit) decimals() int32 {
	if u == AmountUnitCKB {
		return 8
	}
	return 0
}

// String returns the unit as a string, as used in human-readable output.
func (u AmountUnit) String() string {
	switch u {
	case AmountUnitCKB:
		return "CKB"
	default:
		return "Shannon"
	}
}

// Amount is an exact, non-negative capacity measured in shannons.
// Amounts are immutable: all arithmetic returns a new value.
type Amount struct {
	value uint256.Uint256
}

// AmountZero is the zero Amount.
var AmountZero = Amount{}

var maxUint64 = new(uint256.Uint256).SetUint64(^uint64(0))

// NewAmount returns an Amount of the given number of shannons.
func NewAmount(shannons uint64) Amount {
	var amount Amount
	amount.value.SetUint64(shannons)
	return amount
}

var (
	shannonFormat = regexp.MustCompile(`^([1-9]\d*|0)$`)
	ckbFormat     = regexp.MustCompile(`^([1-9]\d{0,11}|0)(\.\d{0,8})?$`)
)

// ParseAmount parses a decimal string in the given unit. CKB amounts may
// carry up to 8 decimal places; shannon amounts must be integers.
func ParseAmount(s string, unit AmountUnit) (Amount, error) {
	format := shannonFormat
	if unit == AmountUnitCKB {
		format = ckbFormat
	}
	if !format.MatchString(s) {
		return AmountZero, errors.Errorf("invalid %s amount %q", unit, s)
	}

	parsed, err := decimal.NewFromString(s)
	if err != nil {
		return AmountZero, errors.Wrapf(err, "invalid %s amount %q", unit, s)
	}
	shannons := parsed.Shift(unit.decimals())
	if !shannons.IsInteger() {
		return AmountZero, errors.Errorf("amount %q has more precision than a shannon", s)
	}

	shannonsBig := shannons.BigInt()
	if shannonsBig.BitLen() > 256 {
		return AmountZero, errors.Errorf("amount %q is out of range", s)
	}
	var amount Amount
	amount.value.SetBig(shannonsBig)
	return amount, nil
}

// Add returns a + b. An error is returned instead of silently wrapping when
// the sum doesn't fit.
func (a Amount) Add(b Amount) (Amount, error) {
	var sum Amount
	sum.value.Add2(&a.value, &b.value)
	if sum.value.Lt(&a.value) {
		return AmountZero, errors.Errorf("amount overflow adding %s to %s", b, a)
	}
	return sum, nil
}

// MustAdd is Add for sums known to be in range, such as capacities of cells
// already present on the ledger. It panics on overflow.
func (a Amount) MustAdd(b Amount) Amount {
	sum, err := a.Add(b)
	if err != nil {
		panic(err)
	}
	return sum
}

// Sub returns a - b. Subtracting a larger amount is a programming error and
// panics.
func (a Amount) Sub(b Amount) Amount {
	if a.value.Lt(&b.value) {
		panic(errors.Errorf("amount underflow subtracting %s from %s", b, a))
	}
	var difference Amount
	difference.value.Sub2(&a.value, &b.value)
	return difference
}

// MulUint64 returns a * n, failing on overflow.
func (a Amount) MulUint64(n uint64) (Amount, error) {
	var product Amount
	product.value.Set(&a.value).MulUint64(n)
	if n != 0 {
		var check uint256.Uint256
		check.Set(&product.value).DivUint64(n)
		if !check.Eq(&a.value) {
			return AmountZero, errors.Errorf("amount overflow multiplying %s by %d", a, n)
		}
	}
	return product, nil
}

// DivCeilUint64 returns a / n rounded up. n must not be zero.
func (a Amount) DivCeilUint64(n uint64) Amount {
	var quotient, remainder Amount
	quotient.value.Set(&a.value).DivUint64(n)
	remainder.value.Set(&quotient.value).MulUint64(n)
	if !remainder.value.Eq(&a.value) {
		quotient.value.AddUint64(1)
	}
	return quotient
}

// Cmp compares a and b and returns -1, 0 or 1.
func (a Amount) Cmp(b Amount) int {
	return a.value.Cmp(&b.value)
}

// Lt returns whether a < b.
func (a Amount) Lt(b Amount) bool { return a.value.Lt(&b.value) }

// Lte returns whether a <= b.
func (a Amount) Lte(b Amount) bool { return a.value.LtEq(&b.value) }

// Gt returns whether a > b.
func (a Amount) Gt(b Amount) bool { return a.value.Gt(&b.value) }

// Gte returns whether a >= b.
func (a Amount) Gte(b Amount) bool { return a.value.GtEq(&b.value) }

// Eq returns whether a == b.
func (a Amount) Eq(b Amount) bool { return a.value.Eq(&b.value) }

// IsZero returns whether a is zero.
func (a Amount) IsZero() bool { return a.value.IsZero() }

// Uint64 returns the amount in shannons and whether it fits in a uint64.
func (a Amount) Uint64() (uint64, bool) {
	if a.value.Gt(maxUint64) {
		return 0, false
	}
	return a.value.Uint64(), true
}

// BigInt returns the amount in shannons as a new big.Int.
func (a Amount) BigInt() *big.Int {
	return a.value.ToBig()
}

// String returns the amount in shannons.
func (a Amount) String() string {
	return a.value.String()
}

// Format returns the amount converted to unit, e.g. "61.00000000" for
// 6100000000 shannons in CKB.
func (a Amount) Format(unit AmountUnit) string {
	d := decimal.NewFromBigInt(a.value.ToBig(), -unit.decimals())
	return d.StringFixed(unit.decimals())
}

// FormatCKB returns the amount in CKB followed by the unit name, for
// human-readable messages.
func (a Amount) FormatCKB() string {
	return a.Format(AmountUnitCKB) + " " + AmountUnitCKB.String()
}
