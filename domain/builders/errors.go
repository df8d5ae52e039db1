package builders

import (
	"fmt"

	"github.com/kaspanet/cellwallet/util"
	"github.com/pkg/errors"
)

// ErrFeeNotConverged is returned when the fee keeps outgrowing the change
// for the maximum number of attempts.
var ErrFeeNotConverged = errors.New("fee did not converge")

// ErrNotAnyoneCanPay is returned when a low value transfer is made to an
// address that can't receive payments without its owner's signature.
var ErrNotAnyoneCanPay = errors.New("recipient is not an anyone-can-pay address")

// ErrNoAnyoneCanPayCell is returned when an anyone-can-pay recipient has no
// live cell to add the transfer to.
var ErrNoAnyoneCanPayCell = errors.New("recipient has no anyone-can-pay cell")

// InsufficientFundsError is returned when the funding address doesn't hold
// enough capacity for a transfer.
type InsufficientFundsError struct {
	Required  util.Amount
	Available util.Amount
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need more than %s, got %s",
		e.Required.FormatCKB(), e.Available.FormatCKB())
}
