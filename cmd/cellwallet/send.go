package main

import (
	"fmt"
	"os"

	"github.com/kaspanet/cellwallet/domain/address"
	"github.com/kaspanet/cellwallet/domain/builders"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/domain/collector"
	"github.com/kaspanet/cellwallet/infrastructure/network/rpcmodel"
	"github.com/kaspanet/cellwallet/util"
)

type sendResult struct {
	Fee         string                `json:"fee"`
	Transaction *rpcmodel.Transaction `json:"transaction"`
}

func send(conf *sendConfig) error {
	params := conf.NetParams()
	fromAddress, err := address.DecodeForNetwork(conf.FromAddress, params)
	if err != nil {
		return err
	}
	toAddress, err := address.DecodeForNetwork(conf.ToAddress, params)
	if err != nil {
		return err
	}
	sendAmount, err := util.ParseAmount(conf.SendAmount, util.AmountUnitCKB)
	if err != nil {
		return err
	}

	cellCollector, store, tearDown, err := openCollector(&conf.sourceFlags)
	if err != nil {
		return err
	}
	defer tearDown()

	// Cells spent by one transfer are reserved so the following ones are
	// funded by other cells.
	reservingCollector, err := collector.NewReservingCollector(cellCollector, collector.DefaultReservationTTL)
	if err != nil {
		return err
	}
	defer reservingCollector.Close()

	builder, err := builders.NewSimpleBuilder(fromAddress, toAddress, sendAmount,
		builders.WithParams(params),
		builders.WithCollector(reservingCollector),
		builders.WithFeeRate(conf.FeeRate))
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	transactions := make([]*cellmodel.Transaction, 0, conf.Count)
	for i := 0; i < conf.Count; i++ {
		tx, err := builder.Build(ctx)
		if err != nil {
			return err
		}
		err = reservingCollector.Reserve(tx)
		if err != nil {
			return err
		}
		transactions = append(transactions, tx)
	}

	results := make([]*sendResult, len(transactions))
	for i, tx := range transactions {
		fee, err := tx.Fee()
		if err != nil {
			return err
		}
		rpcTransaction, err := rpcmodel.TransactionFromDomain(tx)
		if err != nil {
			return err
		}
		results[i] = &sendResult{Fee: fee.FormatCKB(), Transaction: rpcTransaction}
	}

	// The store only holds unspent cells, so the cells of the built
	// transfers leave it. Running sync brings them back if a transfer is
	// abandoned.
	if store != nil {
		for _, tx := range transactions {
			err := store.RemoveSpent(tx)
			if err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(os.Stderr, "Built %d unsigned transaction(s) sending %s each\n", len(results), sendAmount.FormatCKB())
	if len(results) == 1 {
		return printJSON(results[0])
	}
	return printJSON(results)
}
