package main

import (
	"fmt"

	"github.com/kaspanet/cellwallet/domain/address"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/domain/collector"
	"github.com/kaspanet/cellwallet/infrastructure/db/cellstore"
	"github.com/kaspanet/cellwallet/infrastructure/network/indexer"
	"github.com/kaspanet/cellwallet/util"
)

func balance(conf *balanceConfig) error {
	addr, err := address.DecodeForNetwork(conf.Address, conf.NetParams())
	if err != nil {
		return err
	}

	var capacity util.Amount
	if conf.UseStore {
		capacity, err = storeBalance(conf.StoreDir, addr.ToLockScript())
	} else {
		ctx, cancel := commandContext()
		defer cancel()
		capacity, err = indexer.NewClient(conf.IndexerURL).GetCellsCapacity(ctx, addr.ToLockScript())
	}
	if err != nil {
		return err
	}

	fmt.Printf("Balance:\t\t%s\n", capacity.FormatCKB())
	return nil
}

func storeBalance(storeDir string, lock *cellmodel.Script) (util.Amount, error) {
	store, err := cellstore.New(storeDir)
	if err != nil {
		return util.AmountZero, err
	}
	defer store.Close()

	capacity := util.AmountZero
	err = store.ForEachCell(lock, func(cell *cellmodel.Cell) (bool, error) {
		if !collector.IsSpendable(cell) {
			return true, nil
		}
		var addErr error
		capacity, addErr = capacity.Add(cell.Capacity)
		return addErr == nil, addErr
	})
	return capacity, err
}
