package main

import (
	"fmt"

	"github.com/kaspanet/cellwallet/domain/address"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/infrastructure/db/cellstore"
	"github.com/kaspanet/cellwallet/infrastructure/network/indexer"
	"github.com/pkg/errors"
)

const syncPageSize = 100

func sync(conf *syncConfig) error {
	addr, err := address.DecodeForNetwork(conf.Address, conf.NetParams())
	if err != nil {
		return err
	}
	lock := addr.ToLockScript()

	ctx, cancel := commandContext()
	defer cancel()

	client := indexer.NewClient(conf.IndexerURL)
	var cells []*cellmodel.Cell
	var cursor []byte
	for {
		result, err := client.GetCells(ctx, lock, indexer.OrderAsc, syncPageSize, cursor)
		if err != nil {
			return err
		}
		for _, indexedCell := range result.Objects {
			cell, err := indexedCell.ToCell()
			if err != nil {
				return errors.Wrap(err, "the indexer returned an invalid cell")
			}
			cells = append(cells, cell)
		}
		log.Debugf("Fetched %d cells so far", len(cells))
		if len(result.Objects) < syncPageSize || len(result.LastCursor) == 0 {
			break
		}
		cursor = result.LastCursor
	}

	store, err := cellstore.New(conf.StoreDir)
	if err != nil {
		return err
	}
	defer store.Close()

	err = store.ReplaceCells(lock, cells)
	if err != nil {
		return err
	}
	fmt.Printf("Synced %d cells of %s into %s\n", len(cells), addr, conf.StoreDir)
	return nil
}
