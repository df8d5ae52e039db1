package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kaspanet/cellwallet/domain/collector"
	"github.com/kaspanet/cellwallet/infrastructure/db/cellstore"
	"github.com/kaspanet/cellwallet/infrastructure/network/indexer"
	"github.com/kaspanet/cellwallet/infrastructure/os/signal"
)

const commandTimeout = 2 * time.Minute

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

// commandContext returns the context of a command, canceled on interrupt or
// after commandTimeout.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(signal.ShutdownListener(context.Background()), commandTimeout)
}

func printJSON(value interface{}) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

// openCollector returns the collector sourceFlags select, and a function
// releasing its resources.
func openCollector(sourceFlags *sourceFlags) (collector.Collector, *cellstore.CellStore, func(), error) {
	if !sourceFlags.UseStore {
		log.Debugf("Reading cells from the indexer at %s", sourceFlags.IndexerURL)
		return collector.NewIndexerCollector(indexer.NewClient(sourceFlags.IndexerURL)), nil, func() {}, nil
	}

	log.Debugf("Reading cells from the cell store at %s", sourceFlags.StoreDir)
	store, err := cellstore.New(sourceFlags.StoreDir)
	if err != nil {
		return nil, nil, nil, err
	}
	tearDown := func() {
		err := store.Close()
		if err != nil {
			log.Errorf("Error closing the cell store: %s", err)
		}
	}
	return collector.NewStoreCollector(store), store, tearDown, nil
}
