package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/cellwallet/infrastructure/config"
	"github.com/kaspanet/cellwallet/util"
	"github.com/kaspanet/cellwallet/version"
	"github.com/pkg/errors"
)

const (
	sendSubCmd    = "send"
	balanceSubCmd = "balance"
	syncSubCmd    = "sync"
)

const appName = "cellwallet"

var (
	defaultAppDir = util.AppDataDir(appName, false)
	defaultLogDir = filepath.Join(defaultAppDir, "logs")
)

type configFlags struct {
	ShowVersion bool `short:"V" long:"version" description:"Display version information and exit"`
	config.NetworkFlags
}

type logFlags struct {
	LogDir         string `long:"logdir" description:"Directory to log output"`
	LogLevel       string `long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems" default:"info"`
	StderrLogLevel string `long:"stderr-loglevel" description:"Also print log entries at this level and above to stderr {trace, debug, info, warn, error, critical, off}" default:"off"`
}

type sourceFlags struct {
	IndexerURL string `long:"indexer" short:"i" description:"Indexer RPC endpoint to read cells from (default: the network's public indexer)"`
	UseStore   bool   `long:"use-store" description:"Read cells from the local cell store, filled by the sync command, instead of the indexer"`
	StoreDir   string `long:"storedir" description:"Directory of the local cell store"`
}

type sendConfig struct {
	FromAddress string `long:"from-address" short:"f" description:"The address to send CKB from, which also receives the change" required:"true"`
	ToAddress   string `long:"to-address" short:"t" description:"The address to send CKB to" required:"true"`
	SendAmount  string `long:"send-amount" short:"v" description:"An amount to send in CKB (e.g. 1234.12345678)" required:"true"`
	FeeRate     uint64 `long:"fee-rate" description:"Fee rate in shannons per 1000 bytes (default: the network's minimum fee rate)"`
	Count       int    `long:"count" short:"c" description:"Number of transfers to build, each funded by different cells" default:"1"`
	sourceFlags
	logFlags
	config.NetworkFlags
}

type balanceConfig struct {
	Address string `long:"address" short:"d" description:"The address to check the balance of" required:"true"`
	sourceFlags
	logFlags
	config.NetworkFlags
}

type syncConfig struct {
	Address    string `long:"address" short:"d" description:"The address to sync the cells of" required:"true"`
	IndexerURL string `long:"indexer" short:"i" description:"Indexer RPC endpoint to read cells from (default: the network's public indexer)"`
	StoreDir   string `long:"storedir" description:"Directory of the local cell store"`
	logFlags
	config.NetworkFlags
}

func parseCommandLine() (subCommand string, config interface{}) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	parser.SubcommandsOptional = true

	sendConf := &sendConfig{}
	parser.AddCommand(sendSubCmd, "Builds an unsigned transfer to an address",
		"Builds an unsigned CKB transfer and prints it in the node's JSON transaction format", sendConf)

	balanceConf := &balanceConfig{}
	parser.AddCommand(balanceSubCmd, "Shows the balance of an address",
		"Shows the total capacity of the live cells of an address in CKB", balanceConf)

	syncConf := &syncConfig{}
	parser.AddCommand(syncSubCmd, "Syncs the cells of an address into the local cell store",
		"Fetches the live cells of an address from the indexer and stores them in the local cell store", syncConf)

	_, err := parser.Parse()

	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
		return "", nil
	}

	if cfg.ShowVersion {
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}
	if parser.Command.Active == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	switch parser.Command.Active.Name {
	case sendSubCmd:
		resolveCommonFlags(parser, &sendConf.NetworkFlags, &cfg.NetworkFlags, &sendConf.logFlags)
		resolveSourceFlags(&sendConf.sourceFlags, &sendConf.NetworkFlags)
		if sendConf.Count < 1 {
			printErrorAndExit(errors.Errorf("--count must be at least 1, got %d", sendConf.Count))
		}
		config = sendConf
	case balanceSubCmd:
		resolveCommonFlags(parser, &balanceConf.NetworkFlags, &cfg.NetworkFlags, &balanceConf.logFlags)
		resolveSourceFlags(&balanceConf.sourceFlags, &balanceConf.NetworkFlags)
		config = balanceConf
	case syncSubCmd:
		resolveCommonFlags(parser, &syncConf.NetworkFlags, &cfg.NetworkFlags, &syncConf.logFlags)
		if syncConf.IndexerURL == "" {
			syncConf.IndexerURL = syncConf.NetParams().DefaultIndexerURL
		}
		if syncConf.StoreDir == "" {
			syncConf.StoreDir = defaultStoreDir(&syncConf.NetworkFlags)
		}
		config = syncConf
	}

	return parser.Command.Active.Name, config
}

func resolveCommonFlags(parser *flags.Parser, networkFlags, globalNetworkFlags *config.NetworkFlags,
	logFlags *logFlags) {

	combineNetworkFlags(networkFlags, globalNetworkFlags)
	err := networkFlags.ResolveNetwork(parser)
	if err != nil {
		printErrorAndExit(err)
	}

	if logFlags.LogDir == "" {
		logFlags.LogDir = defaultLogDir
	}
	initLog(logFlags)
}

func resolveSourceFlags(sourceFlags *sourceFlags, networkFlags *config.NetworkFlags) {
	if sourceFlags.IndexerURL == "" {
		sourceFlags.IndexerURL = networkFlags.NetParams().DefaultIndexerURL
	}
	if sourceFlags.StoreDir == "" {
		sourceFlags.StoreDir = defaultStoreDir(networkFlags)
	}
}

func defaultStoreDir(networkFlags *config.NetworkFlags) string {
	return filepath.Join(defaultAppDir, networkFlags.NetParams().Name, "cells")
}

func combineNetworkFlags(dst, src *config.NetworkFlags) {
	dst.Testnet = dst.Testnet || src.Testnet
	if dst.OverrideNetParamsFile == "" {
		dst.OverrideNetParamsFile = src.OverrideNetParamsFile
	}
}
