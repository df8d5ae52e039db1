package main

import (
	"github.com/kaspanet/cellwallet/util/panics"
	"github.com/kaspanet/cellwallet/version"
	"github.com/pkg/errors"
)

func main() {
	defer panics.HandlePanic(log)

	subCmd, config := parseCommandLine()
	log.Infof("%s version %s", appName, version.Version())

	var err error
	switch subCmd {
	case sendSubCmd:
		err = send(config.(*sendConfig))
	case balanceSubCmd:
		err = balance(config.(*balanceConfig))
	case syncSubCmd:
		err = sync(config.(*syncConfig))
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	if err != nil {
		printErrorAndExit(err)
	}
}
