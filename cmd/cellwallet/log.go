package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kaspanet/cellwallet/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CWLT")

const (
	logFileName    = "cellwallet.log"
	errLogFileName = "cellwallet_err.log"
)

func initLog(flags *logFlags) {
	stderrLevel, ok := logger.LevelFromString(flags.StderrLogLevel)
	if !ok {
		fmt.Fprintf(os.Stderr, "The specified stderr log level [%s] is invalid\n", flags.StderrLogLevel)
		os.Exit(1)
	}
	logger.InitLog(filepath.Join(flags.LogDir, logFileName), filepath.Join(flags.LogDir, errLogFileName), stderrLevel)
	err := logger.ParseAndSetLogLevels(flags.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
