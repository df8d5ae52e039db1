package indexer

import (
	"github.com/kaspanet/cellwallet/infrastructure/logger"
)

var log = logger.RegisterSubSystem("IDXR")
