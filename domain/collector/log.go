package collector

import (
	"github.com/kaspanet/cellwallet/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CLCT")
