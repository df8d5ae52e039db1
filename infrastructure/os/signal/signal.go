// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// shutdownRequestChannel is used to initiate shutdown from code using the
// same code paths as when an interrupt signal is received.
var shutdownRequestChannel = make(chan struct{}, 1)

// interruptSignals defines the signals to catch in order to do a proper
// shutdown.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// ShutdownListener listens for OS Signals such as SIGINT (Ctrl+C) and
// shutdown requests from RequestShutdown. It returns a child of parent that
// is canceled when either is received.
func ShutdownListener(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		interruptChannel := make(chan os.Signal, 1)
		signal.Notify(interruptChannel, interruptSignals...)
		defer signal.Stop(interruptChannel)

		select {
		case sig := <-interruptChannel:
			log.Infof("Received signal (%s). Shutting down...", sig)
		case <-shutdownRequestChannel:
			log.Infof("Shutdown requested. Shutting down...")
		case <-parent.Done():
		}
		cancel()
	}()
	return ctx
}

// RequestShutdown cancels the context of a running ShutdownListener.
func RequestShutdown() {
	select {
	case shutdownRequestChannel <- struct{}{}:
	default:
	}
}
