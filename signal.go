// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// interruptSignals defines the signals to catch in order to do a proper
// shutdown of an in-flight conformance run.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// shutdownListener listens for OS Signals such as SIGINT (Ctrl+C).  It returns
// a context that is canceled when a signal is received so long-running
// suite runs can stop scheduling cases and report what finished so far.
func shutdownListener() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		interruptChannel := make(chan os.Signal, 1)
		signal.Notify(interruptChannel, interruptSignals...)

		// Listen for the initial signal and cancel the returned context.
		sig := <-interruptChannel
		sfxrLog.Infof("Received signal (%s).  Shutting down...", sig)
		cancel()

		// Listen for repeated signals and display a message so the user
		// knows the shutdown is in progress and the process is not hung.
		for sig := range interruptChannel {
			sfxrLog.Infof("Received signal (%s).  Already shutting down...",
				sig)
		}
	}()

	return ctx
}

// shutdownRequested returns true when the context returned by shutdownListener
// was canceled.  This simplifies early shutdown slightly since the caller can
// just use an if statement instead of a select.
func shutdownRequested(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
	}

	return false
}
