// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/bakaxbaka/SignatureFixer-sub000/internal/version"
)

var cfg *config

// runCommand dispatches to the subcommand matched by the command line parser.
func runCommand(ctx context.Context, cfg *config, name string) error {
	switch name {
	case "analyze":
		return cfg.Analyze.run(ctx)
	case "variants":
		return cfg.Variants.run(ctx)
	case "recover":
		return cfg.Recover.run(ctx)
	case "recovernonce":
		return cfg.RecoverNonce.run(ctx)
	case "wycheproof":
		return cfg.Wycheproof.run(ctx)
	case "cve42461":
		return cfg.Cve42461.run(ctx)
	}

	return fmt.Errorf("unknown command %q", name)
}

// sigfixerMain is the real main function for sigfixer.  It is necessary to
// work around the fact that deferred functions do not run when os.Exit() is
// called.
func sigfixerMain() error {
	// Load configuration and parse command line.  This function also
	// initializes logging and configures it accordingly.
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	tcfg, parser, err := loadConfig(appName)
	if err != nil {
		usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)
		fmt.Fprintln(os.Stderr, err)
		var e errSuppressUsage
		if !errors.As(err, &e) {
			fmt.Fprintln(os.Stderr, usageMessage)
		}
		return err
	}
	cfg = tcfg
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	if parser.Active == nil {
		err := fmt.Errorf("no command specified")
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintf(os.Stderr, "Use %s -h to list available commands\n",
			appName)
		return err
	}

	// Get a context that will be canceled when a shutdown signal has been
	// triggered from an OS signal such as SIGINT (Ctrl+C) so long suite runs
	// stop cleanly.
	ctx := shutdownListener()

	sfxrLog.Debugf("Version %s (Go version %s %s/%s)", version.String(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH)

	// Write cpu profile if requested.
	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			sfxrLog.Errorf("Unable to create cpu profile: %v", err)
			return err
		}
		pprof.StartCPUProfile(f)
		defer f.Close()
		defer pprof.StopCPUProfile()
	}

	if err := runCommand(ctx, cfg, parser.Active.Name); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	return nil
}

func main() {
	// Work around defer not working after os.Exit()
	if err := sigfixerMain(); err != nil {
		os.Exit(1)
	}
}
