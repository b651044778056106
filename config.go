// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	flags "github.com/jessevdk/go-flags"

	"github.com/bakaxbaka/SignatureFixer-sub000/internal/version"
	"github.com/bakaxbaka/SignatureFixer-sub000/sampleconfig"
)

const (
	defaultConfigFilename = "sigfixer.conf"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "sigfixer.log"
	defaultLogLevel       = "info"
)

var (
	defaultHomeDir    = appHomeDir()
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(defaultHomeDir, defaultLogDirname)
)

// appHomeDir returns the directory used for the default config file and log
// output.  It falls back to the working directory when the environment does
// not define a home directory.
func appHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".sigfixer")
}

// errSuppressUsage signifies that an error that happened during the initial
// configuration phase should suppress the usage output since it was not
// caused by the user.  It is also used for command failures such as a suite
// run with mismatches where the error text is the whole story.
type errSuppressUsage string

// Error implements the error interface.
func (e errSuppressUsage) Error() string {
	return string(e)
}

// config defines the configuration options for sigfixer.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion   bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile    string `short:"C" long:"configfile" description:"Path to configuration file"`
	LogDir        string `long:"logdir" description:"Directory to log output"`
	NoFileLogging bool   `long:"nofilelogging" description:"Disable file logging"`
	CPUProfile    string `long:"cpuprofile" description:"Write CPU profile to the specified file"`
	DebugLevel    string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`

	Analyze      analyzeCmd      `command:"analyze" description:"Strictly parse a DER signature and report every encoding deviation"`
	Variants     variantsCmd     `command:"variants" description:"Generate the malleability variant catalogue for a canonical signature"`
	Recover      recoverCmd      `command:"recover" description:"Recover a private key from two signatures sharing a nonce"`
	RecoverNonce recoverNonceCmd `command:"recovernonce" description:"Recover a private key from one signature with a known nonce"`
	Wycheproof   wycheproofCmd   `command:"wycheproof" description:"Run a Wycheproof vector file against a verification library"`
	Cve42461     cveCmd          `command:"cve42461" description:"Probe a verification library for BER signature acceptance (CVE-2024-42461)"`
}

// createDefaultConfigFile copies the commented sample configuration to the
// given destination path, creating any missing directories along the way.
func createDefaultConfigFile(destPath string) error {
	err := os.MkdirAll(filepath.Dir(destPath), 0700)
	if err != nil {
		return err
	}
	return os.WriteFile(destPath, []byte(sampleconfig.Sigfixer()), 0644)
}

// loadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in sigfixer functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options.  Command line options always take
// precedence.
//
// Logging is initialized here as well, so the returned configuration is
// ready for the selected subcommand, which the returned parser tracks in its
// Active field, to run.
func loadConfig(appName string) (*config, *flags.Parser, error) {
	// Default config.
	cfg := config{
		ConfigFile: defaultConfigFile,
		DebugLevel: defaultLogLevel,
		LogDir:     defaultLogDir,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.  Any errors aside from the
	// help message error can be ignored here since they will be caught by
	// the final parse below.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag|flags.PassDoubleDash|flags.IgnoreUnknown)
	preParser.SubcommandsOptional = true
	_, err := preParser.Parse()
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
	}

	// Show the version and exit if the version flag was specified.
	if preCfg.ShowVersion {
		fmt.Printf("%s version %s (Go version %s %s/%s)\n", appName,
			version.String(), runtime.Version(), runtime.GOOS,
			runtime.GOARCH)
		os.Exit(0)
	}

	// Special show command to list supported subsystems and exit.  This is
	// handled on the pre-parse config so it works without a command.
	if preCfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		os.Exit(0)
	}

	// Create the default config file when it does not already exist and the
	// default location was not overridden, so a commented example is in
	// place for the user to edit.  A failure here is not fatal since the
	// defaults still apply.
	if preCfg.ConfigFile == defaultConfigFile {
		if _, err := os.Stat(preCfg.ConfigFile); os.IsNotExist(err) {
			if err := createDefaultConfigFile(preCfg.ConfigFile); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to create default "+
					"config file: %v\n", err)
			}
		}
	}

	// Load additional config from file.
	parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	err = flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
	if err != nil {
		var e *os.PathError
		if !errors.As(err, &e) {
			str := fmt.Sprintf("failed to parse config file: %v", err)
			return nil, nil, errSuppressUsage(str)
		}
		// A missing config file at the default location is fine, but one
		// that was explicitly specified must exist.
		if preCfg.ConfigFile != defaultConfigFile {
			str := fmt.Sprintf("failed to read config file: %v", err)
			return nil, nil, errSuppressUsage(str)
		}
	}

	// Parse command line options again to ensure they take precedence.
	_, err = parser.Parse()
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		return nil, nil, err
	}

	// Initialize log rotation.  After the log rotation has been initialized,
	// the logger variables may be used.
	if !cfg.NoFileLogging {
		initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename))
	}

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, nil, fmt.Errorf("loadConfig: %w", err)
	}

	return &cfg, parser, nil
}
