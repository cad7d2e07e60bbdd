// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/assetd/assetrecord"
	"github.com/bitmark-inc/assetd/background"
	"github.com/bitmark-inc/assetd/chain"
	"github.com/bitmark-inc/assetd/configuration"
	"github.com/bitmark-inc/assetd/identity"
	"github.com/bitmark-inc/assetd/projection"
	"github.com/bitmark-inc/assetd/storage"
	"github.com/bitmark-inc/assetd/store"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		fmt.Printf("%s: version: %s\n", program, version)
		return
	}

	if len(options["help"]) > 0 {
		printHelp(program)
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	logging := logger.Configuration{
		Directory: theConfiguration.Logging.Directory,
		File:      theConfiguration.Logging.File,
		Size:      theConfiguration.Logging.Size,
		Count:     theConfiguration.Logging.Count,
		Console:   theConfiguration.Logging.Console,
		Levels:    theConfiguration.Logging.Levels,
	}
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// identity registry snapshot
	registry, err := identity.LoadRegistryFile(theConfiguration.RegistryFile)
	if nil != err {
		log.Criticalf("registry load error: %s", err)
		exitwithstatus.Message("registry load error: %s", err)
	}
	log.Infof("registry: %d identities", len(registry.Identities))

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	assetStore := store.New(registry)
	clock := chain.Clock{}

	// these commands are allowed to access the internal database
	if len(arguments) > 0 {
		processDataCommand(log, arguments, assetStore, registry, clock)
		return
	}

	// start the projection broadcaster
	var sink projection.Sink = projection.Noop{}
	if len(theConfiguration.Projection.Publish) > 0 {
		broadcaster, err := projection.NewBroadcaster(theConfiguration.Projection.Publish)
		if nil != err {
			log.Criticalf("broadcaster error: %s", err)
			exitwithstatus.Message("broadcaster error: %s", err)
		}
		defer broadcaster.Stop()
		sink = broadcaster

		// push the full current state so a fresh mirror can catch up
		log.Info("resync projections")
		if err := resync(assetStore, registry, clock, sink); nil != err {
			log.Criticalf("resync error: %s", err)
			exitwithstatus.Message("resync error: %s", err)
		}
	}

	// periodic expired-asset cleanup
	clean := &cleaner{
		store:   assetStore,
		clock:   clock,
		minutes: theConfiguration.CleanupMinutes,
		log:     logger.New("cleaner"),
	}
	processes := background.Start(background.Processes{clean}, nil)
	defer processes.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}

// push every stored record through the sink
func resync(assetStore *store.Handle, registry identity.Registry, ctx chain.Context, sink projection.Sink) error {
	return assetStore.Scan(func(record *assetrecord.AssetRecord) bool {
		fields := record.Project(ctx, assetStore.ExpirationTime(record, ctx))
		fields.OwnerKey = identity.ShortKeyOf(registry, record.OwnerIdentity)
		sink.RecordChanged(fields)
		return true
	})
}

func printHelp(program string) {
	fmt.Printf("usage: %s [--help] [--quiet] [--version] --config-file=FILE [command]\n", program)
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  lookup ID     show the stored record for an asset")
	fmt.Println("  history TXID  show the audit entry for a transaction")
	fmt.Println("  cleanup       erase expired assets and exit")
}
