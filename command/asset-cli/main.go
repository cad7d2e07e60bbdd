// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "asset-cli"
	app.Usage = "inspect and maintain an asset database"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "database, d",
			Value: "asset",
			Usage: " path to the asset database `FILE` (without .leveldb suffix)",
		},
		cli.StringFlag{
			Name:  "registry, r",
			Value: "",
			Usage: " identity registry snapshot `FILE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "lookup",
			Usage:     "show the stored record for an asset",
			ArgsUsage: "ID",
			Action:    runLookup,
		},
		{
			Name:      "history",
			Usage:     "show the audit entry for a transaction",
			ArgsUsage: "TXID",
			Action:    runHistory,
		},
		{
			Name:   "list",
			Usage:  "list every stored asset",
			Action: runList,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "from",
					Usage: "start listing at this asset id",
				},
			},
		},
		{
			Name:      "decode",
			Usage:     "decode the asset operation carried by a transaction",
			ArgsUsage: "HEX-TX",
			Action:    runDecode,
		},
		{
			Name:      "verify",
			Usage:     "dry-run a transaction against the database under admission rules",
			ArgsUsage: "HEX-TX OWNER-ID",
			Action:    runVerify,
		},
		{
			Name:   "cleanup",
			Usage:  "erase expired assets",
			Action: runCleanup,
		},
	}

	// store and storage tags require a live logger even for a tool
	logging := logger.Configuration{
		Directory: os.TempDir(),
		File:      "asset-cli.log",
		Size:      1048576,
		Count:     1,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		fmt.Fprintf(app.ErrWriter, "logger initialise failed: %s\n", err)
		os.Exit(1)
	}
	defer logger.Finalise()

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
