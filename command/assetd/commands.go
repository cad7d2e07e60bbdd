// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/assetd/chain"
	"github.com/bitmark-inc/assetd/identity"
	"github.com/bitmark-inc/assetd/merkle"
	"github.com/bitmark-inc/assetd/store"
)

// data command handler
//
// commands that run against the opened database instead of starting
// the daemon services
func processDataCommand(log *logger.L, arguments []string, assetStore *store.Handle, registry identity.Registry, ctx chain.Context) {

	command := arguments[0]
	arguments = arguments[1:]

	switch command {

	case "lookup":
		if 1 != len(arguments) {
			exitwithstatus.Message("lookup: exactly one asset id required")
		}
		record, err := assetStore.ReadRaw(arguments[0])
		if nil != err {
			exitwithstatus.Message("lookup: error: %s", err)
		}
		if nil == record {
			exitwithstatus.Message("lookup: %q not found", arguments[0])
		}

		fields := record.Project(ctx, assetStore.ExpirationTime(record, ctx))
		fields.OwnerKey = identity.ShortKeyOf(registry, record.OwnerIdentity)
		printJSON(fields)

	case "history":
		if 1 != len(arguments) {
			exitwithstatus.Message("history: exactly one transaction id required")
		}
		var txId merkle.Digest
		if err := txId.UnmarshalText([]byte(arguments[0])); nil != err {
			exitwithstatus.Message("history: invalid transaction id: %s", err)
		}
		entry, err := assetStore.GetHistory(txId)
		if nil != err {
			exitwithstatus.Message("history: error: %s", err)
		}
		if nil == entry {
			exitwithstatus.Message("history: %q not found", arguments[0])
		}
		printJSON(entry)

	case "cleanup":
		shutdown := make(chan struct{})
		cleaned, err := assetStore.Cleanup(ctx, shutdown)
		if nil != err {
			exitwithstatus.Message("cleanup: error: %s", err)
		}
		log.Infof("cleanup: %d assets erased", cleaned)
		fmt.Printf("cleaned: %d\n", cleaned)

	default:
		exitwithstatus.Message("unknown command: %q", command)
	}
}

func printJSON(value interface{}) {
	buffer, err := json.MarshalIndent(value, "", "  ")
	if nil != err {
		exitwithstatus.Message("json marshal error: %s", err)
	}
	fmt.Printf("%s\n", buffer)
}
