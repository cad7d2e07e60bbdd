// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/assetd/assetrecord"
	"github.com/bitmark-inc/assetd/chain"
	"github.com/bitmark-inc/assetd/fault"
	"github.com/bitmark-inc/assetd/identity"
	"github.com/bitmark-inc/assetd/merkle"
	"github.com/bitmark-inc/assetd/storage"
	"github.com/bitmark-inc/assetd/store"
	"github.com/bitmark-inc/assetd/transaction"
	"github.com/bitmark-inc/assetd/validator"
)

// open the database and registry from the global flags
func openStore(c *cli.Context) (*store.Handle, *identity.StaticRegistry, error) {
	registry, err := identity.LoadRegistryFile(c.GlobalString("registry"))
	if nil != err {
		return nil, nil, err
	}
	if err := storage.Initialise(c.GlobalString("database")); nil != err {
		return nil, nil, err
	}
	return store.New(registry), registry, nil
}

func runLookup(c *cli.Context) error {
	if 1 != c.NArg() {
		return fmt.Errorf("lookup: exactly one asset id required")
	}

	assetStore, registry, err := openStore(c)
	if nil != err {
		return err
	}
	defer storage.Finalise()

	record, err := assetStore.ReadRaw(c.Args().Get(0))
	if nil != err {
		return err
	}
	if nil == record {
		return fmt.Errorf("asset: %q not found", c.Args().Get(0))
	}

	ctx := chain.Clock{}
	fields := record.Project(ctx, assetStore.ExpirationTime(record, ctx))
	fields.OwnerKey = identity.ShortKeyOf(registry, record.OwnerIdentity)
	return printJSON(c, fields)
}

func runHistory(c *cli.Context) error {
	if 1 != c.NArg() {
		return fmt.Errorf("history: exactly one transaction id required")
	}

	var txId merkle.Digest
	if err := txId.UnmarshalText([]byte(c.Args().Get(0))); nil != err {
		return err
	}

	assetStore, _, err := openStore(c)
	if nil != err {
		return err
	}
	defer storage.Finalise()

	entry, err := assetStore.GetHistory(txId)
	if nil != err {
		return err
	}
	if nil == entry {
		return fmt.Errorf("transaction: %q not found", c.Args().Get(0))
	}
	return printJSON(c, entry)
}

func runList(c *cli.Context) error {
	assetStore, _, err := openStore(c)
	if nil != err {
		return err
	}
	defer storage.Finalise()

	ctx := chain.Clock{}
	return assetStore.ScanFrom(c.String("from"), func(record *assetrecord.AssetRecord) bool {
		expired := ""
		if ctx.MedianTimePast() >= assetStore.ExpirationTime(record, ctx) {
			expired = " (expired)"
		}
		fmt.Fprintf(c.App.Writer, "%s  owner=%s  height=%d%s\n",
			record.AssetId, record.OwnerIdentity, record.CreatedHeight, expired)
		return true
	})
}

func runDecode(c *cli.Context) error {
	if 1 != c.NArg() {
		return fmt.Errorf("decode: exactly one hex transaction required")
	}

	tx, err := decodeTransaction(c.Args().Get(0))
	if nil != err {
		return err
	}

	op, record, ok := validator.DecodeAndParse(tx)
	if !ok {
		return fault.NotAssetTransaction
	}

	return printJSON(c, map[string]interface{}{
		"txid":   tx.TxId().String(),
		"op":     op.String(),
		"record": record,
	})
}

func runVerify(c *cli.Context) error {
	if 2 != c.NArg() {
		return fmt.Errorf("verify: hex transaction and owner id required")
	}

	tx, err := decodeTransaction(c.Args().Get(0))
	if nil != err {
		return err
	}
	owner := c.Args().Get(1)

	assetStore, registry, err := openStore(c)
	if nil != err {
		return err
	}
	defer storage.Finalise()

	op, args, ok := validator.DecodeOperation(tx)
	if !ok {
		return fault.NotAssetTransaction
	}

	v := validator.New(assetStore, registry, nil)
	ctx := chain.Clock{}
	outcome, err := v.Validate(tx, op, args, [][]byte{[]byte(owner)}, validator.Strict, ctx, 0, true)
	if nil != err {
		return err
	}

	result := map[string]interface{}{
		"txid":   tx.TxId().String(),
		"op":     op.String(),
		"status": outcome.Status.String(),
	}
	if nil != outcome.Reason {
		result["reason"] = outcome.Reason.Error()
	}
	return printJSON(c, result)
}

func runCleanup(c *cli.Context) error {
	assetStore, _, err := openStore(c)
	if nil != err {
		return err
	}
	defer storage.Finalise()

	shutdown := make(chan struct{})
	cleaned, err := assetStore.Cleanup(chain.Clock{}, shutdown)
	if nil != err {
		return err
	}
	fmt.Fprintf(c.App.Writer, "cleaned: %d\n", cleaned)
	return nil
}

// transactions are passed on the command line as the hex of a JSON
// encoded transaction; raw wire decoding belongs to the ledger layer
func decodeTransaction(argument string) (*transaction.Transaction, error) {
	buffer, err := hex.DecodeString(argument)
	if nil != err {
		return nil, err
	}
	tx := &transaction.Transaction{}
	if err := json.Unmarshal(buffer, tx); nil != err {
		return nil, err
	}
	return tx, nil
}

func printJSON(c *cli.Context, value interface{}) error {
	buffer, err := json.MarshalIndent(value, "", "  ")
	if nil != err {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s\n", buffer)
	return nil
}
