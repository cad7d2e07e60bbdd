// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store_test

import (
	"fmt"
	"testing"

	"github.com/bitmark-inc/assetd/assetrecord"
	"github.com/bitmark-inc/assetd/chain"
	"github.com/bitmark-inc/assetd/merkle"
	"github.com/bitmark-inc/assetd/script"
	"github.com/bitmark-inc/assetd/store"
)

func testRecord(assetId string, owner string) *assetrecord.AssetRecord {
	return &assetrecord.AssetRecord{
		AssetId:       assetId,
		OwnerIdentity: owner,
		DisplayName:   "a test asset",
		PublicData:    "payload",
		Category:      "assets/test",
		CreatedHeight: 10,
		ConfirmingTx:  merkle.NewDigest([]byte(assetId)),
	}
}

func TestPutGet(t *testing.T) {
	setup(t)
	defer teardown(t)

	registry := &fakeRegistry{unprunable: map[string]int64{}}
	h := store.New(registry)
	tip := &chain.Tip{TipHeight: 20, MedianTime: 5000}

	record := testRecord("alpha", "alice")
	if err := h.Put(record, nil, script.Activate, false); nil != err {
		t.Fatalf("put error: %s", err)
	}

	stored, err := h.Get("alpha", tip)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if nil == stored {
		t.Fatal("record not found")
	}
	if record.AssetId != stored.AssetId ||
		record.OwnerIdentity != stored.OwnerIdentity ||
		record.DisplayName != stored.DisplayName ||
		record.PublicData != stored.PublicData ||
		record.Category != stored.Category ||
		record.CreatedHeight != stored.CreatedHeight ||
		record.ConfirmingTx != stored.ConfirmingTx {
		t.Fatalf("round trip mismatch: %+v", stored)
	}

	absent, err := h.Get("missing", tip)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if nil != absent {
		t.Fatal("missing record must read as nil")
	}
}

func TestExpirationTransparency(t *testing.T) {
	setup(t)
	defer teardown(t)

	registry := &fakeRegistry{
		unprunable: map[string]int64{
			"alice": 4000, // already past
			"bob":   9000, // still ahead
		},
	}
	h := store.New(registry)
	tip := &chain.Tip{TipHeight: 20, MedianTime: 5000}

	expired := testRecord("alpha", "alice")
	live := testRecord("beta", "bob")
	if err := h.Put(expired, nil, script.Activate, false); nil != err {
		t.Fatalf("put error: %s", err)
	}
	if err := h.Put(live, nil, script.Activate, false); nil != err {
		t.Fatalf("put error: %s", err)
	}

	// the expired record reads as absent but is still physically there
	if record, _ := h.Get("alpha", tip); nil != record {
		t.Fatal("expired record must read as absent")
	}
	if record, _ := h.ReadRaw("alpha"); nil == record {
		t.Fatal("expired record must remain physically stored")
	}

	if record, _ := h.Get("beta", tip); nil == record {
		t.Fatal("live record must read as present")
	}

	// an identity with no unprunable record never expires its assets
	registry.unprunable = map[string]int64{}
	if record, _ := h.Get("alpha", tip); nil == record {
		t.Fatal("record without identity expiry must never expire")
	}
}

func TestLockLifecycle(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := store.New(&fakeRegistry{unprunable: map[string]int64{}})

	locked, err := h.IsLocked("alpha")
	if nil != err {
		t.Fatalf("lock error: %s", err)
	}
	if locked {
		t.Fatal("fresh asset must not be locked")
	}

	if err := h.SetLock("alpha"); nil != err {
		t.Fatalf("set lock error: %s", err)
	}
	if locked, _ = h.IsLocked("alpha"); !locked {
		t.Fatal("lock not set")
	}

	if err := h.ClearLock("alpha"); nil != err {
		t.Fatalf("clear lock error: %s", err)
	}
	if locked, _ = h.IsLocked("alpha"); locked {
		t.Fatal("lock not cleared")
	}
}

func TestStrictPutKeepsSnapshot(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := store.New(&fakeRegistry{unprunable: map[string]int64{}})

	previous := testRecord("alpha", "alice")
	next := testRecord("alpha", "alice")
	next.PublicData = "revised"
	next.CreatedHeight = 11

	if err := h.Put(next, previous, script.Update, true); nil != err {
		t.Fatalf("put error: %s", err)
	}

	snapshot, err := h.GetPrevious("alpha")
	if nil != err {
		t.Fatalf("get previous error: %s", err)
	}
	if nil == snapshot || "payload" != snapshot.PublicData {
		t.Fatalf("snapshot mismatch: %+v", snapshot)
	}

	if locked, _ := h.IsLocked("alpha"); !locked {
		t.Fatal("strict put must lock")
	}
}

func TestEraseRemovesHistory(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := store.New(&fakeRegistry{unprunable: map[string]int64{}})

	record := testRecord("alpha", "alice")
	if err := h.Put(record, nil, script.Activate, true); nil != err {
		t.Fatalf("put error: %s", err)
	}

	// several history entries for alpha, one for an unrelated asset
	for i := 0; i < 3; i += 1 {
		entry := &assetrecord.HistoryEntry{
			TxId:        merkle.NewDigest([]byte(fmt.Sprintf("tx-%d", i))),
			AssetId:     "alpha",
			Operation:   script.Update,
			Height:      uint64(10 + i),
			Description: "assetupdate: public data",
		}
		if err := h.PutHistory(entry); nil != err {
			t.Fatalf("put history error: %s", err)
		}
	}
	other := &assetrecord.HistoryEntry{
		TxId:      merkle.NewDigest([]byte("tx-other")),
		AssetId:   "beta",
		Operation: script.Activate,
		Height:    12,
	}
	if err := h.PutHistory(other); nil != err {
		t.Fatalf("put history error: %s", err)
	}

	if err := h.Erase("alpha", false); nil != err {
		t.Fatalf("erase error: %s", err)
	}

	if record, _ := h.ReadRaw("alpha"); nil != record {
		t.Fatal("record must be erased")
	}
	if locked, _ := h.IsLocked("alpha"); locked {
		t.Fatal("erase must clear the lock")
	}
	for i := 0; i < 3; i += 1 {
		txId := merkle.NewDigest([]byte(fmt.Sprintf("tx-%d", i)))
		if entry, _ := h.GetHistory(txId); nil != entry {
			t.Fatalf("history entry %d must be erased", i)
		}
	}
	if entry, _ := h.GetHistory(other.TxId); nil == entry {
		t.Fatal("unrelated history must survive")
	}
}

func TestCleanup(t *testing.T) {
	setup(t)
	defer teardown(t)

	registry := &fakeRegistry{
		unprunable: map[string]int64{
			"alice": 4000, // expired
			"bob":   9000, // live
		},
	}
	h := store.New(registry)
	tip := &chain.Tip{TipHeight: 20, MedianTime: 5000}

	if err := h.Put(testRecord("alpha", "alice"), nil, script.Activate, false); nil != err {
		t.Fatalf("put error: %s", err)
	}
	if err := h.Put(testRecord("beta", "bob"), nil, script.Activate, false); nil != err {
		t.Fatalf("put error: %s", err)
	}

	shutdown := make(chan struct{})
	cleaned, err := h.Cleanup(tip, shutdown)
	if nil != err {
		t.Fatalf("cleanup error: %s", err)
	}
	if 1 != cleaned {
		t.Fatalf("cleaned: actual: %d  expected: 1", cleaned)
	}

	if record, _ := h.ReadRaw("alpha"); nil != record {
		t.Fatal("expired record must be physically erased")
	}
	if record, _ := h.ReadRaw("beta"); nil == record {
		t.Fatal("live record must survive cleanup")
	}
}

func TestCleanupShutdown(t *testing.T) {
	setup(t)
	defer teardown(t)

	registry := &fakeRegistry{
		unprunable: map[string]int64{"alice": 4000},
	}
	h := store.New(registry)
	tip := &chain.Tip{TipHeight: 20, MedianTime: 5000}

	if err := h.Put(testRecord("alpha", "alice"), nil, script.Activate, false); nil != err {
		t.Fatalf("put error: %s", err)
	}

	shutdown := make(chan struct{})
	close(shutdown)

	cleaned, err := h.Cleanup(tip, shutdown)
	if nil != err {
		t.Fatalf("cleanup error: %s", err)
	}
	if 0 != cleaned {
		t.Fatalf("aborted cleanup must erase nothing, erased: %d", cleaned)
	}
}

func TestScanFrom(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := store.New(&fakeRegistry{unprunable: map[string]int64{}})

	for _, assetId := range []string{"alpha", "beta", "gamma"} {
		if err := h.Put(testRecord(assetId, "alice"), nil, script.Activate, false); nil != err {
			t.Fatalf("put error: %s", err)
		}
	}

	visited := []string{}
	err := h.ScanFrom("beta", func(record *assetrecord.AssetRecord) bool {
		visited = append(visited, record.AssetId)
		return true
	})
	if nil != err {
		t.Fatalf("scan error: %s", err)
	}
	if 2 != len(visited) || "beta" != visited[0] || "gamma" != visited[1] {
		t.Fatalf("visited: %v  expected: [beta gamma]", visited)
	}

	// an empty start scans everything
	visited = visited[:0]
	err = h.ScanFrom("", func(record *assetrecord.AssetRecord) bool {
		visited = append(visited, record.AssetId)
		return true
	})
	if nil != err {
		t.Fatalf("scan error: %s", err)
	}
	if 3 != len(visited) {
		t.Fatalf("visited: %v  expected all three", visited)
	}
}

func TestLookupCache(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := store.New(&fakeRegistry{unprunable: map[string]int64{}})
	tip := &chain.Tip{TipHeight: 20, MedianTime: 5000}

	record := testRecord("alpha", "alice")
	if err := h.Put(record, nil, script.Activate, false); nil != err {
		t.Fatalf("put error: %s", err)
	}

	first, err := h.Lookup("alpha", tip)
	if nil != err || nil == first {
		t.Fatalf("lookup error: %v %v", first, err)
	}

	// a write invalidates the cached copy
	record.PublicData = "changed"
	if err := h.Put(record, nil, script.Update, false); nil != err {
		t.Fatalf("put error: %s", err)
	}

	second, err := h.Lookup("alpha", tip)
	if nil != err || nil == second {
		t.Fatalf("lookup error: %v %v", second, err)
	}
	if "changed" != second.PublicData {
		t.Fatalf("stale cache: %q", second.PublicData)
	}
}
