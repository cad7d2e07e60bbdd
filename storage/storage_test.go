// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/assetd/storage"
)

// a string data item
type stringElement struct {
	key   string
	value string
}

// sorted by key
var scanData = []stringElement{
	{"apple", "red"},
	{"banana", "yellow"},
	{"cherry", "dark red"},
	{"damson", "purple"},
	{"elderberry", "black"},
}

func TestPutGetDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Assets

	key := []byte("some-asset")
	value := []byte("some-record")

	if err := p.Put(key, value); nil != err {
		t.Fatalf("put error: %s", err)
	}

	fetched, err := p.Get(key)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if !bytes.Equal(fetched, value) {
		t.Errorf("get: %q  expected: %q", fetched, value)
	}

	has, err := p.Has(key)
	if nil != err {
		t.Fatalf("has error: %s", err)
	}
	if !has {
		t.Error("has: false  expected: true")
	}

	if err := p.Delete(key); nil != err {
		t.Fatalf("delete error: %s", err)
	}

	fetched, err = p.Get(key)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if nil != fetched {
		t.Errorf("get after delete: %q  expected: nil", fetched)
	}
}

// ensure pools with different prefixes do not overlap
func TestPoolIsolation(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("same-key")

	if err := storage.Pool.Assets.Put(key, []byte("asset")); nil != err {
		t.Fatalf("put error: %s", err)
	}
	if err := storage.Pool.ExpiryLocks.Put(key, []byte{1}); nil != err {
		t.Fatalf("put error: %s", err)
	}

	if err := storage.Pool.Assets.Delete(key); nil != err {
		t.Fatalf("delete error: %s", err)
	}

	has, err := storage.Pool.ExpiryLocks.Has(key)
	if nil != err {
		t.Fatalf("has error: %s", err)
	}
	if !has {
		t.Error("lock lost after deleting asset with the same key")
	}
}

func TestCursorFetch(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.History

	for _, e := range scanData {
		if err := p.Put([]byte(e.key), []byte(e.value)); nil != err {
			t.Fatalf("put error: %s", err)
		}
	}

	cursor := p.NewFetchCursor()

	// fetch in two batches to ensure the cursor advances
	first, err := cursor.Fetch(3)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	second, err := cursor.Fetch(10)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}

	all := append(first, second...)
	if len(all) != len(scanData) {
		t.Fatalf("fetched: %d elements  expected: %d", len(all), len(scanData))
	}

	for i, e := range all {
		if string(e.Key) != scanData[i].key || string(e.Value) != scanData[i].value {
			t.Errorf("%d: %q→%q  expected: %q→%q",
				i, e.Key, e.Value, scanData[i].key, scanData[i].value)
		}
	}

	// exhausted cursor returns nothing
	third, err := cursor.Fetch(1)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if 0 != len(third) {
		t.Errorf("exhausted cursor returned: %d elements", len(third))
	}
}

func TestCursorSeek(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.History

	for _, e := range scanData {
		if err := p.Put([]byte(e.key), []byte(e.value)); nil != err {
			t.Fatalf("put error: %s", err)
		}
	}

	// the seeked key itself is the first element returned
	cursor := p.NewFetchCursor().Seek([]byte("cherry"))

	elements, err := cursor.Fetch(10)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}

	expected := scanData[2:]
	if len(elements) != len(expected) {
		t.Fatalf("fetched: %d elements  expected: %d", len(elements), len(expected))
	}
	for i, e := range elements {
		if string(e.Key) != expected[i].key || string(e.Value) != expected[i].value {
			t.Errorf("%d: %q→%q  expected: %q→%q",
				i, e.Key, e.Value, expected[i].key, expected[i].value)
		}
	}

	// seeking past the last key yields nothing
	elements, err = cursor.Seek([]byte("plum")).Fetch(10)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if 0 != len(elements) {
		t.Errorf("seek past end returned: %d elements", len(elements))
	}
}

func TestFetchInvalidCount(t *testing.T) {
	setup(t)
	defer teardown(t)

	cursor := storage.Pool.Assets.NewFetchCursor()
	if _, err := cursor.Fetch(0); nil == err {
		t.Error("fetch with zero count unexpectedly succeeded")
	}
}
