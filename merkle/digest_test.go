// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"encoding/json"
	"testing"

	"github.com/bitmark-inc/assetd/merkle"
)

// sha3-256 of "hello world"
// printf '%s' 'hello world' | sha3sum -a 256
const expectedHex = "644bcc7e564373040999aac89e7622f3ca71fba1d972fd94a31c3bfbf24e3938"

func TestDigest(t *testing.T) {
	d := merkle.NewDigest([]byte("hello world"))

	if d.String() != expectedHex {
		t.Errorf("digest: %s  expected: %s", d, expectedHex)
	}
}

func TestDigestTextMarshalling(t *testing.T) {
	d := merkle.NewDigest([]byte("hello world"))

	buffer, err := json.Marshal(d)
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}

	expected := `"` + expectedHex + `"`
	if string(buffer) != expected {
		t.Errorf("marshalled: %s  expected: %s", buffer, expected)
	}

	var restored merkle.Digest
	err = json.Unmarshal(buffer, &restored)
	if nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if restored != d {
		t.Errorf("restored: %#v  expected: %#v", restored, d)
	}
}

func TestDigestFromBytes(t *testing.T) {
	d := merkle.NewDigest([]byte("some record"))

	var restored merkle.Digest
	err := merkle.DigestFromBytes(&restored, d[:])
	if nil != err {
		t.Fatalf("digest from bytes error: %s", err)
	}
	if restored != d {
		t.Errorf("restored: %#v  expected: %#v", restored, d)
	}

	err = merkle.DigestFromBytes(&restored, d[:31])
	if nil == err {
		t.Error("short buffer unexpectedly succeeded")
	}
}

func TestDigestIsEmpty(t *testing.T) {
	var zero merkle.Digest
	if !zero.IsEmpty() {
		t.Error("zero digest is not empty")
	}

	d := merkle.NewDigest(nil)
	if d.IsEmpty() {
		t.Error("computed digest is empty")
	}
}
