// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/assetd/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{255, []byte{0xff, 0x01}},
	{256, []byte{0x80, 0x02}},
	{16383, []byte{0xff, 0x7f}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

var varint64TruncatedTests = [][]byte{
	{},
	{0x80},
	{0xff},
	{0x80, 0x80},
	{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
}

func TestToVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		if result := util.ToVarint64(item.value); !bytes.Equal(result, item.encoded) {
			t.Errorf("%d: ToVarint64(%x) -> %x  expected: %x", i, item.value, result, item.encoded)
		}
	}
}

func TestFromVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		value, count := util.FromVarint64(item.encoded)
		if value != item.value || count != len(item.encoded) {
			t.Errorf("%d: FromVarint64(%x) -> %x, %d  expected: %x, %d",
				i, item.encoded, value, count, item.value, len(item.encoded))
		}
	}

	for i, item := range varint64TruncatedTests {
		value, count := util.FromVarint64(item)
		if 0 != value || 0 != count {
			t.Errorf("truncated %d: FromVarint64(%x) -> %x, %d  expected: 0, 0", i, item, value, count)
		}
	}
}

func TestClippedVarint64(t *testing.T) {
	testItems := []struct {
		buffer  []byte
		minimum int
		maximum int
		value   int
		count   int
	}{
		{[]byte{0x05}, 1, 10, 5, 1},
		{[]byte{0x05}, 6, 10, 0, 0},  // below minimum
		{[]byte{0x0b}, 1, 10, 0, 0},  // above maximum
		{[]byte{0x05}, 10, 10, 0, 0}, // invalid range
		{[]byte{0x80}, 1, 10, 0, 0},  // truncated
		{[]byte{0x80, 0x01}, 1, 8192, 128, 2},
	}

	for i, item := range testItems {
		value, count := util.ClippedVarint64(item.buffer, item.minimum, item.maximum)
		if value != item.value || count != item.count {
			t.Errorf("%d: ClippedVarint64(%x, %d, %d) -> %d, %d  expected: %d, %d",
				i, item.buffer, item.minimum, item.maximum, value, count, item.value, item.count)
		}
	}
}
