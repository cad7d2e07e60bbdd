// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - the chain context passed into validation
//
// no ambient chain-tip globals: every validator and expiration call
// receives its view of the chain explicitly
package chain

// Context - what the asset layer needs to know about the chain
type Context interface {

	// current tip height
	Height() uint64

	// median-time-past of the current tip, used as "now" for
	// expiration comparisons
	MedianTimePast() int64

	// median-time-past of the block at a given height, for
	// reporting a record's human readable timestamp
	BlockTime(height uint64) (int64, bool)
}

// Tip - a fixed snapshot of the chain,
// also the test double for the Context interface
type Tip struct {
	TipHeight  uint64
	MedianTime int64
	BlockTimes map[uint64]int64
}

// Height - current tip height
func (t *Tip) Height() uint64 {
	return t.TipHeight
}

// MedianTimePast - current tip median-time-past
func (t *Tip) MedianTimePast() int64 {
	return t.MedianTime
}

// BlockTime - median-time-past of a stored block
func (t *Tip) BlockTime(height uint64) (int64, bool) {
	if height > t.TipHeight {
		return 0, false
	}
	time, ok := t.BlockTimes[height]
	return time, ok
}
