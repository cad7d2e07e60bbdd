// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"time"
)

// Clock - wall-clock approximation of the chain view
//
// for operator tools running detached from a live node: median-time-
// past trails real time by at most the block interval, so real time
// is a safe upper bound when deciding expiration
type Clock struct{}

// Height - unknown without a node
func (c Clock) Height() uint64 {
	return 0
}

// MedianTimePast - approximated by the current time
func (c Clock) MedianTimePast() int64 {
	return time.Now().Unix()
}

// BlockTime - unavailable without a node
func (c Clock) BlockTime(height uint64) (int64, bool) {
	return 0, false
}
