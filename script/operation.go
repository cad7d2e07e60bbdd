// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

// Operation - an asset operation kind carried in a tagged output
type Operation int

// the service marker preceding any asset operation tag
const ServiceAssetMarker = 8

// enumerate the possible operations
const (
	NullOperation Operation = iota
	Activate
	Update
	Transfer
	Mint
)

// IsAssetOperation - true for any recognised asset operation value
func IsAssetOperation(n int) bool {
	op := Operation(n)
	return op == Activate ||
		op == Mint ||
		op == Update ||
		op == Transfer
}

// String - operation name for display and history records
func (op Operation) String() string {
	switch op {
	case Activate:
		return "assetactivate"
	case Update:
		return "assetupdate"
	case Mint:
		return "assetmint"
	case Transfer:
		return "assettransfer"
	default:
		return "<unknown asset op>"
	}
}
