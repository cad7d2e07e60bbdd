// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assetrecord

import (
	"github.com/bitmark-inc/assetd/merkle"
	"github.com/bitmark-inc/assetd/util"
)

// payload field order is fixed; changing it breaks every stored
// commitment hash
func appendString(buffer []byte, s string) []byte {
	buffer = append(buffer, util.ToVarint64(uint64(len(s)))...)
	return append(buffer, s...)
}

// Pack - canonical payload bytes
//
// transaction-dependent fields (height, confirming tx) are excluded;
// the validator sets those after verification
func (record *AssetRecord) Pack() Packed {
	message := []byte{}
	message = appendString(message, record.AssetId)
	message = appendString(message, record.OwnerIdentity)
	message = appendString(message, record.TransferTarget)
	message = appendString(message, record.DisplayName)
	message = appendString(message, record.PublicData)
	message = appendString(message, record.Category)
	return message
}

// Hash - commitment hash over the canonical payload bytes
func (record *AssetRecord) Hash() merkle.Digest {
	return merkle.NewDigest(record.Pack())
}

// PackStorage - full record bytes for the asset store
//
// payload fields followed by height and confirming transaction
func (record *AssetRecord) PackStorage() []byte {
	message := []byte(record.Pack())
	message = append(message, util.ToVarint64(record.CreatedHeight)...)
	return append(message, record.ConfirmingTx[:]...)
}
