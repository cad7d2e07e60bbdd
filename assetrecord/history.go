// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assetrecord

import (
	"strings"

	"github.com/bitmark-inc/assetd/fault"
	"github.com/bitmark-inc/assetd/merkle"
	"github.com/bitmark-inc/assetd/script"
	"github.com/bitmark-inc/assetd/util"
)

// HistoryEntry - one audit record per transaction that mutated an asset
//
// keyed by transaction hash; immutable once written; used for
// audit and listing, never for validation
type HistoryEntry struct {
	TxId        merkle.Digest    `json:"_id"`
	AssetId     string           `json:"asset"`
	Operation   script.Operation `json:"op"`
	Height      uint64           `json:"height"`
	Description string           `json:"description"`
}

// Pack - stored byte form of a history entry
func (entry *HistoryEntry) Pack() []byte {
	message := append([]byte{}, entry.TxId[:]...)
	message = appendString(message, entry.AssetId)
	message = append(message, util.ToVarint64(uint64(entry.Operation))...)
	message = append(message, util.ToVarint64(entry.Height)...)
	return appendString(message, entry.Description)
}

// UnpackHistory - restore a history entry from its stored bytes
func UnpackHistory(buffer []byte) (*HistoryEntry, error) {
	entry := &HistoryEntry{}

	if len(buffer) < merkle.DigestLength {
		return nil, fault.CorruptedRecord
	}
	copy(entry.TxId[:], buffer[:merkle.DigestLength])
	n := merkle.DigestLength

	assetId, n, ok := nextString(buffer, n)
	if !ok {
		return nil, fault.CorruptedRecord
	}
	entry.AssetId = assetId

	operation, offset := util.FromVarint64(buffer[n:])
	if 0 == offset {
		return nil, fault.CorruptedRecord
	}
	n += offset
	entry.Operation = script.Operation(operation)

	height, offset := util.FromVarint64(buffer[n:])
	if 0 == offset {
		return nil, fault.CorruptedRecord
	}
	n += offset
	entry.Height = height

	description, n, ok := nextString(buffer, n)
	if !ok || n != len(buffer) {
		return nil, fault.CorruptedRecord
	}
	entry.Description = description

	return entry, nil
}

// ChangedFields - human readable summary of what a mutation changed
//
// compares the incoming payload against the stored record; only
// fields that actually differ are named
func ChangedFields(operation script.Operation, incoming *AssetRecord, stored *AssetRecord) string {
	changed := []string{}

	if nil == stored {
		return operation.String()
	}
	if "" != incoming.DisplayName && incoming.DisplayName != stored.DisplayName {
		changed = append(changed, "name")
	}
	if "" != incoming.PublicData && incoming.PublicData != stored.PublicData {
		changed = append(changed, "publicvalue")
	}
	if "" != incoming.Category && incoming.Category != stored.Category {
		changed = append(changed, "category")
	}
	if "" != incoming.TransferTarget && incoming.TransferTarget != stored.OwnerIdentity {
		changed = append(changed, "identity")
	}

	if 0 == len(changed) {
		return operation.String()
	}
	return operation.String() + ": " + strings.Join(changed, ", ")
}
