// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/bitmark-inc/assetd/assetrecord"
	"github.com/bitmark-inc/assetd/merkle"
	"github.com/bitmark-inc/assetd/storage"
)

// PutHistory - append an audit entry keyed by its transaction hash
func (h *Handle) PutHistory(entry *assetrecord.HistoryEntry) error {
	return storage.Pool.History.Put(entry.TxId[:], entry.Pack())
}

// GetHistory - read one audit entry
//
// returns nil with no error if the entry is absent
func (h *Handle) GetHistory(txId merkle.Digest) (*assetrecord.HistoryEntry, error) {
	buffer, err := storage.Pool.History.Get(txId[:])
	if nil != err {
		return nil, err
	}
	if nil == buffer {
		return nil, nil
	}
	return assetrecord.UnpackHistory(buffer)
}

// EraseHistory - remove one audit entry
//
// used when a reorg invalidates the transaction that produced it
func (h *Handle) EraseHistory(txId merkle.Digest) error {
	return storage.Pool.History.Delete(txId[:])
}

// batch size for the history scan during asset erasure
const historyScanBatch = 100

// remove every history entry that references an asset
func (h *Handle) eraseHistoryOfAsset(assetId string) error {
	cursor := storage.Pool.History.NewFetchCursor()
	for {
		elements, err := cursor.Fetch(historyScanBatch)
		if nil != err {
			return err
		}
		if 0 == len(elements) {
			return nil
		}
		for _, e := range elements {
			entry, err := assetrecord.UnpackHistory(e.Value)
			if nil != err {
				h.log.Errorf("history scan: undecodable entry: %x", e.Key)
				continue
			}
			if entry.AssetId != assetId {
				continue
			}
			if err := storage.Pool.History.Delete(e.Key); nil != err {
				return err
			}
		}
	}
}
