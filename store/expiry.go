// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/bitmark-inc/assetd/assetrecord"
	"github.com/bitmark-inc/assetd/chain"
	"github.com/bitmark-inc/assetd/fault"
	"github.com/bitmark-inc/assetd/storage"
)

// batch size for the cleanup scan
const cleanupScanBatch = 100

// ExpirationTime - derive an asset's effective expiration
//
// asset liveness is derivative of identity liveness: the owning
// identity's unprunable expiry is the asset's expiry; an identity
// with no unprunable record makes the asset never expired
func (h *Handle) ExpirationTime(record *assetrecord.AssetRecord, ctx chain.Context) int64 {
	expiry, ok := h.registry.UnprunableExpiry(record.OwnerIdentity)
	if !ok || 0 == expiry {
		return ctx.MedianTimePast() + 1
	}
	return expiry
}

// Cleanup - full scan erasing every record that reads as expired
//
// long running: the shutdown channel is checked between entries so
// an operator can abort without corrupting state - each erase is
// independently atomic; schedule only when no block application is
// in flight
func (h *Handle) Cleanup(ctx chain.Context, shutdown <-chan struct{}) (int, error) {
	cleaned := 0
	cursor := storage.Pool.Assets.NewFetchCursor()

	for {
		elements, err := cursor.Fetch(cleanupScanBatch)
		if nil != err {
			return cleaned, err
		}
		if 0 == len(elements) {
			break
		}

		for _, e := range elements {
			select {
			case <-shutdown:
				h.log.Info("cleanup aborted")
				return cleaned, nil
			default:
			}

			assetId := string(e.Key)

			record, err := h.Get(assetId, ctx)
			if nil != err && fault.CorruptedRecord != err {
				return cleaned, err
			}
			if nil != record {
				continue // still live
			}

			// physically present but reads as absent: expired or undecodable
			if err := h.Erase(assetId, true); nil != err {
				return cleaned, err
			}
			cleaned += 1
		}
	}

	if cleaned > 0 {
		h.log.Infof("cleanup: %d assets erased", cleaned)
	}
	return cleaned, nil
}
