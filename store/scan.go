// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/bitmark-inc/assetd/assetrecord"
	"github.com/bitmark-inc/assetd/fault"
	"github.com/bitmark-inc/assetd/storage"
)

// Scan - visit every physically stored record in key order
//
// undecodable entries are skipped with a log line; fn returning
// false stops the scan early
func (h *Handle) Scan(fn func(record *assetrecord.AssetRecord) bool) error {
	return h.ScanFrom("", fn)
}

// ScanFrom - visit stored records in key order starting at an asset id
//
// an empty id scans from the start; the starting id itself is
// included when present
func (h *Handle) ScanFrom(assetId string, fn func(record *assetrecord.AssetRecord) bool) error {
	cursor := storage.Pool.Assets.NewFetchCursor()
	if "" != assetId {
		cursor.Seek([]byte(assetId))
	}

	for {
		elements, err := cursor.Fetch(cleanupScanBatch)
		if nil != err {
			return err
		}
		if 0 == len(elements) {
			return nil
		}

		for _, e := range elements {
			record, err := assetrecord.UnpackStorage(e.Value)
			if fault.CorruptedRecord == err {
				h.log.Errorf("scan: undecodable record: %q", e.Key)
				continue
			}
			if nil != err {
				return err
			}
			if !fn(record) {
				return nil
			}
		}
	}
}
