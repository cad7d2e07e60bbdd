// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assetrecord

import (
	"github.com/bitmark-inc/assetd/fault"
	"github.com/bitmark-inc/assetd/merkle"
	"github.com/bitmark-inc/assetd/util"
)

// longest possible field including its length prefix
const maxFieldLength = MaxPublicDataLength + util.Varint64MaximumBytes

func nextString(buffer []byte, n int) (string, int, bool) {
	if n >= len(buffer) {
		return "", 0, false
	}
	length, offset := util.ClippedVarint64(buffer[n:], 0, maxFieldLength)
	if 0 == offset {
		return "", 0, false
	}
	n += offset
	if n+length > len(buffer) {
		return "", 0, false
	}
	return string(buffer[n : n+length]), n + length, true
}

// unpack just the payload-carried fields
func unpackPayload(buffer []byte) (*AssetRecord, int, bool) {
	record := &AssetRecord{}
	n := 0
	ok := false

	fields := []*string{
		&record.AssetId,
		&record.OwnerIdentity,
		&record.TransferTarget,
		&record.DisplayName,
		&record.PublicData,
		&record.Category,
	}
	for _, field := range fields {
		*field, n, ok = nextString(buffer, n)
		if !ok {
			return nil, 0, false
		}
	}
	return record, n, true
}

// UnpackAndVerify - deserialize a payload and verify its commitment
//
// the payload is re-packed and hashed; a result differing from the
// claimed hash means the off-band data was substituted
// malformed structure and hash mismatch are the same outcome: the
// payload is unverifiable
func UnpackAndVerify(payload []byte, claimedHash []byte) (*AssetRecord, error) {
	record, n, ok := unpackPayload(payload)
	if !ok || n != len(payload) {
		return nil, fault.UnverifiablePayload
	}

	calculated := record.Hash()
	var claimed merkle.Digest
	if nil != merkle.DigestFromBytes(&claimed, claimedHash) || calculated != claimed {
		return nil, fault.UnverifiablePayload
	}
	return record, nil
}

// UnpackStorage - restore a full record from its stored bytes
func UnpackStorage(buffer []byte) (*AssetRecord, error) {
	record, n, ok := unpackPayload(buffer)
	if !ok {
		return nil, fault.CorruptedRecord
	}

	height, offset := util.FromVarint64(buffer[n:])
	if 0 == offset {
		return nil, fault.CorruptedRecord
	}
	n += offset
	record.CreatedHeight = height

	if err := merkle.DigestFromBytes(&record.ConfirmingTx, buffer[n:]); nil != err {
		return nil, fault.CorruptedRecord
	}
	return record, nil
}
