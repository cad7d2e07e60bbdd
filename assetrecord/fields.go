// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assetrecord

import (
	"github.com/bitmark-inc/assetd/chain"
)

// Fields - the stable projection of a record for external consumers
//
// field names are part of the projection contract; downstream
// mirrors index on them
type Fields struct {
	Id         string `json:"_id"`
	TxId       string `json:"txid"`
	Height     uint64 `json:"height"`
	Time       int64  `json:"time"`
	Name       string `json:"name"`
	PublicData string `json:"publicvalue"`
	Category   string `json:"category"`
	Identity   string `json:"identity"`
	OwnerKey   string `json:"identity_key,omitempty"`
	ExpiresOn  int64  `json:"expires_on"`
	Expired    bool   `json:"expired"`
	Operation  string `json:"op,omitempty"`
}

// Project - build the projection fields for a record
//
// the block time is resolved through the chain context; expiration
// is supplied by the caller as it derives from the identity registry
func (record *AssetRecord) Project(ctx chain.Context, expiresOn int64) Fields {
	blockTime := int64(0)
	if ctx.Height() >= record.CreatedHeight {
		if t, ok := ctx.BlockTime(record.CreatedHeight); ok {
			blockTime = t
		}
	}

	return Fields{
		Id:         record.AssetId,
		TxId:       record.ConfirmingTx.String(),
		Height:     record.CreatedHeight,
		Time:       blockTime,
		Name:       record.DisplayName,
		PublicData: record.PublicData,
		Category:   record.Category,
		Identity:   record.OwnerIdentity,
		ExpiresOn:  expiresOn,
		Expired:    expiresOn <= ctx.MedianTimePast(),
	}
}
