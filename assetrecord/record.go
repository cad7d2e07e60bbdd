// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package assetrecord - the authoritative asset record and its codecs
//
// the payload form binds the off-band data output to the on-script
// commitment hash; the storage form additionally carries the
// transaction-dependent fields set by the validator
package assetrecord

import (
	"strings"

	"github.com/bitmark-inc/assetd/merkle"
)

// field size limits
const (
	MaxDisplayNameLength = 64
	MaxCategoryLength    = 256
	MaxPublicDataLength  = 2048
)

// ReservedCategoryPrefix - categories live in a reserved namespace
const ReservedCategoryPrefix = "assets"

// AssetRecord - the authoritative entity for one asset
type AssetRecord struct {
	AssetId        string        `json:"_id"`            // immutable after activation
	OwnerIdentity  string        `json:"identity"`       // current controller
	TransferTarget string        `json:"transferTarget"` // transient, cleared once applied
	DisplayName    string        `json:"name"`           // set only by activation
	PublicData     string        `json:"publicvalue"`    // opaque blob
	Category       string        `json:"category"`       // reserved namespace
	CreatedHeight  uint64        `json:"height"`         // height of last confirmed mutation
	ConfirmingTx   merkle.Digest `json:"txid"`           // transaction producing current state
}

// Packed - canonical payload bytes
type Packed []byte

// HasReservedCategory - check the namespace prefix rule
//
// activation requires the exact prefix, update accepts any case
func HasReservedCategory(category string, caseInsensitive bool) bool {
	if caseInsensitive {
		if len(category) < len(ReservedCategoryPrefix) {
			return false
		}
		return strings.EqualFold(category[:len(ReservedCategoryPrefix)], ReservedCategoryPrefix)
	}
	return strings.HasPrefix(category, ReservedCategoryPrefix)
}
