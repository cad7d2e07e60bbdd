// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identity - interface to the external identity registry
//
// the registry owns identity records; the asset layer only reads
// them to authorise transfers and to derive asset expiration
package identity

import (
	"github.com/mr-tron/base58"
)

// PolicyFlags - transfer acceptance policy bits of an identity
type PolicyFlags uint32

// policy bits
const (
	AcceptTransferAssets PolicyFlags = 0x01
)

// Identity - an identity record as the registry reports it
type Identity struct {
	Id        string `json:"id"`
	PublicKey []byte `json:"publicKey"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Registry - the external registry interface consumed here
type Registry interface {

	// owner/address resolution
	Resolve(id string) (*Identity, bool)

	// the unprunable expiry timestamp for an identity, absent if
	// the identity has no unprunable record
	UnprunableExpiry(id string) (int64, bool)

	// transfer acceptance policy
	TransferPolicy(id string) PolicyFlags
}

// ShortKey - compact display form of an identity public key
func (identity *Identity) ShortKey() string {
	if 0 == len(identity.PublicKey) {
		return ""
	}
	encoded := base58.Encode(identity.PublicKey)
	if len(encoded) > 12 {
		return encoded[:12] + "…"
	}
	return encoded
}

// ShortKeyOf - short display key of a registry identity
//
// empty when the identity is unknown or carries no key
func ShortKeyOf(r Registry, id string) string {
	entry, ok := r.Resolve(id)
	if !ok {
		return ""
	}
	return entry.ShortKey()
}
