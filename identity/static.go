// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"encoding/json"
	"io/ioutil"
)

// StaticRegistry - a registry loaded once from a file
//
// the operator tools run detached from a live registry node; a
// snapshot file of the identities they care about is enough for
// expiry derivation and transfer policy checks
type StaticRegistry struct {
	Identities map[string]StaticEntry `json:"identities"`
}

// StaticEntry - one identity in a snapshot file
type StaticEntry struct {
	PublicKey       []byte      `json:"publicKey"`
	ExpiresAt       int64       `json:"expiresAt"`
	UnprunableUntil int64       `json:"unprunableUntil"`
	Policy          PolicyFlags `json:"policy"`
}

// LoadRegistryFile - read a registry snapshot
//
// an empty file name yields an empty registry: every asset then
// reads as never expired and no transfer target resolves
func LoadRegistryFile(fileName string) (*StaticRegistry, error) {
	registry := &StaticRegistry{
		Identities: map[string]StaticEntry{},
	}
	if "" == fileName {
		return registry, nil
	}

	buffer, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	if err := json.Unmarshal(buffer, registry); nil != err {
		return nil, err
	}
	return registry, nil
}

// Resolve - look up an identity
func (r *StaticRegistry) Resolve(id string) (*Identity, bool) {
	entry, ok := r.Identities[id]
	if !ok {
		return nil, false
	}
	return &Identity{
		Id:        id,
		PublicKey: entry.PublicKey,
		ExpiresAt: entry.ExpiresAt,
	}, true
}

// UnprunableExpiry - expiry of the identity's unprunable record
func (r *StaticRegistry) UnprunableExpiry(id string) (int64, bool) {
	entry, ok := r.Identities[id]
	if !ok || 0 == entry.UnprunableUntil {
		return 0, false
	}
	return entry.UnprunableUntil, true
}

// TransferPolicy - transfer acceptance policy bits
func (r *StaticRegistry) TransferPolicy(id string) PolicyFlags {
	return r.Identities[id].Policy
}
