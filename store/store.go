// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store - typed access to the persisted asset state
//
// four logical tables: current records, previous-version snapshots,
// per-transaction history and expedited-finality locks; the calling
// ledger layer guarantees one mutation pass at a time, reads are
// safe concurrently
package store

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/assetd/assetrecord"
	"github.com/bitmark-inc/assetd/chain"
	"github.com/bitmark-inc/assetd/identity"
	"github.com/bitmark-inc/assetd/script"
	"github.com/bitmark-inc/assetd/storage"
	"github.com/bitmark-inc/logger"
)

// reporting look-ups are cached briefly; the validation path never
// reads through this cache
const (
	lookupCacheExpiry  = 30 * time.Second
	lookupCacheCleanup = 5 * time.Minute
)

// Handle - the asset store
type Handle struct {
	registry identity.Registry
	cache    *gocache.Cache
	log      *logger.L
}

// New - create a store handle
//
// storage.Initialise must have been called first
func New(registry identity.Registry) *Handle {
	return &Handle{
		registry: registry,
		cache:    gocache.New(lookupCacheExpiry, lookupCacheCleanup),
		log:      logger.New("store"),
	}
}

// ReadRaw - physical read, ignoring expiration
//
// returns nil with no error if the record is absent
func (h *Handle) ReadRaw(assetId string) (*assetrecord.AssetRecord, error) {
	buffer, err := storage.Pool.Assets.Get([]byte(assetId))
	if nil != err {
		return nil, err
	}
	if nil == buffer {
		return nil, nil
	}
	return assetrecord.UnpackStorage(buffer)
}

// Get - read a live record
//
// a record whose expiration is at or before the chain's current
// median-time-past reads as absent even though it remains physically
// stored until the cleanup scan runs
func (h *Handle) Get(assetId string, ctx chain.Context) (*assetrecord.AssetRecord, error) {
	record, err := h.ReadRaw(assetId)
	if nil != err || nil == record {
		return nil, err
	}
	if ctx.MedianTimePast() >= h.ExpirationTime(record, ctx) {
		return nil, nil
	}
	return record, nil
}

// Lookup - cached read for reporting collaborators
//
// records are immutable once fetched so serving a recently cached
// copy is safe; expiration is still evaluated on every call
func (h *Handle) Lookup(assetId string, ctx chain.Context) (*assetrecord.AssetRecord, error) {
	if cached, ok := h.cache.Get(assetId); ok {
		record := cached.(*assetrecord.AssetRecord)
		if ctx.MedianTimePast() >= h.ExpirationTime(record, ctx) {
			return nil, nil
		}
		return record, nil
	}

	record, err := h.Get(assetId, ctx)
	if nil != err || nil == record {
		return nil, err
	}
	h.cache.Set(assetId, record, gocache.DefaultExpiration)
	return record, nil
}

// Put - write a record as the new authoritative state
//
// under strict admission the write was accepted on an expedited
// pre-confirmation signal: the previous version is retained for
// rollback and the expiry lock is set until a block confirms it
func (h *Handle) Put(record *assetrecord.AssetRecord, previous *assetrecord.AssetRecord, operation script.Operation, strict bool) error {
	key := []byte(record.AssetId)

	if strict {
		if nil != previous {
			if err := storage.Pool.PreviousAssets.Put(key, previous.PackStorage()); nil != err {
				return err
			}
		}
		if err := h.SetLock(record.AssetId); nil != err {
			return err
		}
	}

	if err := storage.Pool.Assets.Put(key, record.PackStorage()); nil != err {
		return err
	}
	h.cache.Delete(record.AssetId)

	h.log.Debugf("put: op=%s asset=%s height=%d strict=%t",
		operation, record.AssetId, record.CreatedHeight, strict)
	return nil
}

// GetPrevious - read the previous-version snapshot
func (h *Handle) GetPrevious(assetId string) (*assetrecord.AssetRecord, error) {
	buffer, err := storage.Pool.PreviousAssets.Get([]byte(assetId))
	if nil != err {
		return nil, err
	}
	if nil == buffer {
		return nil, nil
	}
	return assetrecord.UnpackStorage(buffer)
}

// PutPrevious - retain a record as the rollback snapshot
func (h *Handle) PutPrevious(record *assetrecord.AssetRecord) error {
	return storage.Pool.PreviousAssets.Put([]byte(record.AssetId), record.PackStorage())
}

// Erase - remove a record, its snapshot, its lock and all of its history
//
// the only deletion path; normal operation processing never erases
func (h *Handle) Erase(assetId string, cleanup bool) error {
	key := []byte(assetId)

	if err := storage.Pool.Assets.Delete(key); nil != err {
		return err
	}
	if err := storage.Pool.PreviousAssets.Delete(key); nil != err {
		return err
	}
	if err := storage.Pool.ExpiryLocks.Delete(key); nil != err {
		return err
	}
	h.cache.Delete(assetId)

	if err := h.eraseHistoryOfAsset(assetId); nil != err {
		return err
	}

	if cleanup {
		h.log.Infof("cleaned up: asset=%s", assetId)
	}
	return nil
}

// SetLock - record that the asset's last mutation is awaiting confirmation
func (h *Handle) SetLock(assetId string) error {
	return storage.Pool.ExpiryLocks.Put([]byte(assetId), []byte{0x01})
}

// ClearLock - the mutation was confirmed or rolled back
func (h *Handle) ClearLock(assetId string) error {
	return storage.Pool.ExpiryLocks.Delete([]byte(assetId))
}

// IsLocked - test the expedited-finality lock
func (h *Handle) IsLocked(assetId string) (bool, error) {
	return storage.Pool.ExpiryLocks.Has([]byte(assetId))
}
