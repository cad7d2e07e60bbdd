// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/assetd/fault"
)

// PoolHandle - access to one prefixed key space
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// Element - a binary key/value pair from a scan
type Element struct {
	Key   []byte
	Value []byte
}

func newPool(prefix byte) *PoolHandle {
	return &PoolHandle{
		prefix: prefix,
		limit:  []byte{prefix + 1},
	}
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
//
// the underlying error is logged and surfaced as a storage fault
func (p *PoolHandle) Put(key []byte, value []byte) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.NotInitialised
	}
	err := poolData.db.Put(p.prefixKey(key), value, nil)
	if nil != err {
		poolData.log.Errorf("pool %c put: %x  error: %s", p.prefix, key, err)
		return fault.StoreWriteFailed
	}
	return nil
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.NotInitialised
	}
	err := poolData.db.Delete(p.prefixKey(key), nil)
	if nil != err {
		poolData.log.Errorf("pool %c delete: %x  error: %s", p.prefix, key, err)
		return fault.StoreWriteFailed
	}
	return nil
}

// Get - read a value for a given key
//
// returns nil with no error if the key is absent
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil, fault.NotInitialised
	}
	value, err := poolData.db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		poolData.log.Errorf("pool %c get: %x  error: %s", p.prefix, key, err)
		return nil, fault.StoreReadFailed
	}
	return value, nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return false, fault.NotInitialised
	}
	has, err := poolData.db.Has(p.prefixKey(key), nil)
	if nil != err {
		poolData.log.Errorf("pool %c has: %x  error: %s", p.prefix, key, err)
		return false, fault.StoreReadFailed
	}
	return has, nil
}
