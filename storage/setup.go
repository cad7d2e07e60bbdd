// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - LevelDB backed key-value pools
//
// each pool occupies a distinct single byte key prefix inside one
// database; writes and deletes are synchronous and immediately
// visible to subsequent reads
package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/assetd/fault"
	"github.com/bitmark-inc/logger"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Assets         *PoolHandle `prefix:"A"` // asset id → current record
	PreviousAssets *PoolHandle `prefix:"P"` // asset id → previous version snapshot
	History        *PoolHandle `prefix:"H"` // tx hash → history entry
	ExpiryLocks    *PoolHandle `prefix:"L"` // asset id → expedited finality lock
}

// Pool - the set of exported pools
var Pool pools

// holds the database handle
var poolData struct {
	sync.RWMutex
	db  *leveldb.DB
	log *logger.L
}

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.AlreadyInitialised
	}

	poolData.log = logger.New("storage")
	poolData.log.Info("starting…")

	db, err := leveldb.OpenFile(database+".leveldb", nil)
	if nil != err {
		poolData.log.Errorf("open database: %q  error: %s", database, err)
		return err
	}
	poolData.db = db

	Pool.Assets = newPool('A')
	Pool.PreviousAssets = newPool('P')
	Pool.History = newPool('H')
	Pool.ExpiryLocks = newPool('L')

	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.db {
		return
	}

	poolData.log.Info("shutting down…")
	poolData.db.Close()
	poolData.db = nil

	Pool.Assets = nil
	Pool.PreviousAssets = nil
	Pool.History = nil
	Pool.ExpiryLocks = nil
}

// IsInitialised - test if the database is open
func IsInitialised() bool {
	poolData.RLock()
	defer poolData.RUnlock()
	return nil != poolData.db
}
