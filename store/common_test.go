// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/assetd/identity"
	"github.com/bitmark-inc/assetd/storage"
)

// test database file
const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test"
)

// common test setup routines

// remove all files created by test
func removeFiles() {
	os.RemoveAll(testingDirName)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		t.Fatalf("logger initialise error: %s", err)
	}

	if err := storage.Initialise(databaseFileName); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// fakeRegistry - identity registry returning canned expiries
type fakeRegistry struct {
	unprunable map[string]int64
}

func (r *fakeRegistry) Resolve(id string) (*identity.Identity, bool) {
	return &identity.Identity{Id: id}, true
}

func (r *fakeRegistry) UnprunableExpiry(id string) (int64, bool) {
	expiry, ok := r.unprunable[id]
	return expiry, ok
}

func (r *fakeRegistry) TransferPolicy(id string) identity.PolicyFlags {
	return identity.AcceptTransferAssets
}
