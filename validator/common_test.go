// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validator_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/assetd/assetrecord"
	"github.com/bitmark-inc/assetd/identity"
	"github.com/bitmark-inc/assetd/merkle"
	"github.com/bitmark-inc/assetd/script"
	"github.com/bitmark-inc/assetd/storage"
	"github.com/bitmark-inc/assetd/transaction"
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

// fakeRegistry - a canned identity registry
type fakeRegistry struct {
	identities map[string]*identity.Identity
	policies   map[string]identity.PolicyFlags
	unprunable map[string]int64
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		identities: map[string]*identity.Identity{},
		policies:   map[string]identity.PolicyFlags{},
		unprunable: map[string]int64{},
	}
}

func (r *fakeRegistry) add(id string, policy identity.PolicyFlags) {
	r.identities[id] = &identity.Identity{
		Id:        id,
		PublicKey: []byte(id),
		ExpiresAt: 0,
	}
	r.policies[id] = policy
}

func (r *fakeRegistry) Resolve(id string) (*identity.Identity, bool) {
	record, ok := r.identities[id]
	return record, ok
}

func (r *fakeRegistry) UnprunableExpiry(id string) (int64, bool) {
	expiry, ok := r.unprunable[id]
	return expiry, ok
}

func (r *fakeRegistry) TransferPolicy(id string) identity.PolicyFlags {
	return r.policies[id]
}

// captureSink - records every projection notification
type captureSink struct {
	records []assetrecord.Fields
	history []assetrecord.Fields
}

func (s *captureSink) RecordChanged(fields assetrecord.Fields) {
	s.records = append(s.records, fields)
}

func (s *captureSink) HistoryAppended(fields assetrecord.Fields) {
	s.history = append(s.history, fields)
}

// makeTx - build a service transaction carrying one tagged output
// and one data-only payload output
//
// salt makes otherwise identical transactions distinct so that
// each has its own transaction hash
func makeTx(operation script.Operation, record *assetrecord.AssetRecord, salt byte) *transaction.Transaction {
	hash := record.Hash()
	tagged := script.EncodeTag(operation, [][]byte{hash[:]})

	return &transaction.Transaction{
		Version: transaction.ServiceVersion,
		Inputs: []transaction.OutPoint{
			{
				PreviousTx: merkle.NewDigest([]byte{salt}),
				Index:      uint32(salt),
			},
		},
		Outputs: []transaction.Output{
			{Value: 1, Script: tagged},
			{Value: 0, Script: script.EncodeNullData(record.Pack())},
		},
	}
}

// coinbaseTx - a coinbase shaped transaction carrying the same outputs
func coinbaseTx(operation script.Operation, record *assetrecord.AssetRecord) *transaction.Transaction {
	tx := makeTx(operation, record, 0)
	tx.Inputs = []transaction.OutPoint{
		{
			PreviousTx: merkle.Digest{},
			Index:      0xffffffff,
		},
	}
	return tx
}

// ownerArgs - the cooperating identity operation's argument list
func ownerArgs(id string) [][]byte {
	return [][]byte{[]byte(id)}
}
