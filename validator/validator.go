// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package validator - the asset consensus state machine
//
// one invocation is one transition attempt on the stored record; the
// validator holds no state across calls - every decision is a pure
// function of the transaction, the chain context and the store's
// current contents
package validator

import (
	"github.com/bitmark-inc/assetd/assetrecord"
	"github.com/bitmark-inc/assetd/identity"
	"github.com/bitmark-inc/assetd/projection"
	"github.com/bitmark-inc/assetd/script"
	"github.com/bitmark-inc/assetd/store"
	"github.com/bitmark-inc/assetd/transaction"
	"github.com/bitmark-inc/logger"
)

// Mode - admission mode of a validation call
type Mode int

// possible modes
const (
	// pre-confirmation admission: rejections here are final and
	// reported to the submitter with a specific cause
	Strict Mode = iota

	// applying already block-selected content: failures become
	// no-ops so an asset-layer defect can never invalidate a block
	Lenient
)

// Status - what happened to the asset effect of a transaction
type Status int

// possible statuses
const (
	Applied Status = iota
	Ignored
	Rejected
)

// String - status name for logs
func (s Status) String() string {
	switch s {
	case Applied:
		return "applied"
	case Ignored:
		return "ignored"
	case Rejected:
		return "rejected"
	default:
		return "<invalid status>"
	}
}

// Outcome - tagged result of a validation call
//
// Reason is nil only for Applied; callers branch on Status instead
// of inspecting a boolean plus an out-parameter string
type Outcome struct {
	Status Status
	Reason error
}

// Validator - the state machine and its collaborators
type Validator struct {
	store    *store.Handle
	registry identity.Registry
	sink     projection.Sink
	log      *logger.L
}

// New - create a validator
func New(handle *store.Handle, registry identity.Registry, sink projection.Sink) *Validator {
	if nil == sink {
		sink = projection.Noop{}
	}
	return &Validator{
		store:    handle,
		registry: registry,
		sink:     sink,
		log:      logger.New("validator"),
	}
}

// Store - the store this validator writes to, for read-only reporting
func (v *Validator) Store() *store.Handle {
	return v.store
}

// DecodeOperation - classify a transaction without validating it
//
// ok is false if no output carries an asset operation tag
func DecodeOperation(tx *transaction.Transaction) (script.Operation, [][]byte, bool) {
	op, args, _, ok := transaction.FindOperation(tx)
	return op, args, ok
}

// DecodeAndParse - classify and extract the verified payload record
//
// for wallet-history and reporting collaborators; ok is false unless
// both the tag decodes and the payload verifies against the
// committed hash
func DecodeAndParse(tx *transaction.Transaction) (script.Operation, *assetrecord.AssetRecord, bool) {
	op, args, _, ok := transaction.FindOperation(tx)
	if !ok || 0 == len(args) {
		return script.NullOperation, nil, false
	}
	payload, _, ok := transaction.FindPayload(tx)
	if !ok {
		return script.NullOperation, nil, false
	}
	record, err := assetrecord.UnpackAndVerify(payload, args[0])
	if nil != err {
		return script.NullOperation, nil, false
	}
	return op, record, true
}
