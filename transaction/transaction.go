// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - minimal model of a ledger transaction
//
// only the fields the asset layer inspects are carried: the version
// gate, the outputs to scan for tagged and data-only scripts, and
// enough of the inputs to detect a coinbase
package transaction

import (
	"github.com/bitmark-inc/assetd/merkle"
	"github.com/bitmark-inc/assetd/script"
	"github.com/bitmark-inc/assetd/util"
)

// ServiceVersion - transaction version that flags a service transaction
//
// asset outputs on any other version would be spendable by ordinary
// transactions and the asset would be lost, so validation gates on this
const ServiceVersion int32 = 0x7400

// OutPoint - reference to a previous transaction output
type OutPoint struct {
	PreviousTx merkle.Digest `json:"previousTx"`
	Index      uint32        `json:"index"`
}

// Output - a single transaction output
type Output struct {
	Value  uint64        `json:"value"`
	Script script.Script `json:"script"`
}

// Transaction - the transaction under validation
type Transaction struct {
	Version int32      `json:"version"`
	Inputs  []OutPoint `json:"inputs"`
	Outputs []Output   `json:"outputs"`
}

// IsCoinbase - true if the single input references no previous transaction
func (tx *Transaction) IsCoinbase() bool {
	return 1 == len(tx.Inputs) &&
		tx.Inputs[0].PreviousTx.IsEmpty() &&
		0xffffffff == tx.Inputs[0].Index
}

// Pack - canonical byte form used for the transaction digest
func (tx *Transaction) Pack() []byte {
	message := util.ToVarint64(uint64(uint32(tx.Version)))

	message = append(message, util.ToVarint64(uint64(len(tx.Inputs)))...)
	for _, in := range tx.Inputs {
		message = append(message, in.PreviousTx[:]...)
		message = append(message, util.ToVarint64(uint64(in.Index))...)
	}

	message = append(message, util.ToVarint64(uint64(len(tx.Outputs)))...)
	for _, out := range tx.Outputs {
		message = append(message, util.ToVarint64(out.Value)...)
		message = append(message, util.ToVarint64(uint64(len(out.Script)))...)
		message = append(message, out.Script...)
	}
	return message
}

// TxId - digest of the canonical packed transaction
func (tx *Transaction) TxId() merkle.Digest {
	return merkle.NewDigest(tx.Pack())
}

// FindOperation - scan the outputs for an asset operation tag
//
// the first output whose script decodes determines the transaction's
// operation and argument list; ok is false if no output decodes
func FindOperation(tx *Transaction) (script.Operation, [][]byte, int, bool) {
	for i, out := range tx.Outputs {
		op, args, _, ok := script.Decode(out.Script)
		if ok {
			return op, args, i, true
		}
	}
	return script.NullOperation, nil, 0, false
}

// FindPayload - scan the outputs for the data-only payload output
func FindPayload(tx *Transaction) ([]byte, int, bool) {
	for i, out := range tx.Outputs {
		payload, ok := script.DecodeNullData(out.Script)
		if ok {
			return payload, i, true
		}
	}
	return nil, 0, false
}
