// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validator

import (
	"github.com/bitmark-inc/assetd/assetrecord"
	"github.com/bitmark-inc/assetd/chain"
	"github.com/bitmark-inc/assetd/fault"
	"github.com/bitmark-inc/assetd/identity"
	"github.com/bitmark-inc/assetd/script"
	"github.com/bitmark-inc/assetd/transaction"
)

// map a failed check to its per-mode outcome
//
// strict admission surfaces every failure as rejection; during block
// application the failure becomes a silent no-op so that a malformed
// or stale asset operation, once mined, can never split the chain
// only a store fault is ever returned as an error
func (v *Validator) fail(mode Mode, reason error) (Outcome, error) {
	if Strict == mode {
		return Outcome{Status: Rejected, Reason: reason}, nil
	}
	v.log.Debugf("tolerated during block application: %s", reason)
	return Outcome{Status: Ignored, Reason: reason}, nil
}

// Validate - the single entry point for admission and block application
//
// op and args come from a prior DecodeOperation scan; ownerArgs is
// the argument list of the cooperating identity operation in the
// same transaction; height is the candidate height the transaction
// is being evaluated at; dryRun suppresses every write
func (v *Validator) Validate(
	tx *transaction.Transaction,
	op script.Operation,
	args [][]byte,
	ownerArgs [][]byte,
	mode Mode,
	ctx chain.Context,
	height uint64,
	dryRun bool,
) (Outcome, error) {

	// ----- structural checks -----

	if tx.IsCoinbase() && Lenient == mode && !dryRun {
		v.log.Debug("asset operation in coinbase transaction, skipping")
		return Outcome{Status: Ignored, Reason: fault.CoinbaseNotAllowed}, nil
	}

	// asset outputs on an ordinary transaction would be spendable
	// and the asset lost, so this cannot be applied in any mode
	if transaction.ServiceVersion != tx.Version {
		return v.fail(mode, fault.NotServiceTransaction)
	}

	if Strict == mode && 1 != len(args) {
		return v.fail(mode, fault.WrongArgumentCount)
	}
	if 0 == len(args) {
		return v.fail(mode, fault.WrongArgumentCount)
	}

	payload, _, ok := transaction.FindPayload(tx)
	if !ok {
		return v.fail(mode, fault.DataNotFound)
	}

	incoming, err := assetrecord.UnpackAndVerify(payload, args[0])
	if nil != err {
		return v.fail(mode, err)
	}

	// the identity operation in the same transaction proves control
	// of the declared owner
	if 0 == len(ownerArgs) || string(ownerArgs[0]) != incoming.OwnerIdentity {
		return v.fail(mode, fault.OwnerIdentityMismatch)
	}

	// ----- field constraints -----

	if outcome, failed, err := v.checkConstraints(op, incoming, mode); failed {
		return outcome, err
	}

	// ----- existence, locks and reorg reconciliation -----

	stored, err := v.store.Get(incoming.AssetId, ctx)
	if nil != err && fault.CorruptedRecord != err {
		return Outcome{}, err
	}

	if nil != stored {
		outcome, done, err := v.reconcileLock(tx, stored, &stored, mode, height, dryRun)
		if done {
			return outcome, err
		}
	} else if script.Activate != op {
		return v.fail(mode, fault.AssetNotFound)
	}

	if script.Activate == op {
		if nil != stored {
			return v.fail(mode, fault.AssetAlreadyExists)
		}
	} else {
		if nil == stored {
			// the reorg rolled the record back to absent; the
			// mutation has nothing left to apply to
			return v.fail(mode, fault.AssetNotFound)
		}

		// ----- inheritance and authorization -----

		// name is immutable: always inherited
		incoming.DisplayName = stored.DisplayName

		// empty on a mutation means keep previous
		if "" == incoming.PublicData {
			incoming.PublicData = stored.PublicData
		}
		if "" == incoming.Category {
			incoming.Category = stored.Category
		}

		// ownership change happens only via transfer, and only with
		// the stored owner's sign-off
		if stored.OwnerIdentity != incoming.OwnerIdentity {
			return v.fail(mode, fault.NotAssetOwner)
		}

		if script.Transfer == op {
			target, ok := v.registry.Resolve(incoming.TransferTarget)
			if !ok {
				return v.fail(mode, fault.TransferTargetNotFound)
			}
			if 0 == v.registry.TransferPolicy(target.Id)&identity.AcceptTransferAssets {
				return v.fail(mode, fault.TransferNotAccepted)
			}
			incoming.OwnerIdentity = target.Id
		}
	}

	// ----- commit -----

	if dryRun {
		return Outcome{Status: Applied}, nil
	}

	description := assetrecord.ChangedFields(op, incoming, stored)

	// transient field: applied above, never persisted
	incoming.TransferTarget = ""

	// set the transaction-dependent values
	incoming.CreatedHeight = height
	incoming.ConfirmingTx = tx.TxId()

	if err := v.store.Put(incoming, stored, op, Strict == mode); nil != err {
		return Outcome{}, err
	}

	entry := &assetrecord.HistoryEntry{
		TxId:        incoming.ConfirmingTx,
		AssetId:     incoming.AssetId,
		Operation:   op,
		Height:      height,
		Description: description,
	}
	if err := v.store.PutHistory(entry); nil != err {
		return Outcome{}, err
	}

	v.log.Infof("connected asset: op=%s asset=%s hash=%s height=%d strict=%t",
		op, incoming.AssetId, incoming.ConfirmingTx, height, Strict == mode)

	v.notify(incoming, entry, ctx)

	return Outcome{Status: Applied}, nil
}

// field and shape constraints
//
// admission-time quality gates; during block application a violation
// still only produces a no-op, as mined content is not retroactively
// enforceable
func (v *Validator) checkConstraints(op script.Operation, incoming *assetrecord.AssetRecord, mode Mode) (Outcome, bool, error) {

	failed := func(reason error) (Outcome, bool, error) {
		outcome, err := v.fail(mode, reason)
		return outcome, true, err
	}

	if len(incoming.Category) > assetrecord.MaxCategoryLength {
		return failed(fault.CategoryTooLong)
	}
	if len(incoming.PublicData) > assetrecord.MaxPublicDataLength {
		return failed(fault.PublicDataTooLong)
	}

	switch op {

	case script.Activate:
		if "" != incoming.TransferTarget {
			return failed(fault.TransferTargetInActivate)
		}
		if "" == incoming.DisplayName || len(incoming.DisplayName) > assetrecord.MaxDisplayNameLength {
			return failed(fault.NameTooLongOrEmpty)
		}
		if !assetrecord.HasReservedCategory(incoming.Category, false) {
			return failed(fault.CategoryNotAssetNamespace)
		}

	case script.Update:
		if "" != incoming.DisplayName {
			return failed(fault.NameCannotChange)
		}
		if "" != incoming.Category && !assetrecord.HasReservedCategory(incoming.Category, true) {
			return failed(fault.CategoryNotAssetNamespace)
		}

	case script.Transfer:
		// no shape constraints beyond the common ones

	default:
		return failed(fault.UnknownAssetOperation)
	}

	return Outcome{}, false, nil
}

// reconcileLock - expedited-finality reconciliation
//
// when the stored record is still awaiting block confirmation of an
// expedited acceptance, a block transaction for the same asset is
// either that confirmation arriving, or evidence the chain has
// reorganized past the unconfirmed mutation
//
// done is true when the caller must return outcome immediately;
// otherwise *stored has been updated to the reconciled view (nil
// meaning rolled back to absent) and processing continues
func (v *Validator) reconcileLock(
	tx *transaction.Transaction,
	current *assetrecord.AssetRecord,
	stored **assetrecord.AssetRecord,
	mode Mode,
	height uint64,
	dryRun bool,
) (Outcome, bool, error) {

	// expedited locks are reconciled during block application only
	if Lenient != mode || dryRun {
		if current.CreatedHeight > height {
			outcome, err := v.fail(mode, fault.StaleHeight)
			return outcome, true, err
		}
		return Outcome{}, false, nil
	}

	locked, err := v.store.IsLocked(current.AssetId)
	if nil != err {
		return Outcome{}, true, err
	}

	if !locked {
		if current.CreatedHeight > height {
			outcome, err := v.fail(mode, fault.StaleHeight)
			return outcome, true, err
		}
		// reprocessing after a restart: the transaction that
		// produced the current state arrives again; the record,
		// history and lock state stay untouched
		if current.ConfirmingTx == tx.TxId() {
			v.log.Debugf("already applied: asset=%s hash=%s", current.AssetId, current.ConfirmingTx)
			return Outcome{Status: Applied}, true, nil
		}
		return Outcome{}, false, nil
	}

	if current.CreatedHeight >= height {
		outcome, err := v.fail(mode, fault.StaleHeight)
		return outcome, true, err
	}

	txId := tx.TxId()

	if current.ConfirmingTx == txId {
		// the now-finalized confirmation of the same mutation:
		// retain it as the rollback snapshot and release the lock
		// without reprocessing
		if err := v.store.PutPrevious(current); nil != err {
			return Outcome{}, true, err
		}
		if err := v.store.ClearLock(current.AssetId); nil != err {
			return Outcome{}, true, err
		}
		v.log.Infof("confirmed expedited acceptance: asset=%s hash=%s", current.AssetId, txId)
		return Outcome{Status: Applied}, true, nil
	}

	// the chain reorganized past the unconfirmed acceptance:
	// restore the last confirmed state before applying this
	// transaction
	v.log.Infof("expedited acceptance orphaned: asset=%s stale=%s", current.AssetId, current.ConfirmingTx)

	// no snapshot means the orphaned mutation was the activation
	// itself, so the asset rolls back to absent
	restored, err := v.store.GetPrevious(current.AssetId)
	if nil != err && fault.CorruptedRecord != err {
		return Outcome{}, true, err
	}

	staleTx := current.ConfirmingTx

	if nil == restored {
		if err := v.store.Erase(current.AssetId, false); nil != err {
			return Outcome{}, true, err
		}
	} else {
		if err := v.store.Put(restored, nil, script.NullOperation, false); nil != err {
			return Outcome{}, true, err
		}
	}

	if err := v.store.EraseHistory(staleTx); nil != err {
		return Outcome{}, true, err
	}
	if err := v.store.ClearLock(current.AssetId); nil != err {
		return Outcome{}, true, err
	}

	*stored = restored
	return Outcome{}, false, nil
}

// notify - best-effort projection of the new state
func (v *Validator) notify(record *assetrecord.AssetRecord, entry *assetrecord.HistoryEntry, ctx chain.Context) {
	fields := record.Project(ctx, v.store.ExpirationTime(record, ctx))
	fields.OwnerKey = identity.ShortKeyOf(v.registry, record.OwnerIdentity)
	v.sink.RecordChanged(fields)

	fields.Operation = entry.Operation.String()
	v.sink.HistoryAppended(fields)
}
