// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	AuthorizationError GenericError
	ConstraintError    GenericError
	ExistsError        GenericError
	NotFoundError      GenericError
	OrderingError      GenericError
	ProcessError       GenericError
	StoreError         GenericError
	StructuralError    GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyInitialised        = ExistsError("already initialised")
	AssetAlreadyExists        = ExistsError("asset already exists")
	AssetNotFound             = NotFoundError("asset not found")
	CategoryNotAssetNamespace = ConstraintError("category must use the asset namespace")
	CategoryTooLong           = ConstraintError("category too long")
	CoinbaseNotAllowed        = StructuralError("asset operation in coinbase transaction")
	CorruptedRecord           = ProcessError("stored record is corrupted")
	DataNotFound              = StructuralError("no data output in transaction")
	InvalidCount              = ProcessError("invalid count")
	InvalidCursor             = ProcessError("invalid cursor")
	NameCannotChange          = ConstraintError("asset name cannot be changed")
	NameTooLongOrEmpty        = ConstraintError("asset name too long or is empty")
	NotAssetOwner             = AuthorizationError("asset owner must sign off on this change")
	NotADigest                = StructuralError("not a digest")
	NotAssetTransaction       = StructuralError("transaction carries no asset operation")
	NotInitialised            = StoreError("not initialised")
	NotServiceTransaction     = StructuralError("non-service transaction found")
	OwnerIdentityMismatch     = StructuralError("owner identity input mismatch")
	PublicDataTooLong         = ConstraintError("asset public data too long")
	StaleHeight               = OrderingError("record height is ahead of the candidate height")
	StoreReadFailed           = StoreError("store read failed")
	StoreWriteFailed          = StoreError("store write failed")
	TransferNotAccepted       = AuthorizationError("the target identity does not accept assets")
	TransferTargetInActivate  = ConstraintError("transfer target not allowed in activate")
	TransferTargetNotFound    = NotFoundError("cannot find the identity being transferred to")
	UnknownAssetOperation     = ConstraintError("asset transaction has unknown operation")
	UnverifiablePayload       = StructuralError("cannot unserialize asset data inside of this transaction")
	WrongArgumentCount        = StructuralError("asset arguments incorrect size")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorizationError) Error() string { return string(e) }
func (e ConstraintError) Error() string    { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e OrderingError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e StoreError) Error() string         { return string(e) }
func (e StructuralError) Error() string    { return string(e) }

// determine the class of an error
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }
func IsErrConstraint(e error) bool    { _, ok := e.(ConstraintError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrOrdering(e error) bool      { _, ok := e.(OrderingError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
func IsErrStore(e error) bool         { _, ok := e.(StoreError); return ok }
func IsErrStructural(e error) bool    { _, ok := e.(StructuralError); return ok }
