// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/assetd/fault"
)

// test that the classification predicates pick out exactly one class
func TestErrorClassification(t *testing.T) {

	type predicate func(error) bool

	predicates := []struct {
		name string
		is   predicate
	}{
		{"authorization", fault.IsErrAuthorization},
		{"constraint", fault.IsErrConstraint},
		{"exists", fault.IsErrExists},
		{"not found", fault.IsErrNotFound},
		{"ordering", fault.IsErrOrdering},
		{"process", fault.IsErrProcess},
		{"store", fault.IsErrStore},
		{"structural", fault.IsErrStructural},
	}

	testItems := []struct {
		err   error
		class string
	}{
		{fault.NotAssetOwner, "authorization"},
		{fault.TransferNotAccepted, "authorization"},
		{fault.NameCannotChange, "constraint"},
		{fault.CategoryNotAssetNamespace, "constraint"},
		{fault.AssetAlreadyExists, "exists"},
		{fault.AssetNotFound, "not found"},
		{fault.TransferTargetNotFound, "not found"},
		{fault.StaleHeight, "ordering"},
		{fault.InvalidCursor, "process"},
		{fault.StoreWriteFailed, "store"},
		{fault.UnverifiablePayload, "structural"},
		{fault.NotServiceTransaction, "structural"},
	}

	for i, item := range testItems {
		for _, p := range predicates {
			expected := p.name == item.class
			if p.is(item.err) != expected {
				t.Errorf("%d: %q: is %s = %v expected %v", i, item.err, p.name, p.is(item.err), expected)
			}
		}
	}
}

// ensure error messages survive the class conversion
func TestErrorMessage(t *testing.T) {
	if fault.AssetNotFound.Error() != "asset not found" {
		t.Errorf("unexpected message: %q", fault.AssetNotFound.Error())
	}
}
