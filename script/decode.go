// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

// Decode - decode an asset operation tag from the front of a script
//
// expected token sequence:
//   <small int: service marker> <small int: operation>
//   zero or more pushed arguments
//   OP_DROP or OP_2DROP terminator
//
// returns the operation, the argument list and the pc positioned
// after the tag (and any further drop markers)
// the ok flag is false if the script carries no valid tag
func Decode(s Script) (Operation, [][]byte, int, bool) {

	op, _, pc, ok := s.GetOp(0)
	if !ok {
		return NullOperation, nil, 0, false
	}
	marker, ok := DecodeSmallInteger(op)
	if !ok || ServiceAssetMarker != marker {
		return NullOperation, nil, 0, false
	}

	op, _, pc, ok = s.GetOp(pc)
	if !ok {
		return NullOperation, nil, 0, false
	}
	kind, ok := DecodeSmallInteger(op)
	if !ok || !IsAssetOperation(kind) {
		return NullOperation, nil, 0, false
	}

	args := [][]byte{}
	found := false
loop:
	for {
		var data []byte
		op, data, pc, ok = s.GetOp(pc)
		if !ok {
			return NullOperation, nil, 0, false
		}
		switch {
		case OpDrop == op || Op2Drop == op:
			found = true
			break loop
		case isPush(op):
			args = append(args, data)
		default:
			return NullOperation, nil, 0, false
		}
	}
	if !found {
		return NullOperation, nil, 0, false
	}

	// move the pc past any further drop markers
	for {
		var next int
		op, _, next, ok = s.GetOp(pc)
		if !ok || (OpDrop != op && Op2Drop != op) {
			break
		}
		pc = next
	}

	return Operation(kind), args, pc, true
}

// RemovePrefix - strip a decoded tag and return the residual script
//
// recovers the destination script beneath the tag
func RemovePrefix(s Script) (Script, bool) {
	_, _, pc, ok := Decode(s)
	if !ok {
		return nil, false
	}
	residual := make(Script, len(s)-pc)
	copy(residual, s[pc:])
	return residual, true
}

// EncodeTag - build the tagged prefix for an asset operation
//
// arguments are pushed in order and terminated with OP_2DROP OP_DROP
// so that a destination script can be appended directly
func EncodeTag(operation Operation, args [][]byte) Script {
	s := Script{
		byte(EncodeSmallInteger(ServiceAssetMarker)),
		byte(EncodeSmallInteger(int(operation))),
	}
	for _, arg := range args {
		s = PushData(s, arg)
	}
	return append(s, byte(Op2Drop), byte(OpDrop))
}
