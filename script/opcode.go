// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package script - tokenised output script handling
//
// only the small subset of opcodes needed to carry a service
// operation tag and a data-only payload output is understood;
// anything else passes through GetOp as an opaque opcode
package script

// Opcode - a single script token type
type Opcode byte

// recognised opcodes
const (
	// 0x01..0x4b are direct push lengths
	maxDirectPush = 0x4b

	OpFalse     Opcode = 0x00
	OpPushData1 Opcode = 0x4c
	OpPushData2 Opcode = 0x4d
	OpPushData4 Opcode = 0x4e

	// small integers 1..16
	Op1  Opcode = 0x51
	Op16 Opcode = 0x60

	OpReturn Opcode = 0x6a
	Op2Drop  Opcode = 0x6d
	OpDrop   Opcode = 0x75
)

// DecodeSmallInteger - value of a small integer opcode
//
// second value is false if the opcode is not in the Op1..Op16 range
func DecodeSmallInteger(op Opcode) (int, bool) {
	if op < Op1 || op > Op16 {
		return 0, false
	}
	return int(op-Op1) + 1, true
}

// EncodeSmallInteger - small integer opcode for a value 1..16
//
// panics on out of range values as these are all compile-time constants
func EncodeSmallInteger(n int) Opcode {
	if n < 1 || n > 16 {
		panic("script: small integer out of range")
	}
	return Op1 + Opcode(n-1)
}

// isPush - true if the opcode carries data
func isPush(op Opcode) bool {
	return op <= OpPushData4
}
