// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

// Script - a tokenised output script
type Script []byte

// GetOp - read one token starting at pc
//
// returns the opcode, any pushed data, the next pc and an ok flag
// the ok flag is false on a truncated or malformed token
func (s Script) GetOp(pc int) (Opcode, []byte, int, bool) {
	if pc < 0 || pc >= len(s) {
		return 0, nil, pc, false
	}

	op := Opcode(s[pc])
	pc += 1

	if !isPush(op) {
		return op, nil, pc, true
	}

	length := 0
	switch op {
	case OpFalse:
		// empty push
	case OpPushData1:
		if pc+1 > len(s) {
			return 0, nil, pc, false
		}
		length = int(s[pc])
		pc += 1
	case OpPushData2:
		if pc+2 > len(s) {
			return 0, nil, pc, false
		}
		length = int(s[pc]) | int(s[pc+1])<<8
		pc += 2
	case OpPushData4:
		if pc+4 > len(s) {
			return 0, nil, pc, false
		}
		length = int(s[pc]) | int(s[pc+1])<<8 | int(s[pc+2])<<16 | int(s[pc+3])<<24
		pc += 4
	default:
		length = int(op)
	}

	if length < 0 || pc+length > len(s) {
		return 0, nil, pc, false
	}

	data := make([]byte, length)
	copy(data, s[pc:pc+length])
	return op, data, pc + length, true
}

// PushData - append a minimally encoded data push to a script
func PushData(s Script, data []byte) Script {
	length := len(data)
	switch {
	case 0 == length:
		s = append(s, byte(OpFalse))
		return s
	case length <= maxDirectPush:
		s = append(s, byte(length))
	case length <= 0xff:
		s = append(s, byte(OpPushData1), byte(length))
	case length <= 0xffff:
		s = append(s, byte(OpPushData2), byte(length), byte(length>>8))
	default:
		s = append(s, byte(OpPushData4), byte(length), byte(length>>8), byte(length>>16), byte(length>>24))
	}
	return append(s, data...)
}

// EncodeNullData - build a data-only script: OP_RETURN <payload>
func EncodeNullData(payload []byte) Script {
	s := Script{byte(OpReturn)}
	return PushData(s, payload)
}

// DecodeNullData - extract the payload from a data-only script
//
// the script must be exactly OP_RETURN followed by one push
func DecodeNullData(s Script) ([]byte, bool) {
	op, _, pc, ok := s.GetOp(0)
	if !ok || OpReturn != op {
		return nil, false
	}
	op, payload, pc, ok := s.GetOp(pc)
	if !ok || !isPush(op) || pc != len(s) {
		return nil, false
	}
	return payload, true
}
