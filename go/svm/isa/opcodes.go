// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package isa defines the instruction set of the stack VM: the opcode values,
// their mnemonics, and the widths of their inline operands. All other
// components (assembler, disassembler, engine) derive their view of the
// instruction set from the table in this package.
package isa

import (
	"fmt"
	"strings"
)

// OpCode is the first byte of every encoded instruction.
type OpCode byte

const (
	NOP   OpCode = 0x00
	PUSH  OpCode = 0x01
	POP   OpCode = 0x02
	ADD   OpCode = 0x03
	SUB   OpCode = 0x04
	MUL   OpCode = 0x05
	DIV   OpCode = 0x06
	LOAD  OpCode = 0x07
	STORE OpCode = 0x08
	JMP   OpCode = 0x09
	JZ    OpCode = 0x0A
	CALL  OpCode = 0x0B
	RET   OpCode = 0x0C
	HALT  OpCode = 0x0D
	DUP   OpCode = 0x0E
	SWAP  OpCode = 0x0F
)

// NumOpCodes is the number of defined opcodes. Defined opcodes occupy the
// contiguous range [0, NumOpCodes).
const NumOpCodes = 16

const (
	// ValueWidth is the width of the signed little-endian PUSH operand.
	ValueWidth = 4
	// AddressWidth is the width of the unsigned little-endian operand of
	// LOAD, STORE, JMP, JZ and CALL.
	AddressWidth = 2
	// MaxAddress is the largest value an address operand can encode.
	MaxAddress = 1<<(8*AddressWidth) - 1
)

// opCodeInfo summarizes the static properties of a single opcode.
type opCodeInfo struct {
	name   string
	width  int
	pops   int
	pushes int
}

var opCodeInfos = [NumOpCodes]opCodeInfo{
	NOP:   {"NOP", 0, 0, 0},
	PUSH:  {"PUSH", ValueWidth, 0, 1},
	POP:   {"POP", 0, 1, 0},
	ADD:   {"ADD", 0, 2, 1},
	SUB:   {"SUB", 0, 2, 1},
	MUL:   {"MUL", 0, 2, 1},
	DIV:   {"DIV", 0, 2, 1},
	LOAD:  {"LOAD", AddressWidth, 0, 1},
	STORE: {"STORE", AddressWidth, 1, 0},
	JMP:   {"JMP", AddressWidth, 0, 0},
	JZ:    {"JZ", AddressWidth, 1, 0},
	CALL:  {"CALL", AddressWidth, 0, 0},
	RET:   {"RET", 0, 0, 0},
	HALT:  {"HALT", 0, 0, 0},
	DUP:   {"DUP", 0, 1, 2},
	SWAP:  {"SWAP", 0, 2, 2},
}

// mnemonics maps upper-case mnemonics to opcodes. It is derived from
// opCodeInfos so that both directions of the table stay in sync.
var mnemonics = func() map[string]OpCode {
	res := make(map[string]OpCode, NumOpCodes)
	for i, info := range opCodeInfos {
		res[info.name] = OpCode(i)
	}
	return res
}()

// IsValid returns true if the given opcode is one of the defined instructions.
func IsValid(op OpCode) bool {
	return int(op) < NumOpCodes
}

// ValidOpCodes returns all defined opcodes in ascending numeric order.
func ValidOpCodes() []OpCode {
	res := make([]OpCode, 0, NumOpCodes)
	for i := 0; i < NumOpCodes; i++ {
		res = append(res, OpCode(i))
	}
	return res
}

// Lookup returns the opcode bound to the given mnemonic. Mnemonics are
// case-insensitive.
func Lookup(mnemonic string) (OpCode, bool) {
	op, found := mnemonics[strings.ToUpper(mnemonic)]
	return op, found
}

func (op OpCode) String() string {
	if !IsValid(op) {
		return fmt.Sprintf("op(0x%02X)", byte(op))
	}
	return opCodeInfos[op].name
}

// Width returns the number of operand bytes following the opcode. Undefined
// opcodes have no operand.
func (op OpCode) Width() int {
	if !IsValid(op) {
		return 0
	}
	return opCodeInfos[op].width
}

// Size returns the total number of bytes of an encoded instruction.
func (op OpCode) Size() int {
	return 1 + op.Width()
}

// HasOperand returns true if the instruction is followed by an inline operand.
func (op OpCode) HasOperand() bool {
	return op.Width() > 0
}

// IsJump returns true for instructions whose operand is a code offset.
func (op OpCode) IsJump() bool {
	return op == JMP || op == JZ || op == CALL
}

// StackUsage returns the number of values an instruction removes from and
// places on the value stack.
func (op OpCode) StackUsage() (pops, pushes int) {
	if !IsValid(op) {
		return 0, 0
	}
	info := opCodeInfos[op]
	return info.pops, info.pushes
}
