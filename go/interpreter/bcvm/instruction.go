// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package bcvm

import (
	"encoding/binary"
	"fmt"

	"github.com/Fantom-foundation/svm/go/svm"
	"github.com/Fantom-foundation/svm/go/svm/isa"
)

// Instruction is a decoded instruction of a program. Instructions that can
// not be executed carry the reason in their fault field.
type Instruction struct {
	// opcode is the first byte of the instruction, possibly undefined.
	opcode isa.OpCode
	// arg is the decoded operand; PUSH operands are sign-extended, address
	// operands are zero-extended.
	arg int32
	// fault is set for undefined opcodes and for operands truncated by the
	// end of the code.
	fault error
}

func (i Instruction) String() string {
	if i.fault != nil || !i.opcode.HasOperand() {
		return i.opcode.String()
	}
	return fmt.Sprintf("%v %d", i.opcode, i.arg)
}

// Code is a decoded program. It holds one instruction for every byte offset
// of the encoded program, so that any numeric jump target addresses the same
// instruction it would address in the encoded form. Entries at offsets inside
// the operand of a preceding instruction are only reached by jumps.
type Code []Instruction

// decode decodes every offset of the given code.
func decode(code svm.Code) Code {
	res := make(Code, len(code))
	for pc := range code {
		res[pc] = decodeAt(code, pc)
	}
	return res
}

// decodeAt decodes the instruction starting at the given offset.
func decodeAt(code svm.Code, pc int) Instruction {
	op := isa.OpCode(code[pc])
	if !isa.IsValid(op) {
		return Instruction{opcode: op, fault: errUnknownOpcode}
	}
	end := pc + op.Size()
	if end > len(code) {
		return Instruction{opcode: op, fault: errTruncatedInstruction}
	}
	operand := code[pc+1 : end]
	var arg int32
	switch op.Width() {
	case isa.ValueWidth:
		arg = int32(binary.LittleEndian.Uint32(operand))
	case isa.AddressWidth:
		arg = int32(binary.LittleEndian.Uint16(operand))
	}
	return Instruction{opcode: op, arg: arg}
}
