// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package svm

// ConstError is an error type that can be used to define immutable
// error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

// Translation errors reported by the assembler.
const (
	ErrUnknownMnemonic  = ConstError("unknown mnemonic")
	ErrUndefinedLabel   = ConstError("undefined label")
	ErrMalformedOperand = ConstError("malformed operand")
	ErrInvalidLabel     = ConstError("invalid label")
	ErrDuplicateLabel   = ConstError("duplicate label")
)

// Execution errors reported by the engine. Each of them terminates a run.
const (
	ErrUnknownOpcode        = ConstError("unknown opcode")
	ErrStackUnderflow       = ConstError("stack underflow")
	ErrCallStackUnderflow   = ConstError("call stack underflow")
	ErrOutOfRange           = ConstError("data memory index out of range")
	ErrDivideByZero         = ConstError("division by zero")
	ErrTruncatedInstruction = ConstError("truncated instruction")
	ErrCapacityExceeded     = ConstError("capacity exceeded")
)
