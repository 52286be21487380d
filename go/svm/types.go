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

import (
	"fmt"

	"github.com/Fantom-foundation/svm/go/svm/isa"
)

// Word is the value type of the stack and the data memory. Arithmetic on
// words wraps around using two's complement semantics.
type Word int32

// Code is an encoded program. Code is never modified by any component after
// it has been produced.
type Code []byte

// Hash is a Keccak-256 digest, used to identify code.
type Hash [32]byte

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// Outcome describes why a successful run stopped.
type Outcome byte

const (
	// Halted indicates that a HALT instruction was executed.
	Halted Outcome = iota
	// Exhausted indicates that the step limit was reached before the program
	// stopped on its own.
	Exhausted
	// EndOfCode indicates that the program counter moved past the last
	// instruction.
	EndOfCode
)

func (o Outcome) String() string {
	switch o {
	case Halted:
		return "halted"
	case Exhausted:
		return "step limit reached"
	case EndOfCode:
		return "end of code"
	}
	return fmt.Sprintf("Outcome(%d)", byte(o))
}

// ExecutionError is the error reported when a run is terminated by a failing
// instruction. It describes the machine state at the point of failure, which
// is the state before the failing instruction was started.
type ExecutionError struct {
	Err        error      // < the kind of failure, one of the Err* constants
	Pc         int        // < offset of the failing instruction
	Op         isa.OpCode // < opcode at Pc, possibly undefined
	StackDepth int        // < number of values on the stack
	CallDepth  int        // < number of active calls
	Steps      int        // < number of successfully executed instructions
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf(
		"%v at pc=%d (%v), stack depth %d, call depth %d, after %d steps",
		e.Err, e.Pc, e.Op, e.StackDepth, e.CallDepth, e.Steps,
	)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
