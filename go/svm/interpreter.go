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

//go:generate mockgen -source interpreter.go -destination interpreter_mock.go -package svm

// Interpreter is a component capable of executing stack VM bytecode.
// To obtain an Interpreter instance, client code should use NewInterpreter()
// provided by the registry file in this package.
type Interpreter interface {
	// Run executes the code provided by the parameters and returns the final
	// machine state. The resulting error is nil whenever the program stopped
	// by executing HALT, by running past its last instruction, or by reaching
	// the step limit; the reason is reported in the result's Outcome. If an
	// instruction fails, the returned error is an *ExecutionError and the
	// result is undefined.
	// Interpreters are required to be thread-safe. Thus, multiple runs may be
	// conducted in parallel.
	Run(Parameters) (Result, error)
}

// ProfilingInterpreter is an Interpreter collecting statistics over the
// executed instructions of all runs.
type ProfilingInterpreter interface {
	Interpreter
	// Profile returns a human-readable summary of the collected statistics.
	Profile() string
	// ResetProfile discards all statistics collected so far.
	ResetProfile()
}

// Parameters summarizes the list of input parameters required for executing
// code.
type Parameters struct {
	Code Code
	// CodeHash is the Keccak-256 hash of Code. If set, it is assumed to be
	// valid and is used to cache decoded programs. Use HashCode to compute it.
	CodeHash *Hash
	// MemorySize is the number of data memory cells. If zero, the interpreter
	// uses its configured default.
	MemorySize int
	// MaxSteps bounds the number of executed instructions. If zero or
	// negative, the interpreter uses its configured default.
	MaxSteps int
}

// Result summarizes the machine state at the end of a successful run.
type Result struct {
	Outcome Outcome
	// Stack lists the values on the stack, bottom first.
	Stack []Word
	// Memory is the content of the data memory.
	Memory []Word
	// Steps is the number of executed instructions.
	Steps int
}

// Top returns the value on top of the final stack. The second result is
// false if the stack is empty.
func (r Result) Top() (Word, bool) {
	if len(r.Stack) == 0 {
		return 0, false
	}
	return r.Stack[len(r.Stack)-1], true
}
