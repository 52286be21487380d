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
	"fmt"

	"github.com/Fantom-foundation/svm/go/svm"
	"github.com/Fantom-foundation/svm/go/svm/isa"
)

//go:generate mockgen -source interpreter.go -destination interpreter_mock.go -package bcvm

// status is enumeration of the execution state of an interpreter run.
type status byte

const (
	statusRunning   status = iota // < all fine, ops are processed
	statusHalted                  // < execution stopped with a HALT
	statusExhausted               // < execution stopped at the step limit
	statusEndOfCode               // < execution ran past the last instruction
	statusFailed                  // < execution stopped with a failing instruction
)

// context is the execution environment of an interpreter run. It contains all
// the necessary state to execute a program, including input parameters, the
// decoded code, and internal execution state such as the program counter,
// stack, and memory. For each run, a new context is created.
type context struct {
	// Inputs
	params svm.Parameters
	code   Code // the program in decoded form

	// Execution state
	pc     int
	steps  int
	stack  *stack
	memory *memory
	frames []int // < return addresses of active calls, innermost last

	// Limits
	maxSteps     int
	maxStackSize int
	maxCallDepth int
}

// newExecutionError describes the failure of the instruction at the current
// program counter. Since failing instructions leave the state untouched, the
// reported state is the state before the instruction was started.
func (c *context) newExecutionError(err error) error {
	return &svm.ExecutionError{
		Err:        err,
		Pc:         c.pc,
		Op:         c.code[c.pc].opcode,
		StackDepth: c.stack.len(),
		CallDepth:  len(c.frames),
		Steps:      c.steps,
	}
}

// --- Interpreter ---

type runner interface {
	// run executes the program in the given context.
	// It returns the status of the execution:
	// - A failing instruction shall return statusFailed together with an
	//   *svm.ExecutionError describing the failure.
	// - Other errors are reserved for problems of the runner itself.
	run(*context) (status, error)
}

// interpreterConfig summarizes the settings of a single run.
type interpreterConfig struct {
	runner       runner
	memorySize   int
	maxSteps     int
	maxStackSize int
	maxCallDepth int
}

func run(
	config interpreterConfig,
	params svm.Parameters,
	code Code,
) (svm.Result, error) {
	memorySize := params.MemorySize
	if memorySize <= 0 {
		memorySize = config.memorySize
	}
	maxSteps := params.MaxSteps
	if maxSteps <= 0 {
		maxSteps = config.maxSteps
	}

	// Set up execution context.
	var ctxt = context{
		params:       params,
		code:         code,
		stack:        NewStack(),
		memory:       newMemory(memorySize),
		maxSteps:     maxSteps,
		maxStackSize: config.maxStackSize,
		maxCallDepth: config.maxCallDepth,
	}
	defer ReturnStack(ctxt.stack)

	if config.runner == nil {
		config.runner = vanillaRunner{}
	}
	status, err := config.runner.run(&ctxt)
	if err != nil {
		return svm.Result{}, err
	}

	return generateResult(status, &ctxt)
}

func generateResult(status status, ctxt *context) (svm.Result, error) {
	var outcome svm.Outcome
	switch status {
	case statusHalted:
		outcome = svm.Halted
	case statusExhausted:
		outcome = svm.Exhausted
	case statusEndOfCode:
		outcome = svm.EndOfCode
	default:
		return svm.Result{}, fmt.Errorf("unexpected error in interpreter, unknown status: %v", status)
	}
	return svm.Result{
		Outcome: outcome,
		Stack:   ctxt.stack.values(),
		Memory:  ctxt.memory.values(),
		Steps:   ctxt.steps,
	}, nil
}

// --- Runners ---

// vanillaRunner is the default runner that executes the program without
// any additional features.
type vanillaRunner struct{}

func (r vanillaRunner) run(c *context) (status, error) {
	return steps(c, false)
}

// --- Execution ---

// steps executes the program in the given context. If oneStepOnly is true,
// only the instruction pointed to by the program counter will be executed.
// steps returns the status of the execution and an *svm.ExecutionError if an
// instruction failed.
func steps(c *context, oneStepOnly bool) (status, error) {
	status := statusRunning
	for status == statusRunning {
		if c.steps >= c.maxSteps {
			return statusExhausted, nil
		}
		if c.pc >= len(c.code) {
			return statusEndOfCode, nil
		}

		instr := c.code[c.pc]
		if instr.fault != nil {
			return statusFailed, c.newExecutionError(instr.fault)
		}

		// Check stack boundary for every instruction
		if err := checkStackLimits(c.stack.len(), c.maxStackSize, instr.opcode); err != nil {
			return statusFailed, c.newExecutionError(err)
		}

		// Execute instruction; next is the offset of the following one.
		var err error
		next := c.pc + instr.opcode.Size()
		switch instr.opcode {
		case isa.NOP:
			// nothing to do
		case isa.PUSH:
			c.stack.push(svm.Word(instr.arg))
		case isa.POP:
			c.stack.pop()
		case isa.ADD:
			opAdd(c)
		case isa.SUB:
			opSub(c)
		case isa.MUL:
			opMul(c)
		case isa.DIV:
			err = opDiv(c)
		case isa.LOAD:
			err = opLoad(c, instr.arg)
		case isa.STORE:
			err = opStore(c, instr.arg)
		case isa.JMP:
			next = int(instr.arg)
		case isa.JZ:
			if opJz(c) {
				next = int(instr.arg)
			}
		case isa.CALL:
			if err = opCall(c, next); err == nil {
				next = int(instr.arg)
			}
		case isa.RET:
			next, err = opRet(c)
		case isa.HALT:
			status = statusHalted
		case isa.DUP:
			c.stack.dup(0)
		case isa.SWAP:
			c.stack.swap(1)
		default:
			err = errUnknownOpcode
		}

		if err != nil {
			return statusFailed, c.newExecutionError(err)
		}
		c.pc = next
		c.steps++

		if oneStepOnly {
			return status, nil
		}
	}
	return status, nil
}

// step executes the single instruction pointed to by the program counter.
func step(c *context) (status, error) {
	return steps(c, true)
}
