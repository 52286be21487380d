// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package interpreter_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/Fantom-foundation/svm/go/asm"
	"github.com/Fantom-foundation/svm/go/svm"
)

func assemble(t testing.TB, text string) svm.Code {
	t.Helper()
	code, _, err := asm.AssembleString(text)
	if err != nil {
		t.Fatalf("failed to assemble: %v", err)
	}
	return code
}

func TestPrograms_ProduceExpectedResults(t *testing.T) {
	tests := map[string]struct {
		text     string
		maxSteps int
		outcome  svm.Outcome
		stack    []svm.Word
		steps    int
	}{
		"addition": {
			text:    "PUSH 5\nPUSH 3\nADD\nHALT",
			outcome: svm.Halted,
			stack:   []svm.Word{8},
			steps:   4,
		},
		"arithmetic": {
			text:    "PUSH 20\nPUSH 6\nSUB\nPUSH -3\nMUL\nPUSH 4\nDIV\nHALT",
			outcome: svm.Halted,
			stack:   []svm.Word{-11},
			steps:   8,
		},
		"memory": {
			text:    "PUSH 42\nSTORE 7\nLOAD 7\nLOAD 7\nADD\nHALT",
			outcome: svm.Halted,
			stack:   []svm.Word{84},
			steps:   6,
		},
		"dup and swap": {
			text:    "PUSH 1\nPUSH 2\nSWAP\nDUP\nHALT",
			outcome: svm.Halted,
			stack:   []svm.Word{2, 1, 1},
			steps:   5,
		},
		"countdown": {
			text:    "PUSH 3\nloop:\nPUSH 1\nSUB\nDUP\nJZ done\nJMP loop\ndone:\nHALT",
			outcome: svm.Halted,
			stack:   []svm.Word{0},
			steps:   1 + 3*4 + 2 + 1,
		},
		"nested calls": {
			text:    "CALL a\nHALT\na:\nPUSH 1\nCALL b\nRET\nb:\nPUSH 2\nRET",
			outcome: svm.Halted,
			stack:   []svm.Word{1, 2},
			steps:   7,
		},
		"end of code": {
			text:    "PUSH 1\nNOP",
			outcome: svm.EndOfCode,
			stack:   []svm.Word{1},
			steps:   2,
		},
		"empty code": {
			text:    "",
			outcome: svm.EndOfCode,
			stack:   []svm.Word{},
		},
		"step limit": {
			text:     "loop:\nPUSH 1\nJMP loop",
			maxSteps: 20,
			outcome:  svm.Exhausted,
			stack:    []svm.Word{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
			steps:    20,
		},
		"jz falls through on non-zero": {
			text:     "loop:\nPUSH 1\nJZ loop",
			maxSteps: 20,
			outcome:  svm.EndOfCode,
			stack:    []svm.Word{},
			steps:    2,
		},
	}

	for _, variant := range getAllInterpreterVariantsForTests() {
		interpreter := newInterpreter(t, variant)
		for name, test := range tests {
			t.Run(variant+"/"+name, func(t *testing.T) {
				res, err := interpreter.Run(svm.Parameters{
					Code:     assemble(t, test.text),
					MaxSteps: test.maxSteps,
				})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if want, got := test.outcome, res.Outcome; want != got {
					t.Errorf("unexpected outcome, wanted %v, got %v", want, got)
				}
				if want, got := test.stack, res.Stack; !slices.Equal(want, got) {
					t.Errorf("unexpected stack, wanted %v, got %v", want, got)
				}
				if want, got := test.steps, res.Steps; want != got {
					t.Errorf("unexpected number of steps, wanted %d, got %d", want, got)
				}
			})
		}
	}
}

func TestPrograms_FailuresAreReported(t *testing.T) {
	tests := map[string]struct {
		text string
		want error
		pc   int
	}{
		"divide by zero":       {"PUSH 7\nPUSH 0\nDIV\nHALT", svm.ErrDivideByZero, 10},
		"pop on empty stack":   {"POP", svm.ErrStackUnderflow, 0},
		"ret without call":     {"PUSH 1\nRET", svm.ErrCallStackUnderflow, 5},
		"load out of range":    {"LOAD 64", svm.ErrOutOfRange, 0},
		"store out of range":   {"PUSH 1\nSTORE 1000", svm.ErrOutOfRange, 5},
		"unknown opcode":       {"NOP\nOP_FF", svm.ErrUnknownOpcode, 1},
		"truncated push":       {"NOP\nOP_01\nOP_00", svm.ErrTruncatedInstruction, 1},
		"truncated jump":       {"OP_09\nOP_00", svm.ErrTruncatedInstruction, 0},
		"add with one operand": {"PUSH 1\nADD", svm.ErrStackUnderflow, 5},
	}

	for _, variant := range getAllInterpreterVariantsForTests() {
		interpreter := newInterpreter(t, variant)
		for name, test := range tests {
			t.Run(variant+"/"+name, func(t *testing.T) {
				_, err := interpreter.Run(svm.Parameters{Code: assemble(t, test.text)})
				if !errors.Is(err, test.want) {
					t.Fatalf("unexpected error, wanted %v, got %v", test.want, err)
				}
				var execErr *svm.ExecutionError
				if !errors.As(err, &execErr) {
					t.Fatalf("error is not an execution error: %v", err)
				}
				if want, got := test.pc, execErr.Pc; want != got {
					t.Errorf("unexpected pc, wanted %d, got %d", want, got)
				}
			})
		}
	}
}

func TestPrograms_CodeIsNotModified(t *testing.T) {
	for _, variant := range getAllInterpreterVariantsForTests() {
		interpreter := newInterpreter(t, variant)
		t.Run(variant, func(t *testing.T) {
			code := assemble(t, "PUSH 3\nSTORE 0\nLOAD 0\nCALL f\nHALT\nf:\nDUP\nMUL\nRET")
			before := slices.Clone(code)
			if _, err := interpreter.Run(svm.Parameters{Code: code}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(before, code) {
				t.Errorf("code was modified by execution")
			}
		})
	}
}
