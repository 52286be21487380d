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
	"fmt"
	"testing"

	"github.com/Fantom-foundation/svm/go/svm"
	"github.com/Fantom-foundation/svm/go/svm/isa"
)

func TestUndefinedOpCodesAreRejected(t *testing.T) {
	for _, variant := range getAllInterpreterVariantsForTests() {
		interpreter := newInterpreter(t, variant)
		t.Run(variant, func(t *testing.T) {
			for i := isa.NumOpCodes; i < 256; i++ {
				code := svm.Code{byte(isa.NOP), byte(i)}
				_, err := interpreter.Run(svm.Parameters{Code: code})
				if !errors.Is(err, svm.ErrUnknownOpcode) {
					t.Errorf("0x%02X: expected unknown opcode, got %v", i, err)
				}
			}
		})
	}
}

func TestOperandsMissingAtEndOfCodeAreRejected(t *testing.T) {
	for _, variant := range getAllInterpreterVariantsForTests() {
		interpreter := newInterpreter(t, variant)
		for _, op := range isa.ValidOpCodes() {
			if !op.HasOperand() {
				continue
			}
			t.Run(fmt.Sprintf("%s-%v", variant, op), func(t *testing.T) {
				for j := 0; j < op.Width(); j++ {
					code := make(svm.Code, 1+j)
					code[0] = byte(op)
					_, err := interpreter.Run(svm.Parameters{Code: code})
					if !errors.Is(err, svm.ErrTruncatedInstruction) {
						t.Errorf("%d operand bytes: expected truncated instruction, got %v", j, err)
					}
				}
			})
		}
	}
}

func TestJumpBeyondCodeEndsExecution(t *testing.T) {
	for _, variant := range getAllInterpreterVariantsForTests() {
		interpreter := newInterpreter(t, variant)
		t.Run(variant, func(t *testing.T) {
			code := svm.Code{byte(isa.PUSH), 1, 0, 0, 0, byte(isa.JMP), 200, 0}
			res, err := interpreter.Run(svm.Parameters{Code: code})
			if err != nil {
				t.Fatalf("unexpected failure: %v", err)
			}
			if want, got := svm.EndOfCode, res.Outcome; want != got {
				t.Errorf("unexpected outcome, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestJumpIntoOperandExecutesOperandBytes(t *testing.T) {
	for _, variant := range getAllInterpreterVariantsForTests() {
		interpreter := newInterpreter(t, variant)
		t.Run(variant, func(t *testing.T) {
			code := svm.Code{
				byte(isa.JMP), 4, 0,
				byte(isa.PUSH), byte(isa.HALT), 0, 0, 0,
			}
			res, err := interpreter.Run(svm.Parameters{Code: code})
			if err != nil {
				t.Fatalf("unexpected failure: %v", err)
			}
			if res.Outcome != svm.Halted || res.Steps != 2 || len(res.Stack) != 0 {
				t.Errorf("unexpected result: %+v", res)
			}
		})
	}
}
