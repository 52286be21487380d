// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package examples provides assembly programs with a (int)->int signature
// together with reference functions computing the same results.
package examples

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/Fantom-foundation/svm/go/asm"
	"github.com/Fantom-foundation/svm/go/svm"
)

// Example is an assembled program computing a function of a single argument.
// The argument is pushed by the first instruction of the program, the result
// is the value on top of the stack when the program halts.
type Example struct {
	exampleSpec
	Code   svm.Code   // the code with a zero argument
	Labels svm.Labels // the labels of the code
}

// exampleSpec specifies a program body and its reference function.
type exampleSpec struct {
	Name        string
	Description string
	body        string            // assembly text following the argument push
	reference   func(int32) int32 // a reference function computing the same function
}

// argumentOffset is the position of the PUSH operand holding the argument.
const argumentOffset = 1

func (s exampleSpec) build() Example {
	code, labels, err := asm.AssembleString(s.Source(0))
	if err != nil {
		panic(fmt.Sprintf("invalid example %s: %v", s.Name, err))
	}
	return Example{
		exampleSpec: s,
		Code:        code,
		Labels:      labels,
	}
}

// Source returns the assembly text of this example computing the result for
// the given argument.
func (s exampleSpec) Source(argument int32) string {
	return fmt.Sprintf("    PUSH %d // argument\n", argument) + strings.TrimLeft(s.body, "\n")
}

// CodeFor returns the code of this example computing the result for the
// given argument.
func (e *Example) CodeFor(argument int32) svm.Code {
	code := make(svm.Code, len(e.Code))
	copy(code, e.Code)
	binary.LittleEndian.PutUint32(code[argumentOffset:], uint32(argument))
	return code
}

type Result struct {
	Result int32
	Steps  int
}

// RunOn runs this example on the given interpreter, using the given argument.
func (e *Example) RunOn(interpreter svm.Interpreter, argument int32) (Result, error) {
	code := e.CodeFor(argument)
	hash := svm.HashCode(code)
	res, err := interpreter.Run(svm.Parameters{
		Code:     code,
		CodeHash: &hash,
	})
	if err != nil {
		return Result{}, err
	}
	if res.Outcome != svm.Halted {
		return Result{}, fmt.Errorf("program did not halt: %v", res.Outcome)
	}
	top, ok := res.Top()
	if !ok {
		return Result{}, fmt.Errorf("program halted with an empty stack")
	}
	return Result{
		Result: int32(top),
		Steps:  res.Steps,
	}, nil
}

// RunReference runs the reference function of this example to produce the
// expected result.
func (e *Example) RunReference(argument int32) int32 {
	return e.reference(argument)
}

// GetAllExamples returns all bundled examples, sorted by name.
func GetAllExamples() []Example {
	return []Example{
		GetCollatzExample(),
		GetFactorialExample(),
		GetFibExample(),
		GetSumOfSquaresExample(),
	}
}

// GetExample returns the bundled example with the given name.
func GetExample(name string) (Example, bool) {
	for _, example := range GetAllExamples() {
		if example.Name == name {
			return example, true
		}
	}
	return Example{}, false
}
