// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package asm

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/Fantom-foundation/svm/go/svm"
	"github.com/Fantom-foundation/svm/go/svm/isa"
	"pgregory.net/rand"
)

func TestRoundTrip_AssembledProgramsAreReproduced(t *testing.T) {
	tests := map[string]string{
		"add":       "PUSH 5\nPUSH 3\nADD\nHALT",
		"step loop": "loop:\nPUSH 1\nJMP loop",
		"countdown": "PUSH 3\nloop:\nPUSH 1\nSUB\nDUP\nJZ done\nJMP loop\ndone:\nHALT",
		"calls":     "CALL f\nHALT\nf:\nPUSH 1\nCALL g\nRET\ng:\nRET",
		"raw bytes": "HALT\nOP_42\nOP_01\nOP_00",
		"end label": "JMP end\nNOP\nend:",
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			checkRoundTrip(t, strings.Split(text, "\n"))
		})
	}
}

func TestRoundTrip_RandomProgramsAreReproduced(t *testing.T) {
	rnd := rand.New(0)
	for i := 0; i < 1000; i++ {
		lines := randomProgram(rnd)
		checkRoundTrip(t, lines)
		if t.Failed() {
			t.Fatalf("round trip failed for program:\n%s", strings.Join(lines, "\n"))
		}
	}
}

func TestRoundTrip_RandomBytesAreReproduced(t *testing.T) {
	rnd := rand.New(1)
	for i := 0; i < 1000; i++ {
		code := make(svm.Code, rnd.Intn(64))
		rnd.Read(code)
		labels := svm.Labels{}
		for j := 0; j < rnd.Intn(4); j++ {
			labels[fmt.Sprintf("l%d", j)] = rnd.Intn(len(code) + 1)
		}

		text := Disassemble(code, labels)
		got, _, err := Assemble(text)
		if err != nil {
			t.Fatalf("failed to reassemble %x: %v\n%s", code, err, strings.Join(text, "\n"))
		}
		if !reflect.DeepEqual(code, got) {
			t.Fatalf("round trip changed code, wanted %x, got %x", code, got)
		}
	}
}

// checkRoundTrip assembles the given program, disassembles the result and
// checks that assembling the disassembly reproduces code and labels.
func checkRoundTrip(t *testing.T, lines []string) {
	t.Helper()
	code, labels, err := Assemble(lines)
	if err != nil {
		t.Fatalf("failed to assemble: %v", err)
	}
	text := Disassemble(code, labels)
	got, gotLabels, err := Assemble(text)
	if err != nil {
		t.Fatalf("failed to reassemble: %v\n%s", err, strings.Join(text, "\n"))
	}
	if !reflect.DeepEqual(code, got) {
		t.Errorf("round trip changed code, wanted %x, got %x", code, got)
	}

	// Only the smallest name of labels sharing an offset survives.
	want := svm.Labels{}
	for offset, name := range labels.ByOffset() {
		want[name] = offset
	}
	if !reflect.DeepEqual(want, gotLabels) {
		t.Errorf("round trip changed labels, wanted %v, got %v", want, gotLabels)
	}
}

// randomProgram generates a valid assembly program using every instruction,
// labels and jumps to labels as well as to numeric targets.
func randomProgram(rnd *rand.Rand) []string {
	numLabels := rnd.Intn(5)
	names := make([]string, 0, numLabels)
	for i := 0; i < numLabels; i++ {
		names = append(names, fmt.Sprintf("label_%d", i))
	}

	lines := []string{}
	declared := 0
	for i := rnd.Intn(30); i >= 0; i-- {
		if declared < len(names) && rnd.Intn(3) == 0 {
			lines = append(lines, names[declared]+":")
			declared++
		}
		op := isa.OpCode(rnd.Intn(isa.NumOpCodes))
		switch {
		case op == isa.PUSH:
			lines = append(lines, fmt.Sprintf("PUSH %d", int32(rnd.Uint32())))
		case op.IsJump() && len(names) > 0 && rnd.Intn(2) == 0:
			lines = append(lines, fmt.Sprintf("%v %s", op, names[rnd.Intn(len(names))]))
		case op.HasOperand():
			lines = append(lines, fmt.Sprintf("%v %d", op, rnd.Intn(isa.MaxAddress+1)))
		default:
			lines = append(lines, op.String())
		}
	}
	for ; declared < len(names); declared++ {
		lines = append(lines, names[declared]+":")
	}
	return lines
}
