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
	"encoding/binary"
	"fmt"

	"github.com/Fantom-foundation/svm/go/svm"
	"github.com/Fantom-foundation/svm/go/svm/isa"
)

// Disassemble renders the given code as assembly text, one instruction per
// line. Labels from the given table, which may be nil, are emitted before the
// instructions they are bound to and are used as jump targets. Bytes not
// forming a valid instruction are rendered as OP_XX placeholders, so
// disassembly never fails and assembling the result reproduces the code.
func Disassemble(code svm.Code, labels svm.Labels) []string {
	res := []string{}
	for _, e := range disassemble(code, labels) {
		if e.label {
			res = append(res, e.text+":")
		} else {
			res = append(res, e.text)
		}
	}
	return res
}

// Listing renders the given code like Disassemble, prefixing every
// instruction with its offset and encoded bytes.
func Listing(code svm.Code, labels svm.Labels) []string {
	res := []string{}
	for _, e := range disassemble(code, labels) {
		if e.label {
			res = append(res, e.text+":")
			continue
		}
		bytes := fmt.Sprintf("% X", []byte(code[e.offset:e.offset+e.size]))
		res = append(res, fmt.Sprintf("%04X  %-14s  %s", e.offset, bytes, e.text))
	}
	return res
}

// entry is a line of disassembled output.
type entry struct {
	offset int
	size   int    // < number of code bytes covered, 0 for labels
	text   string // < instruction or label name
	label  bool
}

// segment is a decodable instruction or a placeholder byte.
type segment struct {
	offset int
	op     isa.OpCode
	raw    bool
}

func (s segment) size() int {
	if s.raw {
		return 1
	}
	return s.op.Size()
}

// segments splits the code into instructions. Undefined opcodes become single
// byte placeholders. An instruction truncated by the end of the code turns
// all remaining bytes into placeholders.
func segments(code svm.Code) []segment {
	res := []segment{}
	for pc := 0; pc < len(code); {
		op := isa.OpCode(code[pc])
		switch {
		case isa.IsValid(op) && pc+op.Size() <= len(code):
			res = append(res, segment{offset: pc, op: op})
			pc += op.Size()
		case isa.IsValid(op):
			for ; pc < len(code); pc++ {
				res = append(res, segment{offset: pc, op: isa.OpCode(code[pc]), raw: true})
			}
		default:
			res = append(res, segment{offset: pc, op: op, raw: true})
			pc++
		}
	}
	return res
}

// emittedLabels selects the labels that can be emitted for the given
// segments: names usable in assembly text bound to the start of a segment or
// to the end of the code. If several names are bound to the same offset,
// the lexicographically smallest one is used.
func emittedLabels(labels svm.Labels, segments []segment, size int) map[int]string {
	starts := make(map[int]bool, len(segments)+1)
	for _, s := range segments {
		starts[s.offset] = true
	}
	starts[size] = true

	usable := svm.Labels{}
	for name, offset := range labels {
		if isIdentifier(name) && starts[offset] {
			usable[name] = offset
		}
	}
	return usable.ByOffset()
}

func disassemble(code svm.Code, labels svm.Labels) []entry {
	segments := segments(code)
	names := emittedLabels(labels, segments, len(code))

	res := make([]entry, 0, len(segments)+len(names))
	for _, s := range segments {
		if name, found := names[s.offset]; found {
			res = append(res, entry{offset: s.offset, text: name, label: true})
		}
		res = append(res, entry{offset: s.offset, size: s.size(), text: render(code, s, names)})
	}
	if name, found := names[len(code)]; found {
		res = append(res, entry{offset: len(code), text: name, label: true})
	}
	return res
}

// render formats a single segment.
func render(code svm.Code, s segment, names map[int]string) string {
	if s.raw {
		return fmt.Sprintf("OP_%02X", byte(s.op))
	}
	operand := code[s.offset+1 : s.offset+s.op.Size()]
	switch s.op.Width() {
	case isa.ValueWidth:
		return fmt.Sprintf("%v %d", s.op, int32(binary.LittleEndian.Uint32(operand)))
	case isa.AddressWidth:
		target := int(binary.LittleEndian.Uint16(operand))
		if name, found := names[target]; found && s.op.IsJump() {
			return fmt.Sprintf("%v %s", s.op, name)
		}
		return fmt.Sprintf("%v %d", s.op, target)
	}
	return s.op.String()
}
