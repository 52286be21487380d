// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package asm translates between the assembly text form of stack VM programs
// and their encoded form. It also persists label tables next to encoded
// programs.
//
// The text form is line oriented. Everything after // is a comment. A line
// ending in a colon declares a label bound to the offset of the following
// instruction. Any other non-blank line holds a mnemonic and, if the
// instruction requires one, a single operand:
//
//	// counts down from 3
//	    PUSH 3
//	loop:
//	    PUSH 1
//	    SUB
//	    DUP
//	    JZ done
//	    JMP loop
//	done:
//	    HALT
//
// Operands are integer literals in Go syntax; jump targets may also be label
// names. A line OP_XX emits the single byte 0xXX, which is how the
// disassembler renders bytes that do not form a valid instruction.
package asm

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/Fantom-foundation/svm/go/svm"
	"github.com/Fantom-foundation/svm/go/svm/isa"
)

const commentMarker = "//"

// statement is a single instruction line located by the layout pass.
type statement struct {
	line    int        // < 1-based source line
	text    string     // < source text without comment
	op      isa.OpCode // < opcode or, for placeholders, the raw byte
	raw     bool       // < true for OP_XX placeholders
	operand string     // < operand token, empty if none
}

// Assemble translates the given lines of assembly text into bytecode and
// returns the label table of the program. Translation stops at the first
// offending line, reported as a *LineError.
func Assemble(lines []string) (svm.Code, svm.Labels, error) {
	statements, labels, size, err := layout(lines)
	if err != nil {
		return nil, nil, err
	}
	code := make(svm.Code, 0, size)
	for _, s := range statements {
		code, err = encode(code, s, labels)
		if err != nil {
			return nil, nil, &LineError{Line: s.line, Text: s.text, Err: err}
		}
	}
	return code, labels, nil
}

// AssembleString is like Assemble for a text holding one line per newline.
func AssembleString(text string) (svm.Code, svm.Labels, error) {
	return Assemble(strings.Split(text, "\n"))
}

// layout parses all lines, binds labels to offsets and computes the size of
// the resulting code.
func layout(lines []string) ([]statement, svm.Labels, int, error) {
	statements := []statement{}
	labels := svm.Labels{}
	offset := 0
	for i, line := range lines {
		text, _, _ := strings.Cut(line, commentMarker)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		fail := func(err error) ([]statement, svm.Labels, int, error) {
			return nil, nil, 0, &LineError{Line: i + 1, Text: text, Err: err}
		}

		if strings.HasSuffix(text, ":") {
			name := strings.TrimSpace(strings.TrimSuffix(text, ":"))
			if !isIdentifier(name) {
				return fail(fmt.Errorf("%w: %q", svm.ErrInvalidLabel, name))
			}
			if _, found := labels[name]; found {
				return fail(fmt.Errorf("%w: %s", svm.ErrDuplicateLabel, name))
			}
			labels[name] = offset
			continue
		}

		fields := strings.Fields(text)
		s := statement{line: i + 1, text: text}
		if b, ok := parsePlaceholder(fields[0]); ok {
			s.op, s.raw = isa.OpCode(b), true
		} else if op, found := isa.Lookup(fields[0]); found {
			s.op = op
		} else {
			return fail(fmt.Errorf("%w: %s", svm.ErrUnknownMnemonic, fields[0]))
		}

		wantOperand := !s.raw && s.op.HasOperand()
		switch {
		case len(fields) > 2:
			return fail(fmt.Errorf("%w: unexpected tokens after operand", svm.ErrMalformedOperand))
		case wantOperand && len(fields) < 2:
			return fail(fmt.Errorf("%w: %v requires an operand", svm.ErrMalformedOperand, s.op))
		case !wantOperand && len(fields) > 1:
			return fail(fmt.Errorf("%w: %s takes no operand", svm.ErrMalformedOperand, strings.ToUpper(fields[0])))
		}
		if wantOperand {
			s.operand = fields[1]
		}

		statements = append(statements, s)
		if s.raw {
			offset++
		} else {
			offset += s.op.Size()
		}
	}
	return statements, labels, offset, nil
}

// encode appends the encoding of the given statement to code.
func encode(code svm.Code, s statement, labels svm.Labels) (svm.Code, error) {
	code = append(code, byte(s.op))
	if s.raw || !s.op.HasOperand() {
		return code, nil
	}

	if s.op == isa.PUSH {
		value, err := strconv.ParseInt(s.operand, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a 32-bit integer", svm.ErrMalformedOperand, s.operand)
		}
		return binary.LittleEndian.AppendUint32(code, uint32(int32(value))), nil
	}

	var address uint64
	if s.op.IsJump() && isIdentifier(s.operand) {
		offset, found := labels[s.operand]
		if !found {
			return nil, fmt.Errorf("%w: %s", svm.ErrUndefinedLabel, s.operand)
		}
		if offset > isa.MaxAddress {
			return nil, fmt.Errorf("%w: label %s is bound to offset %d, beyond the addressable range", svm.ErrMalformedOperand, s.operand, offset)
		}
		address = uint64(offset)
	} else {
		var err error
		address, err = strconv.ParseUint(s.operand, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a 16-bit unsigned integer", svm.ErrMalformedOperand, s.operand)
		}
	}
	return binary.LittleEndian.AppendUint16(code, uint16(address)), nil
}

// parsePlaceholder parses a raw byte placeholder of the form OP_XX.
func parsePlaceholder(token string) (byte, bool) {
	const prefix = "OP_"
	if len(token) != len(prefix)+2 || !strings.EqualFold(token[:len(prefix)], prefix) {
		return 0, false
	}
	value, err := strconv.ParseUint(token[len(prefix):], 16, 8)
	if err != nil {
		return 0, false
	}
	return byte(value), true
}

// isIdentifier reports whether s is a letter or underscore followed by
// letters, digits and underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
