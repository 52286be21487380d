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
	"github.com/Fantom-foundation/svm/go/svm"
)

// The operations below assume that the stack holds enough elements, which is
// checked before every instruction. On failure, they return an error without
// modifying the machine state.

func opAdd(c *context) {
	b := c.stack.pop()
	a := c.stack.peek()
	*a += b
}

func opSub(c *context) {
	b := c.stack.pop()
	a := c.stack.peek()
	*a -= b
}

func opMul(c *context) {
	b := c.stack.pop()
	a := c.stack.peek()
	*a *= b
}

func opDiv(c *context) error {
	b := *c.stack.peek()
	if b == 0 {
		return errDivideByZero
	}
	c.stack.pop()
	a := c.stack.peek()
	*a = floorDiv(*a, b)
	return nil
}

// floorDiv divides a by b, rounding towards negative infinity. The quotient of
// the smallest word and -1 wraps around to the smallest word.
func floorDiv(a, b svm.Word) svm.Word {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func opLoad(c *context, index int32) error {
	value, err := c.memory.load(index)
	if err != nil {
		return err
	}
	c.stack.push(value)
	return nil
}

func opStore(c *context, index int32) error {
	if err := c.memory.store(index, *c.stack.peek()); err != nil {
		return err
	}
	c.stack.pop()
	return nil
}

// opJz pops the top of the stack and reports whether it was zero.
func opJz(c *context) bool {
	return c.stack.pop() == 0
}

func opCall(c *context, returnAddress int) error {
	if c.maxCallDepth > 0 && len(c.frames) >= c.maxCallDepth {
		return errCapacityExceeded
	}
	c.frames = append(c.frames, returnAddress)
	return nil
}

// opRet pops the innermost call frame and returns its return address.
func opRet(c *context) (int, error) {
	if len(c.frames) == 0 {
		return 0, errCallStackUnderflow
	}
	res := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	return res, nil
}
