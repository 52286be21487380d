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

import "github.com/Fantom-foundation/svm/go/svm/isa"

// stackUsage defines the combined effect of an instruction on the stack. The
// instruction requires at least pops elements on the stack and changes the
// stack size by delta.
type stackUsage struct {
	pops, delta int
}

// stackUsages is the precomputed stack usage of every opcode. Undefined
// opcodes do not access the stack.
var stackUsages = func() [256]stackUsage {
	res := [256]stackUsage{}
	for i := range res {
		pops, pushes := isa.OpCode(i).StackUsage()
		res[i] = stackUsage{pops: pops, delta: pushes - pops}
	}
	return res
}()

// checkStackLimits checks that the instruction can be executed on a stack of
// the given size without underflowing it or growing it beyond maxSize. A
// maxSize of zero or less means the stack is unbounded.
func checkStackLimits(size, maxSize int, op isa.OpCode) error {
	usage := stackUsages[op]
	if size < usage.pops {
		return errStackUnderflow
	}
	if maxSize > 0 && usage.delta > 0 && size+usage.delta > maxSize {
		return errCapacityExceeded
	}
	return nil
}
