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
	"strings"
	"sync"

	"github.com/Fantom-foundation/svm/go/svm"
)

// stack is the value stack used by the VM. It grows on demand; an upper bound
// may be imposed through the interpreter configuration.
// Boundaries are not checked. Users of the stack must prevent underflow
// situations.
//
// To reduce allocations, a stack pool is provided to reuse stack instances.
// To obtain an empty stack from the pool, use NewStack(). To return a stack to
// the pool, use ReturnStack(s).
//
// Example usage:
//
//	s := NewStack()
//	defer ReturnStack(s)
//	<use the stack in your local scope>
//
// The stack is not thread-safe. NewStack() and ReturnStack() are thread-safe.
type stack struct {
	data []svm.Word
}

// push adds the given value to the top of the stack.
func (s *stack) push(v svm.Word) {
	s.data = append(s.data, v)
}

// pop removes the top element from the stack and returns it.
func (s *stack) pop() svm.Word {
	res := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return res
}

// peek returns a pointer to the top element of the stack without removing it.
// The returned pointer is only valid until the next operation on the stack.
func (s *stack) peek() *svm.Word {
	return &s.data[len(s.data)-1]
}

// peekN returns a pointer to the n-th element from the top of the stack without
// removing it. The top element is at index 0. Thus, peekN(0) is equivalent to
// peek().
func (s *stack) peekN(n int) *svm.Word {
	return &s.data[len(s.data)-n-1]
}

// len returns the number of elements on the stack.
func (s *stack) len() int {
	return len(s.data)
}

// swap exchanges the top element with the n-th element from the top. The top
// element is at index 0. Thus, swap(0) is a no-op.
func (s *stack) swap(n int) {
	top := len(s.data) - 1
	s.data[top-n], s.data[top] = s.data[top], s.data[top-n]
}

// dup duplicates the n-th element from the top and pushes it to the top of the
// stack. The top element is at index 0. Thus, dup(0) duplicates the top element.
func (s *stack) dup(n int) {
	s.push(*s.peekN(n))
}

// values returns a copy of the stack content, bottom element first.
func (s *stack) values() []svm.Word {
	res := make([]svm.Word, len(s.data))
	copy(res, s.data)
	return res
}

func (s *stack) String() string {
	b := strings.Builder{}
	for i := 0; i < s.len(); i++ {
		b.WriteString(fmt.Sprintf("    [%4d] %d\n", s.len()-i-1, *s.peekN(i)))
	}
	return b.String()
}

// ------------------ Stack Pool ------------------

var stackPool = sync.Pool{
	New: func() interface{} {
		return &stack{data: make([]svm.Word, 0, 64)}
	},
}

// NewStack returns a new stack instance from the a reuse pool. Heavy stack
// users should use this function to prevent memory reallocation overhead.
// This function is thread-safe.
func NewStack() *stack {
	return stackPool.Get().(*stack)
}

// ReturnStack returns the stack to the reuse pool. Any stack may only be
// returned once to avoid concurrent re-use. This is not checked internally.
// This function is thread-safe.
func ReturnStack(s *stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}
