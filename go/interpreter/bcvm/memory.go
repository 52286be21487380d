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

// memory is the fixed-size data memory of the VM. All cells are zero
// initially.
type memory struct {
	cells []svm.Word
}

func newMemory(size int) *memory {
	return &memory{cells: make([]svm.Word, size)}
}

func (m *memory) len() int {
	return len(m.cells)
}

// load returns the value of the cell at the given index.
func (m *memory) load(index int32) (svm.Word, error) {
	if index < 0 || int(index) >= len(m.cells) {
		return 0, errOutOfRange
	}
	return m.cells[index], nil
}

// store updates the value of the cell at the given index.
func (m *memory) store(index int32, value svm.Word) error {
	if index < 0 || int(index) >= len(m.cells) {
		return errOutOfRange
	}
	m.cells[index] = value
	return nil
}

// values returns a copy of the memory content.
func (m *memory) values() []svm.Word {
	res := make([]svm.Word, len(m.cells))
	copy(res, m.cells)
	return res
}
