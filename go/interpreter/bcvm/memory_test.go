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
	"errors"
	"testing"

	"github.com/Fantom-foundation/svm/go/svm"
)

func TestMemory_IsZeroInitialized(t *testing.T) {
	m := newMemory(8)
	if want, got := 8, m.len(); want != got {
		t.Fatalf("unexpected size, wanted %d, got %d", want, got)
	}
	for i := int32(0); i < 8; i++ {
		if v, err := m.load(i); err != nil || v != 0 {
			t.Errorf("unexpected cell %d: %d, %v", i, v, err)
		}
	}
}

func TestMemory_StoreAndLoad(t *testing.T) {
	m := newMemory(4)
	if err := m.store(3, 12); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, err := m.load(3); err != nil || v != 12 {
		t.Errorf("unexpected value: %d, %v", v, err)
	}
	if want, got := []svm.Word{0, 0, 0, 12}, m.values(); len(got) != 4 || got[3] != want[3] {
		t.Errorf("unexpected content, wanted %v, got %v", want, got)
	}
}

func TestMemory_AccessOutOfRangeFails(t *testing.T) {
	m := newMemory(4)
	for _, index := range []int32{-1, 4, 1000} {
		if _, err := m.load(index); !errors.Is(err, errOutOfRange) {
			t.Errorf("unexpected error for load of %d: %v", index, err)
		}
		if err := m.store(index, 1); !errors.Is(err, errOutOfRange) {
			t.Errorf("unexpected error for store to %d: %v", index, err)
		}
	}
	if got := m.values(); got[0] != 0 || got[1] != 0 || got[2] != 0 || got[3] != 0 {
		t.Errorf("failed stores modified memory: %v", got)
	}
}

func TestMemory_EmptyMemoryRejectsAllAccesses(t *testing.T) {
	m := newMemory(0)
	if _, err := m.load(0); !errors.Is(err, errOutOfRange) {
		t.Errorf("unexpected error: %v", err)
	}
}
