// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package svm

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Labels is a table of symbolic names for code offsets. It is metadata kept
// next to a program and never encoded into the program itself.
type Labels map[string]int

// Names returns the label names in lexicographical order.
func (l Labels) Names() []string {
	names := maps.Keys(l)
	slices.Sort(names)
	return names
}

// Clone returns an independent copy of the table.
func (l Labels) Clone() Labels {
	if l == nil {
		return Labels{}
	}
	return maps.Clone(l)
}

// ByOffset inverts the table. If several names are bound to the same offset,
// the lexicographically smallest name is retained.
func (l Labels) ByOffset() map[int]string {
	res := make(map[int]string, len(l))
	for name, offset := range l {
		if cur, found := res[offset]; !found || name < cur {
			res[offset] = name
		}
	}
	return res
}
