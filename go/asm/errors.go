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

import "fmt"

// LineError reports a translation failure on a line of assembly text. The
// wrapped error matches one of the svm.Err* constants of the assembler.
type LineError struct {
	Line int    // < 1-based line number
	Text string // < the line without comments and surrounding whitespace
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
