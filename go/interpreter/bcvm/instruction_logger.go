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
	"io"
)

// loggingRunner is a runner that logs the execution of the program to an
// io.Writer. If no writer is provided, nothing is logged.
type loggingRunner struct {
	log io.Writer
}

// newLogger creates a new logging runner that writes to the provided
// io.Writer.
func newLogger(writer io.Writer) loggingRunner {
	return loggingRunner{log: writer}
}

func (l loggingRunner) run(c *context) (status, error) {
	status := statusRunning
	var err error
	for status == statusRunning {
		// log format: <pc>: <instruction>, <stack depth>, <top-of-stack>\n
		if c.pc < len(c.code) && c.steps < c.maxSteps && l.log != nil {
			top := "-empty-"
			if c.stack.len() > 0 {
				top = fmt.Sprintf("%d", *c.stack.peek())
			}
			_, err = fmt.Fprintf(l.log, "%d: %v, %d, %v\n", c.pc, c.code[c.pc], c.stack.len(), top)
			if err != nil {
				return status, fmt.Errorf("failed to write trace: %w", err)
			}
		}
		status, err = step(c)
		if err != nil {
			return status, err
		}
	}
	return status, nil
}
