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

import "github.com/Fantom-foundation/svm/go/svm"

const (
	errUnknownOpcode        = svm.ErrUnknownOpcode
	errStackUnderflow       = svm.ErrStackUnderflow
	errCallStackUnderflow   = svm.ErrCallStackUnderflow
	errOutOfRange           = svm.ErrOutOfRange
	errDivideByZero         = svm.ErrDivideByZero
	errTruncatedInstruction = svm.ErrTruncatedInstruction
	errCapacityExceeded     = svm.ErrCapacityExceeded
)
