// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package interpreter_test

import (
	"slices"
	"strings"
	"testing"

	_ "github.com/Fantom-foundation/svm/go/interpreter/bcvm"
	"github.com/Fantom-foundation/svm/go/svm"
)

// getAllInterpreterVariantsForTests returns all registered interpreter variants
// that should be covered in integration tests.
func getAllInterpreterVariantsForTests() []string {
	// logging variants write every instruction to stderr
	return slices.DeleteFunc(
		svm.GetAllRegisteredInterpreterNames(),
		func(s string) bool { return strings.Contains(s, "logging") },
	)
}

// newInterpreter creates the given variant, failing the test on error.
func newInterpreter(t testing.TB, variant string, config ...any) svm.Interpreter {
	t.Helper()
	interpreter, err := svm.NewInterpreter(variant, config...)
	if err != nil {
		t.Fatalf("failed to create interpreter %s: %v", variant, err)
	}
	return interpreter
}
