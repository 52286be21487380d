// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Fantom-foundation/svm/go/asm"
	cliUtils "github.com/Fantom-foundation/svm/go/driver/cli"
	"github.com/tliron/commonlog"
	"github.com/urfave/cli/v2"
)

var DisCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doDis,
	Name:      "dis",
	Usage:     "Translate bytecode into assembly text, using its label sidecar file if present",
	ArgsUsage: "<input> <output>",
	Flags: []cli.Flag{
		cliUtils.ListingFlag,
	},
})

var disLog = commonlog.GetLogger("svm.dis")

func doDis(context *cli.Context) error {
	args, err := cliUtils.ExpectArgs(context, "input", "output")
	if err != nil {
		return err
	}
	input, output := args[0], args[1]

	code, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read bytecode: %w", err)
	}
	labels, err := asm.LoadLabelsFor(input)
	if err != nil {
		return err
	}
	disLog.Infof("disassembling %s: %d bytes, %d labels", input, len(code), len(labels))

	var lines []string
	if cliUtils.ListingFlag.Fetch(context) {
		lines = asm.Listing(code, labels)
	} else {
		lines = asm.Disassemble(code, labels)
	}

	text := strings.Join(lines, "\n")
	if len(lines) > 0 {
		text += "\n"
	}
	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write assembly: %w", err)
	}
	return nil
}
