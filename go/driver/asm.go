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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Fantom-foundation/svm/go/asm"
	cliUtils "github.com/Fantom-foundation/svm/go/driver/cli"
	"github.com/tliron/commonlog"
	"github.com/urfave/cli/v2"
)

var AsmCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doAsm,
	Name:      "asm",
	Usage:     "Translate assembly text into bytecode and a label sidecar file",
	ArgsUsage: "<input> <output>",
	Flags: []cli.Flag{
		cliUtils.LabelsFormatFlag,
	},
})

var asmLog = commonlog.GetLogger("svm.asm")

func doAsm(context *cli.Context) error {
	args, err := cliUtils.ExpectArgs(context, "input", "output")
	if err != nil {
		return err
	}
	input, output := args[0], args[1]

	config, err := loadConfig(context)
	if err != nil {
		return err
	}
	format, err := cliUtils.LabelsFormatFlag.Fetch(context, config.Labels.Format)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read assembly: %w", err)
	}
	code, labels, err := asm.Assemble(strings.Split(string(text), "\n"))
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	asmLog.Infof("assembled %s: %d bytes, %d labels", input, len(code), len(labels))

	if err := os.WriteFile(output, code, 0644); err != nil {
		return fmt.Errorf("failed to write bytecode: %w", err)
	}
	sidecar := asm.SidecarPath(output, format)
	if err := asm.WriteLabels(sidecar, labels, format); err != nil {
		return err
	}
	asmLog.Debugf("wrote labels to %s", sidecar)

	// Sidecars in other formats would shadow or contradict the new one.
	for _, other := range asm.LabelFormats {
		if other == format {
			continue
		}
		stale := asm.SidecarPath(output, other)
		if err := os.Remove(stale); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove stale labels: %w", err)
		} else if err == nil {
			asmLog.Noticef("removed stale label file %s", stale)
		}
	}
	return nil
}
