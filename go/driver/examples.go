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

	cliUtils "github.com/Fantom-foundation/svm/go/driver/cli"
	"github.com/Fantom-foundation/svm/go/examples"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

var ExamplesCmd = cli.Command{
	Action:    doExamples,
	Name:      "examples",
	Usage:     "List the bundled example programs or print the source of one of them",
	ArgsUsage: "[<name>]",
	Flags: []cli.Flag{
		cliUtils.ArgumentFlag,
	},
}

func doExamples(context *cli.Context) error {
	out := context.App.Writer
	if context.Args().Len() > 1 {
		return cli.Exit("examples expects at most one argument", 2)
	}
	if name := context.Args().First(); name != "" {
		example, found := examples.GetExample(name)
		if !found {
			return fmt.Errorf("unknown example %q", name)
		}
		_, err := fmt.Fprint(out, example.Source(cliUtils.ArgumentFlag.Fetch(context)))
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Name", "Size", "Description"})
	for _, example := range examples.GetAllExamples() {
		t.AppendRow(table.Row{example.Name, len(example.Code), example.Description})
	}
	t.Render()
	return nil
}
