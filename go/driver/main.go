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
	"os"

	cliUtils "github.com/Fantom-foundation/svm/go/driver/cli"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/kutil/util"
	"github.com/urfave/cli/v2"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	// flushes buffered log output
	util.Exit(exitCode(err))
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "svm",
		Usage:     "Stack VM assembler, disassembler and runner",
		ArgsUsage: "<asm|dis|run|examples> <input> <output>",
		Copyright: "(c) 2024 Fantom Foundation",
		Flags: []cli.Flag{
			cliUtils.ConfigFlag,
			cliUtils.VerboseFlag,
		},
		Before: func(ctx *cli.Context) error {
			commonlog.Configure(cliUtils.VerboseFlag.Fetch(ctx), nil)
			return nil
		},
		Action: func(ctx *cli.Context) error {
			if ctx.Args().Len() == 0 {
				return cli.Exit("missing mode, use one of asm, dis, run or examples", 2)
			}
			return cli.Exit(fmt.Sprintf("invalid mode %q, use one of asm, dis, run or examples", ctx.Args().First()), 2)
		},
		Commands: []*cli.Command{
			&AsmCmd,
			&DisCmd,
			&RunCmd,
			&ExamplesCmd,
		},
		// errors are reported by main
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// exitCode maps the result of a run of the application to the process exit
// status: 0 on success, the code of cli.Exit errors, 1 for any other failure.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
