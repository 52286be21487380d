// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/urfave/cli/v2"
)

var commonFlags = []cli.Flag{
	CpuProfileFlag,
}

// AddCommonFlags adds the flags shared by all commands to the given command
// and wraps its action to honor them.
func AddCommonFlags(command cli.Command) cli.Command {
	command.Flags = append(command.Flags, commonFlags...)

	action := command.Action
	command.Action = func(ctx *cli.Context) (err error) {

		if cpuprofileFilename := CpuProfileFlag.Fetch(ctx); cpuprofileFilename != "" {
			f, err := os.Create(cpuprofileFilename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return action(ctx)
	}
	return command
}

// ExpectArgs returns the positional arguments of the command, failing with
// exit status 2 if their number does not match.
func ExpectArgs(ctx *cli.Context, names ...string) ([]string, error) {
	if got := ctx.Args().Len(); got != len(names) {
		return nil, cli.Exit(fmt.Sprintf("%s expects %d arguments %v, got %d", ctx.Command.Name, len(names), names, got), 2)
	}
	return ctx.Args().Slice(), nil
}
