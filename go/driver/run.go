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
	"time"

	cliUtils "github.com/Fantom-foundation/svm/go/driver/cli"
	"github.com/Fantom-foundation/svm/go/svm"
	"github.com/dsnet/golib/unitconv"
	"github.com/tliron/commonlog"
	"github.com/urfave/cli/v2"
)

var RunCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Execute bytecode and write the final stack",
	ArgsUsage: "<input> <output>",
	Flags: []cli.Flag{
		cliUtils.MaxStepsFlag,
		cliUtils.MemoryFlag,
		cliUtils.InterpreterFlag,
		cliUtils.TraceFlag,
		cliUtils.StatsFlag,
	},
})

var runLog = commonlog.GetLogger("svm.run")

func doRun(context *cli.Context) error {
	args, err := cliUtils.ExpectArgs(context, "input", "output")
	if err != nil {
		return err
	}
	input, output := args[0], args[1]

	config, err := loadConfig(context)
	if err != nil {
		return err
	}

	vmConfig := config.Engine.VmConfig()
	if cliUtils.TraceFlag.Fetch(context) {
		vmConfig.TraceWriter = context.App.ErrWriter
	}
	vmConfig.WithStatistics = cliUtils.StatsFlag.Fetch(context)
	name := cliUtils.InterpreterFlag.Fetch(context, config.Engine.Interpreter)
	interpreter, err := svm.NewInterpreter(name, vmConfig)
	if err != nil {
		return err
	}

	code, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read bytecode: %w", err)
	}
	params := svm.Parameters{
		Code:       code,
		MemorySize: cliUtils.MemoryFlag.Fetch(context, config.Engine.MemorySize),
		MaxSteps:   cliUtils.MaxStepsFlag.Fetch(context, config.Engine.MaxSteps),
	}
	runLog.Infof("running %s on %s: %d bytes, memory %d, max steps %d", input, name, len(code), params.MemorySize, params.MaxSteps)

	start := time.Now()
	res, err := interpreter.Run(params)
	duration := time.Since(start)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	if duration > 0 {
		rate := float64(res.Steps) / duration.Seconds()
		runLog.Infof("executed %d steps in %v, ~%s steps per second", res.Steps, duration, unitconv.FormatPrefix(rate, unitconv.SI, 0))
	}
	if res.Outcome != svm.Halted {
		runLog.Noticef("program did not halt: %v", res.Outcome)
	}

	if err := os.WriteFile(output, []byte(formatResult(res)), 0644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if profiler, ok := interpreter.(svm.ProfilingInterpreter); ok && vmConfig.WithStatistics {
		fmt.Fprint(context.App.Writer, profiler.Profile())
	}
	return nil
}

// formatResult renders the final stack, bottom first, followed by the
// reason the run stopped.
func formatResult(res svm.Result) string {
	values := make([]string, 0, len(res.Stack))
	for _, value := range res.Stack {
		values = append(values, fmt.Sprint(value))
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "Final stack: [%s]\n", strings.Join(values, ", "))
	fmt.Fprintf(&builder, "Outcome: %v\n", res.Outcome)
	fmt.Fprintf(&builder, "Steps: %d\n", res.Steps)
	return builder.String()
}
