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
	"github.com/Fantom-foundation/svm/go/asm"
	"github.com/urfave/cli/v2"
)

type configFlagType struct {
	cli.StringFlag
}

var ConfigFlag = &configFlagType{
	cli.StringFlag{
		Name:      "config",
		Aliases:   []string{"c"},
		Usage:     "read settings from the given TOML file instead of ./svm.toml",
		TakesFile: true,
	},
}

func (f *configFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type verboseFlagType struct {
	cli.IntFlag
}

var VerboseFlag = &verboseFlagType{
	cli.IntFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log verbosity; 0 logs notices, 1 adds infos, 2 adds debug messages",
	},
}

func (f *verboseFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.Name)
}

type labelsFormatFlagType struct {
	cli.StringFlag
}

var LabelsFormatFlag = &labelsFormatFlagType{
	cli.StringFlag{
		Name:  "labels-format",
		Usage: "encoding of the label sidecar file, json or cbor",
	},
}

// Fetch returns the format selected on the command line, or the given
// fallback if the flag is not set.
func (f *labelsFormatFlagType) Fetch(context *cli.Context, fallback string) (asm.LabelFormat, error) {
	name := fallback
	if context.IsSet(f.Name) {
		name = context.String(f.Name)
	}
	return asm.ParseLabelFormat(name)
}

type listingFlagType struct {
	cli.BoolFlag
}

var ListingFlag = &listingFlagType{
	cli.BoolFlag{
		Name:  "listing",
		Usage: "prefix every instruction with its offset and encoding",
	},
}

func (f *listingFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type maxStepsFlagType struct {
	cli.IntFlag
}

var MaxStepsFlag = &maxStepsFlagType{
	cli.IntFlag{
		Name:  "max-steps",
		Usage: "stop the program after the given number of instructions",
	},
}

// Fetch returns the step limit selected on the command line, or the given
// fallback if the flag is not set.
func (f *maxStepsFlagType) Fetch(context *cli.Context, fallback int) int {
	if context.IsSet(f.Name) {
		return context.Int(f.Name)
	}
	return fallback
}

type memoryFlagType struct {
	cli.IntFlag
}

var MemoryFlag = &memoryFlagType{
	cli.IntFlag{
		Name:  "memory",
		Usage: "number of data memory cells",
	},
}

// Fetch returns the memory size selected on the command line, or the given
// fallback if the flag is not set.
func (f *memoryFlagType) Fetch(context *cli.Context, fallback int) int {
	if context.IsSet(f.Name) {
		return context.Int(f.Name)
	}
	return fallback
}

type interpreterFlagType struct {
	cli.StringFlag
}

var InterpreterFlag = &interpreterFlagType{
	cli.StringFlag{
		Name:  "interpreter",
		Usage: "name of the registered interpreter to use",
	},
}

func (f *interpreterFlagType) Fetch(context *cli.Context, fallback string) string {
	if context.IsSet(f.Name) {
		return context.String(f.Name)
	}
	return fallback
}

type traceFlagType struct {
	cli.BoolFlag
}

var TraceFlag = &traceFlagType{
	cli.BoolFlag{
		Name:  "trace",
		Usage: "print every executed instruction to stderr",
	},
}

func (f *traceFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type statsFlagType struct {
	cli.BoolFlag
}

var StatsFlag = &statsFlagType{
	cli.BoolFlag{
		Name:  "stats",
		Usage: "print instruction statistics after the run",
	},
}

func (f *statsFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type argumentFlagType struct {
	cli.IntFlag
}

var ArgumentFlag = &argumentFlagType{
	cli.IntFlag{
		Name:  "argument",
		Usage: "argument pushed by the printed example program",
		Value: 10,
	},
}

func (f *argumentFlagType) Fetch(context *cli.Context) int32 {
	return int32(context.Int(f.Name))
}

type cpuProfileType struct {
	cli.StringFlag
}

var CpuProfileFlag = &cpuProfileType{
	cli.StringFlag{
		Name:      "cpuprofile",
		Usage:     "store CPU profile in the provided filename",
		TakesFile: true,
	},
}

func (f *cpuProfileType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}
