// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package bcvm provides the bytecode VM, an interpreter for programs encoded
// in the instruction set defined by package isa.
package bcvm

import (
	"fmt"
	"io"
	"os"

	"github.com/Fantom-foundation/svm/go/svm"
)

const (
	// DefaultMemorySize is the number of data memory cells used if neither
	// the configuration nor the run parameters define a size.
	DefaultMemorySize = 64
	// DefaultMaxSteps is the step limit used if neither the configuration nor
	// the run parameters define a limit.
	DefaultMaxSteps = 100_000
)

// Registers the bytecode VM as a possible interpreter implementation.
func init() {

	configs := map[string]Config{
		// The default configuration to be used for production purposes.
		"bcvm": {},

		// Traces every executed instruction to stderr.
		"bcvm-logging": {
			TraceWriter: os.Stderr,
		},

		// Collects instruction statistics, see Profile.
		"bcvm-stats": {
			WithStatistics: true,
		},

		// Decodes programs on every run.
		"bcvm-no-cache": {
			DecoderConfig: DecoderConfig{
				CacheSize: -1,
			},
		},
	}

	for name, config := range configs {
		config := config
		err := svm.RegisterInterpreterFactory(name, func(custom any) (svm.Interpreter, error) {
			effective, err := mergeConfig(config, custom)
			if err != nil {
				return nil, err
			}
			vm, err := NewVm(effective)
			if err != nil {
				return nil, err
			}
			return vm, nil
		})
		if err != nil {
			panic(err)
		}
	}
}

// mergeConfig combines the features of a registered configuration with a
// configuration provided by the client. A nil client configuration selects
// the registered configuration as is.
func mergeConfig(registered Config, custom any) (Config, error) {
	if custom == nil {
		return registered, nil
	}
	res, ok := custom.(Config)
	if !ok {
		return Config{}, fmt.Errorf("unsupported configuration type %T", custom)
	}
	if res.TraceWriter == nil {
		res.TraceWriter = registered.TraceWriter
	}
	res.WithStatistics = res.WithStatistics || registered.WithStatistics
	if registered.CacheSize < 0 {
		res.CacheSize = registered.CacheSize
	}
	return res, nil
}

// Config contains the configuration options of the bytecode VM.
type Config struct {
	DecoderConfig
	// MemorySize is the default number of data memory cells. If zero,
	// DefaultMemorySize is used.
	MemorySize int
	// MaxSteps is the default step limit. If zero, DefaultMaxSteps is used.
	MaxSteps int
	// MaxStackSize bounds the number of values on the stack. If zero, the
	// stack is unbounded.
	MaxStackSize int
	// MaxCallDepth bounds the number of active calls. If zero, the call depth
	// is unbounded.
	MaxCallDepth int
	// TraceWriter, if not nil, receives one line for every executed
	// instruction.
	TraceWriter io.Writer
	// WithStatistics enables the collection of instruction statistics.
	WithStatistics bool
	runner         runner
}

type bcvm struct {
	config  Config
	decoder *Decoder
}

func NewVm(config Config) (*bcvm, error) {
	if config.MemorySize < 0 || config.MaxSteps < 0 || config.MaxStackSize < 0 || config.MaxCallDepth < 0 {
		return nil, fmt.Errorf("invalid configuration: negative limits are not supported")
	}
	if config.MemorySize == 0 {
		config.MemorySize = DefaultMemorySize
	}
	if config.MaxSteps == 0 {
		config.MaxSteps = DefaultMaxSteps
	}
	if config.runner == nil {
		if config.TraceWriter != nil && config.WithStatistics {
			return nil, fmt.Errorf("invalid configuration: tracing and statistics can not be combined")
		}
		if config.TraceWriter != nil {
			config.runner = newLogger(config.TraceWriter)
		} else if config.WithStatistics {
			config.runner = &statisticRunner{stats: newStatistics()}
		}
	}
	decoder, err := NewDecoder(config.DecoderConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %v", err)
	}
	return &bcvm{config: config, decoder: decoder}, nil
}

func (v *bcvm) Run(params svm.Parameters) (svm.Result, error) {
	decoded := v.decoder.Decode(
		params.Code,
		params.CodeHash,
	)

	config := interpreterConfig{
		runner:       v.config.runner,
		memorySize:   v.config.MemorySize,
		maxSteps:     v.config.MaxSteps,
		maxStackSize: v.config.MaxStackSize,
		maxCallDepth: v.config.MaxCallDepth,
	}

	return run(config, params, decoded)
}

// Profile returns the instruction statistics collected so far. It is empty
// unless statistics are enabled.
func (v *bcvm) Profile() string {
	if statsRunner, ok := v.config.runner.(*statisticRunner); ok {
		return statsRunner.getSummary()
	}
	return ""
}

func (v *bcvm) ResetProfile() {
	if statsRunner, ok := v.config.runner.(*statisticRunner); ok {
		statsRunner.reset()
	}
}

var defaultVm = func() *bcvm {
	vm, err := NewVm(Config{DecoderConfig: DecoderConfig{CacheSize: -1}})
	if err != nil {
		panic(err)
	}
	return vm
}()

// Run executes the given code using a data memory of the given size and stops
// after at most maxSteps instructions. Non-positive arguments select the
// defaults DefaultMemorySize and DefaultMaxSteps.
func Run(code svm.Code, memorySize, maxSteps int) (svm.Result, error) {
	return defaultVm.Run(svm.Parameters{
		Code:       code,
		MemorySize: memorySize,
		MaxSteps:   maxSteps,
	})
}
