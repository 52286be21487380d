// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package config handles the svm.toml configuration file read by the driver.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Fantom-foundation/svm/go/asm"
	"github.com/Fantom-foundation/svm/go/interpreter/bcvm"
	"github.com/Fantom-foundation/svm/go/svm"
)

// FileName is the name of the configuration file picked up from the working
// directory if no explicit file is given.
const FileName = "svm.toml"

// Config represents an svm.toml configuration.
type Config struct {
	Engine Engine `toml:"engine"`
	Labels Labels `toml:"labels"`
}

// Engine configures the interpreter used by the run command.
type Engine struct {
	// Interpreter is the registered name of the interpreter to use.
	Interpreter  string `toml:"interpreter"`
	MemorySize   int    `toml:"memory-size"`
	MaxSteps     int    `toml:"max-steps"`
	MaxStack     int    `toml:"max-stack"`
	MaxCallDepth int    `toml:"max-call-depth"`
	// CacheSize is the decode cache size in bytes, see bcvm.DecoderConfig.
	CacheSize int `toml:"cache-size"`
}

// Labels configures the label sidecar files written by the asm command.
type Labels struct {
	Format string `toml:"format"`
}

// Default returns the configuration used if no file is present.
func Default() Config {
	return Config{
		Engine: Engine{
			Interpreter: "bcvm",
			MemorySize:  bcvm.DefaultMemorySize,
			MaxSteps:    bcvm.DefaultMaxSteps,
		},
		Labels: Labels{
			Format: string(asm.LabelsJSON),
		},
	}
}

// Load parses the configuration file at the given path. Fields missing in the
// file keep their default values. Unknown keys are reported as errors.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return Parse(path, string(data))
}

// Parse parses the content of a configuration file. The name is only used in
// error messages.
func Parse(name, content string) (Config, error) {
	res := Default()
	md, err := toml.Decode(content, &res)
	if err != nil {
		return Config{}, fmt.Errorf("parse error in %s: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Config{}, fmt.Errorf("unknown keys in %s: %s", name, strings.Join(keys, ", "))
	}
	if err := res.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration in %s: %w", name, err)
	}
	return res, nil
}

// LoadOrDefault loads the given file. An empty path selects FileName in the
// working directory, which may be absent, in which case the defaults are
// returned.
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	res, err := Load(FileName)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return res, err
}

// Validate checks that the configuration names known components and
// non-negative limits.
func (c Config) Validate() error {
	e := c.Engine
	if svm.GetInterpreterFactory(e.Interpreter) == nil {
		return fmt.Errorf("unknown interpreter %q, available are %v", e.Interpreter, svm.GetAllRegisteredInterpreterNames())
	}
	if e.MemorySize < 0 || e.MaxSteps < 0 || e.MaxStack < 0 || e.MaxCallDepth < 0 {
		return fmt.Errorf("engine limits must not be negative")
	}
	if _, err := asm.ParseLabelFormat(c.Labels.Format); err != nil {
		return err
	}
	return nil
}

// VmConfig returns the interpreter configuration described by the engine
// section.
func (e Engine) VmConfig() bcvm.Config {
	return bcvm.Config{
		DecoderConfig: bcvm.DecoderConfig{
			CacheSize: e.CacheSize,
		},
		MemorySize:   e.MemorySize,
		MaxSteps:     e.MaxSteps,
		MaxStackSize: e.MaxStack,
		MaxCallDepth: e.MaxCallDepth,
	}
}

// NewInterpreter creates the configured interpreter.
func (e Engine) NewInterpreter() (svm.Interpreter, error) {
	return svm.NewInterpreter(e.Interpreter, e.VmConfig())
}
