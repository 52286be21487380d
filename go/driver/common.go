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
	"github.com/Fantom-foundation/svm/go/config"
	cliUtils "github.com/Fantom-foundation/svm/go/driver/cli"
	"github.com/urfave/cli/v2"
)

// loadConfig reads the configuration file selected by the global config
// flag, falling back to svm.toml in the working directory and then to the
// defaults.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	return config.LoadOrDefault(cliUtils.ConfigFlag.Fetch(ctx))
}
