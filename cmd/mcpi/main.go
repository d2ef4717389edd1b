// Copyright 2025 Sonic Labs
// This file is part of Montecarlo, a Monte Carlo experiment suite for Sonic
//
// Montecarlo is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Montecarlo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Montecarlo. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"log"
	"os"

	"github.com/0xsoniclabs/montecarlo/cmd/mcpi/pi"
	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/urfave/cli/v2"
)

// MontecarloApp data structure
var MontecarloApp = cli.App{
	Action:    pi.RunPiEstimation,
	Name:      "Monte Carlo π Estimator",
	HelpName:  "mcpi",
	Usage:     "estimates π by uniform random sampling",
	Copyright: "(c) 2025 Sonic Labs",
	Flags: []cli.Flag{
		&utils.NumSamplesFlag,
		&utils.ProgressFlag,
		&utils.CsvFileFlag,
		&utils.IntermediateFlag,
		&utils.StepSizeFlag,
		&utils.RandomSeedFlag,
		&utils.TrackProgressFlag,
		&logger.LogLevelFlag,
	},
	Commands: []*cli.Command{
		&pi.EstimateCommand,
		&pi.ExportCommand,
		&pi.ReportCommand,
		&pi.VisualizeCommand,
	},
}

// main implements the mcpi estimation functions
func main() {
	if err := MontecarloApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
