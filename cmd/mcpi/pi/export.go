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

package pi

import (
	"fmt"

	"github.com/0xsoniclabs/montecarlo/export"
	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/0xsoniclabs/montecarlo/montecarlo"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/urfave/cli/v2"
)

// ExportCommand data structure for the export app.
var ExportCommand = cli.Command{
	Action:    exportAction,
	Name:      "export",
	Usage:     "runs an estimation and exports its convergence series as CSV",
	ArgsUsage: "<csv-file>",
	Flags: []cli.Flag{
		&utils.NumSamplesFlag,
		&utils.StepSizeFlag,
		&utils.RandomSeedFlag,
		&utils.TrackProgressFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The export command requires one argument:
<csv-file>

<csv-file> is the target of the intermediate estimate series. A path ending
in .gz is gzip-compressed. Without --step-size the series is capped at 1000
points.`,
}

// exportAction implements the export command. Unlike the -s shortcut of the
// estimate command a failing export fails the run.
func exportAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.OneToNArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "PiExport")

	engine := montecarlo.NewEngine(cfg.RandomSeed)
	if cfg.TrackProgress {
		engine.WithTracker(utils.NewProgressTracker(int(cfg.NumSamples), log))
	}
	series, err := engine.IntermediateSeries(cfg.NumSamples, seriesStep(cfg))
	if err != nil {
		return err
	}

	outFile := cfg.Args[0]
	if err := export.WriteSeries(outFile, series); err != nil {
		return fmt.Errorf("failed to export series; %v", err)
	}
	log.Noticef("Exported %d estimate points to %s", len(series), outFile)
	return nil
}
