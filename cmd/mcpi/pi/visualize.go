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
	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/0xsoniclabs/montecarlo/visualizer"
	"github.com/urfave/cli/v2"
)

// VisualizeCommand data structure for the visualize app.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "serves interactive convergence charts of an exported run",
	ArgsUsage: "<csv-file>",
	Flags: []cli.Flag{
		&utils.DbSourceFlag,
		&utils.PortFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The visualize command requires one argument:
<csv-file>

<csv-file> is a series export produced by the export command or by -s -i.
With --db the argument is read as a run archive instead and the charts cover
the most recently registered run.

The command starts a web server on --port rendering the estimate convergence,
the error scaling, and the sampling efficiency of the run.`,
}

// visualizeAction implements the visualize command. The call blocks serving
// the charts until the process is terminated.
func visualizeAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.OneToNArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "PiVisualize")

	series, err := loadSeries(cfg, log)
	if err != nil {
		return err
	}

	log.Noticef("Open http://localhost:%v in your browser", cfg.Port)
	return visualizer.FireUpWeb(series, cfg.Port)
}
