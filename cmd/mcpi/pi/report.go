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
	"github.com/0xsoniclabs/montecarlo/report"
	"github.com/0xsoniclabs/montecarlo/resultdb"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/urfave/cli/v2"
)

// ReportCommand data structure for the report app.
var ReportCommand = cli.Command{
	Action:    reportAction,
	Name:      "report",
	Usage:     "renders the statistical summary of an exported run",
	ArgsUsage: "<csv-file>",
	Flags: []cli.Flag{
		&utils.DbSourceFlag,
		&utils.OutputFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The report command requires one argument:
<csv-file>

<csv-file> is a series export produced by the export command or by -s -i.
With --db the argument is read as a run archive instead and the report covers
the most recently registered run.

The report tabulates the error statistics of the convergence series and the
fitted convergence order against the theoretical 1/√n law.`,
}

// reportAction implements the report command. The summary table goes to the
// console and, with --output, additionally to a file.
func reportAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.OneToNArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "PiReport")

	series, err := loadSeries(cfg, log)
	if err != nil {
		return err
	}

	summary, err := report.Analyze(series)
	if err != nil {
		return err
	}

	ps := utils.NewPrinters().AddPrinterToConsole(false, summary.String)
	if cfg.Output != "" {
		ps.AddPrinterToFile(cfg.Output, summary.String)
	}
	defer ps.Close()
	ps.Print()

	if cfg.Output != "" {
		log.Noticef("Report written to %s", cfg.Output)
	}
	return nil
}

// loadSeries reads the estimate series a command operates on, either from a
// CSV export or from the most recent run in an archive database.
func loadSeries(cfg *utils.Config, log logger.Logger) ([]montecarlo.EstimatePoint, error) {
	inFile := cfg.Args[0]
	if !cfg.DbSource {
		return export.ReadSeries(inFile)
	}

	runs, err := resultdb.ReadRuns(inFile)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("archive %v holds no runs", inFile)
	}
	latest := runs[len(runs)-1]
	series, err := resultdb.ReadSeriesPoints(inFile, latest.RunId)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("run %v holds no estimate series", latest.RunId)
	}
	log.Infof("Loaded run %v from %v", latest.RunId, inFile)
	return series, nil
}
