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
	"time"

	"github.com/0xsoniclabs/montecarlo/export"
	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/0xsoniclabs/montecarlo/montecarlo"
	"github.com/0xsoniclabs/montecarlo/register"
	"github.com/0xsoniclabs/montecarlo/resultdb"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/urfave/cli/v2"
)

// EstimateCommand data structure for the estimate app.
var EstimateCommand = cli.Command{
	Action:    estimateAction,
	Name:      "estimate",
	Usage:     "estimates π by uniform sampling over the unit square",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&utils.NumSamplesFlag,
		&utils.ProgressFlag,
		&utils.CsvFileFlag,
		&utils.IntermediateFlag,
		&utils.StepSizeFlag,
		&utils.RandomSeedFlag,
		&utils.TrackProgressFlag,
		&utils.RegisterRunFlag,
		&utils.OverwriteRunIdFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The estimate command draws -n uniform random points in the square [-1,1]² and
derives π from the fraction that lands inside the inscribed unit circle.

With -s the outcome is exported as CSV; -i replaces the single result row with
the intermediate estimate series. With --register-run the run summary, its
convergence series, and the host environment are archived under a stable run
id in a sqlite3 database.`,
}

// estimateAction implements the estimate command. On top of the single-shot
// estimation it optionally exports the outcome and archives the run.
func estimateAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "PiEstimate")

	engine := montecarlo.NewEngine(cfg.RandomSeed)
	res, err := runEstimate(cfg, engine, log)
	if err != nil {
		return err
	}
	res.LogResults(log)

	// the archive and the -i export need the convergence series; the draws
	// continue the engine's random stream and are independent of the result
	var series []montecarlo.EstimatePoint
	if cfg.Intermediate || cfg.RegisterRun != "" {
		if series, err = engine.IntermediateSeries(cfg.NumSamples, seriesStep(cfg)); err != nil {
			return err
		}
	}

	if cfg.SaveCsv {
		if err := exportRun(cfg, res, series, log); err != nil {
			log.Errorf("Error: Could not save results; %v", err)
		}
	}

	if cfg.RegisterRun != "" {
		if err := archiveRun(cfg, res, series, log); err != nil {
			return err
		}
	}
	return nil
}

// exportRun writes the run outcome to cfg.CsvFile, either the full series
// or the single result row.
func exportRun(cfg *utils.Config, res *montecarlo.Result, series []montecarlo.EstimatePoint, log logger.Logger) error {
	var err error
	if cfg.Intermediate {
		err = export.WriteSeries(cfg.CsvFile, series)
	} else {
		err = export.WriteResult(cfg.CsvFile, res)
	}
	if err != nil {
		return err
	}
	log.Noticef("Results saved to %s", cfg.CsvFile)
	return nil
}

// archiveRun stores the run outcome, its series, and the host environment
// under a stable run id in the sqlite3 archive.
func archiveRun(cfg *utils.Config, res *montecarlo.Result, series []montecarlo.EstimatePoint, log logger.Logger) error {
	id := register.MakeRunIdentity(time.Now().Unix(), cfg)
	runId, err := id.GetId()
	if err != nil {
		return err
	}

	db, err := resultdb.NewRunDB(cfg.RegisterRun)
	if err != nil {
		return err
	}
	record := resultdb.RunRecord{
		RunId:     runId,
		Timestamp: id.Timestamp,
		Result:    res,
		Series:    series,
	}
	if err := registerRun(db, record); err != nil {
		return err
	}

	rm, err := register.MakeRunMetadata(cfg.RegisterRun, id, register.FetchUnixInfo)
	if err != nil {
		return err
	}
	rm.Print()
	rm.Close()

	log.Noticef("Run %s archived to %s", runId, cfg.RegisterRun)
	return nil
}

// registerRun pushes one record through the archive; closing the archive
// forces the buffered record to disk.
func registerRun(db resultdb.RunDB, record resultdb.RunRecord) error {
	if err := db.Add(record); err != nil {
		_ = db.Close()
		return err
	}
	return db.Close()
}
