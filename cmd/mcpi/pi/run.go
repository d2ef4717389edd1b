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
	"github.com/0xsoniclabs/montecarlo/export"
	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/0xsoniclabs/montecarlo/montecarlo"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/urfave/cli/v2"
)

// RunPiEstimation is the default action of the mcpi app. It draws the
// configured number of samples and either logs the resulting estimate or
// exports it to a CSV file.
func RunPiEstimation(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "MonteCarloPi")
	log.Notice("Monte Carlo π Estimator")
	log.Notice("=========================")

	engine := montecarlo.NewEngine(cfg.RandomSeed)
	if cfg.SaveCsv {
		return saveResultsToCsv(cfg, engine, log)
	}

	res, err := runEstimate(cfg, engine, log)
	if err != nil {
		return err
	}
	res.LogResults(log)
	return nil
}

// runEstimate performs the single-shot estimation with the configured
// progress reporting wired into the engine.
func runEstimate(cfg *utils.Config, engine *montecarlo.Engine, log logger.Logger) (*montecarlo.Result, error) {
	if cfg.Progress {
		engine.WithProgress(func(percent float64, estimate float64) {
			log.Infof("Progress: %.1f%% - Current π estimate: %.6f", percent, estimate)
		})
	}
	if cfg.TrackProgress {
		engine.WithTracker(utils.NewProgressTracker(int(cfg.NumSamples), log))
	}
	return engine.Estimate(cfg.NumSamples)
}

// seriesStep applies the point-cap default when no explicit step is configured.
func seriesStep(cfg *utils.Config) uint64 {
	if cfg.StepSize != 0 {
		return cfg.StepSize
	}
	return export.SeriesStep(cfg.NumSamples)
}

// saveResultsToCsv draws the configured number of samples and exports the
// outcome to cfg.CsvFile. A failed export is reported on the error stream
// but does not fail the run.
func saveResultsToCsv(cfg *utils.Config, engine *montecarlo.Engine, log logger.Logger) error {
	if cfg.Intermediate {
		if cfg.TrackProgress {
			engine.WithTracker(utils.NewProgressTracker(int(cfg.NumSamples), log))
		}
		series, err := engine.IntermediateSeries(cfg.NumSamples, seriesStep(cfg))
		if err != nil {
			return err
		}
		if err := export.WriteSeries(cfg.CsvFile, series); err != nil {
			log.Errorf("Error: Could not save results; %v", err)
			return nil
		}
		log.Noticef("Results saved to %s", cfg.CsvFile)
		return nil
	}

	res, err := runEstimate(cfg, engine, log)
	if err != nil {
		return err
	}
	res.LogResults(log)
	if err := export.WriteResult(cfg.CsvFile, res); err != nil {
		log.Errorf("Error: Could not save results; %v", err)
		return nil
	}
	log.Noticef("Results saved to %s", cfg.CsvFile)
	return nil
}
