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
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/montecarlo/export"
	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// newRunApp builds an app around the default action the way main.go does.
func newRunApp() *cli.App {
	app := cli.NewApp()
	app.Action = RunPiEstimation
	app.Flags = []cli.Flag{
		&utils.NumSamplesFlag,
		&utils.ProgressFlag,
		&utils.CsvFileFlag,
		&utils.IntermediateFlag,
		&utils.StepSizeFlag,
		&utils.RandomSeedFlag,
		&utils.TrackProgressFlag,
		&logger.LogLevelFlag,
	}
	return app
}

func TestCmd_RunPiEstimation(t *testing.T) {
	// given
	app := newRunApp()
	args := utils.NewArgs("test").
		Flag(utils.NumSamplesFlag.Name, 1000).
		Flag(utils.RandomSeedFlag.Name, 42).
		Flag(utils.ProgressFlag.Name, true).
		Build()

	// when
	err := app.Run(args)

	// then
	assert.NoError(t, err)
}

func TestCmd_RunPiEstimationWritesCsv(t *testing.T) {
	// given
	outputFile := filepath.Join(t.TempDir(), "results.csv")
	app := newRunApp()
	args := utils.NewArgs("test").
		Flag(utils.NumSamplesFlag.Name, 1000).
		Flag(utils.RandomSeedFlag.Name, 42).
		Flag(utils.CsvFileFlag.Name, outputFile).
		Build()

	// when
	err := app.Run(args)

	// then
	assert.NoError(t, err)
	series, err := export.ReadSeries(outputFile)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, uint64(1000), series[0].SampleCount)
	assert.GreaterOrEqual(t, series[0].PiEstimate, 0.0)
	assert.LessOrEqual(t, series[0].PiEstimate, 4.0)
}

func TestCmd_RunPiEstimationWritesIntermediateCsv(t *testing.T) {
	// given
	outputFile := filepath.Join(t.TempDir(), "series.csv")
	app := newRunApp()
	args := utils.NewArgs("test").
		Flag(utils.NumSamplesFlag.Name, 1000).
		Flag(utils.RandomSeedFlag.Name, 42).
		Flag(utils.CsvFileFlag.Name, outputFile).
		Flag(utils.IntermediateFlag.Name, true).
		Build()

	// when
	err := app.Run(args)

	// then
	assert.NoError(t, err)
	series, err := export.ReadSeries(outputFile)
	require.NoError(t, err)
	// the default step caps the series at 1000 points, so 1000 samples
	// produce one point per sample
	assert.Len(t, series, 1000)
}

func TestCmd_RunPiEstimationToleratesBadCsvPath(t *testing.T) {
	// given
	outputFile := filepath.Join(t.TempDir(), "no-such-dir", "results.csv")
	app := newRunApp()
	args := utils.NewArgs("test").
		Flag(utils.NumSamplesFlag.Name, 100).
		Flag(utils.RandomSeedFlag.Name, 42).
		Flag(utils.CsvFileFlag.Name, outputFile).
		Build()

	// when
	err := app.Run(args)

	// then a failed export is reported but does not fail the run
	assert.NoError(t, err)
	_, err = os.Stat(outputFile)
	assert.Error(t, err)
}

func TestCmd_RunPiEstimationRejectsArguments(t *testing.T) {
	// given
	app := newRunApp()
	args := utils.NewArgs("test").Arg("unexpected").Build()

	// when
	err := app.Run(args)

	// then
	assert.Error(t, err)
}
