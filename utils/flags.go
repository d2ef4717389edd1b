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

package utils

import "github.com/urfave/cli/v2"

// DefaultCsvPath is where exported results end up when -s is given
// without an explicit path.
const DefaultCsvPath = "monte_carlo_pi_results.csv"

var (
	NumSamplesFlag = cli.Uint64Flag{
		Name:    "n",
		Aliases: []string{"num-samples"},
		Usage:   "number of samples to draw",
		Value:   1_000_000,
	}
	ProgressFlag = cli.BoolFlag{
		Name:    "p",
		Aliases: []string{"progress"},
		Usage:   "print a running estimate at every ten percent of the run",
	}
	CsvFileFlag = cli.StringFlag{
		Name:    "s",
		Aliases: []string{"save-csv"},
		Usage:   "save results to `FILE` in CSV format; a path ending in .gz is gzip-compressed",
		Value:   DefaultCsvPath,
	}
	IntermediateFlag = cli.BoolFlag{
		Name:    "i",
		Aliases: []string{"intermediate"},
		Usage:   "include the intermediate estimate series in the CSV export",
	}
	RandomSeedFlag = cli.Int64Flag{
		Name:  "random-seed",
		Usage: "set the seed of the random number generator; a value less than one derives the seed from the current time",
		Value: -1,
	}
	StepSizeFlag = cli.Uint64Flag{
		Name:  "step-size",
		Usage: "number of samples between two intermediate estimates; zero caps the series at 1000 points",
	}
	TrackProgressFlag = cli.BoolFlag{
		Name:  "track-progress",
		Usage: "log elapsed time and sampling rate at a fixed sample interval",
	}
	OutputFlag = cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write the rendered report to `FILE` in addition to the console",
	}
	RegisterRunFlag = cli.StringFlag{
		Name:  "register-run",
		Usage: "archive run results and metadata in the sqlite3 database at `PATH`",
	}
	OverwriteRunIdFlag = cli.StringFlag{
		Name:  "overwrite-run-id",
		Usage: "use this run id instead of the computed one when archiving a run",
	}
	DbSourceFlag = cli.BoolFlag{
		Name:  "db",
		Usage: "treat the input file as a run archive (sqlite3) instead of a CSV export",
	}
	PortFlag = cli.StringFlag{
		Name:  "port",
		Usage: "enable visualization on `PORT`",
		Value: "8080",
	}
)
