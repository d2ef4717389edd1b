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

import (
	"fmt"

	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/urfave/cli/v2"
)

// ArgumentMode determines which positional arguments a command expects.
type ArgumentMode int

const (
	// NoArgs indicates that the command expects no positional arguments.
	NoArgs ArgumentMode = iota
	// OneToNArgs indicates that the command expects at least one positional argument.
	OneToNArgs
)

// Config carries all run parameters of a command invocation.
type Config struct {
	AppName     string
	CommandName string

	NumSamples     uint64 // number of samples to draw
	StepSize       uint64 // samples between two intermediate estimates; 0 selects the default cap
	RandomSeed     int64  // random seed; a value <= 0 derives the seed from the current time
	Progress       bool   // print a running estimate at every ten percent of the run
	TrackProgress  bool   // log elapsed time and sampling rate at a fixed sample interval
	CsvFile        string // CSV output path
	SaveCsv        bool   // whether results are exported to CsvFile
	Intermediate   bool   // export the intermediate series instead of the final row
	Output         string // secondary file target of the rendered report
	RegisterRun    string // run archive (sqlite3) path; empty disables archiving
	OverwriteRunId string // forced run id when archiving
	DbSource       bool   // input file is a run archive instead of a CSV export
	Port           string // visualization port
	LogLevel       string

	Args []string // validated positional arguments
}

// NewConfig creates a config instance from the given cli context and
// validates the positional arguments against the given mode.
func NewConfig(ctx *cli.Context, mode ArgumentMode) (*Config, error) {
	cfg := createConfigFromFlags(ctx)

	if err := updateConfigArgs(ctx, cfg, mode); err != nil {
		return nil, err
	}

	return cfg, nil
}

// createConfigFromFlags returns Config instance with user specified values
// or the default ones.
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName: ctx.App.HelpName,

		NumSamples:     ctx.Uint64(NumSamplesFlag.Name),
		StepSize:       ctx.Uint64(StepSizeFlag.Name),
		RandomSeed:     ctx.Int64(RandomSeedFlag.Name),
		Progress:       ctx.Bool(ProgressFlag.Name),
		TrackProgress:  ctx.Bool(TrackProgressFlag.Name),
		CsvFile:        ctx.String(CsvFileFlag.Name),
		SaveCsv:        ctx.IsSet(CsvFileFlag.Name),
		Intermediate:   ctx.Bool(IntermediateFlag.Name),
		Output:         ctx.String(OutputFlag.Name),
		RegisterRun:    ctx.String(RegisterRunFlag.Name),
		OverwriteRunId: ctx.String(OverwriteRunIdFlag.Name),
		DbSource:       ctx.Bool(DbSourceFlag.Name),
		Port:           ctx.String(PortFlag.Name),
		LogLevel:       ctx.String(logger.LogLevelFlag.Name),
	}
	if ctx.Command != nil {
		cfg.CommandName = ctx.Command.Name
	}

	// an explicitly supplied path wins; an empty value falls back to the default
	if cfg.CsvFile == "" {
		cfg.CsvFile = DefaultCsvPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = logger.LogLevelFlag.Value
	}
	if cfg.Port == "" {
		cfg.Port = PortFlag.Value
	}
	return cfg
}

// updateConfigArgs checks the positional arguments against the argument mode
// and stores them in the config.
func updateConfigArgs(ctx *cli.Context, cfg *Config, mode ArgumentMode) error {
	switch mode {
	case NoArgs:
		if ctx.Args().Len() > 0 {
			return fmt.Errorf("command %q expects no arguments", cfg.CommandName)
		}
	case OneToNArgs:
		if ctx.Args().Len() < 1 {
			return fmt.Errorf("command %q requires at least 1 argument", cfg.CommandName)
		}
		cfg.Args = ctx.Args().Slice()
	default:
		return fmt.Errorf("unknown argument mode %v", mode)
	}
	return nil
}
