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

package resultdb

import (
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/0xsoniclabs/montecarlo/montecarlo"
)

// RunRow mirrors one row of the runs table.
type RunRow struct {
	RunId         string  `db:"runId"`
	Timestamp     int64   `db:"timestamp"`
	Seed          int64   `db:"seed"`
	NumSamples    uint64  `db:"numSamples"`
	InsideCount   uint64  `db:"insideCount"`
	Estimate      float64 `db:"estimate"`
	AbsoluteError float64 `db:"absoluteError"`
	RelativeError float64 `db:"relativeError"`
	DurationMs    int64   `db:"durationMs"`
}

type seriesRow struct {
	SampleCount uint64  `db:"sampleCount"`
	PiEstimate  float64 `db:"piEstimate"`
}

// ReadRuns returns all archived runs in registration order.
func ReadRuns(dbFile string) (runs []RunRow, err error) {
	db, err := openQueryDB(dbFile)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	if err = db.Select(&runs, "SELECT * FROM runs ORDER BY timestamp, runId"); err != nil {
		return nil, fmt.Errorf("failed to read runs from %v; %v", dbFile, err)
	}
	return runs, nil
}

// ReadSeriesPoints returns the archived convergence series of one run.
func ReadSeriesPoints(dbFile, runId string) (series []montecarlo.EstimatePoint, err error) {
	db, err := openQueryDB(dbFile)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	var rows []seriesRow
	err = db.Select(&rows, "SELECT sampleCount, piEstimate FROM series WHERE runId = ? ORDER BY sampleCount", runId)
	if err != nil {
		return nil, fmt.Errorf("failed to read series of run %v; %v", runId, err)
	}
	for _, row := range rows {
		series = append(series, montecarlo.EstimatePoint{SampleCount: row.SampleCount, PiEstimate: row.PiEstimate})
	}
	return series, nil
}

// openQueryDB opens an existing archive file for reading. The sqlite3 driver
// creates missing files on open, hence the explicit stat.
func openQueryDB(dbFile string) (*sqlx.DB, error) {
	if _, err := os.Stat(dbFile); err != nil {
		return nil, fmt.Errorf("could not stat file: %s, does it exist? %w", dbFile, err)
	}
	db, err := sqlx.Connect("sqlite3", dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %v; %v", dbFile, err)
	}
	return db, nil
}
