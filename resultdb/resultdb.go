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

// Package resultdb archives estimation runs and their convergence series in
// a sqlite3 file so experiments stay comparable across invocations.
package resultdb

import (
	"database/sql"
	"fmt"

	"github.com/0xsoniclabs/montecarlo/montecarlo"
	// Your main or test packages require this import so the sql package is properly initialized.
	_ "github.com/mattn/go-sqlite3"
)

const (
	// bufferSize of the in-memory buffer for storing run records
	bufferSize = 100

	// SQL statement for inserting the summary of a finished run
	insertRunSQL = `
INSERT INTO runs (
	runId, timestamp, seed, numSamples, insideCount, estimate, absoluteError, relativeError, durationMs
) VALUES (
	?, ?, ?, ?, ?, ?, ?, ?, ?
)
`
	// SQL statement for inserting one point of a convergence series
	insertPointSQL = `
INSERT INTO series (
	runId, sampleCount, piEstimate
) VALUES (
	?, ?, ?
)
`

	// SQL statement for creating the archive tables
	createSQL = `
PRAGMA journal_mode = MEMORY;
CREATE TABLE IF NOT EXISTS runs (
	runId TEXT,
	timestamp INTEGER,
	seed INTEGER,
	numSamples INTEGER,
	insideCount INTEGER,
	estimate FLOAT,
	absoluteError FLOAT,
	relativeError FLOAT,
	durationMs INTEGER
);
CREATE TABLE IF NOT EXISTS series (
	runId TEXT,
	sampleCount INTEGER,
	piEstimate FLOAT
);
`
)

//go:generate mockgen -source resultdb.go -destination resultdb_mock.go -package resultdb
type RunDB interface {
	Close() error
	Add(record RunRecord) error
	Flush() error
	DeleteByRunId(runId string) (int64, error)
}

// RunRecord couples one finished run with its convergence series.
type RunRecord struct {
	RunId     string
	Timestamp int64
	Result    *montecarlo.Result
	Series    []montecarlo.EstimatePoint
}

// runDB is an archive database for estimation runs.
type runDB struct {
	sql       *sql.DB     // Sqlite3 database
	runStmt   *sql.Stmt   // Prepared insert statement for a run summary
	pointStmt *sql.Stmt   // Prepared insert statement for a series point
	buffer    []RunRecord // record buffer
}

// NewRunDB constructs a new run archive backed by the given sqlite3 file.
func NewRunDB(dbFile string) (RunDB, error) {
	return newRunDB(dbFile)
}

func newRunDB(dbFile string) (*runDB, error) {
	// open SQLITE3 DB
	sqlDB, err := sql.Open("sqlite3", dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %v; %v", dbFile, err)
	}
	// create archive schema if not exists
	if _, err = sqlDB.Exec(createSQL); err != nil {
		return nil, fmt.Errorf("sqlDB.Exec, err: %q", err)
	}
	// prepare INSERT statements for subsequent use
	runStmt, err := sqlDB.Prepare(insertRunSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare a SQL statement for run summaries; %v", err)
	}
	pointStmt, err := sqlDB.Prepare(insertPointSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare a SQL statement for series points; %v", err)
	}

	return &runDB{
		sql:       sqlDB,
		runStmt:   runStmt,
		pointStmt: pointStmt,
		buffer:    make([]RunRecord, 0, bufferSize),
	}, nil
}

// Close flushes the record buffer and closes the archive database.
func (db *runDB) Close() error {
	defer func() {
		db.pointStmt.Close()
		db.runStmt.Close()
		db.sql.Close()
	}()
	if err := db.Flush(); err != nil {
		return err
	}
	return nil
}

// Add a run record to the archive database.
func (db *runDB) Add(record RunRecord) error {
	if record.Result == nil {
		return fmt.Errorf("run record %q carries no result", record.RunId)
	}
	db.buffer = append(db.buffer, record)
	if len(db.buffer) == cap(db.buffer) {
		if err := db.Flush(); err != nil {
			return fmt.Errorf("unable to flush run records: %w", err)
		}
	}
	return nil
}

// Flush the buffered run records into the database.
func (db *runDB) Flush() error {
	// open new transaction
	tx, err := db.sql.Begin()
	if err != nil {
		return err
	}
	// write run records into sqlite3 database
	for _, record := range db.buffer {
		r := record.Result
		// write run summary
		_, err := tx.Stmt(db.runStmt).Exec(record.RunId, record.Timestamp, r.Seed, r.NumSamples,
			r.InsideCount, r.Estimate, r.AbsoluteError, r.RelativeError, r.Duration.Milliseconds())
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		// write convergence series
		for _, point := range record.Series {
			_, err = tx.Stmt(db.pointStmt).Exec(record.RunId, point.SampleCount, point.PiEstimate)
			if err != nil {
				_ = tx.Rollback()
				return err
			}
		}
	}
	// clear buffer
	db.buffer = db.buffer[:0]
	// commit transaction
	return tx.Commit()
}

// DeleteByRunId removes a run and its series; used prior to re-registration.
func (db *runDB) DeleteByRunId(runId string) (int64, error) {
	var totalNumRows int64

	tx, err := db.sql.Begin()
	if err != nil {
		return 0, err
	}

	for _, table := range []string{"runs", "series"} {
		res, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE runId = ?;", table), runId)
		if err != nil {
			_ = tx.Rollback()
			return 0, err
		}

		numRowsAffected, err := res.RowsAffected()
		if err != nil {
			_ = tx.Rollback()
			return 0, err
		}

		totalNumRows += numRowsAffected
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return totalNumRows, nil
}
