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

// Package export reads and writes convergence series in the result CSV
// format. Paths with a .gz suffix are transparently gzip-compressed.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/0xsoniclabs/montecarlo/montecarlo"
	umath "github.com/0xsoniclabs/montecarlo/utils/math"
)

// Header is the first line of every result CSV file.
const Header = "Sample_Count,Pi_Estimate,Error"

// MaxSeriesPoints caps the number of rows an exported series produces.
const MaxSeriesPoints = 1000

// SeriesStep returns the reporting interval that keeps an exported series of
// numSamples draws at no more than MaxSeriesPoints rows.
func SeriesStep(numSamples uint64) uint64 {
	return umath.Max(1, numSamples/MaxSeriesPoints)
}

// WriteSeries writes one row per estimate point to path. The error column
// holds the absolute deviation of the estimate from the reference constant.
func WriteSeries(path string, series []montecarlo.EstimatePoint) (err error) {
	w, err := newSeriesWriter(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
	}()

	if _, err = fmt.Fprintln(w, Header); err != nil {
		return err
	}
	for _, p := range series {
		_, err = fmt.Fprintf(w, "%d,%.10f,%v\n", p.SampleCount, p.PiEstimate, math.Abs(p.PiEstimate-math.Pi))
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteResult writes a single-row export holding the final estimate of a run.
func WriteResult(path string, result *montecarlo.Result) error {
	return WriteSeries(path, []montecarlo.EstimatePoint{{
		SampleCount: result.NumSamples,
		PiEstimate:  result.Estimate,
	}})
}

// ReadSeries loads a series previously written by WriteSeries or WriteResult.
// The error column is not read back; it is derivable from the estimate.
func ReadSeries(path string) (series []montecarlo.EstimatePoint, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s; %v", path, err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, gzErr := gzip.NewReader(file)
		if gzErr != nil {
			return nil, fmt.Errorf("unable to read compressed file %s; %v", path, gzErr)
		}
		defer func() {
			err = errors.Join(err, gz.Close())
		}()
		reader = gz
	}

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		return nil, fmt.Errorf("result file %s is empty", path)
	}
	if scanner.Text() != Header {
		return nil, fmt.Errorf("%s is not a result file; unexpected header %q", path, scanner.Text())
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed row %q in %s", line, path)
		}
		count, parseErr := strconv.ParseUint(fields[0], 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("malformed sample count %q in %s; %v", fields[0], path, parseErr)
		}
		estimate, parseErr := strconv.ParseFloat(fields[1], 64)
		if parseErr != nil {
			return nil, fmt.Errorf("malformed estimate %q in %s; %v", fields[1], path, parseErr)
		}
		series = append(series, montecarlo.EstimatePoint{SampleCount: count, PiEstimate: estimate})
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("unable to read %s; %v", path, scanErr)
	}
	return series, nil
}

// seriesWriter buffers writes to the target file, compressing when requested.
type seriesWriter struct {
	buffer  *bufio.Writer
	closers []io.Closer
}

func newSeriesWriter(path string) (*seriesWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to create %s; %v", path, err)
	}

	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(file)
		return &seriesWriter{
			buffer:  bufio.NewWriter(gz),
			closers: []io.Closer{gz, file},
		}, nil
	}
	return &seriesWriter{
		buffer:  bufio.NewWriter(file),
		closers: []io.Closer{file},
	}, nil
}

func (w *seriesWriter) Write(p []byte) (int, error) {
	return w.buffer.Write(p)
}

// Close flushes the buffer and closes the compression and file layers in
// order.
func (w *seriesWriter) Close() error {
	err := w.buffer.Flush()
	for _, c := range w.closers {
		err = errors.Join(err, c.Close())
	}
	return err
}
