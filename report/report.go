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

// Package report derives summary statistics from an estimate series and
// renders them for the console, a file, or a run archive.
package report

import (
	"fmt"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/0xsoniclabs/montecarlo/montecarlo"
	"github.com/0xsoniclabs/montecarlo/utils/analytics"
)

// TheoreticalSlope is the expected slope of the absolute error over the sample
// count in log-log space. Monte Carlo error shrinks with the square root of
// the number of samples.
const TheoreticalSlope = -0.5

// Summary aggregates one estimate series into its headline numbers.
type Summary struct {
	NumPoints    int
	TotalSamples uint64

	FinalEstimate      float64
	FinalError         float64 // absolute deviation from the reference constant
	FinalRelativeError float64 // percentage of the reference constant

	// statistics over the absolute error of all points
	ErrMin    float64
	ErrMax    float64
	ErrMean   float64
	ErrMedian float64
	ErrStdDev float64

	// running moments over the estimates of all points
	EstStats *analytics.IncrementalStats

	// least-squares fit of log10(error) over log10(samples);
	// points with an exact-zero error carry no information and are skipped
	ConvergenceSlope  float64
	ConvergenceRatio  float64 // fitted slope relative to TheoreticalSlope
	HasConvergenceFit bool
}

// Analyze reduces the given series to a Summary. The series must hold at
// least one point; points are expected in ascending sample-count order.
func Analyze(series []montecarlo.EstimatePoint) (*Summary, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("series holds no estimate points")
	}

	errs := make([]float64, len(series))
	estStats := analytics.NewIncrementalStats()
	for i, p := range series {
		errs[i] = math.Abs(p.PiEstimate - math.Pi)
		estStats.Update(p.PiEstimate)
	}

	last := series[len(series)-1]
	s := &Summary{
		NumPoints:          len(series),
		TotalSamples:       last.SampleCount,
		FinalEstimate:      last.PiEstimate,
		FinalError:         errs[len(errs)-1],
		FinalRelativeError: errs[len(errs)-1] / math.Pi * 100,
		EstStats:           estStats,
	}

	var err error
	if s.ErrMin, err = stats.Min(errs); err != nil {
		return nil, err
	}
	if s.ErrMax, err = stats.Max(errs); err != nil {
		return nil, err
	}
	if s.ErrMean, err = stats.Mean(errs); err != nil {
		return nil, err
	}
	if s.ErrMedian, err = stats.Median(errs); err != nil {
		return nil, err
	}
	if s.ErrStdDev, err = stats.StandardDeviation(errs); err != nil {
		return nil, err
	}

	s.fitConvergence(series, errs)
	return s, nil
}

// fitConvergence regresses log10(error) on log10(samples). At least two
// points with a non-zero error are needed for a line.
func (s *Summary) fitConvergence(series []montecarlo.EstimatePoint, errs []float64) {
	logN := []float64{}
	logErr := []float64{}
	for i, p := range series {
		if errs[i] == 0 || p.SampleCount == 0 {
			continue
		}
		logN = append(logN, math.Log10(float64(p.SampleCount)))
		logErr = append(logErr, math.Log10(errs[i]))
	}
	if len(logN) < 2 {
		return
	}

	_, slope := stat.LinearRegression(logN, logErr, nil, false)
	s.ConvergenceSlope = slope
	s.ConvergenceRatio = slope / TheoreticalSlope
	s.HasConvergenceFit = true
}

// String renders the summary as a table.
func (s *Summary) String() string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle("Monte Carlo π Run Report")
	t.AppendHeader(table.Row{"Metric", "Value"})

	t.AppendRows([]table.Row{
		{"Estimate points", s.NumPoints},
		{"Total samples", s.TotalSamples},
		{"Final estimate", fmt.Sprintf("%.10f", s.FinalEstimate)},
		{"Reference π", fmt.Sprintf("%.10f", math.Pi)},
		{"Final absolute error", fmt.Sprintf("%.3e", s.FinalError)},
		{"Final relative error", fmt.Sprintf("%.6f%%", s.FinalRelativeError)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Error min", fmt.Sprintf("%.3e", s.ErrMin)},
		{"Error max", fmt.Sprintf("%.3e", s.ErrMax)},
		{"Error mean", fmt.Sprintf("%.3e", s.ErrMean)},
		{"Error median", fmt.Sprintf("%.3e", s.ErrMedian)},
		{"Error std dev", fmt.Sprintf("%.3e", s.ErrStdDev)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Estimate mean", formatOrNa(s.EstStats.GetMean())},
		{"Estimate std dev", formatOrNa(s.EstStats.GetStandardDeviation())},
		{"Estimate skewness", formatOrNa(s.EstStats.GetSkewness())},
		{"Estimate kurtosis", formatOrNa(s.EstStats.GetKurtosis())},
	})
	t.AppendSeparator()
	if s.HasConvergenceFit {
		t.AppendRows([]table.Row{
			{"Convergence slope", fmt.Sprintf("%.4f", s.ConvergenceSlope)},
			{"Theoretical slope", fmt.Sprintf("%.4f", float64(TheoreticalSlope))},
			{"Convergence ratio", fmt.Sprintf("%.2f", s.ConvergenceRatio)},
		})
	} else {
		t.AppendRow(table.Row{"Convergence slope", "n/a"})
	}

	return t.Render()
}

func formatOrNa(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.6f", v)
}
