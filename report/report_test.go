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

package report

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xsoniclabs/montecarlo/montecarlo"
	"github.com/0xsoniclabs/montecarlo/utils"
)

func TestReport_AnalyzeRejectsEmptySeries(t *testing.T) {
	_, err := Analyze(nil)
	assert.Error(t, err)

	_, err = Analyze([]montecarlo.EstimatePoint{})
	assert.Error(t, err)
}

func TestReport_AnalyzeSinglePoint(t *testing.T) {
	s, err := Analyze([]montecarlo.EstimatePoint{
		{SampleCount: 1000, PiEstimate: 3.2},
	})
	require.NoError(t, err)

	wantErr := math.Abs(3.2 - math.Pi)
	assert.Equal(t, 1, s.NumPoints)
	assert.Equal(t, uint64(1000), s.TotalSamples)
	assert.Equal(t, 3.2, s.FinalEstimate)
	assert.InDelta(t, wantErr, s.FinalError, 1e-12)
	assert.InDelta(t, wantErr/math.Pi*100, s.FinalRelativeError, 1e-12)
	assert.InDelta(t, wantErr, s.ErrMin, 1e-12)
	assert.InDelta(t, wantErr, s.ErrMax, 1e-12)
	assert.InDelta(t, wantErr, s.ErrMedian, 1e-12)
	assert.Equal(t, 0.0, s.ErrStdDev)
	assert.False(t, s.HasConvergenceFit)
	require.NotNil(t, s.EstStats)
	assert.Equal(t, uint64(1), s.EstStats.GetCount())
}

func TestReport_AnalyzeComputesErrorStatistics(t *testing.T) {
	s, err := Analyze([]montecarlo.EstimatePoint{
		{SampleCount: 100, PiEstimate: math.Pi + 0.1},
		{SampleCount: 200, PiEstimate: math.Pi - 0.2},
		{SampleCount: 300, PiEstimate: math.Pi + 0.4},
		{SampleCount: 400, PiEstimate: math.Pi + 0.1},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, s.NumPoints)
	assert.Equal(t, uint64(400), s.TotalSamples)
	assert.InDelta(t, 0.1, s.ErrMin, 1e-9)
	assert.InDelta(t, 0.4, s.ErrMax, 1e-9)
	assert.InDelta(t, 0.2, s.ErrMean, 1e-9)
	assert.InDelta(t, 0.15, s.ErrMedian, 1e-9)
	assert.InDelta(t, math.Sqrt(0.015), s.ErrStdDev, 1e-9)
	assert.InDelta(t, math.Pi+0.1, s.EstStats.GetMean(), 1e-9)
}

func TestReport_ConvergenceFitRecoversSlope(t *testing.T) {
	series := []montecarlo.EstimatePoint{}
	for i := 1; i <= 6; i++ {
		n := uint64(math.Pow(10, float64(i)))
		series = append(series, montecarlo.EstimatePoint{
			SampleCount: n,
			PiEstimate:  math.Pi + 2/math.Sqrt(float64(n)),
		})
	}

	s, err := Analyze(series)
	require.NoError(t, err)
	require.True(t, s.HasConvergenceFit)
	assert.InDelta(t, -0.5, s.ConvergenceSlope, 1e-6)
	assert.InDelta(t, 1.0, s.ConvergenceRatio, 1e-6)
}

func TestReport_FitNeedsTwoInformativePoints(t *testing.T) {
	// exact hits carry a zero error and are skipped by the fit
	s, err := Analyze([]montecarlo.EstimatePoint{
		{SampleCount: 100, PiEstimate: math.Pi},
		{SampleCount: 200, PiEstimate: math.Pi},
		{SampleCount: 300, PiEstimate: 3.2},
	})
	require.NoError(t, err)
	assert.False(t, s.HasConvergenceFit)
}

func TestSummary_StringContainsHeadlineNumbers(t *testing.T) {
	s, err := Analyze([]montecarlo.EstimatePoint{
		{SampleCount: 1000, PiEstimate: 3.15},
		{SampleCount: 2000, PiEstimate: 3.14},
	})
	require.NoError(t, err)

	out := s.String()
	assert.Contains(t, out, "Monte Carlo π Run Report")
	assert.Contains(t, out, "Total samples")
	assert.Contains(t, out, "2000")
	assert.Contains(t, out, "Final estimate")
	assert.Contains(t, out, "3.1400000000")
	assert.Contains(t, out, "Convergence slope")
}

func TestSummary_PrintsThroughPrinters(t *testing.T) {
	s, err := Analyze([]montecarlo.EstimatePoint{
		{SampleCount: 1000, PiEstimate: 3.15},
		{SampleCount: 2000, PiEstimate: 3.14},
	})
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "report.txt")
	ps := utils.NewPrinters().AddPrinterToFile(outPath, s.String)
	ps.Print()
	ps.Close()

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Final estimate")
	assert.Contains(t, string(content), "Error std dev")
}
