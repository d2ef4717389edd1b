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

package montecarlo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/0xsoniclabs/montecarlo/utils"
)

func TestEngine_NewEngineSeedHandling(t *testing.T) {
	assert.Equal(t, int64(42), NewEngine(42).Seed())
	assert.Positive(t, NewEngine(0).Seed())
	assert.Positive(t, NewEngine(-1).Seed())
}

func TestEngine_EstimateStaysInValueRange(t *testing.T) {
	for _, n := range []uint64{1, 2, 10, 1000} {
		res, err := NewEngine(7).Estimate(n)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Estimate, 0.0)
		assert.LessOrEqual(t, res.Estimate, 4.0)
		assert.Equal(t, n, res.NumSamples)
		assert.LessOrEqual(t, res.InsideCount, res.NumSamples)
	}
}

func TestEngine_EstimateRejectsZeroSamples(t *testing.T) {
	res, err := NewEngine(1).Estimate(0)
	assert.ErrorIs(t, err, ErrInsufficientSamples)
	assert.Nil(t, res)
}

func TestEngine_EstimateIsDeterministicForFixedSeed(t *testing.T) {
	a, err := NewEngine(1234).Estimate(50_000)
	require.NoError(t, err)
	b, err := NewEngine(1234).Estimate(50_000)
	require.NoError(t, err)

	assert.Equal(t, a.InsideCount, b.InsideCount)
	assert.Equal(t, a.Estimate, b.Estimate)
	assert.Equal(t, a.AbsoluteError, b.AbsoluteError)
}

func TestEngine_EstimateConvergesForLargeRuns(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 10M sample convergence run in short mode")
	}

	res, err := NewEngine(42).Estimate(10_000_000)
	require.NoError(t, err)
	assert.Less(t, res.AbsoluteError, 0.01)
}

func TestEngine_RunAccountingIsMonotone(t *testing.T) {
	e := NewEngine(7)
	var lastDrawn, lastInside uint64
	total := e.run(1000, 1, func(drawn, inside uint64) {
		assert.LessOrEqual(t, inside, drawn)
		assert.GreaterOrEqual(t, inside, lastInside)
		assert.Equal(t, lastDrawn+1, drawn)
		lastDrawn, lastInside = drawn, inside
	})
	assert.Equal(t, uint64(1000), lastDrawn)
	assert.Equal(t, lastInside, total)
}

func TestEngine_ProgressFiresAtEveryTenth(t *testing.T) {
	var percents []float64
	e := NewEngine(3).WithProgress(func(percent, estimate float64) {
		percents = append(percents, percent)
		assert.GreaterOrEqual(t, estimate, 0.0)
		assert.LessOrEqual(t, estimate, 4.0)
	})

	_, err := e.Estimate(100)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, percents)
}

func TestEngine_ProgressSkippedForShortRuns(t *testing.T) {
	calls := 0
	e := NewEngine(3).WithProgress(func(percent, estimate float64) {
		calls++
	})

	_, err := e.Estimate(9)
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
}

func TestEngine_TrackerIsAdvancedPerDraw(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	e := NewEngine(5).WithTracker(utils.NewProgressTracker(utils.OperationThreshold, log))
	_, err := e.Estimate(utils.OperationThreshold)
	require.NoError(t, err)
}

func TestEngine_SeriesReportsAtStepBoundaries(t *testing.T) {
	series, err := NewEngine(11).IntermediateSeries(1000, 100)
	require.NoError(t, err)
	require.Len(t, series, 10)

	for i, point := range series {
		assert.Equal(t, uint64(100*(i+1)), point.SampleCount)
		assert.GreaterOrEqual(t, point.PiEstimate, 0.0)
		assert.LessOrEqual(t, point.PiEstimate, 4.0)
	}
}

func TestEngine_SeriesWithOversizedStepIsEmpty(t *testing.T) {
	series, err := NewEngine(11).IntermediateSeries(100, 101)
	require.NoError(t, err)
	assert.NotNil(t, series)
	assert.Empty(t, series)
}

func TestEngine_SeriesRejectsZeroStep(t *testing.T) {
	series, err := NewEngine(11).IntermediateSeries(100, 0)
	assert.ErrorIs(t, err, ErrZeroStepSize)
	assert.Nil(t, series)
}

func TestEngine_SeriesDropsTrailingPartialStep(t *testing.T) {
	series, err := NewEngine(11).IntermediateSeries(1050, 100)
	require.NoError(t, err)
	require.Len(t, series, 10)
	assert.Equal(t, uint64(1000), series[len(series)-1].SampleCount)
}

func TestEngine_SeriesContinuesTheRandomStream(t *testing.T) {
	e := NewEngine(99)
	first, err := e.IntermediateSeries(1000, 100)
	require.NoError(t, err)
	second, err := e.IntermediateSeries(1000, 100)
	require.NoError(t, err)

	// consecutive runs consume fresh draws
	assert.NotEqual(t, first, second)

	// replaying from the same seed reproduces the stream bit for bit
	replay := NewEngine(99)
	firstReplay, err := replay.IntermediateSeries(1000, 100)
	require.NoError(t, err)
	assert.Equal(t, first, firstReplay)
	secondReplay, err := replay.IntermediateSeries(1000, 100)
	require.NoError(t, err)
	assert.Equal(t, second, secondReplay)
}

func TestEngine_BoundaryPointsCountAsInside(t *testing.T) {
	tests := []struct {
		x, y   float64
		inside bool
	}{
		{0.0, 0.0, true},
		{0.5, 0.5, true},
		{1.0, 0.0, true},
		{0.0, -1.0, true},
		{1.0, 1.0, false},
		{-1.0, -1.0, false},
	}

	for _, test := range tests {
		assert.Equal(t, test.inside, inUnitCircle(test.x, test.y), "point (%v, %v)", test.x, test.y)
	}
}
