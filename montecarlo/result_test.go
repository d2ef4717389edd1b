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
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/0xsoniclabs/montecarlo/logger"
)

func TestResult_NewResultDerivesErrorMetrics(t *testing.T) {
	r := newResult(1000, 785, 2*time.Millisecond, 42)

	assert.Equal(t, uint64(1000), r.NumSamples)
	assert.Equal(t, uint64(785), r.InsideCount)
	assert.InDelta(t, 3.14, r.Estimate, 1e-12)
	assert.InDelta(t, math.Abs(3.14-math.Pi), r.AbsoluteError, 1e-12)
	assert.InDelta(t, math.Abs(3.14-math.Pi)/math.Pi*100, r.RelativeError, 1e-12)
	assert.Equal(t, 2*time.Millisecond, r.Duration)
	assert.Equal(t, int64(42), r.Seed)
}

func TestResult_LogResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := newResult(100, 79, time.Millisecond, 1)

	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Notice("=== Monte Carlo π Estimation Results ===")
	log.EXPECT().Noticef("Number of samples: %d", r.NumSamples)
	log.EXPECT().Noticef("Points inside circle: %d", r.InsideCount)
	log.EXPECT().Noticef("Estimated π: %.10f", r.Estimate)
	log.EXPECT().Noticef("Actual π: %.10f", math.Pi)
	log.EXPECT().Noticef("Absolute error: %.10f", r.AbsoluteError)
	log.EXPECT().Noticef("Relative error: %.6f%%", r.RelativeError)
	log.EXPECT().Noticef("Computation time: %d ms", r.Duration.Milliseconds())

	r.LogResults(log)
}
