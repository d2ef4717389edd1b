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
	"time"

	"github.com/0xsoniclabs/montecarlo/logger"
)

// Result is the outcome of a single-shot estimation run.
type Result struct {
	NumSamples    uint64
	InsideCount   uint64
	Estimate      float64
	AbsoluteError float64
	RelativeError float64 // percentage of the reference constant
	Duration      time.Duration
	Seed          int64
}

func newResult(numSamples, inside uint64, elapsed time.Duration, seed int64) *Result {
	estimate := 4 * float64(inside) / float64(numSamples)
	absErr := math.Abs(estimate - math.Pi)
	return &Result{
		NumSamples:    numSamples,
		InsideCount:   inside,
		Estimate:      estimate,
		AbsoluteError: absErr,
		RelativeError: absErr / math.Pi * 100,
		Duration:      elapsed,
		Seed:          seed,
	}
}

// LogResults writes the human-readable summary block of the run.
func (r *Result) LogResults(log logger.Logger) {
	log.Notice("=== Monte Carlo π Estimation Results ===")
	log.Noticef("Number of samples: %d", r.NumSamples)
	log.Noticef("Points inside circle: %d", r.InsideCount)
	log.Noticef("Estimated π: %.10f", r.Estimate)
	log.Noticef("Actual π: %.10f", math.Pi)
	log.Noticef("Absolute error: %.10f", r.AbsoluteError)
	log.Noticef("Relative error: %.6f%%", r.RelativeError)
	log.Noticef("Computation time: %d ms", r.Duration.Milliseconds())
}
