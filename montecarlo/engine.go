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

// Package montecarlo estimates the constant π by drawing uniform random
// points from a square and measuring the fraction that falls into the
// inscribed unit circle.
package montecarlo

import (
	"errors"
	"math/rand"
	"time"

	"github.com/0xsoniclabs/montecarlo/utils"
)

var (
	// ErrInsufficientSamples is returned when an estimation over zero
	// samples is requested.
	ErrInsufficientSamples = errors.New("at least one sample is required")

	// ErrZeroStepSize is returned when an intermediate series with a zero
	// reporting interval is requested.
	ErrZeroStepSize = errors.New("step size must be at least 1")
)

// ProgressFunc receives periodic progress observations of a single-shot
// estimation: the percentage of samples processed so far and the running
// estimate over those samples.
type ProgressFunc func(percent float64, estimate float64)

// EstimatePoint is one intermediate estimate captured at a reporting boundary.
type EstimatePoint struct {
	SampleCount uint64
	PiEstimate  float64
}

// Engine draws uniform random points from the square [-1,1]x[-1,1] and
// classifies them against the inscribed unit circle. An engine owns a single
// random source; it must not be driven from two goroutines at once.
type Engine struct {
	rg       *rand.Rand
	seed     int64
	progress ProgressFunc
	tracker  *utils.ProgressTracker
}

// NewEngine creates an engine seeded with the given value. Any seed <= 0
// requests a one-time entropy-derived seed instead.
func NewEngine(seed int64) *Engine {
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		rg:   rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// WithProgress registers a sink for the progress observations emitted at
// every tenth of a single-shot estimation.
func (e *Engine) WithProgress(fn ProgressFunc) *Engine {
	e.progress = fn
	return e
}

// WithTracker attaches a rate tracker that is advanced once per draw.
func (e *Engine) WithTracker(pt *utils.ProgressTracker) *Engine {
	e.tracker = pt
	return e
}

// Seed returns the seed the random source was created with.
func (e *Engine) Seed() int64 {
	return e.seed
}

// inUnitCircle classifies a point against the unit circle. Points exactly on
// the boundary count as inside.
func inUnitCircle(x, y float64) bool {
	return x*x+y*y <= 1.0
}

// sampleOne draws the next point, x before y, and classifies it.
func (e *Engine) sampleOne() bool {
	x := e.rg.Float64()*2 - 1
	y := e.rg.Float64()*2 - 1
	return inUnitCircle(x, y)
}

// run is the sampling loop shared by both estimation operations. It draws
// numSamples points and calls onBoundary with the running counts whenever the
// number of drawn samples is a multiple of step. A zero step disables the
// boundary callbacks. Returns the final inside count.
func (e *Engine) run(numSamples, step uint64, onBoundary func(drawn, inside uint64)) uint64 {
	var inside uint64
	for i := uint64(1); i <= numSamples; i++ {
		if e.sampleOne() {
			inside++
		}
		if e.tracker != nil {
			e.tracker.PrintProgress()
		}
		if step != 0 && i%step == 0 && onBoundary != nil {
			onBoundary(i, inside)
		}
	}
	return inside
}

// Estimate runs a single-shot estimation over numSamples draws and derives
// the final result. A registered progress sink receives an observation at
// every tenth of the run; runs shorter than 10 samples emit no progress.
func (e *Engine) Estimate(numSamples uint64) (*Result, error) {
	if numSamples == 0 {
		return nil, ErrInsufficientSamples
	}

	var onBoundary func(drawn, inside uint64)
	if e.progress != nil {
		onBoundary = func(drawn, inside uint64) {
			percent := 100 * float64(drawn) / float64(numSamples)
			e.progress(percent, 4*float64(inside)/float64(drawn))
		}
	}

	start := time.Now()
	inside := e.run(numSamples, numSamples/10, onBoundary)
	elapsed := time.Since(start)

	return newResult(numSamples, inside, elapsed, e.seed), nil
}

// IntermediateSeries draws numSamples fresh points and records the running
// estimate at every multiple of stepSize. Draws after the last full step
// contribute to no point. The series shares no draws with prior calls on the
// same engine; the random stream simply continues.
func (e *Engine) IntermediateSeries(numSamples, stepSize uint64) ([]EstimatePoint, error) {
	if stepSize == 0 {
		return nil, ErrZeroStepSize
	}

	series := make([]EstimatePoint, 0, numSamples/stepSize)
	e.run(numSamples, stepSize, func(drawn, inside uint64) {
		series = append(series, EstimatePoint{
			SampleCount: drawn,
			PiEstimate:  4 * float64(inside) / float64(drawn),
		})
	})
	return series, nil
}
