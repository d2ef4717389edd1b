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
	"time"

	"github.com/0xsoniclabs/montecarlo/logger"
)

// OperationThreshold is the number of samples between two progress reports.
const OperationThreshold = 100_000

// ProgressTracker reports sampling progress at a fixed operation interval.
type ProgressTracker struct {
	step   int           // number of samples processed so far
	target int           // total number of samples to process
	start  time.Time     // time the tracking started
	last   time.Time     // time of the last report
	log    logger.Logger // message logger
}

// NewProgressTracker creates a new progress tracker for a run of target samples.
func NewProgressTracker(target int, log logger.Logger) *ProgressTracker {
	now := time.Now()
	return &ProgressTracker{
		step:   0,
		target: target,
		start:  now,
		last:   now,
		log:    log,
	}
}

// PrintProgress logs a report every OperationThreshold calls.
func (pt *ProgressTracker) PrintProgress() {
	pt.step++
	if pt.step%OperationThreshold == 0 {
		now := time.Now()
		rate := OperationThreshold / now.Sub(pt.last).Seconds()
		pt.last = now

		hours, minutes, seconds := logger.ParseTime(now.Sub(pt.start))
		pt.log.Infof("Elapsed time: %vh %vm %vs; reached sample %v of %v; current rate: %.2f samples/s", hours, minutes, seconds, pt.step, pt.target, rate)
	}
}
