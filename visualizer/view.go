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

package visualizer

import (
	"fmt"
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"github.com/0xsoniclabs/montecarlo/montecarlo"
)

// MaxChartPoints bounds the number of points handed to a chart. Longer series
// are thinned with a line simplifier before rendering.
const MaxChartPoints = 2000

type viewState struct {
	numPoints  int                        // series length before thinning
	points     []montecarlo.EstimatePoint // convergence series handed to the charts
	errs       [][2]float64               // log10(samples) over log10(error)
	bound      [][2]float64               // 1/sqrt(n) reference in log-log space
	efficiency [][2]float64               // samples over error * sqrt(samples)
	final      montecarlo.EstimatePoint
}

var (
	currentMu    sync.RWMutex
	currentState *viewState
)

func setViewState(points []montecarlo.EstimatePoint) error {
	if len(points) == 0 {
		return fmt.Errorf("visualizer: series is empty")
	}
	derived := buildViewState(points)
	currentMu.Lock()
	currentState = derived
	currentMu.Unlock()
	return nil
}

func buildViewState(points []montecarlo.EstimatePoint) *viewState {
	thinned := thinSeries(points, MaxChartPoints)

	errs := [][2]float64{}
	bound := [][2]float64{}
	efficiency := [][2]float64{}
	scale := 0.0
	for _, p := range thinned {
		n := float64(p.SampleCount)
		e := math.Abs(p.PiEstimate - math.Pi)
		if n == 0 {
			continue
		}
		efficiency = append(efficiency, [2]float64{n, e * math.Sqrt(n)})
		if e == 0 {
			// an exact hit has no position on a log error axis
			continue
		}
		if scale == 0 {
			// anchor the reference curve at the first informative point
			scale = e * math.Sqrt(n)
		}
		errs = append(errs, [2]float64{math.Log10(n), math.Log10(e)})
		bound = append(bound, [2]float64{math.Log10(n), math.Log10(scale) - 0.5*math.Log10(n)})
	}

	return &viewState{
		numPoints:  len(points),
		points:     thinned,
		errs:       errs,
		bound:      bound,
		efficiency: efficiency,
		final:      points[len(points)-1],
	}
}

// thinSeries reduces a series to at most max points while preserving the
// shape of the convergence curve. Both axes are normalized so that the
// simplifier weighs them equally.
func thinSeries(points []montecarlo.EstimatePoint, max int) []montecarlo.EstimatePoint {
	if len(points) <= max {
		return points
	}

	maxN := float64(points[len(points)-1].SampleCount)
	if maxN == 0 {
		maxN = 1
	}
	minEst, maxEst := points[0].PiEstimate, points[0].PiEstimate
	for _, p := range points {
		minEst = math.Min(minEst, p.PiEstimate)
		maxEst = math.Max(maxEst, p.PiEstimate)
	}
	estRange := maxEst - minEst
	if estRange == 0 {
		estRange = 1
	}

	// the simplifier only drops points, so the normalized x coordinate
	// survives unchanged and maps back to the original point
	index := map[float64]int{}
	ls := orb.LineString{}
	for i, p := range points {
		x := float64(p.SampleCount) / maxN
		index[x] = i
		ls = append(ls, orb.Point{x, (p.PiEstimate - minEst) / estRange})
	}

	simplifier := simplify.VisvalingamKeep(max)
	compressed := simplifier.Simplify(ls).(orb.LineString)

	thinned := make([]montecarlo.EstimatePoint, 0, len(compressed))
	for _, q := range compressed {
		thinned = append(thinned, points[index[q[0]]])
	}
	return thinned
}

func currentView() (*viewState, error) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if currentState == nil {
		return nil, fmt.Errorf("visualizer: no series loaded")
	}
	return currentState, nil
}
