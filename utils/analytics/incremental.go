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

package analytics

import (
	"encoding/json"
	"math"
)

// IncrementalStats maintains single-pass summary statistics of a stream of
// observations. Central moments follow the numerically stable update rules
// from John D. Cook's running statistics notes, the sum uses Kahan
// compensation. Memory usage is constant regardless of stream length.
type IncrementalStats struct {
	count uint64

	min float64
	max float64

	ksum float64 // kahan-compensated running sum
	c    float64 // kahan correction term

	m1 float64 // 1st moment: running mean
	m2 float64 // 2nd central moment * n
	m3 float64 // 3rd central moment * n
	m4 float64 // 4th central moment * n
}

func NewIncrementalStats() *IncrementalStats {
	return &IncrementalStats{}
}

// Update folds one observation into the running statistics.
func (s *IncrementalStats) Update(x float64) {
	if s.count == 0 {
		s.min = x
		s.max = x
	} else {
		s.min = math.Min(s.min, x)
		s.max = math.Max(s.max, x)
	}

	t := s.ksum + x
	if math.Abs(s.ksum) >= math.Abs(x) {
		s.c += (s.ksum - t) + x
	} else {
		s.c += (x - t) + s.ksum
	}
	s.ksum = t

	n1 := float64(s.count)
	s.count++
	n := float64(s.count)
	delta := x - s.m1
	deltaN := delta / n
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * n1
	s.m1 += deltaN
	s.m4 += term1*deltaN2*(n*n-3*n+3) + 6*deltaN2*s.m2 - 4*deltaN*s.m3
	s.m3 += term1*deltaN*(n-2) - 3*deltaN*s.m2
	s.m2 += term1
}

// Reset discards all recorded observations.
func (s *IncrementalStats) Reset() {
	*s = IncrementalStats{}
}

func (s *IncrementalStats) GetCount() uint64 {
	return s.count
}

func (s *IncrementalStats) GetMin() float64 {
	return s.min
}

func (s *IncrementalStats) GetMax() float64 {
	return s.max
}

func (s *IncrementalStats) GetSum() float64 {
	return s.ksum + s.c
}

func (s *IncrementalStats) GetMean() float64 {
	return s.m1
}

// GetVariance returns the sample variance, NaN if fewer than 2 observations.
func (s *IncrementalStats) GetVariance() float64 {
	if s.count < 2 {
		return math.NaN()
	}
	return s.m2 / float64(s.count-1)
}

func (s *IncrementalStats) GetStandardDeviation() float64 {
	return math.Sqrt(s.GetVariance())
}

func (s *IncrementalStats) GetSkewness() float64 {
	return math.Sqrt(float64(s.count)) * s.m3 / math.Pow(s.m2, 1.5)
}

// GetKurtosis returns the excess kurtosis, 0 for a normal distribution.
func (s *IncrementalStats) GetKurtosis() float64 {
	return float64(s.count)*s.m4/(s.m2*s.m2) - 3.0
}

func (s IncrementalStats) String() string {
	j, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(j)
}
