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
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xsoniclabs/montecarlo/montecarlo"
)

func sampleSeries() []montecarlo.EstimatePoint {
	return []montecarlo.EstimatePoint{
		{SampleCount: 100, PiEstimate: 3.24},
		{SampleCount: 200, PiEstimate: 3.10},
		{SampleCount: 300, PiEstimate: 3.16},
		{SampleCount: 400, PiEstimate: 3.145},
	}
}

func mustSetView(t *testing.T, series []montecarlo.EstimatePoint) {
	t.Helper()
	require.NoError(t, setViewState(series))
}

func clearView(t *testing.T) {
	t.Helper()
	currentMu.Lock()
	currentState = nil
	currentMu.Unlock()
}
func TestVisualizer_renderMain(t *testing.T) {
	req, err := http.NewRequest("GET", "/", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderMain)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, MainHtml, rr.Body.String())
}

func TestVisualizer_convertSeriesData(t *testing.T) {
	testData := []montecarlo.EstimatePoint{
		{SampleCount: 100, PiEstimate: 3.2},
		{SampleCount: 200, PiEstimate: 3.1},
	}

	result := convertSeriesData(testData)

	assert.Len(t, result, 2)
	assert.Equal(t, opts.LineData{Value: [2]float64{100.0, 3.2}}, result[0])
	assert.Equal(t, opts.LineData{Value: [2]float64{200.0, 3.1}}, result[1])
}

func TestVisualizer_convertReferenceData(t *testing.T) {
	testData := []montecarlo.EstimatePoint{
		{SampleCount: 100, PiEstimate: 3.2},
		{SampleCount: 200, PiEstimate: 3.1},
	}

	result := convertReferenceData(testData)

	assert.Len(t, result, 2)
	assert.Equal(t, opts.LineData{Value: [2]float64{100.0, math.Pi}}, result[0])
	assert.Equal(t, opts.LineData{Value: [2]float64{200.0, math.Pi}}, result[1])
}

func TestVisualizer_convertPairData(t *testing.T) {
	testData := [][2]float64{{1.0, 2.0}, {3.0, 4.0}, {5.0, 6.0}}

	result := convertPairData(testData)

	assert.Len(t, result, 3)
	assert.Equal(t, opts.LineData{Value: [2]float64{1.0, 2.0}}, result[0])
	assert.Equal(t, opts.LineData{Value: [2]float64{3.0, 4.0}}, result[1])
	assert.Equal(t, opts.LineData{Value: [2]float64{5.0, 6.0}}, result[2])
}

func TestVisualizer_convertEfficiencyData(t *testing.T) {
	testData := [][2]float64{{100.0, 0.1}, {200.0, 0.2}}

	result := convertEfficiencyData(testData)

	assert.Len(t, result, 2)
	assert.Equal(t, opts.ScatterData{Value: [2]float64{100.0, 0.1}, SymbolSize: 5}, result[0])
	assert.Equal(t, opts.ScatterData{Value: [2]float64{200.0, 0.2}, SymbolSize: 5}, result[1])
}

func TestVisualizer_newConvergenceChart(t *testing.T) {
	chart := newConvergenceChart("Test Title", sampleSeries())

	assert.NotNil(t, chart)
}

func TestVisualizer_newErrorChart(t *testing.T) {
	errs := [][2]float64{{2.0, -1.0}, {3.0, -1.5}}
	bound := [][2]float64{{2.0, -1.0}, {3.0, -1.5}}

	chart := newErrorChart(errs, bound)

	assert.NotNil(t, chart)
}

func TestVisualizer_renderConvergence(t *testing.T) {
	mustSetView(t, sampleSeries())

	req, err := http.NewRequest("GET", "/convergence", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderConvergence)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Convergence after 400 samples")
}

func TestVisualizer_renderErrorScaling(t *testing.T) {
	mustSetView(t, sampleSeries())

	req, err := http.NewRequest("GET", "/error-analysis", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderErrorScaling)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestVisualizer_renderEfficiency(t *testing.T) {
	mustSetView(t, sampleSeries())

	req, err := http.NewRequest("GET", "/sample-efficiency", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderEfficiency)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestVisualizer_handlersWithoutState(t *testing.T) {
	handlers := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"renderConvergence", renderConvergence},
		{"renderErrorScaling", renderErrorScaling},
		{"renderEfficiency", renderEfficiency},
	}
	for _, tc := range handlers {
		t.Run(tc.name, func(t *testing.T) {
			clearView(t)
			req, err := http.NewRequest("GET", "/", nil)
			require.NoError(t, err)
			rr := httptest.NewRecorder()
			tc.handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		})
	}
}

func TestVisualizer_FireUpWeb(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		done <- FireUpWeb(sampleSeries(), "0")
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(1 * time.Second):
		// If no error after 1 seconds, pass the test
	}
}

func TestVisualizer_FireUpWebErrorsOnEmptySeries(t *testing.T) {
	err := FireUpWeb(nil, "0")
	assert.Error(t, err)
}
