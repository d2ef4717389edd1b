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
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/0xsoniclabs/montecarlo/montecarlo"
)

// HTML references for the rendered pages.
const convergenceRef = "convergence"
const errorRef = "error-analysis"
const efficiencyRef = "sample-efficiency"

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Montecarlo: π Estimation Explorer</title>
    <link rel="stylesheet" href="style.css">
    <script src="script.js"></script>
  </head>
  <body>
    <h1>Montecarlo: π Estimation Explorer</h1>
    <ul>
    <li> <h3> <a href="/` + convergenceRef + `"> Convergence of the Estimate </a> </h3> </li>
    <li> <h3> <a href="/` + errorRef + `"> Error Scaling </a> </h3> </li>
    <li> <h3> <a href="/` + efficiencyRef + `"> Sampling Efficiency </a> </h3> </li>
    </ul>
</body>
</html>
`

// renderMain renders the main menu.
func renderMain(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, MainHtml)
}

// convertSeriesData converts estimate points to chart points.
func convertSeriesData(series []montecarlo.EstimatePoint) []opts.LineData {
	items := []opts.LineData{}
	for _, p := range series {
		items = append(items, opts.LineData{Value: [2]float64{float64(p.SampleCount), p.PiEstimate}})
	}
	return items
}

// convertReferenceData produces a flat series at the reference constant.
func convertReferenceData(series []montecarlo.EstimatePoint) []opts.LineData {
	items := []opts.LineData{}
	for _, p := range series {
		items = append(items, opts.LineData{Value: [2]float64{float64(p.SampleCount), math.Pi}})
	}
	return items
}

// convertPairData converts coordinate pairs to chart points.
func convertPairData(data [][2]float64) []opts.LineData {
	items := []opts.LineData{}
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// newConvergenceChart creates a line chart for the running estimate.
func newConvergenceChart(title string, series []montecarlo.EstimatePoint) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme: types.ThemeChalk,
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}))
	chart.AddSeries("Estimate", convertSeriesData(series)).AddSeries("Reference π", convertReferenceData(series))

	return chart
}

// renderConvergence renders the running estimate against the reference constant.
func renderConvergence(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	title := fmt.Sprintf("Convergence after %v samples: π ≈ %.6f", view.final.SampleCount, view.final.PiEstimate)
	chart := newConvergenceChart(title, view.points)
	_ = chart.Render(w)
}

// newErrorChart creates a log-log line chart of the absolute error.
func newErrorChart(errs [][2]float64, bound [][2]float64) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: "Error Scaling",
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Error Scaling",
			Subtitle: "log10 absolute error over log10 samples",
		}))
	chart.AddSeries("Absolute Error", convertPairData(errs)).AddSeries("1/√n Reference", convertPairData(bound))
	return chart
}

// renderErrorScaling renders the error against the Monte Carlo bound.
func renderErrorScaling(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	chart := newErrorChart(view.errs, view.bound)
	_ = chart.Render(w)
}

// convertEfficiencyData rendering plot data for the scaled error.
func convertEfficiencyData(data [][2]float64) []opts.ScatterData {
	items := []opts.ScatterData{}
	for _, pair := range data {
		items = append(items, opts.ScatterData{Value: pair, SymbolSize: 5})
	}
	return items
}

// renderEfficiency renders the scaled error. A flat cloud indicates that the
// error shrinks with the square root of the sample count.
func renderEfficiency(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: "Sampling Efficiency",
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title: "Sampling Efficiency",
		}))
	scatter.AddSeries("Error × √n", convertEfficiencyData(view.efficiency))
	_ = scatter.Render(w)
}

// FireUpWeb derives a view model from the estimate series and visualizes it
// with a local web-server.
func FireUpWeb(series []montecarlo.EstimatePoint, addr string) error {
	if err := setViewState(series); err != nil {
		return err
	}

	// create web server
	http.HandleFunc("/", renderMain)
	http.HandleFunc("/"+convergenceRef, renderConvergence)
	http.HandleFunc("/"+errorRef, renderErrorScaling)
	http.HandleFunc("/"+efficiencyRef, renderEfficiency)
	return http.ListenAndServe(":"+addr, nil)
}
