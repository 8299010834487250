// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package plot renders numeric column data to PNG charts.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/montanaflynn/stats"
	chart "github.com/wcharczuk/go-chart/v2"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

// Histogram renders a histogram of the values as a bar chart PNG.
// The bin count follows Sturges' rule, capped at 30.
func Histogram(values []float64, title, path string) error {
	if len(values) == 0 {
		return ErrNoData
	}

	min, err := stats.Min(values)
	if err != nil {
		return err
	}
	max, err := stats.Max(values)
	if err != nil {
		return err
	}

	bins := binCount(len(values))
	width := (max - min) / float64(bins)
	if width == 0 {
		// All values identical: one bar.
		bins = 1
		width = 1
	}

	counts := make([]int, bins)
	maxCount := 0
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
		if counts[idx] > maxCount {
			maxCount = counts[idx]
		}
	}

	bars := make([]chart.Value, bins)
	for i, c := range counts {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%.2f", min+(float64(i)+0.5)*width),
			Value: float64(c),
		}
	}

	graph := chart.BarChart{
		Title:    title,
		Height:   512,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		// An explicit range keeps a single-bar chart renderable; a collapsed
		// value range would otherwise have zero delta.
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
		Bars: bars,
	}

	return renderPNG(path, graph.Render)
}

func binCount(n int) int {
	bins := 1 + int(math.Ceil(math.Log2(float64(n))))
	if bins > 30 {
		bins = 30
	}
	if bins < 1 {
		bins = 1
	}
	return bins
}

// Lines renders one continuous series per named value slice over the row
// index, as a PNG line chart.
func Lines(series map[string][]float64, title, path string) error {
	if len(series) == 0 {
		return ErrNoData
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	chartSeries := make([]chart.Series, 0, len(names))
	for _, name := range names {
		ys := series[name]
		if len(ys) == 0 {
			continue
		}
		xs := make([]float64, len(ys))
		for i := range xs {
			xs[i] = float64(i)
		}
		chartSeries = append(chartSeries, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
		})
	}
	if len(chartSeries) == 0 {
		return ErrNoData
	}

	graph := chart.Chart{
		Title:  title,
		Height: 512,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Series: chartSeries,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(path, graph.Render)
}

func renderPNG(path string, render func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := render(chart.PNG, f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
