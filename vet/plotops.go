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

package vet

import (
	"fmt"

	"tablevet/plot"
	"tablevet/table"
)

// Hist renders a histogram PNG of the first numeric column of the resolved
// data. The default title is "Distribution" for a single-column subset and
// "Distributions" otherwise.
func (c *Check) Hist(path string, opts ...ReportOption) *Check {
	if c.err != nil {
		return c
	}
	cfg := newReportConfig(opts)

	data, err := c.resolve(cfg)
	if err != nil {
		return c.fail(err)
	}

	numeric := data.NumericColumnNames()
	if len(numeric) == 0 {
		return c.fail(fmt.Errorf("%w: no numeric columns to plot", table.ErrTypeMismatch))
	}

	defaultTitle := "Distributions"
	if len(cfg.subset) == 1 {
		defaultTitle = "Distribution"
	}
	title := filterSymbols(cfg.label(defaultTitle), c.opts.UseEmojis)

	values, err := data.Float64s(numeric[0])
	if err != nil {
		return c.fail(err)
	}
	if err := plot.Histogram(values, title, path); err != nil {
		return c.fail(err)
	}
	return c
}

// Plot renders a line-chart PNG of all numeric columns of the resolved
// data over the row index, titled with the report label.
func (c *Check) Plot(path string, opts ...ReportOption) *Check {
	if c.err != nil {
		return c
	}
	cfg := newReportConfig(opts)

	data, err := c.resolve(cfg)
	if err != nil {
		return c.fail(err)
	}

	series := make(map[string][]float64)
	for _, name := range data.NumericColumnNames() {
		values, err := data.Float64s(name)
		if err != nil {
			return c.fail(err)
		}
		series[name] = values
	}

	title := filterSymbols(cfg.label(""), c.opts.UseEmojis)
	if err := plot.Lines(series, title, path); err != nil {
		return c.fail(err)
	}
	return c
}
