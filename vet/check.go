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

// Package vet is a chainable inspection wrapper for tabular data. Wrap a
// frame once, interleave non-destructive checks between transformation
// steps, and unwrap the identical frame at the end:
//
//	result := vet.New(frame).
//		Shape().
//		NNulls(true).
//		AssertData(func(f *table.Frame) bool { return f.NumRows() > 0 }).
//		Frame()
//
// Operations never mutate the wrapped frame; they print or render derived
// reports and return the same Check. The first failing operation records a
// sticky error, later operations become no-ops, and Err exposes it.
// Checks are for single-threaded use.
package vet

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tablevet/table"
)

// TransformFunc derives a new frame from the working data before a check
// runs, for exploratory what-if inspection. It must not mutate its input.
type TransformFunc func(*table.Frame) (*table.Frame, error)

// CheckFunc derives a reportable value from the resolved data.
type CheckFunc func(*table.Frame) (Result, error)

// Check wraps a frame with chainable inspection operations.
type Check struct {
	frame   *table.Frame
	opts    Options
	out     io.Writer
	started time.Time
	err     error
}

// CheckOption configures a Check at construction.
type CheckOption func(*Check)

// WithOutput directs report output to w instead of standard output.
func WithOutput(w io.Writer) CheckOption {
	return func(c *Check) { c.out = w }
}

// WithOptions starts the Check from the given display options.
func WithOptions(opts Options) CheckOption {
	return func(c *Check) { c.opts = opts }
}

// New wraps a frame for inspection.
func New(frame *table.Frame, opts ...CheckOption) *Check {
	c := &Check{
		frame: frame,
		opts:  DefaultOptions(),
		out:   os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Frame returns the wrapped frame, untouched by any operation.
func (c *Check) Frame() *table.Frame {
	return c.frame
}

// Err returns the first error recorded by an operation, if any.
func (c *Check) Err() error {
	return c.err
}

// Options returns the current display options.
func (c *Check) Options() Options {
	return c.opts
}

// fail records the first error; later operations no-op.
func (c *Check) fail(err error) *Check {
	if c.err == nil {
		c.err = err
	}
	return c
}

// reportConfig carries the per-operation modifiers.
type reportConfig struct {
	subset    []string
	transform TransformFunc
	name      string
	nameSet   bool
}

// ReportOption modifies a single inspection operation.
type ReportOption func(*reportConfig)

// WithSubset narrows the operation to the named columns.
func WithSubset(cols ...string) ReportOption {
	return func(cfg *reportConfig) { cfg.subset = cols }
}

// WithTransform applies fn to the (possibly narrowed) data before the check.
func WithTransform(fn TransformFunc) ReportOption {
	return func(cfg *reportConfig) { cfg.transform = fn }
}

// WithName overrides the operation's default report label.
func WithName(name string) ReportOption {
	return func(cfg *reportConfig) {
		cfg.name = name
		cfg.nameSet = true
	}
}

func newReportConfig(opts []ReportOption) reportConfig {
	var cfg reportConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// label returns the user-set name, or the fallback.
func (cfg reportConfig) label(fallback string) string {
	if cfg.nameSet {
		return cfg.name
	}
	return fallback
}

// resolve narrows the working frame to the configured subset and applies
// the configured transform. It never mutates the wrapped frame.
func (c *Check) resolve(cfg reportConfig) (*table.Frame, error) {
	data := c.frame
	if len(cfg.subset) > 0 {
		narrowed, err := data.Select(cfg.subset...)
		if err != nil {
			return nil, err
		}
		data = narrowed
	}
	if cfg.transform != nil {
		derived, err := cfg.transform(data)
		if err != nil {
			return nil, fmt.Errorf("transform failed: %w", err)
		}
		data = derived
	}
	return data, nil
}

// report resolves the data, runs the check and renders its result under the
// label. A nil check reports the resolved data itself.
func (c *Check) report(defaultName string, check CheckFunc, opts []ReportOption) *Check {
	if c.err != nil {
		return c
	}
	cfg := newReportConfig(opts)

	data, err := c.resolve(cfg)
	if err != nil {
		return c.fail(err)
	}

	result := TableResult(data)
	if check != nil {
		result, err = check(data)
		if err != nil {
			return c.fail(err)
		}
	}

	c.render(cfg.label(defaultName), result)
	return c
}

// render writes a tagged result under its label, applying display options.
func (c *Check) render(name string, result Result) {
	label := filterSymbols(name, c.opts.UseEmojis)
	pad := strings.Repeat(" ", c.opts.Indent)

	switch result.Kind {
	case KindScalar:
		c.writeLine(pad, label, formatScalar(result.Scalar, c.opts.Precision))

	case KindList:
		c.writeLine(pad, label, formatList(result.List, c.opts.Precision))

	case KindTable:
		fmt.Fprintln(c.out)
		if label != "" {
			fmt.Fprintf(c.out, "%s%s\n", pad, label)
		}
		fmt.Fprint(c.out, table.Render(result.Table, table.RenderOptions{
			Precision: c.opts.Precision,
			MaxRows:   c.opts.TableMaxRows,
			Plain:     c.opts.PlainTables,
			Indent:    c.opts.Indent,
		}))
	}
}

func (c *Check) writeLine(pad, label, value string) {
	if label == "" {
		fmt.Fprintf(c.out, "%s%s\n", pad, value)
		return
	}
	fmt.Fprintf(c.out, "%s%s: %s\n", pad, label, value)
}
