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
	"strings"

	"tablevet/table"
)

// SetFormat applies named display settings, e.g.
// SetFormat(map[string]any{"precision": 3, "use_emojis": false}).
// Unknown names record an error listing the valid options.
func (c *Check) SetFormat(settings map[string]interface{}) *Check {
	if c.err != nil {
		return c
	}
	for name, value := range settings {
		if err := c.opts.Set(name, value); err != nil {
			return c.fail(err)
		}
	}
	return c
}

// ResetFormat restores all display settings to their defaults.
func (c *Check) ResetFormat() *Check {
	if c.err != nil {
		return c
	}
	c.opts = DefaultOptions()
	return c
}

// Describe reports summary statistics of the numeric columns.
func (c *Check) Describe(opts ...ReportOption) *Check {
	return c.report("📏 Distributions", func(f *table.Frame) (Result, error) {
		d, err := f.Describe()
		if err != nil {
			return Result{}, err
		}
		return TableResult(d), nil
	}, opts)
}

// Columns reports the column names.
func (c *Check) Columns(opts ...ReportOption) *Check {
	return c.report("🏛️ Columns", func(f *table.Frame) (Result, error) {
		names := f.ColumnNames()
		values := make([]table.Value, len(names))
		for i, name := range names {
			values[i] = table.NewValue(name, table.TypeString)
		}
		return ListResult(values), nil
	}, opts)
}

// DTypes reports the column data types.
func (c *Check) DTypes(opts ...ReportOption) *Check {
	return c.report("🗂️ Data types", func(f *table.Frame) (Result, error) {
		return TableResult(f.DTypes()), nil
	}, opts)
}

// Evaluate reports the resolved data itself, after any subset and transform.
func (c *Check) Evaluate(opts ...ReportOption) *Check {
	return c.report("", nil, opts)
}

// Head reports the first n rows.
func (c *Check) Head(n int, opts ...ReportOption) *Check {
	return c.report(fmt.Sprintf("⬆️ First %d rows", n), func(f *table.Frame) (Result, error) {
		return TableResult(f.Head(n)), nil
	}, opts)
}

// Tail reports the last n rows.
func (c *Check) Tail(n int, opts ...ReportOption) *Check {
	return c.report(fmt.Sprintf("⬇️ Last %d rows", n), func(f *table.Frame) (Result, error) {
		return TableResult(f.Tail(n)), nil
	}, opts)
}

// Info reports the shape plus a per-column summary of dtype, null count and
// estimated memory.
func (c *Check) Info(opts ...ReportOption) *Check {
	if c.err != nil {
		return c
	}
	cfg := newReportConfig(opts)

	data, err := c.resolve(cfg)
	if err != nil {
		return c.fail(err)
	}

	label := filterSymbols(cfg.label("ℹ️ Info"), c.opts.UseEmojis)
	pad := strings.Repeat(" ", c.opts.Indent)
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "%s%s: %d rows x %d columns\n", pad, label, data.NumRows(), data.NumCols())

	summary, err := infoSummary(data)
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprint(c.out, table.Render(summary, table.RenderOptions{
		Precision: c.opts.Precision,
		Plain:     c.opts.PlainTables,
		Indent:    c.opts.Indent,
	}))
	return c
}

func infoSummary(f *table.Frame) (*table.Frame, error) {
	n := f.NumCols()
	names := make([]interface{}, n)
	types := make([]interface{}, n)
	nullCounts := make([]interface{}, n)
	sizes := make([]interface{}, n)

	nulls, err := f.NullCounts().Column("nulls")
	if err != nil {
		return nil, err
	}
	bytes, err := f.MemoryUsage().Column("bytes")
	if err != nil {
		return nil, err
	}
	for i, col := range f.Columns() {
		names[i] = col.Name
		types[i] = col.Type.String()
		nullCounts[i] = nulls.Values[i].Raw
		sizes[i] = bytes.Values[i].Raw
	}

	return table.NewFrame(
		table.NewColumn("column", table.TypeString, names...),
		table.NewColumn("dtype", table.TypeString, types...),
		table.NewColumn("nulls", table.TypeInt, nullCounts...),
		table.NewColumn("bytes", table.TypeInt, sizes...),
	)
}

// MemoryUsage reports the estimated bytes held per column.
func (c *Check) MemoryUsage(opts ...ReportOption) *Check {
	return c.report("💾 Memory usage", func(f *table.Frame) (Result, error) {
		return TableResult(f.MemoryUsage()), nil
	}, opts)
}

// NCols reports the number of columns.
func (c *Check) NCols(opts ...ReportOption) *Check {
	return c.report("🏛️ Columns", func(f *table.Frame) (Result, error) {
		return ScalarResult(f.NumCols()), nil
	}, opts)
}

// NRows reports the number of rows.
func (c *Check) NRows(opts ...ReportOption) *Check {
	return c.report("☰ Rows", func(f *table.Frame) (Result, error) {
		return ScalarResult(f.NumRows()), nil
	}, opts)
}

// Shape reports "(rows, cols)".
func (c *Check) Shape(opts ...ReportOption) *Check {
	return c.report("📐 Shape", func(f *table.Frame) (Result, error) {
		return ScalarResult(fmt.Sprintf("(%d, %d)", f.NumRows(), f.NumCols())), nil
	}, opts)
}

// NDups reports the count of duplicated rows, keyed by the subset when one
// is given.
func (c *Check) NDups(opts ...ReportOption) *Check {
	cfg := newReportConfig(opts)
	defaultName := "👯 Duplicated rows"
	if len(cfg.subset) > 0 {
		defaultName = fmt.Sprintf("👯 Rows with duplication in %s", strings.Join(cfg.subset, ", "))
	}
	return c.report(defaultName, func(f *table.Frame) (Result, error) {
		// resolve already narrowed to the subset.
		n, err := f.DuplicateRows()
		if err != nil {
			return Result{}, err
		}
		return ScalarResult(n), nil
	}, opts)
}

// NNulls reports null counts: per column when byColumn is true, otherwise
// the count of rows containing any null, inline against the total.
func (c *Check) NNulls(byColumn bool, opts ...ReportOption) *Check {
	if c.err != nil {
		return c
	}
	cfg := newReportConfig(opts)

	data, err := c.resolve(cfg)
	if err != nil {
		return c.fail(err)
	}

	defaultName := "👻 Rows with nulls"
	if len(cfg.subset) > 0 {
		defaultName = fmt.Sprintf("👻 Rows with nulls in %s", strings.Join(cfg.subset, ", "))
	}

	if byColumn {
		c.render(cfg.label(defaultName), TableResult(data.NullCounts()))
		return c
	}

	scalar := fmt.Sprintf("%d out of %d", data.RowsWithAnyNull(), data.NumRows())
	c.render(cfg.label(defaultName), ScalarResult(scalar))
	return c
}

// NUnique reports the number of distinct values in a column.
func (c *Check) NUnique(column string, opts ...ReportOption) *Check {
	return c.report(fmt.Sprintf("🌟 Unique values in %s", column),
		func(f *table.Frame) (Result, error) {
			n, err := f.NUnique(column)
			if err != nil {
				return Result{}, err
			}
			return ScalarResult(n), nil
		}, opts)
}

// Unique reports the distinct values of a column in first-seen order.
func (c *Check) Unique(column string, opts ...ReportOption) *Check {
	return c.report(fmt.Sprintf("🌟 Unique values of %s", column),
		func(f *table.Frame) (Result, error) {
			values, err := f.Unique(column)
			if err != nil {
				return Result{}, err
			}
			return ListResult(values), nil
		}, opts)
}

// ValueCounts reports the most frequent values of a column, capped at
// maxRows when positive.
func (c *Check) ValueCounts(column string, maxRows int, opts ...ReportOption) *Check {
	defaultName := "🧮 Value counts"
	if maxRows > 0 {
		defaultName = fmt.Sprintf("🧮 Value counts, first %d values", maxRows)
	}
	return c.report(defaultName, func(f *table.Frame) (Result, error) {
		vc, err := f.ValueCounts(column)
		if err != nil {
			return Result{}, err
		}
		if maxRows > 0 {
			vc = vc.Head(maxRows)
		}
		return TableResult(vc), nil
	}, opts)
}

// Print reports free text when text is non-empty, otherwise the first
// maxRows rows of the resolved data.
func (c *Check) Print(text string, maxRows int, opts ...ReportOption) *Check {
	if text != "" {
		if c.err != nil {
			return c
		}
		cfg := newReportConfig(opts)
		c.render(cfg.label(""), ScalarResult(text))
		return c
	}
	return c.report("", func(f *table.Frame) (Result, error) {
		if maxRows > 0 {
			f = f.Head(maxRows)
		}
		return TableResult(f), nil
	}, opts)
}
