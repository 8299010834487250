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

	"tablevet/export"
)

// Write exports the resolved data to a file; the encoder is chosen by the
// path suffix (.csv, .parquet, .xls/.xlsx, .json). The chain continues with
// the wrapped frame unchanged.
func (c *Check) Write(path string, verbose bool, opts ...ReportOption) *Check {
	if c.err != nil {
		return c
	}
	cfg := newReportConfig(opts)

	data, err := c.resolve(cfg)
	if err != nil {
		return c.fail(err)
	}
	if err := export.Write(data, path); err != nil {
		return c.fail(err)
	}

	if verbose {
		pad := strings.Repeat(" ", c.opts.Indent)
		msg := filterSymbols(fmt.Sprintf("📦 Wrote file %s", path), c.opts.UseEmojis)
		fmt.Fprintf(c.out, "%s%s\n", pad, msg)
	}
	return c
}
