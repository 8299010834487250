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
	"time"
)

// clock is swapped in tests.
var clock = time.Now

// StartTimer records the current instant as the stopwatch start. Calling it
// again resets the stopwatch.
func (c *Check) StartTimer(verbose bool) *Check {
	if c.err != nil {
		return c
	}
	c.started = clock()
	if verbose {
		pad := strings.Repeat(" ", c.opts.Indent)
		fmt.Fprintf(c.out, "%sTimer started at %s\n", pad, c.started.Format(time.RFC3339))
	}
	return c
}

// PrintTimeElapsed reports the time since StartTimer. Units is one of
// "seconds", "minutes", "hours" or "auto" (unknown strings fall back to
// auto). If the timer was never started it reports "timer not started"
// rather than erroring; a cosmetic query must not poison the chain.
func (c *Check) PrintTimeElapsed(units string, opts ...ReportOption) *Check {
	if c.err != nil {
		return c
	}
	cfg := newReportConfig(opts)
	label := filterSymbols(cfg.label("⏱️ Time elapsed"), c.opts.UseEmojis)
	pad := strings.Repeat(" ", c.opts.Indent)

	if c.started.IsZero() {
		fmt.Fprintf(c.out, "%s%s: timer not started\n", pad, label)
		return c
	}

	elapsed := clock().Sub(c.started)
	fmt.Fprintf(c.out, "%s%s: %s\n", pad, label, formatElapsed(elapsed, units))
	return c
}

func formatElapsed(d time.Duration, units string) string {
	seconds := d.Seconds()

	switch strings.ToLower(units) {
	case "seconds":
		return fmt.Sprintf("%.2f seconds", seconds)
	case "minutes":
		return fmt.Sprintf("%.2f minutes", seconds/60)
	case "hours":
		return fmt.Sprintf("%.2f hours", seconds/3600)
	default:
		switch {
		case seconds < 60:
			return fmt.Sprintf("%.2f seconds", seconds)
		case seconds < 3600:
			return fmt.Sprintf("%.2f minutes", seconds/60)
		default:
			return fmt.Sprintf("%.2f hours", seconds/3600)
		}
	}
}
