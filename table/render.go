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

package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderOptions controls frame rendering.
type RenderOptions struct {
	// Precision is the number of decimals for float cells.
	Precision int

	// MaxRows caps the number of rendered rows; 0 means no cap. When rows
	// are elided a footer states how many were shown.
	MaxRows int

	// Plain disables styling (no bold header, ASCII divider). Used when
	// decorative output is turned off.
	Plain bool

	// Indent is the number of leading spaces on every line.
	Indent int
}

// Render formats a frame as an aligned text table.
func Render(f *Frame, opts RenderOptions) string {
	if f == nil || f.NumCols() == 0 {
		return ""
	}

	total := f.NumRows()
	shown := f
	if opts.MaxRows > 0 && total > opts.MaxRows {
		shown = f.Head(opts.MaxRows)
	}

	headers := f.ColumnNames()
	rows := make([][]string, shown.NumRows())
	for i := range rows {
		row := make([]string, len(shown.cols))
		for c := range shown.cols {
			row[c] = shown.cols[c].Values[i].Format(opts.Precision)
		}
		rows[i] = row
	}

	// Column widths from headers and cells.
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	if opts.Plain {
		headerStyle = cellStyle
	}

	pad := strings.Repeat(" ", opts.Indent)
	var sb strings.Builder

	writeRow := func(cells []string, style lipgloss.Style) {
		sb.WriteString(pad)
		for i, cell := range cells {
			sb.WriteString(style.Width(widths[i] + 2).Render(cell))
			if i < len(cells)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers, headerStyle)

	totalWidth := len(headers) - 1
	for _, w := range widths {
		totalWidth += w + 2
	}
	sb.WriteString(pad)
	sb.WriteString(strings.Repeat("-", totalWidth))
	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row, cellStyle)
	}

	if shown.NumRows() < total {
		sb.WriteString(pad)
		sb.WriteString(fmt.Sprintf("... showing %d of %d rows\n", shown.NumRows(), total))
	}

	return sb.String()
}
