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

// Package load reads tabular files (CSV, Parquet, JSON) into frames.
package load

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"tablevet/table"
)

// FileType represents the type of a data file.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
)

// DetectType determines the file type from the path extension.
func DetectType(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json":
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// Read loads a data file using the reader matching its extension.
func Read(path string) (*table.Frame, error) {
	switch DetectType(path) {
	case FileTypeCSV:
		return ReadCSV(path)
	case FileTypeParquet:
		return ReadParquet(path)
	case FileTypeJSON:
		return ReadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// detectSeparator sniffs the CSV separator from the first line by counting
// common candidates.
func detectSeparator(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return ',', fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ',', nil
	}
	firstLine := scanner.Text()

	separators := map[rune]int{
		',':  strings.Count(firstLine, ","),
		';':  strings.Count(firstLine, ";"),
		'\t': strings.Count(firstLine, "\t"),
		'|':  strings.Count(firstLine, "|"),
	}

	detected := ','
	maxCount := 0
	for sep, count := range separators {
		if count > maxCount {
			maxCount = count
			detected = sep
		}
	}
	return detected, nil
}

// ReadCSV loads a CSV file with a header row. The separator is sniffed from
// the first line, column types are inferred from the data, and empty cells
// become nulls.
func ReadCSV(path string) (*table.Frame, error) {
	sep, err := detectSeparator(path)
	if err != nil {
		sep = ','
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = sep
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, table.ErrEmptyData
	}

	headers := records[0]
	rows := records[1:]

	cols := make([]table.Column, len(headers))
	for c, name := range headers {
		cells := make([]string, len(rows))
		for r := range rows {
			if c < len(rows[r]) {
				cells[r] = strings.TrimSpace(rows[r][c])
			}
		}
		cols[c] = inferColumn(strings.TrimSpace(name), cells)
	}

	return table.NewFrame(cols...)
}

// inferColumn picks the narrowest type that fits every non-empty cell:
// int, then float, then bool, then string.
func inferColumn(name string, cells []string) table.Column {
	isInt, isFloat, isBool := true, true, true
	nonEmpty := 0
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			isFloat = false
		}
		if _, err := strconv.ParseBool(cell); err != nil {
			isBool = false
		}
	}
	if nonEmpty == 0 {
		isInt, isFloat, isBool = false, false, false
	}

	raws := make([]interface{}, len(cells))
	var dt table.DataType
	switch {
	case isInt:
		dt = table.TypeInt
		for i, cell := range cells {
			if cell != "" {
				n, _ := strconv.ParseInt(cell, 10, 64)
				raws[i] = n
			}
		}
	case isFloat:
		dt = table.TypeFloat
		for i, cell := range cells {
			if cell != "" {
				x, _ := strconv.ParseFloat(cell, 64)
				raws[i] = x
			}
		}
	case isBool:
		dt = table.TypeBool
		for i, cell := range cells {
			if cell != "" {
				b, _ := strconv.ParseBool(cell)
				raws[i] = b
			}
		}
	default:
		dt = table.TypeString
		for i, cell := range cells {
			if cell != "" {
				raws[i] = cell
			}
		}
	}

	return table.NewColumn(name, dt, raws...)
}

// ReadParquet loads a Parquet file into a frame via Arrow.
func ReadParquet(path string) (*table.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	tbl, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer tbl.Release()

	return table.FromArrow(tbl)
}

// ReadJSON loads a JSON file holding an array of flat objects (or a single
// object). Column order is the sorted union of keys; types are inferred the
// same way as for CSV cells.
func ReadJSON(path string) (*table.Frame, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}

	var data []map[string]interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		var single map[string]interface{}
		if err := json.Unmarshal(content, &single); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		data = []map[string]interface{}{single}
	}
	if len(data) == 0 {
		return nil, table.ErrEmptyData
	}

	keySet := make(map[string]bool)
	for _, obj := range data {
		for k := range obj {
			keySet[k] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cols := make([]table.Column, len(keys))
	for c, key := range keys {
		cols[c] = jsonColumn(key, data)
	}
	return table.NewFrame(cols...)
}

func jsonColumn(key string, data []map[string]interface{}) table.Column {
	// JSON numbers decode as float64; narrow to int when all are integral.
	allInt, allNumber, allBool := true, true, true
	for _, obj := range data {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			allBool = false
			if n != float64(int64(n)) {
				allInt = false
			}
		case bool:
			allInt, allNumber = false, false
		default:
			allInt, allNumber, allBool = false, false, false
		}
	}

	raws := make([]interface{}, len(data))
	var dt table.DataType
	switch {
	case allNumber && allInt:
		dt = table.TypeInt
		for i, obj := range data {
			if v, ok := obj[key].(float64); ok {
				raws[i] = int64(v)
			}
		}
	case allNumber:
		dt = table.TypeFloat
		for i, obj := range data {
			if v, ok := obj[key].(float64); ok {
				raws[i] = v
			}
		}
	case allBool:
		dt = table.TypeBool
		for i, obj := range data {
			if v, ok := obj[key].(bool); ok {
				raws[i] = v
			}
		}
	default:
		dt = table.TypeString
		for i, obj := range data {
			if v, ok := obj[key]; ok && v != nil {
				raws[i] = fmt.Sprintf("%v", v)
			}
		}
	}

	return table.NewColumn(key, dt, raws...)
}
