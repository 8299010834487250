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

// Package export writes frames to files. The encoder is chosen purely by
// the path suffix: .csv, .parquet, .xls/.xlsx or .json.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"

	"tablevet/table"
)

// ErrUnsupportedFormat is returned when the path suffix names no encoder.
var ErrUnsupportedFormat = errors.New("unsupported file extension")

// Write encodes the frame to the given path, dispatching on its suffix.
func Write(f *table.Frame, path string) error {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return WriteCSV(f, path)
	case strings.HasSuffix(lower, ".parquet"):
		return WriteParquet(f, path)
	case strings.HasSuffix(lower, ".xls"), strings.HasSuffix(lower, ".xlsx"):
		return WriteExcel(f, path)
	case strings.HasSuffix(lower, ".json"):
		return WriteJSON(f, path)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// WriteCSV exports the frame to a CSV file. Nulls become empty cells.
func WriteCSV(f *table.Frame, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(f.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	cols := f.Columns()
	for i := 0; i < f.NumRows(); i++ {
		row := make([]string, len(cols))
		for c := range cols {
			row[c] = cols[c].Values[i].Format(-1)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteParquet exports the frame to a Parquet file via Arrow.
func WriteParquet(f *table.Frame, path string) error {
	tbl, err := table.ToArrow(f)
	if err != nil {
		return fmt.Errorf("failed to convert frame to arrow: %w", err)
	}
	defer tbl.Release()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(tbl.Schema(), file, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	defer writer.Close()

	if err := writer.WriteTable(tbl, tbl.NumRows()); err != nil {
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	return nil
}

// WriteExcel exports the frame to an xlsx workbook with a header row on
// the default sheet. Null cells are left empty.
func WriteExcel(f *table.Frame, path string) error {
	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)
	for c, name := range f.ColumnNames() {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := book.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	cols := f.Columns()
	for i := 0; i < f.NumRows(); i++ {
		for c := range cols {
			v := cols[c].Values[i]
			if v.IsNull {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := book.SetCellValue(sheet, cell, v.Raw); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteJSON exports the frame as an array of row objects with typed values.
// Null cells become JSON nulls.
func WriteJSON(f *table.Frame, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	names := f.ColumnNames()
	cols := f.Columns()
	records := make([]map[string]interface{}, 0, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		record := make(map[string]interface{}, len(cols))
		for c := range cols {
			record[names[c]] = jsonValue(cols[c].Values[i])
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func jsonValue(v table.Value) interface{} {
	if v.IsNull {
		return nil
	}
	if v.Type == table.TypeTimestamp {
		return v.Raw.(time.Time).Format(time.RFC3339Nano)
	}
	return v.Raw
}
