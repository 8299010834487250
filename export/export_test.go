package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tablevet/table"
)

func exportFrame(t *testing.T) *table.Frame {
	t.Helper()
	f, err := table.NewFrame(
		table.NewColumn("id", table.TypeInt, 1, 2, 3),
		table.NewColumn("name", table.TypeString, "ada", nil, "grace"),
		table.NewColumn("score", table.TypeFloat, 1.5, 2.25, nil),
	)
	require.NoError(t, err)
	return f
}

func TestWriteUnsupportedExtension(t *testing.T) {
	err := Write(exportFrame(t), filepath.Join(t.TempDir(), "out.xyz"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Write(exportFrame(t), path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"id", "name", "score"}, records[0])
	assert.Equal(t, []string{"1", "ada", "1.5"}, records[1])
	assert.Equal(t, "", records[2][1]) // null renders empty
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, Write(exportFrame(t), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &records))
	require.Len(t, records, 3)
	assert.Equal(t, "ada", records[0]["name"])
	assert.Nil(t, records[1]["name"])
	assert.Equal(t, 1.5, records[0]["score"])
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Write(exportFrame(t), path))

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()

	sheet := book.GetSheetName(0)
	header, err := book.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "id", header)

	name, err := book.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "ada", name)

	empty, err := book.GetCellValue(sheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}

func TestWriteParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.parquet")
	require.NoError(t, Write(exportFrame(t), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
