package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.png")
	values := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5, 10}

	require.NoError(t, Histogram(values, "Distribution", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestHistogramConstantValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, Histogram([]float64{7, 7, 7}, "Distribution", path))
}

func TestHistogramEmpty(t *testing.T) {
	err := Histogram(nil, "Distribution", filepath.Join(t.TempDir(), "hist.png"))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.png")
	series := map[string][]float64{
		"a": {1, 2, 3, 4},
		"b": {4, 3, 2, 1},
	}

	require.NoError(t, Lines(series, "Trends", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestLinesEmpty(t *testing.T) {
	err := Lines(nil, "Trends", filepath.Join(t.TempDir(), "lines.png"))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBinCount(t *testing.T) {
	assert.Equal(t, 1, binCount(1))
	assert.LessOrEqual(t, binCount(1_000_000), 30)
}
