package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullCounts(t *testing.T) {
	f := MustNewFrame(
		NewColumn("a", TypeInt, 1, 2),
		NewColumn("b", TypeInt, nil, 2),
	)

	nulls := f.NullCounts()
	require.Equal(t, []string{"column", "nulls"}, nulls.ColumnNames())

	counts := map[string]int64{}
	for i := 0; i < nulls.NumRows(); i++ {
		row, err := nulls.Row(i)
		require.NoError(t, err)
		counts[row[0].Raw.(string)] = row[1].Raw.(int64)
	}
	assert.Equal(t, map[string]int64{"a": 0, "b": 1}, counts)
}

func TestRowsWithAnyNull(t *testing.T) {
	f := MustNewFrame(
		NewColumn("a", TypeInt, 1, 2),
		NewColumn("b", TypeInt, nil, 2),
	)
	assert.Equal(t, 1, f.RowsWithAnyNull())
}

func TestDuplicateRows(t *testing.T) {
	f := MustNewFrame(
		NewColumn("a", TypeInt, 1, 1, 2),
		NewColumn("b", TypeInt, 1, 1, 2),
	)

	n, err := f.DuplicateRows()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Keyed by a subset.
	g := MustNewFrame(
		NewColumn("a", TypeInt, 1, 1, 2),
		NewColumn("b", TypeInt, 10, 20, 30),
	)
	n, err = g.DuplicateRows("a")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = g.DuplicateRows("nope")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestUniqueAndNUnique(t *testing.T) {
	f := MustNewFrame(
		NewColumn("tag", TypeString, "x", "y", "x", nil),
	)

	values, err := f.Unique("tag")
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, "x", values[0].Raw)
	assert.Equal(t, "y", values[1].Raw)
	assert.True(t, values[2].IsNull)

	n, err := f.NUnique("tag")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestValueCounts(t *testing.T) {
	f := MustNewFrame(
		NewColumn("tag", TypeString, "x", "y", "x", "z", "y", "x"),
	)

	vc, err := f.ValueCounts("tag")
	require.NoError(t, err)
	require.Equal(t, []string{"tag", "count"}, vc.ColumnNames())
	require.Equal(t, 3, vc.NumRows())

	first, err := vc.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "x", first[0].Raw)
	assert.Equal(t, int64(3), first[1].Raw)

	last, err := vc.Row(2)
	require.NoError(t, err)
	assert.Equal(t, "z", last[0].Raw)
	assert.Equal(t, int64(1), last[1].Raw)
}

func TestDescribe(t *testing.T) {
	f := MustNewFrame(
		NewColumn("x", TypeFloat, 1.0, 2.0, 3.0, 4.0),
		NewColumn("label", TypeString, "a", "b", "c", "d"),
	)

	d, err := f.Describe()
	require.NoError(t, err)
	assert.Equal(t, []string{"stat", "x"}, d.ColumnNames())
	assert.Equal(t, len(describeStats), d.NumRows())

	stat, err := d.Column("stat")
	require.NoError(t, err)
	x, err := d.Column("x")
	require.NoError(t, err)

	byName := map[string]float64{}
	for i := range stat.Values {
		if !x.Values[i].IsNull {
			byName[stat.Values[i].Raw.(string)] = x.Values[i].Raw.(float64)
		}
	}
	assert.Equal(t, 4.0, byName["count"])
	assert.InDelta(t, 2.5, byName["mean"], 1e-9)
	assert.Equal(t, 1.0, byName["min"])
	assert.Equal(t, 4.0, byName["max"])
	assert.InDelta(t, 2.5, byName["50%"], 1e-9)

	// Frames without numeric columns cannot be described.
	s := MustNewFrame(NewColumn("label", TypeString, "a"))
	_, err = s.Describe()
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestDTypesAndMemoryUsage(t *testing.T) {
	f := MustNewFrame(
		NewColumn("id", TypeInt, 1, 2),
		NewColumn("name", TypeString, "ab", "cdef"),
	)

	dt := f.DTypes()
	row, err := dt.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "id", row[0].Raw)
	assert.Equal(t, "Int", row[1].Raw)

	mu := f.MemoryUsage()
	sizes := map[string]int64{}
	for i := 0; i < mu.NumRows(); i++ {
		r, err := mu.Row(i)
		require.NoError(t, err)
		sizes[r[0].Raw.(string)] = r[1].Raw.(int64)
	}
	assert.Equal(t, int64(16), sizes["id"])
	assert.Equal(t, int64(6), sizes["name"])
}

func TestFloat64s(t *testing.T) {
	f := MustNewFrame(
		NewColumn("x", TypeInt, 1, nil, 3),
		NewColumn("label", TypeString, "a", "b", "c"),
	)

	xs, err := f.Float64s("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, xs)

	_, err = f.Float64s("label")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNumericColumnNames(t *testing.T) {
	f := testFrame(t)
	assert.Equal(t, []string{"id", "score"}, f.NumericColumnNames())
}
