package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := NewFrame(
		NewColumn("id", TypeInt, 1, 2, 3, 4),
		NewColumn("name", TypeString, "ada", "grace", nil, "ada"),
		NewColumn("score", TypeFloat, 1.5, nil, 3.25, 4.0),
	)
	require.NoError(t, err)
	return f
}

func TestNewFrameValidation(t *testing.T) {
	_, err := NewFrame()
	assert.ErrorIs(t, err, ErrEmptyData)

	_, err = NewFrame(
		NewColumn("a", TypeInt, 1, 2),
		NewColumn("a", TypeInt, 3, 4),
	)
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = NewFrame(
		NewColumn("a", TypeInt, 1, 2),
		NewColumn("b", TypeInt, 3),
	)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestFrameShape(t *testing.T) {
	f := testFrame(t)
	assert.Equal(t, 4, f.NumRows())
	assert.Equal(t, 3, f.NumCols())
	assert.Equal(t, []string{"id", "name", "score"}, f.ColumnNames())
}

func TestColumnLookup(t *testing.T) {
	f := testFrame(t)

	c, err := f.Column("name")
	require.NoError(t, err)
	assert.Equal(t, TypeString, c.Type)
	assert.True(t, c.Values[2].IsNull)

	_, err = f.Column("missing")
	assert.ErrorIs(t, err, ErrColumnNotFound)

	_, err = f.ColumnAt(7)
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestRow(t *testing.T) {
	f := testFrame(t)

	row, err := f.Row(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), row[0].Raw)
	assert.Equal(t, "ada", row[1].Raw)

	_, err = f.Row(99)
	assert.ErrorIs(t, err, ErrInvalidRow)
}

func TestSelect(t *testing.T) {
	f := testFrame(t)

	sub, err := f.Select("score", "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"score", "id"}, sub.ColumnNames())
	assert.Equal(t, 4, sub.NumRows())

	// Empty selection means the whole frame.
	same, err := f.Select()
	require.NoError(t, err)
	assert.Same(t, f, same)

	_, err = f.Select("nope")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestHeadTail(t *testing.T) {
	f := testFrame(t)

	assert.Equal(t, 2, f.Head(2).NumRows())
	assert.Equal(t, 4, f.Head(10).NumRows())

	tail := f.Tail(2)
	assert.Equal(t, 2, tail.NumRows())
	last, err := tail.Row(1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), last[0].Raw)

	// Derivations never touch the source.
	assert.Equal(t, 4, f.NumRows())
}

func TestValueFormat(t *testing.T) {
	assert.Equal(t, "1.50", NewValue(1.5, TypeFloat).Format(2))
	assert.Equal(t, "7", NewValue(int64(7), TypeInt).Format(2))
	assert.Equal(t, "", NewNullValue(TypeFloat).Format(2))
	assert.Equal(t, "true", NewValue(true, TypeBool).Format(2))
}
