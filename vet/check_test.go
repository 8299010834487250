package vet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablevet/table"
)

func newTestCheck(t *testing.T) (*Check, *bytes.Buffer) {
	t.Helper()
	f, err := table.NewFrame(
		table.NewColumn("a", table.TypeInt, 1, 2),
		table.NewColumn("b", table.TypeInt, nil, 2),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	return New(f, WithOutput(&buf)), &buf
}

func TestEveryOperationReturnsTheSameData(t *testing.T) {
	c, _ := newTestCheck(t)
	original := c.Frame()

	result := c.
		Shape().
		NRows().
		NCols().
		Columns().
		DTypes().
		Head(1).
		Tail(1).
		Describe().
		Info().
		MemoryUsage().
		NDups().
		NNulls(true).
		NNulls(false).
		NUnique("a").
		Unique("a").
		ValueCounts("a", 5).
		Evaluate().
		Print("note", 0).
		StartTimer(false).
		PrintTimeElapsed("auto")

	require.NoError(t, result.Err())
	assert.Same(t, c, result)
	assert.Same(t, original, result.Frame())

	// The wrapped data is untouched.
	assert.Equal(t, 2, original.NumRows())
	col, err := original.Column("b")
	require.NoError(t, err)
	assert.True(t, col.Values[0].IsNull)
}

func TestNNullsByColumn(t *testing.T) {
	c, buf := newTestCheck(t)

	require.NoError(t, c.NNulls(true).Err())
	out := buf.String()
	assert.Contains(t, out, "Rows with nulls")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
	assert.Contains(t, out, "1")
}

func TestNNullsAnyRow(t *testing.T) {
	c, buf := newTestCheck(t)

	require.NoError(t, c.NNulls(false).Err())
	assert.Contains(t, buf.String(), "1 out of 2")
}

func TestNNullsByColumnNamedStillRendersTable(t *testing.T) {
	c, buf := newTestCheck(t)

	require.NoError(t, c.NNulls(true, WithName("null audit")).Err())
	out := buf.String()
	assert.Contains(t, out, "null audit")
	assert.Contains(t, out, "column")
	assert.Contains(t, out, "nulls")
}

func TestNNullsSubsetLabel(t *testing.T) {
	c, buf := newTestCheck(t)

	require.NoError(t, c.NNulls(false, WithSubset("b")).Err())
	out := buf.String()
	assert.Contains(t, out, "Rows with nulls in b")
	assert.Contains(t, out, "1 out of 2")
}

func TestNDups(t *testing.T) {
	f, err := table.NewFrame(
		table.NewColumn("a", table.TypeInt, 1, 1, 2),
		table.NewColumn("b", table.TypeInt, 1, 1, 2),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	c := New(f, WithOutput(&buf))

	require.NoError(t, c.NDups().Err())
	assert.Contains(t, buf.String(), "Duplicated rows: 1")
}

func TestSubsetNarrowsComputation(t *testing.T) {
	f, err := table.NewFrame(
		table.NewColumn("a", table.TypeInt, 1, 1, 2),
		table.NewColumn("b", table.TypeInt, 10, 20, 30),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	c := New(f, WithOutput(&buf))

	require.NoError(t, c.NDups(WithSubset("a")).Err())
	out := buf.String()
	assert.Contains(t, out, "Rows with duplication in a")
	assert.Contains(t, out, ": 1")
}

func TestSubsetUnknownColumnPropagates(t *testing.T) {
	c, _ := newTestCheck(t)
	err := c.Shape(WithSubset("nope")).Err()
	assert.ErrorIs(t, err, table.ErrColumnNotFound)
}

func TestTransformAppliesWithoutMutating(t *testing.T) {
	c, buf := newTestCheck(t)

	doubled := func(f *table.Frame) (*table.Frame, error) {
		return f.Head(1), nil
	}
	require.NoError(t, c.NRows(WithTransform(doubled)).Err())
	assert.Contains(t, buf.String(), "Rows: 1")
	assert.Equal(t, 2, c.Frame().NumRows())
}

func TestStickyErrorShortCircuits(t *testing.T) {
	c, buf := newTestCheck(t)

	c.Shape(WithSubset("nope")).NRows().Describe()
	assert.ErrorIs(t, c.Err(), table.ErrColumnNotFound)
	assert.NotContains(t, buf.String(), "Rows")
}

func TestShapeOutput(t *testing.T) {
	c, buf := newTestCheck(t)
	require.NoError(t, c.Shape().Err())
	assert.Contains(t, buf.String(), "(2, 2)")
}

func TestWithNameOverridesLabel(t *testing.T) {
	c, buf := newTestCheck(t)
	require.NoError(t, c.NRows(WithName("row tally")).Err())
	assert.Contains(t, buf.String(), "row tally: 2")
}

func TestEmojiFiltering(t *testing.T) {
	c, buf := newTestCheck(t)

	require.NoError(t, c.SetFormat(map[string]interface{}{"use_emojis": false}).Shape().Err())
	out := buf.String()
	assert.Contains(t, out, "Shape: (2, 2)")
	assert.NotContains(t, out, "📐")
}

func TestIndent(t *testing.T) {
	c, buf := newTestCheck(t)

	require.NoError(t, c.SetFormat(map[string]interface{}{"indent": 4}).NRows().Err())
	assert.True(t, strings.HasPrefix(buf.String(), "    "), "expected indented output, got %q", buf.String())
}

func TestPrecisionAppliesToScalars(t *testing.T) {
	f, err := table.NewFrame(table.NewColumn("x", table.TypeFloat, 1.23456))
	require.NoError(t, err)

	var buf bytes.Buffer
	c := New(f, WithOutput(&buf))
	require.NoError(t, c.SetFormat(map[string]interface{}{"precision": 3}).Head(1).Err())
	assert.Contains(t, buf.String(), "1.235")
}

func TestPrintText(t *testing.T) {
	c, buf := newTestCheck(t)
	require.NoError(t, c.Print("checkpoint alpha", 0).Err())
	assert.Contains(t, buf.String(), "checkpoint alpha")
}

func TestUniqueAndValueCounts(t *testing.T) {
	f, err := table.NewFrame(
		table.NewColumn("tag", table.TypeString, "x", "y", "x"),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	c := New(f, WithOutput(&buf))
	require.NoError(t, c.Unique("tag").ValueCounts("tag", 10).Err())

	out := buf.String()
	assert.Contains(t, out, "Unique values of tag: [x, y]")
	assert.Contains(t, out, "Value counts")
}
