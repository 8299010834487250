package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablevet/table"
)

func sampleFrame(t *testing.T) *table.Frame {
	t.Helper()
	f, err := table.NewFrame(
		table.NewColumn("age", table.TypeInt, 30, 17, nil),
		table.NewColumn("name", table.TypeString, "ada lovelace", "grace hopper", "unknown"),
	)
	require.NoError(t, err)
	return f
}

func TestCompileValidation(t *testing.T) {
	columns := []string{"age", "name"}

	_, err := Compile("", columns)
	assert.Error(t, err)

	_, err = Compile("height > 10", columns)
	assert.ErrorContains(t, err, "unknown column")

	p, err := Compile("age > 18 AND name ~ ada", columns)
	require.NoError(t, err)
	assert.Len(t, p.Clauses, 2)
	assert.Equal(t, []LogicOp{LogicAND}, p.LogicOps)
}

func TestEvalFrame(t *testing.T) {
	f := sampleFrame(t)
	columns := f.ColumnNames()

	cases := []struct {
		condition string
		want      bool
	}{
		{"age > 18", true},
		{"age > 99", false},
		{"age >= 30", true},
		{"age < 18", true},
		{"name = unknown", true},
		{"name != unknown", true},
		{"name ~ hopper", true},
		{"age > 18 AND name ~ ada", true},
		{"age > 99 AND name ~ ada", false},
		{"age > 99 OR name ~ hopper", true},
		{"lovelace", true}, // bare term searches all columns
		{"nobody", false},
	}
	for _, tc := range cases {
		p, err := Compile(tc.condition, columns)
		require.NoError(t, err, tc.condition)
		assert.Equal(t, tc.want, p.EvalFrame(f), tc.condition)
	}
}

func TestEvalRowNullNeverMatches(t *testing.T) {
	f := sampleFrame(t)
	p, err := Compile("age > 0", f.ColumnNames())
	require.NoError(t, err)

	row, err := f.Row(2) // age is null here
	require.NoError(t, err)
	assert.False(t, p.EvalRow(row, f.ColumnNames()))
}

func TestEmptyFrameSatisfiesNothing(t *testing.T) {
	f, err := table.NewFrame(table.NewColumn("age", table.TypeInt))
	require.NoError(t, err)

	p, err := Compile("age >= 0", f.ColumnNames())
	require.NoError(t, err)
	assert.False(t, p.EvalFrame(f))
}

func TestStringFallbackComparison(t *testing.T) {
	f, err := table.NewFrame(
		table.NewColumn("name", table.TypeString, "beta"),
	)
	require.NoError(t, err)

	p, err := Compile("name > alpha", f.ColumnNames())
	require.NoError(t, err)
	assert.True(t, p.EvalFrame(f))

	p, err = Compile("name < alpha", f.ColumnNames())
	require.NoError(t, err)
	assert.False(t, p.EvalFrame(f))
}
