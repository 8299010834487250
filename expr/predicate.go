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

// Package expr implements a small whitelisted condition grammar over tabular
// data: column comparisons joined by AND/OR. It is deliberately not a code
// evaluator; conditions can only reference columns, literals and the fixed
// operator set.
package expr

import (
	"fmt"
	"strconv"
	"strings"

	"tablevet/table"
)

// CompOp is a comparison operator.
type CompOp int

const (
	OpEqual CompOp = iota
	OpNotEqual
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpContains
)

// LogicOp joins clauses.
type LogicOp int

const (
	LogicAND LogicOp = iota
	LogicOR
)

// Clause is a single column comparison. An empty ColumnName with OpContains
// means "search all columns".
type Clause struct {
	ColumnName string
	Operator   CompOp
	Value      string
}

// Predicate is a compiled condition: clauses joined left-to-right by
// logical operators.
type Predicate struct {
	Source   string
	Clauses  []Clause
	LogicOps []LogicOp
}

// Compile parses a condition string against the given column names.
// Unknown columns fail at compile time.
func Compile(condition string, columns []string) (*Predicate, error) {
	if strings.TrimSpace(condition) == "" {
		return nil, fmt.Errorf("empty condition")
	}

	columnSet := make(map[string]bool, len(columns))
	for _, name := range columns {
		columnSet[strings.ToLower(name)] = true
	}

	pred := &Predicate{Source: condition}
	for _, part := range splitByLogicOps(condition) {
		if part.isOperator {
			if strings.ToUpper(part.text) == "AND" {
				pred.LogicOps = append(pred.LogicOps, LogicAND)
			} else {
				pred.LogicOps = append(pred.LogicOps, LogicOR)
			}
			continue
		}
		clause, err := parseClause(part.text, columnSet)
		if err != nil {
			return nil, err
		}
		pred.Clauses = append(pred.Clauses, clause)
	}

	if len(pred.Clauses) == 0 {
		return nil, fmt.Errorf("no comparison in condition %q", condition)
	}
	if len(pred.LogicOps) != len(pred.Clauses)-1 {
		return nil, fmt.Errorf("mismatched clauses and operators in %q", condition)
	}
	return pred, nil
}

type conditionPart struct {
	text       string
	isOperator bool
}

// splitByLogicOps splits the condition by word-boundary AND/OR while
// preserving the operators.
func splitByLogicOps(condition string) []conditionPart {
	parts := make([]conditionPart, 0)
	current := ""
	i := 0

	flush := func() {
		if strings.TrimSpace(current) != "" {
			parts = append(parts, conditionPart{text: strings.TrimSpace(current)})
			current = ""
		}
	}

	for i < len(condition) {
		if word, n := matchKeyword(condition, i, "AND"); word {
			flush()
			parts = append(parts, conditionPart{text: "AND", isOperator: true})
			i += n
			continue
		}
		if word, n := matchKeyword(condition, i, "OR"); word {
			flush()
			parts = append(parts, conditionPart{text: "OR", isOperator: true})
			i += n
			continue
		}
		current += string(condition[i])
		i++
	}
	flush()
	return parts
}

// matchKeyword reports whether the keyword occurs at i on word boundaries.
func matchKeyword(s string, i int, kw string) (bool, int) {
	n := len(kw)
	if i+n > len(s) || !strings.EqualFold(s[i:i+n], kw) {
		return false, 0
	}
	if i > 0 && !isSpace(s[i-1]) {
		return false, 0
	}
	if i+n < len(s) && !isSpace(s[i+n]) {
		return false, 0
	}
	return true, n
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// comparison operators, longest symbols first so >= matches before =.
var operators = []struct {
	op     CompOp
	symbol string
}{
	{OpGreaterEqual, ">="},
	{OpLessEqual, "<="},
	{OpNotEqual, "!="},
	{OpEqual, "="},
	{OpGreater, ">"},
	{OpLess, "<"},
	{OpContains, "~"},
}

func parseClause(s string, columnSet map[string]bool) (Clause, error) {
	s = strings.TrimSpace(s)

	for _, opInfo := range operators {
		idx := strings.Index(s, opInfo.symbol)
		if idx <= 0 {
			continue
		}

		columnName := strings.TrimSpace(s[:idx])
		value := strings.Trim(strings.TrimSpace(s[idx+len(opInfo.symbol):]), "\"'")

		if !columnSet[strings.ToLower(columnName)] {
			return Clause{}, fmt.Errorf("unknown column: %s", columnName)
		}
		return Clause{ColumnName: columnName, Operator: opInfo.op, Value: value}, nil
	}

	// A bare term is a contains-anywhere search.
	return Clause{Operator: OpContains, Value: s}, nil
}

// EvalRow evaluates the predicate against one row.
func (p *Predicate) EvalRow(row []table.Value, names []string) bool {
	if len(p.Clauses) == 0 {
		return true
	}

	result := evalClause(p.Clauses[0], row, names)
	for i, op := range p.LogicOps {
		next := evalClause(p.Clauses[i+1], row, names)
		switch op {
		case LogicAND:
			result = result && next
		case LogicOR:
			result = result || next
		}
	}
	return result
}

// EvalFrame reports whether any row of the frame satisfies the predicate.
// An empty frame satisfies nothing.
func (p *Predicate) EvalFrame(f *table.Frame) bool {
	names := f.ColumnNames()
	for i := 0; i < f.NumRows(); i++ {
		row, err := f.Row(i)
		if err != nil {
			return false
		}
		if p.EvalRow(row, names) {
			return true
		}
	}
	return false
}

func evalClause(clause Clause, row []table.Value, names []string) bool {
	// Search across all columns.
	if clause.ColumnName == "" && clause.Operator == OpContains {
		term := strings.ToLower(clause.Value)
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell.Format(-1)), term) {
				return true
			}
		}
		return false
	}

	colIdx := -1
	for i, name := range names {
		if strings.EqualFold(name, clause.ColumnName) {
			colIdx = i
			break
		}
	}
	if colIdx < 0 || colIdx >= len(row) {
		return false
	}

	cell := row[colIdx]
	if cell.IsNull {
		// Null cells never satisfy a comparison.
		return false
	}
	cellStr := cell.Format(-1)

	switch clause.Operator {
	case OpEqual:
		return strings.EqualFold(cellStr, clause.Value)
	case OpNotEqual:
		return !strings.EqualFold(cellStr, clause.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(cellStr), strings.ToLower(clause.Value))
	default:
		return compareOrdered(cell, cellStr, clause.Value, clause.Operator)
	}
}

// compareOrdered compares numerically when both sides are numeric, falling
// back to case-insensitive lexicographic comparison.
func compareOrdered(cell table.Value, cellStr, compareValue string, op CompOp) bool {
	lhs, lok := cell.AsFloat()
	if !lok {
		lhs, lok = parseFloat(cellStr)
	}
	rhs, rok := parseFloat(compareValue)

	if lok && rok {
		switch op {
		case OpGreater:
			return lhs > rhs
		case OpLess:
			return lhs < rhs
		case OpGreaterEqual:
			return lhs >= rhs
		case OpLessEqual:
			return lhs <= rhs
		}
		return false
	}

	cmp := strings.Compare(strings.ToLower(cellStr), strings.ToLower(compareValue))
	switch op {
	case OpGreater:
		return cmp > 0
	case OpLess:
		return cmp < 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpLessEqual:
		return cmp <= 0
	}
	return false
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}
