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

package vet

import (
	"errors"
	"fmt"

	"tablevet/expr"
	"tablevet/table"
)

// ErrConditionType is recorded when an assertion condition has an
// unsupported type.
var ErrConditionType = errors.New("unsupported condition type")

// AssertionError is the data-quality error recorded when an assertion
// fails and raising is enabled.
type AssertionError struct {
	// Message is the human-readable failure message.
	Message string
	// Condition is the textual representation of the failed condition.
	Condition string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Condition)
}

// assertConfig carries the assertion modifiers.
type assertConfig struct {
	subset      []string
	passMessage string
	failMessage string
	raiseOnFail bool
	verbose     bool
	raiseAs     func(message, condition string) error
}

// AssertOption modifies an AssertData call.
type AssertOption func(*assertConfig)

// AssertSubset narrows the assertion to the named columns.
func AssertSubset(cols ...string) AssertOption {
	return func(cfg *assertConfig) { cfg.subset = cols }
}

// PassMessage overrides the message printed on success in verbose mode.
func PassMessage(msg string) AssertOption {
	return func(cfg *assertConfig) { cfg.passMessage = msg }
}

// FailMessage overrides the message used on failure.
func FailMessage(msg string) AssertOption {
	return func(cfg *assertConfig) { cfg.failMessage = msg }
}

// WithoutRaise prints the decorated fail message instead of recording an
// error when the assertion fails.
func WithoutRaise() AssertOption {
	return func(cfg *assertConfig) { cfg.raiseOnFail = false }
}

// Verbose prints the decorated pass message when the assertion holds.
func Verbose() AssertOption {
	return func(cfg *assertConfig) { cfg.verbose = true }
}

// RaiseAs substitutes the error recorded on failure. The builder receives
// the fail message and the condition text. Without it the chain records an
// *AssertionError.
func RaiseAs(build func(message, condition string) error) AssertOption {
	return func(cfg *assertConfig) { cfg.raiseAs = build }
}

// AssertData evaluates a condition over the (possibly subset-narrowed)
// data. The condition is either a predicate func — func(*table.Frame) bool
// or func(*table.Frame) (bool, error) — or a textual expression in the
// constrained grammar of package expr ("age > 18 AND name ~ ada"); textual
// conditions hold when any row satisfies them. Free-form code is
// deliberately not evaluated.
//
// On failure, the default is to record an *AssertionError on the chain;
// RaiseAs substitutes the error kind, and WithoutRaise prints the decorated
// fail message instead of recording anything. The wrapped frame is returned
// unchanged either way.
func (c *Check) AssertData(condition interface{}, opts ...AssertOption) *Check {
	if c.err != nil {
		return c
	}

	cfg := assertConfig{
		passMessage: "✔️ Assertion passed",
		failMessage: "ㄨ Assertion failed",
		raiseOnFail: true,
		raiseAs: func(message, condition string) error {
			return &AssertionError{Message: message, Condition: condition}
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	data := c.frame
	if len(cfg.subset) > 0 {
		narrowed, err := data.Select(cfg.subset...)
		if err != nil {
			return c.fail(err)
		}
		data = narrowed
	}

	result, conditionStr, err := evalCondition(condition, data)
	if err != nil {
		return c.fail(err)
	}

	if !result {
		if cfg.raiseOnFail {
			return c.fail(cfg.raiseAs(cfg.failMessage, conditionStr))
		}
		fmt.Fprintf(c.out, "%s: %s\n", decorateFail(cfg.failMessage, c.opts.UseEmojis), conditionStr)
		return c
	}

	if cfg.verbose {
		fmt.Fprintf(c.out, "%s: %s\n", decoratePass(cfg.passMessage, c.opts.UseEmojis), conditionStr)
	}
	return c
}

func evalCondition(condition interface{}, data *table.Frame) (bool, string, error) {
	switch cond := condition.(type) {
	case func(*table.Frame) bool:
		return cond(data), funcLabel(cond), nil

	case func(*table.Frame) (bool, error):
		result, err := cond(data)
		if err != nil {
			return false, funcLabel(cond), fmt.Errorf("condition failed: %w", err)
		}
		return result, funcLabel(cond), nil

	case string:
		pred, err := expr.Compile(cond, data.ColumnNames())
		if err != nil {
			return false, cond, fmt.Errorf("invalid condition %q: %w", cond, err)
		}
		return pred.EvalFrame(data), cond, nil

	default:
		return false, "", fmt.Errorf("%w: %T", ErrConditionType, condition)
	}
}
