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
	"fmt"
	"sort"
	"strings"
)

// Options are the cosmetic display settings applied at report time. They
// affect rendering only, never the underlying data. Each Check carries its
// own Options value; there is no process-global state.
type Options struct {
	// UseEmojis controls whether decorative symbols appear in labels and
	// messages. When false they are stripped.
	UseEmojis bool

	// Precision is the number of decimals used to render float values.
	Precision int

	// TableMaxRows caps the rows of any rendered table; 0 disables the cap.
	TableMaxRows int

	// PlainTables disables table styling (bold headers).
	PlainTables bool

	// Indent is the number of leading spaces on report lines.
	Indent int
}

// DefaultOptions returns the settings every new Check starts from.
func DefaultOptions() Options {
	return Options{
		UseEmojis:    true,
		Precision:    2,
		TableMaxRows: 10,
		PlainTables:  false,
		Indent:       0,
	}
}

// Option names accepted by Set, with or without the "vet." prefix.
const (
	optUseEmojis    = "use_emojis"
	optPrecision    = "precision"
	optTableMaxRows = "table_max_rows"
	optPlainTables  = "plain_tables"
	optIndent       = "indent"
)

// OptionNames lists the recognized option names, sorted.
func OptionNames() []string {
	names := []string{optUseEmojis, optPrecision, optTableMaxRows, optPlainTables, optIndent}
	sort.Strings(names)
	return names
}

// Set assigns one named option. Unknown names and wrong value types are
// errors; the unknown-name error lists the valid options.
func (o *Options) Set(name string, value interface{}) error {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "vet.")

	switch key {
	case optUseEmojis:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("option %s expects a bool, got %T", key, value)
		}
		o.UseEmojis = b

	case optPrecision:
		n, ok := intValue(value)
		if !ok || n < 0 {
			return fmt.Errorf("option %s expects a non-negative int, got %v", key, value)
		}
		o.Precision = n

	case optTableMaxRows:
		n, ok := intValue(value)
		if !ok || n < 0 {
			return fmt.Errorf("option %s expects a non-negative int, got %v", key, value)
		}
		o.TableMaxRows = n

	case optPlainTables:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("option %s expects a bool, got %T", key, value)
		}
		o.PlainTables = b

	case optIndent:
		n, ok := intValue(value)
		if !ok || n < 0 {
			return fmt.Errorf("option %s expects a non-negative int, got %v", key, value)
		}
		o.Indent = n

	default:
		return fmt.Errorf("no tablevet option %q; available options: %s",
			name, strings.Join(OptionNames(), ", "))
	}
	return nil
}

func intValue(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}
