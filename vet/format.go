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
	"reflect"
	"runtime"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// filterSymbols strips decorative runes (emoji, pictographs, dingbats) from
// a label when plain display is configured, keeping the text readable.
func filterSymbols(s string, useEmojis bool) string {
	if useEmojis {
		return s
	}

	var sb strings.Builder
	for _, r := range s {
		if isDecorative(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return strings.TrimSpace(sb.String())
}

func isDecorative(r rune) bool {
	switch {
	case r == 0xFE0F || r == 0x200D: // variation selector, zero-width joiner
		return true
	case r >= 0x1F000 && r <= 0x1FAFF: // emoji and pictograph blocks
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case unicode.Is(unicode.So, r):
		return true
	default:
		return false
	}
}

// decoratePass styles a success message for terminal output.
func decoratePass(msg string, useEmojis bool) string {
	return passStyle.Render(filterSymbols(msg, useEmojis))
}

// decorateFail styles a failure message for terminal output.
func decorateFail(msg string, useEmojis bool) string {
	return failStyle.Render(filterSymbols(msg, useEmojis))
}

// funcLabel turns a callable into a readable display string.
func funcLabel(fn interface{}) string {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return "<condition>"
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return "<condition>"
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
