/*
Copyright 2025 sql-parser Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package parser

import (
	"fmt"
	"strings"
)

// ErrorKind discriminates the two error origins
type ErrorKind int

const (
	// KindLexical marks errors produced while tokenizing
	KindLexical ErrorKind = iota
	// KindSyntax marks errors produced by the grammar rules
	KindSyntax
)

// String returns the string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindSyntax:
		return "syntax"
	default:
		return "unknown"
	}
}

// ParseError is a tokenizing or parsing failure. The kind, offending
// token and position are carried explicitly so callers can build
// structured diagnostics instead of matching on message text.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Position Position
	Token    Token  // The offending token, zero value when none applies
	Context  string // The original statement text
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s error at %s: %s", e.Kind, e.Position, e.Message)
}

// FormatError renders the error with the offending source line and a
// column caret, for interactive display
func FormatError(err *ParseError) string {
	var result strings.Builder
	result.WriteString(err.Error())

	lines := strings.Split(err.Context, "\n")
	if err.Position.Line >= 1 && err.Position.Line <= len(lines) {
		line := lines[err.Position.Line-1]
		result.WriteString("\n")
		result.WriteString(line)
		result.WriteString("\n")

		caret := err.Position.Column - 1
		if caret < 0 {
			caret = 0
		}
		if caret > len(line) {
			caret = len(line)
		}
		result.WriteString(strings.Repeat(" ", caret))
		result.WriteString("^")
	}

	return result.String()
}
