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
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Position represents a position in the input
type Position struct {
	Offset int // Byte offset, starting at 0
	Line   int // Line number, starting at 1
	Column int // Column number, starting at 1
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// TokenType represents a token type
type TokenType int

const (
	// TokenError represents a lexical error carried as a token
	TokenError TokenType = iota
	// TokenEOF represents the end of input
	TokenEOF
	// TokenIdentifier represents an identifier
	TokenIdentifier
	// TokenKeyword represents a reserved keyword
	TokenKeyword
	// TokenString represents a string literal
	TokenString
	// TokenNumber represents an unsigned number literal
	TokenNumber
	// TokenOperator represents an operator
	TokenOperator
	// TokenPunctuator represents a punctuator
	TokenPunctuator
)

// String returns the string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenError:
		return "ERROR"
	case TokenEOF:
		return "EOF"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenKeyword:
		return "KEYWORD"
	case TokenString:
		return "STRING"
	case TokenNumber:
		return "NUMBER"
	case TokenOperator:
		return "OPERATOR"
	case TokenPunctuator:
		return "PUNCTUATOR"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(tt))
	}
}

// Token represents a token
type Token struct {
	Type     TokenType
	Literal  string
	Position Position
	Value    interface{} // Processed value: uint64 for numbers, unquoted string for strings
	Error    string      // Error message, if Type is TokenError
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Type == TokenError {
		return fmt.Sprintf("%s: %s at %s", t.Type, t.Error, t.Position)
	}
	if t.Type == TokenKeyword {
		return fmt.Sprintf("%s: %s at %s", t.Type, t.Literal, t.Position)
	}
	return fmt.Sprintf("%s: '%s' at %s", t.Type, t.Literal, t.Position)
}

// Keywords is the closed set of reserved words (matched case-insensitively)
var Keywords = map[string]bool{
	"SELECT":  true,
	"CREATE":  true,
	"TABLE":   true,
	"WHERE":   true,
	"ORDER":   true,
	"BY":      true,
	"ASC":     true,
	"DESC":    true,
	"FROM":    true,
	"AND":     true,
	"OR":      true,
	"NOT":     true,
	"TRUE":    true,
	"FALSE":   true,
	"PRIMARY": true,
	"KEY":     true,
	"CHECK":   true,
	"INT":     true,
	"BOOL":    true,
	"VARCHAR": true,
	"NULL":    true,
}

// Lexer turns statement text into a stream of tokens
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	pos          Position
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		pos: Position{
			Line:   1,
			Column: 1,
		},
	}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	// Update position before changing character
	if l.ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else if l.ch != 0 { // Don't increment for first character
		l.pos.Column++
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0 // EOF
		l.position = len(l.input)
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += size
	}

	l.pos.Offset = l.position
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0 // EOF
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// NextToken returns the next token. Once the input is exhausted every
// subsequent call returns the TokenEOF sentinel; callers detect end of
// input through the sentinel, never through stream exhaustion.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	// Save the starting position for the token
	pos := l.pos

	var tok Token
	tok.Position = pos

	switch {
	case l.ch == 0:
		tok.Type = TokenEOF
		tok.Literal = ""

	case l.ch == '\'' || l.ch == '"':
		return l.readStringLiteral(pos)

	case unicode.IsDigit(l.ch):
		return l.readNumber(pos)

	case unicode.IsLetter(l.ch) || l.ch == '_':
		tok.Literal = l.readIdentifier()

		// Check if it's a keyword (case-insensitive)
		if Keywords[strings.ToUpper(tok.Literal)] {
			tok.Type = TokenKeyword
			tok.Literal = strings.ToUpper(tok.Literal)
		} else {
			tok.Type = TokenIdentifier
		}

	case l.ch == '(' || l.ch == ')' || l.ch == ',' || l.ch == ';':
		tok.Type = TokenPunctuator
		tok.Literal = string(l.ch)
		l.readChar()

	case l.ch == '*' || l.ch == '/' || l.ch == '+' || l.ch == '-' || l.ch == '=':
		tok.Type = TokenOperator
		tok.Literal = string(l.ch)
		l.readChar()

	case l.ch == '>' || l.ch == '<':
		first := l.ch
		l.readChar()
		if l.ch == '=' {
			tok.Literal = string(first) + "="
			l.readChar()
		} else {
			tok.Literal = string(first)
		}
		tok.Type = TokenOperator

	case l.ch == '!':
		l.readChar()
		if l.ch == '=' {
			tok.Type = TokenOperator
			tok.Literal = "!="
			l.readChar()
		} else {
			tok.Type = TokenError
			tok.Literal = "!"
			tok.Error = "expected '=' after '!'"
		}

	default:
		// Unrecognized character
		tok.Type = TokenError
		tok.Literal = string(l.ch)
		tok.Error = fmt.Sprintf("unexpected character: %q", l.ch)
		l.readChar()
	}

	return tok
}

// skipWhitespace skips whitespace characters between tokens
func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// readIdentifier reads an identifier or keyword run
func (l *Lexer) readIdentifier() string {
	var result strings.Builder
	result.WriteRune(l.ch) // Include the current character

	// Advance to the next character
	l.readChar()

	// Continue reading valid identifier characters
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' {
		result.WriteRune(l.ch)
		l.readChar()
	}

	return result.String()
}

// readNumber reads an unsigned number literal.
//
// A single decimal point is permitted when followed by at least one
// digit. The value of a decimal literal is whole*10+frac, parsing the
// two digit runs as independent unsigned integers ("1.5" is 15,
// "12.34" is 154). This mirrors the original statement grammar and is
// deliberately not standard decimal interpretation.
func (l *Lexer) readNumber(pos Position) Token {
	tok := Token{Type: TokenNumber, Position: pos}

	var whole strings.Builder
	for unicode.IsDigit(l.ch) {
		whole.WriteRune(l.ch)
		l.readChar()
	}

	if l.ch != '.' {
		value, err := strconv.ParseUint(whole.String(), 10, 64)
		if err != nil {
			return errorToken(pos, whole.String(), fmt.Sprintf("invalid number: %s", whole.String()))
		}
		tok.Literal = whole.String()
		tok.Value = value
		return tok
	}

	// Consume the decimal point; at least one digit must follow
	l.readChar()
	if l.ch == 0 {
		return errorToken(pos, whole.String()+".", "unexpected end of input after decimal point")
	}
	if !unicode.IsDigit(l.ch) {
		return errorToken(pos, whole.String()+".",
			fmt.Sprintf("expected digit after decimal point, got %q", l.ch))
	}

	var frac strings.Builder
	for unicode.IsDigit(l.ch) {
		frac.WriteRune(l.ch)
		l.readChar()
	}

	wholeValue, err := strconv.ParseUint(whole.String(), 10, 64)
	if err != nil {
		return errorToken(pos, whole.String(), fmt.Sprintf("invalid integer part in number: %s", whole.String()))
	}
	fracValue, err := strconv.ParseUint(frac.String(), 10, 64)
	if err != nil {
		return errorToken(pos, frac.String(), fmt.Sprintf("invalid decimal part in number: %s", frac.String()))
	}

	tok.Literal = whole.String() + "." + frac.String()
	tok.Value = wholeValue*10 + fracValue
	return tok
}

// readStringLiteral reads a single- or double-quoted string literal.
// Characters are consumed verbatim up to the matching quote; there is
// no escape processing.
func (l *Lexer) readStringLiteral(pos Position) Token {
	quote := l.ch
	l.readChar() // consume opening quote

	var result strings.Builder
	for l.ch != quote && l.ch != 0 {
		result.WriteRune(l.ch)
		l.readChar()
	}

	if l.ch != quote {
		return errorToken(pos, result.String(),
			fmt.Sprintf("unterminated string literal starting with %c", quote))
	}
	l.readChar() // consume closing quote

	return Token{
		Type:     TokenString,
		Literal:  string(quote) + result.String() + string(quote),
		Position: pos,
		Value:    result.String(),
	}
}

// errorToken builds a TokenError carrying the failure message
func errorToken(pos Position, literal, msg string) Token {
	return Token{
		Type:     TokenError,
		Literal:  literal,
		Position: pos,
		Error:    msg,
	}
}
