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

// Package sqlparser parses single SELECT and CREATE TABLE statements
// into an abstract syntax tree. It exposes the tokenizer, the parser
// and the AST node types of the internal parser package as the public
// API of the module.
package sqlparser

import (
	"github.com/sandra449/sql-parser/internal/parser"
)

// Node types of the AST.
type (
	// Node is a node of the AST
	Node = parser.Node
	// Statement is a parsed SELECT or CREATE TABLE statement
	Statement = parser.Statement
	// Expression is an expression node
	Expression = parser.Expression

	// Identifier is a column or table name; the SELECT * shorthand is
	// an Identifier with the value "*"
	Identifier = parser.Identifier
	// IntegerLiteral is an unsigned number literal
	IntegerLiteral = parser.IntegerLiteral
	// StringLiteral is a quoted string literal
	StringLiteral = parser.StringLiteral
	// BooleanLiteral is a TRUE or FALSE literal
	BooleanLiteral = parser.BooleanLiteral
	// PrefixExpression is a unary operation, including the ASC/DESC
	// direction wrappers of ORDER BY expressions
	PrefixExpression = parser.PrefixExpression
	// InfixExpression is a binary operation
	InfixExpression = parser.InfixExpression

	// SelectStatement is a parsed SELECT statement
	SelectStatement = parser.SelectStatement
	// CreateTableStatement is a parsed CREATE TABLE statement
	CreateTableStatement = parser.CreateTableStatement
	// ColumnDefinition is one column of a CREATE TABLE statement
	ColumnDefinition = parser.ColumnDefinition
	// ColumnType is the type of a column definition
	ColumnType = parser.ColumnType
	// ColumnConstraint is a constraint on a column definition
	ColumnConstraint = parser.ColumnConstraint
	// PrimaryKeyConstraint is a PRIMARY KEY constraint
	PrimaryKeyConstraint = parser.PrimaryKeyConstraint
	// NotNullConstraint is a NOT NULL constraint
	NotNullConstraint = parser.NotNullConstraint
	// CheckConstraint is a CHECK (expression) constraint
	CheckConstraint = parser.CheckConstraint
)

// Tokenizer types.
type (
	// Token is one lexical token
	Token = parser.Token
	// TokenType discriminates tokens
	TokenType = parser.TokenType
	// Position is a byte offset plus 1-based line and column
	Position = parser.Position
	// Lexer turns statement text into a stream of tokens
	Lexer = parser.Lexer
)

// Error types.
type (
	// ParseError is a tokenizing or parsing failure with its kind,
	// position and offending token
	ParseError = parser.ParseError
	// ErrorKind discriminates lexical from syntax errors
	ErrorKind = parser.ErrorKind
)

// Token types.
const (
	TokenError      = parser.TokenError
	TokenEOF        = parser.TokenEOF
	TokenIdentifier = parser.TokenIdentifier
	TokenKeyword    = parser.TokenKeyword
	TokenString     = parser.TokenString
	TokenNumber     = parser.TokenNumber
	TokenOperator   = parser.TokenOperator
	TokenPunctuator = parser.TokenPunctuator
)

// Error kinds.
const (
	KindLexical = parser.KindLexical
	KindSyntax  = parser.KindSyntax
)

// Column type kinds.
const (
	TypeInt     = parser.TypeInt
	TypeBool    = parser.TypeBool
	TypeVarchar = parser.TypeVarchar
)

// Parse tokenizes and parses a single statement including its trailing
// semicolon. It returns the first error encountered; on error no
// partial statement is returned. Parse is pure: concurrent calls on
// independent inputs need no coordination.
func Parse(query string) (Statement, error) {
	return parser.Parse(query)
}

// NewLexer creates a tokenizer over the given statement text. Once the
// input is exhausted every subsequent NextToken call returns the
// TokenEOF sentinel.
func NewLexer(input string) *Lexer {
	return parser.NewLexer(input)
}

// Tokenize runs the lexer over the whole input and returns the token
// stream up to and including the EOF sentinel. Error tokens are kept
// in place in the stream.
func Tokenize(input string) []Token {
	lexer := parser.NewLexer(input)

	var tokens []Token
	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == parser.TokenEOF {
			return tokens
		}
	}
}

// Clone creates a deep copy of a parsed statement.
func Clone(stmt Statement) Statement {
	return parser.Clone(stmt)
}

// FormatError renders a ParseError with the offending source line and
// a column caret, for interactive display.
func FormatError(err *ParseError) string {
	return parser.FormatError(err)
}
