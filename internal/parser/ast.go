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

// Node represents a node in the AST
type Node interface {
	// TokenLiteral returns the literal string of the token
	TokenLiteral() string
	// String returns a string representation of the node
	String() string
	// Position returns the position of the node in the source code
	Position() Position
}

// Statement represents a statement
type Statement interface {
	Node
	// statementNode is a marker method to ensure type safety
	statementNode()
}

// Expression represents an expression
type Expression interface {
	Node
	// expressionNode is a marker method to ensure type safety
	expressionNode()
}

// Identifier represents an identifier. The SELECT * shorthand is
// carried as an Identifier with the value "*".
type Identifier struct {
	Token Token // TokenIdentifier token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }
func (i *Identifier) Position() Position   { return i.Token.Position }

// IntegerLiteral represents an unsigned number literal
type IntegerLiteral struct {
	Token Token // TokenNumber token
	Value uint64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return fmt.Sprintf("%d", il.Value) }
func (il *IntegerLiteral) Position() Position   { return il.Token.Position }

// StringLiteral represents a string literal
type StringLiteral struct {
	Token Token // TokenString token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return "'" + sl.Value + "'" }
func (sl *StringLiteral) Position() Position   { return sl.Token.Position }

// BooleanLiteral represents a TRUE or FALSE literal
type BooleanLiteral struct {
	Token Token // TokenKeyword token (TRUE or FALSE)
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string {
	if bl.Value {
		return "TRUE"
	}
	return "FALSE"
}
func (bl *BooleanLiteral) Position() Position { return bl.Token.Position }

// Unary operator names used by PrefixExpression
const (
	OpMinus = "-"
	OpPlus  = "+"
	OpNot   = "NOT"
	OpAsc   = "ASC"
	OpDesc  = "DESC"
)

// PrefixExpression represents a unary operation (e.g. -5, NOT active).
// ORDER BY directions are carried the same way: the ASC/DESC suffix
// wraps the ordering expression as a unary operator node.
type PrefixExpression struct {
	Token    Token // The operator token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	switch pe.Operator {
	case OpAsc, OpDesc:
		// Direction wrappers render postfix, the way they were written
		return fmt.Sprintf("%s %s", pe.Right.String(), pe.Operator)
	case OpMinus, OpPlus:
		return fmt.Sprintf("(%s%s)", pe.Operator, pe.Right.String())
	default:
		return fmt.Sprintf("(%s %s)", pe.Operator, pe.Right.String())
	}
}
func (pe *PrefixExpression) Position() Position { return pe.Token.Position }

// InfixExpression represents a binary operation (e.g. 5 + 5, a = b)
type InfixExpression struct {
	Token    Token // The operator token, e.g. +
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", ie.Left.String(), ie.Operator, ie.Right.String())
}
func (ie *InfixExpression) Position() Position { return ie.Token.Position }

// SelectStatement represents a SELECT statement
type SelectStatement struct {
	Token     Token // The SELECT token
	Columns   []Expression
	TableName *Identifier
	Where     Expression
	OrderBy   []Expression
}

func (ss *SelectStatement) statementNode()       {}
func (ss *SelectStatement) TokenLiteral() string { return ss.Token.Literal }
func (ss *SelectStatement) Position() Position   { return ss.Token.Position }
func (ss *SelectStatement) String() string {
	var result strings.Builder
	result.WriteString("SELECT ")

	for i, col := range ss.Columns {
		if i > 0 {
			result.WriteString(", ")
		}
		result.WriteString(col.String())
	}

	result.WriteString(" FROM ")
	result.WriteString(ss.TableName.String())

	if ss.Where != nil {
		result.WriteString(" WHERE ")
		result.WriteString(ss.Where.String())
	}

	if len(ss.OrderBy) > 0 {
		result.WriteString(" ORDER BY ")
		for i, expr := range ss.OrderBy {
			if i > 0 {
				result.WriteString(", ")
			}
			result.WriteString(expr.String())
		}
	}

	result.WriteString(";")
	return result.String()
}

// CreateTableStatement represents a CREATE TABLE statement
type CreateTableStatement struct {
	Token     Token // The CREATE token
	TableName *Identifier
	Columns   []ColumnDefinition
}

func (cts *CreateTableStatement) statementNode()       {}
func (cts *CreateTableStatement) TokenLiteral() string { return cts.Token.Literal }
func (cts *CreateTableStatement) Position() Position   { return cts.Token.Position }
func (cts *CreateTableStatement) String() string {
	var result strings.Builder
	result.WriteString("CREATE TABLE ")
	result.WriteString(cts.TableName.String())
	result.WriteString(" (")

	for i, col := range cts.Columns {
		if i > 0 {
			result.WriteString(", ")
		}
		result.WriteString(col.String())
	}

	result.WriteString(");")
	return result.String()
}

// TypeKind enumerates the column types the grammar accepts
type TypeKind int

const (
	// TypeInt is the INT column type
	TypeInt TypeKind = iota
	// TypeBool is the BOOL column type
	TypeBool
	// TypeVarchar is the VARCHAR(n) column type
	TypeVarchar
)

// ColumnType represents a column type in a column definition
type ColumnType struct {
	Token  Token // The type keyword token
	Kind   TypeKind
	Length uint64 // VARCHAR length, unused for other kinds
}

func (ct ColumnType) String() string {
	switch ct.Kind {
	case TypeInt:
		return "INT"
	case TypeBool:
		return "BOOL"
	case TypeVarchar:
		return fmt.Sprintf("VARCHAR(%d)", ct.Length)
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(ct.Kind))
	}
}

// ColumnDefinition represents a column definition in a CREATE TABLE statement
type ColumnDefinition struct {
	Name        *Identifier
	Type        ColumnType
	Constraints []ColumnConstraint
}

func (cd ColumnDefinition) String() string {
	var result strings.Builder
	result.WriteString(cd.Name.String())
	result.WriteString(" ")
	result.WriteString(cd.Type.String())

	for _, constraint := range cd.Constraints {
		result.WriteString(" ")
		result.WriteString(constraint.String())
	}

	return result.String()
}

// ColumnConstraint represents a constraint on a column. Constraints keep
// their source order and the same kind may repeat.
type ColumnConstraint interface {
	String() string
	constraintNode()
}

// PrimaryKeyConstraint represents a PRIMARY KEY constraint
type PrimaryKeyConstraint struct {
	Token Token // The PRIMARY token
}

func (pkc *PrimaryKeyConstraint) constraintNode() {}
func (pkc *PrimaryKeyConstraint) String() string {
	return "PRIMARY KEY"
}

// NotNullConstraint represents a NOT NULL constraint
type NotNullConstraint struct {
	Token Token // The NOT token
}

func (nnc *NotNullConstraint) constraintNode() {}
func (nnc *NotNullConstraint) String() string {
	return "NOT NULL"
}

// CheckConstraint represents a CHECK (expression) constraint
type CheckConstraint struct {
	Token Token // The CHECK token
	Expr  Expression
}

func (cc *CheckConstraint) constraintNode() {}
func (cc *CheckConstraint) String() string {
	return fmt.Sprintf("CHECK (%s)", cc.Expr.String())
}
