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
	"testing"
)

func TestASTString_Expressions(t *testing.T) {
	tests := []struct {
		name     string
		node     Expression
		expected string
	}{
		{
			"identifier",
			&Identifier{Value: "name"},
			"name",
		},
		{
			"integer literal",
			&IntegerLiteral{Value: 42},
			"42",
		},
		{
			"string literal",
			&StringLiteral{Value: "hello"},
			"'hello'",
		},
		{
			"boolean literal",
			&BooleanLiteral{Value: true},
			"TRUE",
		},
		{
			"negation",
			&PrefixExpression{Operator: OpMinus, Right: &IntegerLiteral{Value: 5}},
			"(-5)",
		},
		{
			"logical not",
			&PrefixExpression{Operator: OpNot, Right: &Identifier{Value: "active"}},
			"(NOT active)",
		},
		{
			"descending direction renders postfix",
			&PrefixExpression{Operator: OpDesc, Right: &Identifier{Value: "age"}},
			"age DESC",
		},
		{
			"infix",
			&InfixExpression{
				Left:     &Identifier{Value: "a"},
				Operator: "+",
				Right:    &IntegerLiteral{Value: 1},
			},
			"(a + 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, got)
			}
		})
	}
}

func TestASTString_RoundTrip(t *testing.T) {
	// Rendering a parsed statement and parsing the rendering again
	// must reach a fixed point
	tests := []string{
		"SELECT * FROM users;",
		"SELECT id, name FROM users WHERE (age > 18) ORDER BY name ASC, id;",
		"CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(255) NOT NULL, age INT CHECK ((age > 0)));",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			first := mustParse(t, input).String()
			second := mustParse(t, first).String()
			if first != second {
				t.Errorf("round trip not stable:\nfirst=%q\nsecond=%q", first, second)
			}
		})
	}
}

func TestClone_SelectStatementIsolation(t *testing.T) {
	stmt := mustParse(t, "SELECT a, b FROM t WHERE a > 1 ORDER BY b DESC;")
	original := stmt.(*SelectStatement)

	clone := Clone(original).(*SelectStatement)

	if clone.String() != original.String() {
		t.Fatalf("clone differs: %q vs %q", clone.String(), original.String())
	}

	// Mutating the clone must not reach the original
	clone.TableName.Value = "changed"
	clone.Columns[0].(*Identifier).Value = "changed"
	clone.Where.(*InfixExpression).Left.(*Identifier).Value = "changed"
	clone.OrderBy[0].(*PrefixExpression).Right.(*Identifier).Value = "changed"

	if original.TableName.Value != "t" {
		t.Errorf("original table name mutated: %q", original.TableName.Value)
	}
	if original.Columns[0].(*Identifier).Value != "a" {
		t.Errorf("original column mutated: %q", original.Columns[0].(*Identifier).Value)
	}
	if original.Where.(*InfixExpression).Left.(*Identifier).Value != "a" {
		t.Errorf("original WHERE mutated")
	}
	if original.OrderBy[0].(*PrefixExpression).Right.(*Identifier).Value != "b" {
		t.Errorf("original ORDER BY mutated")
	}
}

func TestClone_CreateTableStatementIsolation(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE t (id INT PRIMARY KEY CHECK(id > 0));")
	original := stmt.(*CreateTableStatement)

	clone := Clone(original).(*CreateTableStatement)

	if clone.String() != original.String() {
		t.Fatalf("clone differs: %q vs %q", clone.String(), original.String())
	}

	clone.Columns[0].Name.Value = "changed"
	check := clone.Columns[0].Constraints[1].(*CheckConstraint)
	check.Expr.(*InfixExpression).Left.(*Identifier).Value = "changed"

	if original.Columns[0].Name.Value != "id" {
		t.Errorf("original column name mutated: %q", original.Columns[0].Name.Value)
	}
	originalCheck := original.Columns[0].Constraints[1].(*CheckConstraint)
	if originalCheck.Expr.(*InfixExpression).Left.(*Identifier).Value != "id" {
		t.Errorf("original CHECK expression mutated")
	}
}

func TestClone_Nil(t *testing.T) {
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
	if CloneExpression(nil) != nil {
		t.Error("CloneExpression(nil) should be nil")
	}
}
