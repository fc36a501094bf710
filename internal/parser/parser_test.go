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
	"strings"
	"testing"
)

func mustParse(t *testing.T, query string) Statement {
	t.Helper()

	stmt, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", query, err)
	}
	if stmt == nil {
		t.Fatalf("Parse(%q) returned nil statement", query)
	}
	return stmt
}

func mustParseError(t *testing.T, query string) *ParseError {
	t.Helper()

	stmt, err := Parse(query)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, expected error; got %s", query, stmt.String())
	}

	parseErr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("Parse(%q) error is %T, expected *ParseError", query, err)
	}
	return parseErr
}

func TestParser_SelectStar(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM users;")

	selectStmt, ok := stmt.(*SelectStatement)
	if !ok {
		t.Fatalf("statement is %T, expected *SelectStatement", stmt)
	}

	if len(selectStmt.Columns) != 1 {
		t.Fatalf("expected 1 column, got %d", len(selectStmt.Columns))
	}

	ident, ok := selectStmt.Columns[0].(*Identifier)
	if !ok {
		t.Fatalf("column is %T, expected *Identifier", selectStmt.Columns[0])
	}
	if ident.Value != "*" {
		t.Errorf("column value wrong. expected=%q, got=%q", "*", ident.Value)
	}

	if selectStmt.TableName.Value != "users" {
		t.Errorf("table name wrong. expected=%q, got=%q", "users", selectStmt.TableName.Value)
	}
	if selectStmt.Where != nil {
		t.Errorf("expected no WHERE clause, got %s", selectStmt.Where.String())
	}
	if len(selectStmt.OrderBy) != 0 {
		t.Errorf("expected no ORDER BY clause, got %d expressions", len(selectStmt.OrderBy))
	}
}

func TestParser_SelectColumns(t *testing.T) {
	stmt := mustParse(t, "SELECT id, name, age + 1 FROM users;")

	selectStmt := stmt.(*SelectStatement)

	if len(selectStmt.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(selectStmt.Columns))
	}

	expected := []string{"id", "name", "(age + 1)"}
	for i, want := range expected {
		if got := selectStmt.Columns[i].String(); got != want {
			t.Errorf("columns[%d] wrong. expected=%q, got=%q", i, want, got)
		}
	}
}

func TestParser_OperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"10 - 3 - 2", "((10 - 3) - 2)"},
		{"100 / 10 / 5", "((100 / 10) / 5)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a = 1 AND b = 2", "((a = 1) AND (b = 2))"},
		{"a = 1 OR b = 2 AND c = 3", "((a = 1) OR ((b = 2) AND (c = 3)))"},
		{"NOT a = 1", "((NOT a) = 1)"},
		{"NOT (a = 1)", "(NOT (a = 1))"},
		{"-1 + 2", "((-1) + 2)"},
		{"a > 1 + 2", "(a > (1 + 2))"},
		{"a >= b AND c <= d", "((a >= b) AND (c <= d))"},
		{"a != b OR NOT c", "((a != b) OR (NOT c))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt := mustParse(t, "SELECT "+tt.input+" FROM t;")
			selectStmt := stmt.(*SelectStatement)

			if len(selectStmt.Columns) != 1 {
				t.Fatalf("expected 1 column, got %d", len(selectStmt.Columns))
			}
			if got := selectStmt.Columns[0].String(); got != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, got)
			}
		})
	}
}

func TestParser_WhereClause(t *testing.T) {
	stmt := mustParse(t, "SELECT name FROM users WHERE age > 18 AND active = TRUE;")

	selectStmt := stmt.(*SelectStatement)
	if selectStmt.Where == nil {
		t.Fatal("expected WHERE clause")
	}

	expected := "((age > 18) AND (active = TRUE))"
	if got := selectStmt.Where.String(); got != expected {
		t.Errorf("WHERE wrong. expected=%q, got=%q", expected, got)
	}
}

func TestParser_OrderBy(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM users ORDER BY age DESC, name ASC, id;")

	selectStmt := stmt.(*SelectStatement)
	if len(selectStmt.OrderBy) != 3 {
		t.Fatalf("expected 3 ORDER BY expressions, got %d", len(selectStmt.OrderBy))
	}

	// DESC wraps the expression in a direction node
	desc, ok := selectStmt.OrderBy[0].(*PrefixExpression)
	if !ok {
		t.Fatalf("OrderBy[0] is %T, expected *PrefixExpression", selectStmt.OrderBy[0])
	}
	if desc.Operator != OpDesc {
		t.Errorf("OrderBy[0] operator wrong. expected=%q, got=%q", OpDesc, desc.Operator)
	}
	if desc.Right.String() != "age" {
		t.Errorf("OrderBy[0] expression wrong. expected=%q, got=%q", "age", desc.Right.String())
	}

	asc, ok := selectStmt.OrderBy[1].(*PrefixExpression)
	if !ok {
		t.Fatalf("OrderBy[1] is %T, expected *PrefixExpression", selectStmt.OrderBy[1])
	}
	if asc.Operator != OpAsc {
		t.Errorf("OrderBy[1] operator wrong. expected=%q, got=%q", OpAsc, asc.Operator)
	}

	// Without a direction keyword the bare expression is kept
	if _, ok := selectStmt.OrderBy[2].(*Identifier); !ok {
		t.Fatalf("OrderBy[2] is %T, expected *Identifier", selectStmt.OrderBy[2])
	}
}

func TestParser_CreateTable(t *testing.T) {
	input := `CREATE TABLE users (
		id INT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		age INT CHECK(age > 0),
		active BOOL
	);`

	stmt := mustParse(t, input)

	createStmt, ok := stmt.(*CreateTableStatement)
	if !ok {
		t.Fatalf("statement is %T, expected *CreateTableStatement", stmt)
	}

	if createStmt.TableName.Value != "users" {
		t.Errorf("table name wrong. expected=%q, got=%q", "users", createStmt.TableName.Value)
	}
	if len(createStmt.Columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(createStmt.Columns))
	}

	tests := []struct {
		name       string
		kind       TypeKind
		length     uint64
		typeString string
	}{
		{"id", TypeInt, 0, "INT"},
		{"name", TypeVarchar, 255, "VARCHAR(255)"},
		{"age", TypeInt, 0, "INT"},
		{"active", TypeBool, 0, "BOOL"},
	}

	for i, tt := range tests {
		col := createStmt.Columns[i]
		if col.Name.Value != tt.name {
			t.Errorf("columns[%d] name wrong. expected=%q, got=%q", i, tt.name, col.Name.Value)
		}
		if col.Type.Kind != tt.kind {
			t.Errorf("columns[%d] kind wrong. expected=%d, got=%d", i, tt.kind, col.Type.Kind)
		}
		if col.Type.Length != tt.length {
			t.Errorf("columns[%d] length wrong. expected=%d, got=%d", i, tt.length, col.Type.Length)
		}
		if col.Type.String() != tt.typeString {
			t.Errorf("columns[%d] type string wrong. expected=%q, got=%q", i, tt.typeString, col.Type.String())
		}
	}

	// Constraint checks
	if _, ok := createStmt.Columns[0].Constraints[0].(*PrimaryKeyConstraint); !ok {
		t.Errorf("columns[0] constraint is %T, expected *PrimaryKeyConstraint", createStmt.Columns[0].Constraints[0])
	}
	if _, ok := createStmt.Columns[1].Constraints[0].(*NotNullConstraint); !ok {
		t.Errorf("columns[1] constraint is %T, expected *NotNullConstraint", createStmt.Columns[1].Constraints[0])
	}

	check, ok := createStmt.Columns[2].Constraints[0].(*CheckConstraint)
	if !ok {
		t.Fatalf("columns[2] constraint is %T, expected *CheckConstraint", createStmt.Columns[2].Constraints[0])
	}
	if check.Expr.String() != "(age > 0)" {
		t.Errorf("CHECK expression wrong. expected=%q, got=%q", "(age > 0)", check.Expr.String())
	}
}

func TestParser_ConstraintsKeepSourceOrder(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE t (id INT NOT NULL PRIMARY KEY CHECK(id > 0));")

	createStmt := stmt.(*CreateTableStatement)
	constraints := createStmt.Columns[0].Constraints
	if len(constraints) != 3 {
		t.Fatalf("expected 3 constraints, got %d", len(constraints))
	}

	expected := []string{"NOT NULL", "PRIMARY KEY", "CHECK ((id > 0))"}
	for i, want := range expected {
		if got := constraints[i].String(); got != want {
			t.Errorf("constraints[%d] wrong. expected=%q, got=%q", i, want, got)
		}
	}
}

func TestParser_DuplicateConstraintsAccepted(t *testing.T) {
	// The grammar does not validate constraint semantics; repeats pass
	stmt := mustParse(t, "CREATE TABLE t (id INT NOT NULL NOT NULL);")

	createStmt := stmt.(*CreateTableStatement)
	if got := len(createStmt.Columns[0].Constraints); got != 2 {
		t.Fatalf("expected 2 constraints, got %d", got)
	}
}

func TestParser_PseudoDecimalLiterals(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM t WHERE price = 1.5;")

	selectStmt := stmt.(*SelectStatement)
	infix := selectStmt.Where.(*InfixExpression)

	lit, ok := infix.Right.(*IntegerLiteral)
	if !ok {
		t.Fatalf("right operand is %T, expected *IntegerLiteral", infix.Right)
	}
	// "1.5" combines as 1*10+5
	if lit.Value != 15 {
		t.Errorf("value wrong. expected=15, got=%d", lit.Value)
	}
}

func TestParser_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"missing FROM", "SELECT a, b;", "expected FROM or comma, got ';'"},
		{"missing table name", "SELECT * FROM ;", "expected table name, got ';'"},
		{"missing semicolon", "SELECT * FROM t", "unexpected end of input"},
		{"empty input", "", "unexpected end of input"},
		{"not a statement", "DROP TABLE t;", "expected SELECT or CREATE, got 'DROP'"},
		{"varchar missing paren", "CREATE TABLE t (name VARCHAR);", "expected '(' after VARCHAR, got ')'"},
		{"varchar missing length", "CREATE TABLE t (name VARCHAR());", "expected number for VARCHAR length, got ')'"},
		{"bad column type", "CREATE TABLE t (id TEXT);", "expected column type (INT, BOOL, or VARCHAR), got 'TEXT'"},
		{"primary without key", "CREATE TABLE t (id INT PRIMARY);", "expected KEY after PRIMARY, got ')'"},
		{"not without null", "CREATE TABLE t (id INT NOT);", "expected NULL after NOT, got ')'"},
		{"unclosed group", "SELECT (a + b FROM t;", "expected closing parenthesis, got FROM"},
		{"operator in prefix position", "SELECT * FROM t WHERE * > 1;", "unexpected token in prefix position: '*'"},
		{"truncated expression", "SELECT a + FROM t;", "unexpected token in prefix position: FROM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parseErr := mustParseError(t, tt.input)

			if parseErr.Kind != KindSyntax {
				t.Errorf("kind wrong. expected=%s, got=%s", KindSyntax, parseErr.Kind)
			}
			if parseErr.Message != tt.expected {
				t.Errorf("message wrong. expected=%q, got=%q", tt.expected, parseErr.Message)
			}
		})
	}
}

func TestParser_LexicalErrorsKeepTheirMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"unterminated string", "SELECT a FROM t WHERE name = 'x;", "unterminated string literal starting with '"},
		{"bare bang", "SELECT a FROM t WHERE a ! b;", "expected '=' after '!'"},
		{"unexpected character", "SELECT a FROM t WHERE a # b;", "unexpected character: '#'"},
		{"bad decimal", "SELECT a FROM t WHERE a = 1.x;", "expected digit after decimal point, got 'x'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parseErr := mustParseError(t, tt.input)

			if parseErr.Kind != KindLexical {
				t.Errorf("kind wrong. expected=%s, got=%s", KindLexical, parseErr.Kind)
			}
			if parseErr.Message != tt.expected {
				t.Errorf("message wrong. expected=%q, got=%q", tt.expected, parseErr.Message)
			}
		})
	}
}

func TestParser_ErrorPositionsPointAtOffendingToken(t *testing.T) {
	parseErr := mustParseError(t, "SELECT * FROM t WHERE a > ;")

	if parseErr.Position.Line != 1 {
		t.Errorf("line wrong. expected=1, got=%d", parseErr.Position.Line)
	}
	if parseErr.Position.Column != 27 {
		t.Errorf("column wrong. expected=27, got=%d", parseErr.Position.Column)
	}
}

func TestParser_FirstErrorWins(t *testing.T) {
	// Both a lexical error (bare !) and later syntax problems exist;
	// the lexical one is reported because it comes first
	parseErr := mustParseError(t, "SELECT a ! FROM ;")

	if parseErr.Kind != KindLexical {
		t.Errorf("kind wrong. expected=%s, got=%s", KindLexical, parseErr.Kind)
	}
	if parseErr.Message != "expected '=' after '!'" {
		t.Errorf("message wrong. got=%q", parseErr.Message)
	}
}

func TestParser_ExpressionDepthIsBounded(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	for i := 0; i < maxExpressionDepth+10; i++ {
		sb.WriteString("(")
	}
	sb.WriteString("1")
	for i := 0; i < maxExpressionDepth+10; i++ {
		sb.WriteString(")")
	}
	sb.WriteString(" FROM t;")

	parseErr := mustParseError(t, sb.String())

	if !strings.Contains(parseErr.Message, "nesting exceeds") {
		t.Errorf("expected nesting error, got %q", parseErr.Message)
	}
}

func TestParser_Deterministic(t *testing.T) {
	input := "SELECT a, b + 1 FROM t WHERE a > 5 ORDER BY b DESC;"

	first := mustParse(t, input).String()
	for i := 0; i < 3; i++ {
		if got := mustParse(t, input).String(); got != first {
			t.Fatalf("run %d differs: %q vs %q", i, got, first)
		}
	}
}

func TestParser_StatementStrings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"select * from users;",
			"SELECT * FROM users;",
		},
		{
			"SELECT name FROM users WHERE age >= 21 ORDER BY name ASC;",
			"SELECT name FROM users WHERE (age >= 21) ORDER BY name ASC;",
		},
		{
			"create table t (id int primary key, name varchar(64) not null);",
			"CREATE TABLE t (id INT PRIMARY KEY, name VARCHAR(64) NOT NULL);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt := mustParse(t, tt.input)
			if got := stmt.String(); got != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, got)
			}
		})
	}
}
