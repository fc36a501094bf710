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
package sqlparser

import (
	"testing"
)

func TestParse(t *testing.T) {
	stmt, err := Parse("SELECT id, name FROM users WHERE age > 18;")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	selectStmt, ok := stmt.(*SelectStatement)
	if !ok {
		t.Fatalf("statement is %T, expected *SelectStatement", stmt)
	}
	if selectStmt.TableName.Value != "users" {
		t.Errorf("table name wrong. expected=%q, got=%q", "users", selectStmt.TableName.Value)
	}
}

func TestParse_Error(t *testing.T) {
	stmt, err := Parse("SELECT FROM t;")
	if err == nil {
		t.Fatalf("expected error, got %s", stmt.String())
	}

	parseErr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error is %T, expected *ParseError", err)
	}
	if parseErr.Kind != KindSyntax {
		t.Errorf("kind wrong. expected=%s, got=%s", KindSyntax, parseErr.Kind)
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("SELECT * FROM t;")

	expected := []TokenType{
		TokenKeyword,
		TokenOperator,
		TokenKeyword,
		TokenIdentifier,
		TokenPunctuator,
		TokenEOF,
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, want := range expected {
		if tokens[i].Type != want {
			t.Errorf("tokens[%d] type wrong. expected=%s, got=%s", i, want, tokens[i].Type)
		}
	}
}

func TestTokenize_KeepsErrorTokens(t *testing.T) {
	tokens := Tokenize("a ! b")

	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(tokens))
	}
	if tokens[1].Type != TokenError {
		t.Errorf("tokens[1] type wrong. expected=%s, got=%s", TokenError, tokens[1].Type)
	}
	if tokens[3].Type != TokenEOF {
		t.Errorf("tokens[3] type wrong. expected=%s, got=%s", TokenEOF, tokens[3].Type)
	}
}

func TestClone(t *testing.T) {
	stmt, err := Parse("SELECT a FROM t;")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	clone := Clone(stmt).(*SelectStatement)
	clone.TableName.Value = "changed"

	if stmt.(*SelectStatement).TableName.Value != "t" {
		t.Error("mutating the clone reached the original")
	}
}
