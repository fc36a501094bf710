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

// Clone creates a deep copy of a Statement. Parsed trees are immutable
// by convention, but embedders that cache statements across calls can
// use Clone to guarantee isolation.
func Clone(stmt Statement) Statement {
	if stmt == nil {
		return nil
	}

	switch s := stmt.(type) {
	case *SelectStatement:
		return cloneSelectStatement(s)
	case *CreateTableStatement:
		return cloneCreateTableStatement(s)
	default:
		// No other statement forms exist; return the original rather
		// than nil so callers never lose a statement
		return stmt
	}
}

// CloneExpression creates a deep copy of an Expression
func CloneExpression(expr Expression) Expression {
	if expr == nil {
		return nil
	}

	switch e := expr.(type) {
	case *Identifier:
		clone := *e
		return &clone
	case *IntegerLiteral:
		clone := *e
		return &clone
	case *StringLiteral:
		clone := *e
		return &clone
	case *BooleanLiteral:
		clone := *e
		return &clone
	case *PrefixExpression:
		return &PrefixExpression{
			Token:    e.Token,
			Operator: e.Operator,
			Right:    CloneExpression(e.Right),
		}
	case *InfixExpression:
		return &InfixExpression{
			Token:    e.Token,
			Left:     CloneExpression(e.Left),
			Operator: e.Operator,
			Right:    CloneExpression(e.Right),
		}
	default:
		return expr
	}
}

func cloneSelectStatement(stmt *SelectStatement) *SelectStatement {
	clone := &SelectStatement{Token: stmt.Token}

	if stmt.Columns != nil {
		clone.Columns = make([]Expression, len(stmt.Columns))
		for i, col := range stmt.Columns {
			clone.Columns[i] = CloneExpression(col)
		}
	}

	if stmt.TableName != nil {
		name := *stmt.TableName
		clone.TableName = &name
	}

	clone.Where = CloneExpression(stmt.Where)

	if stmt.OrderBy != nil {
		clone.OrderBy = make([]Expression, len(stmt.OrderBy))
		for i, expr := range stmt.OrderBy {
			clone.OrderBy[i] = CloneExpression(expr)
		}
	}

	return clone
}

func cloneCreateTableStatement(stmt *CreateTableStatement) *CreateTableStatement {
	clone := &CreateTableStatement{Token: stmt.Token}

	if stmt.TableName != nil {
		name := *stmt.TableName
		clone.TableName = &name
	}

	if stmt.Columns != nil {
		clone.Columns = make([]ColumnDefinition, len(stmt.Columns))
		for i, col := range stmt.Columns {
			clone.Columns[i] = cloneColumnDefinition(col)
		}
	}

	return clone
}

func cloneColumnDefinition(col ColumnDefinition) ColumnDefinition {
	clone := ColumnDefinition{Type: col.Type}

	if col.Name != nil {
		name := *col.Name
		clone.Name = &name
	}

	if col.Constraints != nil {
		clone.Constraints = make([]ColumnConstraint, len(col.Constraints))
		for i, constraint := range col.Constraints {
			clone.Constraints[i] = cloneConstraint(constraint)
		}
	}

	return clone
}

func cloneConstraint(constraint ColumnConstraint) ColumnConstraint {
	switch c := constraint.(type) {
	case *PrimaryKeyConstraint:
		clone := *c
		return &clone
	case *NotNullConstraint:
		clone := *c
		return &clone
	case *CheckConstraint:
		return &CheckConstraint{
			Token: c.Token,
			Expr:  CloneExpression(c.Expr),
		}
	default:
		return constraint
	}
}
