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
)

// Precedence levels for operators
const (
	_ int = iota
	LOWEST
	LOGICOR     // OR
	LOGICAND    // AND
	EQUALS      // =, !=
	LESSGREATER // >, <, >=, <=
	SUM         // +, -
	PRODUCT     // *, /
	PREFIX      // -X, +X, NOT X
)

// precedences maps operators to their precedence
var precedences = map[string]int{
	"OR":  LOGICOR,
	"AND": LOGICAND,
	"=":   EQUALS,
	"!=":  EQUALS,
	"<":   LESSGREATER,
	">":   LESSGREATER,
	"<=":  LESSGREATER,
	">=":  LESSGREATER,
	"+":   SUM,
	"-":   SUM,
	"*":   PRODUCT,
	"/":   PRODUCT,
}

// maxExpressionDepth bounds expression nesting so adversarial input
// fails with an error instead of exhausting the call stack
const maxExpressionDepth = 200

// Parser consumes the token stream one token of lookahead at a time
// and assembles a Statement. It aborts on the first error; no recovery,
// no partial result.
type Parser struct {
	lexer *Lexer
	query string // Original statement text, kept for error context

	curToken  Token
	peekToken Token

	err   *ParseError // First error encountered; nothing is recorded after it
	depth int         // Current expression nesting depth

	// Map of functions for parsing prefix expressions
	prefixParseFns map[TokenType]prefixParseFn
	// Map of functions for parsing infix expressions
	infixParseFns map[TokenType]infixParseFn
}

// Function type for parsing prefix expressions
type prefixParseFn func() Expression

// Function type for parsing infix expressions
type infixParseFn func(Expression) Expression

// NewParser creates a new parser from a lexer
func NewParser(lexer *Lexer) *Parser {
	p := &Parser{
		lexer: lexer,
		query: lexer.input,
	}

	// Initialize prefix parse functions
	p.prefixParseFns = make(map[TokenType]prefixParseFn)
	p.registerPrefix(TokenIdentifier, p.parseIdentifier)
	p.registerPrefix(TokenNumber, p.parseNumberLiteral)
	p.registerPrefix(TokenString, p.parseStringLiteral)
	p.registerPrefix(TokenKeyword, p.parseKeywordExpression)
	p.registerPrefix(TokenOperator, p.parsePrefixExpression)
	p.registerPrefix(TokenPunctuator, p.parseGroupedExpression)

	// Initialize infix parse functions
	p.infixParseFns = make(map[TokenType]infixParseFn)
	p.registerInfix(TokenOperator, p.parseInfixExpression)
	p.registerInfix(TokenKeyword, p.parseInfixKeyword)

	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Parse tokenizes and parses a single statement. Each call owns a fresh
// lexer and parser, so concurrent calls on independent inputs need no
// coordination.
func Parse(query string) (Statement, error) {
	p := NewParser(NewLexer(query))
	return p.ParseStatement()
}

// Register a prefix parse function
func (p *Parser) registerPrefix(tokenType TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// Register an infix parse function
func (p *Parser) registerInfix(tokenType TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// addError records a syntax error at the current token. Only the first
// error is kept.
func (p *Parser) addError(msg string) {
	if p.err != nil {
		return
	}
	p.err = &ParseError{
		Kind:     KindSyntax,
		Message:  msg,
		Position: p.curToken.Position,
		Token:    p.curToken,
		Context:  p.query,
	}
}

// peekError records a syntax error at the next token
func (p *Parser) peekError(msg string) {
	if p.err != nil {
		return
	}
	p.err = &ParseError{
		Kind:     KindSyntax,
		Message:  msg,
		Position: p.peekToken.Position,
		Token:    p.peekToken,
		Context:  p.query,
	}
}

// lexError converts an error token into a lexical ParseError, keeping
// the lexer's message instead of collapsing it into "no current token"
func (p *Parser) lexError(tok Token) {
	if p.err != nil {
		return
	}
	p.err = &ParseError{
		Kind:     KindLexical,
		Message:  tok.Error,
		Position: tok.Position,
		Token:    tok,
		Context:  p.query,
	}
}

// tokenDesc returns a human-readable description of a token for error
// messages
func tokenDesc(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return "end of input"
	case TokenKeyword:
		return tok.Literal
	default:
		return fmt.Sprintf("'%s'", tok.Literal)
	}
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
	if p.peekToken.Type == TokenError {
		p.lexError(p.peekToken)
	}
}

// curTokenIs checks if the current token is of the given type
func (p *Parser) curTokenIs(t TokenType) bool {
	return p.curToken.Type == t
}

// peekTokenIs checks if the next token is of the given type
func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peekToken.Type == t
}

// curTokenIsKeyword checks if the current token is a specific keyword
func (p *Parser) curTokenIsKeyword(keyword string) bool {
	return p.curTokenIs(TokenKeyword) && p.curToken.Literal == keyword
}

// peekTokenIsKeyword checks if the next token is a specific keyword
func (p *Parser) peekTokenIsKeyword(keyword string) bool {
	return p.peekTokenIs(TokenKeyword) && p.peekToken.Literal == keyword
}

// peekTokenIsOperator checks if the next token is a specific operator
func (p *Parser) peekTokenIsOperator(operator string) bool {
	return p.peekTokenIs(TokenOperator) && p.peekToken.Literal == operator
}

// peekTokenIsPunctuator checks if the next token is a specific punctuator
func (p *Parser) peekTokenIsPunctuator(punctuator string) bool {
	return p.peekTokenIs(TokenPunctuator) && p.peekToken.Literal == punctuator
}

// expectKeyword checks that the next token is the given keyword and
// advances past it
func (p *Parser) expectKeyword(keyword string) bool {
	if p.peekTokenIsKeyword(keyword) {
		p.nextToken()
		return true
	}
	p.peekError(fmt.Sprintf("expected keyword %s, got %s", keyword, tokenDesc(p.peekToken)))
	return false
}

// expectPunctuator checks that the next token is the given punctuator
// and advances past it
func (p *Parser) expectPunctuator(punctuator string) bool {
	if p.peekTokenIsPunctuator(punctuator) {
		p.nextToken()
		return true
	}
	p.peekError(fmt.Sprintf("expected '%s', got %s", punctuator, tokenDesc(p.peekToken)))
	return false
}

// expectSemicolon checks for the mandatory statement terminator
func (p *Parser) expectSemicolon() bool {
	if p.peekTokenIsPunctuator(";") {
		p.nextToken()
		return true
	}
	if p.peekTokenIs(TokenEOF) {
		p.peekError("unexpected end of input")
	} else {
		p.peekError(fmt.Sprintf("expected ';', got %s", tokenDesc(p.peekToken)))
	}
	return false
}

// ParseStatement parses a single SELECT or CREATE TABLE statement,
// including its trailing semicolon, and returns the first error
// encountered anywhere in tokenizing or parsing.
func (p *Parser) ParseStatement() (Statement, error) {
	if p.err != nil {
		return nil, p.err
	}

	var stmt Statement
	switch {
	case p.curTokenIs(TokenEOF):
		p.addError("unexpected end of input")
	case p.curTokenIsKeyword("SELECT"):
		stmt = p.parseSelectStatement()
	case p.curTokenIsKeyword("CREATE"):
		stmt = p.parseCreateTableStatement()
	default:
		p.addError(fmt.Sprintf("expected SELECT or CREATE, got %s", tokenDesc(p.curToken)))
	}

	if p.err != nil {
		return nil, p.err
	}
	return stmt, nil
}

// parseSelectStatement parses a SELECT statement. The current token is
// the SELECT keyword.
func (p *Parser) parseSelectStatement() Statement {
	stmt := &SelectStatement{Token: p.curToken}

	stmt.Columns = p.parseSelectColumns()
	if p.err != nil {
		return nil
	}

	// Mandatory FROM clause with exactly one table name
	if !p.expectKeyword("FROM") {
		return nil
	}
	if !p.peekTokenIs(TokenIdentifier) {
		p.peekError(fmt.Sprintf("expected table name, got %s", tokenDesc(p.peekToken)))
		return nil
	}
	p.nextToken()
	stmt.TableName = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	// Optional WHERE clause
	if p.peekTokenIsKeyword("WHERE") {
		p.nextToken() // consume WHERE
		p.nextToken() // move to the expression
		stmt.Where = p.parseExpression(LOWEST)
		if p.err != nil {
			return nil
		}
	}

	// Optional ORDER BY clause
	if p.peekTokenIsKeyword("ORDER") {
		p.nextToken() // consume ORDER
		if !p.expectKeyword("BY") {
			return nil
		}
		stmt.OrderBy = p.parseOrderByExpressions()
		if p.err != nil {
			return nil
		}
	}

	if !p.expectSemicolon() {
		return nil
	}
	return stmt
}

// parseSelectColumns parses the column list of a SELECT statement:
// either the * shorthand or a non-empty, comma-separated expression
// list terminated by the FROM keyword
func (p *Parser) parseSelectColumns() []Expression {
	// SELECT * shorthand: a single column named "*"
	if p.peekTokenIsOperator("*") {
		p.nextToken()
		return []Expression{&Identifier{Token: p.curToken, Value: "*"}}
	}

	var list []Expression
	for {
		p.nextToken() // move to the first token of the expression
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		list = append(list, expr)

		if p.peekTokenIsPunctuator(",") {
			p.nextToken() // consume comma
			continue
		}
		if p.peekTokenIsKeyword("FROM") {
			return list
		}
		p.peekError(fmt.Sprintf("expected FROM or comma, got %s", tokenDesc(p.peekToken)))
		return nil
	}
}

// parseOrderByExpressions parses a non-empty, comma-separated list of
// ORDER BY expressions terminated by the statement semicolon
func (p *Parser) parseOrderByExpressions() []Expression {
	var list []Expression
	for {
		p.nextToken() // move to the first token of the expression
		expr := p.parseOrderByExpression()
		if expr == nil {
			return nil
		}
		list = append(list, expr)

		if p.peekTokenIsPunctuator(",") {
			p.nextToken() // consume comma
			continue
		}
		if p.peekTokenIsPunctuator(";") || p.peekTokenIs(TokenEOF) {
			return list
		}
		p.peekError(fmt.Sprintf("expected semicolon or comma, got %s", tokenDesc(p.peekToken)))
		return nil
	}
}

// parseOrderByExpression parses one ORDER BY expression. An ASC or DESC
// suffix wraps the expression in a direction node; with no suffix the
// bare expression is kept (ascending is implicit in meaning only).
func (p *Parser) parseOrderByExpression() Expression {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if p.peekTokenIsKeyword("ASC") {
		p.nextToken()
		return &PrefixExpression{Token: p.curToken, Operator: OpAsc, Right: expr}
	}
	if p.peekTokenIsKeyword("DESC") {
		p.nextToken()
		return &PrefixExpression{Token: p.curToken, Operator: OpDesc, Right: expr}
	}
	return expr
}

// parseCreateTableStatement parses a CREATE TABLE statement. The
// current token is the CREATE keyword.
func (p *Parser) parseCreateTableStatement() Statement {
	stmt := &CreateTableStatement{Token: p.curToken}

	if !p.expectKeyword("TABLE") {
		return nil
	}

	if !p.peekTokenIs(TokenIdentifier) {
		p.peekError(fmt.Sprintf("expected table name, got %s", tokenDesc(p.peekToken)))
		return nil
	}
	p.nextToken()
	stmt.TableName = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPunctuator("(") {
		return nil
	}

	stmt.Columns = p.parseColumnDefinitions()
	if p.err != nil {
		return nil
	}

	if !p.expectPunctuator(")") {
		return nil
	}
	if !p.expectSemicolon() {
		return nil
	}
	return stmt
}

// parseColumnDefinitions parses a non-empty, comma-separated list of
// column definitions terminated by the closing parenthesis
func (p *Parser) parseColumnDefinitions() []ColumnDefinition {
	var columns []ColumnDefinition
	for {
		p.nextToken() // move to the column name
		col, ok := p.parseColumnDefinition()
		if !ok {
			return nil
		}
		columns = append(columns, col)

		if p.peekTokenIsPunctuator(",") {
			p.nextToken() // consume comma
			continue
		}
		if p.peekTokenIsPunctuator(")") {
			return columns
		}
		p.peekError(fmt.Sprintf("expected comma or closing parenthesis, got %s", tokenDesc(p.peekToken)))
		return nil
	}
}

// parseColumnDefinition parses a single column definition: name, type,
// then zero or more constraints consumed by single-token dispatch. The
// current token is the column name.
func (p *Parser) parseColumnDefinition() (ColumnDefinition, bool) {
	col := ColumnDefinition{}

	if !p.curTokenIs(TokenIdentifier) {
		p.addError(fmt.Sprintf("expected column name, got %s", tokenDesc(p.curToken)))
		return col, false
	}
	col.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	p.nextToken() // move to the type keyword
	switch {
	case p.curTokenIsKeyword("INT"):
		col.Type = ColumnType{Token: p.curToken, Kind: TypeInt}

	case p.curTokenIsKeyword("BOOL"):
		col.Type = ColumnType{Token: p.curToken, Kind: TypeBool}

	case p.curTokenIsKeyword("VARCHAR"):
		typeToken := p.curToken
		if !p.peekTokenIsPunctuator("(") {
			p.peekError(fmt.Sprintf("expected '(' after VARCHAR, got %s", tokenDesc(p.peekToken)))
			return col, false
		}
		p.nextToken() // consume (
		if !p.peekTokenIs(TokenNumber) {
			p.peekError(fmt.Sprintf("expected number for VARCHAR length, got %s", tokenDesc(p.peekToken)))
			return col, false
		}
		p.nextToken()
		length, _ := p.curToken.Value.(uint64)
		if !p.peekTokenIsPunctuator(")") {
			p.peekError(fmt.Sprintf("expected ')' after VARCHAR length, got %s", tokenDesc(p.peekToken)))
			return col, false
		}
		p.nextToken() // consume )
		col.Type = ColumnType{Token: typeToken, Kind: TypeVarchar, Length: length}

	default:
		p.addError(fmt.Sprintf("expected column type (INT, BOOL, or VARCHAR), got %s", tokenDesc(p.curToken)))
		return col, false
	}

	// Constraint loop: single-token dispatch until a non-constraint
	// token is seen
	for {
		switch {
		case p.peekTokenIsKeyword("PRIMARY"):
			p.nextToken()
			primaryToken := p.curToken
			if !p.peekTokenIsKeyword("KEY") {
				p.peekError(fmt.Sprintf("expected KEY after PRIMARY, got %s", tokenDesc(p.peekToken)))
				return col, false
			}
			p.nextToken()
			col.Constraints = append(col.Constraints, &PrimaryKeyConstraint{Token: primaryToken})

		case p.peekTokenIsKeyword("NOT"):
			p.nextToken()
			notToken := p.curToken
			if !p.peekTokenIsKeyword("NULL") {
				p.peekError(fmt.Sprintf("expected NULL after NOT, got %s", tokenDesc(p.peekToken)))
				return col, false
			}
			p.nextToken()
			col.Constraints = append(col.Constraints, &NotNullConstraint{Token: notToken})

		case p.peekTokenIsKeyword("CHECK"):
			p.nextToken()
			checkToken := p.curToken
			if !p.peekTokenIsPunctuator("(") {
				p.peekError(fmt.Sprintf("expected '(' after CHECK, got %s", tokenDesc(p.peekToken)))
				return col, false
			}
			p.nextToken() // consume (
			p.nextToken() // move to the expression
			expr := p.parseExpression(LOWEST)
			if expr == nil {
				return col, false
			}
			if !p.peekTokenIsPunctuator(")") {
				p.peekError(fmt.Sprintf("expected ')' after CHECK expression, got %s", tokenDesc(p.peekToken)))
				return col, false
			}
			p.nextToken() // consume )
			col.Constraints = append(col.Constraints, &CheckConstraint{Token: checkToken, Expr: expr})

		default:
			return col, true
		}
	}
}

// parseExpression parses an expression with the given minimum
// precedence. The climbing loop keeps consuming infix operators while
// the next token binds more tightly than the threshold; each infix
// application parses its right operand at the operator's own
// precedence, which yields left-associative grouping for equal bands.
func (p *Parser) parseExpression(precedence int) Expression {
	if p.err != nil {
		return nil
	}
	if p.depth >= maxExpressionDepth {
		p.addError(fmt.Sprintf("expression nesting exceeds %d levels", maxExpressionDepth))
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()

	if p.curTokenIs(TokenEOF) {
		p.addError("unexpected end of input")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(fmt.Sprintf("unexpected token in prefix position: %s", tokenDesc(p.curToken)))
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	// Keep parsing infix expressions while the next token binds tighter
	for !p.peekTokenIs(TokenEOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()
		nextExp := infix(leftExp)
		if nextExp == nil {
			return nil
		}
		leftExp = nextExp
	}

	return leftExp
}

// parseIdentifier parses an identifier
func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

// parseNumberLiteral parses an unsigned number literal. The lexer has
// already computed the value, including the whole*10+frac rule for
// pseudo-decimal literals.
func (p *Parser) parseNumberLiteral() Expression {
	lit := &IntegerLiteral{Token: p.curToken}

	if value, ok := p.curToken.Value.(uint64); ok {
		lit.Value = value
		return lit
	}

	value, err := strconv.ParseUint(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError(fmt.Sprintf("could not parse %q as number: %s", p.curToken.Literal, err))
		return nil
	}
	lit.Value = value
	return lit
}

// parseStringLiteral parses a string literal
func (p *Parser) parseStringLiteral() Expression {
	value, ok := p.curToken.Value.(string)
	if !ok {
		// Fall back to stripping the quotes from the raw literal
		literal := p.curToken.Literal
		if len(literal) >= 2 {
			value = literal[1 : len(literal)-1]
		} else {
			value = literal
		}
	}
	return &StringLiteral{Token: p.curToken, Value: value}
}

// parseKeywordExpression parses a keyword in prefix position: the
// TRUE/FALSE literals and the unary NOT operator
func (p *Parser) parseKeywordExpression() Expression {
	switch p.curToken.Literal {
	case "TRUE", "FALSE":
		return &BooleanLiteral{Token: p.curToken, Value: p.curToken.Literal == "TRUE"}

	case "NOT":
		expression := &PrefixExpression{Token: p.curToken, Operator: OpNot}
		p.nextToken()
		expression.Right = p.parseExpression(PREFIX)
		if expression.Right == nil {
			return nil
		}
		return expression

	default:
		p.addError(fmt.Sprintf("unexpected token in prefix position: %s", tokenDesc(p.curToken)))
		return nil
	}
}

// parsePrefixExpression parses the unary - and + operators
func (p *Parser) parsePrefixExpression() Expression {
	if p.curToken.Literal != "-" && p.curToken.Literal != "+" {
		p.addError(fmt.Sprintf("unexpected token in prefix position: %s", tokenDesc(p.curToken)))
		return nil
	}

	expression := &PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseGroupedExpression parses a fully parenthesized sub-expression,
// which resets the precedence threshold inside the parentheses
func (p *Parser) parseGroupedExpression() Expression {
	if p.curToken.Literal != "(" {
		p.addError(fmt.Sprintf("unexpected token in prefix position: %s", tokenDesc(p.curToken)))
		return nil
	}

	p.nextToken() // move past (
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if !p.peekTokenIsPunctuator(")") {
		if p.peekTokenIs(TokenEOF) {
			p.peekError("expected closing parenthesis, got end of input")
		} else {
			p.peekError(fmt.Sprintf("expected closing parenthesis, got %s", tokenDesc(p.peekToken)))
		}
		return nil
	}
	p.nextToken() // consume )
	return expr
}

// parseInfixExpression parses a binary operator expression
func (p *Parser) parseInfixExpression(left Expression) Expression {
	expression := &InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	// Parse the right operand at the operator's own precedence
	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseInfixKeyword parses the AND and OR keyword operators
func (p *Parser) parseInfixKeyword(left Expression) Expression {
	operator := strings.ToUpper(p.curToken.Literal)
	if operator != "AND" && operator != "OR" {
		p.addError(fmt.Sprintf("invalid infix operator: %s", tokenDesc(p.curToken)))
		return nil
	}

	expression := &InfixExpression{
		Token:    p.curToken,
		Operator: operator,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// peekPrecedence returns the precedence of the next token
func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Literal]; ok {
		return prec
	}
	return LOWEST
}

// curPrecedence returns the precedence of the current token
func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Literal]; ok {
		return prec
	}
	return LOWEST
}
