/*
 * pylox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"github.com/krotik/pylox/config"
	"github.com/krotik/pylox/util"
)

/*
Parser is a recursive descent, panic-mode-recovering parser. It consumes
the flat token list produced by a Scanner and builds the statement tree for
a whole program.
*/
type Parser struct {
	tokens   []Token
	current  int
	reporter *util.ErrorReporter
}

/*
NewParser creates a new Parser over the given token list.
*/
func NewParser(tokens []Token, reporter *util.ErrorReporter) *Parser {
	return &Parser{tokens, 0, reporter}
}

/*
parseError signals a production that could not be matched. It is always
caught inside the parser itself (by declaration, which then calls
synchronize) - it never escapes to a caller.
*/
type parseError struct {
	err *util.StaticError
}

func (p *parseError) Error() string {
	return p.err.Error()
}

/*
Parse parses the whole token stream into a list of top level statements.
Malformed declarations are skipped (via panic-mode synchronization) so that
a single run can surface more than one static error.
*/
func (p *Parser) Parse() []Stmt {
	var statements []Stmt

	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}

	return statements
}

// Recursive descent grammar, following precedence low to high:
//
//	program     -> declaration* EOF
//	declaration -> classDecl | funDecl | varDecl | statement
//	classDecl   -> "class" IDENTIFIER ( "<" IDENTIFIER )? "{" function* "}"
//	funDecl     -> "fun" function
//	function    -> IDENTIFIER "(" parameters? ")" block
//	varDecl     -> "var" IDENTIFIER ( "[" expression "]" )? ( "=" expression )? ";"
//	statement   -> exprStmt | forStmt | ifStmt | printStmt | returnStmt
//	             | whileStmt | block
//	block       -> "{" declaration* "}"
//	expression  -> assignment
//	assignment  -> ( call "." )? IDENTIFIER ( "[" expression "]" )? "=" assignment
//	             | logic_or
//	logic_or    -> logic_and ( "or" logic_and )*
//	logic_and   -> equality ( "and" equality )*
//	equality    -> comparison ( ( "!=" | "==" ) comparison )*
//	comparison  -> term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        -> factor ( ( "-" | "+" ) factor )*
//	factor      -> unary ( ( "/" | "*" ) unary )*
//	unary       -> ( "!" | "-" ) unary | call
//	call        -> primary ( "(" arguments? ")" | "." IDENTIFIER )*
//	primary     -> "true" | "false" | "nil" | "this" | NUMBER | STRING
//	             | IDENTIFIER ( "[" expression "]" )? | "(" expression ")"
//	             | "super" "." IDENTIFIER

func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	if p.match(Class) {
		return p.classDeclaration()
	}
	if p.match(Fun) {
		return p.function("function")
	}
	if p.match(Var) {
		return p.varDeclaration()
	}

	return p.statement()
}

func (p *Parser) classDeclaration() Stmt {
	name := p.consume(Identifier, "Expect class name.")

	var superclass *Variable
	if p.match(Less) {
		p.consume(Identifier, "Expect superclass name.")
		superclass = &Variable{Name: p.previous()}
	}

	p.consume(LeftBrace, "Expect '{' before class body.")

	var methods []*FunctionStmt
	for !p.check(RightBrace) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}

	p.consume(RightBrace, "Expect '}' after class body.")

	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *FunctionStmt {
	name := p.consume(Identifier, "Expect "+kind+" name.")

	p.consume(LeftParen, "Expect '(' after "+kind+" name.")

	var params []Token
	if !p.check(RightParen) {
		for {
			if len(params) >= config.Int(config.MaxParameters) {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(Identifier, "Expect parameter name."))
			if !p.match(Comma) {
				break
			}
		}
	}
	p.consume(RightParen, "Expect ')' after parameters.")

	p.consume(LeftBrace, "Expect '{' before "+kind+" body.")
	body := p.block()

	return &FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) varDeclaration() Stmt {
	name := p.consume(Identifier, "Expect variable name.")

	var length Expr
	if p.match(LeftBracket) {
		length = p.expression()
		p.consume(RightBracket, "Expect ']' after array length.")
	}

	var initializer Expr
	if p.match(Equal) {
		initializer = p.expression()
	}

	p.consume(Semicolon, "Expect ';' after variable declaration.")

	return &VarStmt{Name: name, Length: length, Initializer: initializer}
}

func (p *Parser) statement() Stmt {
	if p.match(For) {
		return p.forStatement()
	}
	if p.match(If) {
		return p.ifStatement()
	}
	if p.match(Print) {
		return p.printStatement()
	}
	if p.match(Return) {
		return p.returnStatement()
	}
	if p.match(While) {
		return p.whileStatement()
	}
	if p.match(LeftBrace) {
		return &BlockStmt{Statements: p.block()}
	}

	return p.expressionStatement()
}

// forStatement desugars the `for` loop into a block containing an
// initializer followed by a `while` loop with the condition and
// increment folded in.
func (p *Parser) forStatement() Stmt {
	p.consume(LeftParen, "Expect '(' after 'for'.")

	var initializer Stmt
	if p.match(Semicolon) {
		initializer = nil
	} else if p.match(Var) {
		initializer = p.varDeclaration()
	} else {
		initializer = p.expressionStatement()
	}

	var condition Expr
	if !p.check(Semicolon) {
		condition = p.expression()
	}
	p.consume(Semicolon, "Expect ';' after loop condition.")

	var increment Expr
	if !p.check(RightParen) {
		increment = p.expression()
	}
	p.consume(RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &BlockStmt{Statements: []Stmt{body, &ExpressionStmt{Expression: increment}}}
	}

	if condition == nil {
		condition = &Literal{Value: true}
	}
	body = &WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &BlockStmt{Statements: []Stmt{initializer, body}}
	}

	return body
}

func (p *Parser) ifStatement() Stmt {
	p.consume(LeftParen, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(RightParen, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch Stmt
	if p.match(Else) {
		elseBranch = p.statement()
	}

	return &IfStmt{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func (p *Parser) printStatement() Stmt {
	value := p.expression()
	p.consume(Semicolon, "Expect ';' after value.")
	return &PrintStmt{Expression: value}
}

func (p *Parser) returnStatement() Stmt {
	keyword := p.previous()

	var value Expr
	if !p.check(Semicolon) {
		value = p.expression()
	}

	p.consume(Semicolon, "Expect ';' after return value.")

	return &ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStatement() Stmt {
	p.consume(LeftParen, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(RightParen, "Expect ')' after condition.")
	body := p.statement()

	return &WhileStmt{Condition: condition, Body: body}
}

func (p *Parser) block() []Stmt {
	var statements []Stmt

	for !p.check(RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}

	p.consume(RightBrace, "Expect '}' after block.")

	return statements
}

func (p *Parser) expressionStatement() Stmt {
	expr := p.expression()
	p.consume(Semicolon, "Expect ';' after expression.")
	return &ExpressionStmt{Expression: expr}
}

func (p *Parser) expression() Expr {
	return p.assignment()
}

// assignment reinterprets the left hand side of an assignment after the
// fact: a just-parsed Variable becomes an Assign, and a just-parsed Get
// becomes a Set. This avoids needing lookahead to tell an lvalue from an
// rvalue.
func (p *Parser) assignment() Expr {
	expr := p.or()

	if p.match(Equal) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *Variable:
			return &Assign{Name: target.Name, Index: target.Index, Value: value}
		case *Get:
			return &Set{Object: target.Object, Name: target.Name, Value: value}
		}

		p.errorAt(equals, "Invalid assignment target.")
		return expr
	}

	return expr
}

func (p *Parser) or() Expr {
	expr := p.and()

	for p.match(Or) {
		operator := p.previous()
		right := p.and()
		expr = &Logical{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) and() Expr {
	expr := p.equality()

	for p.match(And) {
		operator := p.previous()
		right := p.equality()
		expr = &Logical{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()

	for p.match(BangEqual, EqualEqual) {
		operator := p.previous()
		right := p.comparison()
		expr = &Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()

	for p.match(Greater, GreaterEqual, Less, LessEqual) {
		operator := p.previous()
		right := p.term()
		expr = &Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()

	for p.match(Minus, Plus) {
		operator := p.previous()
		right := p.factor()
		expr = &Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()

	for p.match(Slash, Star) {
		operator := p.previous()
		right := p.unary()
		expr = &Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) unary() Expr {
	if p.match(Bang, Minus) {
		operator := p.previous()
		right := p.unary()
		return &Unary{Operator: operator, Right: right}
	}

	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()

	for {
		if p.match(LeftParen) {
			expr = p.finishCall(expr)
		} else if p.match(Dot) {
			name := p.consume(Identifier, "Expect property name after '.'.")
			expr = &Get{Object: expr, Name: name}
		} else if p.match(LeftBracket) {
			index := p.expression()
			p.consume(RightBracket, "Expect ']' after index.")
			if v, ok := expr.(*Variable); ok && v.Index == nil {
				expr = &Variable{Name: v.Name, Index: index}
			} else {
				p.errorAt(p.previous(), "Invalid index target.")
			}
		} else {
			break
		}
	}

	return expr
}

func (p *Parser) finishCall(callee Expr) Expr {
	var arguments []Expr

	if !p.check(RightParen) {
		for {
			if len(arguments) >= config.Int(config.MaxArguments) {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arguments = append(arguments, p.expression())
			if !p.match(Comma) {
				break
			}
		}
	}

	paren := p.consume(RightParen, "Expect ')' after arguments.")

	return &Call{Callee: callee, Paren: paren, Arguments: arguments}
}

func (p *Parser) primary() Expr {
	if p.match(False) {
		return &Literal{Value: false}
	}
	if p.match(True) {
		return &Literal{Value: true}
	}
	if p.match(Nil) {
		return &Literal{Value: nil}
	}
	if p.match(Number, String) {
		return &Literal{Value: p.previous().Literal}
	}
	if p.match(Super) {
		keyword := p.previous()
		p.consume(Dot, "Expect '.' after 'super'.")
		method := p.consume(Identifier, "Expect superclass method name.")
		return &Super{Keyword: keyword, Method: method}
	}
	if p.match(This) {
		return &This{Keyword: p.previous()}
	}
	if p.match(Identifier) {
		return &Variable{Name: p.previous()}
	}
	if p.match(LeftParen) {
		expr := p.expression()
		p.consume(RightParen, "Expect ')' after expression.")
		return &Grouping{Expression: expr}
	}

	panic(p.error(p.peek(), "Expect expression."))
}

// Token stream helpers

func (p *Parser) match(kinds ...TokenType) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == EOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(kind TokenType, message string) Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(p.error(p.peek(), message))
}

func (p *Parser) error(tok Token, message string) *parseError {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == EOF {
		where = " at end"
	}
	err := p.reporter.ReportStatic(util.NewStaticError(tok.Line, where, message))
	return &parseError{err}
}

func (p *Parser) errorAt(tok Token, message string) {
	p.error(tok, message)
}

// synchronize discards tokens until it reaches a plausible statement
// boundary, so parsing can resume after a syntax error instead of
// aborting the whole file on the first mistake.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		switch p.peek().Kind {
		case Class, Fun, Var, For, If, While, Print, Return:
			return
		}

		if p.advance().Kind == Semicolon {
			return
		}
	}
}
