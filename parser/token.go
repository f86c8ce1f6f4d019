/*
 * pylox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package parser implements the lexer, abstract syntax tree and recursive
descent parser for the Lox language.
*/
package parser

import "fmt"

/*
TokenType identifies the lexical kind of a token.
*/
type TokenType int

/*
The exhaustive set of token kinds produced by the scanner.
*/
const (
	// Single-character tokens
	LeftParen TokenType = iota
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character tokens
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals
	Identifier
	String
	Number

	// Keywords
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var tokenNames = map[TokenType]string{
	LeftParen: "LEFT_PAREN", RightParen: "RIGHT_PAREN",
	LeftBrace: "LEFT_BRACE", RightBrace: "RIGHT_BRACE",
	LeftBracket: "LEFT_BRACKET", RightBracket: "RIGHT_BRACKET",
	Comma: "COMMA", Dot: "DOT", Minus: "MINUS", Plus: "PLUS",
	Semicolon: "SEMICOLON", Slash: "SLASH", Star: "STAR",
	Bang: "BANG", BangEqual: "BANG_EQUAL", Equal: "EQUAL", EqualEqual: "EQUAL_EQUAL",
	Greater: "GREATER", GreaterEqual: "GREATER_EQUAL", Less: "LESS", LessEqual: "LESS_EQUAL",
	Identifier: "IDENTIFIER", String: "STRING", Number: "NUMBER",
	And: "AND", Class: "CLASS", Else: "ELSE", False: "FALSE", Fun: "FUN", For: "FOR",
	If: "IF", Nil: "NIL", Or: "OR", Print: "PRINT", Return: "RETURN", Super: "SUPER",
	This: "THIS", True: "TRUE", Var: "VAR", While: "WHILE", EOF: "EOF",
}

/*
String returns the token kind's name, as used in diagnostics.
*/
func (t TokenType) String() string {
	if n, ok := tokenNames[t]; ok {
		return n
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

/*
Keywords maps reserved identifiers onto their keyword token kind.
*/
var Keywords = map[string]TokenType{
	"and": And, "class": Class, "else": Else, "false": False, "for": For,
	"fun": Fun, "if": If, "nil": Nil, "or": Or, "print": Print, "return": Return,
	"super": Super, "this": This, "true": True, "var": Var, "while": While,
}

/*
Token is an immutable lexical token: a kind, the source slice it came from,
an optional literal payload (for STRING and NUMBER tokens) and the 1-based
source line it appeared on.
*/
type Token struct {
	Kind    TokenType
	Lexeme  string
	Literal interface{} // nil, float64 or string
	Line    int
}

/*
String returns a human readable representation of the token, used in test
failure messages.
*/
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%v %q %v", t.Kind, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%v %q", t.Kind, t.Lexeme)
}
