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
	"testing"

	"github.com/krotik/pylox/util"
)

func parse(t *testing.T, source string) ([]Stmt, *util.ErrorReporter) {
	t.Helper()
	rep := util.NewErrorReporter()
	tokens := NewScanner(source, rep).ScanTokens()
	stmts := NewParser(tokens, rep).Parse()
	return stmts, rep
}

func TestParseExpressionPrecedence(t *testing.T) {
	stmts, rep := parse(t, "1 + 2 * 3 - -4;")

	if rep.HadError {
		t.Fatalf("unexpected parse error")
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}

	es, ok := stmts[0].(*ExpressionStmt)
	if !ok {
		t.Fatalf("expected *ExpressionStmt, got %T", stmts[0])
	}

	got := Print(es.Expression)
	want := "(- (+ 1 (* 2 3)) (- 4))"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestParseVarAndAssign(t *testing.T) {
	stmts, rep := parse(t, "var a = 1; a = 2;")

	if rep.HadError || len(stmts) != 2 {
		t.Fatalf("unexpected parse result: %v %v", stmts, rep)
	}

	if _, ok := stmts[0].(*VarStmt); !ok {
		t.Errorf("expected *VarStmt, got %T", stmts[0])
	}

	es, ok := stmts[1].(*ExpressionStmt)
	if !ok {
		t.Fatalf("expected *ExpressionStmt, got %T", stmts[1])
	}
	if _, ok := es.Expression.(*Assign); !ok {
		t.Errorf("expected *Assign, got %T", es.Expression)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, rep := parse(t, "1 = 2;")

	if !rep.HadError {
		t.Error("expected a static error for an invalid assignment target")
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, rep := parse(t, "for (var i = 0; i < 10; i = i + 1) print i;")

	if rep.HadError || len(stmts) != 1 {
		t.Fatalf("unexpected parse result: %v %v", stmts, rep)
	}

	block, ok := stmts[0].(*BlockStmt)
	if !ok || len(block.Statements) != 2 {
		t.Fatalf("expected desugared block with 2 statements, got %#v", stmts[0])
	}

	if _, ok := block.Statements[0].(*VarStmt); !ok {
		t.Errorf("expected initializer VarStmt, got %T", block.Statements[0])
	}
	if _, ok := block.Statements[1].(*WhileStmt); !ok {
		t.Errorf("expected desugared WhileStmt, got %T", block.Statements[1])
	}
}

func TestParseClassWithSuperclass(t *testing.T) {
	stmts, rep := parse(t, "class B {}\nclass A < B { init() { return; } }")

	if rep.HadError || len(stmts) != 2 {
		t.Fatalf("unexpected parse result: %v %v", stmts, rep)
	}

	class, ok := stmts[1].(*ClassStmt)
	if !ok {
		t.Fatalf("expected *ClassStmt, got %T", stmts[1])
	}
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "B" {
		t.Errorf("expected superclass B, got %v", class.Superclass)
	}
	if len(class.Methods) != 1 || class.Methods[0].Name.Lexeme != "init" {
		t.Errorf("unexpected methods: %v", class.Methods)
	}
}

func TestParseMissingSemicolonReportsErrorAndRecovers(t *testing.T) {
	stmts, rep := parse(t, "var a = 1\nvar b = 2;")

	if !rep.HadError {
		t.Error("expected a static error for the missing semicolon")
	}
	// Despite the error in the first declaration, synchronize() should let
	// the parser recover and still yield the second one.
	found := false
	for _, s := range stmts {
		if v, ok := s.(*VarStmt); ok && v.Name.Lexeme == "b" {
			found = true
		}
	}
	if !found {
		t.Error("expected parser to recover and parse the second declaration")
	}
}

func TestParseTooManyArguments(t *testing.T) {
	src := "foo("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ");"

	_, rep := parse(t, src)

	if !rep.HadError {
		t.Error("expected a static error for too many call arguments")
	}
}
