/*
 * pylox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package resolver

import (
	"testing"

	"github.com/krotik/pylox/parser"
	"github.com/krotik/pylox/util"
)

func resolve(t *testing.T, source string) (map[parser.Expr]int, *util.ErrorReporter) {
	t.Helper()
	rep := util.NewErrorReporter()
	tokens := parser.NewScanner(source, rep).ScanTokens()
	stmts := parser.NewParser(tokens, rep).Parse()
	locals := New(rep).Resolve(stmts)
	return locals, rep
}

func TestResolveSelfReferenceInInitializer(t *testing.T) {
	_, rep := resolve(t, "var a = 1; { var a = a; }")

	if !rep.HadError {
		t.Error("expected an error for reading a local in its own initializer")
	}
}

func TestResolveRedeclarationInSameScope(t *testing.T) {
	_, rep := resolve(t, "{ var a = 1; var a = 2; }")

	if !rep.HadError {
		t.Error("expected an error for redeclaring a name in the same scope")
	}
}

func TestResolveTopLevelReturn(t *testing.T) {
	_, rep := resolve(t, "return 1;")

	if !rep.HadError {
		t.Error("expected an error for a top-level return")
	}
}

func TestResolveInitializerReturningValue(t *testing.T) {
	_, rep := resolve(t, "class A { init() { return 1; } }")

	if !rep.HadError {
		t.Error("expected an error for an initializer returning a value")
	}
}

func TestResolveThisOutsideClass(t *testing.T) {
	_, rep := resolve(t, "print this;")

	if !rep.HadError {
		t.Error("expected an error for 'this' outside a class")
	}
}

func TestResolveSuperOutsideSubclass(t *testing.T) {
	_, rep := resolve(t, "class A { foo() { return super.bar(); } }")

	if !rep.HadError {
		t.Error("expected an error for 'super' in a class with no superclass")
	}
}

func TestResolveClassInheritingFromItself(t *testing.T) {
	_, rep := resolve(t, "class A < A {}")

	if !rep.HadError {
		t.Error("expected an error for a class inheriting from itself")
	}
}

func TestResolveLocalDistances(t *testing.T) {
	rep := util.NewErrorReporter()
	tokens := parser.NewScanner("var a = 1; { var b = 2; { print a; print b; } }", rep).ScanTokens()
	stmts := parser.NewParser(tokens, rep).Parse()
	locals := New(rep).Resolve(stmts)

	if rep.HadError {
		t.Fatalf("unexpected resolve error")
	}

	outerBlock := stmts[1].(*parser.BlockStmt)
	innerBlock := outerBlock.Statements[1].(*parser.BlockStmt)

	printA := innerBlock.Statements[0].(*parser.PrintStmt).Expression
	printB := innerBlock.Statements[1].(*parser.PrintStmt).Expression

	if _, ok := locals[printA]; ok {
		t.Errorf("expected 'a' to resolve as a global (absent from locals), got distance %v", locals[printA])
	}

	if d, ok := locals[printB]; !ok || d != 1 {
		t.Errorf("expected 'b' to resolve at distance 1, got %v (ok=%v)", d, ok)
	}
}
