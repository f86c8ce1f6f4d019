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
Package resolver performs the static pass between parsing and evaluation:
it walks the statement tree once, maintaining a stack of lexical scopes, and
for every variable reference records how many scopes out the binding lives.
The interpreter uses that distance to jump straight to the right
environment instead of searching the chain by name at every access.

The pass also rejects programs that reference a variable inside its own
initializer, return outside a function, or this/super outside a class -
checks that would otherwise only surface as a confusing runtime failure or
not at all.
*/
package resolver

import (
	"github.com/krotik/pylox/parser"
	"github.com/krotik/pylox/util"
)

/*
functionType tracks what kind of function body is currently being resolved,
so `return` can be validated and `init` can be special-cased.
*/
type functionType int

const (
	noFunction functionType = iota
	inFunction
	inMethod
	inInitializer
)

/*
classType tracks whether a class body is currently being resolved, and
whether it has a superclass, so `this` and `super` can be validated.
*/
type classType int

const (
	noClass classType = iota
	inClass
	inSubclass
)

/*
Resolver walks a parsed program and produces the locals side table consumed
by the interpreter.
*/
type Resolver struct {
	reporter *util.ErrorReporter

	// scopes is a stack of block scopes. Each scope maps a name to whether
	// its initializer has finished resolving yet - false while the name has
	// been declared but not yet defined, true once it has.
	scopes []map[string]bool

	locals map[parser.Expr]int

	currentFunction functionType
	currentClass    classType
}

/*
New creates a new Resolver reporting static errors to reporter.
*/
func New(reporter *util.ErrorReporter) *Resolver {
	return &Resolver{reporter: reporter, locals: make(map[parser.Expr]int)}
}

/*
Resolve runs the pass over a whole program and returns the locals side
table: for every Variable, Assign, This or Super expression that refers to
a binding introduced by a block, function or class body, the number of
scopes between the reference and the scope that declares it. An expression
missing from the table refers to a global.
*/
func (r *Resolver) Resolve(statements []parser.Stmt) map[parser.Expr]int {
	r.resolveStmts(statements)
	return r.locals
}

func (r *Resolver) resolveStmts(statements []parser.Stmt) {
	for _, s := range statements {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt parser.Stmt) {
	switch s := stmt.(type) {

	case *parser.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *parser.VarStmt:
		r.declare(s.Name)
		if s.Length != nil {
			r.resolveExpr(s.Length)
		}
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *parser.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, inFunction)

	case *parser.ClassStmt:
		r.resolveClass(s)

	case *parser.ExpressionStmt:
		r.resolveExpr(s.Expression)

	case *parser.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}

	case *parser.PrintStmt:
		r.resolveExpr(s.Expression)

	case *parser.ReturnStmt:
		if r.currentFunction == noFunction {
			r.reportError(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == inInitializer {
				r.reportError(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *parser.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClass(s *parser.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = inClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.reportError(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = inSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		declType := inMethod
		if method.Name.Lexeme == "init" {
			declType = inInitializer
		}
		r.resolveFunction(method, declType)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *parser.FunctionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr parser.Expr) {
	switch e := expr.(type) {

	case *parser.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.reportError(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)
		if e.Index != nil {
			r.resolveExpr(e.Index)
		}

	case *parser.Assign:
		r.resolveExpr(e.Value)
		if e.Index != nil {
			r.resolveExpr(e.Index)
		}
		r.resolveLocal(e, e.Name.Lexeme)

	case *parser.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *parser.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *parser.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Arguments {
			r.resolveExpr(a)
		}

	case *parser.Get:
		r.resolveExpr(e.Object)

	case *parser.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *parser.Grouping:
		r.resolveExpr(e.Expression)

	case *parser.Unary:
		r.resolveExpr(e.Right)

	case *parser.This:
		if r.currentClass == noClass {
			r.reportError(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, "this")

	case *parser.Super:
		if r.currentClass == noClass {
			r.reportError(e.Keyword, "Can't use 'super' outside of a class.")
		} else if r.currentClass != inSubclass {
			r.reportError(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, "super")

	case *parser.Literal:
		// Nothing to resolve

	default:
		panic("resolver: unhandled expression type")
	}
}

func (r *Resolver) resolveLocal(expr parser.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any scope - treat as global, left absent from the table.
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name parser.Token) {
	if len(r.scopes) == 0 {
		return
	}

	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reportError(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name parser.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) reportError(tok parser.Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == parser.EOF {
		where = " at end"
	}
	r.reporter.ReportStatic(util.NewStaticError(tok.Line, where, message))
}
