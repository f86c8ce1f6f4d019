/*
 * pylox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package interpreter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/krotik/pylox/environment"
	"github.com/krotik/pylox/parser"
	"github.com/krotik/pylox/util"
)

/*
Interpreter walks a resolved statement list and executes it against a
chain of environment.Environment scopes. It is reusable across many
Interpret calls against the same Globals scope, which is what lets a REPL
build up state line by line.
*/
type Interpreter struct {
	Globals *environment.Environment

	env      *environment.Environment
	locals   map[parser.Expr]int
	reporter *util.ErrorReporter
	out      io.Writer
	logger   util.Logger
}

/*
New creates an Interpreter reporting runtime errors to reporter and writing
`print` output to out. A nil out defaults to os.Stdout; a nil logger
defaults to util.NewNullLogger().
*/
func New(reporter *util.ErrorReporter, out io.Writer, logger util.Logger) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = util.NewNullLogger()
	}

	globals := environment.New()
	in := &Interpreter{
		Globals:  globals,
		env:      globals,
		locals:   make(map[parser.Expr]int),
		reporter: reporter,
		out:      out,
		logger:   logger,
	}

	in.defineNatives()

	return in
}

func (in *Interpreter) defineNatives() {
	in.Globals.Define("clock", &nativeFunction{
		name: "clock",
		fn0: func() (interface{}, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	})
}

/*
Interpret executes statements against the locals side table produced by
the resolver for them. A runtime error is reported through the
ErrorReporter and stops the run - it never propagates to the caller, per
the external interface contract.
*/
func (in *Interpreter) Interpret(statements []parser.Stmt, locals map[parser.Expr]int) {
	in.locals = locals

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			if rerr, ok := err.(*util.RuntimeError); ok {
				in.logger.LogError(rerr.Error())
				in.reporter.ReportRuntime(rerr)
			}
			return
		}
	}
}

func (in *Interpreter) execute(stmt parser.Stmt) error {
	in.logger.LogDebug(fmt.Sprintf("exec %T", stmt))

	switch s := stmt.(type) {

	case *parser.ExpressionStmt:
		_, err := in.evaluate(s.Expression)
		return err

	case *parser.PrintStmt:
		v, err := in.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, stringify(v))
		return nil

	case *parser.VarStmt:
		return in.executeVar(s)

	case *parser.BlockStmt:
		return in.executeBlock(s.Statements, in.env.NewChild())

	case *parser.IfStmt:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.execute(s.ThenBranch)
		}
		if s.ElseBranch != nil {
			return in.execute(s.ElseBranch)
		}
		return nil

	case *parser.WhileStmt:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}

	case *parser.FunctionStmt:
		fn := newFunction(s, in.env, false)
		in.env.Define(s.Name.Lexeme, fn)
		return nil

	case *parser.ReturnStmt:
		var value interface{}
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value}

	case *parser.ClassStmt:
		return in.executeClass(s)
	}

	panic(fmt.Sprintf("interpreter: unhandled statement type %T", stmt))
}

func (in *Interpreter) executeVar(s *parser.VarStmt) error {
	if s.Length != nil {
		lv, err := in.evaluate(s.Length)
		if err != nil {
			return err
		}

		n, ok := lv.(float64)
		if !ok || n < 0 || n != float64(int(n)) {
			return util.NewRuntimeError(s.Name.Line, "Array length must be a non-negative integer.")
		}

		var elem interface{}
		if s.Initializer != nil {
			if elem, err = in.evaluate(s.Initializer); err != nil {
				return err
			}
		}

		arr := make([]interface{}, int(n))
		for i := range arr {
			arr[i] = elem
		}

		in.env.Define(s.Name.Lexeme, arr)
		return nil
	}

	var value interface{}
	if s.Initializer != nil {
		v, err := in.evaluate(s.Initializer)
		if err != nil {
			return err
		}
		value = v
	}

	in.env.Define(s.Name.Lexeme, value)
	return nil
}

func (in *Interpreter) executeClass(s *parser.ClassStmt) error {
	var superclass *Class

	if s.Superclass != nil {
		sv, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := sv.(*Class)
		if !ok {
			return util.NewRuntimeError(s.Superclass.Name.Line, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, nil)

	methodEnv := in.env
	if superclass != nil {
		methodEnv = methodEnv.NewChild()
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = newFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := newClass(s.Name.Lexeme, superclass, methods)

	in.env.Assign(s.Name.Lexeme, class)
	return nil
}

/*
executeBlock runs statements against env, restoring the previous
environment on the way out regardless of how execution stopped (normal
completion, a runtime error or a return signal).
*/
func (in *Interpreter) executeBlock(statements []parser.Stmt, env *environment.Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (in *Interpreter) evaluate(expr parser.Expr) (interface{}, error) {
	switch e := expr.(type) {

	case *parser.Literal:
		return e.Value, nil

	case *parser.Grouping:
		return in.evaluate(e.Expression)

	case *parser.Unary:
		return in.evaluateUnary(e)

	case *parser.Binary:
		return in.evaluateBinary(e)

	case *parser.Logical:
		return in.evaluateLogical(e)

	case *parser.Variable:
		return in.evaluateVariable(e)

	case *parser.Assign:
		return in.evaluateAssign(e)

	case *parser.Call:
		return in.evaluateCall(e)

	case *parser.Get:
		return in.evaluateGet(e)

	case *parser.Set:
		return in.evaluateSet(e)

	case *parser.This:
		return in.lookUpVariable(e.Keyword, e)

	case *parser.Super:
		return in.evaluateSuper(e)
	}

	panic(fmt.Sprintf("interpreter: unhandled expression type %T", expr))
}

func (in *Interpreter) evaluateUnary(e *parser.Unary) (interface{}, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case parser.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, util.NewRuntimeError(e.Operator.Line, "Operand must be a number.")
		}
		return -n, nil
	case parser.Bang:
		return !isTruthy(right), nil
	}

	panic("interpreter: unhandled unary operator")
}

func (in *Interpreter) evaluateBinary(e *parser.Binary) (interface{}, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case parser.Minus:
		return numberOp(e.Operator, left, right, func(a, b float64) interface{} { return a - b })
	case parser.Slash:
		return numberOp(e.Operator, left, right, func(a, b float64) interface{} { return a / b })
	case parser.Star:
		return numberOp(e.Operator, left, right, func(a, b float64) interface{} { return a * b })
	case parser.Greater:
		return numberOp(e.Operator, left, right, func(a, b float64) interface{} { return a > b })
	case parser.GreaterEqual:
		return numberOp(e.Operator, left, right, func(a, b float64) interface{} { return a >= b })
	case parser.Less:
		return numberOp(e.Operator, left, right, func(a, b float64) interface{} { return a < b })
	case parser.LessEqual:
		return numberOp(e.Operator, left, right, func(a, b float64) interface{} { return a <= b })
	case parser.BangEqual:
		return !isEqual(left, right), nil
	case parser.EqualEqual:
		return isEqual(left, right), nil
	case parser.Plus:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, util.NewRuntimeError(e.Operator.Line, "Operands must be two numbers or two strings.")
	}

	panic("interpreter: unhandled binary operator")
}

func numberOp(op parser.Token, left, right interface{}, f func(a, b float64) interface{}) (interface{}, error) {
	ln, ok := left.(float64)
	if !ok {
		return nil, util.NewRuntimeError(op.Line, "Operand must be a number.")
	}
	rn, ok := right.(float64)
	if !ok {
		return nil, util.NewRuntimeError(op.Line, "Operand must be a number.")
	}
	return f(ln, rn), nil
}

func (in *Interpreter) evaluateLogical(e *parser.Logical) (interface{}, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Operator.Kind == parser.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}

	return in.evaluate(e.Right)
}

func (in *Interpreter) evaluateVariable(e *parser.Variable) (interface{}, error) {
	v, err := in.lookUpVariable(e.Name, e)
	if err != nil {
		return nil, err
	}

	if e.Index == nil {
		return v, nil
	}

	return indexInto(v, e.Index, e.Name.Line, in)
}

func indexInto(base interface{}, indexExpr parser.Expr, line int, in *Interpreter) (interface{}, error) {
	arr, ok := base.([]interface{})
	if !ok {
		return nil, util.NewRuntimeError(line, "Only arrays can be indexed.")
	}

	idx, err := evaluateIndex(in, indexExpr, len(arr), line)
	if err != nil {
		return nil, err
	}

	return arr[idx], nil
}

func evaluateIndex(in *Interpreter, indexExpr parser.Expr, length, line int) (int, error) {
	iv, err := in.evaluate(indexExpr)
	if err != nil {
		return 0, err
	}

	n, ok := iv.(float64)
	if !ok || n != float64(int(n)) {
		return 0, util.NewRuntimeError(line, "Array index must be an integer.")
	}

	idx := int(n)
	if idx < 0 || idx >= length {
		return 0, util.NewRuntimeError(line, "Array index out of bounds.")
	}

	return idx, nil
}

func (in *Interpreter) evaluateAssign(e *parser.Assign) (interface{}, error) {
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	if e.Index != nil {
		base, err := in.lookUpVariable(e.Name, e)
		if err != nil {
			return nil, err
		}
		arr, ok := base.([]interface{})
		if !ok {
			return nil, util.NewRuntimeError(e.Name.Line, "Only arrays can be indexed.")
		}
		idx, err := evaluateIndex(in, e.Index, len(arr), e.Name.Line)
		if err != nil {
			return nil, err
		}
		arr[idx] = value
		return value, nil
	}

	if distance, ok := in.locals[e]; ok {
		in.env.AssignAt(distance, e.Name.Lexeme, value)
		return value, nil
	}

	if !in.Globals.Assign(e.Name.Lexeme, value) {
		return nil, util.NewRuntimeError(e.Name.Line, fmt.Sprintf("Undefined variable '%s'.", e.Name.Lexeme))
	}

	return value, nil
}

func (in *Interpreter) evaluateCall(e *parser.Call) (interface{}, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]interface{}, len(e.Arguments))
	for i, a := range e.Arguments {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		arguments[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, util.NewRuntimeError(e.Paren.Line, "Can only call functions and classes.")
	}

	if callable.Arity() >= 0 && len(arguments) != callable.Arity() {
		return nil, util.NewRuntimeError(e.Paren.Line,
			fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(arguments)))
	}

	in.logger.LogInfo(fmt.Sprintf("call %s(%d arg(s))", describeCallee(e.Callee), len(arguments)))

	return callable.Call(in, arguments)
}

/*
describeCallee renders the callee of a call expression for trace logging.
It is best-effort: anything other than a plain name or property access
is logged as "<expr>" rather than re-running the printer over it.
*/
func describeCallee(e parser.Expr) string {
	switch c := e.(type) {
	case *parser.Variable:
		return c.Name.Lexeme
	case *parser.Get:
		return c.Name.Lexeme
	}
	return "<expr>"
}

func (in *Interpreter) evaluateGet(e *parser.Get) (interface{}, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := obj.(*Instance)
	if !ok {
		return nil, util.NewRuntimeError(e.Name.Line, "Only instances have properties.")
	}

	v, ok := instance.Get(e.Name.Lexeme)
	if !ok {
		return nil, util.NewRuntimeError(e.Name.Line, fmt.Sprintf("Undefined property '%s'.", e.Name.Lexeme))
	}

	return v, nil
}

func (in *Interpreter) evaluateSet(e *parser.Set) (interface{}, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := obj.(*Instance)
	if !ok {
		return nil, util.NewRuntimeError(e.Name.Line, "Only instances have fields.")
	}

	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	instance.Set(e.Name.Lexeme, value)

	return value, nil
}

func (in *Interpreter) evaluateSuper(e *parser.Super) (interface{}, error) {
	distance := in.locals[e]

	superclass, _ := in.env.GetAt(distance, "super").(*Class)
	instance, _ := in.env.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, util.NewRuntimeError(e.Method.Line, fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme))
	}

	return method.Bind(instance), nil
}

func (in *Interpreter) lookUpVariable(name parser.Token, expr parser.Expr) (interface{}, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}

	v, ok := in.Globals.Get(name.Lexeme)
	if !ok {
		return nil, util.NewRuntimeError(name.Line, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
	}

	return v, nil
}
