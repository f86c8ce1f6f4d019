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

	"github.com/krotik/pylox/environment"
	"github.com/krotik/pylox/parser"
)

/*
Callable is anything `(...)` can invoke: native functions, user-defined
functions/closures, bound methods and classes (construction).
*/
type Callable interface {
	Arity() int
	Call(in *Interpreter, arguments []interface{}) (interface{}, error)
}

/*
nativeFunction wraps a Go function as a Callable, for the handful of
builtins the global environment is seeded with (e.g. clock()).
*/
type nativeFunction struct {
	name string
	fn   func(in *Interpreter, arguments []interface{}) (interface{}, error)
	fn0  func() (interface{}, error)
}

func (n *nativeFunction) Arity() int {
	if n.fn0 != nil {
		return 0
	}
	return -1
}

func (n *nativeFunction) Call(in *Interpreter, arguments []interface{}) (interface{}, error) {
	if n.fn0 != nil {
		return n.fn0()
	}
	return n.fn(in, arguments)
}

func (n *nativeFunction) String() string {
	return fmt.Sprintf("<native fn %s>", n.name)
}

/*
function is a user-defined Lox function or method. It closes over the
environment live at its declaration, the way a function literal captures
its lexical scope - not the environment live at call time.
*/
type function struct {
	declaration   *parser.FunctionStmt
	closure       *environment.Environment
	isInitializer bool
}

func newFunction(declaration *parser.FunctionStmt, closure *environment.Environment, isInitializer bool) *function {
	return &function{declaration, closure, isInitializer}
}

/*
Bind returns a copy of this function whose closure has `this` bound to
instance, one environment out from the method body. Each access to a bound
method - even the same method on the same instance - gets an independent
binding environment, matching method-as-value semantics.
*/
func (f *function) Bind(instance *Instance) *function {
	env := f.closure.NewChild()
	env.Define("this", instance)
	return newFunction(f.declaration, env, f.isInitializer)
}

func (f *function) Arity() int {
	return len(f.declaration.Params)
}

func (f *function) Call(in *Interpreter, arguments []interface{}) (interface{}, error) {
	env := f.closure.NewChild()

	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, arguments[i])
	}

	err := in.executeBlock(f.declaration.Body, env)

	if ret, ok := err.(*returnSignal); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}

	return nil, nil
}

func (f *function) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme)
}

/*
returnSignal is how a `return` statement unwinds the Go call stack back to
the enclosing function.Call frame: it is returned as an error from every
nested statement execution until Call catches it and unwraps the value.
*/
type returnSignal struct {
	value interface{}
}

func (r *returnSignal) Error() string {
	return fmt.Sprintf("return %v", r.value)
}
