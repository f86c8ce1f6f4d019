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
Package interpreter is the tree-walking evaluator: it executes the
statement list produced by the parser and annotated by the resolver,
against a chain of environment.Environment scopes.

A Lox Value is represented directly as a Go interface{} holding one of:
nil, bool, float64, string, []interface{} (the array extension), an
*Instance, or one of the Callable implementations in this package.
*/
package interpreter

import (
	"fmt"
	"strconv"
)

/*
isTruthy implements Lox's truthiness rule: everything is truthy except nil
and the boolean false.
*/
func isTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

/*
isEqual implements Lox's `==`: structural equality, with nil equal only to
nil and no implicit conversion between types.
*/
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}

	return a == b
}

/*
stringify renders a Value the way `print` and the REPL do.
*/
func stringify(v interface{}) string {
	if v == nil {
		return "nil"
	}

	switch n := v.(type) {
	case float64:
		text := strconv.FormatFloat(n, 'f', -1, 64)
		return text
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case []interface{}:
		return stringifyArray(n)
	case fmt.Stringer:
		return n.String()
	}

	return fmt.Sprint(v)
}

func stringifyArray(a []interface{}) string {
	s := "["
	for i, v := range a {
		if i > 0 {
			s += ", "
		}
		s += stringify(v)
	}
	return s + "]"
}
