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
	"fmt"
	"strconv"
	"strings"
)

/*
Print renders an expression as a fully parenthesised Lisp-like string, e.g.
`(+ 1 (* 2 3))`. A standalone diagnostic printer exercised by tests; no
interpreter or CLI code path calls it at run time.
*/
func Print(e Expr) string {
	switch n := e.(type) {

	case *Binary:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)

	case *Logical:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)

	case *Unary:
		return parenthesize(n.Operator.Lexeme, n.Right)

	case *Grouping:
		return parenthesize("group", n.Expression)

	case *Literal:
		return stringifyLiteral(n.Value)

	case *Variable:
		if n.Index != nil {
			return parenthesize("index "+n.Name.Lexeme, n.Index)
		}
		return n.Name.Lexeme

	case *Assign:
		if n.Index != nil {
			return parenthesize("index-assign "+n.Name.Lexeme, n.Index, n.Value)
		}
		return parenthesize("assign "+n.Name.Lexeme, n.Value)

	case *Call:
		args := make([]Expr, 0, len(n.Arguments)+1)
		args = append(args, n.Callee)
		args = append(args, n.Arguments...)
		return parenthesize("call", args...)

	case *Get:
		return parenthesize("get "+n.Name.Lexeme, n.Object)

	case *Set:
		return parenthesize("set "+n.Name.Lexeme, n.Object, n.Value)

	case *This:
		return "this"

	case *Super:
		return "(super " + n.Method.Lexeme + ")"
	}

	return fmt.Sprintf("<unknown expr %T>", e)
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder

	b.WriteString("(")
	b.WriteString(name)

	for _, e := range exprs {
		b.WriteString(" ")
		b.WriteString(Print(e))
	}

	b.WriteString(")")

	return b.String()
}

func stringifyLiteral(v interface{}) string {
	if v == nil {
		return "nil"
	}
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case string:
		return strconv.Quote(n)
	case bool:
		return strconv.FormatBool(n)
	}
	return fmt.Sprint(v)
}
