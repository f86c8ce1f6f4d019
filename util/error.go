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
Package util contains utility definitions and functions for the pylox interpreter:
the diagnostic sink, logging and the two error kinds the pipeline can produce.
*/
package util

import (
	"fmt"
	"io"
)

/*
StaticError is produced by the scanner, parser and resolver - anything that is
known before a single statement is executed.
*/
type StaticError struct {
	Line    int    // Source line the error occurred on
	Where   string // Context of the error (e.g. " at 'foo'", " at end", or "")
	Message string // Human readable description
}

/*
NewStaticError creates a new StaticError.
*/
func NewStaticError(line int, where string, message string) *StaticError {
	return &StaticError{line, where, message}
}

/*
Error returns a human-readable string representation of this error.
*/
func (e *StaticError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

/*
RuntimeError is produced by the interpreter while executing a resolved AST. It
always carries the line of the offending token so the top level driver can
print a line-annotated diagnostic.
*/
type RuntimeError struct {
	Line    int    // Source line the error occurred on
	Message string // Human readable description
}

/*
NewRuntimeError creates a new RuntimeError.
*/
func NewRuntimeError(line int, message string) *RuntimeError {
	return &RuntimeError{line, message}
}

/*
Error returns a human-readable string representation of this error.
*/
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
}

/*
ErrorReporter is the diagnostic sink shared by every pipeline stage. It is
passed by reference instead of being a package level global so that a single
process can run several independent interpret calls (e.g. one REPL line after
another) while tracking static errors per line and runtime errors across the
whole session, per the external interface contract.
*/
type ErrorReporter struct {
	HadError        bool // Set by a static error in the current run
	HadRuntimeError bool // Set by a runtime error - never reset by ResetStatic

	Out io.Writer // Diagnostic sink; nil means diagnostics are not printed
}

/*
NewErrorReporter creates a new ErrorReporter. Diagnostics are not printed
until Out is set.
*/
func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{}
}

/*
ReportStatic records a static error, prints it to Out if set, and returns
it so callers can both store and propagate it in one line.
*/
func (er *ErrorReporter) ReportStatic(err *StaticError) *StaticError {
	er.HadError = true
	if er.Out != nil {
		fmt.Fprintln(er.Out, err.Error())
	}
	return err
}

/*
ReportRuntime records a runtime error, prints it to Out if set, and returns
it.
*/
func (er *ErrorReporter) ReportRuntime(err *RuntimeError) *RuntimeError {
	er.HadRuntimeError = true
	if er.Out != nil {
		fmt.Fprintln(er.Out, err.Error())
	}
	return err
}

/*
ResetStatic clears the static error flag. Used by the REPL between lines - the
runtime error flag is deliberately left untouched (see external interface spec).
*/
func (er *ErrorReporter) ResetStatic() {
	er.HadError = false
}

/*
ExitCode returns the process exit code matching the current error state: 0 on
success, 65 on a static error, 70 on a runtime error.
*/
func (er *ErrorReporter) ExitCode() int {
	if er.HadError {
		return 65
	}
	if er.HadRuntimeError {
		return 70
	}
	return 0
}
