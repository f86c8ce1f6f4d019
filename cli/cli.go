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
Package cli implements the pylox command line driver: a run-once mode over
a script file and an interactive prompt, wired to the scan/parse/resolve/
interpret pipeline in package interpreter.
*/
package cli

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/krotik/common/fileutil"
	"github.com/krotik/common/termutil"

	"github.com/krotik/pylox/config"
	"github.com/krotik/pylox/interpreter"
	"github.com/krotik/pylox/parser"
	"github.com/krotik/pylox/resolver"
	"github.com/krotik/pylox/util"
)

/*
Exit codes, per the external interface contract.
*/
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65 // Static (scan/parse/resolve) error
	ExitSoftware = 70 // Runtime error
)

/*
Run is the entry point invoked by cmd/pylox. args is the program's
positional arguments (os.Args[1:]); out receives both program output and
diagnostics, matching the single-stream contract. The -loglevel flag turns
on the interpreter's trace/debug logging (debug, info or error); omitted,
logging is disabled entirely.
*/
func Run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("pylox", flag.ContinueOnError)
	fs.SetOutput(out)
	logLevel := fs.String("loglevel", "", "trace/debug logging level (debug, info, error)")

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	logger, mem, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(out, err)
		return ExitUsage
	}

	switch fs.NArg() {
	case 0:
		return runPrompt(out, logger, mem)
	case 1:
		return runFile(fs.Arg(0), out, logger, mem)
	default:
		fmt.Fprintln(out, "Usage: pylox [-loglevel level] [script]")
		return ExitUsage
	}
}

/*
newLogger builds the interpreter's trace/debug logger for the given
-loglevel. An empty level disables logging; otherwise trace lines are
collected in a MemoryLogger and periodically flushed to the CLI's output
stream by flushLog, so the logger itself never needs direct access to
the terminal.
*/
func newLogger(level string) (util.Logger, *util.MemoryLogger, error) {
	if level == "" {
		return util.NewNullLogger(), nil, nil
	}

	mem := util.NewMemoryLogger(1000)

	logger, err := util.NewLogLevelLogger(mem, level)
	if err != nil {
		return nil, nil, err
	}

	return logger, mem, nil
}

/*
flushLog drains any trace/debug lines collected since the last flush and
prints them to out. A nil mem (logging disabled) is a no-op.
*/
func flushLog(out io.Writer, mem *util.MemoryLogger) {
	if mem == nil {
		return
	}

	for _, line := range mem.Slice() {
		fmt.Fprintln(out, line)
	}
	mem.Reset()
}

func runFile(path string, out io.Writer, logger util.Logger, mem *util.MemoryLogger) int {
	if ok, _ := fileutil.PathExists(path); !ok {
		fmt.Fprintf(out, "Could not find file: %s\n", path)
		return ExitDataErr
	}

	source, err := ioutil.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "Could not read file: %v\n", err)
		return ExitDataErr
	}

	reporter := util.NewErrorReporter()
	reporter.Out = out
	in := interpreter.New(reporter, out, logger)
	runLine(string(source), reporter, in)
	flushLog(out, mem)

	return reporter.ExitCode()
}

func runPrompt(out io.Writer, logger util.Logger, mem *util.MemoryLogger) int {
	term, err := termutil.NewConsoleLineTerminal(out)
	if err != nil {
		fmt.Fprintln(out, err)
		return ExitSoftware
	}

	if term, err = termutil.AddHistoryMixin(term, "", func(s string) bool {
		return strings.TrimSpace(s) == ""
	}); err != nil {
		fmt.Fprintln(out, err)
		return ExitSoftware
	}

	if err := term.StartTerm(); err != nil {
		fmt.Fprintln(out, err)
		return ExitSoftware
	}
	defer term.StopTerm()

	reporter := util.NewErrorReporter()
	reporter.Out = out
	in := interpreter.New(reporter, out, logger)

	for {
		fmt.Fprint(out, config.Str(config.Prompt))

		line, err := term.NextLine()
		if err != nil || strings.TrimSpace(line) == "" {
			break
		}

		runLine(line, reporter, in)
		flushLog(out, mem)
		reporter.ResetStatic()
	}

	return ExitOK
}

/*
runLine runs one chunk of source (a whole file, or one REPL line) through
the scan/parse/resolve/interpret pipeline against an existing Interpreter,
so a REPL session accumulates global state across lines.
*/
func runLine(source string, reporter *util.ErrorReporter, in *interpreter.Interpreter) {
	tokens := parser.NewScanner(source, reporter).ScanTokens()
	if reporter.HadError {
		return
	}

	statements := parser.NewParser(tokens, reporter).Parse()
	if reporter.HadError {
		return
	}

	locals := resolver.New(reporter).Resolve(statements)
	if reporter.HadError {
		return
	}

	in.Interpret(statements, locals)
}
