/*
 * pylox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package cli

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunTooManyArgsPrintsUsage(t *testing.T) {
	var out bytes.Buffer

	code := Run([]string{"a.lox", "b.lox"}, &out)

	if code != ExitUsage {
		t.Errorf("expected exit code %d, got %d", ExitUsage, code)
	}
	if out.String() != "Usage: pylox [-loglevel level] [script]\n" {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestRunFileNotFound(t *testing.T) {
	var out bytes.Buffer

	code := Run([]string{filepath.Join(t.TempDir(), "missing.lox")}, &out)

	if code != ExitDataErr {
		t.Errorf("expected exit code %d, got %d", ExitDataErr, code)
	}
}

func TestRunFileSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lox")

	if err := ioutil.WriteFile(path, []byte(`print 1 + 2;`), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	code := Run([]string{path}, &out)

	if code != ExitOK {
		t.Errorf("expected exit code %d, got %d", ExitOK, code)
	}
	if out.String() != "3\n" {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestRunFileRuntimeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lox")

	if err := ioutil.WriteFile(path, []byte(`print "s" - 1;`), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	code := Run([]string{path}, &out)

	if code != ExitSoftware {
		t.Errorf("expected exit code %d, got %d", ExitSoftware, code)
	}
}

func TestRunFileWithLogLevelEmitsTrace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lox")

	if err := ioutil.WriteFile(path, []byte(`print 1 + 2;`), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	code := Run([]string{"-loglevel", "debug", path}, &out)

	if code != ExitOK {
		t.Errorf("expected exit code %d, got %d", ExitOK, code)
	}
	if !strings.Contains(out.String(), "exec *parser.PrintStmt") {
		t.Errorf("expected a debug trace line, got %q", out.String())
	}
	if !strings.Contains(out.String(), "3\n") {
		t.Errorf("expected program output alongside trace, got %q", out.String())
	}
}

func TestRunFileWithInvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lox")

	if err := ioutil.WriteFile(path, []byte(`print 1;`), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	code := Run([]string{"-loglevel", "bogus", path}, &out)

	if code != ExitUsage {
		t.Errorf("expected exit code %d, got %d", ExitUsage, code)
	}
}

func TestRunFileStaticError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lox")

	if err := ioutil.WriteFile(path, []byte(`var a = ;`), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	code := Run([]string{path}, &out)

	if code != ExitDataErr {
		t.Errorf("expected exit code %d, got %d", ExitDataErr, code)
	}
}
