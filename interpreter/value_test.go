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

import "testing"

func TestIsTruthy(t *testing.T) {
	cases := []struct {
		v    interface{}
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{0.0, true},
		{"", true},
	}

	for _, c := range cases {
		if got := isTruthy(c.v); got != c.want {
			t.Errorf("isTruthy(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestIsEqual(t *testing.T) {
	if !isEqual(nil, nil) {
		t.Error("nil should equal nil")
	}
	if isEqual(nil, 1.0) {
		t.Error("nil should not equal a non-nil value")
	}
	if !isEqual(1.0, 1.0) {
		t.Error("equal numbers should be equal")
	}
	if isEqual(1.0, "1") {
		t.Error("values of different types should never be equal")
	}
}

func TestStringify(t *testing.T) {
	cases := []struct {
		v    interface{}
		want string
	}{
		{nil, "nil"},
		{9.0, "9"},
		{3.5, "3.5"},
		{"hi", "hi"},
		{true, "true"},
	}

	for _, c := range cases {
		if got := stringify(c.v); got != c.want {
			t.Errorf("stringify(%#v) = %q, want %q", c.v, got, c.want)
		}
	}
}
