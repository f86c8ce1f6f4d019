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

import "fmt"

/*
Class is a Lox class: a name, an optional superclass and its own methods.
Constructing one (`Class(...)`) is itself a Callable - calling a Class
allocates an Instance and runs `init` on it if one is defined.
*/
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*function
}

func newClass(name string, superclass *Class, methods map[string]*function) *Class {
	return &Class{name, superclass, methods}
}

/*
FindMethod looks up a method by name, walking the superclass chain.
*/
func (c *Class) FindMethod(name string) (*function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(in *Interpreter, arguments []interface{}) (interface{}, error) {
	instance := newInstance(c)

	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, arguments); err != nil {
			return nil, err
		}
	}

	return instance, nil
}

func (c *Class) String() string {
	return c.Name
}

/*
Instance is a runtime object created by calling a Class. Fields are looked
up before methods, so a field can shadow a method of the same name.
*/
type Instance struct {
	class  *Class
	fields map[string]interface{}
}

func newInstance(class *Class) *Instance {
	return &Instance{class, make(map[string]interface{})}
}

/*
Get reads a property: an instance field if one is set, otherwise a method
bound to this instance.
*/
func (i *Instance) Get(name string) (interface{}, bool) {
	if v, ok := i.fields[name]; ok {
		return v, true
	}
	if m, ok := i.class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

/*
Set stores a value into an instance field, creating it if necessary - Lox
instances are open, there is no field declaration.
*/
func (i *Instance) Set(name string, value interface{}) {
	i.fields[name] = value
}

func (i *Instance) String() string {
	return fmt.Sprintf("%s instance", i.class.Name)
}
