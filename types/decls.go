// The MIT License (MIT)
//
// Copyright (c) 2026 The Vesper Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"errors"
)

// TypeDecl is a nominal sum-type declaration. Constructor field types may
// reference this or any other declaration by name (through Const/App);
// recursive types are tied through the declaration table, never by
// structural self-embedding.
type TypeDecl struct {
	Name   string
	Params []*Var // generic
	Ctors  []CtorDecl
}

// CtorDecl is a single data constructor and its field types. Field types
// may mention the declaration's Params.
type CtorDecl struct {
	Name   string
	Fields []Type
}

// EffectDecl fixes the operand and result signature of one effect
// operation label. The signature is shared by every row mentioning the
// label.
type EffectDecl struct {
	Label  string
	Params []Type
	Result Type
}

// Signature returns the operation's payload type as carried inside rows.
func (d *EffectDecl) Signature() *Arrow {
	return &Arrow{Args: d.Params, Return: d.Result, Effects: RowEmptyPointer}
}

// DeclTable resolves nominal type names, constructor names, and effect
// labels to their declarations. It is read-only during inference.
type DeclTable struct {
	types   map[string]*TypeDecl
	ctors   map[string]*ctorEntry
	effects map[string]*EffectDecl
}

type ctorEntry struct {
	decl *TypeDecl
	ctor *CtorDecl
}

func NewDeclTable() *DeclTable {
	return &DeclTable{
		types:   make(map[string]*TypeDecl),
		ctors:   make(map[string]*ctorEntry),
		effects: make(map[string]*EffectDecl),
	}
}

// Add a sum-type declaration and its constructors to the table.
func (dt *DeclTable) AddType(decl *TypeDecl) error {
	if _, exists := dt.types[decl.Name]; exists {
		return errors.New("type " + decl.Name + " is already declared")
	}
	for i := range decl.Ctors {
		ctor := &decl.Ctors[i]
		if _, exists := dt.ctors[ctor.Name]; exists {
			return errors.New("constructor " + ctor.Name + " is already declared")
		}
		dt.ctors[ctor.Name] = &ctorEntry{decl: decl, ctor: ctor}
	}
	dt.types[decl.Name] = decl
	return nil
}

// Add an effect-operation declaration to the table.
func (dt *DeclTable) AddEffect(decl *EffectDecl) error {
	if _, exists := dt.effects[decl.Label]; exists {
		return errors.New("effect operation " + decl.Label + " is already declared")
	}
	dt.effects[decl.Label] = decl
	return nil
}

// LookupType resolves a nominal type name.
func (dt *DeclTable) LookupType(name string) (*TypeDecl, bool) {
	decl, ok := dt.types[name]
	return decl, ok
}

// LookupCtor resolves a constructor name to its constructor and owning
// declaration.
func (dt *DeclTable) LookupCtor(name string) (*TypeDecl, *CtorDecl, bool) {
	entry, ok := dt.ctors[name]
	if !ok {
		return nil, nil, false
	}
	return entry.decl, entry.ctor, true
}

// LookupEffect resolves an effect-operation label.
func (dt *DeclTable) LookupEffect(label string) (*EffectDecl, bool) {
	decl, ok := dt.effects[label]
	return decl, ok
}
