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

// Special binding-levels (used as flags):
const (
	GenericVarLevel = 1<<31 - 1
	LinkVarLevel    = -1 << 31
)

// Sort distinguishes variables ranging over types from variables ranging
// over effect rows. The two algebras never mix: a row-variable may only be
// bound to a row, a type-variable to a type.
type Sort uint8

const (
	TypeSort Sort = iota
	RowSort
)

// Type-variable or effect-row variable, depending on its sort.
type Var struct {
	link  Type
	id    int32
	level int32
	sort  Sort
}

// Instance of a type-variable
type VarType int

const (
	// Unbound type-variable
	UnboundVar VarType = iota
	// Linked type-variable
	LinkVar
	// Generic type-variable
	GenericVar
)

// Create a new unbound variable with the given id, binding-level, and sort.
func NewVar(id, level int, sort Sort) *Var {
	return &Var{id: int32(id), level: int32(level), sort: sort}
}

// Create a new generic variable with the given id and sort.
func NewGenericVar(id int, sort Sort) *Var {
	return &Var{id: int32(id), level: GenericVarLevel, sort: sort}
}

// VarType indicates whether the variable is linked, unbound, or generic.
func (tv *Var) VarType() VarType {
	switch tv.level {
	case LinkVarLevel:
		return LinkVar
	case GenericVarLevel:
		return GenericVar
	default:
		return UnboundVar
	}
}

// Id returns the unique identifier of the variable.
func (tv *Var) Id() int { return int(tv.id) }

// Level returns the adjusted binding-level (rank) of the variable.
func (tv *Var) Level() int { return int(tv.level) }

// Sort reports whether the variable ranges over types or effect rows.
func (tv *Var) Sort() Sort { return tv.sort }

// Link returns the term which the variable is bound to, if the variable is bound.
func (tv *Var) Link() Type { return tv.link }

func (tv *Var) IsUnboundVar() bool { return tv.level != LinkVarLevel && tv.level != GenericVarLevel }
func (tv *Var) IsLinkVar() bool    { return tv.level == LinkVarLevel }
func (tv *Var) IsGenericVar() bool { return tv.level == GenericVarLevel }

// Set the unique identifier of the variable.
func (tv *Var) SetId(id int) { tv.id = int32(id) }

// Set the adjusted binding-level of the variable.
func (tv *Var) SetLevel(level int) { tv.level = int32(level) }

// Bind the variable to a term. Binding is how the running substitution is
// extended; callers must occurs-check first.
func (tv *Var) SetLink(t Type) { tv.link, tv.level = t, LinkVarLevel }

// Set the binding-level of the variable to the generic level, quantifying it.
func (tv *Var) SetGeneric() { tv.level = GenericVarLevel }

// Update reinitializes the variable in place; used by per-run arenas.
func (tv *Var) Update(id, level int, sort Sort) {
	tv.link, tv.id, tv.level, tv.sort = nil, int32(id), int32(level), sort
}

// Flatten a chain of linked variables so repeated resolution is O(1).
func (tv *Var) Flatten() {
	if tv.IsLinkVar() {
		tv.link = RealType(tv.link)
	}
}
