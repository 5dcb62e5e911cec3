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

// TopLevel is the binding-level of the outermost scope.
const TopLevel = 0

// Type is the base interface for all types and effect rows.
type Type interface {
	TypeName() string
}

func (t *Var) TypeName() string     { return "Var" }
func (t *Const) TypeName() string   { return "Const" }
func (t *App) TypeName() string     { return "App" }
func (t *Arrow) TypeName() string   { return "Arrow" }
func (t *Row) TypeName() string     { return "Row" }
func (t RowEmpty) TypeName() string { return "RowEmpty" }

// Type constant: `int` or `bool`, or the head of a nominal type.
type Const struct {
	Name string
}

// Type application: `option[int]`. Const names a declaration in a DeclTable;
// recursion is always through the declaration's name, never structural.
type App struct {
	Const Type
	Args  []Type
}

// Function type: `(int, int) -[Get]-> int`. Effects is the latent effect
// row performed when the function is applied, not when it is constructed.
type Arrow struct {
	Args    []Type
	Return  Type
	Effects Type
}

// Effect-row extension: a set of effect labels over a tail. The tail is
// either an unbound row-variable (open row) or RowEmpty (closed row).
// Labels are unique within a fully-flattened row.
type Row struct {
	Labels EffectMap
	Rest   Type
}

// Empty effect row: the computation performs no effects.
type RowEmpty struct{}

// RowEmptyPointer is a shared value for the empty row.
var RowEmptyPointer = RowEmpty{}

// NewPureArrow builds a function type with an empty latent effect row.
func NewPureArrow(ret Type, args ...Type) *Arrow {
	return &Arrow{Args: args, Return: ret, Effects: RowEmptyPointer}
}

// SingletonRow builds a row containing one label over the given tail.
func SingletonRow(label string, payload Type, rest Type) *Row {
	return &Row{Labels: SingletonEffectMap(label, payload), Rest: rest}
}

// RealType returns the underlying type for a chain of linked type-variables, when applicable.
func RealType(t Type) Type {
	for {
		tv, ok := t.(*Var)
		if !ok {
			return t
		}
		if !tv.IsLinkVar() {
			return t
		}
		t = tv.Link()
	}
}

// FlattenRow flattens a chain of row extensions into a single label map and
// the residual tail (an unbound row-variable or RowEmpty).
func FlattenRow(t Type) (labels EffectMap, rest Type, err error) {
	lb := NewEffectMapBuilder()
	rest, err = flattenRow(lb, t)
	if err == nil {
		labels = lb.Build()
	}
	return
}

func flattenRow(labels EffectMapBuilder, t Type) (Type, error) {
	switch t := t.(type) {
	case *Row:
		rest, err := flattenRow(labels, t.Rest)
		if err != nil {
			return t, err
		}
		labels.Merge(t.Labels)
		return rest, nil
	case *Var:
		if t.IsLinkVar() {
			return flattenRow(labels, t.Link())
		}
		return t, nil
	case RowEmpty:
		return t, nil
	default:
		return t, errors.New("not an effect row")
	}
}

// Equal reports structural equality of two types, resolving variable links.
// Rows are compared as label sets, so extension order is irrelevant.
func Equal(a, b Type) bool {
	a, b = RealType(a), RealType(b)
	if a == b {
		return true
	}
	switch a := a.(type) {
	case *Var:
		bv, ok := b.(*Var)
		return ok && a.Id() == bv.Id()
	case *Const:
		bc, ok := b.(*Const)
		return ok && a.Name == bc.Name
	case *App:
		ba, ok := b.(*App)
		if !ok || len(a.Args) != len(ba.Args) || !Equal(a.Const, ba.Const) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], ba.Args[i]) {
				return false
			}
		}
		return true
	case *Arrow:
		ba, ok := b.(*Arrow)
		if !ok || len(a.Args) != len(ba.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], ba.Args[i]) {
				return false
			}
		}
		return Equal(a.Return, ba.Return) && Equal(a.Effects, ba.Effects)
	case *Row:
		return rowsEqual(a, b)
	case RowEmpty:
		if _, ok := b.(RowEmpty); ok {
			return true
		}
		if br, ok := b.(*Row); ok {
			return rowsEqual(a, br)
		}
		return false
	}
	return false
}

func rowsEqual(a, b Type) bool {
	la, ra, err := FlattenRow(a)
	if err != nil {
		return false
	}
	lb, rb, err := FlattenRow(b)
	if err != nil {
		return false
	}
	if la.Len() != lb.Len() || !Equal(ra, rb) {
		return false
	}
	equal := true
	la.Range(func(label string, ta Type) bool {
		tb, ok := lb.Get(label)
		if !ok || !Equal(ta, tb) {
			equal = false
		}
		return equal
	})
	return equal
}

// FreeVars collects the unbound and generic variables of t in deterministic
// (leftmost, depth-first) order, split by sort. Each variable appears at
// most once.
func FreeVars(t Type) (typeVars, rowVars []*Var) {
	seen := make(map[int]bool)
	typeVars, rowVars = freeVars(t, seen, typeVars, rowVars)
	return
}

func freeVars(t Type, seen map[int]bool, typeVars, rowVars []*Var) ([]*Var, []*Var) {
	switch t := t.(type) {
	case *Var:
		switch {
		case t.IsLinkVar():
			return freeVars(t.Link(), seen, typeVars, rowVars)
		case seen[t.Id()]:
			return typeVars, rowVars
		default:
			seen[t.Id()] = true
			if t.Sort() == RowSort {
				return typeVars, append(rowVars, t)
			}
			return append(typeVars, t), rowVars
		}
	case *App:
		typeVars, rowVars = freeVars(t.Const, seen, typeVars, rowVars)
		for _, arg := range t.Args {
			typeVars, rowVars = freeVars(arg, seen, typeVars, rowVars)
		}
	case *Arrow:
		for _, arg := range t.Args {
			typeVars, rowVars = freeVars(arg, seen, typeVars, rowVars)
		}
		typeVars, rowVars = freeVars(t.Return, seen, typeVars, rowVars)
		typeVars, rowVars = freeVars(t.Effects, seen, typeVars, rowVars)
	case *Row:
		t.Labels.Range(func(label string, payload Type) bool {
			typeVars, rowVars = freeVars(payload, seen, typeVars, rowVars)
			return true
		})
		typeVars, rowVars = freeVars(t.Rest, seen, typeVars, rowVars)
	}
	return typeVars, rowVars
}

// HeadConst returns the name of the outermost type constructor of t, if t
// has resolved far enough to expose one. Arrows report as "->".
func HeadConst(t Type) (string, bool) {
	switch t := RealType(t).(type) {
	case *Const:
		return t.Name, true
	case *App:
		return HeadConst(t.Const)
	case *Arrow:
		return "->", true
	default:
		return "", false
	}
}
