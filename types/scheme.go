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

// Scheme is a forall-quantified type: bound type-variables, bound
// row-variables, a class-constraint context, and a body. Quantification
// only ever occurs at this outermost layer; a body never contains a nested
// scheme. Bound variables are generic (level GenericVarLevel) and shared
// with the body.
type Scheme struct {
	TypeVars    []*Var
	RowVars     []*Var
	Constraints []Pred
	Type        Type
}

// MonoScheme wraps a monomorphic type as a scheme with no binders.
func MonoScheme(t Type) *Scheme { return &Scheme{Type: t} }

// IsMono reports whether the scheme binds no variables.
func (s *Scheme) IsMono() bool { return len(s.TypeVars) == 0 && len(s.RowVars) == 0 }

// Relabel produces a fresh copy of the scheme with newly minted bound
// variables, preserving sharing between occurrences of the same variable.
// fresh must return a new generic variable of the requested sort.
func (s *Scheme) Relabel(fresh func(Sort) *Var) *Scheme {
	lookup := make(map[int]*Var, len(s.TypeVars)+len(s.RowVars))
	out := &Scheme{
		TypeVars: make([]*Var, len(s.TypeVars)),
		RowVars:  make([]*Var, len(s.RowVars)),
	}
	for i, tv := range s.TypeVars {
		nv := fresh(TypeSort)
		lookup[tv.Id()] = nv
		out.TypeVars[i] = nv
	}
	for i, rv := range s.RowVars {
		nv := fresh(RowSort)
		lookup[rv.Id()] = nv
		out.RowVars[i] = nv
	}
	out.Type = Subst(s.Type, lookup)
	if len(s.Constraints) > 0 {
		out.Constraints = make([]Pred, len(s.Constraints))
		for i, p := range s.Constraints {
			out.Constraints[i] = Pred{Class: p.Class, Param: Subst(p.Param, lookup)}
		}
	}
	return out
}

// Subst rebuilds t with every variable whose id appears in lookup replaced.
// Terms containing no mapped variables are returned unchanged.
func Subst(t Type, lookup map[int]*Var) Type {
	switch t := t.(type) {
	case *Var:
		switch {
		case t.IsLinkVar():
			return Subst(t.Link(), lookup)
		default:
			if nv, ok := lookup[t.Id()]; ok {
				return nv
			}
			return t
		}
	case *App:
		args := make([]Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = Subst(arg, lookup)
		}
		return &App{Const: Subst(t.Const, lookup), Args: args}
	case *Arrow:
		args := make([]Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = Subst(arg, lookup)
		}
		return &Arrow{Args: args, Return: Subst(t.Return, lookup), Effects: Subst(t.Effects, lookup)}
	case *Row:
		lb := NewEffectMapBuilder()
		t.Labels.Range(func(label string, payload Type) bool {
			lb.Set(label, Subst(payload, lookup))
			return true
		})
		return &Row{Labels: lb.Build(), Rest: Subst(t.Rest, lookup)}
	default:
		return t
	}
}
