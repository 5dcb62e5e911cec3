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

package vesper

import (
	"github.com/vesper-lang/vesper/types"
)

// generalize quantifies every unbound variable in t whose level is deeper
// than the binding's own, producing a scheme. Variables at or above the
// binding's level escaped into the surrounding scope and stay
// monomorphic. Deferred class constraints whose parameter became generic
// here are captured as the scheme's context, and their use sites receive
// abstract dictionary-parameter references indexed into that context.
func (ctx *InferenceContext) generalize(level int, t types.Type) *types.Scheme {
	s := &types.Scheme{Type: t}
	g := generalizer{level: level, scheme: s, seen: make(map[int]bool, 8)}
	g.walk(t)

	if len(ctx.deferred) == 0 {
		return s
	}
	kept := ctx.deferred[:0]
	for _, c := range ctx.deferred {
		pv, ok := types.RealType(c.pred.Param).(*types.Var)
		if !ok || !pv.IsGenericVar() || !g.seen[pv.Id()] {
			kept = append(kept, c)
			continue
		}
		if c.site != nil {
			c.site.AddDict(types.DictRef{Param: len(s.Constraints)})
		}
		s.Constraints = append(s.Constraints, types.Pred{Class: c.pred.Class, Param: pv})
	}
	ctx.deferred = kept
	return s
}

type generalizer struct {
	level  int
	scheme *types.Scheme
	seen   map[int]bool
}

func (g *generalizer) walk(t types.Type) {
	switch t := t.(type) {
	case *types.Var:
		switch {
		case t.IsLinkVar():
			g.walk(t.Link())
		case t.IsUnboundVar() && t.Level() > g.level:
			t.SetGeneric()
			g.record(t)
		case t.IsGenericVar():
			// Already quantified by this walk, or bound by an enclosing
			// scheme sharing structure with t.
			g.record(t)
		}
	case *types.App:
		g.walk(t.Const)
		for _, arg := range t.Args {
			g.walk(arg)
		}
	case *types.Arrow:
		for _, arg := range t.Args {
			g.walk(arg)
		}
		g.walk(t.Return)
		g.walk(t.Effects)
	case *types.Row:
		t.Labels.Range(func(_ string, payload types.Type) bool {
			g.walk(payload)
			return true
		})
		g.walk(t.Rest)
	}
}

func (g *generalizer) record(tv *types.Var) {
	if g.seen[tv.Id()] {
		return
	}
	g.seen[tv.Id()] = true
	if tv.Sort() == types.RowSort {
		g.scheme.RowVars = append(g.scheme.RowVars, tv)
	} else {
		g.scheme.TypeVars = append(g.scheme.TypeVars, tv)
	}
}
