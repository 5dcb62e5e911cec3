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

// Package astutil analyzes bindings which may be mutually-recursive;
// borrowed from Haskell: a group of bindings is sorted into
// strongly-connected components, then type-checked in dependency order
// (H98 s4.5.1), each component generalized only once fully inferred.
package astutil

import (
	"github.com/vesper-lang/vesper/ast"
	"github.com/vesper-lang/vesper/internal/util"
)

// Group sorts a set of sibling bindings into strongly-connected components
// in dependency order: every component only references names bound by
// earlier components, or its own. The result holds indices into the input.
func Group(names []string, values []ast.Expr) [][]int {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	g := util.NewGraph(len(names))
	sc := make(scope, 16)
	for i, value := range values {
		walkRefs(value, sc, func(name string) {
			if j, ok := index[name]; ok {
				// Edge from dependency to user, so SCC's topological
				// order yields dependencies first:
				g.AddEdge(j, i)
			}
		})
	}
	return g.SCC()
}

// scope counts shadowing binders for each name during the walk.
type scope map[string]int

func (sc scope) push(name string) { sc[name]++ }
func (sc scope) pop(name string) {
	if sc[name] <= 1 {
		delete(sc, name)
	} else {
		sc[name]--
	}
}

func walkRefs(e ast.Expr, sc scope, ref func(string)) {
	switch e := e.(type) {
	case *ast.Literal:

	case *ast.Var:
		if sc[e.Name] == 0 {
			ref(e.Name)
		}

	case *ast.Call:
		walkRefs(e.Func, sc, ref)
		for _, arg := range e.Args {
			walkRefs(arg, sc, ref)
		}

	case *ast.Func:
		for _, name := range e.ArgNames {
			sc.push(name)
		}
		walkRefs(e.Body, sc, ref)
		for _, name := range e.ArgNames {
			sc.pop(name)
		}

	case *ast.Let:
		walkRefs(e.Value, sc, ref)
		sc.push(e.Var)
		walkRefs(e.Body, sc, ref)
		sc.pop(e.Var)

	case *ast.LetGroup:
		for _, b := range e.Vars {
			sc.push(b.Var)
		}
		for _, b := range e.Vars {
			walkRefs(b.Value, sc, ref)
		}
		walkRefs(e.Body, sc, ref)
		for _, b := range e.Vars {
			sc.pop(b.Var)
		}

	case *ast.Ctor:
		for _, arg := range e.Args {
			walkRefs(arg, sc, ref)
		}

	case *ast.Match:
		walkRefs(e.Value, sc, ref)
		for _, arm := range e.Arms {
			binds := patternBinds(arm.Pattern)
			for _, name := range binds {
				sc.push(name)
			}
			walkRefs(arm.Body, sc, ref)
			for _, name := range binds {
				sc.pop(name)
			}
		}

	case *ast.Perform:
		for _, arg := range e.Args {
			walkRefs(arg, sc, ref)
		}

	case *ast.Handle:
		walkRefs(e.Body, sc, ref)
		for _, arm := range e.Arms {
			for _, name := range arm.Params {
				sc.push(name)
			}
			if arm.Resume != "" {
				sc.push(arm.Resume)
			}
			walkRefs(arm.Body, sc, ref)
			if arm.Resume != "" {
				sc.pop(arm.Resume)
			}
			for _, name := range arm.Params {
				sc.pop(name)
			}
		}
	}
}

func patternBinds(p ast.Pattern) []string {
	switch p := p.(type) {
	case *ast.CtorPat:
		return p.Binds
	case *ast.VarPat:
		if !p.IsWildcard() {
			return []string{p.Name}
		}
	}
	return nil
}
