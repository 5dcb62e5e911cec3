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
	"github.com/vesper-lang/vesper/ast"
	"github.com/vesper-lang/vesper/types"
)

// instantiate replaces a scheme's bound variables with fresh unbound
// variables at the given level and re-emits the scheme's class constraints
// for the use site. Each instantiation is independent, which is what makes
// a polymorphic binding usable at several types within one body.
func (ctx *InferenceContext) instantiate(level int, s *types.Scheme, site *ast.Var, loc ast.Span) types.Type {
	if s.IsMono() && len(s.Constraints) == 0 {
		return s.Type
	}
	lookup := make(map[int]*types.Var, len(s.TypeVars)+len(s.RowVars))
	for _, tv := range s.TypeVars {
		lookup[tv.Id()] = ctx.vt.New(level, types.TypeSort)
	}
	for _, rv := range s.RowVars {
		lookup[rv.Id()] = ctx.vt.New(level, types.RowSort)
	}
	for _, p := range s.Constraints {
		ctx.pushPred(types.Pred{Class: p.Class, Param: types.Subst(p.Param, lookup)}, site, level, loc)
	}
	return types.Subst(s.Type, lookup)
}

// instantiateDecl freshens a nominal declaration's parameter variables at
// the given level, returning the instantiated result type alongside the
// substitution for field types.
func (ctx *InferenceContext) instantiateDecl(level int, decl *types.TypeDecl) (types.Type, map[int]*types.Var) {
	if len(decl.Params) == 0 {
		return &types.Const{Name: decl.Name}, nil
	}
	lookup := make(map[int]*types.Var, len(decl.Params))
	args := make([]types.Type, len(decl.Params))
	for i, p := range decl.Params {
		nv := ctx.vt.New(level, p.Sort())
		lookup[p.Id()] = nv
		args[i] = nv
	}
	return &types.App{Const: &types.Const{Name: decl.Name}, Args: args}, lookup
}
