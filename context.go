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
	"github.com/vesper-lang/vesper/internal/astutil"
	"github.com/vesper-lang/vesper/types"
)

// InferenceContext is a reusable inference driver. A context may be reused
// across runs but never used concurrently.
type InferenceContext struct {
	vt       varTracker
	env      *TypeEnv
	queue    []constraint
	deferred []constraint
	diags    []*Diagnostic

	needsReset bool
}

// NewContext creates an inference driver.
func NewContext() *InferenceContext { return &InferenceContext{} }

// Diagnostics returns every failure collected by the most recent run, in
// source order.
func (ctx *InferenceContext) Diagnostics() []*Diagnostic { return ctx.diags }

func (ctx *InferenceContext) begin(env *TypeEnv) {
	if ctx.needsReset {
		ctx.reset()
	}
	ctx.needsReset = true
	ctx.env = env
	if env.NextVarId > ctx.vt.NextId {
		ctx.vt.NextId = env.NextVarId
	}
}

func (ctx *InferenceContext) finish(env *TypeEnv) {
	ctx.vt.FlattenLinks()
	env.NextVarId = ctx.vt.NextId
}

func (ctx *InferenceContext) reset() {
	ctx.vt.Reset()
	ctx.queue, ctx.deferred, ctx.diags = nil, nil, nil
	ctx.env = nil
	ctx.needsReset = false
}

// Infer the type and effect row of an expression within an environment.
// The expression is checked against a fresh open ambient row, so any
// unhandled operation surfaces as a label in the returned row rather than
// as an error. The first fatal failure aborts the run; non-fatal findings
// such as missing match arms accumulate in Diagnostics.
func (ctx *InferenceContext) Infer(e ast.Expr, env *TypeEnv) (types.Type, types.Type, error) {
	ctx.begin(env)
	level := types.TopLevel + 1
	eff := ctx.vt.New(level, types.RowSort)
	t, d := ctx.inferExpr(env, level, e, eff)
	if d == nil {
		d = ctx.flush()
	}
	if d != nil {
		ctx.diags = append(ctx.diags, d)
		ctx.finish(env)
		return nil, nil, d
	}
	// Quantify at the outermost level so residual class constraints over
	// the expression's own polymorphism become scheme context instead of
	// ambiguity errors.
	scheme := ctx.generalize(types.TopLevel, t)
	if amb := ctx.ambiguityCheck(); len(amb) > 0 {
		ctx.diags = append(ctx.diags, amb...)
		ctx.finish(env)
		return nil, nil, amb[0]
	}
	ctx.finish(env)
	return types.RealType(scheme.Type), types.RealType(eff), nil
}

// InferModule types every declaration of a module. Nominal type and effect
// declarations register first, then value bindings are processed in
// dependency order, dependencies before their users. A failing binding
// does not stop the run: its component is bound to an opaque polymorphic
// scheme so downstream bindings report their own errors instead of echoes
// of the first one. All failures are returned in source order.
func (ctx *InferenceContext) InferModule(mod *ast.Module, env *TypeEnv) []*Diagnostic {
	ctx.begin(env)
	for _, decl := range mod.Decls {
		switch decl := decl.(type) {
		case *ast.DataDecl:
			if err := env.Decls.AddType(decl.Decl); err != nil {
				ctx.diags = append(ctx.diags, &Diagnostic{Kind: TypeMismatch, Primary: decl.Loc, Note: err.Error()})
			}
		case *ast.EffectDecl:
			if err := env.Decls.AddEffect(decl.Decl); err != nil {
				ctx.diags = append(ctx.diags, &Diagnostic{Kind: TypeMismatch, Primary: decl.Loc, Note: err.Error()})
			}
		}
	}

	var (
		decls  []*ast.ValueDecl
		names  []string
		values []ast.Expr
	)
	for _, decl := range mod.Decls {
		if vd, ok := decl.(*ast.ValueDecl); ok {
			decls = append(decls, vd)
			names = append(names, vd.Name)
			values = append(values, vd.Value)
		}
	}
	for _, group := range astutil.Group(names, values) {
		ctx.inferTopGroup(env, decls, group)
	}
	ctx.finish(env)
	return ctx.diags
}

// inferTopGroup checks one dependency component of a module's value
// bindings and declares the results into the environment.
func (ctx *InferenceContext) inferTopGroup(env *TypeEnv, decls []*ast.ValueDecl, group []int) {
	level := types.TopLevel + 1
	fail := func(d *Diagnostic) {
		ctx.diags = append(ctx.diags, d)
		ctx.queue = ctx.queue[:0]
		ctx.deferred = ctx.deferred[:0]
		for _, i := range group {
			s := ctx.errorScheme()
			env.Declare(decls[i].Name, s)
			decls[i].SetScheme(s, types.RowEmptyPointer)
		}
	}

	expansive := false
	for _, i := range group {
		if !isNonExpansive(decls[i].Value) {
			expansive = true
			break
		}
	}
	if expansive {
		// Evaluated for effect at module initialization; the residual row
		// records what initialization may perform.
		for _, i := range group {
			eff := ctx.vt.New(level, types.RowSort)
			t, d := ctx.inferExpr(env, level, decls[i].Value, eff)
			if d == nil {
				d = ctx.flush()
			}
			if d != nil {
				fail(d)
				return
			}
			s := types.MonoScheme(types.RealType(t))
			env.Declare(decls[i].Name, s)
			decls[i].SetScheme(s, types.RealType(eff))
		}
		ctx.diags = append(ctx.diags, ctx.ambiguityCheck()...)
		return
	}

	scope := env
	recVars := make([]*types.Var, len(group))
	for gi, i := range group {
		recVars[gi] = ctx.vt.New(level, types.TypeSort)
		scope = scope.Extend(decls[i].Name, types.MonoScheme(recVars[gi]))
	}
	for gi, i := range group {
		t, d := ctx.inferExpr(scope, level, decls[i].Value, types.RowEmptyPointer)
		if d != nil {
			fail(d)
			return
		}
		ctx.pushEq(recVars[gi], t, decls[i].Value.Span())
	}
	if d := ctx.flush(); d != nil {
		fail(d)
		return
	}
	for gi, i := range group {
		s := ctx.generalize(types.TopLevel, recVars[gi])
		env.Declare(decls[i].Name, s)
		decls[i].SetScheme(s, types.RowEmptyPointer)
	}
	ctx.diags = append(ctx.diags, ctx.ambiguityCheck()...)
}

// errorScheme is the binding scheme used after a component fails: opaque
// and maximally polymorphic, so uses of the failed binding unify with
// anything and do not cascade.
func (ctx *InferenceContext) errorScheme() *types.Scheme {
	tv := ctx.vt.NewGeneric(types.TypeSort)
	return &types.Scheme{TypeVars: []*types.Var{tv}, Type: tv}
}
