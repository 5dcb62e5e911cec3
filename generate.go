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
	"github.com/vesper-lang/vesper/internal/util"
	"github.com/vesper-lang/vesper/types"
)

var (
	intType    = &types.Const{Name: "int"}
	floatType  = &types.Const{Name: "float"}
	boolType   = &types.Const{Name: "bool"}
	stringType = &types.Const{Name: "string"}
	unitType   = &types.Const{Name: "unit"}
)

// inferExpr walks an expression in syntactic order, emitting constraints
// against the ambient effect row eff. Each node is annotated with its
// type and the row it was checked against.
func (ctx *InferenceContext) inferExpr(env *TypeEnv, level int, e ast.Expr, eff types.Type) (types.Type, *Diagnostic) {
	t, d := ctx.inferExprInner(env, level, e, eff)
	if d != nil {
		return nil, d
	}
	e.SetType(t, eff)
	return t, nil
}

func (ctx *InferenceContext) inferExprInner(env *TypeEnv, level int, e ast.Expr, eff types.Type) (types.Type, *Diagnostic) {
	switch e := e.(type) {
	case *ast.Literal:
		return literalType(e.Kind), nil

	case *ast.Var:
		scheme, ok := env.Lookup(e.Name)
		if !ok {
			return nil, &Diagnostic{Kind: UndefinedName, Primary: e.Loc, Names: []string{e.Name}}
		}
		return ctx.instantiate(level, scheme, e, e.Loc), nil

	case *ast.Call:
		ft, d := ctx.inferExpr(env, level, e.Func, eff)
		if d != nil {
			return nil, d
		}
		args := make([]types.Type, len(e.Args))
		for i, arg := range e.Args {
			at, d := ctx.inferExpr(env, level, arg, eff)
			if d != nil {
				return nil, d
			}
			args[i] = at
		}
		ret := ctx.vt.New(level, types.TypeSort)
		// The callee's latent effects unify with the ambient row: a call
		// releases whatever the function body may perform.
		ctx.pushEq(ft, &types.Arrow{Args: args, Return: ret, Effects: eff}, e.Loc, e.Func.Span())
		return ret, nil

	case *ast.Func:
		scope := env
		args := make([]types.Type, len(e.ArgNames))
		for i, name := range e.ArgNames {
			av := ctx.vt.New(level, types.TypeSort)
			args[i] = av
			scope = scope.Extend(name, types.MonoScheme(av))
		}
		// The body's effects are latent until the function is applied.
		bodyEff := ctx.vt.New(level, types.RowSort)
		bodyT, d := ctx.inferExpr(scope, level, e.Body, bodyEff)
		if d != nil {
			return nil, d
		}
		return &types.Arrow{Args: args, Return: bodyT, Effects: bodyEff}, nil

	case *ast.Let:
		if !isNonExpansive(e.Value) {
			// Value restriction: the binding's evaluation may allocate or
			// perform, so its type and row variables stay monomorphic.
			vt, d := ctx.inferExpr(env, level, e.Value, eff)
			if d != nil {
				return nil, d
			}
			return ctx.inferExpr(env.Extend(e.Var, types.MonoScheme(vt)), level, e.Body, eff)
		}
		scope := env
		var recVar *types.Var
		if _, isFunc := e.Value.(*ast.Func); isFunc {
			recVar = ctx.vt.New(level+1, types.TypeSort)
			scope = scope.Extend(e.Var, types.MonoScheme(recVar))
		}
		// A syntactic value performs nothing when evaluated.
		vt, d := ctx.inferExpr(scope, level+1, e.Value, types.RowEmptyPointer)
		if d != nil {
			return nil, d
		}
		if recVar != nil {
			ctx.pushEq(recVar, vt, e.Value.Span())
		}
		if d := ctx.flush(); d != nil {
			return nil, d
		}
		scheme := ctx.generalize(level, vt)
		return ctx.inferExpr(env.Extend(e.Var, scheme), level, e.Body, eff)

	case *ast.LetGroup:
		scope, d := ctx.inferGroup(env, level, e, eff)
		if d != nil {
			return nil, d
		}
		return ctx.inferExpr(scope, level, e.Body, eff)

	case *ast.Ctor:
		decl, ctor, ok := env.Decls.LookupCtor(e.Name)
		if !ok {
			return nil, &Diagnostic{Kind: UndefinedName, Primary: e.Loc, Names: []string{e.Name}}
		}
		if len(e.Args) != len(ctor.Fields) {
			return nil, &Diagnostic{
				Kind:    TypeMismatch,
				Primary: e.Loc,
				Names:   []string{e.Name},
				Note:    "wrong number of constructor arguments",
			}
		}
		result, lookup := ctx.instantiateDecl(level, decl)
		for i, arg := range e.Args {
			at, d := ctx.inferExpr(env, level, arg, eff)
			if d != nil {
				return nil, d
			}
			ctx.pushEq(at, types.Subst(ctor.Fields[i], lookup), arg.Span())
		}
		return result, nil

	case *ast.Match:
		return ctx.inferMatch(env, level, e, eff)

	case *ast.Perform:
		decl, ok := env.Decls.LookupEffect(e.Label)
		if !ok {
			return nil, &Diagnostic{Kind: UndefinedName, Primary: e.Loc, Names: []string{e.Label}}
		}
		if len(e.Args) != len(decl.Params) {
			return nil, &Diagnostic{
				Kind:    TypeMismatch,
				Primary: e.Loc,
				Names:   []string{e.Label},
				Note:    "wrong number of operation arguments",
			}
		}
		for i, arg := range e.Args {
			at, d := ctx.inferExpr(env, level, arg, eff)
			if d != nil {
				return nil, d
			}
			ctx.pushEq(at, decl.Params[i], arg.Span())
		}
		// The ambient row must admit the label with the operation's
		// declared signature.
		ctx.pushLabel(eff, e.Label, decl.Signature(), level, e.Loc)
		return decl.Result, nil

	case *ast.Handle:
		return ctx.inferHandle(env, level, e, eff)
	}

	return nil, &Diagnostic{Kind: TypeMismatch, Primary: e.Span(), Note: "unhandled expression form " + e.ExprName()}
}

func literalType(kind ast.LitKind) types.Type {
	switch kind {
	case ast.IntLit:
		return intType
	case ast.FloatLit:
		return floatType
	case ast.BoolLit:
		return boolType
	case ast.StringLit:
		return stringType
	default:
		return unitType
	}
}

// flush solves everything queued so far and resolves every grounded class
// constraint. Called at generalization points so no solvable constraint
// is quantified over.
func (ctx *InferenceContext) flush() *Diagnostic {
	if d := ctx.solveAll(); d != nil {
		return d
	}
	return ctx.resolveDeferred()
}

// inferGroup checks a grouped let binding by binding-dependency strongly
// connected components, dependencies first. Each component's members are
// bound monomorphically while the component is checked, then generalized
// together, so mutual recursion is monomorphic inside the component and
// polymorphic below it.
func (ctx *InferenceContext) inferGroup(env *TypeEnv, level int, e *ast.LetGroup, eff types.Type) (*TypeEnv, *Diagnostic) {
	names := make([]string, len(e.Vars))
	values := make([]ast.Expr, len(e.Vars))
	for i, b := range e.Vars {
		names[i], values[i] = b.Var, b.Value
	}
	scope := env
	for _, group := range astutil.Group(names, values) {
		expansive := false
		for _, i := range group {
			if !isNonExpansive(values[i]) {
				expansive = true
				break
			}
		}
		if expansive {
			// The whole component is kept monomorphic: generalizing one
			// member would quantify variables shared with an expansive one.
			for _, i := range group {
				vt, d := ctx.inferExpr(scope, level, values[i], eff)
				if d != nil {
					return nil, d
				}
				scope = scope.Extend(names[i], types.MonoScheme(vt))
			}
			continue
		}

		recScope := scope
		recVars := make([]*types.Var, len(group))
		for gi, i := range group {
			recVars[gi] = ctx.vt.New(level+1, types.TypeSort)
			recScope = recScope.Extend(names[i], types.MonoScheme(recVars[gi]))
		}
		for gi, i := range group {
			vt, d := ctx.inferExpr(recScope, level+1, values[i], types.RowEmptyPointer)
			if d != nil {
				return nil, d
			}
			ctx.pushEq(recVars[gi], vt, values[i].Span())
		}
		if d := ctx.flush(); d != nil {
			return nil, d
		}
		for gi, i := range group {
			scope = scope.Extend(names[i], ctx.generalize(level, recVars[gi]))
		}
	}
	return scope, nil
}

func (ctx *InferenceContext) inferMatch(env *TypeEnv, level int, e *ast.Match, eff types.Type) (types.Type, *Diagnostic) {
	scrutinee, d := ctx.inferExpr(env, level, e.Value, eff)
	if d != nil {
		return nil, d
	}
	result := ctx.vt.New(level, types.TypeSort)

	var matchDecl *types.TypeDecl
	matched := util.NewStringDedupeMap()
	defer matched.Release()
	catchAll := false
	for i := range e.Arms {
		arm := &e.Arms[i]
		scope := env
		switch p := arm.Pattern.(type) {
		case *ast.CtorPat:
			decl, ctor, ok := env.Decls.LookupCtor(p.Name)
			if !ok {
				return nil, &Diagnostic{Kind: UndefinedName, Primary: p.Loc, Names: []string{p.Name}}
			}
			if len(p.Binds) != len(ctor.Fields) {
				return nil, &Diagnostic{
					Kind:    TypeMismatch,
					Primary: p.Loc,
					Names:   []string{p.Name},
					Note:    "wrong number of pattern bindings",
				}
			}
			declT, lookup := ctx.instantiateDecl(level, decl)
			ctx.pushEq(scrutinee, declT, p.Loc, e.Value.Span())
			for fi, bind := range p.Binds {
				if bind == "_" {
					continue
				}
				scope = scope.Extend(bind, types.MonoScheme(types.Subst(ctor.Fields[fi], lookup)))
			}
			matched[p.Name] = true
			matchDecl = decl
		case *ast.VarPat:
			if !p.IsWildcard() {
				scope = scope.Extend(p.Name, types.MonoScheme(scrutinee))
			}
			catchAll = true
		}
		armT, d := ctx.inferExpr(scope, level, arm.Body, eff)
		if d != nil {
			return nil, d
		}
		ctx.pushEq(armT, result, arm.Body.Span(), e.Loc)
	}

	// Missing constructors are reported without aborting the walk; the
	// match still types at the join of its arms.
	if !catchAll && matchDecl != nil {
		var missing []string
		for i := range matchDecl.Ctors {
			if name := matchDecl.Ctors[i].Name; !matched[name] {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			ctx.diags = append(ctx.diags, &Diagnostic{
				Kind:    NonExhaustiveMatch,
				Primary: e.Loc,
				Names:   missing,
			})
		}
	}
	return result, nil
}

// inferHandle checks a handler. The handled computation is checked against
// a row containing every handled label over a fresh residual tail; the
// tail then unifies with the surrounding ambient row, which is what
// discharges the handled labels from the handler's own context.
func (ctx *InferenceContext) inferHandle(env *TypeEnv, level int, e *ast.Handle, eff types.Type) (types.Type, *Diagnostic) {
	decls := make([]*types.EffectDecl, len(e.Arms))
	labels := types.NewEffectMapBuilder()
	for i := range e.Arms {
		arm := &e.Arms[i]
		decl, ok := env.Decls.LookupEffect(arm.Label)
		if !ok {
			return nil, &Diagnostic{Kind: UndefinedName, Primary: arm.Loc, Names: []string{arm.Label}}
		}
		if len(arm.Params) != len(decl.Params) {
			return nil, &Diagnostic{
				Kind:    TypeMismatch,
				Primary: arm.Loc,
				Names:   []string{arm.Label},
				Note:    "wrong number of operation parameters",
			}
		}
		decls[i] = decl
		labels.Set(arm.Label, decl.Signature())
	}

	residual := ctx.vt.New(level, types.RowSort)
	bodyEff := &types.Row{Labels: labels.Build(), Rest: residual}
	bodyT, d := ctx.inferExpr(env, level, e.Body, bodyEff)
	if d != nil {
		return nil, d
	}
	result := ctx.vt.New(level, types.TypeSort)
	ctx.pushEq(bodyT, result, e.Body.Span(), e.Loc)
	// Unhandled effects flow out to the surrounding context.
	ctx.pushRowEq(residual, eff, e.Loc)

	for i := range e.Arms {
		arm := &e.Arms[i]
		decl := decls[i]
		scope := env
		for pi, name := range arm.Params {
			scope = scope.Extend(name, types.MonoScheme(decl.Params[pi]))
		}
		resume := &types.Arrow{Args: []types.Type{decl.Result}, Return: result, Effects: residual}
		scope = scope.Extend(arm.Resume, types.MonoScheme(resume))
		armT, d := ctx.inferExpr(scope, level, arm.Body, eff)
		if d != nil {
			return nil, d
		}
		ctx.pushEq(armT, result, arm.Body.Span(), e.Loc)
	}
	return result, nil
}

// isNonExpansive reports whether evaluating e cannot allocate mutable
// state or perform an effect: literals, variables, abstractions, and
// constructors over non-expansive arguments. Only these generalize.
func isNonExpansive(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Literal, *ast.Var, *ast.Func:
		return true
	case *ast.Ctor:
		for _, arg := range e.Args {
			if !isNonExpansive(arg) {
				return false
			}
		}
		return true
	case *ast.Let:
		return isNonExpansive(e.Value) && isNonExpansive(e.Body)
	default:
		return false
	}
}
