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
	"testing"

	"github.com/vesper-lang/vesper/ast"
	"github.com/vesper-lang/vesper/types"
)

// classEnv extends basicEnv with: class Show, instances Show int and
// Show option[a] (with context Show a), and show : (Show a) => a -> string.
func classEnv(t *testing.T) *TypeEnv {
	t.Helper()
	env := basicEnv(t)

	ov := env.NewGenericVar(types.TypeSort)
	table, err := BuildInstanceTable(
		[]*types.TypeClass{{Name: "Show"}},
		[]*types.Instance{
			{Class: "Show", Param: intConst(), Dict: "showInt"},
			{
				Class:   "Show",
				Param:   &types.App{Const: &types.Const{Name: "option"}, Args: []types.Type{ov}},
				Context: []types.Pred{{Class: "Show", Param: ov}},
				Dict:    "showOption",
			},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	env.Instances = table

	sv := env.NewGenericVar(types.TypeSort)
	sr := env.NewGenericVar(types.RowSort)
	env.AddPoly("show", &types.Arrow{
		Args:    []types.Type{sv},
		Return:  stringConst(),
		Effects: sr,
	}, types.Pred{Class: "Show", Param: sv})
	return env
}

func dictNames(refs []types.DictRef) []string {
	names := make([]string, len(refs))
	for i, d := range refs {
		names[i] = d.Name()
	}
	return names
}

func TestInstanceResolution(t *testing.T) {
	env := classEnv(t)
	ctx := NewContext()

	showVar := &ast.Var{Name: "show"}
	expr := &ast.Call{
		Func: showVar,
		Args: []ast.Expr{&ast.Ctor{Name: "Some", Args: []ast.Expr{intLit("1")}}},
	}
	ty, _, err := ctx.Infer(expr, env)
	if err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(ty); s != "string" {
		t.Fatalf("type: %s", s)
	}

	// The instance context Show a grounds to Show int, so the use site
	// receives the outer dictionary followed by its context dictionary:
	dicts := showVar.Dicts()
	if len(dicts) != 2 || dicts[0].Name() != "showOption" || dicts[1].Name() != "showInt" {
		t.Fatalf("dicts: %v", dictNames(dicts))
	}
}

func TestReinferenceReplacesDicts(t *testing.T) {
	env := classEnv(t)
	ctx := NewContext()

	showVar := &ast.Var{Name: "show"}
	expr := &ast.Call{
		Func: showVar,
		Args: []ast.Expr{&ast.Ctor{Name: "Some", Args: []ast.Expr{intLit("1")}}},
	}
	// A reusable context re-annotates the same tree; each run must leave
	// exactly the dictionaries it resolved, not accumulate earlier ones.
	for run := 0; run < 3; run++ {
		ty, _, err := ctx.Infer(expr, env)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if s := types.TypeString(ty); s != "string" {
			t.Fatalf("run %d type: %s", run, s)
		}
		dicts := showVar.Dicts()
		if len(dicts) != 2 || dicts[0].Name() != "showOption" || dicts[1].Name() != "showInt" {
			t.Fatalf("run %d dicts: %v", run, dictNames(dicts))
		}
	}
}

func TestNoInstance(t *testing.T) {
	env := classEnv(t)
	ctx := NewContext()

	expr := &ast.Call{
		Func: &ast.Var{Name: "show"},
		Args: []ast.Expr{boolLit("true")},
	}
	_, _, err := ctx.Infer(expr, env)
	if err == nil {
		t.Fatal("expected a missing-instance failure")
	}
	d, ok := err.(*Diagnostic)
	if !ok || d.Kind != NoInstance {
		t.Fatalf("error: %v", err)
	}
	if d.Class != "Show" {
		t.Fatalf("class: %s", d.Class)
	}
}

func TestSuperclassObligation(t *testing.T) {
	env := basicEnv(t)
	ctx := NewContext()

	table, err := BuildInstanceTable(
		[]*types.TypeClass{
			{Name: "Eq"},
			{Name: "Ord", Super: []string{"Eq"}},
		},
		[]*types.Instance{
			{Class: "Eq", Param: intConst(), Dict: "eqInt"},
			{Class: "Ord", Param: intConst(), Dict: "ordInt"},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	env.Instances = table
	cv := env.NewGenericVar(types.TypeSort)
	cr := env.NewGenericVar(types.RowSort)
	env.AddPoly("cmp", &types.Arrow{
		Args:    []types.Type{cv, cv},
		Return:  boolConst(),
		Effects: cr,
	}, types.Pred{Class: "Ord", Param: cv})

	cmpVar := &ast.Var{Name: "cmp"}
	expr := &ast.Call{Func: cmpVar, Args: []ast.Expr{intLit("1"), intLit("2")}}
	ty, _, err := ctx.Infer(expr, env)
	if err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(ty); s != "bool" {
		t.Fatalf("type: %s", s)
	}
	dicts := cmpVar.Dicts()
	if len(dicts) != 2 || dicts[0].Name() != "ordInt" || dicts[1].Name() != "eqInt" {
		t.Fatalf("dicts: %v", dictNames(dicts))
	}
}

func TestMissingSuperclassInstance(t *testing.T) {
	env := basicEnv(t)
	ctx := NewContext()

	table, err := BuildInstanceTable(
		[]*types.TypeClass{
			{Name: "Eq"},
			{Name: "Ord", Super: []string{"Eq"}},
		},
		[]*types.Instance{
			{Class: "Ord", Param: intConst(), Dict: "ordInt"},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	env.Instances = table
	cv := env.NewGenericVar(types.TypeSort)
	cr := env.NewGenericVar(types.RowSort)
	env.AddPoly("cmp", &types.Arrow{
		Args:    []types.Type{cv, cv},
		Return:  boolConst(),
		Effects: cr,
	}, types.Pred{Class: "Ord", Param: cv})

	expr := &ast.Call{Func: &ast.Var{Name: "cmp"}, Args: []ast.Expr{intLit("1"), intLit("2")}}
	_, _, err = ctx.Infer(expr, env)
	if err == nil {
		t.Fatal("expected a missing-instance failure for the superclass")
	}
	d, ok := err.(*Diagnostic)
	if !ok || d.Kind != NoInstance || d.Class != "Eq" {
		t.Fatalf("error: %v", err)
	}
}

func TestDictionaryAbstraction(t *testing.T) {
	env := classEnv(t)
	ctx := NewContext()

	// fn (x) -> show(x) abstracts over the Show dictionary.
	showVar := &ast.Var{Name: "show"}
	expr := &ast.Func{
		ArgNames: []string{"x"},
		Body:     &ast.Call{Func: showVar, Args: []ast.Expr{&ast.Var{Name: "x"}}},
	}
	ty, _, err := ctx.Infer(expr, env)
	if err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(ty); s != "a -[b]-> string" {
		t.Fatalf("type: %s", s)
	}
	dicts := showVar.Dicts()
	if len(dicts) != 1 || !dicts[0].IsParam() || dicts[0].Param != 0 {
		t.Fatalf("dicts: %v", dicts)
	}
}

func TestAmbiguousType(t *testing.T) {
	env := classEnv(t)
	ctx := NewContext()

	uv := env.NewGenericVar(types.TypeSort)
	ur := env.NewGenericVar(types.RowSort)
	env.AddPoly("unknown", &types.Arrow{Return: uv, Effects: ur})

	// let s = show(unknown()) in 1 -- nothing ever grounds the Show parameter
	expr := &ast.Let{
		Var: "s",
		Value: &ast.Call{
			Func: &ast.Var{Name: "show"},
			Args: []ast.Expr{&ast.Call{Func: &ast.Var{Name: "unknown"}}},
		},
		Body: intLit("1"),
	}
	_, _, err := ctx.Infer(expr, env)
	if err == nil {
		t.Fatal("expected an ambiguity failure")
	}
	d, ok := err.(*Diagnostic)
	if !ok || d.Kind != AmbiguousType || d.Class != "Show" {
		t.Fatalf("error: %v", err)
	}
}
