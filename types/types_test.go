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
	"testing"
)

func sig(ret Type) *Arrow { return &Arrow{Return: ret, Effects: RowEmptyPointer} }

func TestFlattenRow(t *testing.T) {
	rest := NewVar(0, 1, RowSort)
	inner := SingletonRow("Ask", sig(&Const{Name: "int"}), rest)
	outer := &Row{Labels: SingletonEffectMap("Tell", sig(&Const{Name: "unit"})), Rest: inner}

	labels, tail, err := FlattenRow(outer)
	if err != nil {
		t.Fatal(err)
	}
	if labels.Len() != 2 {
		t.Fatalf("labels: %v", labels.Labels())
	}
	if tail != Type(rest) {
		t.Fatalf("tail: %v", tail)
	}

	// Flattening resolves links in the tail position:
	bound := NewVar(1, 1, RowSort)
	bound.SetLink(inner)
	viaLink := &Row{Labels: SingletonEffectMap("Tell", sig(&Const{Name: "unit"})), Rest: bound}
	labels2, tail2, err := FlattenRow(viaLink)
	if err != nil {
		t.Fatal(err)
	}
	if labels2.Len() != 2 || tail2 != Type(rest) {
		t.Fatalf("labels: %v tail: %v", labels2.Labels(), tail2)
	}

	if _, _, err := FlattenRow(&Const{Name: "int"}); err == nil {
		t.Fatal("expected an error flattening a non-row")
	}
}

func TestRowEqualityIgnoresExtensionOrder(t *testing.T) {
	rest1 := NewVar(0, 1, RowSort)
	askThenTell := SingletonRow("Ask", sig(&Const{Name: "int"}),
		SingletonRow("Tell", sig(&Const{Name: "unit"}), rest1))
	tellThenAsk := SingletonRow("Tell", sig(&Const{Name: "unit"}),
		SingletonRow("Ask", sig(&Const{Name: "int"}), rest1))

	if !Equal(askThenTell, tellThenAsk) {
		t.Fatal("extension order changed row identity")
	}

	closed := SingletonRow("Ask", sig(&Const{Name: "int"}), RowEmptyPointer)
	if Equal(askThenTell, closed) {
		t.Fatal("open row equal to closed row")
	}
}

func TestFreeVarsDeterministicAndDeduplicated(t *testing.T) {
	a := NewVar(0, 1, TypeSort)
	b := NewVar(1, 1, TypeSort)
	r := NewVar(2, 1, RowSort)
	arrow := &Arrow{Args: []Type{a, b, a}, Return: b, Effects: r}

	typeVars, rowVars := FreeVars(arrow)
	if len(typeVars) != 2 || typeVars[0] != a || typeVars[1] != b {
		t.Fatalf("type vars: %v", typeVars)
	}
	if len(rowVars) != 1 || rowVars[0] != r {
		t.Fatalf("row vars: %v", rowVars)
	}

	// Links are resolved before collection:
	linked := NewVar(3, 1, TypeSort)
	linked.SetLink(a)
	typeVars, _ = FreeVars(&App{Const: &Const{Name: "option"}, Args: []Type{linked}})
	if len(typeVars) != 1 || typeVars[0] != a {
		t.Fatalf("type vars through link: %v", typeVars)
	}
}

func TestHeadConst(t *testing.T) {
	if head, ok := HeadConst(&Const{Name: "int"}); !ok || head != "int" {
		t.Fatalf("head: %s %v", head, ok)
	}
	app := &App{Const: &Const{Name: "option"}, Args: []Type{&Const{Name: "int"}}}
	if head, ok := HeadConst(app); !ok || head != "option" {
		t.Fatalf("head: %s %v", head, ok)
	}
	if head, ok := HeadConst(NewPureArrow(&Const{Name: "int"})); !ok || head != "->" {
		t.Fatalf("head: %s %v", head, ok)
	}
	if _, ok := HeadConst(NewVar(0, 1, TypeSort)); ok {
		t.Fatal("variable has no head constructor")
	}
}

func TestTypeString(t *testing.T) {
	a := NewVar(0, 1, TypeSort)
	r := NewVar(1, 1, RowSort)

	cases := []struct {
		t    Type
		want string
	}{
		{&Const{Name: "int"}, "int"},
		{&App{Const: &Const{Name: "option"}, Args: []Type{&Const{Name: "int"}}}, "option[int]"},
		{NewPureArrow(&Const{Name: "int"}, &Const{Name: "int"}), "int -> int"},
		{&Arrow{Return: &Const{Name: "int"}, Effects: SingletonRow("Ask", sig(&Const{Name: "int"}), r)}, "() -[Ask | a]-> int"},
		{&Arrow{Args: []Type{a}, Return: a, Effects: RowEmptyPointer}, "a -> a"},
		{SingletonRow("Ask", sig(&Const{Name: "int"}), RowEmptyPointer), "[Ask]"},
		{RowEmptyPointer, "[]"},
	}
	for _, c := range cases {
		if got := TypeString(c.t); got != c.want {
			t.Fatalf("TypeString: got %s, want %s", got, c.want)
		}
	}
}

func TestSchemeString(t *testing.T) {
	a := NewGenericVar(0, TypeSort)
	r := NewGenericVar(1, RowSort)
	s := &Scheme{
		TypeVars:    []*Var{a},
		RowVars:     []*Var{r},
		Constraints: []Pred{{Class: "Show", Param: a}},
		Type:        &Arrow{Args: []Type{a}, Return: &Const{Name: "string"}, Effects: r},
	}
	if got := SchemeString(s); got != "(Show a) => a -[b]-> string" {
		t.Fatalf("SchemeString: %s", got)
	}
}

func TestSchemeRelabelPreservesSharing(t *testing.T) {
	a := NewGenericVar(0, TypeSort)
	r := NewGenericVar(1, RowSort)
	s := &Scheme{
		TypeVars:    []*Var{a},
		RowVars:     []*Var{r},
		Constraints: []Pred{{Class: "Show", Param: a}},
		Type:        &Arrow{Args: []Type{a}, Return: a, Effects: r},
	}

	next := 100
	fresh := func(sort Sort) *Var {
		v := NewGenericVar(next, sort)
		next++
		return v
	}
	out := s.Relabel(fresh)

	arrow := out.Type.(*Arrow)
	if arrow.Args[0] != out.TypeVars[0] || arrow.Return != out.TypeVars[0] {
		t.Fatal("sharing between occurrences was lost")
	}
	if arrow.Effects != Type(out.RowVars[0]) {
		t.Fatal("row binder not substituted")
	}
	if out.Constraints[0].Param != Type(out.TypeVars[0]) {
		t.Fatal("constraint param not substituted")
	}
	// The original is untouched:
	if s.Type.(*Arrow).Args[0] != Type(a) {
		t.Fatal("original scheme mutated")
	}
}

func TestEffectMapBuilder(t *testing.T) {
	b := NewEffectMapBuilder()
	b.Set("Ask", sig(&Const{Name: "int"}))
	b.Set("Tell", sig(&Const{Name: "unit"}))
	b.Delete("Tell")
	m := b.Build()
	if m.Len() != 1 {
		t.Fatalf("labels: %v", m.Labels())
	}

	other := SingletonEffectMap("Get", sig(&Const{Name: "string"}))
	merged := m.Builder().Merge(other).Build()
	if merged.Len() != 2 {
		t.Fatalf("labels: %v", merged.Labels())
	}
	if got := merged.Labels(); got[0] != "Ask" || got[1] != "Get" {
		t.Fatalf("label order: %v", got)
	}
}

func TestVarFlatten(t *testing.T) {
	a := NewVar(0, 1, TypeSort)
	b := NewVar(1, 1, TypeSort)
	c := NewVar(2, 1, TypeSort)
	b.SetLink(a)
	c.SetLink(b)
	c.Flatten()
	if RealType(c) != Type(a) {
		t.Fatal("flatten changed resolution")
	}
	if c.Link() != Type(a) {
		t.Fatal("link chain not shortened")
	}
}
