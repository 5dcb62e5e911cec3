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
	"strings"
	"testing"

	"github.com/vesper-lang/vesper/types"
)

func TestBuildInstanceTableLookup(t *testing.T) {
	env := NewTypeEnv(nil)
	a := env.NewGenericVar(types.TypeSort)
	table, err := BuildInstanceTable(
		[]*types.TypeClass{{Name: "Show"}},
		[]*types.Instance{
			{Class: "Show", Param: &types.Const{Name: "int"}, Dict: "showInt"},
			{Class: "Show", Param: &types.App{Const: &types.Const{Name: "option"}, Args: []types.Type{a}},
				Context: []types.Pred{{Class: "Show", Param: a}}, Dict: "showOption"},
		})
	if err != nil {
		t.Fatal(err)
	}
	inst, ok := table.Lookup("Show", "option")
	if !ok || inst.Dict != "showOption" {
		t.Fatalf("lookup: %v %v", inst, ok)
	}
	if _, ok := table.Lookup("Show", "bool"); ok {
		t.Fatal("unexpected instance for bool")
	}
	if _, ok := table.Lookup("Eq", "int"); ok {
		t.Fatal("unexpected instance for unknown class")
	}
	if _, ok := table.Class("Show"); !ok {
		t.Fatal("class lookup")
	}
}

func TestOverlappingInstance(t *testing.T) {
	_, err := BuildInstanceTable(
		[]*types.TypeClass{{Name: "Show"}},
		[]*types.Instance{
			{Class: "Show", Param: &types.Const{Name: "int"}, Dict: "showInt"},
			{Class: "Show", Param: &types.Const{Name: "int"}, Dict: "showInt2"},
		})
	d, ok := err.(*Diagnostic)
	if !ok {
		t.Fatalf("error: %v", err)
	}
	if d.Kind != OverlappingInstance || d.Class != "Show" {
		t.Fatalf("diagnostic: %v", d)
	}
	if len(d.Names) != 1 || d.Names[0] != "int" {
		t.Fatalf("head: %v", d.Names)
	}
}

func TestSuperclassCycle(t *testing.T) {
	_, err := BuildInstanceTable(
		[]*types.TypeClass{
			{Name: "A", Super: []string{"B"}},
			{Name: "B", Super: []string{"A"}},
		}, nil)
	if err == nil || !strings.Contains(err.Error(), "superclass cycle") {
		t.Fatalf("error: %v", err)
	}
}

func TestSelfSuperclass(t *testing.T) {
	_, err := BuildInstanceTable([]*types.TypeClass{{Name: "A", Super: []string{"A"}}}, nil)
	if err == nil || !strings.Contains(err.Error(), "own superclass") {
		t.Fatalf("error: %v", err)
	}
}

func TestUnknownSuperclass(t *testing.T) {
	_, err := BuildInstanceTable([]*types.TypeClass{{Name: "A", Super: []string{"Missing"}}}, nil)
	if err == nil || !strings.Contains(err.Error(), "unknown superclass") {
		t.Fatalf("error: %v", err)
	}
}

func TestInstanceForUnknownClass(t *testing.T) {
	_, err := BuildInstanceTable(nil, []*types.Instance{
		{Class: "Show", Param: &types.Const{Name: "int"}, Dict: "showInt"},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown class") {
		t.Fatalf("error: %v", err)
	}
}

func TestInstanceHeadNeedsConstructor(t *testing.T) {
	env := NewTypeEnv(nil)
	a := env.NewGenericVar(types.TypeSort)
	_, err := BuildInstanceTable(
		[]*types.TypeClass{{Name: "Show"}},
		[]*types.Instance{{Class: "Show", Param: a, Dict: "showAny"}})
	if err == nil || !strings.Contains(err.Error(), "no concrete constructor") {
		t.Fatalf("error: %v", err)
	}
}

func TestInstanceContextScopedToHead(t *testing.T) {
	env := NewTypeEnv(nil)
	a := env.NewGenericVar(types.TypeSort)
	b := env.NewGenericVar(types.TypeSort)
	_, err := BuildInstanceTable(
		[]*types.TypeClass{{Name: "Show"}},
		[]*types.Instance{{
			Class:   "Show",
			Param:   &types.App{Const: &types.Const{Name: "option"}, Args: []types.Type{a}},
			Context: []types.Pred{{Class: "Show", Param: b}},
			Dict:    "showOption",
		}})
	if err == nil || !strings.Contains(err.Error(), "outside the instance head") {
		t.Fatalf("error: %v", err)
	}
}

func TestDuplicateClass(t *testing.T) {
	_, err := BuildInstanceTable([]*types.TypeClass{{Name: "Show"}, {Name: "Show"}}, nil)
	if err == nil || !strings.Contains(err.Error(), "already declared") {
		t.Fatalf("error: %v", err)
	}
}
