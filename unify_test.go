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

	"github.com/vesper-lang/vesper/types"
)

func askSig() *types.Arrow {
	return &types.Arrow{Return: intConst(), Effects: types.RowEmptyPointer}
}

func tellSig() *types.Arrow {
	return &types.Arrow{
		Args:    []types.Type{intConst()},
		Return:  &types.Const{Name: "unit"},
		Effects: types.RowEmptyPointer,
	}
}

func TestUnifyOpenRowUnion(t *testing.T) {
	ctx := NewContext()
	r1 := ctx.vt.New(1, types.RowSort)
	r2 := ctx.vt.New(1, types.RowSort)
	a := types.SingletonRow("Ask", askSig(), r1)
	b := types.SingletonRow("Tell", tellSig(), r2)

	if err := ctx.unify(a, b); err != nil {
		t.Fatal(err)
	}
	// Both rows now contain both labels over a shared tail; no label is
	// lost or duplicated.
	for _, row := range []types.Type{a, b} {
		labels, rest, err := types.FlattenRow(row)
		if err != nil {
			t.Fatal(err)
		}
		if labels.Len() != 2 {
			t.Fatalf("labels: %v", labels.Labels())
		}
		if _, ok := labels.Get("Ask"); !ok {
			t.Fatal("Ask lost")
		}
		if _, ok := labels.Get("Tell"); !ok {
			t.Fatal("Tell lost")
		}
		rv, ok := types.RealType(rest).(*types.Var)
		if !ok || !rv.IsUnboundVar() {
			t.Fatalf("rest: %v", rest)
		}
	}
	if !types.Equal(a, b) {
		t.Fatalf("rows differ: %s vs %s", types.RowString(a), types.RowString(b))
	}
}

func TestUnifyClosedRowMissingLabel(t *testing.T) {
	ctx := NewContext()
	r1 := ctx.vt.New(1, types.RowSort)
	open := types.SingletonRow("Ask", askSig(), r1)
	closed := types.SingletonRow("Tell", tellSig(), types.RowEmptyPointer)

	err := ctx.unify(open, closed)
	if err == nil {
		t.Fatal("expected a row conflict")
	}
	if err.kind != RowConflict || err.label != "Ask" {
		t.Fatalf("error: kind=%v label=%s", err.kind, err.label)
	}
}

func TestUnifySharedLabelSignatureMismatch(t *testing.T) {
	ctx := NewContext()
	r1 := ctx.vt.New(1, types.RowSort)
	r2 := ctx.vt.New(1, types.RowSort)
	a := types.SingletonRow("Ask", askSig(), r1)
	badSig := &types.Arrow{Return: boolConst(), Effects: types.RowEmptyPointer}
	b := types.SingletonRow("Ask", badSig, r2)

	err := ctx.unify(a, b)
	if err == nil {
		t.Fatal("expected a signature mismatch")
	}
	if err.kind != EffectMismatch || err.label != "Ask" {
		t.Fatalf("error: kind=%v label=%s", err.kind, err.label)
	}
}

func TestUnifyEmptyRows(t *testing.T) {
	ctx := NewContext()
	if err := ctx.unify(types.RowEmptyPointer, types.RowEmptyPointer); err != nil {
		t.Fatal(err)
	}
	r := ctx.vt.New(1, types.RowSort)
	if err := ctx.unify(r, types.RowEmptyPointer); err != nil {
		t.Fatal(err)
	}
	if !r.IsLinkVar() {
		t.Fatal("row variable not bound")
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	ctx := NewContext()
	v := ctx.vt.New(1, types.TypeSort)
	arrow := &types.Arrow{Args: []types.Type{v}, Return: intConst(), Effects: types.RowEmptyPointer}

	err := ctx.unify(v, arrow)
	if err == nil {
		t.Fatal("expected an occurs-check failure")
	}
	if err.kind != InfiniteType {
		t.Fatalf("error: %v", err.kind)
	}
}

func TestUnifyBindsDeeperVarToShallower(t *testing.T) {
	ctx := NewContext()
	shallow := ctx.vt.New(1, types.TypeSort)
	deep := ctx.vt.New(5, types.TypeSort)

	if err := ctx.unify(deep, shallow); err != nil {
		t.Fatal(err)
	}
	if !deep.IsLinkVar() || !shallow.IsUnboundVar() {
		t.Fatal("expected the deeper variable to link to the shallower one")
	}
}

func TestUnifyAdjustsLevels(t *testing.T) {
	ctx := NewContext()
	shallow := ctx.vt.New(1, types.TypeSort)
	deep := ctx.vt.New(5, types.TypeSort)
	arrow := &types.Arrow{Args: []types.Type{deep}, Return: intConst(), Effects: types.RowEmptyPointer}

	if err := ctx.unify(shallow, arrow); err != nil {
		t.Fatal(err)
	}
	// The deep variable escaped into a shallower scope and must not be
	// generalized past it:
	if deep.Level() != 1 {
		t.Fatalf("level: %d", deep.Level())
	}
}

func TestUnifySortMismatch(t *testing.T) {
	ctx := NewContext()
	tv := ctx.vt.New(1, types.TypeSort)
	rv := ctx.vt.New(1, types.RowSort)

	if err := ctx.unify(tv, rv); err == nil {
		t.Fatal("expected a sort mismatch between a type and a row variable")
	}
	if err := ctx.unify(tv, types.SingletonRow("Ask", askSig(), types.RowEmptyPointer)); err == nil {
		t.Fatal("expected a sort mismatch binding a type variable to a row")
	}
	if err := ctx.unify(rv, intConst()); err == nil {
		t.Fatal("expected a sort mismatch binding a row variable to a type")
	}
}

func TestUnifyConstAndApp(t *testing.T) {
	ctx := NewContext()
	if err := ctx.unify(intConst(), intConst()); err != nil {
		t.Fatal(err)
	}
	if err := ctx.unify(intConst(), boolConst()); err == nil {
		t.Fatal("expected a constant mismatch")
	}
	v := ctx.vt.New(1, types.TypeSort)
	a := &types.App{Const: &types.Const{Name: "option"}, Args: []types.Type{v}}
	b := &types.App{Const: &types.Const{Name: "option"}, Args: []types.Type{intConst()}}
	if err := ctx.unify(a, b); err != nil {
		t.Fatal(err)
	}
	if !types.Equal(types.RealType(v), intConst()) {
		t.Fatalf("arg: %s", types.TypeString(v))
	}
}
