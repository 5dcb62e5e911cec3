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

// unifyError is a unification failure before provenance is attached; the
// solver wraps it into a Diagnostic with the failing constraint's spans.
type unifyError struct {
	kind     DiagKind
	expected types.Type
	actual   types.Type
	label    string
	note     string
}

func (e *unifyError) Error() string { return e.kind.String() }

func mismatch(expected, actual types.Type) *unifyError {
	return &unifyError{kind: TypeMismatch, expected: expected, actual: actual}
}

// occursAdjustLevels checks that the variable with the given id does not
// occur in t, and lowers the binding-level of every variable in t to at
// most level, which keeps generalization scoping sound after the binding.
func (ctx *InferenceContext) occursAdjustLevels(id, level int, t types.Type) *unifyError {
	switch t := t.(type) {
	case *types.Var:
		switch {
		case t.IsLinkVar():
			return ctx.occursAdjustLevels(id, level, t.Link())
		case t.IsGenericVar():
			return &unifyError{kind: TypeMismatch, note: "generic variable was not instantiated before unification"}
		default:
			if t.Id() == id {
				return &unifyError{kind: InfiniteType}
			}
			if t.Level() > level {
				t.SetLevel(level)
			}
		}
		return nil

	case *types.App:
		if err := ctx.occursAdjustLevels(id, level, t.Const); err != nil {
			return err
		}
		for _, arg := range t.Args {
			if err := ctx.occursAdjustLevels(id, level, arg); err != nil {
				return err
			}
		}
		return nil

	case *types.Arrow:
		for _, arg := range t.Args {
			if err := ctx.occursAdjustLevels(id, level, arg); err != nil {
				return err
			}
		}
		if err := ctx.occursAdjustLevels(id, level, t.Return); err != nil {
			return err
		}
		return ctx.occursAdjustLevels(id, level, t.Effects)

	case *types.Row:
		var err *unifyError
		t.Labels.Range(func(label string, payload types.Type) bool {
			err = ctx.occursAdjustLevels(id, level, payload)
			return err == nil
		})
		if err != nil {
			return err
		}
		return ctx.occursAdjustLevels(id, level, t.Rest)

	default:
		return nil
	}
}

// unify makes a and b equal by binding variables, composing each binding
// into the running substitution (the link store) so every later constraint
// sees already-resolved structure.
func (ctx *InferenceContext) unify(a, b types.Type) *unifyError {
	a, b = types.RealType(a), types.RealType(b)
	if a == b {
		return nil
	}

	avar, _ := a.(*types.Var)
	bvar, _ := b.(*types.Var)
	switch {
	case avar == nil && bvar != nil:
		return ctx.unify(b, a)

	case avar != nil:
		if avar.IsGenericVar() {
			return &unifyError{kind: TypeMismatch, note: "generic variable was not instantiated before unification"}
		}
		if bvar != nil {
			if bvar.IsUnboundVar() && avar.Id() == bvar.Id() {
				return nil
			}
			if avar.Sort() != bvar.Sort() {
				return &unifyError{kind: TypeMismatch, note: "cannot unify a type variable with a row variable"}
			}
			// Bind the higher-rank variable to the lower-rank one so the
			// binding never outlives its scope:
			if bvar.IsUnboundVar() && avar.Level() < bvar.Level() {
				avar, bvar = bvar, avar
				b = bvar
			}
		} else if !sortMatches(avar.Sort(), b) {
			return mismatch(avar, b)
		}
		if err := ctx.occursAdjustLevels(avar.Id(), avar.Level(), b); err != nil {
			if err.kind == InfiniteType {
				return &unifyError{kind: InfiniteType, expected: avar, actual: b}
			}
			return err
		}
		avar.SetLink(b)
		return nil
	}

	switch a := a.(type) {
	case *types.Const:
		if b, ok := b.(*types.Const); ok {
			if a.Name == b.Name {
				return nil
			}
		}
		return mismatch(a, b)

	case *types.App:
		bapp, ok := b.(*types.App)
		if !ok {
			return mismatch(a, b)
		}
		if err := ctx.unify(a.Const, bapp.Const); err != nil {
			return err
		}
		if len(a.Args) != len(bapp.Args) {
			return &unifyError{kind: TypeMismatch, expected: a, actual: bapp, note: "differing arity"}
		}
		for i := range a.Args {
			if err := ctx.unify(a.Args[i], bapp.Args[i]); err != nil {
				return err
			}
		}
		return nil

	case *types.Arrow:
		barr, ok := b.(*types.Arrow)
		if !ok {
			return mismatch(a, b)
		}
		if len(a.Args) != len(barr.Args) {
			return &unifyError{kind: TypeMismatch, expected: a, actual: barr, note: "differing arity"}
		}
		for i := range a.Args {
			if err := ctx.unify(a.Args[i], barr.Args[i]); err != nil {
				return err
			}
		}
		if err := ctx.unify(a.Return, barr.Return); err != nil {
			return err
		}
		return ctx.unify(a.Effects, barr.Effects)

	case *types.Row:
		switch b.(type) {
		case *types.Row, types.RowEmpty:
			return ctx.unifyRows(a, b)
		}
		return mismatch(a, b)

	case types.RowEmpty:
		if _, ok := b.(*types.Row); ok {
			return ctx.unifyRows(a, b)
		}
		return mismatch(a, b)
	}

	return mismatch(a, b)
}

func sortMatches(sort types.Sort, t types.Type) bool {
	switch t.(type) {
	case *types.Row, types.RowEmpty:
		return sort == types.RowSort
	default:
		return sort == types.TypeSort
	}
}

// unifyRows unifies two effect rows as resizable label sets. Shared labels
// must agree on their signatures; labels present on only one side are
// pushed into the other side's tail. Two open rows unite through a fresh
// tail variable; a closed row missing a required label is a conflict. No
// label is ever lost or duplicated.
func (ctx *InferenceContext) unifyRows(a, b types.Type) *unifyError {
	la, ra, errA := types.FlattenRow(a)
	if errA != nil {
		return &unifyError{kind: TypeMismatch, note: "not an effect row"}
	}
	lb, rb, errB := types.FlattenRow(b)
	if errB != nil {
		return &unifyError{kind: TypeMismatch, note: "not an effect row"}
	}

	// Partition the label sets; labels missing from la/lb respectively:
	xa, xb := types.NewEffectMapBuilder(), types.NewEffectMapBuilder()
	var payloadErr *unifyError
	la.Range(func(label string, pa types.Type) bool {
		pb, shared := lb.Get(label)
		if !shared {
			xb.Set(label, pa)
			return true
		}
		if err := ctx.unify(pa, pb); err != nil {
			payloadErr = &unifyError{kind: EffectMismatch, label: label, expected: pa, actual: pb}
			return false
		}
		return true
	})
	if payloadErr != nil {
		return payloadErr
	}
	lb.Range(func(label string, pb types.Type) bool {
		if _, shared := la.Get(label); !shared {
			xa.Set(label, pb)
		}
		return true
	})

	missingA, missingB := xa.Build(), xb.Build()
	za, zb := missingA.Len() == 0, missingB.Len() == 0
	switch {
	case za && zb: // label sets match
		return ctx.unify(ra, rb)
	case za && !zb: // labels missing from b
		return ctx.absorb(rb, missingB, ra)
	case !za && zb: // labels missing from a
		return ctx.absorb(ra, missingA, rb)
	default: // labels missing from both sides
		rav, ok := types.RealType(ra).(*types.Var)
		if !ok || !rav.IsUnboundVar() {
			return &unifyError{kind: RowConflict, label: firstLabel(missingA)}
		}
		tail := ctx.vt.New(rav.Level(), types.RowSort)
		if err := ctx.absorb(rb, missingB, tail); err != nil {
			return err
		}
		if rav.IsLinkVar() {
			return &unifyError{kind: InfiniteType, expected: rav, actual: b, note: "recursive effect row"}
		}
		return ctx.absorb(ra, missingA, tail)
	}
}

// absorb binds an open row's tail to the labels the other side requires,
// over the given residual tail.
func (ctx *InferenceContext) absorb(rest types.Type, labels types.EffectMap, tail types.Type) *unifyError {
	if _, closed := types.RealType(rest).(types.RowEmpty); closed {
		return &unifyError{kind: RowConflict, label: firstLabel(labels)}
	}
	return ctx.unify(rest, &types.Row{Labels: labels, Rest: tail})
}

func firstLabel(m types.EffectMap) string {
	first := ""
	m.Range(func(label string, _ types.Type) bool {
		first = label
		return false
	})
	return first
}
