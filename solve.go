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

// solveAll drains the constraint queue in emission order. Equality and row
// constraints unify immediately through the link store; label constraints
// unify the row against a singleton extension with a fresh residual tail;
// class constraints resolve when their head constructor is concrete and
// defer otherwise. Source-order draining keeps the first reported failure
// deterministic across runs.
func (ctx *InferenceContext) solveAll() *Diagnostic {
	for len(ctx.queue) > 0 {
		c := ctx.queue[0]
		ctx.queue = ctx.queue[1:]
		switch c.kind {
		case eqConstraint, rowConstraint:
			if err := ctx.unify(c.a, c.b); err != nil {
				return ctx.diag(err, c)
			}
		case labelConstraint:
			tail := ctx.vt.New(c.level, types.RowSort)
			want := types.SingletonRow(c.label, c.payload, tail)
			if err := ctx.unify(c.a, want); err != nil {
				if err.label == "" {
					err.label = c.label
				}
				return ctx.diag(err, c)
			}
		case predConstraint:
			if d := ctx.solvePred(c); d != nil {
				return d
			}
		}
	}
	return nil
}

// diag attaches the failing constraint's provenance to a unification error.
func (ctx *InferenceContext) diag(err *unifyError, c constraint) *Diagnostic {
	d := &Diagnostic{
		Kind:      err.kind,
		Primary:   c.loc,
		Secondary: c.sub,
		Expected:  err.expected,
		Actual:    err.actual,
		Label:     err.label,
		Note:      err.note,
	}
	if d.Expected == nil && c.a != nil {
		d.Expected, d.Actual = c.a, c.b
	}
	return d
}
