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

type constraintKind uint8

const (
	// Type equality: a ~ b.
	eqConstraint constraintKind = iota
	// Row equality: a ~ b over the effect algebra.
	rowConstraint
	// Label presence: row a must contain label with the given payload.
	labelConstraint
	// Class membership, deferred until the head constructor is known.
	predConstraint
)

// constraint is one pending obligation, queued in source order so that
// failing constraints report deterministically. Every constraint carries
// provenance for diagnostics.
type constraint struct {
	kind    constraintKind
	a, b    types.Type
	label   string
	payload types.Type
	pred    types.Pred
	site    *ast.Var
	level   int
	loc     ast.Span
	sub     []ast.Span
}

func (ctx *InferenceContext) pushEq(a, b types.Type, loc ast.Span, sub ...ast.Span) {
	ctx.queue = append(ctx.queue, constraint{kind: eqConstraint, a: a, b: b, loc: loc, sub: sub})
}

func (ctx *InferenceContext) pushRowEq(a, b types.Type, loc ast.Span, sub ...ast.Span) {
	ctx.queue = append(ctx.queue, constraint{kind: rowConstraint, a: a, b: b, loc: loc, sub: sub})
}

func (ctx *InferenceContext) pushLabel(row types.Type, label string, payload types.Type, level int, loc ast.Span) {
	ctx.queue = append(ctx.queue, constraint{kind: labelConstraint, a: row, label: label, payload: payload, level: level, loc: loc})
}

func (ctx *InferenceContext) pushPred(pred types.Pred, site *ast.Var, level int, loc ast.Span) {
	ctx.queue = append(ctx.queue, constraint{kind: predConstraint, pred: pred, site: site, level: level, loc: loc})
}
