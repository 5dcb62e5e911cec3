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

package ast

import (
	"github.com/vesper-lang/vesper/types"
)

// Module is one source file's worth of top-level declarations, parsed and
// name-resolved by collaborators before inference.
type Module struct {
	Name  string
	Decls []Decl
}

// Decl is a top-level declaration.
type Decl interface {
	DeclName() string
	Span() Span
}

var (
	_ Decl = (*ValueDecl)(nil)
	_ Decl = (*DataDecl)(nil)
	_ Decl = (*EffectDecl)(nil)
)

// ValueDecl is a top-level binding: `let f = fn (x) -> x`. After inference
// it carries the generalized scheme and the binding's residual effect row;
// a non-empty residual row on a non-function binding is an unhandled-effect
// leak for the program boundary to report.
type ValueDecl struct {
	Name  string
	Value Expr
	Loc   Span

	scheme   *types.Scheme
	residual types.Type
}

// "ValueDecl"
func (d *ValueDecl) DeclName() string { return "ValueDecl" }
func (d *ValueDecl) Span() Span       { return d.Loc }

// Scheme returns the generalized scheme inferred for the binding.
func (d *ValueDecl) Scheme() *types.Scheme { return d.scheme }

// Residual returns the effect row of evaluating the binding itself.
func (d *ValueDecl) Residual() types.Type { return typesRealOrNil(d.residual) }

// SetScheme records the inference result. Assignments should occur
// indirectly, during inference.
func (d *ValueDecl) SetScheme(s *types.Scheme, residual types.Type) {
	d.scheme, d.residual = s, residual
}

// DataDecl introduces a nominal sum type. The declaration's types are
// constructed by the name-resolution collaborator.
type DataDecl struct {
	Decl *types.TypeDecl
	Loc  Span
}

// "DataDecl"
func (d *DataDecl) DeclName() string { return "DataDecl" }
func (d *DataDecl) Span() Span       { return d.Loc }

// EffectDecl introduces an effect-operation label and fixes its signature.
type EffectDecl struct {
	Decl *types.EffectDecl
	Loc  Span
}

// "EffectDecl"
func (d *EffectDecl) DeclName() string { return "EffectDecl" }
func (d *EffectDecl) Span() Span       { return d.Loc }
