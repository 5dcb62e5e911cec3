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

// Span locates a node in its source file as a half-open byte range. Spans
// are produced by the parser and carried through inference for diagnostics.
type Span struct {
	Begin int
	End   int
}

// Expr is the base for all expressions. After inference every expression
// additionally carries its resolved type and the effect row of the context
// it was checked in.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// Source location of the expression.
	Span() Span
	// Type returns the inferred type of an expression. Expression types are only available after inference.
	Type() types.Type
	// Effect returns the effect row inferred for the expression's context.
	Effect() types.Type
	// Assign a type and effect row to the expression. Assignments should occur indirectly, during inference.
	SetType(t, eff types.Type)
}

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Func)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*LetGroup)(nil)
	_ Expr = (*Ctor)(nil)
	_ Expr = (*Match)(nil)
	_ Expr = (*Perform)(nil)
	_ Expr = (*Handle)(nil)
)

type annotated struct {
	inferred types.Type
	effect   types.Type
}

func (a *annotated) Type() types.Type   { return types.RealType(a.inferred) }
func (a *annotated) Effect() types.Type { return typesRealOrNil(a.effect) }
func (a *annotated) SetType(t, eff types.Type) {
	a.inferred, a.effect = t, eff
}

func typesRealOrNil(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	return types.RealType(t)
}

// LitKind discriminates literal values.
type LitKind uint8

const (
	IntLit LitKind = iota
	FloatLit
	BoolLit
	StringLit
	UnitLit
)

// Literal value: `1`, `true`, `"x"`.
type Literal struct {
	Syntax string
	Kind   LitKind
	Loc    Span
	annotated
}

// Returns the syntax of e.
func (e *Literal) ExprName() string { return e.Syntax }
func (e *Literal) Span() Span       { return e.Loc }

// Variable reference.
type Var struct {
	Name string
	Loc  Span
	annotated
	dicts []types.DictRef
}

// "Var"
func (e *Var) ExprName() string { return "Var" }
func (e *Var) Span() Span       { return e.Loc }

// Dicts returns the dictionary references elaborated for the class
// constraints instantiated at this use site, in resolution order.
func (e *Var) Dicts() []types.DictRef { return e.dicts }

// AddDict records an elaborated dictionary reference. Assignments should
// occur indirectly, during resolution.
func (e *Var) AddDict(d types.DictRef) { e.dicts = append(e.dicts, d) }

// SetType assigns the use site's type and effect row. Re-annotating the
// site discards dictionary references elaborated by an earlier run, so a
// reusable context starts the elaboration fresh.
func (e *Var) SetType(t, eff types.Type) {
	e.annotated.SetType(t, eff)
	e.dicts = e.dicts[:0]
}

// Application: `f(x)`
type Call struct {
	Func Expr
	Args []Expr
	Loc  Span
	annotated
}

// "Call"
func (e *Call) ExprName() string { return "Call" }
func (e *Call) Span() Span       { return e.Loc }

// Abstraction: `fn (x, y) -> x`
type Func struct {
	ArgNames []string
	Body     Expr
	Loc      Span
	annotated
}

// "Func"
func (e *Func) ExprName() string { return "Func" }
func (e *Func) Span() Span       { return e.Loc }

// Let-binding: `let a = 1 in e`
type Let struct {
	Var   string
	Value Expr
	Body  Expr
	Loc   Span
	annotated
}

// "Let"
func (e *Let) ExprName() string { return "Let" }
func (e *Let) Span() Span       { return e.Loc }

// LetBinding is a single binding within a grouped let.
type LetBinding struct {
	Var   string
	Value Expr
}

// Grouped let-binding, possibly mutually-recursive:
// `let a = 1 and b = 2 in e`
type LetGroup struct {
	Vars []LetBinding
	Body Expr
	Loc  Span
	annotated
}

// "LetGroup"
func (e *LetGroup) ExprName() string { return "LetGroup" }
func (e *LetGroup) Span() Span       { return e.Loc }

// Data-constructor application: `Some(x)`
type Ctor struct {
	Name string
	Args []Expr
	Loc  Span
	annotated
}

// "Ctor"
func (e *Ctor) ExprName() string { return "Ctor" }
func (e *Ctor) Span() Span       { return e.Loc }

// Pattern is a match-arm pattern: a constructor pattern with variable
// sub-patterns, or a variable/wildcard pattern.
type Pattern interface {
	PatternName() string
	Span() Span
}

// Constructor pattern: `Some(x)`
type CtorPat struct {
	Name  string
	Binds []string
	Loc   Span
}

// "CtorPat"
func (p *CtorPat) PatternName() string { return "CtorPat" }
func (p *CtorPat) Span() Span          { return p.Loc }

// Variable or wildcard pattern; "_" binds nothing.
type VarPat struct {
	Name string
	Loc  Span
}

// "VarPat"
func (p *VarPat) PatternName() string { return "VarPat" }
func (p *VarPat) Span() Span          { return p.Loc }

// IsWildcard reports whether the pattern binds nothing.
func (p *VarPat) IsWildcard() bool { return p.Name == "_" }

// MatchArm is a single arm of a match expression.
type MatchArm struct {
	Pattern Pattern
	Body    Expr
}

// Match on a sum type: `match x { Some(y) -> e1, None -> e2 }`
type Match struct {
	Value Expr
	Arms  []MatchArm
	Loc   Span
	annotated
}

// "Match"
func (e *Match) ExprName() string { return "Match" }
func (e *Match) Span() Span       { return e.Loc }

// Effect-operation invocation: `perform Ask()`
type Perform struct {
	Label string
	Args  []Expr
	Loc   Span
	annotated
}

// "Perform"
func (e *Perform) ExprName() string { return "Perform" }
func (e *Perform) Span() Span       { return e.Loc }

// HandlerArm handles one effect operation. Params bind the operation's
// operands; Resume binds the continuation, typed from the operation's
// result to the handled computation's result.
type HandlerArm struct {
	Label  string
	Params []string
	Resume string
	Body   Expr
	Loc    Span
}

// Effect handler: `handle e { Ask() resume -> resume(1) }`. Handling an
// operation discharges its label from the row the surrounding context sees.
type Handle struct {
	Body Expr
	Arms []HandlerArm
	Loc  Span
	annotated
}

// "Handle"
func (e *Handle) ExprName() string { return "Handle" }
func (e *Handle) Span() Span       { return e.Loc }
