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

	"github.com/vesper-lang/vesper/ast"
	"github.com/vesper-lang/vesper/types"
)

// DiagKind discriminates inference failures.
type DiagKind uint8

const (
	// Constructor or arity disagreement between two types.
	TypeMismatch DiagKind = iota
	// A label's operand/result signature disagrees between two rows.
	EffectMismatch
	// A closed row lacks a label required by the other side.
	RowConflict
	// Occurs-check failure: a variable would resolve to a term containing itself.
	InfiniteType
	// A match over a sum type misses constructors and has no wildcard arm.
	NonExhaustiveMatch
	// A class constraint still has a free head after solving reached a fixpoint.
	AmbiguousType
	// No instance is declared for (class, head constructor).
	NoInstance
	// Two instances share (class, head constructor). Table construction only.
	OverlappingInstance
	// An identifier, constructor, or effect label is not in scope.
	UndefinedName
)

var diagKindNames = [...]string{
	TypeMismatch:        "TypeMismatch",
	EffectMismatch:      "EffectMismatch",
	RowConflict:         "RowConflict",
	InfiniteType:        "InfiniteType",
	NonExhaustiveMatch:  "NonExhaustiveMatch",
	AmbiguousType:       "AmbiguousType",
	NoInstance:          "NoInstance",
	OverlappingInstance: "OverlappingInstance",
	UndefinedName:       "UndefinedName",
}

func (k DiagKind) String() string { return diagKindNames[k] }

// Diagnostic is a structured inference failure. Every failure carries the
// spans and terms needed to render it without re-deriving context; the
// engine never produces free-form messages.
type Diagnostic struct {
	Kind      DiagKind
	Primary   ast.Span
	Secondary []ast.Span
	Expected  types.Type
	Actual    types.Type
	// Label is the offending effect label for EffectMismatch/RowConflict.
	Label string
	// Names carries identifier-shaped detail: the undefined name, the
	// unmatched constructors, or the class name involved.
	Names []string
	Class string
	// Note qualifies structural failures which are not plain term
	// disagreements, such as arity errors.
	Note string
}

var _ error = (*Diagnostic)(nil)

func (d *Diagnostic) Error() string {
	var sb strings.Builder
	sb.WriteString(d.Kind.String())
	switch d.Kind {
	case TypeMismatch:
		if d.Expected != nil && d.Actual != nil {
			sb.WriteString(": expected " + types.TypeString(d.Expected) + ", found " + types.TypeString(d.Actual))
		}
	case EffectMismatch:
		sb.WriteString(": signature disagreement for effect " + d.Label)
	case RowConflict:
		if d.Label != "" {
			sb.WriteString(": effect " + d.Label + " is not permitted by a closed row")
		}
	case InfiniteType:
		if d.Actual != nil {
			sb.WriteString(": cannot construct the infinite type " + types.TypeString(d.Expected) + " = " + types.TypeString(d.Actual))
		}
	case NonExhaustiveMatch:
		sb.WriteString(": unmatched constructors " + strings.Join(d.Names, ", "))
	case AmbiguousType:
		sb.WriteString(": cannot resolve " + d.Class + " " + types.TypeString(d.Actual))
	case NoInstance:
		sb.WriteString(": no instance " + d.Class + " " + types.TypeString(d.Actual))
	case OverlappingInstance:
		sb.WriteString(": duplicate instance " + d.Class + " " + strings.Join(d.Names, ", "))
	case UndefinedName:
		sb.WriteString(": " + strings.Join(d.Names, ", "))
	}
	if d.Note != "" {
		sb.WriteString(" (" + d.Note + ")")
	}
	return sb.String()
}
