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
	"strings"
)

// ExprString returns a source-like representation of an expression, for
// tests and debugging.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, e)
	return sb.String()
}

func exprString(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Literal:
		sb.WriteString(e.Syntax)

	case *Var:
		sb.WriteString(e.Name)

	case *Call:
		exprString(sb, e.Func)
		sb.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, arg)
		}
		sb.WriteByte(')')

	case *Func:
		sb.WriteString("fn (")
		sb.WriteString(strings.Join(e.ArgNames, ", "))
		sb.WriteString(") -> ")
		exprString(sb, e.Body)

	case *Let:
		sb.WriteString("let ")
		sb.WriteString(e.Var)
		sb.WriteString(" = ")
		exprString(sb, e.Value)
		sb.WriteString(" in ")
		exprString(sb, e.Body)

	case *LetGroup:
		sb.WriteString("let ")
		for i, b := range e.Vars {
			if i > 0 {
				sb.WriteString(" and ")
			}
			sb.WriteString(b.Var)
			sb.WriteString(" = ")
			exprString(sb, b.Value)
		}
		sb.WriteString(" in ")
		exprString(sb, e.Body)

	case *Ctor:
		sb.WriteString(e.Name)
		if len(e.Args) > 0 {
			sb.WriteByte('(')
			for i, arg := range e.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				exprString(sb, arg)
			}
			sb.WriteByte(')')
		}

	case *Match:
		sb.WriteString("match ")
		exprString(sb, e.Value)
		sb.WriteString(" { ")
		for i, arm := range e.Arms {
			if i > 0 {
				sb.WriteString(", ")
			}
			patternString(sb, arm.Pattern)
			sb.WriteString(" -> ")
			exprString(sb, arm.Body)
		}
		sb.WriteString(" }")

	case *Perform:
		sb.WriteString("perform ")
		sb.WriteString(e.Label)
		sb.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, arg)
		}
		sb.WriteByte(')')

	case *Handle:
		sb.WriteString("handle ")
		exprString(sb, e.Body)
		sb.WriteString(" { ")
		for i, arm := range e.Arms {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arm.Label)
			sb.WriteByte('(')
			sb.WriteString(strings.Join(arm.Params, ", "))
			sb.WriteByte(')')
			if arm.Resume != "" {
				sb.WriteByte(' ')
				sb.WriteString(arm.Resume)
			}
			sb.WriteString(" -> ")
			exprString(sb, arm.Body)
		}
		sb.WriteString(" }")

	default:
		sb.WriteString("(" + e.ExprName() + ")")
	}
}

func patternString(sb *strings.Builder, p Pattern) {
	switch p := p.(type) {
	case *CtorPat:
		sb.WriteString(p.Name)
		if len(p.Binds) > 0 {
			sb.WriteByte('(')
			sb.WriteString(strings.Join(p.Binds, ", "))
			sb.WriteByte(')')
		}
	case *VarPat:
		sb.WriteString(p.Name)
	}
}
