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
	"strconv"
	"strings"
)

type typePrinter struct {
	sb      strings.Builder
	idNames map[int]string
	next    int
}

func (p *typePrinter) nameOf(tv *Var) string {
	if name, ok := p.idNames[tv.Id()]; ok {
		return name
	}
	var name string
	if p.next < 26 {
		name = string(rune('a' + p.next))
	} else {
		name = string(rune('a'+p.next%26)) + strconv.Itoa(p.next/26)
	}
	p.next++
	p.idNames[tv.Id()] = name
	return name
}

// TypeString returns a deterministic string representation of a type.
// Variables are named a, b, c, ... in order of first appearance.
func TypeString(t Type) string {
	p := &typePrinter{idNames: make(map[int]string, 16)}
	p.typeString(t, false)
	return p.sb.String()
}

// RowString returns a string representation of an effect row, such as
// `[Ask, Tell | a]` for an open row or `[]` for the empty row.
func RowString(t Type) string {
	p := &typePrinter{idNames: make(map[int]string, 16)}
	p.rowString(t)
	return p.sb.String()
}

// SchemeString returns a string representation of a scheme, with the class
// context (if any) printed before the body.
func SchemeString(s *Scheme) string {
	p := &typePrinter{idNames: make(map[int]string, 16)}
	// Claim names for binders first so they print in binding order:
	for _, tv := range s.TypeVars {
		p.nameOf(tv)
	}
	for _, rv := range s.RowVars {
		p.nameOf(rv)
	}
	if len(s.Constraints) > 0 {
		p.sb.WriteByte('(')
		for i, c := range s.Constraints {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(c.Class)
			p.sb.WriteByte(' ')
			p.typeString(c.Param, true)
		}
		p.sb.WriteString(") => ")
	}
	p.typeString(s.Type, false)
	return p.sb.String()
}

func (p *typePrinter) typeString(t Type, nested bool) {
	switch t := RealType(t).(type) {
	case *Var:
		p.sb.WriteString(p.nameOf(t))

	case *Const:
		p.sb.WriteString(t.Name)

	case *App:
		p.typeString(t.Const, true)
		p.sb.WriteByte('[')
		for i, arg := range t.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.typeString(arg, false)
		}
		p.sb.WriteByte(']')

	case *Arrow:
		if nested {
			p.sb.WriteByte('(')
		}
		if len(t.Args) == 1 {
			p.typeString(t.Args[0], true)
		} else {
			p.sb.WriteByte('(')
			for i, arg := range t.Args {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				p.typeString(arg, false)
			}
			p.sb.WriteByte(')')
		}
		if isEmptyRow(t.Effects) {
			p.sb.WriteString(" -> ")
		} else {
			p.sb.WriteString(" -")
			p.rowString(t.Effects)
			p.sb.WriteString("-> ")
		}
		p.typeString(t.Return, false)
		if nested {
			p.sb.WriteByte(')')
		}

	case *Row, RowEmpty:
		p.rowString(t)

	default:
		p.sb.WriteString("<unknown>")
	}
}

func (p *typePrinter) rowString(t Type) {
	labels, rest, err := FlattenRow(t)
	if err != nil {
		p.sb.WriteString("<malformed row>")
		return
	}
	p.sb.WriteByte('[')
	i := 0
	labels.Range(func(label string, _ Type) bool {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(label)
		i++
		return true
	})
	if rv, ok := RealType(rest).(*Var); ok {
		if i > 0 {
			p.sb.WriteString(" | ")
		}
		p.sb.WriteString(p.nameOf(rv))
	}
	p.sb.WriteByte(']')
}

func isEmptyRow(t Type) bool {
	labels, rest, err := FlattenRow(t)
	if err != nil {
		return false
	}
	if labels.Len() != 0 {
		return false
	}
	_, closed := RealType(rest).(RowEmpty)
	return closed
}
