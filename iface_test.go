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

	"github.com/stretchr/testify/require"

	"github.com/vesper-lang/vesper/ast"
	"github.com/vesper-lang/vesper/types"
)

const testInterface = `
module: prelude
types:
  - name: option
    params: [a]
    ctors:
      - name: Some
        fields:
          - var: a
      - name: None
effects:
  - label: Ask
    result:
      con: int
classes:
  - name: Show
instances:
  - class: Show
    head:
      con: int
    dict: showInt
  - class: Show
    head:
      app:
        con: option
        args:
          - var: a
    dict: showOption
    context:
      - class: Show
        param:
          var: a
values:
  - name: show
    type:
      arrow:
        args:
          - var: a
        return:
          con: string
    constraints:
      - class: Show
        param:
          var: a
  - name: ask_twice
    type:
      arrow:
        return:
          con: int
        effects:
          labels: [Ask]
          rest: e
`

func TestParseAndPopulateInterface(t *testing.T) {
	f, err := ParseInterface([]byte(testInterface))
	require.NoError(t, err)
	require.Equal(t, "prelude", f.Module)

	env := NewTypeEnv(nil)
	require.NoError(t, f.Populate(env))

	decl, ctor, ok := env.Decls.LookupCtor("Some")
	require.True(t, ok)
	require.Equal(t, "option", decl.Name)
	require.Len(t, ctor.Fields, 1)

	eff, ok := env.Decls.LookupEffect("Ask")
	require.True(t, ok)
	require.Equal(t, "int", types.TypeString(eff.Result))

	inst, ok := env.Instances.Lookup("Show", "option")
	require.True(t, ok)
	require.Equal(t, "showOption", inst.Dict)

	show, ok := env.Lookup("show")
	require.True(t, ok)
	require.Equal(t, "(Show a) => a -[b]-> string", types.SchemeString(show))

	askTwice, ok := env.Lookup("ask_twice")
	require.True(t, ok)
	require.Equal(t, "() -[Ask | a]-> int", types.SchemeString(askTwice))
}

func TestPopulatedInterfaceDrivesInference(t *testing.T) {
	f, err := ParseInterface([]byte(testInterface))
	require.NoError(t, err)
	env := NewTypeEnv(nil)
	require.NoError(t, f.Populate(env))

	ctx := NewContext()
	expr := &ast.Call{
		Func: &ast.Var{Name: "show"},
		Args: []ast.Expr{&ast.Ctor{Name: "Some", Args: []ast.Expr{intLit("1")}}},
	}
	ty, _, err := ctx.Infer(expr, env)
	require.NoError(t, err)
	require.Equal(t, "string", types.TypeString(ty))
}

func TestPopulateChecksTypeArity(t *testing.T) {
	const doc = `
module: broken
types:
  - name: option
    params: [a]
    ctors:
      - name: Some
        fields:
          - var: a
      - name: None
values:
  - name: pair
    type:
      app:
        con: option
        args:
          - con: int
          - con: int
  - name: bare
    type:
      con: option
`
	f, err := ParseInterface([]byte(doc))
	require.NoError(t, err)

	err = f.Populate(NewTypeEnv(nil))
	require.Error(t, err)
	require.Contains(t, err.Error(), "expects 1 type arguments, given 2")

	f.Values = f.Values[1:]
	err = f.Populate(NewTypeEnv(nil))
	require.Error(t, err)
	require.Contains(t, err.Error(), "expects 1 type arguments, given 0")
}

func TestInterfaceRoundTrip(t *testing.T) {
	f, err := ParseInterface([]byte(testInterface))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteInterface(&buf, f))

	reloaded, err := LoadInterface(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Equal(t, f, reloaded)
}

func TestWriteInterfaceRequiresModuleName(t *testing.T) {
	var buf strings.Builder
	require.Error(t, WriteInterface(&buf, &InterfaceFile{}))
}

func TestLoadInterfaceRejectsUnknownFields(t *testing.T) {
	_, err := LoadInterface(strings.NewReader("module: m\nbogus: 1\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "bogus")
}

func TestLoadInterfaceRequiresModuleName(t *testing.T) {
	_, err := LoadInterface(strings.NewReader("types: []\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing module")

	_, err = ParseInterface([]byte("types: []\n"))
	require.Error(t, err)
}
