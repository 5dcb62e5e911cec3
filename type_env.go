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
	"github.com/benbjohnson/immutable"

	"github.com/vesper-lang/vesper/types"
)

var emptyScope = immutable.NewSortedMap(nil)

// TypeEnv maps identifiers to declared schemes. The scope map is
// persistent: entering a binding extends the environment into a new value
// and never mutates the enclosing one, so an environment may be captured
// freely at any point of the walk.
//
// A type-environment cannot be used concurrently for inference; to share an
// environment across runs, give each run its own child environment.
type TypeEnv struct {
	// Predeclared schemes in the parent of the current environment.
	Parent *TypeEnv
	// Nominal type and effect-operation declarations, shared along the chain.
	Decls *types.DeclTable
	// Class instances, built once before inference; read-only afterwards.
	Instances *InstanceTable
	// Next unused variable id for pre-inference declarations.
	NextVarId int

	scope *immutable.SortedMap
}

// Create a type-environment. The new environment will inherit declarations
// from the parent, if the parent is not nil.
func NewTypeEnv(parent *TypeEnv) *TypeEnv {
	env := &TypeEnv{Parent: parent, scope: emptyScope}
	if parent != nil {
		env.Decls, env.Instances, env.NextVarId = parent.Decls, parent.Instances, parent.NextVarId
	}
	if env.Decls == nil {
		env.Decls = types.NewDeclTable()
	}
	return env
}

func (e *TypeEnv) freshId() int {
	id := e.NextVarId
	e.NextVarId++
	return id
}

// Create a generic variable with a unique id, for declaring polymorphic
// builtins before inference.
func (e *TypeEnv) NewGenericVar(sort types.Sort) *types.Var {
	return types.NewGenericVar(e.freshId(), sort)
}

// Declare a scheme for an identifier within the environment. Declare is for
// building the initial environment; during inference scopes grow through
// Extend.
func (e *TypeEnv) Declare(name string, s *types.Scheme) {
	e.scope = e.scope.Set(name, s)
}

// Add declares a monomorphic type for an identifier.
func (e *TypeEnv) Add(name string, t types.Type) {
	e.Declare(name, types.MonoScheme(t))
}

// AddPoly generalizes every generic variable already present in t into a
// scheme and declares it. Intended for builtins constructed with
// NewGenericVar.
func (e *TypeEnv) AddPoly(name string, t types.Type, constraints ...types.Pred) {
	typeVars, rowVars := types.FreeVars(t)
	s := &types.Scheme{Constraints: constraints, Type: t}
	for _, tv := range typeVars {
		if tv.IsGenericVar() {
			s.TypeVars = append(s.TypeVars, tv)
		}
	}
	for _, rv := range rowVars {
		if rv.IsGenericVar() {
			s.RowVars = append(s.RowVars, rv)
		}
	}
	e.Declare(name, s)
}

// Extend returns a new environment with the binding added; the receiver is
// unchanged.
func (e *TypeEnv) Extend(name string, s *types.Scheme) *TypeEnv {
	return &TypeEnv{
		Parent:    e.Parent,
		Decls:     e.Decls,
		Instances: e.Instances,
		NextVarId: e.NextVarId,
		scope:     e.scope.Set(name, s),
	}
}

// Lookup the scheme for an identifier in the environment or its parent
// environment(s).
func (e *TypeEnv) Lookup(name string) (*types.Scheme, bool) {
	if s, ok := e.scope.Get(name); ok {
		return s.(*types.Scheme), true
	}
	if e.Parent == nil {
		return nil, false
	}
	return e.Parent.Lookup(name)
}
