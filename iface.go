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
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vesper-lang/vesper/types"
)

// InterfaceFile is the serialized surface of a compiled module: its
// nominal types, effect operations, classes and instances, and the
// schemes of its exported values. Loading one into an environment makes a
// dependency's exports available to inference without re-checking the
// dependency.
type InterfaceFile struct {
	Module    string        `yaml:"module"`
	Types     []TypeDef     `yaml:"types,omitempty"`
	Effects   []EffectDef   `yaml:"effects,omitempty"`
	Classes   []ClassDef    `yaml:"classes,omitempty"`
	Instances []InstanceDef `yaml:"instances,omitempty"`
	Values    []ValueDef    `yaml:"values,omitempty"`
}

// TypeDef declares a nominal sum type.
type TypeDef struct {
	Name   string    `yaml:"name"`
	Params []string  `yaml:"params,omitempty"`
	Ctors  []CtorDef `yaml:"ctors,omitempty"`
}

// CtorDef declares one data constructor.
type CtorDef struct {
	Name   string     `yaml:"name"`
	Fields []TypeTerm `yaml:"fields,omitempty"`
}

// EffectDef fixes one effect operation's signature. Signatures must be
// ground.
type EffectDef struct {
	Label  string     `yaml:"label"`
	Params []TypeTerm `yaml:"params,omitempty"`
	Result TypeTerm   `yaml:"result"`
}

// ClassDef declares a single-parameter class.
type ClassDef struct {
	Name  string   `yaml:"name"`
	Super []string `yaml:"super,omitempty"`
}

// InstanceDef declares class membership for one head constructor.
type InstanceDef struct {
	Class   string    `yaml:"class"`
	Head    TypeTerm  `yaml:"head"`
	Dict    string    `yaml:"dict"`
	Context []PredDef `yaml:"context,omitempty"`
}

// PredDef is a serialized class constraint.
type PredDef struct {
	Class string   `yaml:"class"`
	Param TypeTerm `yaml:"param"`
}

// ValueDef declares an exported value's scheme. Variables named in the
// term quantify implicitly.
type ValueDef struct {
	Name        string    `yaml:"name"`
	Type        TypeTerm  `yaml:"type"`
	Constraints []PredDef `yaml:"constraints,omitempty"`
}

// TypeTerm is a structured type expression; exactly one field is set.
type TypeTerm struct {
	Var   string     `yaml:"var,omitempty"`
	Con   string     `yaml:"con,omitempty"`
	App   *AppTerm   `yaml:"app,omitempty"`
	Arrow *ArrowTerm `yaml:"arrow,omitempty"`
}

// AppTerm applies a nominal constructor to arguments.
type AppTerm struct {
	Con  string     `yaml:"con"`
	Args []TypeTerm `yaml:"args"`
}

// ArrowTerm is a function type. Effects omitted means the arrow is
// polymorphic in its latent row, which is the right reading for pure
// builtins: they apply in any context.
type ArrowTerm struct {
	Args    []TypeTerm `yaml:"args,omitempty"`
	Return  TypeTerm   `yaml:"return"`
	Effects *RowTerm   `yaml:"effects,omitempty"`
}

// RowTerm is an effect row: operation labels over a residual tail. An
// empty Rest closes the row.
type RowTerm struct {
	Labels []string `yaml:"labels,omitempty"`
	Rest   string   `yaml:"rest,omitempty"`
}

// LoadInterface decodes an interface file.
func LoadInterface(r io.Reader) (*InterfaceFile, error) {
	var f InterfaceFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("interface: %w", err)
	}
	if f.Module == "" {
		return nil, fmt.Errorf("interface: missing module name")
	}
	return &f, nil
}

// WriteInterface encodes an interface file as YAML. A file written here
// loads back through LoadInterface unchanged.
func WriteInterface(w io.Writer, f *InterfaceFile) error {
	if f.Module == "" {
		return fmt.Errorf("interface: missing module name")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		enc.Close()
		return fmt.Errorf("interface: %w", err)
	}
	return enc.Close()
}

// ParseInterface decodes an interface file from a byte slice.
func ParseInterface(data []byte) (*InterfaceFile, error) {
	var f InterfaceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("interface: %w", err)
	}
	if f.Module == "" {
		return nil, fmt.Errorf("interface: missing module name")
	}
	return &f, nil
}

// Populate declares everything the interface exports into the
// environment: nominal types and effects into the declaration table,
// classes and instances into a freshly built instance table, and value
// schemes into scope. Populate must run before inference begins.
func (f *InterfaceFile) Populate(env *TypeEnv) error {
	for i := range f.Types {
		def := &f.Types[i]
		scope := make(varScope, len(def.Params))
		decl := &types.TypeDecl{Name: def.Name, Params: make([]*types.Var, len(def.Params))}
		for pi, p := range def.Params {
			gv := env.NewGenericVar(types.TypeSort)
			scope[p] = gv
			decl.Params[pi] = gv
		}
		for _, c := range def.Ctors {
			ctor := types.CtorDecl{Name: c.Name}
			for _, field := range c.Fields {
				ft, err := f.resolveTerm(env, scope, field)
				if err != nil {
					return fmt.Errorf("interface %s: type %s: %w", f.Module, def.Name, err)
				}
				ctor.Fields = append(ctor.Fields, ft)
			}
			decl.Ctors = append(decl.Ctors, ctor)
		}
		if err := env.Decls.AddType(decl); err != nil {
			return fmt.Errorf("interface %s: %w", f.Module, err)
		}
	}

	for i := range f.Effects {
		def := &f.Effects[i]
		decl := &types.EffectDecl{Label: def.Label}
		for _, p := range def.Params {
			pt, err := f.resolveTerm(env, nil, p)
			if err != nil {
				return fmt.Errorf("interface %s: effect %s: %w", f.Module, def.Label, err)
			}
			decl.Params = append(decl.Params, pt)
		}
		rt, err := f.resolveTerm(env, nil, def.Result)
		if err != nil {
			return fmt.Errorf("interface %s: effect %s: %w", f.Module, def.Label, err)
		}
		decl.Result = rt
		if err := env.Decls.AddEffect(decl); err != nil {
			return fmt.Errorf("interface %s: %w", f.Module, err)
		}
	}

	if len(f.Classes) > 0 || len(f.Instances) > 0 {
		classes := make([]*types.TypeClass, len(f.Classes))
		for i, c := range f.Classes {
			classes[i] = &types.TypeClass{Name: c.Name, Super: c.Super}
		}
		instances := make([]*types.Instance, len(f.Instances))
		for i := range f.Instances {
			def := &f.Instances[i]
			scope := make(varScope)
			head, err := f.resolveTerm(env, scope, def.Head)
			if err != nil {
				return fmt.Errorf("interface %s: instance %s: %w", f.Module, def.Class, err)
			}
			inst := &types.Instance{Class: def.Class, Param: head, Dict: def.Dict}
			for _, p := range def.Context {
				pt, err := f.resolveTerm(env, scope, p.Param)
				if err != nil {
					return fmt.Errorf("interface %s: instance %s: %w", f.Module, def.Class, err)
				}
				inst.Context = append(inst.Context, types.Pred{Class: p.Class, Param: pt})
			}
			instances[i] = inst
		}
		table, err := BuildInstanceTable(classes, instances)
		if err != nil {
			return fmt.Errorf("interface %s: %w", f.Module, err)
		}
		env.Instances = table
	}

	for i := range f.Values {
		def := &f.Values[i]
		scope := make(varScope)
		t, err := f.resolveTerm(env, scope, def.Type)
		if err != nil {
			return fmt.Errorf("interface %s: value %s: %w", f.Module, def.Name, err)
		}
		preds := make([]types.Pred, 0, len(def.Constraints))
		for _, p := range def.Constraints {
			pt, err := f.resolveTerm(env, scope, p.Param)
			if err != nil {
				return fmt.Errorf("interface %s: value %s: %w", f.Module, def.Name, err)
			}
			preds = append(preds, types.Pred{Class: p.Class, Param: pt})
		}
		env.AddPoly(def.Name, t, preds...)
	}
	return nil
}

type varScope map[string]*types.Var

func (s varScope) lookup(env *TypeEnv, name string, sort types.Sort) *types.Var {
	if v, ok := s[name]; ok {
		return v
	}
	v := env.NewGenericVar(sort)
	s[name] = v
	return v
}

func (f *InterfaceFile) resolveTerm(env *TypeEnv, scope varScope, term TypeTerm) (types.Type, error) {
	switch {
	case term.Var != "":
		if scope == nil {
			return nil, fmt.Errorf("variable %s in a context requiring a ground type", term.Var)
		}
		return scope.lookup(env, term.Var, types.TypeSort), nil

	case term.Con != "":
		if decl, ok := env.Decls.LookupType(term.Con); ok && len(decl.Params) != 0 {
			return nil, fmt.Errorf("type %s expects %d type arguments, given 0", decl.Name, len(decl.Params))
		}
		return &types.Const{Name: term.Con}, nil

	case term.App != nil:
		if decl, ok := env.Decls.LookupType(term.App.Con); ok && len(decl.Params) != len(term.App.Args) {
			return nil, fmt.Errorf("type %s expects %d type arguments, given %d", decl.Name, len(decl.Params), len(term.App.Args))
		}
		args := make([]types.Type, len(term.App.Args))
		for i, arg := range term.App.Args {
			at, err := f.resolveTerm(env, scope, arg)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		return &types.App{Const: &types.Const{Name: term.App.Con}, Args: args}, nil

	case term.Arrow != nil:
		args := make([]types.Type, len(term.Arrow.Args))
		for i, arg := range term.Arrow.Args {
			at, err := f.resolveTerm(env, scope, arg)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		ret, err := f.resolveTerm(env, scope, term.Arrow.Return)
		if err != nil {
			return nil, err
		}
		effects, err := f.resolveRow(env, scope, term.Arrow.Effects)
		if err != nil {
			return nil, err
		}
		return &types.Arrow{Args: args, Return: ret, Effects: effects}, nil
	}
	return nil, fmt.Errorf("empty type term")
}

func (f *InterfaceFile) resolveRow(env *TypeEnv, scope varScope, row *RowTerm) (types.Type, error) {
	if row == nil {
		if scope == nil {
			return types.RowEmptyPointer, nil
		}
		// Unnamed latent rows quantify independently of each other.
		return env.NewGenericVar(types.RowSort), nil
	}
	var rest types.Type = types.RowEmptyPointer
	if row.Rest != "" {
		if scope == nil {
			return nil, fmt.Errorf("row variable %s in a context requiring a ground row", row.Rest)
		}
		rest = scope.lookup(env, row.Rest, types.RowSort)
	}
	if len(row.Labels) == 0 {
		return rest, nil
	}
	labels := types.NewEffectMapBuilder()
	for _, label := range row.Labels {
		decl, ok := env.Decls.LookupEffect(label)
		if !ok {
			return nil, fmt.Errorf("effect operation %s is not declared", label)
		}
		labels.Set(label, decl.Signature())
	}
	return &types.Row{Labels: labels.Build(), Rest: rest}, nil
}
