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
	"errors"
	"sort"

	"github.com/vesper-lang/vesper/internal/util"
	"github.com/vesper-lang/vesper/types"
)

// InstanceTable maps (class name, head constructor) to the declared
// instance. The table is built once before inference begins, is read-only
// afterwards, and may be shared across concurrent inference runs.
type InstanceTable struct {
	classes   map[string]*types.TypeClass
	instances map[string]map[string]*types.Instance
}

// BuildInstanceTable validates the class hierarchy and instance set and
// freezes them into a table. Overlapping instances (same class and head
// constructor) are rejected with an OverlappingInstance diagnostic; a cycle
// in the superclass hierarchy, an unknown class, or an instance context
// constraining anything other than the head's argument variables are
// configuration errors. Any failure here is fatal to the whole run.
func BuildInstanceTable(classes []*types.TypeClass, instances []*types.Instance) (*InstanceTable, error) {
	table := &InstanceTable{
		classes:   make(map[string]*types.TypeClass, len(classes)),
		instances: make(map[string]map[string]*types.Instance, len(classes)),
	}
	classIndex := make(map[string]int, len(classes))
	for i, tc := range classes {
		if _, exists := table.classes[tc.Name]; exists {
			return nil, errors.New("class " + tc.Name + " is already declared")
		}
		table.classes[tc.Name] = tc
		classIndex[tc.Name] = i
	}

	// A cycle in the superclass hierarchy would make entailment loop;
	// reject it once, here.
	g := util.NewGraph(len(classes))
	for i, tc := range classes {
		for _, super := range tc.Super {
			j, ok := classIndex[super]
			if !ok {
				return nil, errors.New("class " + tc.Name + " names unknown superclass " + super)
			}
			if j == i {
				return nil, errors.New("class " + tc.Name + " is its own superclass")
			}
			g.AddEdge(i, j)
		}
	}
	for _, scc := range g.SCC() {
		if len(scc) > 1 {
			names := make([]string, len(scc))
			for i, v := range scc {
				names[i] = classes[v].Name
			}
			sort.Strings(names)
			return nil, errors.New("superclass cycle: " + names[0])
		}
	}

	for _, inst := range instances {
		if _, ok := table.classes[inst.Class]; !ok {
			return nil, errors.New("instance for unknown class " + inst.Class)
		}
		head, ok := types.HeadConst(inst.Param)
		if !ok {
			return nil, errors.New("instance head for class " + inst.Class + " has no concrete constructor")
		}
		if err := checkInstanceContext(inst); err != nil {
			return nil, err
		}
		byHead := table.instances[inst.Class]
		if byHead == nil {
			byHead = make(map[string]*types.Instance)
			table.instances[inst.Class] = byHead
		}
		if _, overlapping := byHead[head]; overlapping {
			return nil, &Diagnostic{
				Kind:  OverlappingInstance,
				Class: inst.Class,
				Names: []string{head},
			}
		}
		byHead[head] = inst
	}
	return table, nil
}

// Instance contexts may only constrain the head's argument variables; this
// keeps entailment strictly structurally decreasing, so resolution always
// terminates.
func checkInstanceContext(inst *types.Instance) error {
	allowed := make(map[int]bool)
	for _, tv := range inst.InstanceVars() {
		allowed[tv.Id()] = true
	}
	for _, p := range inst.Context {
		typeVars, rowVars := types.FreeVars(p.Param)
		for _, tv := range append(typeVars, rowVars...) {
			if !allowed[tv.Id()] {
				return errors.New("instance context for " + inst.Class + " constrains a variable outside the instance head")
			}
		}
	}
	return nil
}

// Lookup the instance for a class and head constructor. At most one
// instance can match given a well-formed table, so resolution is
// deterministic.
func (t *InstanceTable) Lookup(class, head string) (*types.Instance, bool) {
	byHead, ok := t.instances[class]
	if !ok {
		return nil, false
	}
	inst, ok := byHead[head]
	return inst, ok
}

// Class resolves a class declaration by name.
func (t *InstanceTable) Class(name string) (*types.TypeClass, bool) {
	tc, ok := t.classes[name]
	return tc, ok
}
