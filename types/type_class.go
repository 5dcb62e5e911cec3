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

// Pred is a pending class-membership constraint: Param must belong to the
// named class. Resolution is deferred until Param exposes a concrete head
// constructor.
type Pred struct {
	Class string
	Param Type
}

// TypeClass is a single-parameter class declaration. Super lists the names
// of classes every member must also belong to.
type TypeClass struct {
	Name  string
	Super []string
}

// Instance declares that a type headed by a single constructor belongs to a
// class. Param is the instance head (for example `option[a]` with a generic
// argument variable); Context lists obligations on the head's argument
// variables, which keeps entailment strictly structurally decreasing.
// Dict names the dictionary carrying the instance's operations.
type Instance struct {
	Class   string
	Param   Type
	Context []Pred
	Dict    string
}

// InstanceVars returns the generic argument variables of the instance head
// in deterministic order.
func (inst *Instance) InstanceVars() []*Var {
	typeVars, rowVars := FreeVars(inst.Param)
	return append(typeVars, rowVars...)
}

// DictRef is an elaborated reference to the dictionary satisfying a
// resolved class constraint. Exactly one of the two forms applies: a
// concrete instance dictionary, or a dictionary parameter abstracted by the
// enclosing scheme's context (Param is the context index).
type DictRef struct {
	Instance *Instance
	Param    int
}

// IsParam reports whether the reference is an abstract dictionary parameter.
func (d DictRef) IsParam() bool { return d.Instance == nil }

// Name returns the dictionary name for concrete references.
func (d DictRef) Name() string {
	if d.Instance == nil {
		return ""
	}
	return d.Instance.Dict
}
