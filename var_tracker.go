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
	"github.com/vesper-lang/vesper/types"
)

// varTracker allocates fresh variables from per-run arena blocks and tracks
// allocations so links can be flattened when a run completes. The arena is
// discarded on reset; ids keep increasing across runs of one context so no
// two live variables share an id.
type varTracker struct {
	NextId int
	vars   []*types.Var
	block  []types.Var
}

func (vt *varTracker) New(level int, sort types.Sort) *types.Var {
	if len(vt.block) == 0 {
		vt.block = make([]types.Var, 16)
	}
	tv := &vt.block[0]
	vt.block = vt.block[1:]
	tv.Update(vt.NextId, level, sort)
	vt.NextId++
	vt.vars = append(vt.vars, tv)
	return tv
}

func (vt *varTracker) NewGeneric(sort types.Sort) *types.Var {
	return vt.New(types.GenericVarLevel, sort)
}

// FlattenLinks shortens link chains so repeated resolution is O(1).
func (vt *varTracker) FlattenLinks() {
	for _, tv := range vt.vars {
		tv.Flatten()
	}
}

func (vt *varTracker) Reset() {
	vt.vars, vt.block = nil, nil
}
