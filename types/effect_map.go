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
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

// EmptyEffectMap contains no labels.
var EmptyEffectMap = EffectMap{emptyMap}

// EffectMap contains immutable mappings from effect labels to the operation
// signature carried by each label. Labels are unique; entries are sorted by
// label, which keeps iteration (and therefore diagnostics and printing)
// deterministic.
type EffectMap struct {
	m *immutable.SortedMap
}

// Create an EffectMap with a single entry.
func SingletonEffectMap(label string, payload Type) EffectMap {
	return EffectMap{emptyMap.Set(label, payload)}
}

// Get the number of labels in the map.
func (m EffectMap) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Get the signature for a label.
func (m EffectMap) Get(label string) (Type, bool) {
	if m.m == nil {
		return nil, false
	}
	t, ok := m.m.Get(label)
	if !ok {
		return nil, false
	}
	return t.(Type), true
}

// Iterate over entries in the map, in label order.
// If f returns false, iteration will be stopped.
func (m EffectMap) Range(f func(string, Type) bool) {
	if m.m == nil {
		return
	}
	iter := m.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(Type)) {
			return
		}
	}
}

// Labels returns the label set in sorted order.
func (m EffectMap) Labels() []string {
	labels := make([]string, 0, m.Len())
	m.Range(func(label string, _ Type) bool {
		labels = append(labels, label)
		return true
	})
	return labels
}

// Convert the map to a builder for modification, without mutating the existing map.
func (m EffectMap) Builder() EffectMapBuilder {
	imm := m.m
	if imm == nil {
		imm = emptyMap
	}
	return EffectMapBuilder{immutable.NewSortedMapBuilder(imm)}
}

// EffectMapBuilder enables in-place updates of a map before finalization.
type EffectMapBuilder struct {
	b *immutable.SortedMapBuilder
}

func NewEffectMapBuilder() EffectMapBuilder {
	return EffectMapBuilder{immutable.NewSortedMapBuilder(emptyMap)}
}

// Get the number of labels in the builder.
func (b EffectMapBuilder) Len() int { return b.b.Len() }

// Set the signature for the given label in the builder.
func (b EffectMapBuilder) Set(label string, payload Type) EffectMapBuilder {
	b.b.Set(label, payload)
	return b
}

// Delete the given label from the builder.
func (b EffectMapBuilder) Delete(label string) EffectMapBuilder {
	b.b.Delete(label)
	return b
}

// Merge entries into the builder. Existing labels are overwritten; callers
// guarantee payload agreement (row unification checks it).
func (b EffectMapBuilder) Merge(m EffectMap) EffectMapBuilder {
	m.Range(func(label string, payload Type) bool {
		b.b.Set(label, payload)
		return true
	})
	return b
}

// Finalize the builder into an immutable map.
func (b EffectMapBuilder) Build() EffectMap {
	if b.b == nil {
		return EmptyEffectMap
	}
	return EffectMap{b.b.Map()}
}
