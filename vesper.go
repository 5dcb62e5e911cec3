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

// vesper provides type and effect inference for a statically-typed
// functional language with algebraic effects and handlers.
//
// The type-system is an extension of Hindley-Milner with row-polymorphic
// effect rows, parametric algebraic data types, and single-parameter type
// classes resolved by dictionary passing.
//
//
// Supported Features:
//
//   * Principal type and effect inference without annotations
//   * Row-polymorphic effect rows with handler-based discharge
//   * Parametric, mutually-recursive algebraic data types
//   * Single-parameter type classes with superclasses and instance contexts
//   * Mutually-recursive (generic) function expressions within grouped let bindings
//   * Generalization with levels and the value restriction
//   * Per-declaration failure isolation with deterministic diagnostics
//
//
// Links:
//
// Efficient Generalization with Levels (Oleg Kiselyov): http://okmij.org/ftp/ML/generalization.html#levels
//
// Koka: Programming with Row-polymorphic Effect Types (Leijen, 2014): https://www.microsoft.com/en-us/research/publication/koka-programming-with-row-polymorphic-effect-types/
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
//
// Value restriction: https://en.wikipedia.org/wiki/Value_restriction
package vesper
