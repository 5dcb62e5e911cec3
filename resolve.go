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

// solvePred resolves a class constraint if its parameter exposes a concrete
// head constructor, and defers it otherwise. Deferral is not failure:
// unification later in the same scope routinely grounds the parameter.
func (ctx *InferenceContext) solvePred(c constraint) *Diagnostic {
	head, ok := types.HeadConst(types.RealType(c.pred.Param))
	if !ok {
		ctx.deferred = append(ctx.deferred, c)
		return nil
	}
	return ctx.resolvePred(c, head)
}

// resolvePred discharges a grounded class constraint against the instance
// table. Matching pushes the superclass obligations, unifies the
// constraint's parameter with a fresh copy of the instance head (grounding
// the instance's argument variables), re-emits the instance context over
// those arguments, and records the concrete dictionary at the use site.
// Context obligations are structurally smaller than the head, so
// resolution terminates.
func (ctx *InferenceContext) resolvePred(c constraint, head string) *Diagnostic {
	table := ctx.env.Instances
	var inst *types.Instance
	if table != nil {
		inst, _ = table.Lookup(c.pred.Class, head)
	}
	if inst == nil {
		return &Diagnostic{
			Kind:    NoInstance,
			Primary: c.loc,
			Actual:  c.pred.Param,
			Class:   c.pred.Class,
		}
	}
	if cls, ok := table.Class(c.pred.Class); ok {
		for _, super := range cls.Super {
			ctx.pushPred(types.Pred{Class: super, Param: c.pred.Param}, c.site, c.level, c.loc)
		}
	}

	instVars := inst.InstanceVars()
	lookup := make(map[int]*types.Var, len(instVars))
	for _, v := range instVars {
		lookup[v.Id()] = ctx.vt.New(c.level, v.Sort())
	}
	if err := ctx.unify(types.Subst(inst.Param, lookup), c.pred.Param); err != nil {
		return ctx.diag(err, c)
	}
	for _, p := range inst.Context {
		ctx.pushPred(types.Pred{Class: p.Class, Param: types.Subst(p.Param, lookup)}, c.site, c.level, c.loc)
	}
	if c.site != nil {
		c.site.AddDict(types.DictRef{Instance: inst})
	}
	return nil
}

// resolveDeferred re-examines deferred class constraints until a fixpoint:
// resolving one constraint can ground the parameter of another, so passes
// repeat while any constraint makes progress. Constraints still free-headed
// at the fixpoint stay deferred for an enclosing generalization point or
// the end-of-run ambiguity check.
func (ctx *InferenceContext) resolveDeferred() *Diagnostic {
	for {
		progress := false
		pending := ctx.deferred
		ctx.deferred = nil
		for _, c := range pending {
			head, ok := types.HeadConst(types.RealType(c.pred.Param))
			if !ok {
				ctx.deferred = append(ctx.deferred, c)
				continue
			}
			if d := ctx.resolvePred(c, head); d != nil {
				return d
			}
			progress = true
		}
		if !progress {
			return nil
		}
		// Resolution may have queued superclass and context obligations.
		if d := ctx.solveAll(); d != nil {
			return d
		}
	}
}

// ambiguityCheck reports every class constraint left with a free head after
// the final fixpoint. Nothing can ground these afterwards and no defaulting
// is applied, so each is an error at its use site.
func (ctx *InferenceContext) ambiguityCheck() []*Diagnostic {
	if len(ctx.deferred) == 0 {
		return nil
	}
	diags := make([]*Diagnostic, 0, len(ctx.deferred))
	for _, c := range ctx.deferred {
		diags = append(diags, &Diagnostic{
			Kind:    AmbiguousType,
			Primary: c.loc,
			Actual:  types.RealType(c.pred.Param),
			Class:   c.pred.Class,
		})
	}
	ctx.deferred = nil
	return diags
}
