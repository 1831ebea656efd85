// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lower translates tensor-expression trees into explicit loop-nest
// kernels: named loop variables over a bounded integer domain, subscripted
// assignment instructions, substitution rules for deferred reductions, and
// data declarations.
//
// The pass is a pure, synchronous traversal of an immutable input tree. All
// deduplication is keyed by node identity, so input nodes must not be mutated
// during or after a call to Lower.
package lower

import (
	"github.com/gx-org/backend/dtype"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/loom-ir/loom/ir"
	"github.com/loom-ir/loom/kernel"
)

// Assignment is one top-level statement to lower: a left-hand subscript
// expression and the right-hand expression written to it.
type Assignment struct {
	LHS, RHS ir.Node
}

// Mode selects how the lowered right-hand sides combine with their targets.
// It applies to the whole lowering run.
type Mode int

const (
	// Overwrite stores each right-hand side into its target.
	Overwrite Mode = iota
	// Accumulate adds each right-hand side to its target, for scatter-add
	// style kernels.
	Accumulate
)

// DefaultKernelName is used when Lower is called with an empty name.
const DefaultKernelName = "loom_kernel"

// Lower translates an ordered sequence of assignments into a kernel.
//
// argOrder lists the loop indices to expose on the top-level instructions,
// in preferred order; duplicates are dropped, first occurrence kept. Each
// top-level instruction is then governed by the listed indices free in its
// right-hand side.
//
// Lower either returns a complete kernel or an error; no partial kernel is
// ever produced. The same input lowered through two fresh calls yields
// structurally identical kernels.
func Lower(name string, prog []Assignment, argOrder []*ir.Index, mode Mode) (*kernel.Kernel, error) {
	if name == "" {
		name = DefaultKernelName
	}
	seen := make(map[*ir.Index]bool, len(argOrder))
	order := make([]*ir.Index, 0, len(argOrder))
	for _, idx := range argOrder {
		if !seen[idx] {
			seen[idx] = true
			order = append(order, idx)
		}
	}

	counts := make(map[ir.Node]int)
	for _, a := range prog {
		countUses(a.RHS, counts)
	}
	ctx := newContext(counts)
	log.Debugf("lowering %d assignments into kernel %s", len(prog), name)

	type loweredAssignment struct {
		rhs  kernel.Expr
		free []string
	}
	lowered := make([]loweredAssignment, len(prog))
	for i, a := range prog {
		rhs, err := ctx.rec(a.RHS)
		if err != nil {
			return nil, err
		}
		rhsFree := make(map[*ir.Index]bool)
		for _, fi := range ir.FreeIndices(a.RHS) {
			rhsFree[fi] = true
		}
		var free []string
		for _, idx := range order {
			if !rhsFree[idx] {
				continue
			}
			iname, err := ctx.indexIname(idx)
			if err != nil {
				return nil, err
			}
			free = append(free, iname)
		}
		lowered[i] = loweredAssignment{rhs: rhs, free: free}
	}

	// A multi-dimensional left-hand side decomposes into one instruction
	// per distinct loop variable of its subscript, each writing a freshly
	// named copy of the aggregate under that variable alone. A subscript
	// without loop variables keeps a single instruction.
	lhss := make([]*kernel.Subscript, len(prog))
	var topInstrs []kernel.Instruction
	for i, a := range prog {
		lhsExpr, err := ctx.rec(a.LHS)
		if err != nil {
			return nil, err
		}
		lhs, ok := lhsExpr.(*kernel.Subscript)
		if !ok {
			return nil, errors.Errorf("left-hand side lowers to %s, not to a subscript", lhsExpr)
		}
		lhss[i] = lhs
		rhs := lowered[i].rhs
		if mode == Accumulate {
			rhs = &kernel.Sum{Children: []kernel.Expr{lhs, rhs}}
		}
		deps := varLeaves(lhs.Indices)
		if len(deps) == 0 {
			// A subscript with no loop variable addresses a single
			// cell; the write is kept under its constant subscript.
			topInstrs = append(topInstrs, kernel.Instruction{
				Target: &kernel.Subscript{
					Aggregate: &kernel.Var{Name: ctx.names.Name(lhs.Aggregate.Name)},
					Indices:   lhs.Indices,
				},
				RHS:    rhs,
				Within: lowered[i].free,
			})
		}
		for _, dep := range deps {
			target := &kernel.Subscript{
				Aggregate: &kernel.Var{Name: ctx.names.Name(lhs.Aggregate.Name)},
				Indices:   []kernel.Expr{dep},
			}
			topInstrs = append(topInstrs, kernel.Instruction{
				Target: target,
				RHS:    rhs,
				Within: lowered[i].free,
			})
		}
	}

	// Hoisted subexpressions are computed before any top-level write, in
	// the order they were first encountered.
	instructions := make([]kernel.Instruction, 0, len(ctx.bindings)+len(topInstrs))
	for _, b := range ctx.bindings {
		instructions = append(instructions, kernel.Instruction{
			Target: subscr(b.name, b.inames),
			RHS:    b.rhs,
			Within: b.inames,
			Tags:   []string{"cse"},
		})
	}
	instructions = append(instructions, topInstrs...)

	dom := ctx.domain()
	if err := checkDisjoint(dom, lhss); err != nil {
		return nil, err
	}

	temps := make([]kernel.Temporary, 0, ctx.literals.Len()+len(ctx.cseNames))
	for e := range ctx.literals.Values() {
		temps = append(temps, kernel.Temporary{
			Name:        e.name,
			DType:       dtype.Float64,
			Shape:       e.array.Shape,
			Initializer: e.array.Data,
			ReadOnly:    true,
			Global:      true,
		})
	}
	for _, n := range ctx.cseNames {
		temps = append(temps, kernel.Temporary{Name: n, DType: dtype.Float64})
	}

	return &kernel.Kernel{
		Name:         name,
		Domain:       dom,
		Instructions: instructions,
		Rules:        ctx.rules,
		Temporaries:  temps,
	}, nil
}

func subscr(name string, inames []string) kernel.Expr {
	if len(inames) == 0 {
		return &kernel.Var{Name: name}
	}
	idxs := make([]kernel.Expr, len(inames))
	for i, iname := range inames {
		idxs[i] = &kernel.Var{Name: iname}
	}
	return &kernel.Subscript{Aggregate: &kernel.Var{Name: name}, Indices: idxs}
}

// varLeaves returns the distinct variable leaves of the given subscript
// components, in first-appearance order. Aggregates of nested subscripts are
// names, not loop variables, and are skipped.
func varLeaves(exprs []kernel.Expr) []*kernel.Var {
	seen := make(map[string]bool)
	var deps []*kernel.Var
	var walk func(kernel.Expr)
	walk = func(e kernel.Expr) {
		switch x := e.(type) {
		case *kernel.Var:
			if !seen[x.Name] {
				seen[x.Name] = true
				deps = append(deps, x)
			}
		case *kernel.Subscript:
			for _, idx := range x.Indices {
				walk(idx)
			}
		case *kernel.Sum:
			for _, c := range x.Children {
				walk(c)
			}
		case *kernel.Product:
			for _, c := range x.Children {
				walk(c)
			}
		case *kernel.Min:
			for _, c := range x.Children {
				walk(c)
			}
		case *kernel.Max:
			for _, c := range x.Children {
				walk(c)
			}
		case *kernel.Quotient:
			walk(x.Num)
			walk(x.Den)
		case *kernel.Power:
			walk(x.Base)
			walk(x.Exp)
		case *kernel.Comparison:
			walk(x.Left)
			walk(x.Right)
		case *kernel.Call:
			for _, a := range x.Args {
				walk(a)
			}
		case *kernel.Reduction:
			walk(x.Body)
		}
	}
	for _, e := range exprs {
		walk(e)
	}
	return deps
}
