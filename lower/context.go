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

package lower

import (
	"slices"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/loom-ir/loom/base/ordered"
	"github.com/loom-ir/loom/base/uname"
	"github.com/loom-ir/loom/ir"
	"github.com/loom-ir/loom/kernel"
)

type (
	varEntry struct {
		name  string
		shape []int
	}

	literalEntry struct {
		name  string
		array *ir.Array
	}

	indexEntry struct {
		iname  string
		extent int
	}

	cseEntry struct {
		name string
		free []*ir.Index
	}

	// binding is a deferred instruction computing a hoisted common
	// subexpression.
	binding struct {
		name   string
		inames []string
		rhs    kernel.Expr
	}
)

// context is the mutable state of one lowering run. All tables are keyed by
// the identity of the input node, never by structural equality: two distinct
// but equal nodes are tracked independently.
type context struct {
	useCount map[ir.Node]int

	names    *uname.Unique
	vars     *ordered.Map[*ir.Variable, varEntry]
	literals *ordered.Map[*ir.Literal, literalEntry]
	indices  *ordered.Map[*ir.Index, indexEntry]

	cse      map[ir.Node]cseEntry
	cseNames []string
	bindings []binding
	rules    []kernel.SubstRule
}

func newContext(useCount map[ir.Node]int) *context {
	return &context{
		useCount: useCount,
		names:    uname.New(),
		vars:     ordered.NewMap[*ir.Variable, varEntry](),
		literals: ordered.NewMap[*ir.Literal, literalEntry](),
		indices:  ordered.NewMap[*ir.Index, indexEntry](),
		cse:      make(map[ir.Node]cseEntry),
	}
}

// variableName returns the lowered name of a variable, registering it on
// first sight. A variable re-registered with a different shape is a malformed
// input.
func (ctx *context) variableName(v *ir.Variable) (string, error) {
	if e, ok := ctx.vars.Load(v); ok {
		if !slices.Equal(e.shape, v.Shape) {
			return "", errors.Errorf("variable %s seen with shape %v after being registered with shape %v", e.name, v.Shape, e.shape)
		}
		return e.name, nil
	}
	name := ctx.names.Name(v.Name)
	ctx.vars.Store(v, varEntry{name: name, shape: slices.Clone(v.Shape)})
	return name, nil
}

// literalName returns the lowered name of a non-scalar literal, registering
// it on first sight.
func (ctx *context) literalName(lit *ir.Literal) (string, error) {
	if e, ok := ctx.literals.Load(lit); ok {
		if !e.array.Equal(lit.Array) {
			return "", errors.Errorf("literal %s seen with a different array after registration", e.name)
		}
		return e.name, nil
	}
	name := ctx.names.Name("cnst")
	ctx.literals.Store(lit, literalEntry{name: name, array: lit.Array})
	return name, nil
}

// indexIname returns the loop-variable name of an index, registering its
// extent on first sight.
func (ctx *context) indexIname(idx *ir.Index) (string, error) {
	if e, ok := ctx.indices.Load(idx); ok {
		if e.extent != idx.Extent {
			return "", errors.Errorf("index %s seen with extent %d after being registered with extent %d", e.iname, idx.Extent, e.extent)
		}
		return e.iname, nil
	}
	iname := ctx.names.Name(idx.DisplayName())
	ctx.indices.Store(idx, indexEntry{iname: iname, extent: idx.Extent})
	return iname, nil
}

// cseEligible reports if hoisting a shared node into a temporary can pay off.
// Rank-0 literals are cheaper inlined; re-materializing a subscript gains
// nothing over redoing the subscript.
func cseEligible(n ir.Node) bool {
	switch x := n.(type) {
	case *ir.Literal:
		return !x.Array.IsScalar()
	case *ir.Indexed, *ir.FlexiblyIndexed:
		return false
	default:
		return true
	}
}

// rec is the memoizing entry point of expression lowering. A node referenced
// more than once is lowered a single time and bound to a temporary
// subscripted by its free indices; every visit after the first reads that
// binding back.
func (ctx *context) rec(n ir.Node) (kernel.Expr, error) {
	if ctx.useCount[n] <= 1 || !cseEligible(n) {
		return ctx.lowerExpr(n)
	}
	e, ok := ctx.cse[n]
	if !ok {
		rhs, err := ctx.lowerExpr(n)
		if err != nil {
			return nil, err
		}
		free := ir.FreeIndices(n)
		inames := make([]string, len(free))
		for i, fi := range free {
			if inames[i], err = ctx.indexIname(fi); err != nil {
				return nil, err
			}
		}
		e = cseEntry{name: ctx.names.Name("cse"), free: free}
		ctx.cse[n] = e
		ctx.cseNames = append(ctx.cseNames, e.name)
		ctx.bindings = append(ctx.bindings, binding{name: e.name, inames: inames, rhs: rhs})
		log.Debugf("hoisted shared %T node into %s[%v]", n, e.name, inames)
	}
	if len(e.free) == 0 {
		return &kernel.Var{Name: e.name}, nil
	}
	idxs := make([]kernel.Expr, len(e.free))
	for i, fi := range e.free {
		idx, err := ctx.lowerIndex(fi)
		if err != nil {
			return nil, err
		}
		idxs[i] = idx
	}
	return &kernel.Subscript{Aggregate: &kernel.Var{Name: e.name}, Indices: idxs}, nil
}
