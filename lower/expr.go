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
	"github.com/pkg/errors"

	"github.com/loom-ir/loom/ir"
	"github.com/loom-ir/loom/kernel"
)

// lowerExpr lowers a node structurally, one rule per variant. Children recurse
// through the memoizing entry point so nested sharing is still caught.
func (ctx *context) lowerExpr(n ir.Node) (kernel.Expr, error) {
	switch x := n.(type) {
	case *ir.Literal:
		if x.Array.IsScalar() {
			return kernel.Float(x.Array.Data[0]), nil
		}
		name, err := ctx.literalName(x)
		if err != nil {
			return nil, err
		}
		return &kernel.Var{Name: name}, nil
	case *ir.Variable:
		name, err := ctx.variableName(x)
		if err != nil {
			return nil, err
		}
		return &kernel.Var{Name: name}, nil
	case *ir.Sum:
		children, err := ctx.recAll(x.Children)
		if err != nil {
			return nil, err
		}
		return &kernel.Sum{Children: children}, nil
	case *ir.Product:
		children, err := ctx.recAll(x.Children)
		if err != nil {
			return nil, err
		}
		return &kernel.Product{Children: children}, nil
	case *ir.MinValue:
		children, err := ctx.recAll(x.Children)
		if err != nil {
			return nil, err
		}
		return &kernel.Min{Children: children}, nil
	case *ir.MaxValue:
		children, err := ctx.recAll(x.Children)
		if err != nil {
			return nil, err
		}
		return &kernel.Max{Children: children}, nil
	case *ir.Division:
		num, err := ctx.rec(x.Num)
		if err != nil {
			return nil, err
		}
		den, err := ctx.rec(x.Den)
		if err != nil {
			return nil, err
		}
		return &kernel.Quotient{Num: num, Den: den}, nil
	case *ir.Power:
		base, err := ctx.rec(x.Base)
		if err != nil {
			return nil, err
		}
		exp, err := ctx.rec(x.Exp)
		if err != nil {
			return nil, err
		}
		return &kernel.Power{Base: base, Exp: exp}, nil
	case *ir.MathFunction:
		args, err := ctx.recAll(x.Args)
		if err != nil {
			return nil, err
		}
		return &kernel.Call{Name: x.Name, Args: args}, nil
	case *ir.Comparison:
		left, err := ctx.rec(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := ctx.rec(x.Right)
		if err != nil {
			return nil, err
		}
		return &kernel.Comparison{Op: x.Op, Left: left, Right: right}, nil
	case *ir.Indexed:
		return ctx.lowerIndexed(x)
	case *ir.FlexiblyIndexed:
		return ctx.lowerFlexiblyIndexed(x)
	case *ir.IndexSum:
		return ctx.lowerIndexSum(x)
	case *ir.Identity, *ir.Zero:
		// Vectorial placeholders have no scalar form; an earlier
		// simplification stage must have eliminated them.
		return nil, errors.Errorf("no scalar lowering for %T node", n)
	default:
		return nil, errors.Errorf("no lowering for expression node %T", n)
	}
}

func (ctx *context) recAll(nodes []ir.Node) ([]kernel.Expr, error) {
	exprs := make([]kernel.Expr, len(nodes))
	for i, n := range nodes {
		e, err := ctx.rec(n)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return exprs, nil
}

// aggregateName resolves the base of a subscript to a name. The base must
// already be name-addressable: a variable or a literal.
func (ctx *context) aggregateName(n ir.Node) (string, error) {
	switch x := n.(type) {
	case *ir.Variable:
		return ctx.variableName(x)
	case *ir.Literal:
		return ctx.literalName(x)
	default:
		return "", errors.Errorf("cannot index into %T node", n)
	}
}

func (ctx *context) lowerIndexed(n *ir.Indexed) (kernel.Expr, error) {
	name, err := ctx.aggregateName(n.Base)
	if err != nil {
		return nil, err
	}
	idxs := make([]kernel.Expr, len(n.MultiIndex))
	for i, idx := range n.MultiIndex {
		if idxs[i], err = ctx.lowerIndex(idx); err != nil {
			return nil, err
		}
	}
	return &kernel.Subscript{Aggregate: &kernel.Var{Name: name}, Indices: idxs}, nil
}

func (ctx *context) lowerFlexiblyIndexed(n *ir.FlexiblyIndexed) (kernel.Expr, error) {
	name, err := ctx.aggregateName(n.Base)
	if err != nil {
		return nil, err
	}
	if v, ok := n.Base.(*ir.Variable); ok && ir.IsFlattenedShape(v.Shape) {
		// Flattened aggregates are passed through with no subscript.
		return &kernel.Var{Name: name}, nil
	}
	idxs := make([]kernel.Expr, len(n.Dims))
	for i, dim := range n.Dims {
		if idxs[i], err = ctx.lowerFlexAxis(dim); err != nil {
			return nil, err
		}
	}
	return &kernel.Subscript{Aggregate: &kernel.Var{Name: name}, Indices: idxs}, nil
}

// lowerFlexAxis lowers one axis descriptor to offset + sum of index*stride
// terms, folding zero offsets and unit strides away.
func (ctx *context) lowerFlexAxis(dim ir.DimIndex) (kernel.Expr, error) {
	var terms []kernel.Expr
	if dim.Offset != 0 || len(dim.Terms) == 0 {
		terms = append(terms, kernel.Int(dim.Offset))
	}
	for _, t := range dim.Terms {
		idx, err := ctx.lowerIndex(t.Index)
		if err != nil {
			return nil, err
		}
		if t.Stride != 1 {
			idx = &kernel.Product{Children: []kernel.Expr{idx, kernel.Int(t.Stride)}}
		}
		terms = append(terms, idx)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return &kernel.Sum{Children: terms}, nil
}
