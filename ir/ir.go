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

// Package ir defines the symbolic tensor-expression representation consumed
// by the lowering pass.
//
// Expressions form a tree whose nodes are shared by reference: the same node
// pointer appearing under several parents is one subexpression, not several
// equal ones. The lowering pass relies on that identity for deduplication, so
// nodes must not be mutated once they are part of a tree.
package ir

// Node is a tensor-valued or scalar-valued expression.
type Node interface {
	node()
}

type (
	// Literal is a constant tensor. Rank-0 literals are inlined by the
	// lowering pass; higher ranks become named read-only buffers.
	Literal struct {
		Array *Array
	}

	// Variable is a named array-valued quantity of a known shape.
	Variable struct {
		Name  string
		Shape []int
	}

	// Indexed subscripts a name-addressable aggregate by a multi-index.
	Indexed struct {
		Base       Node
		MultiIndex []IndexNode
	}

	// IndexTerm is one index,stride product of a flexible subscript axis.
	IndexTerm struct {
		Index  IndexNode
		Stride int
	}

	// DimIndex addresses one logical axis as offset plus a sum of
	// index,stride terms.
	DimIndex struct {
		Offset int
		Terms  []IndexTerm
	}

	// FlexiblyIndexed subscripts an aggregate through per-axis affine
	// descriptors, supporting strided and flattened layouts.
	FlexiblyIndexed struct {
		Base Node
		Dims []DimIndex
	}

	// Sum of its children.
	Sum struct {
		Children []Node
	}

	// Product of its children.
	Product struct {
		Children []Node
	}

	// Division of a numerator by a denominator.
	Division struct {
		Num, Den Node
	}

	// Power raises a base to an exponent.
	Power struct {
		Base, Exp Node
	}

	// MathFunction applies a named elementwise function to its arguments.
	MathFunction struct {
		Name string
		Args []Node
	}

	// MinValue of its children.
	MinValue struct {
		Children []Node
	}

	// MaxValue of its children.
	MaxValue struct {
		Children []Node
	}

	// Comparison of two operands by a relational operator (e.g. "<", ">=").
	Comparison struct {
		Op          string
		Left, Right Node
	}

	// IndexSum reduces its body by summation over the given indices.
	IndexSum struct {
		Body    Node
		Indices []*Index
	}

	// Identity is a structured vectorial placeholder. It has no scalar
	// lowering and must be eliminated before the lowering pass runs.
	Identity struct {
		Size int
	}

	// Zero is a structured vectorial placeholder. It has no scalar
	// lowering and must be eliminated before the lowering pass runs.
	Zero struct {
		Dims []int
	}
)

func (*Literal) node()         {}
func (*Variable) node()        {}
func (*Indexed) node()         {}
func (*FlexiblyIndexed) node() {}
func (*Sum) node()             {}
func (*Product) node()         {}
func (*Division) node()        {}
func (*Power) node()           {}
func (*MathFunction) node()    {}
func (*MinValue) node()        {}
func (*MaxValue) node()        {}
func (*Comparison) node()      {}
func (*IndexSum) node()        {}
func (*Identity) node()        {}
func (*Zero) node()            {}

// Flattened marks the sole dimension of a variable addressed as a flat
// buffer: a FlexiblyIndexed node over such a variable passes the aggregate
// through with no subscript.
const Flattened = -1

// IsFlattenedShape reports if a shape is the 1-D flattened marker.
func IsFlattenedShape(dims []int) bool {
	return len(dims) == 1 && dims[0] == Flattened
}

// Children returns the child expressions of a node. Subscript indices are not
// children: index-embedded expressions are traversed by FreeIndices, not by
// the structural walk.
func Children(n Node) []Node {
	switch x := n.(type) {
	case *Indexed:
		return []Node{x.Base}
	case *FlexiblyIndexed:
		return []Node{x.Base}
	case *Sum:
		return x.Children
	case *Product:
		return x.Children
	case *Division:
		return []Node{x.Num, x.Den}
	case *Power:
		return []Node{x.Base, x.Exp}
	case *MathFunction:
		return x.Args
	case *MinValue:
		return x.Children
	case *MaxValue:
		return x.Children
	case *Comparison:
		return []Node{x.Left, x.Right}
	case *IndexSum:
		return []Node{x.Body}
	default:
		return nil
	}
}
