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

package ir

import (
	"fmt"
	"slices"
	"sync/atomic"
)

// IndexNode is an entry of a multi-index: a loop index, an index-valued
// expression, or an integer constant.
type IndexNode interface {
	indexNode()
}

// Index is a loop index ranging over [0, Extent). Count is a creation serial
// number, unique process-wide, used to name anonymous indices and to order
// free-index sets canonically.
type Index struct {
	Name   string
	Count  int
	Extent int
}

// VariableIndex is an index whose value is an expression.
type VariableIndex struct {
	Expr Node
}

// ConstIndex is a constant subscript value.
type ConstIndex int

func (*Index) indexNode()         {}
func (*VariableIndex) indexNode() {}
func (ConstIndex) indexNode()     {}

var indexCount atomic.Int64

// NewIndex returns a named loop index with the given extent.
func NewIndex(name string, extent int) *Index {
	return &Index{Name: name, Count: int(indexCount.Add(1)), Extent: extent}
}

// NewAnonymousIndex returns an unnamed loop index with the given extent.
// Its display name is derived from its creation serial number.
func NewAnonymousIndex(extent int) *Index {
	return NewIndex("", extent)
}

// DisplayName returns the preferred loop-variable name for the index.
func (idx *Index) DisplayName() string {
	if idx.Name == "" {
		return fmt.Sprintf("i%d", idx.Count)
	}
	return idx.Name
}

// FreeIndices returns the loop indices appearing unbound in an expression, in
// canonical order (by creation serial number). An IndexSum binds its
// reduction indices; a VariableIndex contributes the free indices of its
// wrapped expression.
func FreeIndices(n Node) []*Index {
	seen := make(map[*Index]bool)
	var out []*Index
	add := func(idx *Index) {
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	var visitNode func(Node)
	visitIndex := func(i IndexNode) {
		switch x := i.(type) {
		case *Index:
			add(x)
		case *VariableIndex:
			for _, idx := range FreeIndices(x.Expr) {
				add(idx)
			}
		}
	}
	visitNode = func(n Node) {
		switch x := n.(type) {
		case *Indexed:
			visitNode(x.Base)
			for _, i := range x.MultiIndex {
				visitIndex(i)
			}
		case *FlexiblyIndexed:
			visitNode(x.Base)
			for _, d := range x.Dims {
				for _, t := range d.Terms {
					visitIndex(t.Index)
				}
			}
		case *IndexSum:
			bound := make(map[*Index]bool, len(x.Indices))
			for _, idx := range x.Indices {
				bound[idx] = true
			}
			for _, idx := range FreeIndices(x.Body) {
				if !bound[idx] {
					add(idx)
				}
			}
		default:
			for _, c := range Children(n) {
				visitNode(c)
			}
		}
	}
	visitNode(n)
	slices.SortFunc(out, func(a, b *Index) int { return a.Count - b.Count })
	return out
}
