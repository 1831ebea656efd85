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

package ir_test

import (
	"slices"
	"testing"

	"github.com/loom-ir/loom/ir"
)

func TestCumulativeStrides(t *testing.T) {
	tests := []struct {
		dims []int
		want []int
	}{
		{
			dims: []int{2, 3, 4},
			want: []int{12, 4, 1},
		},
		{
			dims: []int{5},
			want: []int{1},
		},
		{
			dims: nil,
			want: []int{},
		},
		{
			dims: []int{7, 2},
			want: []int{2, 1},
		},
	}
	for i, test := range tests {
		got := ir.CumulativeStrides(test.dims)
		if !slices.Equal(got, test.want) {
			t.Errorf("test %d: CumulativeStrides(%v)=%v but want %v", i, test.dims, got, test.want)
		}
	}
}

func TestFlattenedDims(t *testing.T) {
	i := ir.NewIndex("i", 2)
	j := ir.NewIndex("j", 3)
	k := ir.NewIndex("k", 4)
	dims, err := ir.FlattenedDims(5, []int{2, 3, 4}, []ir.IndexNode{i, j, k})
	if err != nil {
		t.Fatal(err)
	}
	if len(dims) != 1 {
		t.Fatalf("got %d axes but want 1", len(dims))
	}
	if dims[0].Offset != 5 {
		t.Errorf("got offset %d but want 5", dims[0].Offset)
	}
	wantStrides := []int{12, 4, 1}
	for n, term := range dims[0].Terms {
		if term.Stride != wantStrides[n] {
			t.Errorf("term %d: got stride %d but want %d", n, term.Stride, wantStrides[n])
		}
	}
	if _, err := ir.FlattenedDims(0, []int{2, 3}, []ir.IndexNode{i}); err == nil {
		t.Errorf("axis/index count mismatch: got nil error")
	}
}

func indexNames(idxs []*ir.Index) []string {
	names := make([]string, len(idxs))
	for i, idx := range idxs {
		names[i] = idx.DisplayName()
	}
	return names
}

func TestFreeIndices(t *testing.T) {
	i := ir.NewIndex("i", 4)
	j := ir.NewIndex("j", 3)
	k := ir.NewIndex("k", 5)
	a := &ir.Variable{Name: "a", Shape: []int{4, 5}}
	b := &ir.Variable{Name: "b", Shape: []int{5, 3}}
	aik := &ir.Indexed{Base: a, MultiIndex: []ir.IndexNode{i, k}}
	bkj := &ir.Indexed{Base: b, MultiIndex: []ir.IndexNode{k, j}}
	prod := &ir.Product{Children: []ir.Node{aik, bkj}}

	got := indexNames(ir.FreeIndices(prod))
	if want := []string{"i", "j", "k"}; !slices.Equal(got, want) {
		t.Errorf("free indices of product: got %v but want %v", got, want)
	}

	red := &ir.IndexSum{Body: prod, Indices: []*ir.Index{k}}
	got = indexNames(ir.FreeIndices(red))
	if want := []string{"i", "j"}; !slices.Equal(got, want) {
		t.Errorf("free indices of reduction: got %v but want %v", got, want)
	}
}

func TestFreeIndicesVariableIndex(t *testing.T) {
	i := ir.NewIndex("i", 4)
	p := &ir.Variable{Name: "perm", Shape: []int{4}}
	pi := &ir.Indexed{Base: p, MultiIndex: []ir.IndexNode{i}}
	x := &ir.Variable{Name: "x", Shape: []int{8}}
	gathered := &ir.Indexed{Base: x, MultiIndex: []ir.IndexNode{&ir.VariableIndex{Expr: pi}}}

	got := indexNames(ir.FreeIndices(gathered))
	if want := []string{"i"}; !slices.Equal(got, want) {
		t.Errorf("free indices through variable index: got %v but want %v", got, want)
	}
}

func TestArray(t *testing.T) {
	s := ir.Scalar(2.5)
	if !s.IsScalar() {
		t.Errorf("scalar array reported as non-scalar")
	}
	if s.Data[0] != 2.5 {
		t.Errorf("got scalar value %v but want 2.5", s.Data[0])
	}
	a, err := ir.NewArray([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if a.IsScalar() {
		t.Errorf("rank-2 array reported as scalar")
	}
	b, err := ir.NewArray([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Errorf("equal arrays reported as different")
	}
	c, err := ir.NewArray([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Errorf("arrays of different shapes reported as equal")
	}
	if _, err := ir.NewArray([]float64{1, 2, 3}, 2, 2); err == nil {
		t.Errorf("size mismatch: got nil error")
	}
}
