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

package lower_test

import (
	"strings"
	"testing"

	"github.com/loom-ir/loom/ir"
	"github.com/loom-ir/loom/lower"
)

func TestWriteConflict(t *testing.T) {
	i := ir.NewIndex("i", 3)
	j := ir.NewIndex("j", 3)
	out := &ir.Variable{Name: "out", Shape: []int{3}}
	x := &ir.Variable{Name: "x", Shape: []int{3}}
	y := &ir.Variable{Name: "y", Shape: []int{3}}
	prog := []lower.Assignment{
		{
			LHS: &ir.Indexed{Base: out, MultiIndex: []ir.IndexNode{i}},
			RHS: &ir.Indexed{Base: x, MultiIndex: []ir.IndexNode{i}},
		},
		{
			LHS: &ir.Indexed{Base: out, MultiIndex: []ir.IndexNode{j}},
			RHS: &ir.Indexed{Base: y, MultiIndex: []ir.IndexNode{j}},
		},
	}
	_, err := lower.Lower("conflict", prog, []*ir.Index{i, j}, lower.Overwrite)
	if err == nil {
		t.Fatalf("overlapping writes: got nil error")
	}
	if !strings.Contains(err.Error(), "not disjoint") {
		t.Errorf("got error %q but want a disjointness report", err)
	}
}

func TestDisjointWrites(t *testing.T) {
	// Both assignments write a, split as [0,5) and [5,10) through offset
	// addressing.
	i := ir.NewIndex("i", 5)
	j := ir.NewIndex("j", 5)
	a := &ir.Variable{Name: "a", Shape: []int{10}}
	low := &ir.Literal{Array: ir.Scalar(1)}
	high := &ir.Literal{Array: ir.Scalar(2)}
	prog := []lower.Assignment{
		{
			LHS: &ir.FlexiblyIndexed{Base: a, Dims: []ir.DimIndex{
				{Terms: []ir.IndexTerm{{Index: i, Stride: 1}}},
			}},
			RHS: low,
		},
		{
			LHS: &ir.FlexiblyIndexed{Base: a, Dims: []ir.DimIndex{
				{Offset: 5, Terms: []ir.IndexTerm{{Index: j, Stride: 1}}},
			}},
			RHS: high,
		},
	}
	if _, err := lower.Lower("disjoint", prog, []*ir.Index{i, j}, lower.Overwrite); err != nil {
		t.Fatalf("disjoint writes: %+v", err)
	}
}

func TestDistinctAggregatesNeverConflict(t *testing.T) {
	i := ir.NewIndex("i", 3)
	u := &ir.Variable{Name: "u", Shape: []int{3}}
	v := &ir.Variable{Name: "v", Shape: []int{3}}
	x := &ir.Variable{Name: "x", Shape: []int{3}}
	prog := []lower.Assignment{
		{
			LHS: &ir.Indexed{Base: u, MultiIndex: []ir.IndexNode{i}},
			RHS: &ir.Indexed{Base: x, MultiIndex: []ir.IndexNode{i}},
		},
		{
			LHS: &ir.Indexed{Base: v, MultiIndex: []ir.IndexNode{i}},
			RHS: &ir.Indexed{Base: x, MultiIndex: []ir.IndexNode{i}},
		},
	}
	if _, err := lower.Lower("two_targets", prog, []*ir.Index{i}, lower.Overwrite); err != nil {
		t.Fatalf("distinct targets: %+v", err)
	}
}

func TestNonAffineFootprint(t *testing.T) {
	i := ir.NewIndex("i", 3)
	perm := &ir.Variable{Name: "perm", Shape: []int{3}}
	out := &ir.Variable{Name: "out", Shape: []int{3}}
	x := &ir.Variable{Name: "x", Shape: []int{3}}
	// out is written through a data-dependent index: its footprint cannot
	// be analyzed.
	gather := &ir.VariableIndex{Expr: &ir.Indexed{Base: perm, MultiIndex: []ir.IndexNode{i}}}
	prog := []lower.Assignment{{
		LHS: &ir.Indexed{Base: out, MultiIndex: []ir.IndexNode{gather}},
		RHS: &ir.Indexed{Base: x, MultiIndex: []ir.IndexNode{i}},
	}}
	_, err := lower.Lower("gather", prog, []*ir.Index{i}, lower.Overwrite)
	if err == nil {
		t.Fatalf("data-dependent write: got nil error")
	}
	if !strings.Contains(err.Error(), "not affine") {
		t.Errorf("got error %q but want a footprint analysis report", err)
	}
}
