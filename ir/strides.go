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

import "github.com/pkg/errors"

// CumulativeStrides returns the row-major stride of each axis given
// per-axis capacities: the stride of axis i is the product of all
// capacities to its right, and the last axis has stride 1.
//
// For example:
//
//	[2, 3, 4] ==> [12, 4, 1]
func CumulativeStrides(dims []int) []int {
	strides := make([]int, len(dims))
	for i := range strides {
		strides[i] = 1
		for _, d := range dims[i+1:] {
			strides[i] *= d
		}
	}
	return strides
}

// FlattenedDims builds the single-axis descriptor addressing an array of the
// given capacities through a flat buffer: offset plus one index,stride term
// per axis, with row-major strides.
func FlattenedDims(offset int, dims []int, idxs []IndexNode) ([]DimIndex, error) {
	if len(idxs) != len(dims) {
		return nil, errors.Errorf("%d indices address %d axes", len(idxs), len(dims))
	}
	strides := CumulativeStrides(dims)
	terms := make([]IndexTerm, len(idxs))
	for i, idx := range idxs {
		terms[i] = IndexTerm{Index: idx, Stride: strides[i]}
	}
	return []DimIndex{{Offset: offset, Terms: terms}}, nil
}
