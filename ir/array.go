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
	"slices"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/pkg/errors"
)

// Array is a constant tensor with row-major float64 storage.
type Array struct {
	Shape *shape.Shape
	Data  []float64
}

// Scalar returns a rank-0 array holding a single value.
func Scalar(v float64) *Array {
	return &Array{
		Shape: &shape.Shape{DType: dtype.Float64},
		Data:  []float64{v},
	}
}

// NewArray returns an array of the given axis lengths.
func NewArray(data []float64, dims ...int) (*Array, error) {
	size := 1
	for _, d := range dims {
		size *= d
	}
	if size != len(data) {
		return nil, errors.Errorf("len(data)=%d does not match axes %v=%d", len(data), dims, size)
	}
	return &Array{
		Shape: &shape.Shape{DType: dtype.Float64, AxisLengths: slices.Clone(dims)},
		Data:  data,
	}, nil
}

// IsScalar reports if the array has rank 0.
func (a *Array) IsScalar() bool {
	return len(a.Shape.AxisLengths) == 0
}

// Equal reports if two arrays have the same axis lengths and the same data.
func (a *Array) Equal(b *Array) bool {
	return slices.Equal(a.Shape.AxisLengths, b.Shape.AxisLengths) &&
		slices.Equal(a.Data, b.Data)
}
