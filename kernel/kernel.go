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

package kernel

import (
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
)

// Bound constrains a loop variable to [0, Extent).
type Bound struct {
	Iname  string
	Extent int
}

// Domain is a bounded integer coordinate space: the conjunction of the
// bounds of every loop variable of the kernel.
type Domain []Bound

// Instruction assigns an expression to a subscripted target. Within is the
// exact set of loop variables governing the instruction.
type Instruction struct {
	Target Expr
	RHS    Expr
	Within []string
	Tags   []string
}

// SubstRule is a named, parameterized definition. Its body is expanded by the
// consuming stage at every application site.
type SubstRule struct {
	Name   string
	Params []string
	Body   Expr
}

// Temporary declares a data buffer of the kernel. Global read-only
// temporaries carry a literal initializer; private ones are scratch storage
// whose shape is inferred by the consuming stage when nil.
type Temporary struct {
	Name        string
	DType       dtype.DataType
	Shape       *shape.Shape
	Initializer []float64
	ReadOnly    bool
	Global      bool
}

// Kernel is an explicit loop-nest kernel.
type Kernel struct {
	Name         string
	Domain       Domain
	Instructions []Instruction
	Rules        []SubstRule
	Temporaries  []Temporary
}
