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

// Package kernel defines the loop-nest kernel representation produced by the
// lowering pass: a bounded iteration domain, subscripted assignment
// instructions, named substitution rules, and data declarations.
package kernel

// Expr is a scalar expression of the kernel representation.
type Expr interface {
	expr()
	String() string
}

type (
	// Var references a loop variable, an argument, or a temporary by name.
	Var struct {
		Name string
	}

	// Int is an integer constant.
	Int int

	// Float is a floating-point constant.
	Float float64

	// Subscript indexes a named aggregate.
	Subscript struct {
		Aggregate *Var
		Indices   []Expr
	}

	// Sum of its children.
	Sum struct {
		Children []Expr
	}

	// Product of its children.
	Product struct {
		Children []Expr
	}

	// Quotient of a numerator by a denominator.
	Quotient struct {
		Num, Den Expr
	}

	// Power raises a base to an exponent.
	Power struct {
		Base, Exp Expr
	}

	// Min of its children.
	Min struct {
		Children []Expr
	}

	// Max of its children.
	Max struct {
		Children []Expr
	}

	// Comparison of two operands by a relational operator.
	Comparison struct {
		Op          string
		Left, Right Expr
	}

	// Call applies a named function or substitution rule to arguments.
	Call struct {
		Name string
		Args []Expr
	}

	// Reduction combines its body over a set of loop variables with an
	// associative operation.
	Reduction struct {
		Op     string
		Inames []string
		Body   Expr
	}
)

func (*Var) expr()        {}
func (Int) expr()         {}
func (Float) expr()       {}
func (*Subscript) expr()  {}
func (*Sum) expr()        {}
func (*Product) expr()    {}
func (*Quotient) expr()   {}
func (*Power) expr()      {}
func (*Min) expr()        {}
func (*Max) expr()        {}
func (*Comparison) expr() {}
func (*Call) expr()       {}
func (*Reduction) expr()  {}
