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

// lowerIndex maps an index node to a lowered index expression: a loop index
// becomes its loop variable, an index-valued expression is lowered through
// expression lowering, and an integer constant passes through unchanged.
func (ctx *context) lowerIndex(idx ir.IndexNode) (kernel.Expr, error) {
	switch x := idx.(type) {
	case *ir.Index:
		iname, err := ctx.indexIname(x)
		if err != nil {
			return nil, err
		}
		return &kernel.Var{Name: iname}, nil
	case *ir.VariableIndex:
		return ctx.rec(x.Expr)
	case ir.ConstIndex:
		return kernel.Int(x), nil
	default:
		return nil, errors.Errorf("no lowering for index node %T", idx)
	}
}
