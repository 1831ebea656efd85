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
	log "github.com/sirupsen/logrus"

	"github.com/loom-ir/loom/ir"
	"github.com/loom-ir/loom/kernel"
)

// lowerIndexSum lowers a reduction into a named, parameterized substitution
// rule instead of inlining it: the rule sum-reduces the lowered body over the
// reduction indices, holding the body's remaining free indices fixed as
// formal parameters. The call site applies the rule to those parameters,
// leaving expansion to the consuming stage. Every IndexSum node synthesizes
// its own rule, even when bodies coincide structurally.
func (ctx *context) lowerIndexSum(n *ir.IndexSum) (kernel.Expr, error) {
	body, err := ctx.rec(n.Body)
	if err != nil {
		return nil, err
	}
	name := ctx.names.Name("sum_tmp")
	free := ir.FreeIndices(n)
	params := make([]string, len(free))
	for i, fi := range free {
		if params[i], err = ctx.indexIname(fi); err != nil {
			return nil, err
		}
	}
	redInames := make([]string, len(n.Indices))
	for i, idx := range n.Indices {
		if redInames[i], err = ctx.indexIname(idx); err != nil {
			return nil, err
		}
	}
	ctx.rules = append(ctx.rules, kernel.SubstRule{
		Name:   name,
		Params: params,
		Body:   &kernel.Reduction{Op: "sum", Inames: redInames, Body: body},
	})
	log.Debugf("synthesized reduction rule %s over %v", name, redInames)
	args := make([]kernel.Expr, len(params))
	for i, p := range params {
		args[i] = &kernel.Var{Name: p}
	}
	return &kernel.Call{Name: name, Args: args}, nil
}
