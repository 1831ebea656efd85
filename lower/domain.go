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

import "github.com/loom-ir/loom/kernel"

// domain builds the iteration space from every loop variable registered
// during lowering: the conjunction of 0 <= v < extent(v), one bound per
// loop variable, in registration order.
func (ctx *context) domain() kernel.Domain {
	dom := make(kernel.Domain, 0, ctx.indices.Len())
	for e := range ctx.indices.Values() {
		dom = append(dom, kernel.Bound{Iname: e.iname, Extent: e.extent})
	}
	return dom
}
