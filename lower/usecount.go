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

import "github.com/loom-ir/loom/ir"

// countUses counts, by identity, how many parent edges reference each node
// reachable from n. A shared child is re-entered once per edge, so the count
// reflects structural multiplicity: any node with a count above one has at
// least two parents and is a candidate for hoisting.
func countUses(n ir.Node, counts map[ir.Node]int) {
	counts[n]++
	for _, c := range ir.Children(n) {
		countUses(c, counts)
	}
}
