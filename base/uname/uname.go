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

// Package uname provides unique names.
package uname

import "fmt"

// Unique generates unique names.
type Unique struct {
	taken map[string]bool
	next  map[string]int
}

// New name generator.
func New() *Unique {
	return &Unique{
		taken: make(map[string]bool),
		next:  make(map[string]int),
	}
}

// Name returns a unique name given a desired base name.
// If the base name is available, it is returned directly. Else, the smallest
// unissued numeric suffix is appended. A suffixed name that has already been
// requested explicitly is never returned a second time.
func (n *Unique) Name(base string) string {
	if !n.taken[base] {
		n.taken[base] = true
		return base
	}
	index, ok := n.next[base]
	if !ok {
		index = 1
	}
	for {
		name := fmt.Sprintf("%s%d", base, index)
		index++
		if !n.taken[name] {
			n.next[base] = index
			n.taken[name] = true
			return name
		}
	}
}

// Taken reports if a name has already been issued.
func (n *Unique) Taken(name string) bool {
	return n.taken[name]
}
