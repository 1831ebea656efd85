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
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/exp/maps"

	"github.com/loom-ir/loom/kernel"
)

// footprint is the set of concrete index tuples one top-level assignment
// writes to, ranging over the full iteration domain.
type footprint struct {
	aggregate string
	points    map[string]bool
}

// evalIndex evaluates a lowered subscript component at one domain point.
// Only affine integer forms are supported: loop variables, integer
// constants, sums and products.
func evalIndex(e kernel.Expr, env map[string]int) (int, error) {
	switch x := e.(type) {
	case kernel.Int:
		return int(x), nil
	case *kernel.Var:
		v, ok := env[x.Name]
		if !ok {
			return 0, errors.Errorf("%s is not a loop variable", x.Name)
		}
		return v, nil
	case *kernel.Sum:
		total := 0
		for _, c := range x.Children {
			v, err := evalIndex(c, env)
			if err != nil {
				return 0, err
			}
			total += v
		}
		return total, nil
	case *kernel.Product:
		total := 1
		for _, c := range x.Children {
			v, err := evalIndex(c, env)
			if err != nil {
				return 0, err
			}
			total *= v
		}
		return total, nil
	default:
		return 0, errors.Errorf("cannot evaluate %s", e)
	}
}

// writeFootprint enumerates the domain and records every index tuple the
// subscript addresses. No assumption narrows the domain: every loop variable
// ranges over its full extent.
func writeFootprint(dom kernel.Domain, lhs *kernel.Subscript) (footprint, error) {
	fp := footprint{aggregate: lhs.Aggregate.Name, points: make(map[string]bool)}
	env := make(map[string]int, len(dom))
	var walk func(d int) error
	walk = func(d int) error {
		if d == len(dom) {
			tuple := make([]string, len(lhs.Indices))
			for i, e := range lhs.Indices {
				v, err := evalIndex(e, env)
				if err != nil {
					return errors.Errorf("write footprint of %s is not affine: %s", lhs, err)
				}
				tuple[i] = strconv.Itoa(v)
			}
			fp.points[strings.Join(tuple, ",")] = true
			return nil
		}
		for v := range dom[d].Extent {
			env[dom[d].Iname] = v
			if err := walk(d + 1); err != nil {
				return err
			}
		}
		return nil
	}
	err := walk(0)
	return fp, err
}

// checkDisjoint verifies that the write footprints of the top-level
// assignments are pairwise disjoint over the domain. Instruction order is the
// only sequencing among top-level assignments, so overlapping writes would be
// order-dependent. Every conflicting pair is reported.
func checkDisjoint(dom kernel.Domain, lhss []*kernel.Subscript) error {
	fps := make([]footprint, len(lhss))
	for i, lhs := range lhss {
		fp, err := writeFootprint(dom, lhs)
		if err != nil {
			return err
		}
		fps[i] = fp
	}
	var errs error
	for i := range fps {
		for j := range i {
			if fps[i].aggregate != fps[j].aggregate {
				continue
			}
			inter := make(map[string]bool)
			for p := range fps[j].points {
				if fps[i].points[p] {
					inter[p] = true
				}
			}
			if len(inter) == 0 {
				continue
			}
			common := maps.Keys(inter)
			slices.Sort(common)
			errs = multierr.Append(errs, errors.Errorf(
				"assignment write ranges are not disjoint: %s and %s both write %s[%s]",
				lhss[j], lhss[i], fps[i].aggregate, common[0]))
		}
	}
	return errs
}
