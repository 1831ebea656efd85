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
	"fmt"
	"strconv"
	"strings"
)

func (v *Var) String() string {
	return v.Name
}

func (i Int) String() string {
	return strconv.Itoa(int(i))
}

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

func joinExprs(exprs []Expr, sep string) string {
	ss := make([]string, len(exprs))
	for i, e := range exprs {
		ss[i] = e.String()
	}
	return strings.Join(ss, sep)
}

func (s *Subscript) String() string {
	return fmt.Sprintf("%s[%s]", s.Aggregate, joinExprs(s.Indices, ", "))
}

func (s *Sum) String() string {
	return "(" + joinExprs(s.Children, " + ") + ")"
}

func (p *Product) String() string {
	return "(" + joinExprs(p.Children, "*") + ")"
}

func (q *Quotient) String() string {
	return fmt.Sprintf("(%s / %s)", q.Num, q.Den)
}

func (p *Power) String() string {
	return fmt.Sprintf("(%s**%s)", p.Base, p.Exp)
}

func (m *Min) String() string {
	return "min(" + joinExprs(m.Children, ", ") + ")"
}

func (m *Max) String() string {
	return "max(" + joinExprs(m.Children, ", ") + ")"
}

func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right)
}

func (c *Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Name, joinExprs(c.Args, ", "))
}

func (r *Reduction) String() string {
	return fmt.Sprintf("reduce(%s, [%s], %s)", r.Op, strings.Join(r.Inames, ", "), r.Body)
}

func (d Domain) String() string {
	if len(d) == 0 {
		return "{ [] }"
	}
	inames := make([]string, len(d))
	bounds := make([]string, len(d))
	for i, b := range d {
		inames[i] = b.Iname
		bounds[i] = fmt.Sprintf("0 <= %s < %d", b.Iname, b.Extent)
	}
	return fmt.Sprintf("{ [%s] : %s }", strings.Join(inames, ", "), strings.Join(bounds, " and "))
}

func (ins Instruction) String() string {
	s := fmt.Sprintf("%s = %s", ins.Target, ins.RHS)
	if len(ins.Within) > 0 {
		s += fmt.Sprintf("  {within=%s}", strings.Join(ins.Within, ","))
	}
	if len(ins.Tags) > 0 {
		s += fmt.Sprintf("  {tags=%s}", strings.Join(ins.Tags, ","))
	}
	return s
}

func (r SubstRule) String() string {
	return fmt.Sprintf("%s(%s) := %s", r.Name, strings.Join(r.Params, ", "), r.Body)
}

func (tv Temporary) String() string {
	var attrs []string
	if tv.Global {
		attrs = append(attrs, "global")
	} else {
		attrs = append(attrs, "private")
	}
	if tv.ReadOnly {
		attrs = append(attrs, "readonly")
	}
	if tv.Shape != nil {
		attrs = append(attrs, fmt.Sprintf("shape=%v", tv.Shape.AxisLengths))
	}
	return fmt.Sprintf("%s: %s %s", tv.Name, tv.DType, strings.Join(attrs, " "))
}

// String renders the kernel as text, one section per kernel component.
func (k *Kernel) String() string {
	var w strings.Builder
	fmt.Fprintf(&w, "kernel %s\n", k.Name)
	fmt.Fprintf(&w, "domain: %s\n", k.Domain)
	for _, tv := range k.Temporaries {
		fmt.Fprintf(&w, "temporary: %s\n", tv)
	}
	for _, r := range k.Rules {
		fmt.Fprintf(&w, "rule: %s\n", r)
	}
	for _, ins := range k.Instructions {
		fmt.Fprintf(&w, "  %s\n", ins)
	}
	return w.String()
}
