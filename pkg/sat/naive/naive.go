// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package naive implements sat.Backend with a small, deliberately
// unoptimised DPLL-ish propositional search: exhaustive case-split over
// every distinct proposition, no unit propagation, no clause learning. It
// exists as a reference backend with no external solver dependency, not as
// a competitive SAT engine.
package naive

import (
	"github.com/bits-and-blooms/bitset"
	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-corset/pkg/logic"
	"github.com/consensys/go-corset/pkg/sat"
	"github.com/consensys/go-corset/pkg/util/collection/stack"
)

// Backend is a non-incremental reference sat.Backend: Push/Pop just record
// and rewind the assertion log, and every Solve re-searches from scratch.
type Backend struct {
	assertions []logic.Formula
	marks      *stack.Stack[int]

	vars     []logic.Formula
	varIndex map[uint64]int

	model *bitset.BitSet
	sat   bool
}

// New constructs an empty naive backend.
func New() sat.Backend {
	return &Backend{varIndex: make(map[uint64]int), marks: stack.NewStack[int]()}
}

// Features reports this backend's (lack of) capabilities.
func (b *Backend) Features() sat.Features {
	return sat.Features{Incremental: false, Name: "naive"}
}

// License identifies this backend as original, unencumbered code.
func (b *Backend) License() (string, bool) {
	return "Apache-2.0", false
}

// Assert records f for the next Solve call.
func (b *Backend) Assert(f logic.Formula) {
	b.assertions = append(b.assertions, f)
}

// Push saves a restore point.
func (b *Backend) Push() {
	b.marks.Push(len(b.assertions))
}

// Pop rewinds to the most recent Push.
func (b *Backend) Pop() {
	if b.marks.IsEmpty() {
		return
	}

	mark := b.marks.Pop()
	b.assertions = b.assertions[:mark]
}

// Clear discards every assertion and restore point.
func (b *Backend) Clear() {
	b.assertions = nil
	b.marks = stack.NewStack[int]()
	b.vars = nil
	b.varIndex = make(map[uint64]int)
	b.model = nil
	b.sat = false
}

// Solve searches exhaustively for a satisfying assignment to every
// proposition reachable from the current assertions.
func (b *Backend) Solve() (sat.Verdict, error) {
	b.collectVars()

	b.model = bitset.New(uint(len(b.vars)))
	b.sat = b.search(0)

	log.WithFields(log.Fields{
		"backend":     "naive",
		"assertions":  len(b.assertions),
		"variables":   len(b.vars),
		"satisfiable": b.sat,
	}).Debug("naive backend search complete")

	if b.sat {
		return sat.Sat, nil
	}

	return sat.Unsat, nil
}

// Value reports the model value of p from the most recent Sat verdict.
func (b *Backend) Value(p logic.Formula) sat.TriBool {
	if !b.sat || b.model == nil {
		return sat.Undef
	}

	idx, ok := b.varIndex[p.UniqueID()]
	if !ok {
		return sat.Undef
	}

	if b.model.Test(uint(idx)) {
		return sat.True
	}

	return sat.False
}

func (b *Backend) collectVars() {
	b.vars = nil
	b.varIndex = make(map[uint64]int)

	for _, f := range b.assertions {
		b.walk(f)
	}
}

func (b *Backend) walk(f logic.Formula) {
	switch f.Kind() {
	case logic.KindBoolean:
		return
	case logic.KindProposition, logic.KindAtom:
		if _, ok := b.varIndex[f.UniqueID()]; !ok {
			b.varIndex[f.UniqueID()] = len(b.vars)
			b.vars = append(b.vars, f)
		}
	case logic.KindUnary:
		b.walk(f.Operand())
	case logic.KindBinary:
		b.walk(f.Left())
		b.walk(f.Right())
	default:
		panic("naive: backend only accepts the ground propositional fragment")
	}
}

// search assigns b.vars[idx:] by exhaustive case split, returning true as
// soon as some full assignment satisfies every assertion.
func (b *Backend) search(idx int) bool {
	if idx == len(b.vars) {
		return b.evalAll()
	}

	for _, v := range [...]bool{false, true} {
		b.model.SetTo(uint(idx), v)

		if b.search(idx + 1) {
			return true
		}
	}

	return false
}

func (b *Backend) evalAll() bool {
	for _, f := range b.assertions {
		if !b.eval(f) {
			return false
		}
	}

	return true
}

func (b *Backend) eval(f logic.Formula) bool {
	switch f.Kind() {
	case logic.KindBoolean:
		return f.BooleanValue()
	case logic.KindProposition, logic.KindAtom:
		return b.model.Test(uint(b.varIndex[f.UniqueID()]))
	case logic.KindUnary:
		if f.UnaryOp() != logic.Not {
			panic("naive: backend only accepts negation among unary operators")
		}

		return !b.eval(f.Operand())
	case logic.KindBinary:
		return b.evalBinary(f)
	default:
		panic("naive: backend only accepts the ground propositional fragment")
	}
}

func (b *Backend) evalBinary(f logic.Formula) bool {
	l, r := b.eval(f.Left()), b.eval(f.Right())

	switch f.BinaryOp() {
	case logic.And:
		return l && r
	case logic.Or:
		return l || r
	case logic.Implies:
		return !l || r
	case logic.Iff:
		return l == r
	default:
		panic("naive: backend only accepts the ground propositional fragment")
	}
}
