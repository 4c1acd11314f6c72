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

// Package encoder builds the bounded-satisfiability propositional formulas
// (k-unraveling, EMPTY, LOOP, PRUNE) consumed by the solver loop, by driving
// normal.Xnf step by step against a single, growing X-closure.
package encoder

import (
	"github.com/consensys/go-corset/pkg/closure"
	"github.com/consensys/go-corset/pkg/logic"
	"github.com/consensys/go-corset/pkg/normal"
)

// Encoder holds the one X-closure collector shared across every k-unraveling
// call for a single asserted formula.  The closure plays both roles spec.md
// names separately -- "x_closure" (the static set iterated by k_unraveling)
// and "x_requests" (the set iterated by EMPTY/LOOP/PRUNE) -- because every
// obligation the closure ever discovers remains live at every subsequent
// step: its timed_var is re-constrained by every k_unraveling(k) call from
// the step it first appears onward.
type Encoder struct {
	a       *logic.Alphabet
	formula logic.Formula
	closure *closure.Collector
}

// New constructs an encoder for a single pure-future, past-free formula
// (callers must have already applied normal.RemovePast where the original
// input mixed in past operators).
func New(a *logic.Alphabet, formula logic.Formula) *Encoder {
	return &Encoder{a, formula, closure.NewCollector()}
}

// Closure exposes the current X-closure / x-requests snapshot, in insertion
// order.  Read-only: callers must not mutate the returned slice.
func (e *Encoder) Closure() []logic.Formula {
	return e.closure.Items()
}

// KUnraveling builds k_unraveling(k): for k=0 the ground XNF rewriting of
// the root formula at step 0; for k>0 the big conjunction relating every
// closure member's value at k-1 to its XNF rewriting at k.  Each call may
// grow the closure (harmlessly idempotent: every newly-discovered obligation
// is always a subformula already present at k=0).
func (e *Encoder) KUnraveling(k uint) logic.Formula {
	if k == 0 {
		return normal.Xnf(e.a, e.formula, 0, true, e.closure)
	}

	items := e.closure.Items()
	conjuncts := make([]logic.Formula, 0, len(items))

	for _, x := range items {
		lhs := e.a.TimedVar(x, k-1)
		rhs := normal.Xnf(e.a, x.Operand(), k, true, e.closure)
		conjuncts = append(conjuncts, e.a.Binary(logic.Iff, lhs, rhs))
	}

	return logic.BigConjunction(e.a, conjuncts)
}

// KEmpty builds k_empty(k): every pending obligation must be false, i.e. the
// model halts at step k with nothing left owed.
func (e *Encoder) KEmpty(k uint) logic.Formula {
	items := e.closure.Items()
	conjuncts := make([]logic.Formula, 0, len(items))

	for _, x := range items {
		conjuncts = append(conjuncts, e.a.Unary(logic.Not, e.a.TimedVar(x, k)))
	}

	return logic.BigConjunction(e.a, conjuncts)
}

// LToKLoop builds l_to_k_loop(l, k): states l and k are bisimilar with
// respect to every pending obligation.
func (e *Encoder) LToKLoop(l, k uint) logic.Formula {
	items := e.closure.Items()
	conjuncts := make([]logic.Formula, 0, len(items))

	for _, x := range items {
		conjuncts = append(conjuncts, e.a.Binary(logic.Iff, e.a.TimedVar(x, l), e.a.TimedVar(x, k)))
	}

	return logic.BigConjunction(e.a, conjuncts)
}

// LToKPeriod builds l_to_k_period(l, k): every eventuality pending at k must
// be discharged somewhere within the lasso period (l, k].
func (e *Encoder) LToKPeriod(l, k uint) logic.Formula {
	conjuncts := make([]logic.Formula, 0)

	for _, x := range e.closure.Items() {
		fulfil, ok := normal.Fulfillment(x)
		if !ok {
			continue
		}

		disjuncts := make([]logic.Formula, 0, k-l)
		for i := l + 1; i <= k; i++ {
			disjuncts = append(disjuncts, normal.Xnf(e.a, fulfil, i, false, e.closure))
		}

		conjuncts = append(conjuncts, e.a.Binary(logic.Implies, e.a.TimedVar(x, k), logic.BigDisjunction(e.a, disjuncts)))
	}

	return logic.BigConjunction(e.a, conjuncts)
}

// KLoop builds k_loop(k): there exists a lasso of length k with some
// back-jump point l < k.
func (e *Encoder) KLoop(k uint) logic.Formula {
	if k == 0 {
		return e.a.Boolean(false)
	}

	disjuncts := make([]logic.Formula, 0, k)
	for l := uint(0); l < k; l++ {
		disjuncts = append(disjuncts, e.a.Binary(logic.And, e.LToKLoop(l, k), e.LToKPeriod(l, k)))
	}

	return logic.BigDisjunction(e.a, disjuncts)
}

// Prune builds prune(k): a soundness-preserving optimisation asserting that
// a false loop exists at an earlier pair of indices, which lets the solver
// reject those indices before exploring step k+1.
func (e *Encoder) Prune(k uint) logic.Formula {
	var disjuncts []logic.Formula

	for l := uint(0); l < k; l++ {
		for j := l + 1; j < k; j++ {
			disjuncts = append(disjuncts,
				e.a.Binary(logic.And, e.LToKLoop(l, j),
					e.a.Binary(logic.And, e.LToKLoop(j, k), e.ljkPrune(l, j, k))))
		}
	}

	return logic.BigDisjunction(e.a, disjuncts)
}

func (e *Encoder) ljkPrune(l, j, k uint) logic.Formula {
	var conjuncts []logic.Formula

	for _, x := range e.closure.Items() {
		fulfil, ok := normal.Fulfillment(x)
		if !ok {
			continue
		}

		tail := make([]logic.Formula, 0, k-j)
		for i := j + 1; i <= k; i++ {
			tail = append(tail, normal.Xnf(e.a, fulfil, i, false, e.closure))
		}

		head := make([]logic.Formula, 0, j-l)
		for i := l + 1; i <= j; i++ {
			head = append(head, normal.Xnf(e.a, fulfil, i, false, e.closure))
		}

		antecedent := e.a.Binary(logic.And, e.a.TimedVar(x, k), logic.BigDisjunction(e.a, tail))
		conjuncts = append(conjuncts, e.a.Binary(logic.Implies, antecedent, logic.BigDisjunction(e.a, head)))
	}

	return logic.BigConjunction(e.a, conjuncts)
}
