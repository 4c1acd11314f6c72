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

package normal

import (
	"fmt"

	"github.com/consensys/go-corset/pkg/logic"
)

// RemovePast eliminates Y, Z, O, H, S and T from f, returning an
// equisatisfiable pure-future formula.  Every past subformula is replaced by
// a fresh proposition whose value is pinned by two conjuncts added to the
// result: a base-case equation about time 0, and a G-guarded inductive
// equation relating the proposition's value one step ahead to the
// (already-translated) operands at the current step.  For example Y(φ) is
// replaced by a fresh q subject to:
//
//	¬q                    (no yesterday at time 0)
//	G(Xq ↔ translate(φ))  (q holds at i+1 iff φ held at i)
//
// and φSψ is replaced by a fresh q subject to:
//
//	q ↔ translate(ψ)                                    (base case)
//	G(Xq ↔ (X translate(ψ) ∨ (X translate(φ) ∧ q)))      (induction)
//
// The remaining four operators follow the same separated-normal-form
// pattern. Quantifiers and atoms pass through structurally; propositional
// connectives and pure-future temporal operators recurse without
// introducing fresh propositions.
func RemovePast(a *logic.Alphabet, f logic.Formula) logic.Formula {
	pe := &pastEliminator{a: a, memo: make(map[uint64]logic.Formula)}
	root := pe.translate(f)

	if len(pe.constraints) == 0 {
		return root
	}

	return a.Binary(logic.And, root, logic.BigConjunction(a, pe.constraints))
}

type pastEliminator struct {
	a           *logic.Alphabet
	counter     int
	constraints []logic.Formula
	memo        map[uint64]logic.Formula
}

func (pe *pastEliminator) fresh() logic.Formula {
	pe.counter++
	return pe.a.Prop(fmt.Sprintf("$past%d", pe.counter))
}

func (pe *pastEliminator) translate(f logic.Formula) logic.Formula {
	if v, ok := pe.memo[f.UniqueID()]; ok {
		return v
	}

	var result logic.Formula

	switch f.Kind() {
	case logic.KindBoolean, logic.KindProposition, logic.KindAtom:
		result = f
	case logic.KindUnary:
		result = pe.translateUnary(f)
	case logic.KindBinary:
		result = pe.translateBinary(f)
	case logic.KindQuantifier:
		result = pe.a.Quantifier(f.QuantifierKind(), f.Vars(), pe.translate(f.Matrix()))
	}

	pe.memo[f.UniqueID()] = result

	return result
}

func (pe *pastEliminator) translateUnary(f logic.Formula) logic.Formula {
	op := f.UnaryOp()
	child := pe.translate(f.Operand())

	switch op {
	case logic.Yesterday:
		return pe.yesterday(child, false)
	case logic.WYesterday:
		return pe.yesterday(child, true)
	case logic.Once:
		return pe.onceOrHistorically(child, true)
	case logic.Historically:
		return pe.onceOrHistorically(child, false)
	default:
		return pe.a.Unary(op, child)
	}
}

func (pe *pastEliminator) translateBinary(f logic.Formula) logic.Formula {
	op := f.BinaryOp()
	l := pe.translate(f.Left())
	r := pe.translate(f.Right())

	switch op {
	case logic.Since:
		return pe.sinceOrTriggered(l, r, true)
	case logic.Triggered:
		return pe.sinceOrTriggered(l, r, false)
	default:
		return pe.a.Binary(op, l, r)
	}
}

// yesterday builds the fresh proposition standing for Y(child) (weak=false)
// or Z(child) (weak=true).
func (pe *pastEliminator) yesterday(child logic.Formula, weak bool) logic.Formula {
	a := pe.a
	q := pe.fresh()

	base := a.Unary(logic.Not, q)
	if weak {
		base = q
	}

	induction := a.Unary(logic.Always, a.Binary(logic.Iff, a.Unary(logic.Next, q), child))
	pe.constraints = append(pe.constraints, base, induction)

	return q
}

// onceOrHistorically builds the fresh proposition standing for O(child)
// (disjunctive=true) or H(child) (disjunctive=false).
func (pe *pastEliminator) onceOrHistorically(child logic.Formula, disjunctive bool) logic.Formula {
	a := pe.a
	q := pe.fresh()

	base := a.Binary(logic.Iff, q, child)

	combine := logic.And
	if disjunctive {
		combine = logic.Or
	}

	step := a.Binary(combine, a.Unary(logic.Next, child), q)
	induction := a.Unary(logic.Always, a.Binary(logic.Iff, a.Unary(logic.Next, q), step))
	pe.constraints = append(pe.constraints, base, induction)

	return q
}

// sinceOrTriggered builds the fresh proposition standing for phi S psi
// (isSince=true) or phi T psi (isSince=false).
func (pe *pastEliminator) sinceOrTriggered(phi, psi logic.Formula, isSince bool) logic.Formula {
	a := pe.a
	q := pe.fresh()

	base := a.Binary(logic.Iff, q, psi)

	var step logic.Formula
	if isSince {
		step = a.Binary(logic.Or, a.Unary(logic.Next, psi), a.Binary(logic.And, a.Unary(logic.Next, phi), q))
	} else {
		step = a.Binary(logic.And, a.Unary(logic.Next, psi), a.Binary(logic.Or, a.Unary(logic.Next, phi), q))
	}

	induction := a.Unary(logic.Always, a.Binary(logic.Iff, a.Unary(logic.Next, q), step))
	pe.constraints = append(pe.constraints, base, induction)

	return q
}
