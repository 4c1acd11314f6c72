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
	"github.com/consensys/go-corset/pkg/closure"
	"github.com/consensys/go-corset/pkg/logic"
)

// Xnf rewrites a pure-future formula f into its step-k unraveling: a purely
// propositional formula over timed_var(·, k) atoms, plus one residual
// timed_var obligation per X/wX node (the "x-requests") that must be
// resolved at step k+1.  Call RemovePast first if f may still contain past
// operators -- Xnf panics on Y, Z, O, H, S or T, since those belong to a
// fragment it does not rewrite.
//
// When update is true, every X/wX obligation Xnf encounters is recorded into
// requests; passing update=false lets a caller recompute the propositional
// shape of a formula (e.g. during model extraction) without perturbing the
// x-closure being built for the main unraveling.
func Xnf(a *logic.Alphabet, f logic.Formula, k uint, update bool, requests *closure.Collector) logic.Formula {
	switch f.Kind() {
	case logic.KindBoolean, logic.KindProposition, logic.KindAtom:
		return a.TimedVar(f, k)
	case logic.KindUnary:
		return xnfUnary(a, f, k, update, requests)
	case logic.KindBinary:
		return xnfBinary(a, f, k, update, requests)
	default:
		panic("normal: Xnf does not support quantified formulas")
	}
}

func xnfUnary(a *logic.Alphabet, f logic.Formula, k uint, update bool, requests *closure.Collector) logic.Formula {
	op := f.UnaryOp()

	switch op {
	case logic.Not:
		return a.Unary(logic.Not, Xnf(a, f.Operand(), k, update, requests))
	case logic.Next, logic.WNext:
		if update {
			requests.Add(f)
		}

		return a.TimedVar(f, k)
	case logic.Eventually:
		// Fφ = φ ∨ X(Fφ)
		obligation := a.Unary(logic.Next, f)
		if update {
			requests.Add(obligation)
		}

		return a.Binary(logic.Or, Xnf(a, f.Operand(), k, update, requests), a.TimedVar(obligation, k))
	case logic.Always:
		// Gφ = φ ∧ X(Gφ)
		obligation := a.Unary(logic.Next, f)
		if update {
			requests.Add(obligation)
		}

		return a.Binary(logic.And, Xnf(a, f.Operand(), k, update, requests), a.TimedVar(obligation, k))
	default:
		panic("normal: Xnf encountered a past operator; call RemovePast first")
	}
}

func xnfBinary(a *logic.Alphabet, f logic.Formula, k uint, update bool, requests *closure.Collector) logic.Formula {
	op := f.BinaryOp()

	if op.IsPropositional() {
		return a.Binary(op, Xnf(a, f.Left(), k, update, requests), Xnf(a, f.Right(), k, update, requests))
	}

	l, r := f.Left(), f.Right()

	switch op {
	case logic.Until:
		// φUψ = ψ ∨ (φ ∧ X(φUψ))
		obligation := a.Unary(logic.Next, f)
		if update {
			requests.Add(obligation)
		}

		return a.Binary(logic.Or, Xnf(a, r, k, update, requests),
			a.Binary(logic.And, Xnf(a, l, k, update, requests), a.TimedVar(obligation, k)))
	case logic.Release:
		// φRψ = ψ ∧ (φ ∨ X(φRψ))
		obligation := a.Unary(logic.Next, f)
		if update {
			requests.Add(obligation)
		}

		return a.Binary(logic.And, Xnf(a, r, k, update, requests),
			a.Binary(logic.Or, Xnf(a, l, k, update, requests), a.TimedVar(obligation, k)))
	case logic.WUntil:
		// φWψ = ψ ∨ (φ ∧ wX(φWψ)); no eventuality obligation.
		obligation := a.Unary(logic.WNext, f)
		if update {
			requests.Add(obligation)
		}

		return a.Binary(logic.Or, Xnf(a, r, k, update, requests),
			a.Binary(logic.And, Xnf(a, l, k, update, requests), a.TimedVar(obligation, k)))
	case logic.SRelease:
		// φMψ = ψ ∧ (φ ∨ X(φMψ)); dual of W, so the obligation is strong.
		obligation := a.Unary(logic.Next, f)
		if update {
			requests.Add(obligation)
		}

		return a.Binary(logic.And, Xnf(a, r, k, update, requests),
			a.Binary(logic.Or, Xnf(a, l, k, update, requests), a.TimedVar(obligation, k)))
	default:
		panic("normal: Xnf encountered a past operator; call RemovePast first")
	}
}

// IsEventuality reports whether an X-obligation formula (as recorded by a
// closure.Collector) is an eventuality in the sense of spec.md's l_to_k_period:
// the X-wrapping of an F or U node. These, and only these, are the
// obligations a successful loop must discharge somewhere around the cycle.
func IsEventuality(obligation logic.Formula) bool {
	if obligation.Kind() != logic.KindUnary || obligation.UnaryOp() != logic.Next {
		return false
	}

	inner := obligation.Operand()

	switch inner.Kind() {
	case logic.KindUnary:
		return inner.UnaryOp() == logic.Eventually
	case logic.KindBinary:
		return inner.BinaryOp() == logic.Until
	default:
		return false
	}
}

// Fulfillment returns the subformula whose truth at a loop state discharges
// the eventuality obligation, and true if obligation is in fact an
// eventuality. For X(Fφ) this is φ; for X(φUψ) this is ψ.
func Fulfillment(obligation logic.Formula) (logic.Formula, bool) {
	if !IsEventuality(obligation) {
		return logic.Formula{}, false
	}

	inner := obligation.Operand()
	if inner.Kind() == logic.KindUnary {
		return inner.Operand(), true
	}

	return inner.Right(), true
}
