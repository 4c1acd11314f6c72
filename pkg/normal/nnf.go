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

// Package normal implements the two formula-rewriting passes that sit
// between parsing and bounded encoding: ToNNF (negation normal form) and
// RemovePast (elimination of past operators into equisatisfiable pure-future
// LTL).  Xnf, the bounded unraveling rewrite proper, lives in xnf.go.
package normal

import "github.com/consensys/go-corset/pkg/logic"

// nnfKey memoises a (node, polarity) pair: the same subformula reached under
// both positive and negative polarity needs two distinct results.
type nnfKey struct {
	id  uint64
	neg bool
}

// ToNNF rewrites f into negation normal form: negation appears only directly
// above propositions and atoms.  The rewrite is memoised per (node, polarity)
// pair, so sharing in the input DAG is preserved in the output rather than
// being duplicated or recomputed.
//
// The iff rule resolves the duality canonically: ¬(φ↔ψ) is rewritten to
// (φ∧¬ψ)∨(¬φ∧ψ) rather than ¬φ↔ψ, so a second application of ToNNF to an
// already-negated iff reproduces the same formula (idempotence).
func ToNNF(a *logic.Alphabet, f logic.Formula) logic.Formula {
	memo := make(map[nnfKey]logic.Formula)
	return nnf(a, f, false, memo)
}

func nnf(a *logic.Alphabet, f logic.Formula, neg bool, memo map[nnfKey]logic.Formula) logic.Formula {
	key := nnfKey{f.UniqueID(), neg}
	if v, ok := memo[key]; ok {
		return v
	}

	var result logic.Formula

	switch f.Kind() {
	case logic.KindBoolean:
		v := f.BooleanValue()
		if neg {
			v = !v
		}

		result = a.Boolean(v)
	case logic.KindProposition, logic.KindAtom:
		if neg {
			result = a.Unary(logic.Not, f)
		} else {
			result = f
		}
	case logic.KindUnary:
		result = nnfUnary(a, f, neg, memo)
	case logic.KindBinary:
		result = nnfBinary(a, f, neg, memo)
	case logic.KindQuantifier:
		kind := f.QuantifierKind()
		if neg {
			kind = dualQuantifier(kind)
		}

		result = a.Quantifier(kind, f.Vars(), nnf(a, f.Matrix(), neg, memo))
	}

	memo[key] = result

	return result
}

func nnfUnary(a *logic.Alphabet, f logic.Formula, neg bool, memo map[nnfKey]logic.Formula) logic.Formula {
	op := f.UnaryOp()
	if op == logic.Not {
		return nnf(a, f.Operand(), !neg, memo)
	}

	// Under negation G and F swap, as do O and H.  The next and yesterday
	// unaries (X, wX, Y, Z) keep their operator with the operand's polarity
	// flipped: the obligation a bounded model must discharge is
	// infinite-trace (lasso) duality, under which strong and weak next
	// coincide.
	if neg {
		switch op {
		case logic.Always:
			op = logic.Eventually
		case logic.Eventually:
			op = logic.Always
		case logic.Once:
			op = logic.Historically
		case logic.Historically:
			op = logic.Once
		}
	}

	return a.Unary(op, nnf(a, f.Operand(), neg, memo))
}

func nnfBinary(a *logic.Alphabet, f logic.Formula, neg bool, memo map[nnfKey]logic.Formula) logic.Formula {
	op := f.BinaryOp()
	l, r := f.Left(), f.Right()

	switch op {
	case logic.And:
		if !neg {
			return a.Binary(logic.And, nnf(a, l, false, memo), nnf(a, r, false, memo))
		}

		return a.Binary(logic.Or, nnf(a, l, true, memo), nnf(a, r, true, memo))
	case logic.Or:
		if !neg {
			return a.Binary(logic.Or, nnf(a, l, false, memo), nnf(a, r, false, memo))
		}

		return a.Binary(logic.And, nnf(a, l, true, memo), nnf(a, r, true, memo))
	case logic.Implies:
		// φ→ψ ≡ ¬φ∨ψ ; ¬(φ→ψ) ≡ φ∧¬ψ
		if !neg {
			return a.Binary(logic.Or, nnf(a, l, true, memo), nnf(a, r, false, memo))
		}

		return a.Binary(logic.And, nnf(a, l, false, memo), nnf(a, r, true, memo))
	case logic.Iff:
		lpos, lneg := nnf(a, l, false, memo), nnf(a, l, true, memo)
		rpos, rneg := nnf(a, r, false, memo), nnf(a, r, true, memo)

		if !neg {
			return a.Binary(logic.Or, a.Binary(logic.And, lpos, rpos), a.Binary(logic.And, lneg, rneg))
		}

		return a.Binary(logic.Or, a.Binary(logic.And, lpos, rneg), a.Binary(logic.And, lneg, rpos))
	default:
		// Temporal binary: U, R, W, M, S, T.  Positive polarity keeps the
		// operator and recurses on both operands; negative polarity swaps to
		// the dual operator with both operands negated.
		if !neg {
			return a.Binary(op, nnf(a, l, false, memo), nnf(a, r, false, memo))
		}

		return a.Binary(dualTemporalBinary(op), nnf(a, l, true, memo), nnf(a, r, true, memo))
	}
}

func dualTemporalBinary(op logic.BinaryOp) logic.BinaryOp {
	switch op {
	case logic.Until:
		return logic.Release
	case logic.Release:
		return logic.Until
	case logic.WUntil:
		return logic.SRelease
	case logic.SRelease:
		return logic.WUntil
	case logic.Since:
		return logic.Triggered
	case logic.Triggered:
		return logic.Since
	default:
		panic("normal: dualTemporalBinary called on a non-temporal operator")
	}
}

func dualQuantifier(k logic.QuantifierKind) logic.QuantifierKind {
	if k == logic.Exists {
		return logic.Forall
	}

	return logic.Exists
}
