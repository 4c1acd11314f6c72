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
package solver

import (
	"context"
	"testing"

	"github.com/consensys/go-corset/pkg/logic"
	"github.com/consensys/go-corset/pkg/parser"
	"github.com/consensys/go-corset/pkg/sat"
	"github.com/consensys/go-corset/pkg/sat/naive"
	"github.com/consensys/go-corset/pkg/util/assert"
)

func newTestSolver(t *testing.T, a *logic.Alphabet) *Solver {
	t.Helper()

	registry := sat.NewRegistry()
	registry.Register("naive", naive.New)

	s, err := New(a, registry, "naive")
	assert.True(t, err == nil)

	return s
}

func Test_Solver_SimpleContradictionIsUnsat(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	f := a.Binary(logic.And, p, a.Unary(logic.Not, p))

	s := newTestSolver(t, a)
	err := s.AssertFormula(f, 0, false)
	assert.True(t, err == nil)

	verdict, model, err := s.Solve(context.Background(), 5)
	assert.True(t, err == nil)
	assert.Equal(t, verdict, sat.Unsat)
	assert.True(t, model == nil)
}

func Test_Solver_SatisfiablePropositionFindsModel(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")

	s := newTestSolver(t, a)
	err := s.AssertFormula(p, 0, false)
	assert.True(t, err == nil)

	verdict, model, err := s.Solve(context.Background(), 5)
	assert.True(t, err == nil)
	assert.Equal(t, verdict, sat.Sat)
	assert.True(t, model != nil)
	assert.Equal(t, model.Value(p, 0), sat.True)
}

func Test_Solver_EventuallyFindsLassoWitness(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	f := a.Unary(logic.Eventually, p)

	s := newTestSolver(t, a)
	err := s.AssertFormula(f, parser.Temporal, false)
	assert.True(t, err == nil)

	verdict, model, err := s.Solve(context.Background(), 10)
	assert.True(t, err == nil)
	assert.Equal(t, verdict, sat.Sat)
	assert.True(t, model != nil)

	found := false

	for i := uint(0); i < model.Size(); i++ {
		if model.Value(p, i) == sat.True {
			found = true
		}
	}

	assert.True(t, found)
}

func Test_Solver_GloballyFalseIsUnsatUnderContradiction(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	f := a.Binary(logic.And, a.Unary(logic.Always, p), a.Unary(logic.Always, a.Unary(logic.Not, p)))

	s := newTestSolver(t, a)
	err := s.AssertFormula(f, parser.Temporal, false)
	assert.True(t, err == nil)

	verdict, _, err := s.Solve(context.Background(), 3)
	assert.True(t, err == nil)
	assert.Equal(t, verdict, sat.Unsat)
}

func Test_Solver_QuantifiedFormulaIsRejected(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")

	s := newTestSolver(t, a)
	err := s.AssertFormula(p, parser.Quantifiers, false)
	assert.True(t, err != nil)
}

func Test_Solver_BoundExhaustionReturnsUnknown(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	q := a.Prop("q")
	// Unsatisfiable only once enough steps are unrolled: p holds until q,
	// but q never holds and there is no honest loop -- at bound 0 neither
	// EMPTY/LOOP nor PRUNE settles it, so the bound runs out and the verdict
	// is Unknown. This exercises the UNKNOWN return path.
	f := a.Binary(logic.And, a.Binary(logic.Until, p, q), a.Unary(logic.Always, a.Unary(logic.Not, q)))

	s := newTestSolver(t, a)
	err := s.AssertFormula(f, parser.Temporal, false)
	assert.True(t, err == nil)

	verdict, _, err := s.Solve(context.Background(), 0)
	assert.True(t, err == nil)
	assert.Equal(t, verdict, sat.Unknown)
}
