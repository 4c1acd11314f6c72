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

// Package solver drives the bounded-satisfiability loop of spec.md §4.H: it
// assembles a formula through ToNNF/RemovePast, unravels it step by step
// through an encoder.Encoder, and queries a sat.Backend for each step's
// EMPTY/LOOP/PRUNE checks until a bound is exhausted or a verdict is found.
package solver

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-corset/pkg/encoder"
	"github.com/consensys/go-corset/pkg/logic"
	"github.com/consensys/go-corset/pkg/normal"
	"github.com/consensys/go-corset/pkg/parser"
	"github.com/consensys/go-corset/pkg/sat"
	"github.com/consensys/go-corset/pkg/util"
)

// Solver owns one asserted formula, its encoder, and the backend instance it
// drives.  It may be reused sequentially (Clear then AssertFormula/Solve
// again) but must never be shared across goroutines without external
// synchronisation, mirroring the Alphabet it is built against.
type Solver struct {
	alphabet    *logic.Alphabet
	registry    *sat.Registry
	backend     sat.Backend
	backendName string

	formula logic.Formula
	flags   parser.FeatureFlags
	enc     *encoder.Encoder
}

// New constructs a solver against the given alphabet, selecting backendName
// from registry.
func New(alphabet *logic.Alphabet, registry *sat.Registry, backendName string) (*Solver, error) {
	backend, id, err := registry.New(backendName)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"backend": backendName, "session": id.String()}).Info("sat backend selected")

	return &Solver{alphabet: alphabet, registry: registry, backend: backend, backendName: backendName}, nil
}

// AssertFormula records the formula to be solved.  RemovePast is applied
// automatically whenever the parsed input used past operators, or when
// forceRemovePast is set explicitly (e.g. via the --remove-past flag); the
// bounded encoder only ever sees the resulting pure-future fragment.
// Quantified input is rejected: this module's encoder has no theory layer.
func (s *Solver) AssertFormula(f logic.Formula, flags parser.FeatureFlags, forceRemovePast bool) error {
	if flags.Has(parser.Quantifiers) {
		return fmt.Errorf("solver: quantified formulas are not supported by the propositional encoder")
	}

	if flags.Has(parser.Past) || forceRemovePast {
		f = normal.RemovePast(s.alphabet, f)
	}

	f = normal.ToNNF(s.alphabet, f)

	s.formula = f
	s.flags = flags
	s.enc = encoder.New(s.alphabet, f)

	return nil
}

// Clear discards the current backend state and encoder, so the solver can
// be reused for a fresh AssertFormula/Solve cycle.
func (s *Solver) Clear() {
	s.backend.Clear()
	s.enc = nil
	s.formula = logic.Formula{}
}

// Solve runs the k-unraveling loop described in spec.md §4.H up to and
// including k == bound, returning Unknown (not an error) if no verdict is
// reached by then.  ctx is checked once per outer iteration for cooperative
// cancellation; the bound itself remains the caller-enforced timeout.
func (s *Solver) Solve(ctx context.Context, bound uint) (sat.Verdict, *Model, error) {
	if s.enc == nil {
		return sat.Unknown, nil, fmt.Errorf("solver: no formula asserted")
	}

	s.backend.Clear()

	for k := uint(0); ; k++ {
		select {
		case <-ctx.Done():
			return sat.Unknown, nil, ctx.Err()
		default:
		}

		if k > bound {
			log.WithField("bound", bound).Debug("bound exhausted without a verdict")
			return sat.Unknown, nil, nil
		}

		log.WithField("k", k).Debug("asserting k_unraveling")
		s.backend.Assert(s.enc.KUnraveling(k))

		verdict, err := s.backend.Solve()
		if err != nil {
			return sat.Unknown, nil, err
		}

		if verdict == sat.Unsat {
			log.WithField("k", k).Debug("unraveling unsatisfiable")
			return sat.Unsat, nil, nil
		}

		s.backend.Push()
		s.backend.Assert(s.alphabet.Binary(logic.Or, s.enc.KEmpty(k), s.enc.KLoop(k)))

		verdict, err = s.backend.Solve()
		if err != nil {
			return sat.Unknown, nil, err
		}

		if verdict == sat.Sat {
			log.WithField("k", k).Debug("empty or loop satisfiable")
			return sat.Sat, s.extractModel(k), nil
		}

		s.backend.Pop()
		s.backend.Assert(s.alphabet.Unary(logic.Not, s.enc.Prune(k)))

		verdict, err = s.backend.Solve()
		if err != nil {
			return sat.Unknown, nil, err
		}

		if verdict == sat.Unsat {
			log.WithField("k", k).Debug("pruned unsatisfiable")
			return sat.Unsat, nil, nil
		}
	}
}

// extractModel recovers the lasso's back-jump point (if any) by re-checking
// l_to_k_loop/l_to_k_period for each candidate l against the backend's last
// model, and packages a Model exposing per-step, per-atom values.
func (s *Solver) extractModel(k uint) *Model {
	loop := util.None[uint]()

	for l := int(k) - 1; l >= 0; l-- {
		if evalAgainstBackend(s.backend, s.enc.LToKLoop(uint(l), k)) &&
			evalAgainstBackend(s.backend, s.enc.LToKPeriod(uint(l), k)) {
			loop = util.Some(uint(l))
			break
		}
	}

	return &Model{size: k + 1, loop: loop, backend: s.backend, alphabet: s.alphabet}
}

// evalAgainstBackend evaluates a purely propositional formula (built only
// from timed_var atoms and connectives, as every encoder output is) against
// a backend's most recent model.
func evalAgainstBackend(backend sat.Backend, f logic.Formula) bool {
	switch f.Kind() {
	case logic.KindBoolean:
		return f.BooleanValue()
	case logic.KindProposition, logic.KindAtom:
		return backend.Value(f) == sat.True
	case logic.KindUnary:
		return !evalAgainstBackend(backend, f.Operand())
	case logic.KindBinary:
		l, r := evalAgainstBackend(backend, f.Left()), evalAgainstBackend(backend, f.Right())

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
			panic("solver: unexpected operator in encoder output")
		}
	default:
		panic("solver: unexpected formula kind in encoder output")
	}
}
