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

// Package sat defines the propositional backend contract the solver loop
// drives, and a registry for selecting among the backends this module
// ships.
package sat

import "github.com/consensys/go-corset/pkg/logic"

// Verdict is the three-valued outcome of a Solve call.
type Verdict uint8

// Possible verdicts.
const (
	Unsat Verdict = iota
	Sat
	Unknown
)

// String renders a verdict's canonical name.
func (v Verdict) String() string {
	switch v {
	case Unsat:
		return "UNSAT"
	case Sat:
		return "SAT"
	default:
		return "UNKNOWN"
	}
}

// TriBool is the three-valued result of querying a model for a proposition's
// value: it may hold, be refuted, or be undetermined (never assigned,
// typically because the formula never mentions it at that step).
type TriBool uint8

// Possible values.
const (
	False TriBool = iota
	True
	Undef
)

// Features describes a backend's capabilities, consulted by the solver loop
// and by pkg/cmd to decide whether a requested combination (e.g. an
// incremental-only optimisation) is available.
type Features struct {
	// Incremental reports whether Push/Pop are cheap relative to a full
	// Clear+re-Assert; false backends still implement the contract, just by
	// replaying their assertion history.
	Incremental bool
	// Name is the backend's self-reported identifier, used in log lines and
	// --sat-backend matching.
	Name string
}

// Backend is the contract every propositional SAT engine this module drives
// must satisfy. A Backend's Formula arguments are always already in the
// ground propositional fragment (timed_var atoms and propositional
// connectives) -- no quantifiers, no temporal operators, no terms.
type Backend interface {
	// Features reports this backend's capabilities.
	Features() Features
	// Assert adds f to the current assertion set.
	Assert(f logic.Formula)
	// Push saves a restore point for a later Pop.
	Push()
	// Pop discards every assertion made since the matching Push.
	Pop()
	// Solve checks the current assertion set for satisfiability.
	Solve() (Verdict, error)
	// Value returns the model value of p from the most recent Sat verdict.
	// Calling Value before any Solve, or after a non-Sat verdict, is a
	// programmer error and may panic.
	Value(p logic.Formula) TriBool
	// Clear discards every assertion and restore point, returning the
	// backend to its initial state.
	Clear()
	// License reports the backend's licence identifier and whether it must
	// be surfaced to end users (e.g. a copyleft or field-of-use restricted
	// engine), mirroring the teacher's own third-party attribution
	// discipline.
	License() (string, bool)
}
