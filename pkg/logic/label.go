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
package logic

import (
	"fmt"

	"github.com/consensys/go-corset/pkg/util/collection/hash"
)

// Label is the hashable, displayable value carried by a Proposition node. A
// proposition's label is either a plain name or, for a timed_var (the bridge
// between the temporal world and the bounded propositional encoding), the
// pair (Formula, step).  Two propositions interned with equal labels yield
// the same node (invariant 1).
type Label interface {
	// Equals compares two labels for structural equality.
	Equals(other Label) bool
	// Hash returns a 64-bit hashcode consistent with Equals.
	Hash() uint64
	// String renders the label for display and round-tripping.
	String() string
}

// nameLabel is an ordinary named proposition, e.g. `p`.
type nameLabel struct {
	name string
}

// NameLabel constructs the label for an ordinary named proposition.
func NameLabel(name string) Label {
	return nameLabel{name}
}

func (l nameLabel) Equals(other Label) bool {
	o, ok := other.(nameLabel)
	return ok && o.name == l.name
}

func (l nameLabel) Hash() uint64 {
	return hash.NewBytesKey([]byte(l.name)).Hash()
}

func (l nameLabel) String() string {
	return l.name
}

// timedLabel is the label of a timed_var(f, k) proposition: the bridge
// between a temporal subformula and the ground propositional variable that
// represents it at bound k.
type timedLabel struct {
	formula Formula
	step    uint
}

// TimedLabel constructs the label for timed_var(f, k).
func TimedLabel(f Formula, step uint) Label {
	return timedLabel{f, step}
}

func (l timedLabel) Equals(other Label) bool {
	o, ok := other.(timedLabel)
	return ok && o.step == l.step && o.formula.Equals(l.formula)
}

func (l timedLabel) Hash() uint64 {
	h := l.formula.Hash()
	h ^= uint64(l.step) + 0x9e3779b9 + (h << 6) + (h >> 2)

	return h
}

func (l timedLabel) String() string {
	return fmt.Sprintf("[%s]_%d", formulaDebugString(l.formula), l.step)
}

// Formula and step accessors, used by the encoder/solver to recover the
// wrapped subformula from a timed_var proposition.
func (l timedLabel) Formula() Formula { return l.formula }
func (l timedLabel) Step() uint       { return l.step }

// AsTimedLabel narrows a Label to its timed_var constituents, if it is one.
func AsTimedLabel(l Label) (Formula, uint, bool) {
	if t, ok := l.(timedLabel); ok {
		return t.formula, t.step, true
	}

	return Formula{}, 0, false
}
