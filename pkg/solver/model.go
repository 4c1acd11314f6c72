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
	"github.com/consensys/go-corset/pkg/logic"
	"github.com/consensys/go-corset/pkg/sat"
	"github.com/consensys/go-corset/pkg/util"
)

// Model is the lasso-shaped witness returned for a Sat verdict: size
// states numbered [0, size), of which index loop (if present) is where the
// lasso's back-jump occurs.
type Model struct {
	size     uint
	loop     util.Option[uint]
	backend  sat.Backend
	alphabet *logic.Alphabet
}

// Size returns the number of distinct states in the witness, i.e. k+1 for
// whichever k the solver loop settled on.
func (m *Model) Size() uint {
	return m.size
}

// Loop returns the back-jump index, or an empty option if this witness is a
// finite, halting path rather than a genuine lasso.
func (m *Model) Loop() util.Option[uint] {
	return m.loop
}

// Value reports whether atom holds, is refuted, or is undetermined at the
// given step, by querying the underlying backend's model for
// timed_var(atom, step).
func (m *Model) Value(atom logic.Formula, step uint) sat.TriBool {
	return m.backend.Value(m.alphabet.TimedVar(atom, step))
}
