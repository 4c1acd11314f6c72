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
package encoder

import (
	"testing"

	"github.com/consensys/go-corset/pkg/logic"
	"github.com/consensys/go-corset/pkg/util/assert"
)

func Test_KUnraveling_ZeroIsGroundXnf(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	e := New(a, p)
	//
	result := e.KUnraveling(0)
	assert.True(t, logic.IsTimedVar(result))
	assert.Equal(t, e.Closure(), e.Closure())
}

func Test_KUnraveling_PopulatesClosureForEventually(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	f := a.Unary(logic.Eventually, p)
	e := New(a, f)
	//
	e.KUnraveling(0)
	assert.Equal(t, len(e.Closure()), 1)
	assert.True(t, normalFulfillmentHolds(e.Closure()[0], p))
}

func normalFulfillmentHolds(obligation, expect logic.Formula) bool {
	inner := obligation.Operand()
	return inner.Operand().Equals(expect)
}

func Test_KUnraveling_StepAdvancesConstraint(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	f := a.Unary(logic.Always, p)
	e := New(a, f)
	//
	e.KUnraveling(0)
	step1 := e.KUnraveling(1)
	assert.Equal(t, step1.Kind(), logic.KindBinary)
}

func Test_KEmpty_NoClosureIsTrue(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	e := New(a, p)
	e.KUnraveling(0)
	//
	empty := e.KEmpty(0)
	assert.Equal(t, empty.Kind(), logic.KindBoolean)
	assert.True(t, empty.BooleanValue())
}

func Test_KEmpty_NonEmptyClosureNegatesObligations(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	f := a.Unary(logic.Eventually, p)
	e := New(a, f)
	e.KUnraveling(0)
	//
	empty := e.KEmpty(0)
	assert.True(t, logic.IsNegation(empty))
}

func Test_KLoop_ZeroIsFalse(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	e := New(a, p)
	//
	loop := e.KLoop(0)
	assert.Equal(t, loop.Kind(), logic.KindBoolean)
	assert.False(t, loop.BooleanValue())
}

func Test_LToKLoop_IsReflexiveShape(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	f := a.Unary(logic.Eventually, p)
	e := New(a, f)
	e.KUnraveling(0)
	e.KUnraveling(1)
	//
	same := e.LToKLoop(1, 1)
	// Every conjunct is x ↔ x, i.e. reflexively true by structure (each
	// operand is literally the same timed_var node on both sides).
	for _, c := range logic.FlattenConjunction(same) {
		assert.Equal(t, c.Kind(), logic.KindBinary)
		assert.Equal(t, c.BinaryOp(), logic.Iff)
		assert.True(t, c.Left().Equals(c.Right()))
	}
}

func Test_Prune_EmptyBelowThreeElements(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	e := New(a, p)
	//
	pruned := e.Prune(1)
	assert.Equal(t, pruned.Kind(), logic.KindBoolean)
	assert.False(t, pruned.BooleanValue())
}
