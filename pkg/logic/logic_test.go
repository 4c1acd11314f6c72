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
	"testing"

	"github.com/consensys/go-corset/pkg/util/assert"
)

func Test_Canonicity_Propositions(t *testing.T) {
	a := NewAlphabet()
	p1 := a.Prop("p")
	p2 := a.Prop("p")
	q := a.Prop("q")
	//
	assert.Equal(t, p1.UniqueID(), p2.UniqueID())
	assert.True(t, p1.Equals(p2))
	assert.True(t, p1.Hash() == p2.Hash())
	assert.False(t, p1.Equals(q))
}

func Test_Canonicity_Binary(t *testing.T) {
	a := NewAlphabet()
	p := a.Prop("p")
	q := a.Prop("q")
	//
	f1 := a.Binary(And, p, q)
	f2 := a.Binary(And, p, q)
	f3 := a.Binary(And, q, p)
	//
	assert.True(t, f1.Equals(f2))
	assert.False(t, f1.Equals(f3))
}

func Test_Canonicity_TimedVar(t *testing.T) {
	a := NewAlphabet()
	p := a.Prop("p")
	//
	tv0a := a.TimedVar(p, 0)
	tv0b := a.TimedVar(p, 0)
	tv1 := a.TimedVar(p, 1)
	//
	assert.True(t, tv0a.Equals(tv0b))
	assert.False(t, tv0a.Equals(tv1))
	//
	f, k, ok := AsTimedLabel(tv0a.Label())
	assert.True(t, ok)
	assert.True(t, f.Equals(p))
	assert.Equal(t, k, uint(0))
}

func Test_StructuralSharing(t *testing.T) {
	a := NewAlphabet()
	p := a.Prop("p")
	//
	f1 := a.Unary(Not, p)
	conj := a.Binary(And, f1, f1)
	//
	// Children are themselves interned: both operands of the conjunction
	// must be the very same node.
	assert.True(t, conj.Left().Equals(conj.Right()))
}

func Test_Match_BigConjunction(t *testing.T) {
	a := NewAlphabet()
	p := a.Prop("p")
	q := a.Prop("q")
	r := a.Prop("r")
	//
	spine := BigConjunction(a, []Formula{p, q, r})
	operands := FlattenConjunction(spine)
	//
	assert.Equal(t, len(operands), 3)
	assert.True(t, operands[0].Equals(p))
	assert.True(t, operands[1].Equals(q))
	assert.True(t, operands[2].Equals(r))
}

func Test_Match_Predicates(t *testing.T) {
	a := NewAlphabet()
	p := a.Prop("p")
	g := a.Unary(Always, p)
	u := a.Binary(Until, p, p)
	y := a.Unary(Yesterday, p)
	//
	assert.True(t, IsPropositional(p))
	assert.False(t, IsPropositional(g))
	assert.True(t, IsFuture(g))
	assert.True(t, IsFuture(u))
	assert.True(t, IsPast(y))
	assert.False(t, IsFuture(y))

	label := Match(g,
		When(IsUnaryOp(Always), func(Formula) string { return "always" }),
		Default(func(Formula) string { return "other" }),
	)
	assert.Equal(t, label, "always")
}

func Test_Print_RoundTripShape(t *testing.T) {
	a := NewAlphabet()
	p := a.Prop("p")
	q := a.Prop("q")
	f := a.Binary(Until, p, a.Unary(Not, q))
	//
	str := f.String()
	assert.True(t, len(str) > 0)
}
