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
package dimacs

import (
	"strings"
	"testing"

	"github.com/consensys/go-corset/pkg/logic"
	"github.com/consensys/go-corset/pkg/sat"
	"github.com/consensys/go-corset/pkg/util/assert"
)

func Test_Encode_ConjunctionProducesUnitClausePerAssertion(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	q := a.Prop("q")
	//
	cnf := Encode([]logic.Formula{a.Binary(logic.And, p, q)})
	assert.True(t, cnf.NumVars >= 3)
	assert.True(t, len(cnf.Clauses) >= 4)
}

func Test_Write_EmitsDimacsHeader(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")
	//
	cnf := Encode([]logic.Formula{p})

	var buf strings.Builder
	err := Write(&buf, cnf)
	assert.True(t, err == nil)
	assert.True(t, strings.HasPrefix(buf.String(), "p cnf "))
}

func Test_Backend_SolveReturnsUnknownAndWritesCNF(t *testing.T) {
	a := logic.NewAlphabet()
	p := a.Prop("p")

	var buf strings.Builder
	b := New(&buf)
	b.Assert(p)

	verdict, err := b.Solve()
	assert.True(t, err == nil)
	assert.Equal(t, verdict, sat.Unknown)
	assert.True(t, len(buf.String()) > 0)
}
