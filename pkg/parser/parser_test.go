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
package parser

import (
	"testing"

	"github.com/consensys/go-corset/pkg/logic"
	"github.com/consensys/go-corset/pkg/util/assert"
	"github.com/consensys/go-corset/pkg/util/source"
)

func parse(t *testing.T, text string) (logic.Formula, FeatureFlags) {
	t.Helper()

	a := logic.NewAlphabet()
	file := source.NewSourceFile("<test>", []byte(text))

	var errs []*source.SyntaxError

	f, flags, ok := Parse(file, a, func(e *source.SyntaxError) { errs = append(errs, e) })
	assert.True(t, ok, "unexpected parse failure for %q: %v", text, errs)

	return f, flags
}

func Test_Parse_BareIdentifierIsProposition(t *testing.T) {
	f, flags := parse(t, "p")
	assert.Equal(t, f.Kind(), logic.KindProposition)
	assert.False(t, flags.Has(Temporal))
}

func Test_Parse_ApplicationIsAtom(t *testing.T) {
	f, _ := parse(t, "leq(x,y)")
	assert.Equal(t, f.Kind(), logic.KindAtom)
	assert.Equal(t, f.Relation(), "leq")
	assert.Equal(t, len(f.Terms()), 2)
}

func Test_Parse_ConjunctionBindsTighterThanDisjunction(t *testing.T) {
	f, _ := parse(t, "p | q & r")
	assert.Equal(t, f.Kind(), logic.KindBinary)
	assert.Equal(t, f.BinaryOp(), logic.Or)
	assert.Equal(t, f.Right().BinaryOp(), logic.And)
}

func Test_Parse_UntilSetsTemporalFlagOnly(t *testing.T) {
	f, flags := parse(t, "p U q")
	assert.Equal(t, f.BinaryOp(), logic.Until)
	assert.True(t, flags.Has(Temporal))
	assert.False(t, flags.Has(Past))
}

func Test_Parse_SinceSetsPastFlag(t *testing.T) {
	f, flags := parse(t, "p S q")
	assert.Equal(t, f.BinaryOp(), logic.Since)
	assert.True(t, flags.Has(Temporal))
	assert.True(t, flags.Has(Past))
}

func Test_Parse_UnaryYesterdaySetsPastFlag(t *testing.T) {
	_, flags := parse(t, "Y p")
	assert.True(t, flags.Has(Past))
}

func Test_Parse_UnaryNextDoesNotSetPastFlag(t *testing.T) {
	f, flags := parse(t, "X p")
	assert.Equal(t, f.UnaryOp(), logic.Next)
	assert.True(t, flags.Has(Temporal))
	assert.False(t, flags.Has(Past))
}

func Test_Parse_ParenthesesOverrideAssociation(t *testing.T) {
	f, _ := parse(t, "(p | q) & r")
	assert.Equal(t, f.BinaryOp(), logic.And)
	assert.Equal(t, f.Left().BinaryOp(), logic.Or)
}

func Test_Parse_QuantifierSetsFlags(t *testing.T) {
	f, flags := parse(t, "exists x . leq(x,x)")
	assert.Equal(t, f.Kind(), logic.KindQuantifier)
	assert.Equal(t, f.QuantifierKind(), logic.Exists)
	assert.True(t, flags.Has(Quantifiers))
	assert.True(t, flags.Has(FirstOrder))
}

func Test_Parse_NextTermSetsNextVarFlag(t *testing.T) {
	_, flags := parse(t, "leq(next(x), 1)")
	assert.True(t, flags.Has(NextVar))
	assert.True(t, flags.Has(FirstOrder))
}

func Test_Parse_MismatchedParenthesesFail(t *testing.T) {
	a := logic.NewAlphabet()
	file := source.NewSourceFile("<test>", []byte("(p & q"))

	var errs []*source.SyntaxError

	_, _, ok := Parse(file, a, func(e *source.SyntaxError) { errs = append(errs, e) })
	assert.False(t, ok)
	assert.True(t, len(errs) > 0)
}

func Test_Parse_SymbolArityMismatchFails(t *testing.T) {
	a := logic.NewAlphabet()
	file := source.NewSourceFile("<test>", []byte("leq(x,y) & leq(x)"))

	var errs []*source.SyntaxError

	_, _, ok := Parse(file, a, func(e *source.SyntaxError) { errs = append(errs, e) })
	assert.False(t, ok)
	assert.True(t, len(errs) > 0)
}

func Test_Parse_SymbolKindClashFails(t *testing.T) {
	a := logic.NewAlphabet()
	// leq used first as a relation (2-ary atom), then as a function application.
	file := source.NewSourceFile("<test>", []byte("leq(x,y) & leq(leq(x,y), x)"))

	var errs []*source.SyntaxError

	_, _, ok := Parse(file, a, func(e *source.SyntaxError) { errs = append(errs, e) })
	assert.False(t, ok)
	assert.True(t, len(errs) > 0)
}

func Test_Parse_TrailingInputFails(t *testing.T) {
	a := logic.NewAlphabet()
	file := source.NewSourceFile("<test>", []byte("p q"))

	var errs []*source.SyntaxError

	_, _, ok := Parse(file, a, func(e *source.SyntaxError) { errs = append(errs, e) })
	assert.False(t, ok)
	assert.True(t, len(errs) > 0)
}

// A bare '=' is not valid concrete syntax (only as part of '=>' or '<=>'); it must be
// reported as a syntax error, not silently dropped with the prefix before it
// accepted as a complete formula.
func Test_Parse_UnrecognisedCharacterFailsRatherThanTruncates(t *testing.T) {
	for _, text := range []string{"p = q", "p @ q", "p <= q"} {
		a := logic.NewAlphabet()
		file := source.NewSourceFile("<test>", []byte(text))

		var errs []*source.SyntaxError

		_, _, ok := Parse(file, a, func(e *source.SyntaxError) { errs = append(errs, e) })
		assert.False(t, ok, "expected parse failure for %q", text)
		assert.True(t, len(errs) > 0, "expected at least one syntax error for %q", text)
	}
}
