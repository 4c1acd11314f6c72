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
package lex

import (
	"testing"

	"github.com/consensys/go-corset/pkg/util/assert"
	"github.com/consensys/go-corset/pkg/util/source"
)

func scanAll(t *testing.T, text string) []Token {
	t.Helper()

	l := NewLexer(source.NewSourceFile("<test>", []byte(text)))

	var toks []Token

	for {
		tok := l.Next()
		toks = append(toks, tok)

		if tok.Kind == EOF {
			return toks
		}
	}
}

func Test_Lexer_SkipsWhitespaceBetweenTokens(t *testing.T) {
	toks := scanAll(t, "  G  p  ")
	assert.Equal(t, len(toks), 3)
	assert.Equal(t, toks[0].Kind, KwG)
	assert.Equal(t, toks[1].Kind, Ident)
	assert.Equal(t, toks[1].Text, "p")
	assert.Equal(t, toks[2].Kind, EOF)
}

func Test_Lexer_RecognisesTemporalKeywords(t *testing.T) {
	toks := scanAll(t, "X wX Y Z F G O H U R W M S T")
	kinds := []Kind{KwX, KwWX, KwY, KwZ, KwF, KwG, KwO, KwH, KwUntil, KwRelease, KwWUntil, KwSRelease, KwSince, KwTriggered, EOF}

	assert.Equal(t, len(toks), len(kinds))

	for i, k := range kinds {
		assert.Equal(t, toks[i].Kind, k)
	}
}

func Test_Lexer_AndOrAcceptSingleOrDoubledForm(t *testing.T) {
	toks := scanAll(t, "& && | ||")
	assert.Equal(t, toks[0].Kind, KwAnd)
	assert.Equal(t, toks[0].Text, "&")
	assert.Equal(t, toks[1].Kind, KwAnd)
	assert.Equal(t, toks[1].Text, "&&")
	assert.Equal(t, toks[2].Kind, KwOr)
	assert.Equal(t, toks[2].Text, "|")
	assert.Equal(t, toks[3].Kind, KwOr)
	assert.Equal(t, toks[3].Text, "||")
}

func Test_Lexer_ArrowFormsImpliesAndIff(t *testing.T) {
	toks := scanAll(t, "-> <->")
	assert.Equal(t, toks[0].Kind, KwImplies)
	assert.Equal(t, toks[1].Kind, KwIff)
}

func Test_Lexer_BareMinusIsMinusNotImplies(t *testing.T) {
	toks := scanAll(t, "- 5")
	assert.Equal(t, toks[0].Kind, Minus)
}

func Test_Lexer_IntegerAndRealLiterals(t *testing.T) {
	toks := scanAll(t, "42 3.125")
	assert.Equal(t, toks[0].Kind, Int)
	assert.Equal(t, toks[0].Text, "42")
	assert.Equal(t, toks[1].Kind, Real)
	assert.Equal(t, toks[1].Text, "3.125")
}

func Test_Lexer_DotIsQuantifierSeparatorNotDecimalWithoutDigit(t *testing.T) {
	toks := scanAll(t, "x.")
	assert.Equal(t, toks[0].Kind, Ident)
	assert.Equal(t, toks[1].Kind, Dot)
}

func Test_Lexer_PeekDoesNotConsume(t *testing.T) {
	l := NewLexer(source.NewSourceFile("<test>", []byte("G p")))
	first := l.Peek()
	second := l.Peek()
	assert.Equal(t, first.Kind, second.Kind)
	assert.Equal(t, first.Kind, KwG)

	advanced := l.Next()
	assert.Equal(t, advanced.Kind, KwG)
	assert.Equal(t, l.Peek().Kind, Ident)
}

func Test_Lexer_UnknownCharacterProducesDistinctErrorToken(t *testing.T) {
	toks := scanAll(t, "@")
	assert.Equal(t, toks[0].Kind, Error)
	assert.Equal(t, toks[0].Text, "@")
	assert.Equal(t, toks[1].Kind, EOF)
}

func Test_Lexer_BareEqualsIsErrorNotImplies(t *testing.T) {
	toks := scanAll(t, "=")
	assert.Equal(t, toks[0].Kind, Error)
}

func Test_Lexer_NextAndWNextKeywordsAreTermLevel(t *testing.T) {
	toks := scanAll(t, "next wnext")
	assert.Equal(t, toks[0].Kind, KwNext)
	assert.Equal(t, toks[1].Kind, KwWNext)
}
