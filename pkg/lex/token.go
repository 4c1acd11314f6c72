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

// Package lex tokenises the concrete syntax of LTL/LTL+Past formulas and
// first-order terms (spec.md §4.C), building on the teacher's own
// pkg/util/source for span tracking and syntax error reporting.
package lex

import "github.com/consensys/go-corset/pkg/util/source"

// Kind identifies the lexical category of a Token.
type Kind uint8

// Token kinds.
const (
	EOF Kind = iota
	// Error marks an unrecognised character or malformed lexeme.  It is
	// deliberately distinct from EOF: a syntax error must be reported, never
	// silently treated as end of input.
	Error
	LParen
	RParen
	Comma
	Dot
	True
	False
	Int
	Real
	Ident
	// Unary operators
	Not
	KwX
	KwWX
	KwY
	KwZ
	KwF
	KwG
	KwO
	KwH
	// Binary logical operators
	KwAnd
	KwOr
	KwImplies
	KwIff
	KwUntil
	KwRelease
	KwWUntil
	KwSRelease
	KwSince
	KwTriggered
	// Quantifiers and first-order keywords
	KwExists
	KwForall
	KwNext
	KwWNext
	// Term-level arithmetic
	Plus
	Minus
	Star
	Slash
	Percent
)

// Token is a single lexical unit together with its source span and text.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// keywords maps identifier spellings to their keyword token kind.  Built
// directly from the concrete syntax table of spec.md §6 / §4.C.
var keywords = map[string]Kind{
	"True":  True,
	"False": False,
	"NOT":   Not,
	"X":     KwX,
	"wX":    KwWX,
	"Y":     KwY,
	"Z":     KwZ,
	"F":     KwF,
	"G":     KwG,
	"O":     KwO,
	"H":     KwH,
	"AND":   KwAnd,
	"OR":    KwOr,
	"THEN":  KwImplies,
	"IFF":   KwIff,
	"U":     KwUntil,
	"R":     KwRelease,
	"V":     KwRelease,
	"W":     KwWUntil,
	"M":     KwSRelease,
	"S":     KwSince,
	"T":     KwTriggered,
	"exists": KwExists,
	"forall": KwForall,
	"next":   KwNext,
	"wnext":  KwWNext,
}
