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
	"fmt"
	"strconv"
	"strings"

	"github.com/consensys/go-corset/pkg/lex"
	"github.com/consensys/go-corset/pkg/logic"
	"github.com/consensys/go-corset/pkg/util/source"
)

// symbolKind distinguishes a symbol's use as a term-level function from its
// use as a formula-level relation (invariant 5: a name cannot be both).
type symbolKind uint8

const (
	asFunction symbolKind = iota
	asRelation
)

type arityEntry struct {
	kind  symbolKind
	arity int
}

// Parser drives a lex.Lexer to produce a (Formula, FeatureFlags) pair. It
// reports every error -- unexpected token, missing operand, unbalanced
// parentheses, arity mismatch, symbol kind clash -- via a single
// caller-supplied callback and does not attempt error recovery: the first
// error seen causes Parse to return ok=false.
type Parser struct {
	lexer    *lex.Lexer
	alphabet *logic.Alphabet
	onError  func(*source.SyntaxError)
	flags    FeatureFlags
	arities  map[string]arityEntry
	failed   bool
	// formulaHead is set while parsing the head of a term in formula
	// position, whose application (if any) names a relation.
	formulaHead bool
}

// Parse parses a complete formula from a source file.  On success it
// returns the interned formula, the feature flags accumulated while
// parsing, and ok=true.  On any syntax error, every diagnostic is reported
// via onError and Parse returns ok=false ("no formula", per spec.md §4.D).
func Parse(file *source.File, alphabet *logic.Alphabet, onError func(*source.SyntaxError)) (logic.Formula, FeatureFlags, bool) {
	p := &Parser{
		lexer:    lex.NewLexer(file),
		alphabet: alphabet,
		onError:  onError,
		arities:  make(map[string]arityEntry),
	}

	f := p.parseFormula(0)

	if !p.failed {
		if tok := p.lexer.Peek(); tok.Kind == lex.Error {
			p.errorf(tok.Span, "unrecognised character %q", tok.Text)
		} else if tok.Kind != lex.EOF {
			p.errorf(tok.Span, "unexpected trailing input")
		}
	}

	if p.failed {
		return logic.Formula{}, 0, false
	}

	return f, p.flags, true
}

func (p *Parser) errorf(span source.Span, format string, args ...any) {
	p.failed = true

	if p.onError != nil {
		p.onError(p.lexer.File().SyntaxError(span, fmt.Sprintf(format, args...)))
	}
}

func (p *Parser) expect(kind lex.Kind, what string) (lex.Token, bool) {
	tok := p.lexer.Peek()
	if tok.Kind != kind {
		p.errorf(tok.Span, "expected %s", what)
		return tok, false
	}

	return p.lexer.Next(), true
}

// ----------------------------------------------------------------------
// Formula grammar: precedence-climbing over the binary LTL operators.
// Precedence (lowest -> highest), per spec.md §4.D:
//   disjunction(20) < conjunction(30) < implication,iff(40)
//     < until,release,w_until,s_release,since,triggered(50)
// ----------------------------------------------------------------------

func binaryLTLInfo(kind lex.Kind) (logic.BinaryOp, int, bool) {
	switch kind {
	case lex.KwOr:
		return logic.Or, 20, true
	case lex.KwAnd:
		return logic.And, 30, true
	case lex.KwImplies:
		return logic.Implies, 40, true
	case lex.KwIff:
		return logic.Iff, 40, true
	case lex.KwUntil:
		return logic.Until, 50, true
	case lex.KwRelease:
		return logic.Release, 50, true
	case lex.KwWUntil:
		return logic.WUntil, 50, true
	case lex.KwSRelease:
		return logic.SRelease, 50, true
	case lex.KwSince:
		return logic.Since, 50, true
	case lex.KwTriggered:
		return logic.Triggered, 50, true
	default:
		return 0, 0, false
	}
}

func (p *Parser) parseFormula(minBP int) logic.Formula {
	left := p.parsePrimary()
	if p.failed {
		return left
	}

	for {
		op, bp, ok := binaryLTLInfo(p.lexer.Peek().Kind)
		if !ok || bp < minBP {
			return left
		}

		p.lexer.Next()

		p.flags.set(Temporal)
		if op.IsPast() {
			p.flags.set(Past)
		}

		right := p.parseFormula(bp + 1)
		if p.failed {
			return left
		}

		left = p.alphabet.Binary(op, left, right)
	}
}

func unaryLTLInfo(kind lex.Kind) (logic.UnaryOp, bool) {
	switch kind {
	case lex.Not:
		return logic.Not, true
	case lex.KwX:
		return logic.Next, true
	case lex.KwWX:
		return logic.WNext, true
	case lex.KwY:
		return logic.Yesterday, true
	case lex.KwZ:
		return logic.WYesterday, true
	case lex.KwF:
		return logic.Eventually, true
	case lex.KwG:
		return logic.Always, true
	case lex.KwO:
		return logic.Once, true
	case lex.KwH:
		return logic.Historically, true
	default:
		return 0, false
	}
}

func (p *Parser) parsePrimary() logic.Formula {
	tok := p.lexer.Peek()

	if tok.Kind == lex.Error {
		p.lexer.Next()
		p.errorf(tok.Span, "unrecognised character %q", tok.Text)

		return logic.Formula{}
	}

	switch tok.Kind {
	case lex.True:
		p.lexer.Next()
		return p.alphabet.Boolean(true)
	case lex.False:
		p.lexer.Next()
		return p.alphabet.Boolean(false)
	case lex.LParen:
		p.lexer.Next()

		f := p.parseFormula(0)
		if p.failed {
			return f
		}

		if _, ok := p.expect(lex.RParen, "')'"); !ok {
			return f
		}

		return f
	case lex.KwExists, lex.KwForall:
		return p.parseQuantifier(tok)
	}

	if op, ok := unaryLTLInfo(tok.Kind); ok {
		p.lexer.Next()

		p.flags.set(Temporal)
		if op.IsPast() {
			p.flags.set(Past)
		}

		child := p.parsePrimary()
		if p.failed {
			return child
		}

		return p.alphabet.Unary(op, child)
	}

	return p.parseTermPrimaryAsFormula(tok)
}

func (p *Parser) parseQuantifier(tok lex.Token) logic.Formula {
	p.lexer.Next()
	p.flags.set(Quantifiers)
	p.flags.set(FirstOrder)

	kind := logic.Exists
	if tok.Kind == lex.KwForall {
		kind = logic.Forall
	}

	var vars []string

	for {
		id, ok := p.expect(lex.Ident, "variable name")
		if !ok {
			return logic.Formula{}
		}

		vars = append(vars, id.Text)

		if p.lexer.Peek().Kind == lex.Dot {
			break
		}
	}

	if _, ok := p.expect(lex.Dot, "'.'"); !ok {
		return logic.Formula{}
	}

	matrix := p.parsePrimary()
	if p.failed {
		return matrix
	}

	return p.alphabet.Quantifier(kind, vars, matrix)
}

// parseTermPrimaryAsFormula parses a term in formula position and applies
// the atom/proposition promotion rule of spec.md §4.D: a bare variable
// becomes a proposition, an application becomes an atom over its relation,
// and any other term shape in that position is a syntax error.
func (p *Parser) parseTermPrimaryAsFormula(tok lex.Token) logic.Formula {
	p.formulaHead = true
	term := p.parseTerm(0)
	if p.failed {
		return logic.Formula{}
	}

	switch term.Kind() {
	case logic.TermVariable:
		return p.alphabet.Prop(term.VarLabel())
	case logic.TermApplication:
		p.flags.set(FirstOrder)

		if !p.registerSymbol(term.Function(), asRelation, len(term.Args()), tok.Span) {
			return logic.Formula{}
		}

		return p.alphabet.Atom(term.Function(), term.Args()...)
	default:
		p.errorf(tok.Span, "expected a formula, found a numeric or next/wnext expression")
		return logic.Formula{}
	}
}

func (p *Parser) registerSymbol(name string, kind symbolKind, arity int, span source.Span) bool {
	if existing, ok := p.arities[name]; ok {
		if existing.kind != kind {
			p.errorf(span, "symbol %q used both as a function and as a relation", name)
			return false
		}

		if existing.arity != arity {
			p.errorf(span, "symbol %q used with inconsistent arity (expected %d, got %d)",
				name, existing.arity, arity)

			return false
		}

		return true
	}

	p.arities[name] = arityEntry{kind, arity}

	return true
}

// ----------------------------------------------------------------------
// Term grammar: its own precedence table.
//   addition/subtraction(10) < multiplication/division/modulo(20)
//   unary minus binds tightest.
// ----------------------------------------------------------------------

func arithInfo(kind lex.Kind) (string, int, bool) {
	switch kind {
	case lex.Plus:
		return "+", 10, true
	case lex.Minus:
		return "-", 10, true
	case lex.Star:
		return "*", 20, true
	case lex.Slash:
		return "/", 20, true
	case lex.Percent:
		return "%", 20, true
	default:
		return "", 0, false
	}
}

func (p *Parser) parseTerm(minBP int) logic.Term {
	left := p.parseTermPrimary()
	if p.failed {
		return left
	}

	for {
		sym, bp, ok := arithInfo(p.lexer.Peek().Kind)
		if !ok || bp < minBP {
			return left
		}

		p.lexer.Next()

		right := p.parseTerm(bp + 1)
		if p.failed {
			return left
		}

		left = p.alphabet.Application(sym, left, right)
	}
}

func (p *Parser) parseTermPrimary() logic.Term {
	tok := p.lexer.Peek()
	head := p.formulaHead
	p.formulaHead = false

	if tok.Kind == lex.Error {
		p.lexer.Next()
		p.errorf(tok.Span, "unrecognised character %q", tok.Text)

		return logic.Term{}
	}

	switch tok.Kind {
	case lex.Int:
		p.lexer.Next()

		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.errorf(tok.Span, "malformed integer literal %q", tok.Text)
			return logic.Term{}
		}

		return p.alphabet.Constant(logic.IntNumber(n))
	case lex.Real:
		p.lexer.Next()
		return p.alphabet.Constant(parseRational(tok.Text))
	case lex.Minus:
		p.lexer.Next()

		operand := p.parseTerm(30)
		if p.failed {
			return operand
		}

		return p.alphabet.Application("-", operand)
	case lex.KwNext:
		p.lexer.Next()
		p.flags.set(NextVar)
		p.flags.set(FirstOrder)

		if _, ok := p.expect(lex.LParen, "'('"); !ok {
			return logic.Term{}
		}

		t := p.parseTerm(0)
		if p.failed {
			return t
		}

		if _, ok := p.expect(lex.RParen, "')'"); !ok {
			return t
		}

		return p.alphabet.Next(t)
	case lex.KwWNext:
		p.lexer.Next()
		p.flags.set(NextVar)
		p.flags.set(FirstOrder)

		if _, ok := p.expect(lex.LParen, "'('"); !ok {
			return logic.Term{}
		}

		t := p.parseTerm(0)
		if p.failed {
			return t
		}

		if _, ok := p.expect(lex.RParen, "')'"); !ok {
			return t
		}

		return p.alphabet.WNext(t)
	case lex.LParen:
		p.lexer.Next()

		t := p.parseTerm(0)
		if p.failed {
			return t
		}

		if _, ok := p.expect(lex.RParen, "')'"); !ok {
			return t
		}

		return t
	case lex.Ident:
		p.lexer.Next()

		if p.lexer.Peek().Kind != lex.LParen {
			return p.alphabet.Variable(tok.Text)
		}

		p.lexer.Next()

		var args []logic.Term

		if p.lexer.Peek().Kind != lex.RParen {
			for {
				arg := p.parseTerm(0)
				if p.failed {
					return logic.Term{}
				}

				args = append(args, arg)

				if p.lexer.Peek().Kind != lex.Comma {
					break
				}

				p.lexer.Next()
			}
		}

		if _, ok := p.expect(lex.RParen, "')'"); !ok {
			return logic.Term{}
		}

		p.flags.set(FirstOrder)

		// A whole application in formula position is an atom: its head is
		// registered as a relation by parseTermPrimaryAsFormula instead.
		if _, _, arith := arithInfo(p.lexer.Peek().Kind); head && !arith {
			return p.alphabet.Application(tok.Text, args...)
		}

		if !p.registerSymbol(tok.Text, asFunction, len(args), tok.Span) {
			return logic.Term{}
		}

		return p.alphabet.Application(tok.Text, args...)
	}

	p.errorf(tok.Span, "expected a term")

	return logic.Term{}
}

// parseRational converts a decimal literal such as "3.125" into an exact
// Number (numerator over a power-of-ten denominator).
func parseRational(text string) logic.Number {
	parts := strings.SplitN(text, ".", 2)

	whole, _ := strconv.ParseInt(parts[0], 10, 64)

	if len(parts) == 1 {
		return logic.IntNumber(whole)
	}

	frac := parts[1]

	den := int64(1)
	for range frac {
		den *= 10
	}

	fracVal, _ := strconv.ParseInt(frac, 10, 64)

	sign := int64(1)
	if whole < 0 {
		sign = -1
		whole = -whole
	}

	num := sign * (whole*den + fracVal)

	return logic.Number{Num: num, Den: den}
}
