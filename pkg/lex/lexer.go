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
	"unicode"

	"github.com/consensys/go-corset/pkg/util/source"
)

// Lexer tokenises a source file's contents one rune at a time, exposing
// one-token lookahead via Peek/Next.  Whitespace is skipped implicitly.
type Lexer struct {
	file     *source.File
	runes    []rune
	pos      int
	lookahead *Token
}

// NewLexer constructs a lexer over the contents of the given source file.
func NewLexer(file *source.File) *Lexer {
	return &Lexer{file, file.Contents(), 0, nil}
}

// File returns the source file being lexed, for error reporting.
func (l *Lexer) File() *source.File {
	return l.file
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() Token {
	if l.lookahead == nil {
		tok := l.scan()
		l.lookahead = &tok
	}

	return *l.lookahead
}

// Next returns the next token and advances past it.
func (l *Lexer) Next() Token {
	tok := l.Peek()
	l.lookahead = nil

	return tok
}

func (l *Lexer) emit(kind Kind, start int, text string) Token {
	return Token{kind, source.NewSpan(start, l.pos), text}
}

func (l *Lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.runes) {
		return 0, false
	}

	return l.runes[l.pos], true
}

func (l *Lexer) peekRuneAt(offset int) (rune, bool) {
	idx := l.pos + offset
	if idx >= len(l.runes) {
		return 0, false
	}

	return l.runes[idx], true
}

func (l *Lexer) skipWhitespace() {
	for {
		c, ok := l.peekRune()
		if !ok || !unicode.IsSpace(c) {
			return
		}

		l.pos++
	}
}

// scan produces the next token, or an EOF / error token at end of input.
//
//nolint:gocyclo
func (l *Lexer) scan() Token {
	l.skipWhitespace()

	start := l.pos

	c, ok := l.peekRune()
	if !ok {
		return l.emit(EOF, start, "")
	}

	switch c {
	case '(':
		l.pos++
		return l.emit(LParen, start, "(")
	case ')':
		l.pos++
		return l.emit(RParen, start, ")")
	case ',':
		l.pos++
		return l.emit(Comma, start, ",")
	case '.':
		l.pos++
		return l.emit(Dot, start, ".")
	case '!', '~':
		l.pos++
		return l.emit(Not, start, string(c))
	case '&':
		l.pos++
		if n, ok := l.peekRune(); ok && n == '&' {
			l.pos++
		}

		return l.emit(KwAnd, start, string(l.runes[start:l.pos]))
	case '|':
		l.pos++
		if n, ok := l.peekRune(); ok && n == '|' {
			l.pos++
		}

		return l.emit(KwOr, start, string(l.runes[start:l.pos]))
	case '-', '=':
		l.pos++
		if n, ok := l.peekRune(); ok && n == '>' {
			l.pos++
			return l.emit(KwImplies, start, string(l.runes[start:l.pos]))
		}
		// A bare '-' has a term-level meaning (unary minus); '=' alone is
		// invalid.  Let the caller (parser) decide by returning Minus for
		// '-' and an error token otherwise.
		if c == '-' {
			return l.emit(Minus, start, "-")
		}

		return l.errorToken(start)
	case '<':
		l.pos++

		if n, ok := l.peekRune(); ok && (n == '-' || n == '=') {
			l.pos++
		}

		if n, ok := l.peekRune(); ok && n == '>' {
			l.pos++
			return l.emit(KwIff, start, string(l.runes[start:l.pos]))
		}

		return l.errorToken(start)
	case '+':
		l.pos++
		return l.emit(Plus, start, "+")
	case '*':
		l.pos++
		return l.emit(Star, start, "*")
	case '/':
		l.pos++
		return l.emit(Slash, start, "/")
	case '%':
		l.pos++
		return l.emit(Percent, start, "%")
	}

	if unicode.IsDigit(c) {
		return l.scanNumber(start)
	}

	if isInitialIdentifierChar(c) {
		return l.scanIdentifier(start)
	}

	l.pos++

	return l.errorToken(start)
}

func (l *Lexer) errorToken(start int) Token {
	l.pos = max(l.pos, start+1)
	return l.emit(Error, start, string(l.runes[start:l.pos]))
}

func (l *Lexer) scanNumber(start int) Token {
	isReal := false

	for {
		c, ok := l.peekRune()
		if !ok {
			break
		}

		if unicode.IsDigit(c) {
			l.pos++
			continue
		}

		if c == '.' && !isReal {
			// Only consume as part of the number if followed by a digit;
			// otherwise '.' is the quantifier separator.
			if n, ok := l.peekRuneAt(1); ok && unicode.IsDigit(n) {
				isReal = true
				l.pos++

				continue
			}
		}

		break
	}

	text := string(l.runes[start:l.pos])
	if isReal {
		return l.emit(Real, start, text)
	}

	return l.emit(Int, start, text)
}

func isInitialIdentifierChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentifierChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func (l *Lexer) scanIdentifier(start int) Token {
	for {
		c, ok := l.peekRune()
		if !ok || !isIdentifierChar(c) {
			break
		}

		l.pos++
	}

	text := string(l.runes[start:l.pos])

	if kind, ok := keywords[text]; ok {
		return l.emit(kind, start, text)
	}

	return l.emit(Ident, start, text)
}
