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

// Package dimacs implements sat.Backend as a pass-through writer: it
// Tseitin-encodes whatever propositional formulas are asserted into CNF and
// renders them as DIMACS text, rather than invoking any solver. Bundling an
// actual SAT engine is explicitly out of scope.
package dimacs

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/consensys/go-corset/pkg/logic"
	"github.com/consensys/go-corset/pkg/sat"
)

// CNF is a Tseitin-encoded conjunctive normal form formula: DIMACS variables
// are 1-based, and a negative literal denotes negation of that variable.
type CNF struct {
	NumVars int
	Clauses [][]int
}

// Encode Tseitin-encodes the conjunction of formulas into CNF.  Each
// assertion contributes one unit clause pinning its top-level Tseitin
// variable to true.
func Encode(formulas []logic.Formula) *CNF {
	enc := &tseitin{next: 1, varOf: make(map[uint64]int)}

	for _, f := range formulas {
		lit := enc.visit(f)
		enc.clauses = append(enc.clauses, []int{lit})
	}

	return &CNF{NumVars: enc.next - 1, Clauses: enc.clauses}
}

type tseitin struct {
	next    int
	varOf   map[uint64]int
	clauses [][]int
}

func (t *tseitin) freshVar() int {
	v := t.next
	t.next++

	return v
}

func (t *tseitin) visit(f logic.Formula) int {
	switch f.Kind() {
	case logic.KindBoolean:
		v := t.freshVar()
		if f.BooleanValue() {
			t.clauses = append(t.clauses, []int{v})
		} else {
			t.clauses = append(t.clauses, []int{-v})
		}

		return v
	case logic.KindProposition, logic.KindAtom:
		if v, ok := t.varOf[f.UniqueID()]; ok {
			return v
		}

		v := t.freshVar()
		t.varOf[f.UniqueID()] = v

		return v
	case logic.KindUnary:
		if f.UnaryOp() != logic.Not {
			panic("dimacs: only negation is supported among unary operators")
		}
		// Negation needs no fresh Tseitin variable: a negative literal
		// already denotes it.
		return -t.visit(f.Operand())
	case logic.KindBinary:
		return t.visitBinary(f)
	default:
		panic("dimacs: backend only accepts the ground propositional fragment")
	}
}

func (t *tseitin) visitBinary(f logic.Formula) int {
	l := t.visit(f.Left())
	r := t.visit(f.Right())
	v := t.freshVar()

	switch f.BinaryOp() {
	case logic.And:
		t.clauses = append(t.clauses, []int{-v, l}, []int{-v, r}, []int{v, -l, -r})
	case logic.Or:
		t.clauses = append(t.clauses, []int{-v, l, r}, []int{v, -l}, []int{v, -r})
	case logic.Implies:
		t.clauses = append(t.clauses, []int{-v, -l, r}, []int{v, l}, []int{v, -r})
	case logic.Iff:
		t.clauses = append(t.clauses,
			[]int{-v, -l, r}, []int{-v, l, -r}, []int{v, l, r}, []int{v, -l, -r})
	default:
		panic("dimacs: backend only accepts the ground propositional fragment")
	}

	return v
}

// Write renders cnf as DIMACS CNF text.
func Write(w io.Writer, cnf *CNF) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", cnf.NumVars, len(cnf.Clauses)); err != nil {
		return err
	}

	for _, clause := range cnf.Clauses {
		parts := make([]string, 0, len(clause)+1)
		for _, lit := range clause {
			parts = append(parts, strconv.Itoa(lit))
		}

		parts = append(parts, "0")

		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return err
		}
	}

	return nil
}

// Backend is a sat.Backend that writes DIMACS text instead of solving: its
// Solve always returns sat.Unknown, having rendered the current assertion
// set to its writer as a side effect.
type Backend struct {
	w          io.Writer
	assertions []logic.Formula
	marks      []int
}

// New constructs a dimacs backend writing to w.
func New(w io.Writer) sat.Backend {
	return &Backend{w: w}
}

// Features reports this backend's (lack of) capabilities.
func (b *Backend) Features() sat.Features {
	return sat.Features{Incremental: false, Name: "dimacs"}
}

// License identifies this backend as original, unencumbered code.
func (b *Backend) License() (string, bool) {
	return "Apache-2.0", false
}

// Assert records f for the next Solve call.
func (b *Backend) Assert(f logic.Formula) {
	b.assertions = append(b.assertions, f)
}

// Push saves a restore point.
func (b *Backend) Push() {
	b.marks = append(b.marks, len(b.assertions))
}

// Pop rewinds to the most recent Push.
func (b *Backend) Pop() {
	if len(b.marks) == 0 {
		return
	}

	n := len(b.marks) - 1
	mark := b.marks[n]
	b.marks = b.marks[:n]
	b.assertions = b.assertions[:mark]
}

// Clear discards every assertion and restore point.
func (b *Backend) Clear() {
	b.assertions = nil
	b.marks = nil
}

// Solve renders the current assertion set as DIMACS CNF text to the
// backend's writer and reports Unknown: no solving is actually performed.
func (b *Backend) Solve() (sat.Verdict, error) {
	cnf := Encode(b.assertions)
	if err := Write(b.w, cnf); err != nil {
		return sat.Unknown, err
	}

	return sat.Unknown, nil
}

// Value always reports Undef: this backend never computes a model.
func (b *Backend) Value(logic.Formula) sat.TriBool {
	return sat.Undef
}
