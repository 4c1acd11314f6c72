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
	"fmt"
	"strings"

	"github.com/consensys/go-corset/pkg/util/collection/hash"
)

// ============================================================================
// Formula node payloads
// ============================================================================

type booleanNode struct {
	value bool
}

type propositionNode struct {
	label Label
}

type atomNode struct {
	rel   string
	terms []Term
}

type unaryNode struct {
	op    UnaryOp
	child Formula
}

type binaryNode struct {
	op    BinaryOp
	left  Formula
	right Formula
}

type quantifierNode struct {
	kind   QuantifierKind
	vars   []string
	matrix Formula
}

// ============================================================================
// Term node payloads
// ============================================================================

// Number is a simple rational constant, numerator over denominator.
type Number struct {
	Num int64
	Den int64
}

// IntNumber constructs an integer-valued Number.
func IntNumber(n int64) Number {
	return Number{n, 1}
}

// String renders the number in decimal (integers) or `<num>/<den>` form.
func (n Number) String() string {
	if n.Den == 1 {
		return fmt.Sprintf("%d", n.Num)
	}

	return fmt.Sprintf("%d/%d", n.Num, n.Den)
}

type constantNode struct {
	value Number
}

type variableNode struct {
	label string
}

type applicationNode struct {
	fn   string
	args []Term
}

type nextNode struct {
	operand Term
}

type wnextNode struct {
	operand Term
}

// ============================================================================
// Structural fingerprint keys used by the interning tables.  Each key
// collapses a node's shape into a byte signature and defers to
// hash.BytesKey for hashing -- grounded on the teacher's own BytesKey/Array
// hashing combinators in pkg/util/collection/hash.
// ============================================================================

type sigKey struct {
	sig string
}

func (k sigKey) Equals(other sigKey) bool {
	return k.sig == other.sig
}

func (k sigKey) Hash() uint64 {
	return hash.NewBytesKey([]byte(k.sig)).Hash()
}

var _ hash.Hasher[sigKey] = sigKey{}

func booleanSig(value bool) sigKey {
	if value {
		return sigKey{"T"}
	}

	return sigKey{"F"}
}

func propositionSig(label Label) sigKey {
	return sigKey{"p:" + label.String() + fmt.Sprintf("#%x", label.Hash())}
}

func atomSig(rel string, terms []Term) sigKey {
	var b strings.Builder

	b.WriteString("a:")
	b.WriteString(rel)

	for _, t := range terms {
		fmt.Fprintf(&b, "|%d", t.UniqueID())
	}

	return sigKey{b.String()}
}

func unarySig(op UnaryOp, child Formula) sigKey {
	return sigKey{fmt.Sprintf("u:%d:%d", op, child.UniqueID())}
}

func binarySig(op BinaryOp, left, right Formula) sigKey {
	return sigKey{fmt.Sprintf("b:%d:%d:%d", op, left.UniqueID(), right.UniqueID())}
}

func quantifierSig(kind QuantifierKind, vars []string, matrix Formula) sigKey {
	return sigKey{fmt.Sprintf("q:%d:%s:%d", kind, strings.Join(vars, ","), matrix.UniqueID())}
}

func constantSig(value Number) sigKey {
	return sigKey{fmt.Sprintf("c:%d/%d", value.Num, value.Den)}
}

func variableSig(label string) sigKey {
	return sigKey{"v:" + label}
}

func applicationSig(fn string, args []Term) sigKey {
	var b strings.Builder

	b.WriteString("f:")
	b.WriteString(fn)

	for _, a := range args {
		fmt.Fprintf(&b, "|%d", a.UniqueID())
	}

	return sigKey{b.String()}
}

func nextSig(operand Term) sigKey {
	return sigKey{fmt.Sprintf("n:%d", operand.UniqueID())}
}

func wnextSig(operand Term) sigKey {
	return sigKey{fmt.Sprintf("w:%d", operand.UniqueID())}
}
