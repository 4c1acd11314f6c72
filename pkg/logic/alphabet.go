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

import "github.com/consensys/go-corset/pkg/util/collection/hash"

// Alphabet is a process-local hash-consing arena.  It owns every formula and
// term node reachable from the handles it hands out; dropping an alphabet
// (letting it become unreachable) invalidates every outstanding Formula and
// Term handle created from it -- handles must not outlive their alphabet.
//
// An Alphabet is not safe for concurrent mutation: intern operations require
// exclusive access, exactly as the teacher's own hash.Map is unsynchronised.
type Alphabet struct {
	booleans  []booleanNode
	boolIndex hash.Map[sigKey, uint32]

	propositions []propositionNode
	propIndex    hash.Map[sigKey, uint32]

	atoms     []atomNode
	atomIndex hash.Map[sigKey, uint32]

	unaries     []unaryNode
	unaryIndex  hash.Map[sigKey, uint32]
	binaries    []binaryNode
	binaryIndex hash.Map[sigKey, uint32]

	quantifiers     []quantifierNode
	quantifierIndex hash.Map[sigKey, uint32]

	constants     []constantNode
	constantIndex hash.Map[sigKey, uint32]

	variables    []variableNode
	variableIndex hash.Map[sigKey, uint32]

	applications     []applicationNode
	applicationIndex hash.Map[sigKey, uint32]

	nexts     []nextNode
	nextIndex hash.Map[sigKey, uint32]

	wnexts     []wnextNode
	wnextIndex hash.Map[sigKey, uint32]
}

// NewAlphabet constructs a fresh, empty hash-consing arena.
func NewAlphabet() *Alphabet {
	return &Alphabet{
		boolIndex:        *hash.NewMap[sigKey, uint32](0),
		propIndex:        *hash.NewMap[sigKey, uint32](64),
		atomIndex:        *hash.NewMap[sigKey, uint32](0),
		unaryIndex:       *hash.NewMap[sigKey, uint32](64),
		binaryIndex:      *hash.NewMap[sigKey, uint32](64),
		quantifierIndex:  *hash.NewMap[sigKey, uint32](0),
		constantIndex:    *hash.NewMap[sigKey, uint32](0),
		variableIndex:    *hash.NewMap[sigKey, uint32](0),
		applicationIndex: *hash.NewMap[sigKey, uint32](0),
		nextIndex:        *hash.NewMap[sigKey, uint32](0),
		wnextIndex:       *hash.NewMap[sigKey, uint32](0),
	}
}

// Boolean interns the constant ⊤ (true) or ⊥ (false).
func (a *Alphabet) Boolean(value bool) Formula {
	key := booleanSig(value)
	if idx, ok := a.boolIndex.Get(key); ok {
		return Formula{a, KindBoolean, idx}
	}

	idx := uint32(len(a.booleans))
	a.booleans = append(a.booleans, booleanNode{value})
	a.boolIndex.Insert(key, idx)

	return Formula{a, KindBoolean, idx}
}

// Proposition interns an atomic proposition with the given label.  Two calls
// with equal labels return the same node.
func (a *Alphabet) Proposition(label Label) Formula {
	key := propositionSig(label)
	if idx, ok := a.propIndex.Get(key); ok {
		return Formula{a, KindProposition, idx}
	}

	idx := uint32(len(a.propositions))
	a.propositions = append(a.propositions, propositionNode{label})
	a.propIndex.Insert(key, idx)

	return Formula{a, KindProposition, idx}
}

// Prop is a convenience wrapper around Proposition for a plain named
// proposition (the common case outside of timed_var construction).
func (a *Alphabet) Prop(name string) Formula {
	return a.Proposition(NameLabel(name))
}

// Atom interns a first-order atom: a relation symbol applied to terms.
func (a *Alphabet) Atom(rel string, terms ...Term) Formula {
	key := atomSig(rel, terms)
	if idx, ok := a.atomIndex.Get(key); ok {
		return Formula{a, KindAtom, idx}
	}

	idx := uint32(len(a.atoms))
	a.atoms = append(a.atoms, atomNode{rel, terms})
	a.atomIndex.Insert(key, idx)

	return Formula{a, KindAtom, idx}
}

// Unary interns a unary-operator formula node.
func (a *Alphabet) Unary(op UnaryOp, child Formula) Formula {
	key := unarySig(op, child)
	if idx, ok := a.unaryIndex.Get(key); ok {
		return Formula{a, KindUnary, idx}
	}

	idx := uint32(len(a.unaries))
	a.unaries = append(a.unaries, unaryNode{op, child})
	a.unaryIndex.Insert(key, idx)

	return Formula{a, KindUnary, idx}
}

// Binary interns a binary-operator formula node.
func (a *Alphabet) Binary(op BinaryOp, left, right Formula) Formula {
	key := binarySig(op, left, right)
	if idx, ok := a.binaryIndex.Get(key); ok {
		return Formula{a, KindBinary, idx}
	}

	idx := uint32(len(a.binaries))
	a.binaries = append(a.binaries, binaryNode{op, left, right})
	a.binaryIndex.Insert(key, idx)

	return Formula{a, KindBinary, idx}
}

// Quantifier interns a quantified formula node.
func (a *Alphabet) Quantifier(kind QuantifierKind, vars []string, matrix Formula) Formula {
	key := quantifierSig(kind, vars, matrix)
	if idx, ok := a.quantifierIndex.Get(key); ok {
		return Formula{a, KindQuantifier, idx}
	}

	idx := uint32(len(a.quantifiers))
	a.quantifiers = append(a.quantifiers, quantifierNode{kind, vars, matrix})
	a.quantifierIndex.Insert(key, idx)

	return Formula{a, KindQuantifier, idx}
}

// TimedVar interns the proposition timed_var(f, k): the bridge between a
// temporal subformula and the ground propositional variable representing it
// at bound k.
func (a *Alphabet) TimedVar(f Formula, k uint) Formula {
	return a.Proposition(TimedLabel(f, k))
}

// ----------------------------------------------------------------------
// Term interning
// ----------------------------------------------------------------------

// Constant interns a numeric term constant.
func (a *Alphabet) Constant(value Number) Term {
	key := constantSig(value)
	if idx, ok := a.constantIndex.Get(key); ok {
		return Term{a, TermConstant, idx}
	}

	idx := uint32(len(a.constants))
	a.constants = append(a.constants, constantNode{value})
	a.constantIndex.Insert(key, idx)

	return Term{a, TermConstant, idx}
}

// Variable interns a first-order variable term.
func (a *Alphabet) Variable(label string) Term {
	key := variableSig(label)
	if idx, ok := a.variableIndex.Get(key); ok {
		return Term{a, TermVariable, idx}
	}

	idx := uint32(len(a.variables))
	a.variables = append(a.variables, variableNode{label})
	a.variableIndex.Insert(key, idx)

	return Term{a, TermVariable, idx}
}

// Application interns a function-application term.
func (a *Alphabet) Application(fn string, args ...Term) Term {
	key := applicationSig(fn, args)
	if idx, ok := a.applicationIndex.Get(key); ok {
		return Term{a, TermApplication, idx}
	}

	idx := uint32(len(a.applications))
	a.applications = append(a.applications, applicationNode{fn, args})
	a.applicationIndex.Insert(key, idx)

	return Term{a, TermApplication, idx}
}

// Next interns the first-order next(t) term.
func (a *Alphabet) Next(t Term) Term {
	key := nextSig(t)
	if idx, ok := a.nextIndex.Get(key); ok {
		return Term{a, TermNext, idx}
	}

	idx := uint32(len(a.nexts))
	a.nexts = append(a.nexts, nextNode{t})
	a.nextIndex.Insert(key, idx)

	return Term{a, TermNext, idx}
}

// WNext interns the first-order wnext(t) term.
func (a *Alphabet) WNext(t Term) Term {
	key := wnextSig(t)
	if idx, ok := a.wnextIndex.Get(key); ok {
		return Term{a, TermWNext, idx}
	}

	idx := uint32(len(a.wnexts))
	a.wnexts = append(a.wnexts, wnextNode{t})
	a.wnextIndex.Insert(key, idx)

	return Term{a, TermWNext, idx}
}

// ----------------------------------------------------------------------
// Formula node accessors
// ----------------------------------------------------------------------

// BooleanValue returns the constant value of a KindBoolean formula.
func (f Formula) BooleanValue() bool {
	return f.alphabet.booleans[f.index].value
}

// Label returns the label of a KindProposition formula.
func (f Formula) Label() Label {
	return f.alphabet.propositions[f.index].label
}

// Relation returns the relation symbol of a KindAtom formula.
func (f Formula) Relation() string {
	return f.alphabet.atoms[f.index].rel
}

// Terms returns the argument terms of a KindAtom formula.
func (f Formula) Terms() []Term {
	return f.alphabet.atoms[f.index].terms
}

// UnaryOp returns the operator of a KindUnary formula.
func (f Formula) UnaryOp() UnaryOp {
	return f.alphabet.unaries[f.index].op
}

// Operand returns the child of a KindUnary formula.
func (f Formula) Operand() Formula {
	return f.alphabet.unaries[f.index].child
}

// BinaryOp returns the operator of a KindBinary formula.
func (f Formula) BinaryOp() BinaryOp {
	return f.alphabet.binaries[f.index].op
}

// Left returns the left operand of a KindBinary formula.
func (f Formula) Left() Formula {
	return f.alphabet.binaries[f.index].left
}

// Right returns the right operand of a KindBinary formula.
func (f Formula) Right() Formula {
	return f.alphabet.binaries[f.index].right
}

// QuantifierKind returns the kind of a KindQuantifier formula.
func (f Formula) QuantifierKind() QuantifierKind {
	return f.alphabet.quantifiers[f.index].kind
}

// Vars returns the bound variables of a KindQuantifier formula.
func (f Formula) Vars() []string {
	return f.alphabet.quantifiers[f.index].vars
}

// Matrix returns the body of a KindQuantifier formula.
func (f Formula) Matrix() Formula {
	return f.alphabet.quantifiers[f.index].matrix
}

// ----------------------------------------------------------------------
// Term node accessors
// ----------------------------------------------------------------------

// Value returns the numeric value of a TermConstant term.
func (t Term) Value() Number {
	return t.alphabet.constants[t.index].value
}

// VarLabel returns the name of a TermVariable term.
func (t Term) VarLabel() string {
	return t.alphabet.variables[t.index].label
}

// Function returns the function symbol of a TermApplication term.
func (t Term) Function() string {
	return t.alphabet.applications[t.index].fn
}

// Args returns the arguments of a TermApplication term.
func (t Term) Args() []Term {
	return t.alphabet.applications[t.index].args
}

// NextOperand returns the operand of a TermNext term.
func (t Term) NextOperand() Term {
	return t.alphabet.nexts[t.index].operand
}

// WNextOperand returns the operand of a TermWNext term.
func (t Term) WNextOperand() Term {
	return t.alphabet.wnexts[t.index].operand
}
