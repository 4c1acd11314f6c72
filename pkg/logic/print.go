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
)

// String renders a formula in the module's own concrete syntax.  Printing
// and re-parsing a formula must reproduce a structurally identical formula
// up to the associativity of ∧/∨ (Testable Property 4, Round-trip).
func (f Formula) String() string {
	return formulaDebugString(f)
}

func formulaDebugString(f Formula) string {
	if !f.IsValid() {
		return "<invalid>"
	}

	switch f.Kind() {
	case KindBoolean:
		if f.BooleanValue() {
			return "True"
		}

		return "False"
	case KindProposition:
		return f.Label().String()
	case KindAtom:
		args := make([]string, len(f.Terms()))
		for i, t := range f.Terms() {
			args[i] = t.String()
		}

		return fmt.Sprintf("%s(%s)", f.Relation(), strings.Join(args, ", "))
	case KindUnary:
		return fmt.Sprintf("%s(%s)", f.UnaryOp(), parenthesise(f.Operand()))
	case KindBinary:
		return fmt.Sprintf("(%s %s %s)", parenthesise(f.Left()), f.BinaryOp(), parenthesise(f.Right()))
	case KindQuantifier:
		return fmt.Sprintf("%s %s . %s", f.QuantifierKind(), strings.Join(f.Vars(), " "), parenthesise(f.Matrix()))
	default:
		return "<?formula?>"
	}
}

func parenthesise(f Formula) string {
	return formulaDebugString(f)
}

// String renders a term in the module's own concrete syntax.
func (t Term) String() string {
	if !t.IsValid() {
		return "<invalid>"
	}

	switch t.Kind() {
	case TermConstant:
		return t.Value().String()
	case TermVariable:
		return t.VarLabel()
	case TermApplication:
		args := make([]string, len(t.Args()))
		for i, a := range t.Args() {
			args[i] = a.String()
		}

		if len(args) == 0 {
			return t.Function()
		}

		return fmt.Sprintf("%s(%s)", t.Function(), strings.Join(args, ", "))
	case TermNext:
		return fmt.Sprintf("next(%s)", t.NextOperand())
	case TermWNext:
		return fmt.Sprintf("wnext(%s)", t.WNextOperand())
	default:
		return "<?term?>"
	}
}
