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

// Package parser implements the Pratt-style precedence-climbing parser for
// LTL/LTL+Past formulas and first-order terms (spec.md §4.D).
package parser

// FeatureFlags accumulates, as tokens are consumed, which fragments of the
// input language were actually used.  The solver consults these to select
// an appropriate backend and to reject unsupported combinations.
type FeatureFlags uint8

// Individual feature bits.
const (
	FirstOrder FeatureFlags = 1 << iota
	NextVar
	Quantifiers
	Temporal
	Past
)

// Has reports whether a given flag is set.
func (f FeatureFlags) Has(bit FeatureFlags) bool {
	return f&bit != 0
}

func (f *FeatureFlags) set(bit FeatureFlags) {
	*f |= bit
}
