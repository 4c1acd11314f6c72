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

// Package closure implements the X-closure / x-requests collector of
// spec.md §4.F: an insertion-ordered, deduplicating collection of the
// "X ψ" (and "wX ψ") obligations a formula's XNF rewriting introduces.
package closure

import (
	"github.com/consensys/go-corset/pkg/logic"
	"github.com/consensys/go-corset/pkg/util/collection/hash"
)

type formulaKey struct {
	f logic.Formula
}

func (k formulaKey) Equals(other formulaKey) bool { return k.f.Equals(other.f) }
func (k formulaKey) Hash() uint64                 { return k.f.Hash() }

// Collector holds an insertion-ordered, deduplicating sequence of X/wX
// obligation formulas.  Iteration order is deterministic (insertion order)
// so that encodings built from it are byte-identical across runs on
// identical input (Testable Property 5).
type Collector struct {
	order []logic.Formula
	seen  hash.Map[formulaKey, struct{}]
}

// NewCollector constructs an empty collector.
func NewCollector() *Collector {
	return &Collector{seen: *hash.NewMap[formulaKey, struct{}](0)}
}

// Add appends an obligation formula if it has not been seen before.
func (c *Collector) Add(obligation logic.Formula) {
	key := formulaKey{obligation}
	if c.seen.ContainsKey(key) {
		return
	}

	c.seen.Insert(key, struct{}{})
	c.order = append(c.order, obligation)
}

// Contains reports whether a given obligation has already been recorded.
func (c *Collector) Contains(obligation logic.Formula) bool {
	return c.seen.ContainsKey(formulaKey{obligation})
}

// Items returns the obligations in insertion order.  The returned slice must
// not be mutated by the caller.
func (c *Collector) Items() []logic.Formula {
	return c.order
}

// Len returns the number of distinct obligations recorded.
func (c *Collector) Len() int {
	return len(c.order)
}

// Reset empties the collector for reuse across k-unraveling calls.
func (c *Collector) Reset() {
	c.order = nil
	c.seen = *hash.NewMap[formulaKey, struct{}](0)
}

// Clone returns an independent copy of this collector's current contents.
func (c *Collector) Clone() *Collector {
	clone := NewCollector()
	for _, f := range c.order {
		clone.Add(f)
	}

	return clone
}
