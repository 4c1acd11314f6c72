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

package sat

import (
	"fmt"

	"github.com/google/uuid"
)

// Factory constructs a fresh Backend instance by name.
type Factory func() Backend

// session records the identity of one live backend instance, so that
// multiple solver runs sharing a process (e.g. a batch of --formula
// invocations) can be told apart in shared log aggregation.
type session struct {
	id      uuid.UUID
	backend Backend
}

// Registry is the sole mutable state this module keeps outside of explicit
// caller-owned values: an explicit, instantiated map from backend name to
// constructor, never a package-level global populated by an init().
// Callers construct one with NewRegistry and pass it explicitly into
// pkg/cmd and pkg/solver.
type Registry struct {
	factories map[string]Factory
	sessions  []session
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register installs a named backend constructor, overwriting any previous
// registration under the same name.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// Names returns the currently registered backend names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	return names
}

// New constructs a fresh backend instance for the given name, tagging it
// with a new session identifier, and returns that identifier alongside the
// backend for use in log correlation.
func (r *Registry) New(name string) (Backend, uuid.UUID, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, uuid.UUID{}, fmt.Errorf("sat: unknown backend %q", name)
	}

	backend := factory()
	id := uuid.New()
	r.sessions = append(r.sessions, session{id, backend})

	return backend, id, nil
}

// Sessions returns the number of backend instances this registry has
// constructed over its lifetime.
func (r *Registry) Sessions() int {
	return len(r.sessions)
}
