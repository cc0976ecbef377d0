// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package shutdown tracks whether the process is draining so readiness
// probes can fail before the listener closes.
package shutdown

import (
	"sync"
	"sync/atomic"
)

type Manager struct {
	draining atomic.Bool
	once     sync.Once
	done     chan struct{}
}

func NewManager() *Manager {
	return &Manager{done: make(chan struct{})}
}

func (m *Manager) IsShuttingDown() bool {
	return m.draining.Load()
}

// Shutdown marks the process as draining. Only the first call returns true.
func (m *Manager) Shutdown() bool {
	first := false
	m.once.Do(func() {
		m.draining.Store(true)
		close(m.done)
		first = true
	})
	return first
}

// Done is closed once Shutdown has been called.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}
