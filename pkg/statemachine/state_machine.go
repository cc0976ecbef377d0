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

package statemachine

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

// Event names a trigger for a state transition.
type Event string

// TransitionHook runs during a transition; an error aborts it.
type TransitionHook[T comparable] func(from, to T, event Event) error

// StateHook runs after a state is entered.
type StateHook[T comparable] func(state T) error

// TransitionValidator may veto a transition.
type TransitionValidator[T comparable] func(from, to T, event Event) error

type TransitionRecord[T comparable] struct {
	From      T
	To        T
	Event     Event
	Timestamp time.Time
	Error     error
}

// StateMachine is a small generic FSM with event triggers, hooks and a
// bounded transition history. It is safe for concurrent use.
type StateMachine[T comparable] struct {
	mu sync.RWMutex

	current T
	initial T

	valid  map[T][]T
	events map[transitionKey[T]]T

	history        []TransitionRecord[T]
	maxHistorySize int

	onTransition []TransitionHook[T]
	onEnter      map[T][]StateHook[T]
	validators   []TransitionValidator[T]
}

type transitionKey[T comparable] struct {
	From  T
	Event Event
}

func NewWithState[T comparable](initial T) *StateMachine[T] {
	return &StateMachine[T]{
		current:        initial,
		initial:        initial,
		valid:          make(map[T][]T),
		events:         make(map[transitionKey[T]]T),
		onEnter:        make(map[T][]StateHook[T]),
		maxHistorySize: 100,
	}
}

// Allow registers from -> to for each target.
func (sm *StateMachine[T]) Allow(from T, to ...T) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for _, target := range to {
		if !slices.Contains(sm.valid[from], target) {
			sm.valid[from] = append(sm.valid[from], target)
		}
	}
	return sm
}

// On binds event in state from to the target state.
func (sm *StateMachine[T]) On(from T, event Event, to T) *StateMachine[T] {
	sm.mu.Lock()
	sm.events[transitionKey[T]{From: from, Event: event}] = to
	sm.mu.Unlock()
	return sm.Allow(from, to)
}

func (sm *StateMachine[T]) OnTransition(h TransitionHook[T]) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.onTransition = append(sm.onTransition, h)
	return sm
}

func (sm *StateMachine[T]) OnEnter(state T, h StateHook[T]) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.onEnter[state] = append(sm.onEnter[state], h)
	return sm
}

func (sm *StateMachine[T]) AddValidator(v TransitionValidator[T]) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.validators = append(sm.validators, v)
	return sm
}

func (sm *StateMachine[T]) Current() T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

func (sm *StateMachine[T]) Is(state T) bool {
	return sm.Current() == state
}

func (sm *StateMachine[T]) CanTransitionTo(to T) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return slices.Contains(sm.valid[sm.current], to)
}

// Reset returns to the initial state and clears history.
func (sm *StateMachine[T]) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.current = sm.initial
	sm.history = nil
}

func (sm *StateMachine[T]) History() []TransitionRecord[T] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return slices.Clone(sm.history)
}

// Path returns the visited states, starting with the initial one.
func (sm *StateMachine[T]) Path() []T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	path := []T{sm.initial}
	for _, rec := range sm.history {
		if rec.Error == nil {
			path = append(path, rec.To)
		}
	}
	return path
}

// TransitionTo moves from the current state to to.
func (sm *StateMachine[T]) TransitionTo(to T) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.transition(sm.current, to, "")
}

// Fire looks up the target for event in the current state and moves there.
func (sm *StateMachine[T]) Fire(event Event) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	to, ok := sm.events[transitionKey[T]{From: sm.current, Event: event}]
	if !ok {
		return fmt.Errorf("no transition defined for event %v in state %v", event, sm.current)
	}
	return sm.transition(sm.current, to, event)
}

// transition must be called with mu held.
func (sm *StateMachine[T]) transition(from, to T, event Event) (err error) {
	defer func() {
		sm.history = append(sm.history, TransitionRecord[T]{
			From: from, To: to, Event: event, Timestamp: time.Now(), Error: err,
		})
		if len(sm.history) > sm.maxHistorySize {
			sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
		}
	}()

	if !slices.Contains(sm.valid[from], to) {
		return fmt.Errorf("invalid transition: %v → %v", from, to)
	}
	for _, v := range sm.validators {
		if err := v(from, to, event); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	for _, h := range sm.onTransition {
		if err := h(from, to, event); err != nil {
			return fmt.Errorf("transition hook failed: %w", err)
		}
	}

	sm.current = to

	for _, h := range sm.onEnter[to] {
		if err := h(to); err != nil {
			return fmt.Errorf("enter hook failed for state %v: %w", to, err)
		}
	}
	return nil
}

// ToDot renders the transition graph in Graphviz DOT format.
func (sm *StateMachine[T]) ToDot(name string) string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	labels := make(map[[2]string][]string)
	for key, to := range sm.events {
		edge := [2]string{fmt.Sprint(key.From), fmt.Sprint(to)}
		labels[edge] = append(labels[edge], string(key.Event))
	}

	var lines []string
	for from, tos := range sm.valid {
		for _, to := range tos {
			edge := [2]string{fmt.Sprint(from), fmt.Sprint(to)}
			if l := labels[edge]; len(l) > 0 {
				sort.Strings(l)
				lines = append(lines, fmt.Sprintf("  %q -> %q [label=%q];", edge[0], edge[1], strings.Join(l, ", ")))
			} else {
				lines = append(lines, fmt.Sprintf("  %q -> %q;", edge[0], edge[1]))
			}
		}
	}
	sort.Strings(lines)

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n  rankdir=LR;\n  node [shape=circle];\n", name)
	fmt.Fprintf(&b, "  start [shape=point];\n  start -> %q;\n", fmt.Sprint(sm.initial))
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.String()
}
