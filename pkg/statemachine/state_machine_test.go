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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderStatus string

const (
	orderCreated   orderStatus = "CREATED"
	orderPaid      orderStatus = "PAID"
	orderShipped   orderStatus = "SHIPPED"
	orderDelivered orderStatus = "DELIVERED"
	orderCanceled  orderStatus = "CANCELED"
)

func newOrderMachine() *StateMachine[orderStatus] {
	sm := NewWithState(orderCreated)
	sm.Allow(orderCreated, orderPaid, orderCanceled).
		Allow(orderPaid, orderShipped, orderCanceled).
		Allow(orderShipped, orderDelivered)
	return sm
}

func TestStateMachine_Basic(t *testing.T) {
	sm := newOrderMachine()
	assert.Equal(t, orderCreated, sm.Current())

	require.NoError(t, sm.TransitionTo(orderPaid))
	assert.True(t, sm.Is(orderPaid))
	assert.True(t, sm.CanTransitionTo(orderShipped))
	assert.False(t, sm.CanTransitionTo(orderDelivered))

	err := sm.TransitionTo(orderDelivered)
	require.Error(t, err)
	assert.Equal(t, orderPaid, sm.Current())

	history := sm.History()
	require.Len(t, history, 2)
	assert.NoError(t, history[0].Error)
	assert.Error(t, history[1].Error)
	assert.Equal(t, []orderStatus{orderCreated, orderPaid}, sm.Path())
}

func TestStateMachine_HooksAndValidators(t *testing.T) {
	sm := newOrderMachine()
	var entered []orderStatus
	sm.OnEnter(orderPaid, func(s orderStatus) error {
		entered = append(entered, s)
		return nil
	})
	sm.AddValidator(func(from, to orderStatus, _ Event) error {
		if to == orderCanceled && from == orderPaid {
			return errors.New("paid orders cannot be canceled")
		}
		return nil
	})

	require.NoError(t, sm.TransitionTo(orderPaid))
	assert.Equal(t, []orderStatus{orderPaid}, entered)

	assert.Error(t, sm.TransitionTo(orderCanceled))
	assert.Equal(t, orderPaid, sm.Current())

	hookErr := errors.New("hook")
	sm.OnTransition(func(from, to orderStatus, _ Event) error { return hookErr })
	err := sm.TransitionTo(orderShipped)
	assert.ErrorIs(t, err, hookErr)
	assert.Equal(t, orderPaid, sm.Current())

	sm.Reset()
	assert.Equal(t, orderCreated, sm.Current())
	assert.Empty(t, sm.History())
}

func TestAutofillStateMachine_Paths(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   AutofillState
	}{
		{"preview only", []Event{EventPreview, EventDiffReady, EventDone}, AutofillIdle},
		{"rejected", []Event{EventPreview, EventReject}, AutofillRejected},
		{"committed", []Event{EventPreview, EventDiffReady, EventApply, EventCommit}, AutofillCommitted},
		{"rolled back", []Event{EventPreview, EventDiffReady, EventApply, EventRollback}, AutofillRolledBack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewAutofillStateMachine()
			for _, ev := range tt.events {
				require.NoError(t, sm.Fire(ev))
			}
			assert.Equal(t, tt.want, sm.Current())
		})
	}
}

func TestAutofillStateMachine_IllegalEvents(t *testing.T) {
	sm := NewAutofillStateMachine()
	assert.Error(t, sm.Fire(EventApply))
	assert.Error(t, sm.Fire(EventCommit))

	require.NoError(t, sm.Fire(EventPreview))
	require.NoError(t, sm.Fire(EventReject))
	assert.True(t, sm.Current().IsTerminal())
	assert.Error(t, sm.Fire(EventApply))
}

func TestStateMachine_ToDot(t *testing.T) {
	dot := NewAutofillStateMachine().ToDot("autofill")
	assert.Contains(t, dot, `"IDLE" -> "PREVIEWING" [label="preview"];`)
	assert.Contains(t, dot, `start -> "IDLE";`)
	assert.Equal(t, dot, NewAutofillStateMachine().ToDot("autofill"))
}
