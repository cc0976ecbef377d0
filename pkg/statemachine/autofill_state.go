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

// AutofillState is the lifecycle of a single autofill preview or apply call.
type AutofillState string

const (
	AutofillIdle       AutofillState = "IDLE"
	AutofillPreviewing AutofillState = "PREVIEWING"
	AutofillRejected   AutofillState = "REJECTED"
	AutofillDiffReady  AutofillState = "DIFF_READY"
	AutofillApplying   AutofillState = "APPLYING"
	AutofillCommitted  AutofillState = "COMMITTED"
	AutofillRolledBack AutofillState = "ROLLED_BACK"
)

const (
	EventPreview   Event = "preview"
	EventReject    Event = "reject"
	EventDiffReady Event = "diff_ready"
	EventDone      Event = "done"
	EventApply     Event = "apply"
	EventCommit    Event = "commit"
	EventRollback  Event = "rollback"
)

// IsTerminal reports whether no further transition is expected.
func (s AutofillState) IsTerminal() bool {
	switch s {
	case AutofillRejected, AutofillCommitted, AutofillRolledBack:
		return true
	}
	return false
}

// NewAutofillStateMachine builds
// IDLE → PREVIEWING → (REJECTED | DIFF_READY) → (IDLE | APPLYING → COMMITTED | ROLLED_BACK).
func NewAutofillStateMachine() *StateMachine[AutofillState] {
	sm := NewWithState(AutofillIdle)
	sm.On(AutofillIdle, EventPreview, AutofillPreviewing).
		On(AutofillPreviewing, EventReject, AutofillRejected).
		On(AutofillPreviewing, EventDiffReady, AutofillDiffReady).
		On(AutofillDiffReady, EventDone, AutofillIdle).
		On(AutofillDiffReady, EventApply, AutofillApplying).
		On(AutofillApplying, EventCommit, AutofillCommitted).
		On(AutofillApplying, EventRollback, AutofillRolledBack)
	return sm
}
