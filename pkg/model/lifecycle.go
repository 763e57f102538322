// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

// Lifecycle is the uniform entity state shared by templates and documents.
type Lifecycle string

const (
	LifecycleActive   Lifecycle = "active"
	LifecycleInactive Lifecycle = "inactive"
	LifecycleDeleted  Lifecycle = "deleted"
)

// IsValid reports whether the lifecycle holds one of the known states.
func (l Lifecycle) IsValid() bool {
	switch l {
	case LifecycleActive, LifecycleInactive, LifecycleDeleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the lifecycle may move to the target state.
// Deleted is terminal.
func (l Lifecycle) CanTransitionTo(target Lifecycle) bool {
	if !target.IsValid() || l == LifecycleDeleted {
		return false
	}

	return l != target
}
