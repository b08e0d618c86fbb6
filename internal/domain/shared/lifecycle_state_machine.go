package shared

import (
	"fmt"
	"sync"
	"time"
)

// LifecycleStatus represents the state of a long-running process
type LifecycleStatus string

const (
	LifecycleStatusPending LifecycleStatus = "PENDING"
	LifecycleStatusRunning LifecycleStatus = "RUNNING"
	LifecycleStatusFailed  LifecycleStatus = "FAILED"
	LifecycleStatusStopped LifecycleStatus = "STOPPED"
)

// LifecycleStateMachine tracks PENDING -> RUNNING -> STOPPED/FAILED for the
// production clock loop. A stopped loop may be started again.
// Status may be read while another goroutine drives the transitions.
type LifecycleStateMachine struct {
	mu        sync.RWMutex
	status    LifecycleStatus
	startedAt *time.Time
	stoppedAt *time.Time
	lastError error
	clock     Clock
}

// NewLifecycleStateMachine creates a machine in PENDING state
func NewLifecycleStateMachine(clock Clock) *LifecycleStateMachine {
	if clock == nil {
		clock = NewRealClock()
	}
	return &LifecycleStateMachine{status: LifecycleStatusPending, clock: clock}
}

func (sm *LifecycleStateMachine) Status() LifecycleStatus {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.status
}

func (sm *LifecycleStateMachine) LastError() error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.lastError
}

func (sm *LifecycleStateMachine) IsRunning() bool {
	return sm.Status() == LifecycleStatusRunning
}

// Start transitions from PENDING or STOPPED to RUNNING
func (sm *LifecycleStateMachine) Start() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.status != LifecycleStatusPending && sm.status != LifecycleStatusStopped {
		return fmt.Errorf("cannot start from %s state", sm.status)
	}
	now := sm.clock.Now()
	sm.status = LifecycleStatusRunning
	sm.startedAt = &now
	sm.stoppedAt = nil
	sm.lastError = nil
	return nil
}

// Fail records err and transitions a running machine to FAILED
func (sm *LifecycleStateMachine) Fail(err error) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.status != LifecycleStatusRunning {
		return fmt.Errorf("cannot fail from %s state", sm.status)
	}
	now := sm.clock.Now()
	sm.status = LifecycleStatusFailed
	sm.lastError = err
	sm.stoppedAt = &now
	return nil
}

// Stop transitions a running machine to STOPPED
func (sm *LifecycleStateMachine) Stop() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.status != LifecycleStatusRunning {
		return fmt.Errorf("cannot stop from %s state", sm.status)
	}
	now := sm.clock.Now()
	sm.status = LifecycleStatusStopped
	sm.stoppedAt = &now
	return nil
}

// Uptime returns how long the machine has been, or was, running
func (sm *LifecycleStateMachine) Uptime() time.Duration {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if sm.startedAt == nil {
		return 0
	}
	end := sm.clock.Now()
	if sm.stoppedAt != nil {
		end = *sm.stoppedAt
	}
	return end.Sub(*sm.startedAt)
}
