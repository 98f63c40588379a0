package orchestration

import (
	"fmt"
	"sync/atomic"
)

// SessionState is the lifecycle state of a listening session. Exactly one
// state is active per session at any instant.
type SessionState int32

const (
	StateIdle SessionState = iota
	StateListening
	StateProcessingResult
	StateCompleted
	StateCancelled
	StateFailed
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateProcessingResult:
		return "processing_result"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// legalTransitions is the fixed transition table. The terminal states lead
// back to listening only, which is how a continuous restart reuses a machine
// that was reset to a fresh session.
var legalTransitions = map[SessionState][]SessionState{
	StateIdle:             {StateListening},
	StateListening:        {StateProcessingResult, StateCancelled, StateFailed},
	StateProcessingResult: {StateCompleted, StateFailed},
	StateCompleted:        {StateListening},
	StateCancelled:        {StateListening},
	StateFailed:           {StateListening},
}

// InvalidTransitionError reports a transition outside the legal table. It is
// a programming-logic fault, never a retryable condition.
type InvalidTransitionError struct {
	From SessionState
	To   SessionState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid session state transition from %s to %s", e.From, e.To)
}

// sessionStateMachine validates and applies lifecycle transitions with
// compare-and-swap so that racing control and callback goroutines never
// record conflicting states.
type sessionStateMachine struct {
	state atomic.Int32
}

func newSessionStateMachine() *sessionStateMachine {
	return &sessionStateMachine{}
}

func (m *sessionStateMachine) currentState() SessionState {
	return SessionState(m.state.Load())
}

func (m *sessionStateMachine) canTransitionTo(next SessionState) bool {
	return transitionAllowed(m.currentState(), next)
}

// transitionTo applies the transition against the state held at read time.
// A CAS conflict means another goroutine recorded a transition concurrently;
// the same request is retried against the new state, and only a transition
// outside the table fails.
func (m *sessionStateMachine) transitionTo(next SessionState) error {
	for {
		current := m.currentState()
		if !transitionAllowed(current, next) {
			return &InvalidTransitionError{From: current, To: next}
		}
		if m.state.CompareAndSwap(int32(current), int32(next)) {
			return nil
		}
	}
}

// reset forces the machine back to idle regardless of the table. Recovery
// and test use only.
func (m *sessionStateMachine) reset() {
	m.state.Store(int32(StateIdle))
}

func transitionAllowed(from, to SessionState) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
