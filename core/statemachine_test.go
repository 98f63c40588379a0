package orchestration

import (
	"errors"
	"sync"
	"testing"
)

var allStates = []SessionState{
	StateIdle, StateListening, StateProcessingResult,
	StateCompleted, StateCancelled, StateFailed,
}

func TestTransitionTableIsEnforcedForEveryPair(t *testing.T) {
	for _, from := range allStates {
		for _, to := range allStates {
			machine := newSessionStateMachine()
			machine.state.Store(int32(from))

			err := machine.transitionTo(to)

			if transitionAllowed(from, to) {
				if err != nil {
					t.Fatalf("expected %s -> %s to be legal, got %v", from, to, err)
				}
				if got := machine.currentState(); got != to {
					t.Fatalf("expected state %s after transition, got %s", to, got)
				}
				continue
			}

			if err == nil {
				t.Fatalf("expected %s -> %s to be rejected", from, to)
			}
			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected an InvalidTransitionError, got %v", err)
			}
			if invalid.From != from || invalid.To != to {
				t.Fatalf("expected offending pair (%s, %s), got (%s, %s)", from, to, invalid.From, invalid.To)
			}
			if got := machine.currentState(); got != from {
				t.Fatalf("expected state to stay %s after rejected transition, got %s", from, got)
			}
		}
	}
}

func TestCanTransitionToMatchesTable(t *testing.T) {
	machine := newSessionStateMachine()

	if !machine.canTransitionTo(StateListening) {
		t.Fatalf("expected idle -> listening to be legal")
	}
	if machine.canTransitionTo(StateCompleted) {
		t.Fatalf("expected idle -> completed to be illegal")
	}
}

func TestConcurrentTransitionsRecordExactlyOneState(t *testing.T) {
	machine := newSessionStateMachine()
	if err := machine.transitionTo(StateListening); err != nil {
		t.Fatalf("expected idle -> listening to succeed, got %v", err)
	}

	// Racing goroutines all request the transition already known to be
	// intended; a CAS conflict retries rather than failing.
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = machine.transitionTo(StateProcessingResult)
		}()
	}
	wg.Wait()

	if got := machine.currentState(); got != StateProcessingResult {
		t.Fatalf("expected processing_result after concurrent transitions, got %s", got)
	}
}

func TestResetForcesIdle(t *testing.T) {
	machine := newSessionStateMachine()
	if err := machine.transitionTo(StateListening); err != nil {
		t.Fatalf("expected idle -> listening to succeed, got %v", err)
	}
	if err := machine.transitionTo(StateFailed); err != nil {
		t.Fatalf("expected listening -> failed to succeed, got %v", err)
	}

	machine.reset()

	if got := machine.currentState(); got != StateIdle {
		t.Fatalf("expected idle after reset, got %s", got)
	}
}
