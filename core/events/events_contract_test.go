package events

import "testing"

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "session started", event: NewSessionStarted("s-1"), expected: KindSessionStarted},
		{name: "partial result", event: NewPartialResult("s-1", "hel"), expected: KindPartialResult},
		{name: "final result", event: NewFinalResult("s-1", "hello"), expected: KindFinalResult},
		{name: "session completed", event: NewSessionCompleted("s-1", "hello"), expected: KindSessionCompleted},
		{name: "session cancelled", event: NewSessionCancelled("s-1"), expected: KindSessionCancelled},
		{name: "session error", event: NewSessionError("s-1", "busy", false, false), expected: KindSessionError},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
			if got := testCase.event.SessionID(); got != "s-1" {
				t.Fatalf("expected session id %q, got %q", "s-1", got)
			}
			if testCase.event.Timestamp().IsZero() {
				t.Fatalf("expected a non-zero timestamp")
			}
		})
	}
}

func TestSessionErrorCarriesClassification(t *testing.T) {
	event := NewSessionError("s-2", "insufficient permissions", false, true)

	if event.Message != "insufficient permissions" {
		t.Fatalf("expected message to carry through, got %q", event.Message)
	}
	if event.Recoverable {
		t.Fatalf("expected permission errors to be non-recoverable")
	}
	if !event.Permission {
		t.Fatalf("expected permission flag to be set")
	}
}

func TestCompletedAndCancelledKindsAreDistinct(t *testing.T) {
	completed := NewSessionCompleted("s-3", "")
	cancelled := NewSessionCancelled("s-3")

	if completed.Kind() == cancelled.Kind() {
		t.Fatalf("expected completed and cancelled kinds to differ, both were %q", completed.Kind())
	}
}
