package orchestration

import "testing"

func TestAppendTextJoinsFragmentsWithNewlines(t *testing.T) {
	session := newRecognitionSession()

	session.appendText("a")
	session.appendText("b")

	if got := session.accumulatedText(); got != "a\nb" {
		t.Fatalf("expected %q, got %q", "a\nb", got)
	}
}

func TestAppendTextIgnoresBlankFragments(t *testing.T) {
	session := newRecognitionSession()

	session.appendText("")
	if got := session.accumulatedText(); got != "" {
		t.Fatalf("expected empty transcript, got %q", got)
	}

	session.appendText("a")
	session.appendText("   ")
	session.appendText("b")
	if got := session.accumulatedText(); got != "a\nb" {
		t.Fatalf("expected blank fragments skipped, got %q", got)
	}
}

func TestClearTextEmptiesTranscript(t *testing.T) {
	session := newRecognitionSession()
	session.appendText("a")

	session.clearText()

	if got := session.accumulatedText(); got != "" {
		t.Fatalf("expected empty transcript after clear, got %q", got)
	}
}

func TestResetRestoresFreshSessionState(t *testing.T) {
	session := newRecognitionSession()
	session.appendText("a")
	session.stopRequested.Store(true)
	if err := session.machine.transitionTo(StateListening); err != nil {
		t.Fatalf("expected idle -> listening to succeed, got %v", err)
	}

	session.reset()

	if got := session.accumulatedText(); got != "" {
		t.Fatalf("expected empty transcript after reset, got %q", got)
	}
	if session.stopRequested.Load() {
		t.Fatalf("expected stop flag cleared after reset")
	}
	if got := session.machine.currentState(); got != StateIdle {
		t.Fatalf("expected idle state after reset, got %s", got)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	first := newRecognitionSession()
	second := newRecognitionSession()

	if first.id == second.id {
		t.Fatalf("expected distinct session ids, both were %s", first.id)
	}
}

func TestSnapshotIsDetachedFromSession(t *testing.T) {
	session := newRecognitionSession()
	session.appendText("a")

	snapshot := session.snapshot()
	session.appendText("b")

	if snapshot.Transcript != "a" {
		t.Fatalf("expected snapshot to keep %q, got %q", "a", snapshot.Transcript)
	}
	if snapshot.ID != session.id {
		t.Fatalf("expected snapshot to carry the session id")
	}
}
