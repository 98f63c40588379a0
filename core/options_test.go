package orchestration

import (
	"testing"
	"time"

	"github.com/voxmemo/voxmemo-core/core/events"
)

func TestTimerOptionsIgnoreNonPositiveDelays(t *testing.T) {
	o := NewOrchestrator(
		WithStopFallbackDelay(0),
		WithRestartDelay(-time.Second),
	)
	defer o.Close()

	if o.stopFallbackDelay != defaultStopFallbackDelay {
		t.Fatalf("expected default stop fallback delay %s, got %s", defaultStopFallbackDelay, o.stopFallbackDelay)
	}
	if o.restartDelay != defaultRestartDelay {
		t.Fatalf("expected default restart delay %s, got %s", defaultRestartDelay, o.restartDelay)
	}
}

func TestTimerOptionsOverrideDefaults(t *testing.T) {
	o := NewOrchestrator(
		WithStopFallbackDelay(time.Second),
		WithRestartDelay(50*time.Millisecond),
	)
	defer o.Close()

	if o.stopFallbackDelay != time.Second {
		t.Fatalf("expected stop fallback delay %s, got %s", time.Second, o.stopFallbackDelay)
	}
	if o.restartDelay != 50*time.Millisecond {
		t.Fatalf("expected restart delay %s, got %s", 50*time.Millisecond, o.restartDelay)
	}
}

func TestStartListeningWithoutEngineFailsCleanly(t *testing.T) {
	o := NewOrchestrator()
	defer o.Close()

	stream, cancel := o.Subscribe()
	defer cancel()

	o.StartListening("en-US")

	expectEvent(t, stream, events.KindSessionStarted)
	failure := expectEvent(t, stream, events.KindSessionError).(events.SessionError)
	if failure.Recoverable {
		t.Fatalf("expected a missing engine to be non-recoverable")
	}
	if _, ok := o.ActiveSession(); ok {
		t.Fatalf("expected no session without a configured engine")
	}
}
