package orchestration

import (
	"context"
	"time"

	"github.com/voxmemo/voxmemo-core/core/speechrecognition"
)

type OrchestratorOption func(*Orchestrator)

// RecognitionEngine is the engine collaborator boundary. Start issues a
// recognition request and delivers callbacks until a terminal result or
// error; Stop asks for a flush-and-finish; Cancel tears down without
// flushing. Implementations support one in-flight recognition at a time.
type RecognitionEngine interface {
	Start(ctx context.Context, opts ...speechrecognition.RecognitionOption) error
	Stop() error
	Cancel() error
}

func WithRecognitionEngine(client RecognitionEngine) OrchestratorOption {
	return func(o *Orchestrator) {
		o.engine.set(client)
	}
}

// WithContinuousListening registers the externally owned predicate that
// decides whether a finished session auto-restarts. The orchestrator only
// ever reads it.
func WithContinuousListening(predicate func() bool) OrchestratorOption {
	return func(o *Orchestrator) {
		o.continuousListening = predicate
	}
}

// WithStopFallbackDelay overrides how long the orchestrator waits for a
// terminal engine callback after a stop request before force-completing the
// session with the accumulated text.
func WithStopFallbackDelay(delay time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if delay > 0 {
			o.stopFallbackDelay = delay
		}
	}
}

// WithRestartDelay overrides the pause between a session ending and a
// continuous-listening restart. The pause absorbs engine teardown latency
// and keeps restarts from starving the callback goroutine.
func WithRestartDelay(delay time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if delay > 0 {
			o.restartDelay = delay
		}
	}
}

type ListenOptions struct {
	onSessionStarted   func(sessionID SessionID)
	onPartialResult    func(text string)
	onFinalResult      func(text string)
	onSessionCompleted func(finalText string)
	onSessionCancelled func()
	onSessionError     func(message string, recoverable, permission bool)
}

type ListenOption func(*ListenOptions)

// WithSessionStartedCallback registers a callback for accepted sessions.
func WithSessionStartedCallback(callback func(sessionID SessionID)) ListenOption {
	return func(o *ListenOptions) {
		o.onSessionStarted = callback
	}
}

// WithPartialResultCallback registers a callback for interim transcript
// snapshots. Partial text never reaches the durable transcript.
func WithPartialResultCallback(callback func(text string)) ListenOption {
	return func(o *ListenOptions) {
		o.onPartialResult = callback
	}
}

// WithFinalResultCallback registers a callback for finalized transcript
// fragments appended to the session transcript.
func WithFinalResultCallback(callback func(text string)) ListenOption {
	return func(o *ListenOptions) {
		o.onFinalResult = callback
	}
}

// WithSessionCompletedCallback registers a callback for completed sessions;
// it receives the full newline-joined transcript.
func WithSessionCompletedCallback(callback func(finalText string)) ListenOption {
	return func(o *ListenOptions) {
		o.onSessionCompleted = callback
	}
}

// WithSessionCancelledCallback registers a callback for cancelled sessions.
func WithSessionCancelledCallback(callback func()) ListenOption {
	return func(o *ListenOptions) {
		o.onSessionCancelled = callback
	}
}

// WithSessionErrorCallback registers a callback for sessions that ended in a
// recognition error without a usable transcript. A permission error signals
// that the caller should disable continuous listening.
func WithSessionErrorCallback(callback func(message string, recoverable, permission bool)) ListenOption {
	return func(o *ListenOptions) {
		o.onSessionError = callback
	}
}
