package events

const (
	// KindSessionStarted identifies acceptance of a new listening session.
	KindSessionStarted Kind = "session.started"
	// KindPartialResult identifies mutable interim transcript updates.
	KindPartialResult Kind = "session.partial_result"
	// KindFinalResult identifies finalized transcript fragments.
	KindFinalResult Kind = "session.final_result"
	// KindSessionCompleted identifies normal session completion.
	KindSessionCompleted Kind = "session.completed"
	// KindSessionCancelled identifies session cancellation.
	KindSessionCancelled Kind = "session.cancelled"
	// KindSessionError identifies session failure without a usable transcript.
	KindSessionError Kind = "session.error"
)

// SessionStarted marks acceptance of a new listening session.
type SessionStarted struct{ Base }

// NewSessionStarted creates a session started event.
func NewSessionStarted(sessionID string) SessionStarted {
	return SessionStarted{Base: NewBase(KindSessionStarted, sessionID)}
}

// PartialResult carries a mutable interim transcript snapshot.
type PartialResult struct {
	Base
	Text string
}

// NewPartialResult creates an interim transcript update event.
func NewPartialResult(sessionID, text string) PartialResult {
	return PartialResult{Base: NewBase(KindPartialResult, sessionID), Text: text}
}

// FinalResult carries a finalized transcript fragment.
type FinalResult struct {
	Base
	Text string
}

// NewFinalResult creates a finalized transcript fragment event.
func NewFinalResult(sessionID, text string) FinalResult {
	return FinalResult{Base: NewBase(KindFinalResult, sessionID), Text: text}
}

// SessionCompleted marks normal completion and carries the full transcript.
type SessionCompleted struct {
	Base
	FinalText string
}

// NewSessionCompleted creates a session completed event.
func NewSessionCompleted(sessionID, finalText string) SessionCompleted {
	return SessionCompleted{Base: NewBase(KindSessionCompleted, sessionID), FinalText: finalText}
}

// SessionCancelled marks cancellation; no transcript is preserved.
type SessionCancelled struct{ Base }

// NewSessionCancelled creates a session cancelled event.
func NewSessionCancelled(sessionID string) SessionCancelled {
	return SessionCancelled{Base: NewBase(KindSessionCancelled, sessionID)}
}

// SessionError marks a session failure that produced no usable transcript.
//
// Recoverable reports whether the orchestrator may auto-restart under
// continuous listening. Permission reports that the failure was a
// permission denial and the caller should disable continuous listening.
type SessionError struct {
	Base
	Message     string
	Recoverable bool
	Permission  bool
}

// NewSessionError creates a session error event.
func NewSessionError(sessionID, message string, recoverable, permission bool) SessionError {
	return SessionError{
		Base:        NewBase(KindSessionError, sessionID),
		Message:     message,
		Recoverable: recoverable,
		Permission:  permission,
	}
}
