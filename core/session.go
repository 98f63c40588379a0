package orchestration

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// SessionID is the opaque identifier minted once per listening session. It
// is used only for correlation by subscribers and is never reused.
type SessionID string

func newSessionID() SessionID {
	return SessionID(uuid.NewString())
}

func (id SessionID) String() string { return string(id) }

// recognitionSession is the per-session mutable record. Only the
// orchestrator mutates it, on the control and callback paths.
type recognitionSession struct {
	id        SessionID
	createdAt time.Time

	machine       *sessionStateMachine
	stopRequested atomic.Bool

	mu        sync.Mutex
	fragments []string
}

func newRecognitionSession() *recognitionSession {
	return &recognitionSession{
		id:        newSessionID(),
		createdAt: time.Now(),
		machine:   newSessionStateMachine(),
	}
}

// appendText appends a finalized transcript fragment. Blank fragments are
// ignored; fragments are newline-joined and never reordered.
func (s *recognitionSession) appendText(fragment string) {
	if strings.TrimSpace(fragment) == "" {
		return
	}

	s.mu.Lock()
	s.fragments = append(s.fragments, fragment)
	s.mu.Unlock()
}

func (s *recognitionSession) accumulatedText() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return strings.Join(s.fragments, "\n")
}

func (s *recognitionSession) clearText() {
	s.mu.Lock()
	s.fragments = nil
	s.mu.Unlock()
}

// reset clears the transcript, the stop flag, and the owned state machine.
func (s *recognitionSession) reset() {
	s.clearText()
	s.stopRequested.Store(false)
	s.machine.reset()
}

// SessionSnapshot is a point-in-time copy of a session's observable fields.
type SessionSnapshot struct {
	ID            SessionID
	CreatedAt     time.Time
	State         SessionState
	Transcript    string
	StopRequested bool
}

func (s *recognitionSession) snapshot() SessionSnapshot {
	s.mu.Lock()
	fragments := []string{}
	copier.Copy(&fragments, s.fragments)
	s.mu.Unlock()

	return SessionSnapshot{
		ID:            s.id,
		CreatedAt:     s.createdAt,
		State:         s.machine.currentState(),
		Transcript:    strings.Join(fragments, "\n"),
		StopRequested: s.stopRequested.Load(),
	}
}
