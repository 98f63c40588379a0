// Package events defines the typed session event contract.
//
// Every event carries the id of the session it belongs to and the time it
// was constructed. Events are immutable once constructed and published at
// most once per occurrence. For a single session the publication order is
//
//	SessionStarted
//	→ zero or more PartialResult
//	→ zero or more FinalResult
//	→ exactly one of SessionCompleted | SessionCancelled | SessionError
//
// A restarted session produces a fresh SessionStarted with a new session id;
// the terminal event of the previous session always precedes it.
//
// session events
//
//   - SessionStarted (session.started): a listening session was accepted and
//     the recognition engine was asked to start.
//   - PartialResult (session.partial_result): mutable interim transcript
//     snapshot; never part of the durable transcript.
//   - FinalResult (session.final_result): finalized transcript fragment
//     appended to the session transcript.
//   - SessionCompleted (session.completed): terminal; carries the full
//     newline-joined transcript accumulated by the session.
//   - SessionCancelled (session.cancelled): terminal; the session was
//     discarded and no transcript is preserved.
//   - SessionError (session.error): terminal; carries the user-facing
//     message plus the recoverable/permission classification of the failure.
package events
