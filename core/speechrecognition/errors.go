package speechrecognition

// ErrorCode is the fixed enumeration of failures a recognition engine can
// report. Codes are classified as recoverable (auto-restart is allowed under
// continuous listening) or non-recoverable; permission denials additionally
// signal that the caller should disable continuous listening.
type ErrorCode int

const (
	// ErrAudio reports an audio-hardware failure.
	ErrAudio ErrorCode = iota
	// ErrClient reports a generic client-side failure.
	ErrClient
	// ErrPermission reports missing or revoked recognition permissions.
	ErrPermission
	// ErrNetwork reports a network failure.
	ErrNetwork
	// ErrNoMatch reports that no speech was recognized.
	ErrNoMatch
	// ErrSpeechTimeout reports that no speech arrived before the engine's
	// silence deadline.
	ErrSpeechTimeout
	// ErrNetworkTimeout reports a network operation that timed out.
	ErrNetworkTimeout
	// ErrBusy reports that the engine is already serving another request.
	ErrBusy
	// ErrOther reports an unclassified engine failure.
	ErrOther
)

func (c ErrorCode) String() string {
	switch c {
	case ErrAudio:
		return "audio"
	case ErrClient:
		return "client"
	case ErrPermission:
		return "permission"
	case ErrNetwork:
		return "network"
	case ErrNoMatch:
		return "no_match"
	case ErrSpeechTimeout:
		return "speech_timeout"
	case ErrNetworkTimeout:
		return "network_timeout"
	case ErrBusy:
		return "busy"
	default:
		return "other"
	}
}

// Message returns the user-facing description of the code.
func (c ErrorCode) Message() string {
	switch c {
	case ErrAudio:
		return "audio recording error"
	case ErrClient:
		return "client side error"
	case ErrPermission:
		return "insufficient permissions"
	case ErrNetwork:
		return "network error"
	case ErrNoMatch:
		return "no speech was recognized"
	case ErrSpeechTimeout:
		return "no speech input"
	case ErrNetworkTimeout:
		return "network operation timed out"
	case ErrBusy:
		return "recognition service is busy"
	default:
		return "unknown recognition error"
	}
}

// Recoverable reports whether auto-restart is permitted after this code
// under continuous listening.
func (c ErrorCode) Recoverable() bool {
	return c == ErrNoMatch || c == ErrSpeechTimeout
}

// Permission reports whether this code signals that continuous listening
// should be disabled by the caller.
func (c ErrorCode) Permission() bool {
	return c == ErrPermission
}
