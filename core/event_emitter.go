package orchestration

import "github.com/voxmemo/voxmemo-core/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

func newCallbackEventEmitter(opts ListenOptions) eventEmitter {
	return func(event events.Event) {
		switch typedEvent := event.(type) {
		case events.SessionStarted:
			if opts.onSessionStarted != nil {
				opts.onSessionStarted(SessionID(typedEvent.SessionID()))
			}
		case events.PartialResult:
			if opts.onPartialResult != nil {
				opts.onPartialResult(typedEvent.Text)
			}
		case events.FinalResult:
			if opts.onFinalResult != nil {
				opts.onFinalResult(typedEvent.Text)
			}
		case events.SessionCompleted:
			if opts.onSessionCompleted != nil {
				opts.onSessionCompleted(typedEvent.FinalText)
			}
		case events.SessionCancelled:
			if opts.onSessionCancelled != nil {
				opts.onSessionCancelled()
			}
		case events.SessionError:
			if opts.onSessionError != nil {
				opts.onSessionError(typedEvent.Message, typedEvent.Recoverable, typedEvent.Permission)
			}
		}
	}
}
