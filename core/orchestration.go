package orchestration

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/voxmemo/voxmemo-core/core/events"
	"github.com/voxmemo/voxmemo-core/core/speechrecognition"
)

const (
	defaultStopFallbackDelay = 3 * time.Second
	defaultRestartDelay      = 300 * time.Millisecond
	fallbackLanguage         = "en-US"
)

// Orchestrator coordinates one logical listening session at a time: it
// accepts control requests from the caller goroutine, receives recognition
// callbacks from the engine goroutine, enforces legal state transitions,
// recovers from missing terminal callbacks with a fallback timer, and
// restarts sessions under continuous listening.
//
// The only state shared across the two goroutines is the single
// active-session slot, held in an atomic pointer; no lock is ever held
// across an engine call.
type Orchestrator struct {
	// engine is the recognition facade used to handle optional client wiring.
	engine recognitionEngine

	// active holds at most one session. Installed with CAS(nil, session) and
	// cleared with CAS(session, nil), so the slot is never overwritten
	// without first being cleared and exactly one goroutine wins a terminal
	// transition.
	active atomic.Pointer[recognitionSession]

	// continuousListening is the externally owned predicate; read only.
	continuousListening func() bool

	stopFallbackDelay time.Duration
	restartDelay      time.Duration

	// stopFallback force-completes a session when the engine never delivers
	// a terminal callback after a stop request. restart delays the
	// continuous-listening restart. One pending call per purpose.
	stopFallback delayedCall
	restart      delayedCall

	hub           *subscriberHub
	listenOptions ListenOptions
	emit          eventEmitter

	recognizedText   atomic.Value
	lastErrorMessage atomic.Value
	lastLanguage     atomic.Value

	baseContext context.Context
	closeOnce   sync.Once
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		stopFallbackDelay: defaultStopFallbackDelay,
		restartDelay:      defaultRestartDelay,
		hub:               newSubscriberHub(),
		emit:              noopEventEmitter,
		baseContext:       context.Background(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Listen wires per-run observer callbacks and the base context used for
// engine requests and shutdown. Cancelling the context closes the
// orchestrator; with a non-cancellable context, shutdown is Close's job.
//
// Contract: call Listen at most once per orchestrator instance, before the
// first StartListening. Repeated or concurrent calls are unsupported and may
// race while callbacks are being reconfigured.
func (o *Orchestrator) Listen(ctx context.Context, opts ...ListenOption) {
	o.listenOptions = ListenOptions{}
	for _, opt := range opts {
		opt(&o.listenOptions)
	}

	o.baseContext = ctx
	o.emit = newCallbackEventEmitter(o.listenOptions)

	// A non-cancellable context has a nil Done channel; spawning a watcher
	// for it would leak a goroutine that can never fire. Shutdown is then
	// the embedder's job, through Close.
	if done := ctx.Done(); done != nil {
		go func() {
			<-done
			o.Close()
		}()
	}
}

// Close cancels any active session, stops pending timers, and closes all
// subscriber channels.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.CancelListening()
		o.stopFallback.cancel()
		o.restart.cancel()
		o.hub.closeAll()
	})
}

// Subscribe returns a bounded event stream plus its cancel func. Delivery is
// best-effort: when the buffer is saturated the newest event is dropped.
func (o *Orchestrator) Subscribe() (<-chan events.Event, func()) {
	return o.hub.subscribe(defaultSubscriberCapacity)
}

// StartListening mints a new session and asks the engine to start
// recognizing speech in the given language. The call is an idempotent no-op
// while a session is active. An engine-level start failure fails the session
// immediately: the slot is cleared and a SessionError follows the
// SessionStarted event; no session is left dangling.
func (o *Orchestrator) StartListening(language string) {
	ctx, span := tracer.Start(o.baseContext, "start listening")
	defer span.End()

	session := newRecognitionSession()
	if !o.active.CompareAndSwap(nil, session) {
		logger.Info("listening session already active, ignoring start request")
		return
	}
	span.SetAttributes(attribute.String("session.id", session.id.String()))

	o.recognizedText.Store("")
	o.lastErrorMessage.Store("")
	if language == "" {
		language = fallbackLanguage
	}
	o.lastLanguage.Store(language)

	// All start bookkeeping happens before the engine call: engines may
	// deliver callbacks synchronously from inside Start, and those callbacks
	// must find the session listening and SessionStarted already published.
	if err := session.machine.transitionTo(StateListening); err != nil {
		o.reportTransitionFault(err)
	}
	sessionsStarted.Add(ctx, 1)
	o.publishEvent(events.NewSessionStarted(session.id.String()))

	err := o.engine.start(o.baseContext, language, recognitionCallbacks{
		onReady: func() {
			logger.Debug("recognition engine ready", slog.String("session_id", session.id.String()))
		},
		onBeginningOfSpeech: func() {
			logger.Debug("speech began", slog.String("session_id", session.id.String()))
		},
		onEndOfSpeech: func() {
			logger.Debug("speech ended", slog.String("session_id", session.id.String()))
		},
		onPartialResult: o.handlePartialResult,
		onFinalResult:   o.handleFinalResult,
		onError:         o.handleRecognitionError,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		// A synchronous callback may already have terminated the session
		// before Start returned its error; the CAS keeps the failure from
		// producing a second terminal event.
		if !o.active.CompareAndSwap(session, nil) {
			return
		}
		if faultErr := session.machine.transitionTo(StateFailed); faultErr != nil {
			o.reportTransitionFault(faultErr)
		}
		o.lastErrorMessage.Store(err.Error())
		sessionsErrored.Add(ctx, 1, metric.WithAttributes(attribute.String("error.code", "engine_start")))
		o.publishEvent(events.NewSessionError(session.id.String(), err.Error(), false, false))
	}
}

// StopListening asks the engine to finish the active session and arms the
// fallback timer: if no terminal callback arrives before it fires, the
// session is force-completed with whatever text has accumulated. No-op when
// no session is active.
func (o *Orchestrator) StopListening() {
	session := o.active.Load()
	if session == nil {
		logger.Debug("no active listening session to stop")
		return
	}

	session.stopRequested.Store(true)
	o.restart.cancel()

	if err := o.engine.stop(); err != nil {
		logger.Warn("failed to issue stop request", slog.String("error", err.Error()))
	}

	o.stopFallback.arm(o.stopFallbackDelay, func() {
		if o.active.Load() != session {
			return
		}
		logger.Warn("no terminal recognition callback after stop, completing with accumulated text",
			slog.String("session_id", session.id.String()))
		o.completeSession(session)
	})
}

// CancelListening discards the active session: no accumulated text is
// preserved and no completion is ever published for it. No-op when no
// session is active.
func (o *Orchestrator) CancelListening() {
	session := o.active.Load()
	if session == nil {
		logger.Debug("no active listening session to cancel")
		return
	}
	o.cancelSession(session)
}

// cancelSession tears down the given session if it still owns the slot. The
// CAS runs before the engine call: when the session was superseded by a
// continuous restart in the meantime, cancelling the engine would tear down
// the new session's stream instead.
func (o *Orchestrator) cancelSession(session *recognitionSession) {
	session.stopRequested.Store(true)

	if !o.active.CompareAndSwap(session, nil) {
		return
	}

	o.stopFallback.cancel()
	o.restart.cancel()

	if err := o.engine.cancel(); err != nil {
		logger.Warn("failed to issue cancel request", slog.String("error", err.Error()))
	}

	if err := session.machine.transitionTo(StateCancelled); err != nil {
		o.reportTransitionFault(err)
	}
	session.clearText()
	o.recognizedText.Store("")

	sessionsCancelled.Add(o.baseContext, 1)
	o.publishEvent(events.NewSessionCancelled(session.id.String()))
}

// RecognizedText returns the latest interim transcript snapshot. Cleared on
// session start and cancel.
func (o *Orchestrator) RecognizedText() string {
	if text, ok := o.recognizedText.Load().(string); ok {
		return text
	}
	return ""
}

// LastErrorMessage returns the message of the most recent session error.
// Cleared on session start.
func (o *Orchestrator) LastErrorMessage() string {
	if message, ok := o.lastErrorMessage.Load().(string); ok {
		return message
	}
	return ""
}

// ActiveSession returns a point-in-time snapshot of the active session, if
// any.
func (o *Orchestrator) ActiveSession() (SessionSnapshot, bool) {
	session := o.active.Load()
	if session == nil {
		return SessionSnapshot{}, false
	}
	return session.snapshot(), true
}

func (o *Orchestrator) handlePartialResult(text string) {
	session := o.active.Load()
	if session == nil {
		logger.Debug("discarding partial result without an active session")
		return
	}

	o.recognizedText.Store(text)
	o.publishEvent(events.NewPartialResult(session.id.String(), text))
}

func (o *Orchestrator) handleFinalResult(text string) {
	session := o.active.Load()
	if session == nil {
		logger.Debug("discarding final result without an active session")
		return
	}

	if strings.TrimSpace(text) != "" {
		session.appendText(text)
		o.publishEvent(events.NewFinalResult(session.id.String(), text))
	}
	o.completeSession(session)
}

func (o *Orchestrator) handleRecognitionError(code speechrecognition.ErrorCode) {
	session := o.active.Load()
	if session == nil {
		logger.Debug("discarding recognition error without an active session",
			slog.String("code", code.String()))
		return
	}

	o.stopFallback.cancel()
	o.restart.cancel()

	// An error after partial success still yields a memo: treat the error as
	// end of input and complete with what exists.
	if session.accumulatedText() != "" {
		o.completeSession(session)
		return
	}

	if !o.active.CompareAndSwap(session, nil) {
		return
	}
	o.engine.settled()

	if err := session.machine.transitionTo(StateFailed); err != nil {
		o.reportTransitionFault(err)
	}

	message := code.Message()
	o.lastErrorMessage.Store(message)
	o.recognizedText.Store("")

	sessionsErrored.Add(o.baseContext, 1, metric.WithAttributes(attribute.String("error.code", code.String())))
	o.publishEvent(events.NewSessionError(session.id.String(), message, code.Recoverable(), code.Permission()))

	if code.Recoverable() && o.continuousEnabled() {
		o.scheduleRestart()
	}
}

// completeSession drives the session to Completed and publishes the full
// transcript. The slot CAS is the gate: when the fallback timer and a late
// terminal callback race, only one of them completes the session.
func (o *Orchestrator) completeSession(session *recognitionSession) {
	o.stopFallback.cancel()

	if !o.active.CompareAndSwap(session, nil) {
		return
	}
	o.engine.settled()

	if session.machine.currentState() == StateListening {
		if err := session.machine.transitionTo(StateProcessingResult); err != nil {
			o.reportTransitionFault(err)
		}
	}
	if err := session.machine.transitionTo(StateCompleted); err != nil {
		o.reportTransitionFault(err)
	}

	finalText := session.accumulatedText()
	o.recognizedText.Store("")

	sessionsCompleted.Add(o.baseContext, 1)
	o.publishEvent(events.NewSessionCompleted(session.id.String(), finalText))

	if !session.stopRequested.Load() && o.continuousEnabled() {
		o.scheduleRestart()
	}
}

// scheduleRestart arms the delayed continuous-listening restart. The delay
// absorbs engine teardown latency; the guard at fire time absorbs caller
// starts that happened during the delay.
func (o *Orchestrator) scheduleRestart() {
	if !o.continuousEnabled() {
		return
	}

	language := o.language()
	o.restart.arm(o.restartDelay, func() {
		if !o.continuousEnabled() {
			return
		}
		if o.active.Load() != nil || o.engine.isListening() {
			logger.Debug("skipping scheduled restart, session active or engine mid-listen")
			return
		}
		o.StartListening(language)
	})
}

func (o *Orchestrator) continuousEnabled() bool {
	return o.continuousListening != nil && o.continuousListening()
}

func (o *Orchestrator) language() string {
	if language, ok := o.lastLanguage.Load().(string); ok && language != "" {
		return language
	}
	return fallbackLanguage
}

func (o *Orchestrator) publishEvent(event events.Event) {
	o.emit(event)
	o.hub.publish(event)
}

// reportTransitionFault surfaces an illegal state transition as a hard
// logic fault.
func (o *Orchestrator) reportTransitionFault(err error) {
	logger.Error("session state transition fault", slog.String("error", err.Error()))
	span := trace.SpanFromContext(o.baseContext)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
