package orchestration

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/voxmemo/voxmemo-core/core/speechrecognition"
)

type recognitionCallbacks struct {
	onReady             func()
	onBeginningOfSpeech func()
	onEndOfSpeech       func()
	onPartialResult     func(text string)
	onFinalResult       func(text string)
	onError             func(code speechrecognition.ErrorCode)
}

// recognitionEngine is the engine facade used to handle optional client
// wiring and to track whether the engine is mid-listen.
type recognitionEngine struct {
	// client stores the configured recognition engine implementation.
	client RecognitionEngine

	// listening reports whether the engine currently has a listen in flight.
	listening atomic.Bool
}

func (e *recognitionEngine) set(client RecognitionEngine) {
	if e != nil {
		e.client = client
	}
}

func (e *recognitionEngine) isConfigured() bool {
	return e != nil && e.client != nil
}

func (e *recognitionEngine) isListening() bool {
	return e != nil && e.listening.Load()
}

func (e *recognitionEngine) start(ctx context.Context, language string, callbacks recognitionCallbacks) error {
	if !e.isConfigured() {
		return fmt.Errorf("no recognition engine configured")
	}

	recognitionOptions := []speechrecognition.RecognitionOption{
		speechrecognition.WithLanguage(language),
	}
	if callbacks.onReady != nil {
		recognitionOptions = append(recognitionOptions, speechrecognition.WithReadyCallback(callbacks.onReady))
	}
	if callbacks.onBeginningOfSpeech != nil {
		recognitionOptions = append(recognitionOptions, speechrecognition.WithBeginningOfSpeechCallback(callbacks.onBeginningOfSpeech))
	}
	if callbacks.onEndOfSpeech != nil {
		recognitionOptions = append(recognitionOptions, speechrecognition.WithEndOfSpeechCallback(callbacks.onEndOfSpeech))
	}
	if callbacks.onPartialResult != nil {
		recognitionOptions = append(recognitionOptions, speechrecognition.WithPartialResultCallback(callbacks.onPartialResult))
	}
	if callbacks.onFinalResult != nil {
		recognitionOptions = append(recognitionOptions, speechrecognition.WithFinalResultCallback(callbacks.onFinalResult))
	}
	if callbacks.onError != nil {
		recognitionOptions = append(recognitionOptions, speechrecognition.WithErrorCallback(callbacks.onError))
	}

	// The flag goes up before the client call: a client that delivers a
	// terminal callback synchronously from inside Start settles the listen
	// before Start returns, and that settle must not be overwritten.
	e.listening.Store(true)
	if err := e.client.Start(ctx, recognitionOptions...); err != nil {
		e.listening.Store(false)
		return fmt.Errorf("failed to start recognition: %w", err)
	}
	return nil
}

func (e *recognitionEngine) stop() error {
	if !e.isConfigured() {
		return nil
	}

	return e.client.Stop()
}

func (e *recognitionEngine) cancel() error {
	if !e.isConfigured() {
		return nil
	}

	err := e.client.Cancel()
	e.listening.Store(false)
	return err
}

// settled marks the in-flight listen as finished. Called on every terminal
// path so the restart guard can tell the engine is free again.
func (e *recognitionEngine) settled() {
	if e != nil {
		e.listening.Store(false)
	}
}
