// Package speechrecognition defines the recognition-engine boundary: the
// callback set an engine adapter delivers into, and the fixed error-code
// enumeration engines report failures through.
package speechrecognition

type RecognitionOptions struct {
	ReadyCallback             func()
	BeginningOfSpeechCallback func()
	EndOfSpeechCallback       func()
	PartialResultCallback     func(text string)
	FinalResultCallback       func(text string)
	ErrorCallback             func(code ErrorCode)

	// Language is the BCP 47 tag the engine should recognize, e.g. "en-US".
	Language string
}

type RecognitionOption func(*RecognitionOptions)

func WithReadyCallback(callback func()) RecognitionOption {
	return func(o *RecognitionOptions) {
		o.ReadyCallback = callback
	}
}

func WithBeginningOfSpeechCallback(callback func()) RecognitionOption {
	return func(o *RecognitionOptions) {
		o.BeginningOfSpeechCallback = callback
	}
}

func WithEndOfSpeechCallback(callback func()) RecognitionOption {
	return func(o *RecognitionOptions) {
		o.EndOfSpeechCallback = callback
	}
}

func WithPartialResultCallback(callback func(text string)) RecognitionOption {
	return func(o *RecognitionOptions) {
		o.PartialResultCallback = callback
	}
}

func WithFinalResultCallback(callback func(text string)) RecognitionOption {
	return func(o *RecognitionOptions) {
		o.FinalResultCallback = callback
	}
}

func WithErrorCallback(callback func(code ErrorCode)) RecognitionOption {
	return func(o *RecognitionOptions) {
		o.ErrorCallback = callback
	}
}

func WithLanguage(language string) RecognitionOption {
	return func(o *RecognitionOptions) {
		o.Language = language
	}
}
