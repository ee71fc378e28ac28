// Package eventsink adapts a typed event stream to per-event-kind callbacks.
// It mirrors the "closures as callbacks" shape of
// original_source/src/recognizer/client.rs and
// original_source/src/synthesizer/client.rs's sink traits, and the teacher's
// own src/pipeline.PipelineTask.OnStarted/OnFinished/OnError field-of-func
// pattern - a struct of optional function-valued fields rather than an
// interface hierarchy.
package eventsink

import (
	"github.com/square-key-labs/azurespeech-go/src/azerrors"
	"github.com/square-key-labs/azurespeech-go/src/recognizer"
	"github.com/square-key-labs/azurespeech-go/src/synthesizer"
)

// RecognizerSink dispatches a recognizer.Event stream to per-kind callbacks.
// Any field left nil is simply skipped.
type RecognizerSink struct {
	OnSessionStarted func()
	OnStartDetected  func(offset int64)
	OnRecognizing    func(recognized recognizer.Recognized, offset int64)
	OnRecognized     func(recognized recognizer.Recognized, offset, duration int64)
	OnUnMatch        func(offset int64)
	OnEndDetected    func(offset int64)
	OnSessionEnded   func()
	OnError          func(*azerrors.Error)
}

// Run consumes events in order until the channel closes. Each callback is
// invoked synchronously and Run waits for it to return before pulling the
// next event, so a blocking callback back-pressures the producer.
func (s RecognizerSink) Run(events <-chan recognizer.Event) {
	for e := range events {
		switch e.Kind {
		case recognizer.EventSessionStarted:
			if s.OnSessionStarted != nil {
				s.OnSessionStarted()
			}
		case recognizer.EventStartDetected:
			if s.OnStartDetected != nil {
				s.OnStartDetected(e.Offset)
			}
		case recognizer.EventRecognizing:
			if s.OnRecognizing != nil {
				s.OnRecognizing(e.Recognized, e.Offset)
			}
		case recognizer.EventRecognized:
			if s.OnRecognized != nil {
				s.OnRecognized(e.Recognized, e.Offset, e.Duration)
			}
		case recognizer.EventUnMatch:
			if s.OnUnMatch != nil {
				s.OnUnMatch(e.Offset)
			}
		case recognizer.EventEndDetected:
			if s.OnEndDetected != nil {
				s.OnEndDetected(e.Offset)
			}
		case recognizer.EventSessionEnded:
			if s.OnSessionEnded != nil {
				s.OnSessionEnded()
			}
		case recognizer.EventError:
			if s.OnError != nil {
				s.OnError(e.Err)
			}
		}
	}
}

// SynthesizerSink dispatches a synthesizer.Event stream to per-kind
// callbacks. Any field left nil is simply skipped.
type SynthesizerSink struct {
	OnSessionStarted func()
	OnSynthesising   func(audio []byte)
	OnAudioMetadata  func([]synthesizer.Metadata)
	OnSynthesised    func()
	OnSessionEnded   func()
	OnError          func(*azerrors.Error)
}

// Run consumes events in order until the channel closes, same back-pressure
// contract as RecognizerSink.Run.
func (s SynthesizerSink) Run(events <-chan synthesizer.Event) {
	for e := range events {
		switch e.Kind {
		case synthesizer.EventSessionStarted:
			if s.OnSessionStarted != nil {
				s.OnSessionStarted()
			}
		case synthesizer.EventSynthesising:
			if s.OnSynthesising != nil {
				s.OnSynthesising(e.Audio)
			}
		case synthesizer.EventAudioMetadata:
			if s.OnAudioMetadata != nil {
				s.OnAudioMetadata(e.Metadata)
			}
		case synthesizer.EventSynthesised:
			if s.OnSynthesised != nil {
				s.OnSynthesised()
			}
		case synthesizer.EventSessionEnded:
			if s.OnSessionEnded != nil {
				s.OnSessionEnded()
			}
		case synthesizer.EventError:
			if s.OnError != nil {
				s.OnError(e.Err)
			}
		}
	}
}
