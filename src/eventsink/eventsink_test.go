package eventsink

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/square-key-labs/azurespeech-go/src/azerrors"
	"github.com/square-key-labs/azurespeech-go/src/recognizer"
	"github.com/square-key-labs/azurespeech-go/src/synthesizer"
)

func TestRecognizerSinkDispatchesInOrder(t *testing.T) {
	events := make(chan recognizer.Event, 8)
	events <- recognizer.Event{Kind: recognizer.EventSessionStarted}
	events <- recognizer.Event{Kind: recognizer.EventRecognized, Recognized: recognizer.Recognized{Text: "hello"}}
	events <- recognizer.Event{Kind: recognizer.EventSessionEnded}
	close(events)

	var calls []string
	sink := RecognizerSink{
		OnSessionStarted: func() { calls = append(calls, "started") },
		OnRecognized: func(r recognizer.Recognized, offset, duration int64) {
			calls = append(calls, "recognized:"+r.Text)
		},
		OnSessionEnded: func() { calls = append(calls, "ended") },
	}
	sink.Run(events)

	assert.Equal(t, []string{"started", "recognized:hello", "ended"}, calls)
}

func TestRecognizerSinkNilCallbacksAreSkipped(t *testing.T) {
	events := make(chan recognizer.Event, 2)
	events <- recognizer.Event{Kind: recognizer.EventStartDetected, Offset: 1}
	events <- recognizer.Event{Kind: recognizer.EventError, Err: azerrors.New(azerrors.KindTimeout, "timed out")}
	close(events)

	assert.NotPanics(t, func() {
		RecognizerSink{}.Run(events)
	})
}

func TestSynthesizerSinkDispatchesInOrder(t *testing.T) {
	events := make(chan synthesizer.Event, 4)
	events <- synthesizer.Event{Kind: synthesizer.EventSessionStarted}
	events <- synthesizer.Event{Kind: synthesizer.EventSynthesising, Audio: []byte{1, 2, 3}}
	events <- synthesizer.Event{Kind: synthesizer.EventSynthesised}
	events <- synthesizer.Event{Kind: synthesizer.EventSessionEnded}
	close(events)

	var calls []string
	var audio []byte
	sink := SynthesizerSink{
		OnSessionStarted: func() { calls = append(calls, "started") },
		OnSynthesising:   func(b []byte) { audio = b; calls = append(calls, "synthesising") },
		OnSynthesised:    func() { calls = append(calls, "synthesised") },
		OnSessionEnded:   func() { calls = append(calls, "ended") },
	}
	sink.Run(events)

	assert.Equal(t, []string{"started", "synthesising", "synthesised", "ended"}, calls)
	assert.Equal(t, []byte{1, 2, 3}, audio)
}
