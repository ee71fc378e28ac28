// Package recognizer drives one Azure speech-to-text turn over a shared
// transport: sends the config/context/audio setup messages, paces an
// outbound audio stream at a fixed chunk size, and interprets the server's
// interleaved control messages into a typed event stream.
//
// Grounded on original_source/src/recognizer/client.rs's recognize() and
// convert_message_to_event, and on original_source/src/recognizer/event.rs's
// EventSpeech enum.
package recognizer

import "github.com/square-key-labs/azurespeech-go/src/azerrors"

// EventKind tags which variant of Event is populated, the same "tagged
// payload" pattern src/codec.Data uses instead of an interface hierarchy.
type EventKind int

const (
	EventSessionStarted EventKind = iota
	EventStartDetected
	EventRecognizing
	EventRecognized
	EventUnMatch
	EventEndDetected
	EventSessionEnded
	EventError
)

// PrimaryLanguage is the language Azure's language-id pipeline picked for a
// Recognizing/Recognized event, when language detection is enabled.
type PrimaryLanguage struct {
	Language   string
	Confidence string
}

// Recognized carries the text payload common to Recognizing and Recognized
// events.
type Recognized struct {
	Text            string
	PrimaryLanguage *PrimaryLanguage
	SpeakerID       string
}

// Event is the single typed value the recognizer session emits. Exactly one
// of the payload fields is meaningful, selected by Kind; Err is populated
// only when Kind == EventError.
type Event struct {
	Kind       EventKind
	RequestID  string
	Offset     int64
	Duration   int64
	Recognized Recognized
	Raw        string
	Err        *azerrors.Error
}

func sessionStarted(id string) Event { return Event{Kind: EventSessionStarted, RequestID: id} }
func sessionEnded(id string) Event   { return Event{Kind: EventSessionEnded, RequestID: id} }

func startDetected(id string, offset int64) Event {
	return Event{Kind: EventStartDetected, RequestID: id, Offset: offset}
}

func endDetected(id string, offset int64) Event {
	return Event{Kind: EventEndDetected, RequestID: id, Offset: offset}
}

func errEvent(id string, err *azerrors.Error) Event {
	return Event{Kind: EventError, RequestID: id, Err: err}
}
