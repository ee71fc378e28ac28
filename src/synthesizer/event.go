// Package synthesizer drives one Azure text-to-speech turn over a shared
// transport: sends the config/context/SSML setup messages, demultiplexes
// binary audio frames by stream id, and interprets audio.metadata into
// typed boundary/viseme entries.
//
// Grounded on original_source/src/synthesizer/client.rs's synthesize() and
// convert_message_to_event.
package synthesizer

import "github.com/square-key-labs/azurespeech-go/src/azerrors"

// EventKind tags which variant of Event is populated.
type EventKind int

const (
	EventSessionStarted EventKind = iota
	EventSynthesising
	EventAudioMetadata
	EventSynthesised
	EventSessionEnded
	EventError
)

// Event is the single typed value the synthesizer session emits.
type Event struct {
	Kind      EventKind
	RequestID string
	Audio     []byte
	Metadata  []Metadata
	Err       *azerrors.Error
}

func sessionStarted(id string) Event { return Event{Kind: EventSessionStarted, RequestID: id} }
func sessionEnded(id string) Event   { return Event{Kind: EventSessionEnded, RequestID: id} }
func synthesised(id string) Event    { return Event{Kind: EventSynthesised, RequestID: id} }

func synthesising(id string, audio []byte) Event {
	return Event{Kind: EventSynthesising, RequestID: id, Audio: audio}
}

func audioMetadata(id string, metadata []Metadata) Event {
	return Event{Kind: EventAudioMetadata, RequestID: id, Metadata: metadata}
}

func errEvent(id string, err *azerrors.Error) Event {
	return Event{Kind: EventError, RequestID: id, Err: err}
}
