package recognizer

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/square-key-labs/azurespeech-go/src/azerrors"
	"github.com/square-key-labs/azurespeech-go/src/codec"
	"github.com/square-key-labs/azurespeech-go/src/config"
	"github.com/square-key-labs/azurespeech-go/src/logger"
	"github.com/square-key-labs/azurespeech-go/src/transport"
)

// audioBufferSize is the fixed chunk size the audio pump accumulates before
// sending a binary audio frame - 4096 bytes per the transport pacing spec.
const audioBufferSize = 4096

// Recognizer drives speech-to-text turns against a shared transport. It
// holds the transport by reference, never owning it - the "back
// references" design note - so many Recognize() calls can run concurrently
// over one connection, isolated by request id.
type Recognizer struct {
	transport *transport.Transport
	config    config.RecognizerConfig
	log       *logger.Logger
}

// New returns a Recognizer bound to an already-connected transport.
func New(t *transport.Transport, cfg config.RecognizerConfig) *Recognizer {
	return &Recognizer{transport: t, config: cfg, log: logger.WithPrefix("recognizer")}
}

// Recognize drives one speech-to-text turn: sends speech.config,
// speech.context and the header-only audio frame, pumps audioSource in
// audioBufferSize chunks, and returns a channel of the interpreted event
// stream. Cancelling ctx stops both the event-interpretation goroutine and
// the audio pump.
func (r *Recognizer) Recognize(ctx context.Context, audioSource io.Reader, contentType string) (<-chan Event, error) {
	requestID := strings.ReplaceAll(uuid.New().String(), "-", "")

	sub, err := r.transport.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.send(ctx, buildSpeechConfigMessage(requestID, r.config)); err != nil {
		return nil, err
	}
	if err := r.send(ctx, buildSpeechContextMessage(requestID, r.config)); err != nil {
		return nil, err
	}
	if err := r.send(ctx, buildAudioHeadersMessage(requestID, contentType)); err != nil {
		return nil, err
	}

	sess := newSession(requestID)

	go r.pumpAudio(ctx, audioSource, sess)

	out := make(chan Event, 8)
	go r.interpret(ctx, sub, sess, out)

	return out, nil
}

func (r *Recognizer) send(ctx context.Context, m codec.Message) error {
	frame, isText := codec.EncodeMessage(m)
	return r.transport.Send(ctx, frame, isText)
}

// pumpAudio reads audioSource into audioBufferSize windows, sends a binary
// audio frame per full window, flushes the tail on EOF, then sends the
// empty-payload end-of-stream sentinel. It observes ctx cancellation so
// dropping the event channel also halts the pump.
func (r *Recognizer) pumpAudio(ctx context.Context, src io.Reader, sess *session) {
	buf := make([]byte, 0, audioBufferSize)
	chunk := make([]byte, audioBufferSize)

	flush := func(n int) bool {
		if n == 0 {
			return true
		}
		data := append([]byte(nil), buf[:n]...)
		if err := r.send(ctx, buildAudioMessage(sess.requestID, data)); err != nil {
			r.log.Error("audio pump send failed: %v", err)
			return false
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := src.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			for len(buf) >= audioBufferSize {
				if !flush(audioBufferSize) {
					return
				}
				buf = buf[audioBufferSize:]
			}
		}
		if err != nil {
			break
		}
	}

	for len(buf) > 0 {
		n := audioBufferSize
		if n > len(buf) {
			n = len(buf)
		}
		if !flush(n) {
			return
		}
		buf = buf[n:]
	}

	_ = r.send(ctx, buildAudioMessage(sess.requestID, nil))
	sess.setAudioCompleted(true)
}

// interpret reads the subscriber stream, filters to this turn's requestID,
// converts each matching message into zero or more Events, and closes out
// after SessionEnded or a fatal error. A synthetic SessionStarted is
// emitted first.
func (r *Recognizer) interpret(ctx context.Context, sub *transport.Subscription, sess *session, out chan<- Event) {
	defer close(out)

	send := func(e Event) bool {
		select {
		case out <- e:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !send(sessionStarted(sess.requestID)) {
		return
	}

	for {
		msg, err := sub.Recv(ctx)
		if err != nil {
			if azErr, ok := err.(*azerrors.Error); ok {
				if !azErr.Kind.Fatal() {
					if !send(errEvent(sess.requestID, azErr)) {
						return
					}
					continue
				}
				send(errEvent(sess.requestID, azErr))
				return
			}
			return
		}

		if msg.ID != sess.requestID {
			continue
		}

		events, terminal := r.convert(msg, sess)
		for _, e := range events {
			if !send(e) {
				return
			}
		}
		if terminal {
			return
		}
	}
}

// convert turns one matching inbound message into zero or more Events, plus
// whether the session is now terminal. Grounded on
// original_source/src/recognizer/client.rs's convert_message_to_event.
func (r *Recognizer) convert(msg codec.Message, sess *session) ([]Event, bool) {
	switch msg.Path {
	case "turn.start":
		return nil, false

	case "speech.startdetected":
		var v speechStartDetected
		if err := unmarshal(msg.Payload.Text, &v); err != nil {
			return []Event{errEvent(sess.requestID, azerrors.Wrap(azerrors.KindParseError, "speech.startdetected", err))}, false
		}
		return []Event{startDetected(sess.requestID, v.Offset)}, false

	case "speech.enddetected":
		var v speechEndDetected
		_ = unmarshal(msg.Payload.Text, &v) // offset defaults to 0 on parse failure, matching the original
		return []Event{endDetected(sess.requestID, v.Offset)}, false

	case "speech.hypothesis", "speech.fragment":
		var v speechHypothesis
		if err := unmarshal(msg.Payload.Text, &v); err != nil {
			return []Event{errEvent(sess.requestID, azerrors.Wrap(azerrors.KindParseError, msg.Path, err))}, false
		}
		offset := v.Offset + sess.audioOffsetValue()
		sess.onHypothesisReceived()
		return []Event{{
			Kind:      EventRecognizing,
			RequestID: sess.requestID,
			Offset:    offset,
			Duration:  v.Duration,
			Recognized: Recognized{
				Text:            v.Text,
				PrimaryLanguage: toPrimaryLanguage(v.PrimaryLanguage),
				SpeakerID:       v.SpeakerID,
			},
			Raw: msg.Payload.Text,
		}}, false

	case "speech.phrase":
		return r.convertPhrase(msg, sess)

	case "turn.end":
		if sess.isAudioCompleted() {
			return []Event{sessionEnded(sess.requestID)}, true
		}
		return nil, false

	default:
		r.log.Debug("unhandled path %q on request %s", msg.Path, sess.requestID)
		return nil, false
	}
}

func (r *Recognizer) convertPhrase(msg codec.Message, sess *session) ([]Event, bool) {
	var v speechPhrase
	if err := unmarshal(msg.Payload.Text, &v); err != nil {
		return []Event{errEvent(sess.requestID, azerrors.Wrap(azerrors.KindParseError, "speech.phrase", err))}, false
	}

	switch v.RecognitionStatus {
	case statusSuccess:
		offset := v.Offset + sess.audioOffsetValue()
		sess.onPhraseRecognized(v.Offset + v.Duration)
		return []Event{{
			Kind:       EventRecognized,
			RequestID:  sess.requestID,
			Offset:     offset,
			Duration:   v.Duration,
			Recognized: recognizedFromPhrase(v),
			Raw:        msg.Payload.Text,
		}}, false

	case statusNoMatch, statusInitialSilenceTimeout, statusBabbleTimeout:
		offset := v.Offset + sess.audioOffsetValue()
		return []Event{{
			Kind:      EventUnMatch,
			RequestID: sess.requestID,
			Offset:    offset,
			Duration:  v.Duration,
			Raw:       msg.Payload.Text,
		}}, false

	case statusEndOfDictation:
		// Already signalled via speech.enddetected.
		return nil, false

	case statusError:
		return []Event{errEvent(sess.requestID, azerrors.New(azerrors.KindRuntimeError, "Azure reported RecognitionStatus=Error"))}, true
	case statusBadRequest:
		return []Event{errEvent(sess.requestID, azerrors.New(azerrors.KindBadRequest, "Azure reported RecognitionStatus=BadRequest"))}, true
	case statusForbidden:
		return []Event{errEvent(sess.requestID, azerrors.New(azerrors.KindForbidden, "Azure reported RecognitionStatus=Forbidden"))}, true
	case statusTooManyRequests:
		return []Event{errEvent(sess.requestID, azerrors.New(azerrors.KindTooManyRequests, "Azure reported RecognitionStatus=TooManyRequests"))}, true

	default:
		return []Event{errEvent(sess.requestID, azerrors.New(azerrors.KindInvalidResponse, "unknown RecognitionStatus: "+string(v.RecognitionStatus)))}, true
	}
}
