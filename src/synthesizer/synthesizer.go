package synthesizer

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/square-key-labs/azurespeech-go/src/azerrors"
	"github.com/square-key-labs/azurespeech-go/src/codec"
	"github.com/square-key-labs/azurespeech-go/src/config"
	"github.com/square-key-labs/azurespeech-go/src/logger"
	"github.com/square-key-labs/azurespeech-go/src/transport"
	"github.com/square-key-labs/azurespeech-go/src/webrtcsink"
)

// Synthesizer drives text-to-speech turns against a shared transport. It
// holds the transport by reference, never owning it, the same
// "back references" pattern src/recognizer uses.
type Synthesizer struct {
	transport     *transport.Transport
	config        config.SynthesizerConfig
	log           *logger.Logger
	webrtcOfferer webrtcsink.Offerer
}

// Option configures optional Synthesizer behavior that cannot live in
// config.SynthesizerConfig because it is a function value rather than data.
type Option func(*Synthesizer)

// WithWebRTCSink supplies the signaling callback src/webrtcsink needs to
// dial Azure's WebRTC endpoint. It only takes effect when the caller also
// sets SynthesizerConfig.EnableWebRTCSink; Synthesize then dials offerer
// once a turn.start advertises a connection string, and pumps each
// Synthesising chunk onto the resulting track in addition to the plain
// event stream.
func WithWebRTCSink(offerer webrtcsink.Offerer) Option {
	return func(s *Synthesizer) { s.webrtcOfferer = offerer }
}

// New returns a Synthesizer bound to an already-connected transport.
func New(t *transport.Transport, cfg config.SynthesizerConfig, opts ...Option) *Synthesizer {
	s := &Synthesizer{transport: t, config: cfg, log: logger.WithPrefix("synthesizer")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize drives one text-to-speech turn: sends speech.config,
// synthesis.context and the caller's pre-built SSML document, and returns a
// channel of the interpreted event stream.
func (s *Synthesizer) Synthesize(ctx context.Context, ssml string) (<-chan Event, error) {
	requestID := strings.ReplaceAll(uuid.New().String(), "-", "")

	sub, err := s.transport.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.send(ctx, buildSpeechConfigMessage(requestID, s.config)); err != nil {
		return nil, err
	}
	if err := s.send(ctx, buildSynthesisContextMessage(requestID, s.config)); err != nil {
		return nil, err
	}
	if err := s.send(ctx, buildSSMLMessage(requestID, ssml)); err != nil {
		return nil, err
	}

	sess := newSession(requestID)

	out := make(chan Event, 8)
	go s.interpret(ctx, sub, sess, out)
	return out, nil
}

func (s *Synthesizer) send(ctx context.Context, m codec.Message) error {
	frame, isText := codec.EncodeMessage(m)
	return s.transport.Send(ctx, frame, isText)
}

// interpret reads the subscriber stream, filters to this turn's requestID,
// converts each matching message into an Event, and closes out after
// SessionEnded or a fatal error. When the caller configured WithWebRTCSink
// and SynthesizerConfig.EnableWebRTCSink, it also dials src/webrtcsink as
// soon as a connection string is available and pumps Synthesising chunks
// onto it.
func (s *Synthesizer) interpret(ctx context.Context, sub *transport.Subscription, sess *session, out chan<- Event) {
	defer close(out)

	var sink *webrtcsink.Sink
	defer func() {
		if sink != nil {
			if err := sink.Close(); err != nil {
				s.log.Error("webrtcsink close failed: %v", err)
			}
		}
	}()

	send := func(e Event) bool {
		select {
		case out <- e:
			return true
		case <-ctx.Done():
			return false
		}
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

		event, terminal := s.convert(msg, sess)

		if sink == nil && msg.Path == "turn.start" && s.config.EnableWebRTCSink && s.webrtcOfferer != nil {
			if cs := sess.getWebRTCConnectionString(); cs != "" {
				dialed, dialErr := webrtcsink.Dial(ctx, cs, s.webrtcOfferer)
				if dialErr != nil {
					s.log.Error("webrtcsink dial failed: %v", dialErr)
				} else {
					sink = dialed
				}
			}
		}

		if event != nil {
			if sink != nil && event.Kind == EventSynthesising {
				if werr := sink.Write(event.Audio); werr != nil {
					s.log.Error("webrtcsink write failed: %v", werr)
				}
			}
			if !send(*event) {
				return
			}
		}
		if terminal {
			return
		}
	}
}

// convert turns one matching inbound message into zero or one Event, plus
// whether the session is now terminal. Grounded on
// original_source/src/synthesizer/client.rs's convert_message_to_event.
func (s *Synthesizer) convert(msg codec.Message, sess *session) (*Event, bool) {
	switch msg.Path {
	case "turn.start":
		// turn.start is on the critical path (Section 7 / SPEC_FULL §7): a
		// malformed payload here must end the session, not be silently
		// absorbed.
		var v turnStart
		if err := unmarshal(msg.Payload.Text, &v); err != nil {
			e := errEvent(sess.requestID, azerrors.Wrap(azerrors.KindParseError, "turn.start", err))
			return &e, true
		}
		if v.WebRTC != nil {
			sess.setWebRTCConnectionString(v.WebRTC.ConnectionString)
		}
		e := sessionStarted(sess.requestID)
		return &e, false

	case "response":
		// response is on the critical path too: it is the only source of
		// streamID, and without it no audio frame can ever be attributed to
		// this turn.
		var v responseMessage
		if err := unmarshal(msg.Payload.Text, &v); err != nil {
			e := errEvent(sess.requestID, azerrors.Wrap(azerrors.KindParseError, "response", err))
			return &e, true
		}
		sess.setStreamID(v.Audio.StreamID)
		return nil, false

	case "audio":
		return s.convertAudio(msg, sess)

	case "audio.metadata":
		metadata, err := parseMetadata(msg.Payload.Text)
		if err != nil {
			e := errEvent(sess.requestID, azerrors.Wrap(azerrors.KindParseError, "audio.metadata", err))
			return &e, false
		}
		e := audioMetadata(sess.requestID, metadata)
		return &e, false

	case "turn.end":
		e := sessionEnded(sess.requestID)
		return &e, true

	default:
		s.log.Debug("unhandled path %q on request %s", msg.Path, sess.requestID)
		return nil, false
	}
}

func (s *Synthesizer) convertAudio(msg codec.Message, sess *session) (*Event, bool) {
	if len(msg.Payload.Bin) == 0 {
		e := synthesised(sess.requestID)
		return &e, false
	}

	streamID, _ := msg.HeaderValue("X-StreamId")
	if streamID != sess.getStreamID() {
		return nil, false
	}

	e := synthesising(sess.requestID, msg.Payload.Bin)
	return &e, false
}
