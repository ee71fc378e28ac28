package synthesizer

import "sync"

// session is the per-Synthesize() turn state. Grounded on
// original_source/src/synthesizer/session.rs's SessionExt, trimmed to the
// fields this port actually wires up: the stream id that demultiplexes
// audio frames, and the WebRTC connection string synthesizer.go hands to
// src/webrtcsink when WithWebRTCSink is configured.
type session struct {
	mu sync.Mutex

	requestID              string
	streamID               string
	webrtcConnectionString string
}

func newSession(requestID string) *session {
	return &session{requestID: requestID}
}

func (s *session) setStreamID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streamID = id
}

func (s *session) getStreamID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streamID
}

func (s *session) setWebRTCConnectionString(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.webrtcConnectionString = v
}

func (s *session) getWebRTCConnectionString() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.webrtcConnectionString
}
