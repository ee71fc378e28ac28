package recognizer

import "sync"

// session is the per-Recognize() turn state. Grounded on
// original_source/src/recognizer/session.rs's Session/SessionInner split
// (an Arc<Mutex<...>> there, a plain sync.Mutex here since Go gives us
// shared ownership for free via the pointer receiver).
//
// audioOffset is mutated from the event-interpretation goroutine only
// (advanced after each successfully recognized phrase); audioCompleted is
// mutated from the audio-pump goroutine only. Both live under the same
// mutex per the "shared mutable session" design note - the critical
// sections are trivial so a single lock is never a contention concern.
type session struct {
	mu sync.Mutex

	requestID          string
	audioOffset        int64
	hypothesisReceived bool
	audioCompleted     bool
}

func newSession(requestID string) *session {
	return &session{requestID: requestID}
}

func (s *session) setAudioCompleted(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioCompleted = v
}

func (s *session) isAudioCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audioCompleted
}

func (s *session) audioOffsetValue() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audioOffset
}

func (s *session) onHypothesisReceived() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hypothesisReceived = true
}

// onPhraseRecognized advances audioOffset by the cumulative duration of a
// successfully recognized phrase and clears hypothesisReceived, matching
// Session::on_phrase_recognized in the original.
func (s *session) onPhraseRecognized(advance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioOffset += advance
	s.hypothesisReceived = false
}
