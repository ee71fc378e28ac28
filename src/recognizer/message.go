package recognizer

import "encoding/json"

// speechStartDetected mirrors the speech.startdetected payload.
// Grounded on original_source/src/recognizer/message/speech_start_detected.rs.
type speechStartDetected struct {
	Offset int64 `json:"Offset"`
}

// speechEndDetected mirrors the speech.enddetected payload. Offset is
// optional on the wire; a missing value reports as 0, matching the
// original's serde(default).
type speechEndDetected struct {
	Offset int64 `json:"Offset"`
}

// primaryLanguage mirrors the PrimaryLanguage object nested in
// speech.hypothesis and speech.phrase payloads.
type primaryLanguage struct {
	Language   string `json:"Language"`
	Confidence string `json:"Confidence,omitempty"`
}

// speechHypothesis mirrors the speech.hypothesis / speech.fragment payload.
// Grounded on original_source/src/recognizer/message/speech_hypothesis.rs.
type speechHypothesis struct {
	Text            string           `json:"Text"`
	Offset          int64            `json:"Offset"`
	Duration        int64            `json:"Duration"`
	PrimaryLanguage *primaryLanguage `json:"PrimaryLanguage,omitempty"`
	SpeakerID       string           `json:"SpeakerId,omitempty"`
}

// recognitionStatus is the status code speech.phrase carries. Grounded on
// original_source/src/recognizer/event.rs's RecognitionStatus enum.
type recognitionStatus string

const (
	statusSuccess              recognitionStatus = "Success"
	statusNoMatch              recognitionStatus = "NoMatch"
	statusInitialSilenceTimeout recognitionStatus = "InitialSilenceTimeout"
	statusBabbleTimeout        recognitionStatus = "BabbleTimeout"
	statusError                recognitionStatus = "Error"
	statusEndOfDictation       recognitionStatus = "EndOfDictation"
	statusTooManyRequests      recognitionStatus = "TooManyRequests"
	statusBadRequest           recognitionStatus = "BadRequest"
	statusForbidden            recognitionStatus = "Forbidden"
)

// nBestEntry is one candidate in a detailed speech.phrase's NBest list.
type nBestEntry struct {
	Display         string           `json:"Display"`
	PrimaryLanguage *primaryLanguage `json:"PrimaryLanguage,omitempty"`
	SpeakerID       string           `json:"SpeakerId,omitempty"`
}

// speechPhrase mirrors the speech.phrase payload in both its simple
// (DisplayText) and detailed (NBest) shapes. Grounded on
// original_source/src/recognizer/message/speech_phrase.rs.
type speechPhrase struct {
	RecognitionStatus recognitionStatus `json:"RecognitionStatus"`
	DisplayText       string            `json:"DisplayText,omitempty"`
	Offset            int64             `json:"Offset"`
	Duration          int64             `json:"Duration"`
	PrimaryLanguage   *primaryLanguage  `json:"PrimaryLanguage,omitempty"`
	SpeakerID         string            `json:"SpeakerId,omitempty"`
	NBest             []nBestEntry      `json:"NBest,omitempty"`
}

// recognizedFromPhrase extracts the text/language/speaker a Recognized event
// reports: DisplayText for a simple-format phrase, or the first NBest entry
// for a detailed-format one.
func recognizedFromPhrase(p speechPhrase) Recognized {
	if len(p.NBest) > 0 {
		best := p.NBest[0]
		return Recognized{
			Text:            best.Display,
			PrimaryLanguage: toPrimaryLanguage(best.PrimaryLanguage),
			SpeakerID:       best.SpeakerID,
		}
	}
	return Recognized{
		Text:            p.DisplayText,
		PrimaryLanguage: toPrimaryLanguage(p.PrimaryLanguage),
		SpeakerID:       p.SpeakerID,
	}
}

func toPrimaryLanguage(p *primaryLanguage) *PrimaryLanguage {
	if p == nil {
		return nil
	}
	return &PrimaryLanguage{Language: p.Language, Confidence: p.Confidence}
}

func unmarshal(data string, v interface{}) error {
	return json.Unmarshal([]byte(data), v)
}
