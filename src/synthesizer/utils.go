package synthesizer

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/square-key-labs/azurespeech-go/src/codec"
	"github.com/square-key-labs/azurespeech-go/src/config"
)

func timestampHeader() codec.Header {
	return codec.Header{Name: "X-Timestamp", Value: strconv.FormatInt(time.Now().UnixMilli(), 10)}
}

// buildSpeechConfigMessage renders the speech.config text message carrying
// device metadata. Grounded on
// original_source/src/synthesizer/utils.rs's create_speech_config_message.
func buildSpeechConfigMessage(requestID string, c config.SynthesizerConfig) codec.Message {
	body := struct {
		Context struct {
			System config.System `json:"system"`
			OS     config.OS     `json:"os"`
		} `json:"context"`
	}{}
	body.Context.System = c.Device.System
	body.Context.OS = c.Device.OS

	payload, _ := json.Marshal(body)
	headers := []codec.Header{
		{Name: "X-RequestId", Value: requestID},
		{Name: "Path", Value: "speech.config"},
		{Name: "Content-Type", Value: "application/json"},
		timestampHeader(),
	}
	return codec.Message{ID: requestID, Path: "speech.config", Headers: headers, Payload: codec.TextData(string(payload))}
}

// buildSynthesisContextMessage renders the synthesis.context text message:
// metadata option flags, output format and the language auto-detect switch.
// Grounded on
// original_source/src/synthesizer/utils.rs's create_synthesis_context_message.
func buildSynthesisContextMessage(requestID string, c config.SynthesizerConfig) codec.Message {
	body := map[string]interface{}{
		"synthesis": map[string]interface{}{
			"audio": map[string]interface{}{
				"metadataOptions": map[string]bool{
					"bookmarkEnabled":            c.BookmarkEnabled,
					"punctuationBoundaryEnabled": c.PunctuationBoundaryEnabled,
					"sentenceBoundaryEnabled":    c.SentenceBoundaryEnabled,
					"sessionEndEnabled":          c.SessionEndEnabled,
					"visemeEnabled":              c.VisemeEnabled,
					"wordBoundaryEnabled":        c.WordBoundaryEnabled,
				},
				"outputFormat": string(c.OutputFormat),
			},
			"language": map[string]bool{"autoDetection": c.AutoDetectLanguage},
		},
	}

	payload, _ := json.Marshal(body)
	headers := []codec.Header{
		{Name: "X-RequestId", Value: requestID},
		{Name: "Path", Value: "synthesis.context"},
		{Name: "Content-Type", Value: "application/json"},
		timestampHeader(),
	}
	return codec.Message{ID: requestID, Path: "synthesis.context", Headers: headers, Payload: codec.TextData(string(payload))}
}

// buildSSMLMessage renders the ssml text message carrying the caller's
// pre-built SSML document verbatim.
func buildSSMLMessage(requestID, ssml string) codec.Message {
	headers := []codec.Header{
		{Name: "X-RequestId", Value: requestID},
		{Name: "Path", Value: "ssml"},
		{Name: "Content-Type", Value: "application/ssml+xml"},
		timestampHeader(),
	}
	return codec.Message{ID: requestID, Path: "ssml", Headers: headers, Payload: codec.TextData(ssml)}
}
