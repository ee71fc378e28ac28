package recognizer

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

// buildSpeechConfigMessage renders the speech.config text message: device
// metadata plus the recognition mode. Grounded on
// original_source/src/recognizer/utils.rs's create_speech_config_message.
func buildSpeechConfigMessage(requestID string, c config.RecognizerConfig) codec.Message {
	type audioSource struct {
		Connectivity  string `json:"connectivity"`
		Manufacturer  string `json:"manufacturer"`
		Model         string `json:"model"`
		Type          string `json:"type"`
		SampleRate    int    `json:"samplerate"`
		BitsPerSample int    `json:"bitspersample"`
		ChannelCount  int    `json:"channelcount"`
	}
	body := struct {
		Context struct {
			System config.System `json:"system"`
			OS     config.OS     `json:"os"`
			Audio  struct {
				Source audioSource `json:"source"`
			} `json:"audio"`
		} `json:"context"`
		Recognition config.Mode `json:"recognition"`
	}{}
	body.Context.System = c.Device.System
	body.Context.OS = c.Device.OS
	body.Context.Audio.Source = audioSource{
		Connectivity:  c.AudioSource.Connectivity,
		Manufacturer:  c.AudioSource.Manufacturer,
		Model:         c.AudioSource.Model,
		Type:          c.AudioSource.Type,
		SampleRate:    c.AudioSource.SampleRate,
		BitsPerSample: c.AudioSource.BitsPerSample,
		ChannelCount:  c.AudioSource.ChannelCount,
	}
	body.Recognition = c.Mode

	payload, _ := json.Marshal(body)
	headers := []codec.Header{
		{Name: "X-RequestId", Value: requestID},
		{Name: "Path", Value: "speech.config"},
		{Name: "Content-Type", Value: "application/json"},
		timestampHeader(),
	}
	return codec.Message{ID: requestID, Path: "speech.config", Headers: headers, Payload: codec.TextData(string(payload))}
}

// buildSpeechContextMessage renders the speech.context text message: phrase
// hints (dgi), language-detection config, custom-model bindings and
// phrase-detection/output flags - all optional, included only when the
// config asks for them. Grounded on
// original_source/src/recognizer/utils.rs's create_speech_context_message.
func buildSpeechContextMessage(requestID string, c config.RecognizerConfig) codec.Message {
	context := map[string]interface{}{}

	if len(c.Phrases) > 0 {
		items := make([]map[string]string, 0, len(c.Phrases))
		for _, p := range c.Phrases {
			items = append(items, map[string]string{"Text": p})
		}
		context["dgi"] = map[string]interface{}{
			"Groups": []map[string]interface{}{
				{"Type": "Generic", "Items": items},
			},
		}
	}

	if c.LanguageDetectionEnabled() {
		context["languageId"] = map[string]interface{}{
			"mode":     c.LanguageDetectMode,
			"Priority": "PrioritizeLatency",
			"languages": c.Languages,
			"onSuccess": map[string]string{"action": "Recognize"},
			"onUnknown": map[string]string{"action": "None"},
		}

		var customModels interface{}
		if len(c.CustomModels) > 0 {
			cm := make([]map[string]string, 0, len(c.CustomModels))
			for _, m := range c.CustomModels {
				cm = append(cm, map[string]string{"language": m.Language, "endpoint": m.Endpoint})
			}
			customModels = cm
		}

		context["phraseDetection"] = map[string]interface{}{
			"customModels": customModels,
			"onInterim":    nil,
			"onSuccess":    nil,
		}

		context["phraseOutput"] = map[string]interface{}{
			"interimResults": map[string]string{"resultType": "Auto"},
			"phraseResults":  map[string]string{"resultType": "Always"},
		}
	}

	payload, _ := json.Marshal(context)
	headers := []codec.Header{
		{Name: "X-RequestId", Value: requestID},
		{Name: "Path", Value: "speech.context"},
		{Name: "Content-Type", Value: "application/json"},
		timestampHeader(),
	}
	return codec.Message{ID: requestID, Path: "speech.context", Headers: headers, Payload: codec.TextData(string(payload))}
}

// buildAudioHeadersMessage is the header-only binary frame announcing the
// content type of the audio stream about to follow.
func buildAudioHeadersMessage(requestID, contentType string) codec.Message {
	headers := []codec.Header{
		{Name: "X-RequestId", Value: requestID},
		{Name: "Path", Value: "audio"},
		{Name: "Content-Type", Value: contentType},
		timestampHeader(),
	}
	return codec.Message{ID: requestID, Path: "audio", Headers: headers, Payload: codec.BinaryData(nil)}
}

// buildAudioMessage is one binary audio chunk (or, with a nil payload, the
// end-of-stream sentinel). Continuation frames carry only X-Timestamp, per
// the spec's "Content-Type omitted on continuation frames".
func buildAudioMessage(requestID string, payload []byte) codec.Message {
	headers := []codec.Header{
		{Name: "X-RequestId", Value: requestID},
		{Name: "Path", Value: "audio"},
		timestampHeader(),
	}
	return codec.Message{ID: requestID, Path: "audio", Headers: headers, Payload: codec.BinaryData(payload)}
}
