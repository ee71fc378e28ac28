// Package endpoint builds the region-specific WebSocket URLs Azure's speech
// service expects, as a pure function of a RecognizerConfig/SynthesizerConfig -
// no I/O, no global state.
//
// Grounded on original_source/src/utils.rs's get_azure_hostname_from_region
// and original_source/src/recognizer/client.rs / synthesizer/client.rs's URL
// assembly (query parameter names kept as-is; url.Values.Encode emits them
// sorted by key).
package endpoint

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/square-key-labs/azurespeech-go/src/config"
)

// hostnameSuffix picks the Azure host suffix for a region string: a
// substring match for "china", a case-insensitive "usgov" prefix, or the
// commercial-cloud default.
func hostnameSuffix(region string) string {
	lower := strings.ToLower(region)
	if strings.Contains(lower, "china") {
		return ".azure.cn"
	}
	if strings.HasPrefix(lower, "usgov") {
		return ".azure.us"
	}
	return ".microsoft.com"
}

// RecognizerURL builds the STT WebSocket URL and query string from a
// RecognizerConfig.
func RecognizerURL(c config.RecognizerConfig) string {
	host := c.Region + ".stt.speech" + hostnameSuffix(c.Region)
	u := &url.URL{Scheme: "wss", Host: host, Path: "/speech/recognition/" + string(c.Mode) + "/cognitiveservices/v1"}

	q := url.Values{}
	q.Set("Ocp-Apim-Subscription-Key", c.SubscriptionKey)
	if len(c.Languages) > 0 {
		q.Set("language", c.Languages[0])
	}
	q.Set("format", string(c.OutputFormat))
	q.Set("profanity", string(c.Profanity))
	q.Set("storeAudio", strconv.FormatBool(c.StoreAudio))

	if c.OutputFormat == config.OutputFormatDetailed {
		q.Set("wordLevelTimestamps", "true")
	}
	if c.LanguageDetectionEnabled() {
		q.Set("lidEnabled", "true")
	}
	if c.ConnectionID != "" {
		q.Set("X-ConnectionId", c.ConnectionID)
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// SynthesizerURL builds the TTS WebSocket URL and query string from a
// SynthesizerConfig. A fresh connection id is generated per call, matching
// the original's per-connect uuid::Uuid::new_v4().
func SynthesizerURL(c config.SynthesizerConfig) string {
	host := c.Region + ".tts.speech" + hostnameSuffix(c.Region)
	u := &url.URL{Scheme: "wss", Host: host, Path: "/cognitiveservices/websocket/v1"}

	q := url.Values{}
	q.Set("Ocp-Apim-Subscription-Key", c.SubscriptionKey)
	q.Set("X-ConnectionId", uuid.NewString())

	u.RawQuery = q.Encode()
	return u.String()
}
