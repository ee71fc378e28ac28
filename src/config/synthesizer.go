package config

// SynthesizerConfig carries every caller-facing TTS knob: output format,
// language, voice, boundary/metadata flags, and the language auto-detect
// switch. Grounded on original_source/src/synthesizer/config.rs's Config.
type SynthesizerConfig struct {
	SubscriptionKey string
	Region          string
	Device          Device

	OutputFormat AudioFormat
	Language     string
	Voice        string

	BookmarkEnabled            bool
	WordBoundaryEnabled        bool
	PunctuationBoundaryEnabled bool
	SentenceBoundaryEnabled    bool
	SessionEndEnabled          bool
	VisemeEnabled              bool

	AutoDetectLanguage bool

	// EnableWebRTCSink, when true, tells synthesizer.Synthesize to dial the
	// connectionString Azure advertises on turn.start via src/webrtcsink and
	// pump each Synthesising chunk onto the resulting track, in addition to
	// the plain event stream. Takes effect only when the Synthesizer was
	// also constructed with synthesizer.WithWebRTCSink(offerer) - the
	// signaling callback webrtcsink.Dial needs is a function value, not
	// config data, so it is supplied as a constructor option rather than a
	// config field.
	EnableWebRTCSink bool
}

// NewSynthesizerConfig mirrors the Rust Config::new() defaults: session-end
// metadata and language auto-detection on, everything else off until the
// caller opts in.
func NewSynthesizerConfig(subscriptionKey, region string) SynthesizerConfig {
	return SynthesizerConfig{
		SubscriptionKey:    subscriptionKey,
		Region:             region,
		Device:             DefaultDevice(),
		OutputFormat:       AudioFormatRiff24Khz16BitMonoPCM,
		SessionEndEnabled:  true,
		AutoDetectLanguage: true,
	}
}
