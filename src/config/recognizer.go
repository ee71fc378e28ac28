package config

// Mode selects the Azure recognition mode, which also selects the
// STT WebSocket path via the endpoint builder.
type Mode string

const (
	ModeConversation Mode = "conversation"
	ModeInteractive  Mode = "interactive"
	ModeDictation    Mode = "dictation"
)

// OutputFormat selects how much detail Azure includes in speech.phrase
// messages.
type OutputFormat string

const (
	OutputFormatSimple   OutputFormat = "simple"
	OutputFormatDetailed OutputFormat = "detailed"
)

// Profanity selects how Azure filters profane words in recognized text.
type Profanity string

const (
	ProfanityMasked  Profanity = "masked"
	ProfanityRemoved Profanity = "removed"
	ProfanityRaw     Profanity = "raw"
)

// LanguageDetectMode selects how Azure performs language identification
// across a multi-language recognition session.
type LanguageDetectMode string

const (
	LanguageDetectContinuous LanguageDetectMode = "Continuous"
	LanguageDetectAtStart    LanguageDetectMode = "AtStart"
)

// CustomModel binds a language code to a custom Azure speech endpoint.
type CustomModel struct {
	Language string
	Endpoint string
}

// AudioSource describes the physical audio source metadata reported in the
// speech.config message's context.audio.source object.
type AudioSource struct {
	Connectivity  string
	Manufacturer  string
	Model         string
	Type          string
	SampleRate    int
	BitsPerSample int
	ChannelCount  int
}

// UnknownAudioSource mirrors the Rust original's Details::unknown() used
// when the caller has no real device details to report.
func UnknownAudioSource(sampleRate, bitsPerSample, channels int) AudioSource {
	return AudioSource{
		Connectivity:  "Unknown",
		Manufacturer:  "Unknown",
		Model:         "Unknown",
		Type:          "Unknown",
		SampleRate:    sampleRate,
		BitsPerSample: bitsPerSample,
		ChannelCount:  channels,
	}
}

// RecognizerConfig carries every caller-facing STT knob named by this
// library's specification: mode, output format, profanity filtering,
// language list and detection mode, phrase hints and custom model bindings.
type RecognizerConfig struct {
	Mode                 Mode
	OutputFormat         OutputFormat
	Profanity            Profanity
	Languages            []string
	LanguageDetectMode   LanguageDetectMode
	Phrases              []string
	CustomModels         []CustomModel
	StoreAudio           bool
	ConnectionID         string
	SubscriptionKey      string
	Region               string
	Device               Device
	AudioSource          AudioSource
}

// NewRecognizerConfig returns a RecognizerConfig with the defaults the
// original source applies: conversation mode, simple output, masked
// profanity, AtStart language detection, and the caller's language list.
func NewRecognizerConfig(subscriptionKey, region string, languages []string) RecognizerConfig {
	return RecognizerConfig{
		Mode:               ModeConversation,
		OutputFormat:       OutputFormatSimple,
		Profanity:          ProfanityMasked,
		Languages:          languages,
		LanguageDetectMode: LanguageDetectAtStart,
		SubscriptionKey:    subscriptionKey,
		Region:             region,
		Device:             DefaultDevice(),
		AudioSource:        UnknownAudioSource(16000, 16, 1),
	}
}

// LanguageDetectionEnabled reports whether more than one language was
// configured, which is the trigger for emitting the languageId/
// phraseDetection/phraseOutput blocks in speech.context.
func (c RecognizerConfig) LanguageDetectionEnabled() bool {
	return len(c.Languages) > 1
}
