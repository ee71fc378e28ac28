package config

// AudioFormat is an opaque Azure output-format identifier for a synthesis
// session. The catalog below is grounded on
// original_source/src/synthesizer/audio_format.rs's AudioFormat enum; the
// core library treats every value as an opaque string handed to
// synthesis.context - only src/audio/opus inspects it, to decide whether a
// payload is Opus-encoded and worth decoding.
type AudioFormat string

const (
	AudioFormatRiff8Khz8BitMonoALaw    AudioFormat = "riff-8khz-8bit-mono-alaw"
	AudioFormatRiff8Khz8BitMonoMULaw   AudioFormat = "riff-8khz-8bit-mono-mulaw"
	AudioFormatRiff8Khz16BitMonoPCM    AudioFormat = "riff-8khz-16bit-mono-pcm"
	AudioFormatRiff16Khz16BitMonoPCM   AudioFormat = "riff-16khz-16bit-mono-pcm"
	AudioFormatRiff22050Hz16BitMonoPCM AudioFormat = "riff-22050hz-16bit-mono-pcm"
	AudioFormatRiff24Khz16BitMonoPCM   AudioFormat = "riff-24khz-16bit-mono-pcm"
	AudioFormatRiff44100Hz16BitMonoPCM AudioFormat = "riff-44100hz-16bit-mono-pcm"
	AudioFormatRiff48Khz16BitMonoPCM   AudioFormat = "riff-48khz-16bit-mono-pcm"

	AudioFormatRaw8Khz8BitMonoMULaw      AudioFormat = "raw-8khz-8bit-mono-mulaw"
	AudioFormatRaw8Khz8BitMonoALaw       AudioFormat = "raw-8khz-8bit-mono-alaw"
	AudioFormatRaw8Khz16BitMonoPCM       AudioFormat = "raw-8khz-16bit-mono-pcm"
	AudioFormatRaw16Khz16BitMonoPCM      AudioFormat = "raw-16khz-16bit-mono-pcm"
	AudioFormatRaw16Khz16BitMonoTrueSilk AudioFormat = "raw-16khz-16bit-mono-truesilk"
	AudioFormatRaw22050Hz16BitMonoPCM    AudioFormat = "raw-22050hz-16bit-mono-pcm"
	AudioFormatRaw24Khz16BitMonoPCM      AudioFormat = "raw-24khz-16bit-mono-pcm"
	AudioFormatRaw24Khz16BitMonoTrueSilk AudioFormat = "raw-24khz-16bit-mono-truesilk"
	AudioFormatRaw44100Hz16BitMonoPCM    AudioFormat = "raw-44100hz-16bit-mono-pcm"
	AudioFormatRaw48Khz16BitMonoPCM      AudioFormat = "raw-48khz-16bit-mono-pcm"

	AudioFormatRiff16Khz16KbpsMonoSiren  AudioFormat = "riff-16khz-16kbps-mono-siren"
	AudioFormatAudio16Khz16KbpsMonoSiren AudioFormat = "audio-16khz-16kbps-mono-siren"

	AudioFormatAudio16Khz32KBitRateMonoMP3  AudioFormat = "audio-16khz-32kbitrate-mono-mp3"
	AudioFormatAudio16Khz64KBitRateMonoMP3  AudioFormat = "audio-16khz-64kbitrate-mono-mp3"
	AudioFormatAudio16Khz128KBitRateMonoMP3 AudioFormat = "audio-16khz-128kbitrate-mono-mp3"
	AudioFormatAudio24Khz48KBitRateMonoMP3  AudioFormat = "audio-24khz-48kbitrate-mono-mp3"
	AudioFormatAudio24Khz96KBitRateMonoMP3  AudioFormat = "audio-24khz-96kbitrate-mono-mp3"
	AudioFormatAudio24Khz160KBitRateMonoMP3 AudioFormat = "audio-24khz-160kbitrate-mono-mp3"
	AudioFormatAudio48Khz96KBitRateMonoMP3  AudioFormat = "audio-48khz-96kbitrate-mono-mp3"
	AudioFormatAudio48Khz192KBitRateMonoMP3 AudioFormat = "audio-48khz-192kbitrate-mono-mp3"

	AudioFormatOgg16Khz16BitMonoOpus            AudioFormat = "ogg-16khz-16bit-mono-opus"
	AudioFormatOgg24Khz16BitMonoOpus            AudioFormat = "ogg-24khz-16bit-mono-opus"
	AudioFormatOgg48Khz16BitMonoOpus             AudioFormat = "ogg-48khz-16bit-mono-opus"
	AudioFormatWebm16Khz16BitMonoOpus            AudioFormat = "webm-16khz-16bit-mono-opus"
	AudioFormatWebm24Khz16BitMonoOpus            AudioFormat = "webm-24khz-16bit-mono-opus"
	AudioFormatWebm24Khz16Bit24KbpsMonoOpus      AudioFormat = "webm-24khz-16bit-24kbps-mono-opus"
	AudioFormatAudio16Khz16Bit32KbpsMonoOpus     AudioFormat = "audio-16khz-16bit-32kbps-mono-opus"
	AudioFormatAudio24Khz16Bit24KbpsMonoOpus     AudioFormat = "audio-24khz-16bit-24kbps-mono-opus"
	AudioFormatAudio24Khz16Bit48KbpsMonoOpus     AudioFormat = "audio-24khz-16bit-48kbps-mono-opus"
)

// IsOpus reports whether the format is one of the Ogg/Webm/raw Opus
// variants, which is the trigger src/audio/opus uses to decide it can decode
// a Synthesising payload.
func (f AudioFormat) IsOpus() bool {
	switch f {
	case AudioFormatOgg16Khz16BitMonoOpus,
		AudioFormatOgg24Khz16BitMonoOpus,
		AudioFormatOgg48Khz16BitMonoOpus,
		AudioFormatWebm16Khz16BitMonoOpus,
		AudioFormatWebm24Khz16BitMonoOpus,
		AudioFormatWebm24Khz16Bit24KbpsMonoOpus,
		AudioFormatAudio16Khz16Bit32KbpsMonoOpus,
		AudioFormatAudio24Khz16Bit24KbpsMonoOpus,
		AudioFormatAudio24Khz16Bit48KbpsMonoOpus:
		return true
	default:
		return false
	}
}

// SampleRate returns the nominal sample rate encoded in the format
// identifier, used by src/audio/opus to size its decoder. Zero means the
// format does not carry a fixed sample rate this library recognizes.
func (f AudioFormat) SampleRate() int {
	switch f {
	case AudioFormatOgg16Khz16BitMonoOpus, AudioFormatAudio16Khz16Bit32KbpsMonoOpus:
		return 16000
	case AudioFormatOgg24Khz16BitMonoOpus, AudioFormatWebm24Khz16BitMonoOpus,
		AudioFormatWebm24Khz16Bit24KbpsMonoOpus, AudioFormatAudio24Khz16Bit24KbpsMonoOpus,
		AudioFormatAudio24Khz16Bit48KbpsMonoOpus:
		return 24000
	case AudioFormatOgg48Khz16BitMonoOpus:
		return 48000
	case AudioFormatWebm16Khz16BitMonoOpus:
		return 16000
	default:
		return 0
	}
}
