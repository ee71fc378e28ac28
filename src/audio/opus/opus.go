// Package opus decodes Opus-family synthesis output into PCM frames. It is
// opt-in tooling layered on top of src/synthesizer: the session itself never
// decodes anything, it always emits the raw bytes Azure sends, and a caller
// configured for one of config.AudioFormat's Opus variants reaches for this
// package when it wants PCM instead.
//
// Grounded on original_source/src/synthesizer/audio_format.rs's Opus-family
// AudioFormat variants (the Rust original never decodes either - as_str()
// just names the wire format). Wraps gopkg.in/hraban/opus.v2, present in the
// teacher's go.mod but never exercised by any teacher code.
package opus

import (
	"fmt"

	hopus "gopkg.in/hraban/opus.v2"

	"github.com/square-key-labs/azurespeech-go/src/audio"
	"github.com/square-key-labs/azurespeech-go/src/azerrors"
	"github.com/square-key-labs/azurespeech-go/src/config"
)

// frameSamples is the per-Decode sample budget: 120ms at 48kHz, the longest
// duration one Opus packet can carry, sized generously rather than exactly
// since Decode reports the real sample count back.
const frameSamples = 5760

// Decoder decodes a stream of raw Opus packets sharing one sample rate and
// channel count into PCM int16 samples.
type Decoder struct {
	dec      *hopus.Decoder
	channels int
}

// NewDecoder builds a Decoder for the given format. Returns an error if the
// format is not one of config.AudioFormat's Opus variants or its sample rate
// is not one this library recognizes.
func NewDecoder(format config.AudioFormat) (*Decoder, error) {
	if !format.IsOpus() {
		return nil, azerrors.New(azerrors.KindInvalidResponse, fmt.Sprintf("%s is not an Opus output format", format))
	}
	rate := format.SampleRate()
	if rate == 0 {
		return nil, azerrors.New(azerrors.KindInvalidResponse, fmt.Sprintf("%s has no recognized sample rate", format))
	}

	const channels = 1
	dec, err := hopus.NewDecoder(rate, channels)
	if err != nil {
		return nil, azerrors.Wrap(azerrors.KindInternalError, "opus: new decoder", err)
	}
	return &Decoder{dec: dec, channels: channels}, nil
}

// DecodePacket decodes one raw Opus packet (as found inside an Ogg/Webm
// page, or as Azure's raw Opus formats send directly) into little-endian
// PCM16 bytes via src/audio.PCMToBytes.
func (d *Decoder) DecodePacket(packet []byte) ([]byte, error) {
	pcm := make([]int16, frameSamples*d.channels)
	n, err := d.dec.Decode(packet, pcm)
	if err != nil {
		return nil, azerrors.Wrap(azerrors.KindParseError, "opus: decode", err)
	}
	return audio.PCMToBytes(pcm[:n*d.channels]), nil
}

// DecodePackets decodes a sequence of raw Opus packets and concatenates the
// resulting PCM bytes in order.
func (d *Decoder) DecodePackets(packets [][]byte) ([]byte, error) {
	var out []byte
	for _, p := range packets {
		pcm, err := d.DecodePacket(p)
		if err != nil {
			return nil, err
		}
		out = append(out, pcm...)
	}
	return out, nil
}
