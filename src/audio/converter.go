// Package audio holds small, dependency-free PCM helpers shared by the rest
// of this library's audio tooling. Adapted from the teacher's
// AudioConverterProcessor (originally a frame-pipeline stage converting
// between codecs/sample rates for telephony audio); this port keeps only the
// byte<->PCM16 conversion src/audio/opus needs and drops the
// processor/frame/mulaw/resample machinery the teacher built around it,
// which has no caller in a protocol client that never touches telephony
// codecs.
package audio

import (
	"encoding/binary"
	"fmt"
)

// BytesToPCM converts a little-endian PCM16 byte slice to int16 samples.
func BytesToPCM(data []byte) ([]int16, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("invalid PCM data length: %d", len(data))
	}
	pcm := make([]int16, len(data)/2)
	for i := 0; i < len(pcm); i++ {
		pcm[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return pcm, nil
}

// PCMToBytes converts int16 PCM samples to little-endian bytes.
func PCMToBytes(pcm []int16) []byte {
	data := make([]byte, len(pcm)*2)
	for i, val := range pcm {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(val))
	}
	return data
}
