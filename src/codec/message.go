// Package codec implements Azure's framed message encoding: a header block
// plus payload multiplexed onto WebSocket text or binary frames. The codec
// is pure - no I/O, no knowledge of WebSocket semantics - so it can be
// fuzzed and round-tripped independently of the transport.
//
// Grounded on original_source/src/connector/message.rs, translated rather
// than copied: the Rust explode_headers_message has a latent bug (a second
// call to Iterator::nth(0) on an already-advanced iterator only recovers the
// segment immediately after the first colon, silently dropping anything
// past a second colon). This implementation instead splits each header line
// on the first colon only, preserving the full remainder in the value, per
// the header-preservation invariant this library is specified against.
package codec

import (
	"strings"
	"unicode/utf8"

	"github.com/square-key-labs/azurespeech-go/src/azerrors"
)

const crlf = "\r\n"

// PayloadKind tags which of Data's two payload fields is populated.
type PayloadKind int

const (
	PayloadText PayloadKind = iota
	PayloadBinary
)

// Data is a tagged union of text-or-binary payload, with explicit absence
// instead of an untyped nil - the source's "tagged payloads" design note.
type Data struct {
	Kind PayloadKind
	Text string
	Bin  []byte
}

func TextData(s string) Data  { return Data{Kind: PayloadText, Text: s} }
func BinaryData(b []byte) Data { return Data{Kind: PayloadBinary, Bin: b} }

// Header is one name/value pair. Order is preserved on encode.
type Header struct {
	Name  string
	Value string
}

// Message is a decoded framed message: top-level ID/Path lifted out of the
// header list for convenient dispatch, plus the full header list and the
// payload.
type Message struct {
	ID      string
	Path    string
	Headers []Header
	Payload Data
}

// HeaderValue returns the first header matching name case-insensitively,
// and whether it was found.
func (m Message) HeaderValue(name string) (string, bool) {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

func headerLine(h Header) string {
	return h.Name + ":" + h.Value + crlf
}

func encodeHeaders(headers []Header) string {
	var b strings.Builder
	for _, h := range headers {
		b.WriteString(headerLine(h))
	}
	return b.String()
}

// EncodeText renders headers + payload as a WebSocket text frame body:
// "name:value\r\n" lines, a blank-line separator, then the raw payload.
func EncodeText(headers []Header, payload string) string {
	return encodeHeaders(headers) + crlf + payload
}

// DecodeText parses a WebSocket text frame body into its header list and
// payload string. It fails with ParseError if there is no \r\n\r\n
// separator.
func DecodeText(body string) ([]Header, string, error) {
	idx := strings.Index(body, crlf+crlf)
	if idx < 0 {
		return nil, "", azerrors.New(azerrors.KindParseError, "text frame missing header/payload separator")
	}
	headers, err := explodeHeaders(body[:idx])
	if err != nil {
		return nil, "", err
	}
	return headers, body[idx+4:], nil
}

// EncodeBinary renders headers + payload as a WebSocket binary frame:
// [uint16 big-endian header length][header bytes][payload bytes].
func EncodeBinary(headers []Header, payload []byte) []byte {
	headerStr := encodeHeaders(headers)
	headerBytes := []byte(headerStr)
	l := len(headerBytes)

	out := make([]byte, 2+l+len(payload))
	out[0] = byte((l >> 8) & 0xff)
	out[1] = byte(l & 0xff)
	copy(out[2:2+l], headerBytes)
	copy(out[2+l:], payload)
	return out
}

// DecodeBinary parses a WebSocket binary frame into its header list and
// payload bytes. It fails with ParseError if the frame is shorter than its
// own declared header length.
func DecodeBinary(frame []byte) ([]Header, []byte, error) {
	if len(frame) < 2 {
		return nil, nil, azerrors.New(azerrors.KindParseError, "binary frame shorter than length prefix")
	}
	l := int(frame[0])<<8 + int(frame[1])
	if 2+l > len(frame) {
		return nil, nil, azerrors.New(azerrors.KindParseError, "binary frame header length exceeds frame size")
	}
	headers, err := explodeHeaders(string(frame[2 : 2+l]))
	if err != nil {
		return nil, nil, err
	}

	var payload []byte
	if 2+l < len(frame) {
		payload = append([]byte(nil), frame[2+l:]...)
	}
	return headers, payload, nil
}

// explodeHeaders splits a "name:value\r\n..." block into Header pairs.
// Each line is split on the FIRST colon only, so values containing further
// colons are preserved verbatim - see the package doc comment.
func explodeHeaders(block string) ([]Header, error) {
	if !utf8Valid(block) {
		return nil, azerrors.New(azerrors.KindParseError, "header block is not valid utf-8")
	}
	var headers []Header
	for _, line := range strings.Split(block, crlf) {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		value := ""
		if len(parts) == 2 {
			value = strings.TrimSpace(parts[1])
		}
		headers = append(headers, Header{Name: name, Value: value})
	}
	return headers, nil
}

func utf8Valid(s string) bool {
	return utf8.ValidString(s)
}

// ToMessage lifts the top-level ID/Path fields out of a decoded header list,
// matched case-insensitively against X-RequestId/Path per the data model's
// header-matching invariant.
func ToMessage(headers []Header, payload Data) Message {
	m := Message{Headers: headers, Payload: payload}
	for _, h := range headers {
		switch {
		case strings.EqualFold(h.Name, "X-RequestId"):
			m.ID = h.Value
		case strings.EqualFold(h.Name, "Path"):
			m.Path = strings.ToLower(h.Value)
		}
	}
	return m
}

// EncodeMessage renders a Message back to wire bytes of the appropriate
// kind (text or binary), returning the bytes and whether the caller should
// send them as a WebSocket text frame (true) or binary frame (false).
func EncodeMessage(m Message) ([]byte, bool) {
	switch m.Payload.Kind {
	case PayloadBinary:
		return EncodeBinary(m.Headers, m.Payload.Bin), false
	default:
		return []byte(EncodeText(m.Headers, m.Payload.Text)), true
	}
}

// DecodeTextMessage decodes a WebSocket text frame body into a Message.
func DecodeTextMessage(body string) (Message, error) {
	headers, payload, err := DecodeText(body)
	if err != nil {
		return Message{}, err
	}
	return ToMessage(headers, TextData(payload)), nil
}

// DecodeBinaryMessage decodes a WebSocket binary frame into a Message.
func DecodeBinaryMessage(frame []byte) (Message, error) {
	headers, payload, err := DecodeBinary(frame)
	if err != nil {
		return Message{}, err
	}
	return ToMessage(headers, BinaryData(payload)), nil
}
