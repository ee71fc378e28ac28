package recognizer

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/square-key-labs/azurespeech-go/src/codec"
	"github.com/square-key-labs/azurespeech-go/src/config"
	"github.com/square-key-labs/azurespeech-go/src/transport"
)

var upgrader = websocket.Upgrader{}

func wsURL(srv *httptest.Server) string {
	return "ws" + srv.URL[len("http"):]
}

// scriptedServer accepts one connection, captures every inbound frame into
// received, and invokes respond once requestID-bearing frames let it script
// the server's replies - mirroring S3/S4/S7's "simulated server" scenarios.
func scriptedServer(t *testing.T, respond func(conn *websocket.Conn, received <-chan capturedFrame)) (*httptest.Server, chan capturedFrame) {
	t.Helper()
	received := make(chan capturedFrame, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		go func() {
			for {
				mt, data, err := conn.ReadMessage()
				if err != nil {
					return
				}
				received <- capturedFrame{messageType: mt, data: data}
			}
		}()
		go respond(conn, received)
	}))
	t.Cleanup(srv.Close)
	return srv, received
}

type capturedFrame struct {
	messageType int
	data        []byte
}

func headerValue(headers []codec.Header, name string) (string, bool) {
	for _, h := range headers {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// requestIDOf returns the X-RequestId header of a captured outbound text
// frame, the id the session under test generated for itself.
func requestIDOf(t *testing.T, f capturedFrame) string {
	t.Helper()
	headers, _, err := codec.DecodeText(string(f.data))
	require.NoError(t, err)
	id, ok := headerValue(headers, "X-RequestId")
	require.True(t, ok)
	return id
}

func writeText(t *testing.T, conn *websocket.Conn, requestID, path, payload string) {
	t.Helper()
	body := fmt.Sprintf("X-RequestId:%s\r\nPath:%s\r\n\r\n%s", requestID, path, payload)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(body)))
}

func TestRecognizeHappyPath(t *testing.T) {
	ready := make(chan string, 1)

	srv, received := scriptedServer(t, func(conn *websocket.Conn, _ <-chan capturedFrame) {
		requestID := <-ready
		writeText(t, conn, requestID, "turn.start", "{}")
		writeText(t, conn, requestID, "speech.startdetected", `{"Offset":0}`)
		writeText(t, conn, requestID, "speech.hypothesis", `{"Text":"hello","Offset":0,"Duration":0}`)
		writeText(t, conn, requestID, "speech.phrase", `{"RecognitionStatus":"Success","DisplayText":"hello world","Offset":0,"Duration":10000000}`)
		writeText(t, conn, requestID, "speech.enddetected", `{"Offset":0}`)
		writeText(t, conn, requestID, "turn.end", "{}")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr, err := transport.Connect(ctx, transport.URLConnector{URL: wsURL(srv)})
	require.NoError(t, err)

	cfg := config.NewRecognizerConfig("key", "westus", []string{"en-us"})
	r := New(tr, cfg)

	audio := bytes.NewReader(make([]byte, 12288))
	events, err := r.Recognize(ctx, audio, "audio/x-wav")
	require.NoError(t, err)

	// Let the server know it may start replying only once it has seen the
	// setup + audio frames, matching S3's expectation on outbound shape.
	var frames []capturedFrame
	for i := 0; i < 7; i++ {
		select {
		case f := <-received:
			frames = append(frames, f)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for outbound frame %d", i)
		}
	}
	ready <- requestIDOf(t, frames[0])

	// speech.config, speech.context, header-only audio, 3x4096-byte chunks, sentinel.
	require.Len(t, frames, 7)
	assert.Equal(t, websocket.TextMessage, frames[0].messageType)
	assert.Equal(t, websocket.TextMessage, frames[1].messageType)
	for i := 2; i < 7; i++ {
		assert.Equal(t, websocket.BinaryMessage, frames[i].messageType)
	}

	headers, payload, err := codec.DecodeBinary(frames[2].data)
	require.NoError(t, err)
	assert.Empty(t, payload) // the header-only audio frame carries no body
	contentType, ok := headerValue(headers, "Content-Type")
	assert.True(t, ok)
	assert.Equal(t, "audio/x-wav", contentType)

	_, chunk1, err := codec.DecodeBinary(frames[3].data)
	require.NoError(t, err)
	assert.Len(t, chunk1, audioBufferSize)

	_, sentinel, err := codec.DecodeBinary(frames[6].data)
	require.NoError(t, err)
	assert.Empty(t, sentinel)

	var kinds []EventKind
	var texts []string
	for e := range events {
		kinds = append(kinds, e.Kind)
		if e.Kind == EventRecognized || e.Kind == EventRecognizing {
			texts = append(texts, e.Recognized.Text)
		}
		require.Nil(t, e.Err, "unexpected error event: %v", e.Err)
	}

	assert.Equal(t, []EventKind{
		EventSessionStarted,
		EventStartDetected,
		EventRecognizing,
		EventRecognized,
		EventEndDetected,
		EventSessionEnded,
	}, kinds)
	assert.Equal(t, []string{"hello", "hello world"}, texts)
}

func TestRecognizeMultiSessionFiltering(t *testing.T) {
	ready := make(chan struct{})

	srv, _ := scriptedServer(t, func(conn *websocket.Conn, received <-chan capturedFrame) {
		<-ready
		// The first outbound frame is session A's speech.config, enqueued
		// before session B is started.
		idA := requestIDOf(t, <-received)
		writeText(t, conn, idA, "turn.start", "{}")
		writeText(t, conn, idA, "speech.phrase", `{"RecognitionStatus":"Success","DisplayText":"only A","Offset":0,"Duration":0}`)
		writeText(t, conn, idA, "turn.end", "{}")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr, err := transport.Connect(ctx, transport.URLConnector{URL: wsURL(srv)})
	require.NoError(t, err)

	cfg := config.NewRecognizerConfig("key", "westus", []string{"en-us"})

	rA := New(tr, cfg)
	eventsA, err := rA.Recognize(ctx, bytes.NewReader(nil), "audio/x-wav")
	require.NoError(t, err)

	rB := New(tr, cfg)
	eventsB, err := rB.Recognize(ctx, bytes.NewReader(nil), "audio/x-wav")
	require.NoError(t, err)

	close(ready)

	var recognizedOnA bool
	for e := range eventsA {
		if e.Kind == EventRecognized {
			recognizedOnA = true
			assert.Equal(t, "only A", e.Recognized.Text)
		}
		if e.Kind == EventSessionEnded {
			break
		}
	}
	assert.True(t, recognizedOnA)

	select {
	case e, ok := <-eventsB:
		if ok {
			assert.NotEqual(t, EventRecognized, e.Kind, "session B must not see session A's Recognized event")
		}
	case <-time.After(100 * time.Millisecond):
		// B's stream correctly has nothing more to deliver besides SessionStarted.
	}
}

func TestUnMatchOnNoMatchStatus(t *testing.T) {
	ready := make(chan struct{})

	srv, _ := scriptedServer(t, func(conn *websocket.Conn, received <-chan capturedFrame) {
		<-ready
		requestID := requestIDOf(t, <-received)
		writeText(t, conn, requestID, "speech.phrase", `{"RecognitionStatus":"NoMatch"}`)
		writeText(t, conn, requestID, "turn.end", "{}")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr, err := transport.Connect(ctx, transport.URLConnector{URL: wsURL(srv)})
	require.NoError(t, err)

	cfg := config.NewRecognizerConfig("key", "westus", []string{"en-us"})
	r := New(tr, cfg)
	events, err := r.Recognize(ctx, bytes.NewReader(nil), "audio/x-wav")
	require.NoError(t, err)
	close(ready)

	var sawUnMatch bool
	for e := range events {
		if e.Kind == EventUnMatch {
			sawUnMatch = true
		}
	}
	assert.True(t, sawUnMatch)
}

func TestFatalRecognitionStatusTerminatesSession(t *testing.T) {
	ready := make(chan struct{})

	srv, _ := scriptedServer(t, func(conn *websocket.Conn, received <-chan capturedFrame) {
		<-ready
		requestID := requestIDOf(t, <-received)
		writeText(t, conn, requestID, "speech.phrase", `{"RecognitionStatus":"Forbidden"}`)
		// No turn.end - the stream must already be terminal from the error.
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr, err := transport.Connect(ctx, transport.URLConnector{URL: wsURL(srv)})
	require.NoError(t, err)

	cfg := config.NewRecognizerConfig("key", "westus", []string{"en-us"})
	r := New(tr, cfg)
	events, err := r.Recognize(ctx, bytes.NewReader(nil), "audio/x-wav")
	require.NoError(t, err)
	close(ready)

	var last Event
	for e := range events {
		last = e
	}
	require.NotNil(t, last.Err)
	assert.Equal(t, EventError, last.Kind)
}
