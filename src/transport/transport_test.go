package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/square-key-labs/azurespeech-go/src/azerrors"
	"github.com/square-key-labs/azurespeech-go/src/logger"
)

func quietLogger() *logger.Logger {
	return logger.New(logger.ERROR, "transport-test")
}

var upgrader = websocket.Upgrader{}

// echoServer accepts one connection and calls handle with the server-side
// socket, letting each test script the exact bytes sent to the client.
func echoServer(t *testing.T, handle func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		go handle(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + srv.URL[len("http"):]
}

func TestSendDeliversToPeerInOrder(t *testing.T) {
	received := make(chan string, 8)
	srv := echoServer(t, func(conn *websocket.Conn) {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			received <- string(data)
		}
	})

	ctx := context.Background()
	tr, err := Connect(ctx, URLConnector{URL: wsURL(srv)})
	require.NoError(t, err)

	require.NoError(t, tr.Send(ctx, []byte("one"), true))
	require.NoError(t, tr.Send(ctx, []byte("two"), true))
	require.NoError(t, tr.Send(ctx, []byte("three"), true))

	assert.Equal(t, "one", <-received)
	assert.Equal(t, "two", <-received)
	assert.Equal(t, "three", <-received)
}

func TestSubscribeReceivesInboundMessages(t *testing.T) {
	srv := echoServer(t, func(conn *websocket.Conn) {
		time.Sleep(20 * time.Millisecond)
		_ = conn.WriteMessage(websocket.TextMessage, []byte("X-RequestId:AAA\r\nPath:turn.start\r\n\r\n{}"))
	})

	ctx := context.Background()
	tr, err := Connect(ctx, URLConnector{URL: wsURL(srv)})
	require.NoError(t, err)

	sub, err := tr.Subscribe(ctx)
	require.NoError(t, err)

	msg, err := sub.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, "turn.start", msg.Path)
	assert.Equal(t, "AAA", msg.ID)
}

func TestSubscribersCreatedAfterMessageDoNotSeeIt(t *testing.T) {
	firstSubReady := make(chan struct{})
	srv := echoServer(t, func(conn *websocket.Conn) {
		<-firstSubReady
		_ = conn.WriteMessage(websocket.TextMessage, []byte("Path:turn.start\r\n\r\n{}"))
		time.Sleep(20 * time.Millisecond)
		_ = conn.WriteMessage(websocket.TextMessage, []byte("Path:turn.end\r\n\r\n{}"))
	})

	ctx := context.Background()
	tr, err := Connect(ctx, URLConnector{URL: wsURL(srv)})
	require.NoError(t, err)

	sub1, err := tr.Subscribe(ctx)
	require.NoError(t, err)
	close(firstSubReady)

	msg1, err := sub1.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, "turn.start", msg1.Path)

	sub2, err := tr.Subscribe(ctx)
	require.NoError(t, err)

	msg2, err := sub2.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, "turn.end", msg2.Path, "subscriber created after turn.start must not see it")
}

// mockConnector fails failTimes times before succeeding, mirroring
// original_source/src/connector/client.rs's MockConnector test - here
// exercised directly against reconnectWithAttempts the way the original
// tests the helper function in isolation rather than the whole client.
type mockConnector struct {
	failTimes int32
	calls     int32
	url       string
}

func (m *mockConnector) Connect(ctx context.Context) (*websocket.Conn, error) {
	n := atomic.AddInt32(&m.calls, 1)
	if n <= m.failTimes {
		return nil, assert.AnError
	}
	return URLConnector{URL: m.url}.Connect(ctx)
}

func TestReconnectHelperSucceedsAfterRetries(t *testing.T) {
	srv := echoServer(t, func(conn *websocket.Conn) {})
	connector := &mockConnector{failTimes: 2, url: wsURL(srv)}

	conn, err := reconnectWithAttempts(context.Background(), connector, 3, quietLogger())
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.EqualValues(t, 3, atomic.LoadInt32(&connector.calls))
}

func TestReconnectHelperFailsAfterMaxAttempts(t *testing.T) {
	connector := &mockConnector{failTimes: 5, url: "ws://127.0.0.1:1/does-not-matter"}

	_, err := reconnectWithAttempts(context.Background(), connector, 3, quietLogger())
	assert.Error(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&connector.calls))
}

// TestSubscribeReconnectsAfterServerClose exercises the S5 scenario end to
// end through the public Transport API: once the peer closes the socket, a
// subsequent Subscribe must reconnect before returning a working stream.
func TestSubscribeReconnectsAfterServerClose(t *testing.T) {
	closed := make(chan struct{})
	srv := echoServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		_ = conn.Close()
		close(closed)
	})

	ctx := context.Background()
	tr, err := Connect(ctx, URLConnector{URL: wsURL(srv)})
	require.NoError(t, err)

	<-closed
	require.Eventually(t, func() bool {
		sub, err := tr.Subscribe(ctx)
		return err == nil && sub != nil
	}, time.Second, 10*time.Millisecond)
}

func TestTimeoutSurfacesThenStreamRemainsReadable(t *testing.T) {
	inactivityTimeout = 100 * time.Millisecond
	defer func() { inactivityTimeout = 30 * time.Second }()

	srv := echoServer(t, func(conn *websocket.Conn) {
		time.Sleep(150 * time.Millisecond)
		_ = conn.WriteMessage(websocket.TextMessage, []byte("Path:turn.end\r\n\r\n{}"))
	})

	ctx := context.Background()
	tr, err := Connect(ctx, URLConnector{URL: wsURL(srv)})
	require.NoError(t, err)

	sub, err := tr.Subscribe(ctx)
	require.NoError(t, err)

	_, err = sub.Recv(ctx)
	require.Error(t, err)
	assert.True(t, azerrors.New(azerrors.KindTimeout, "").Is(err) || isTimeout(err))

	msg, err := sub.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, "turn.end", msg.Path)
}

func isTimeout(err error) bool {
	ae, ok := err.(*azerrors.Error)
	return ok && ae.Kind == azerrors.KindTimeout
}

func TestDisconnectClosesSubscribers(t *testing.T) {
	srv := echoServer(t, func(conn *websocket.Conn) {})

	ctx := context.Background()
	tr, err := Connect(ctx, URLConnector{URL: wsURL(srv)})
	require.NoError(t, err)

	sub, err := tr.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, tr.Disconnect(ctx))

	_, err = sub.Recv(ctx)
	assert.Error(t, err)
}
