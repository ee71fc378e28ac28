// Package transport maintains one multiplexed, reconnecting WebSocket
// connection to Azure's speech service: it encodes/decodes framed messages
// via src/codec and fans decoded inbound messages out to any number of
// subscribers.
//
// Grounded on original_source/src/connector/client.rs (the single-task,
// command-channel-plus-broadcast design) and on the teacher's
// src/transports/websocket.go (the separate read pump and the single
// goroutine that owns the socket and performs every write). Rust's tokio::sync::broadcast
// channel has no direct Go standard-library analogue, so the fan-out here
// is a small hand-rolled map of per-subscriber buffered channels guarded by
// the transport's own single-goroutine ownership - no extra locking needed
// since only the run loop ever touches the map.
package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/square-key-labs/azurespeech-go/src/azerrors"
	"github.com/square-key-labs/azurespeech-go/src/codec"
	"github.com/square-key-labs/azurespeech-go/src/logger"
)

const (
	reconnectAttempts = 3
	subscriberBuffer  = 32
)

// inactivityTimeout is a var, not a const, so tests can shrink it instead of
// waiting out a real 30s window.
var inactivityTimeout = 30 * time.Second

// Connector abstracts dialing the WebSocket so tests can inject a mock that
// fails N times before succeeding (mirrors original_source's MockConnector).
type Connector interface {
	Connect(ctx context.Context) (*websocket.Conn, error)
}

// URLConnector dials a fixed URL with fixed headers using gorilla/websocket,
// the teacher's transport dependency.
type URLConnector struct {
	URL    string
	Header http.Header
}

func (c URLConnector) Connect(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL, c.Header)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Item is one value delivered to a Subscription: either a decoded message
// or a non-fatal/fatal error (Timeout, Lagged, ServerDisconnect, ...).
type Item struct {
	Msg codec.Message
	Err error
}

// Subscription is a fresh inbound stream obtained from Subscribe. It
// applies the 30-second inactivity timeout described in the transport's
// subscriber contract.
type Subscription struct {
	id int
	ch chan Item
	t  *Transport
}

// Recv blocks for the next item, a Timeout after 30s of inbound silence, or
// ctx cancellation. The subscription remains usable after a Timeout or
// Lagged item.
func (s *Subscription) Recv(ctx context.Context) (codec.Message, error) {
	timer := time.NewTimer(inactivityTimeout)
	defer timer.Stop()

	select {
	case item, ok := <-s.ch:
		if !ok {
			return codec.Message{}, azerrors.New(azerrors.KindServerDisconnect, "transport disconnected")
		}
		if item.Err != nil {
			return codec.Message{}, item.Err
		}
		return item.Msg, nil
	case <-timer.C:
		return codec.Message{}, azerrors.New(azerrors.KindTimeout, "no inbound traffic for 30s")
	case <-ctx.Done():
		return codec.Message{}, ctx.Err()
	}
}

type commandKind int

const (
	cmdSend commandKind = iota
	cmdSubscribe
	cmdDisconnect
)

type command struct {
	kind   commandKind
	frame  []byte
	isText bool
	reply  chan subscribeResult
}

type subscribeResult struct {
	sub *Subscription
	err error
}

type genRead struct {
	gen         int
	messageType int
	data        []byte
	err         error
}

// Transport owns one WebSocket connection and the single background
// goroutine arbitrating sends, subscribes and inbound reads.
type Transport struct {
	cmdCh chan command
	done  chan struct{}
	log   *logger.Logger
}

// Connect opens one WebSocket via connector and starts the transport's
// background goroutine. It fails with ConnectionError if the initial
// handshake fails.
func Connect(ctx context.Context, connector Connector) (*Transport, error) {
	conn, err := connector.Connect(ctx)
	if err != nil {
		return nil, azerrors.Wrap(azerrors.KindConnectionError, "initial handshake failed", err)
	}

	t := &Transport{
		cmdCh: make(chan command, 64),
		done:  make(chan struct{}),
		log:   logger.WithPrefix("transport"),
	}
	go t.run(connector, conn)
	return t, nil
}

// Send enqueues an outbound message already encoded by src/codec. It
// returns as soon as the command is accepted; delivery errors surface
// asynchronously on subscriber streams, never from Send itself.
func (t *Transport) Send(ctx context.Context, frame []byte, isText bool) error {
	select {
	case t.cmdCh <- command{kind: cmdSend, frame: frame, isText: isText}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-t.done:
		return azerrors.New(azerrors.KindConnectionError, "transport already disconnected")
	}
}

// Subscribe obtains a fresh inbound stream. If the transport is currently
// disconnected it attempts up to three reconnects before returning.
func (t *Transport) Subscribe(ctx context.Context) (*Subscription, error) {
	reply := make(chan subscribeResult, 1)
	select {
	case t.cmdCh <- command{kind: cmdSubscribe, reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.done:
		return nil, azerrors.New(azerrors.KindConnectionError, "transport already disconnected")
	}

	select {
	case res := <-reply:
		return res.sub, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Disconnect initiates a clean close, drains the background goroutine and
// resolves when the socket is fully closed.
func (t *Transport) Disconnect(ctx context.Context) error {
	select {
	case t.cmdCh <- command{kind: cmdDisconnect}:
	case <-ctx.Done():
		return ctx.Err()
	case <-t.done:
		return nil
	}

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Transport) run(connector Connector, conn *websocket.Conn) {
	defer close(t.done)

	connected := true
	gen := 0
	inbound := make(chan genRead, 64)
	nextSubID := 0
	subscribers := make(map[int]chan Item)

	go readPump(conn, gen, inbound)

	for {
		select {
		case cmd := <-t.cmdCh:
			switch cmd.kind {
			case cmdSend:
				if !connected {
					t.log.Warn("dropping outbound message while disconnected")
					continue
				}
				mt := websocket.BinaryMessage
				if cmd.isText {
					mt = websocket.TextMessage
				}
				if err := conn.WriteMessage(mt, cmd.frame); err != nil {
					t.log.Error("write failed: %v", err)
					connected = false
					broadcastOnce(subscribers, Item{Err: azerrors.Wrap(azerrors.KindConnectionError, "write failed", err)})
				}

			case cmdSubscribe:
				if !connected {
					newConn, err := reconnectWithAttempts(context.Background(), connector, reconnectAttempts, t.log)
					if err != nil {
						cmd.reply <- subscribeResult{err: err}
						continue
					}
					conn = newConn
					connected = true
					gen++
					go readPump(conn, gen, inbound)
				}

				nextSubID++
				id := nextSubID
				ch := make(chan Item, subscriberBuffer)
				subscribers[id] = ch
				cmd.reply <- subscribeResult{sub: &Subscription{id: id, ch: ch, t: t}}

			case cmdDisconnect:
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				_ = conn.Close()
				for _, ch := range subscribers {
					close(ch)
				}
				return
			}

		case read := <-inbound:
			if read.gen != gen {
				continue // stale read from a superseded connection generation
			}
			if read.err != nil {
				connected = false
				var closeErr *websocket.CloseError
				if errors.As(read.err, &closeErr) {
					broadcastOnce(subscribers, Item{Err: azerrors.New(azerrors.KindServerDisconnect, closeErr.Text)})
				} else {
					broadcastOnce(subscribers, Item{Err: azerrors.Wrap(azerrors.KindConnectionError, "read failed", read.err)})
				}
				continue
			}

			if len(read.data) == 0 {
				continue // empty low-level frame, dropped silently
			}

			var msg codec.Message
			var err error
			if read.messageType == websocket.TextMessage {
				msg, err = codec.DecodeTextMessage(string(read.data))
			} else {
				msg, err = codec.DecodeBinaryMessage(read.data)
			}
			if err != nil {
				broadcastOnce(subscribers, Item{Err: err})
				continue
			}
			broadcastOnce(subscribers, Item{Msg: msg})
		}
	}
}

func readPump(conn *websocket.Conn, gen int, out chan<- genRead) {
	for {
		mt, data, err := conn.ReadMessage()
		out <- genRead{gen: gen, messageType: mt, data: data, err: err}
		if err != nil {
			return
		}
	}
}

// broadcastOnce fans item out to every subscriber. A subscriber whose
// buffer is full (receive-side overflow) has its oldest buffered item
// discarded to make room for a Lagged item; the main item is dropped for
// that subscriber only.
func broadcastOnce(subscribers map[int]chan Item, item Item) {
	for _, ch := range subscribers {
		select {
		case ch <- item:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- Item{Err: azerrors.New(azerrors.KindLagged, "subscriber buffer full")}:
			default:
			}
		}
	}
}

func reconnectWithAttempts(ctx context.Context, connector Connector, attempts int, log *logger.Logger) (*websocket.Conn, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		log.Debug("reconnecting (%d/%d)", i+1, attempts)
		conn, err := connector.Connect(ctx)
		if err == nil {
			return conn, nil
		}
		log.Error("failed to reconnect (%d/%d): %v", i+1, attempts, err)
		lastErr = err
	}
	return nil, azerrors.Wrap(azerrors.KindConnectionError, "reconnect failed", lastErr)
}
