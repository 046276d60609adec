package ws

import (
	"encoding/json"
	"errors"
	"sync"

	"chess-relay/internal/relay"

	"github.com/gorilla/websocket"
)

var (
	errClientClosed   = errors.New("client_closed")
	errSendBufferFull = errors.New("send_buffer_full")
)

// Client is one websocket connection. It implements relay.Peer: Send
// enqueues without blocking and the write loop drains the queue in order.
type Client struct {
	id   relay.ConnID
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func newClient(id relay.ConnID, conn *websocket.Conn, buffer int) *Client {
	if buffer <= 0 {
		buffer = 32
	}
	return &Client{id: id, conn: conn, send: make(chan []byte, buffer)}
}

func (c *Client) ID() relay.ConnID {
	return c.id
}

func (c *Client) Send(msg any) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClientClosed
	}
	select {
	case c.send <- b:
		return nil
	default:
		return errSendBufferFull
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
