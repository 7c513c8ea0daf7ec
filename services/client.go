package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/EMCSquare12/live-bingo/game"
	"github.com/EMCSquare12/live-bingo/models"
	"github.com/EMCSquare12/live-bingo/utils/logger"
)

const sendBuffer = 32

// Client wraps one websocket connection. Outbound events are queued on a
// buffered channel drained by writePump; Send drops instead of blocking so
// a slow reader cannot stall a room broadcast.
//
// session/participantID/role identify what this connection is bound to
// after create/join/reconnect; they are touched only from the read loop.
type Client struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool

	session       *game.Session
	participantID string
	role          string
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn, send: make(chan []byte, sendBuffer)}
}

// Send implements game.Conn.
func (c *Client) Send(event string, data any) {
	msg, err := json.Marshal(models.Event{Type: event, Data: data})
	if err != nil {
		logger.Errorf("[ws] marshal %s: %v", event, err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		logger.Debugf("[ws] dropping %s: send buffer full", event)
	}
}

// Close implements game.Conn. Safe to call more than once and concurrently
// with Send.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()
	c.conn.Close()
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("[ws] write error: %v", err)
			return
		}
	}
}
