package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/navikt/vrooms/internal/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period; must be less than pongWait
	pingPeriod = 54 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Outbound buffer per connection
	sendBufferSize = 256
)

// Client is one websocket connection. A client is unbound until its
// first successful join, after which room and name are fixed for the
// connection's lifetime.
type Client struct {
	conn *websocket.Conn
	send chan []byte

	room string
	name string
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// bound reports whether the client has joined a room.
func (c *Client) bound() bool {
	return c.room != ""
}

// sendEvent queues a directed event for this connection only.
func (c *Client) sendEvent(event *models.ServerEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error encoding directed event: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		go c.conn.Close()
	}
}

// writePump pushes queued messages to the peer and keeps the connection
// alive with periodic pings. It exits when the send channel is closed
// or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
