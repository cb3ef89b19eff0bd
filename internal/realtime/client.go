package realtime

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Client is one WebSocket session
type Client struct {
	userID string
	conn   *websocket.Conn
	send   chan Event
}

var _ Subscriber = (*Client)(nil)

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{userID: userID, conn: conn, send: make(chan Event, sendBuffer)}
}

// Deliver queues the event, dropping it if the session is backed up
func (c *Client) Deliver(event Event) bool {
	select {
	case c.send <- event:
		return true
	default:
		log.Printf("realtime: dropping %s for user %s, send buffer full", event.Type, c.userID)
		return false
	}
}

// Close tells the peer the server is going away and drops the connection,
// which unblocks Serve.
func (c *Client) Close() {
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
		time.Now().Add(writeWait))
	c.conn.Close()
}

// clientFrame is what clients may send. Only join is understood, and it
// must name the authenticated user.
type clientFrame struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}

// Serve registers the client with hub, pumps events until the connection
// drops, then unregisters it.
func (c *Client) Serve(hub *Hub) {
	unsubscribe := hub.Subscribe(c.userID, c)
	log.Printf("realtime: user %s connected, %d live sessions", c.userID, hub.Connected(c.userID))
	done := make(chan struct{})
	go c.writePump(done)

	c.readPump()
	unsubscribe()
	close(done)
}

func (c *Client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime: read error for user %s: %v", c.userID, err)
			}
			return
		}
		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		if frame.Type == "join" && frame.UserID != "" && frame.UserID != c.userID {
			log.Printf("realtime: user %s tried to join as %s, ignored", c.userID, frame.UserID)
		}
	}
}

func (c *Client) writePump(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case event := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
