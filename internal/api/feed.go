package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"chowhub/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard and API share an origin in deployment
	},
}

// OrderEvent is pushed to connected dashboards when an order is accepted.
type OrderEvent struct {
	Type    string  `json:"type"`
	OrderID string  `json:"orderId"`
	Total   float64 `json:"total"`
	Lines   int     `json:"lines"`
}

// Feed fans accepted-order events out to dashboard WebSocket clients, so the
// notification bell updates without polling.
type Feed struct {
	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewFeed returns an empty feed hub.
func NewFeed() *Feed {
	return &Feed{clients: make(map[*feedClient]struct{})}
}

// Handle upgrades the request and keeps the connection until the client
// leaves.
func (f *Feed) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("feed upgrade failed: %v", err)
		return
	}

	client := &feedClient{conn: conn, send: make(chan []byte, 16)}
	f.mu.Lock()
	f.clients[client] = struct{}{}
	f.mu.Unlock()

	go client.writePump()
	client.readPump(f)
}

// Announce pushes an accepted order to every connected client. Slow clients
// are dropped rather than allowed to stall the rest.
func (f *Feed) Announce(order models.Order) {
	event := OrderEvent{
		Type:    "order.accepted",
		OrderID: order.ID,
		Total:   order.Total,
		Lines:   len(order.LineItems),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("encode feed event: %v", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		select {
		case client.send <- payload:
		default:
			delete(f.clients, client)
			close(client.send)
		}
	}
}

// ClientCount reports connected dashboards.
func (f *Feed) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *Feed) drop(client *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[client]; ok {
		delete(f.clients, client)
		close(client.send)
	}
}

func (c *feedClient) readPump(f *Feed) {
	defer func() {
		f.drop(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("feed read error: %v", err)
			}
			return
		}
	}
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(45 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
