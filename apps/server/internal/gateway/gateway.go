// Package gateway streams per-tick decision traces to websocket
// subscribers, keyed by character id.
package gateway

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"idlerpg-lite/engine"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: Restrict in production
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// traceEnvelope is the wire frame sent to subscribers.
type traceEnvelope struct {
	Type  string               `json:"type"`
	Trace engine.DecisionTrace `json:"trace"`
}

// Connection is one subscribed websocket client.
type Connection struct {
	ID          string
	CharacterID string
	Conn        *websocket.Conn
	Send        chan []byte
	Gateway     *Gateway

	mu     sync.Mutex
	closed bool
}

// send queues a payload without blocking. It reports false when the
// connection is closed or its buffer is full.
func (c *Connection) send(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- payload:
		return true
	default:
		return false
	}
}

// shutdown closes the send channel exactly once. Publishers go through
// send, which holds the same mutex, so a close cannot race a send.
func (c *Connection) shutdown() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
	c.mu.Unlock()
}

// Gateway manages trace subscriptions.
type Gateway struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Connection]bool // characterID -> connections
	nextConnID  uint64
}

func New() *Gateway {
	return &Gateway{subscribers: make(map[string]map[*Connection]bool)}
}

// HandleWebSocket upgrades the connection and subscribes it to the
// character id given in the query string.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	characterID := strings.TrimSpace(r.URL.Query().Get("characterId"))
	if characterID == "" {
		http.Error(w, "characterId query parameter is required", http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Gateway] Upgrade error: %v", err)
		return
	}

	c := &Connection{
		CharacterID: characterID,
		Conn:        conn,
		Send:        make(chan []byte, 256),
		Gateway:     g,
	}
	total := g.subscribe(c)

	log.Printf("[Gateway] Client %s subscribed to %s, subscribers: %d", c.ID, characterID, total)

	go c.readPump()
	go c.writePump()
}

// PublishTrace fans a trace out to that character's subscribers. A slow
// client is dropped rather than allowed to stall the tick loop.
func (g *Gateway) PublishTrace(trace engine.DecisionTrace) {
	payload, err := json.Marshal(traceEnvelope{Type: "decision_trace", Trace: trace})
	if err != nil {
		log.Printf("[Gateway] encode trace for %s: %v", trace.CharacterID, err)
		return
	}

	g.mu.RLock()
	conns := make([]*Connection, 0, len(g.subscribers[trace.CharacterID]))
	for c := range g.subscribers[trace.CharacterID] {
		conns = append(conns, c)
	}
	g.mu.RUnlock()

	for _, c := range conns {
		if !c.send(payload) {
			log.Printf("[Gateway] Client %s too slow, dropping", c.ID)
			g.remove(c)
		}
	}
}

func (g *Gateway) subscribe(c *Connection) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextConnID++
	c.ID = fmt.Sprintf("conn_%d", g.nextConnID)
	subs := g.subscribers[c.CharacterID]
	if subs == nil {
		subs = make(map[*Connection]bool)
		g.subscribers[c.CharacterID] = subs
	}
	subs[c] = true
	return len(subs)
}

func (g *Gateway) remove(c *Connection) {
	g.mu.Lock()
	if subs, ok := g.subscribers[c.CharacterID]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(g.subscribers, c.CharacterID)
		}
	}
	g.mu.Unlock()
	c.shutdown()
}

// readPump discards inbound frames; the stream is one-way. It keeps the
// connection alive and tears down on error.
func (c *Connection) readPump() {
	defer func() {
		c.Gateway.remove(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(1024)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
