package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Event is the JSON frame pushed to every connected back-office client.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
	}
}

// Publish queues an event for broadcast. It never blocks; when the queue is
// full the event is dropped and logged.
func (h *Hub) Publish(eventType string, data interface{}) {
	msg, err := json.Marshal(Event{Type: eventType, Data: data, At: time.Now().UTC()})
	if err != nil {
		zap.L().Warn("ws: marshal event", zap.String("type", eventType), zap.Error(err))
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		zap.L().Warn("ws: broadcast queue full, event dropped", zap.String("type", eventType))
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Serve registers conn and blocks until the client goes away.
func (h *Hub) Serve(conn *websocket.Conn) {
	h.Register <- conn
	defer func() { h.Unregister <- conn }()

	for {
		// keep-alive; clients never send anything we act on
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			zap.L().Debug("ws client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
