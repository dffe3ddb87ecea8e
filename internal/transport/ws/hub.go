package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Feed message types
const (
	MsgPredictionCreated  MessageType = "prediction_created"
	MsgPredictionDeleted  MessageType = "prediction_deleted"
	MsgPredictionsCleared MessageType = "predictions_cleared"
	MsgError              MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans prediction events out to every open connection of a user
type Hub struct {
	userConns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	closeOnce  sync.Once

	logger zerolog.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	UserID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message addressed to one user's connections
type BroadcastMessage struct {
	UserID  string
	Message *Message
}

// NewHub creates a new WebSocket hub and starts its event loop
func NewHub(logger zerolog.Logger) *Hub {
	h := &Hub{
		userConns:  make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		logger:     logger.With().Str("component", "ws_hub").Logger(),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.userConns[conn.UserID] == nil {
				h.userConns[conn.UserID] = make(map[*Connection]struct{})
			}
			h.userConns[conn.UserID][conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug().Str("user_id", conn.UserID).Msg("feed connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.userConns[conn.UserID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.userConns, conn.UserID)
					}
					h.logger.Debug().Str("user_id", conn.UserID).Msg("feed disconnected")
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.logger.Error().Err(err).Msg("marshal feed message")
				continue
			}
			h.mu.RLock()
			for conn := range h.userConns[msg.UserID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.userConns {
				for conn := range conns {
					close(conn.Send)
				}
			}
			h.userConns = make(map[string]map[*Connection]struct{})
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Close stops the event loop and closes every open connection
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Connections reports how many feeds a user currently has open
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userConns[userID])
}

// BroadcastToUser sends an event to all of a user's connections (implements service.Broadcaster)
func (h *Hub) BroadcastToUser(userID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Str("type", msgType).Msg("marshal feed payload")
		return
	}
	msg := &BroadcastMessage{
		UserID:  userID,
		Message: &Message{Type: MessageType(msgType), Payload: data},
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}
