package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgTranscript   MessageType = "transcript"    // client -> server: partial dictation
	MsgDraftUpdated MessageType = "draft_updated" // server -> client: merged draft ack
	MsgError        MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages dictation connections, one per session. A reconnect for the
// same session replaces the previous connection.
type Hub struct {
	conns map[string]*Connection // sessionID -> conn

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	push       chan *PushMessage
}

// Connection represents one dictation WebSocket connection
type Connection struct {
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// PushMessage is an outbound message for one session's connection
type PushMessage struct {
	SessionID string
	Message   *Message
}

// NewHub creates a new dictation hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		push:       make(chan *PushMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if existing, ok := h.conns[conn.SessionID]; ok {
				close(existing.Send)
			}
			h.conns[conn.SessionID] = conn
			h.mu.Unlock()
			log.Printf("Dictation connected for session %s", conn.SessionID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if existing, ok := h.conns[conn.SessionID]; ok && existing == conn {
				delete(h.conns, conn.SessionID)
				close(conn.Send)
				log.Printf("Dictation disconnected for session %s", conn.SessionID)
			}
			h.mu.Unlock()

		case msg := <-h.push:
			h.mu.RLock()
			if conn, ok := h.conns[msg.SessionID]; ok {
				data, _ := json.Marshal(msg.Message)
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// PushToSession sends a message to a session's dictation connection
func (h *Hub) PushToSession(sessionID string, msgType MessageType, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.push <- &PushMessage{
		SessionID: sessionID,
		Message: &Message{
			Type:    msgType,
			Payload: data,
		},
	}
}
