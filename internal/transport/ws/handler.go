package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"riskscope/internal/service"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// transcriptPayload is the client frame carrying a partial transcript
type transcriptPayload struct {
	Transcript string `json:"transcript"`
}

// draftPayload is the server ack carrying the merged draft
type draftPayload struct {
	Draft string `json:"draft"`
}

// Handler handles dictation WebSocket connections. Each frame's partial
// transcript is appended to the session's draft answer buffer; the merge
// is a last-write-wins append. Cache writes are wrapped in the bounded
// dictation retry policy.
type Handler struct {
	hub           *Hub
	assessmentSvc *service.AssessmentService
	retry         service.RetryPolicy
}

// NewHandler creates a new dictation handler
func NewHandler(hub *Hub, assessmentSvc *service.AssessmentService) *Handler {
	return &Handler{
		hub:           hub,
		assessmentSvc: assessmentSvc,
		retry:         service.DefaultDictationRetry(),
	}
}

// DictationWS handles GET /v1/ws/assessments/{id}/dictation
func (h *Handler) DictationWS(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if _, err := h.assessmentSvc.Get(r.Context(), sessionID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := &Connection{
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		Hub:       h.hub,
	}

	h.hub.Register(conn)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != MsgTranscript {
			continue
		}
		var payload transcriptPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Transcript == "" {
			continue
		}

		h.appendTranscript(conn.SessionID, payload.Transcript)
	}
}

// appendTranscript merges the partial transcript into the draft buffer,
// retrying transient cache failures, and acks with the merged draft.
func (h *Handler) appendTranscript(sessionID, transcript string) {
	var merged string
	err := h.retry.Do(context.Background(), func() error {
		var appendErr error
		merged, appendErr = h.assessmentSvc.AppendTranscript(context.Background(), sessionID, transcript)
		return appendErr
	})
	if err != nil {
		log.Printf("transcript append failed for session %s: %v", sessionID, err)
		h.hub.PushToSession(sessionID, MsgError, map[string]string{"message": "failed to save transcript"})
		return
	}

	h.hub.PushToSession(sessionID, MsgDraftUpdated, draftPayload{Draft: merged})
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
