package main

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait = 5 * time.Second
	wsSendQueue = 16
)

const (
	MsgSnapshot = "snapshot"
	MsgTick     = "tick"
	MsgClosed   = "closed"
)

var errSubscriberGone = errors.New("ws: subscriber not registered")

// WSMessage is one pushed update. Seq carries the snapshot sequence; zero
// means unordered (close notices).
type WSMessage struct {
	Type string `json:"type"`
	Seq  uint64 `json:"seq,omitempty"`
	Data any    `json:"data"`
}

// Notifier receives session updates for push delivery. Implementations must
// not block on slow receivers.
type Notifier interface {
	Broadcast(sessionID string, msg WSMessage)
	Close(sessionID string)
}

type nopNotifier struct{}

func (nopNotifier) Broadcast(string, WSMessage) {}
func (nopNotifier) Close(string)                {}

// subscriber owns one connection. Only its writer goroutine writes to conn;
// send is closed by whoever removes it from the hub.
type subscriber struct {
	conn    *websocket.Conn
	send    chan []byte
	lastSeq uint64
}

// Hub fans session updates out to websocket subscribers.
type Hub struct {
	log *zap.Logger

	mu       sync.Mutex
	sessions map[string]map[*websocket.Conn]*subscriber
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:      log,
		sessions: make(map[string]map[*websocket.Conn]*subscriber),
	}
}

func (h *Hub) Add(sessionID string, conn *websocket.Conn) {
	sub := &subscriber{conn: conn, send: make(chan []byte, wsSendQueue)}

	h.mu.Lock()
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*websocket.Conn]*subscriber)
	}
	h.sessions[sessionID][conn] = sub
	total := len(h.sessions[sessionID])
	h.mu.Unlock()

	go h.writePump(sessionID, sub)
	h.log.Debug("ws: subscriber added", zap.String("session", sessionID), zap.Int("total", total))
}

func (h *Hub) Remove(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.sessions[sessionID][conn]; ok {
		h.dropLocked(sessionID, sub)
	}
}

func (h *Hub) dropLocked(sessionID string, sub *subscriber) {
	conns := h.sessions[sessionID]
	delete(conns, sub.conn)
	close(sub.send)
	if len(conns) == 0 {
		delete(h.sessions, sessionID)
	}
}

// Send queues msg for one subscriber, if it is still registered.
func (h *Hub) Send(sessionID string, conn *websocket.Conn, msg WSMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.sessions[sessionID][conn]
	if !ok {
		return errSubscriberGone
	}
	h.enqueueLocked(sessionID, sub, msg.Seq, data)
	return nil
}

// Broadcast queues msg for every subscriber of the session. A subscriber
// that already received a newer snapshot skips it; one whose queue is full
// is dropped.
func (h *Hub) Broadcast(sessionID string, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("ws: marshal", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.sessions[sessionID] {
		h.enqueueLocked(sessionID, sub, msg.Seq, data)
	}
}

func (h *Hub) enqueueLocked(sessionID string, sub *subscriber, seq uint64, data []byte) {
	if seq != 0 {
		if seq <= sub.lastSeq {
			return
		}
		sub.lastSeq = seq
	}
	select {
	case sub.send <- data:
	default:
		h.log.Debug("ws: send queue full, dropping subscriber", zap.String("session", sessionID))
		h.dropLocked(sessionID, sub)
	}
}

// Close queues a close notice for every subscriber of a torn-down session
// and detaches them. Their writers disconnect once the queue drains.
func (h *Hub) Close(sessionID string) {
	data, _ := json.Marshal(WSMessage{Type: MsgClosed, Data: map[string]string{"sessionId": sessionID}})

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.sessions[sessionID] {
		select {
		case sub.send <- data:
		default:
		}
		h.dropLocked(sessionID, sub)
	}
}

func (h *Hub) writePump(sessionID string, sub *subscriber) {
	defer sub.conn.Close()
	for data := range sub.send {
		_ = sub.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug("ws: write failed, dropping subscriber", zap.String("session", sessionID), zap.Error(err))
			h.Remove(sessionID, sub.conn)
			return
		}
	}
	_ = sub.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(wsWriteWait))
}

// Subscribers reports how many connections follow a session.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[sessionID])
}
