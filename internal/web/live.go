package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"spaceexplorer/internal/game"
)

const (
	// sendTimeout bounds how long Publish waits on one slow subscriber.
	sendTimeout  = time.Second
	writeTimeout = 5 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// Frame is one message on the live feed.
type Frame struct {
	Type    string          `json:"type"`
	Payload game.Projection `json:"payload"`
}

// Hub fans projection updates out to the live connections of each session.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[chan []byte]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: map[string]map[chan []byte]struct{}{}}
}

// Subscribe registers a receiver for session id. The returned func
// unregisters it.
func (h *Hub) Subscribe(id string) (<-chan []byte, func()) {
	ch := make(chan []byte, 8)
	h.mu.Lock()
	if h.clients[id] == nil {
		h.clients[id] = map[chan []byte]struct{}{}
	}
	h.clients[id][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.clients[id], ch)
			if len(h.clients[id]) == 0 {
				delete(h.clients, id)
			}
			h.mu.Unlock()
		})
	}
}

// Subscribers returns how many receivers session id has.
func (h *Hub) Subscribers(id string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[id])
}

// Publish sends p to every receiver of session id and returns how many got
// it. Receivers that stay full for sendTimeout miss the update.
func (h *Hub) Publish(id string, p game.Projection) int {
	b, err := json.Marshal(Frame{Type: "projection", Payload: p})
	if err != nil {
		log.Printf("live encode failed session_id=%s error=%v", id, err)
		return 0
	}

	h.mu.RLock()
	receivers := make([]chan []byte, 0, len(h.clients[id]))
	for ch := range h.clients[id] {
		receivers = append(receivers, ch)
	}
	h.mu.RUnlock()

	sent := 0
	for _, ch := range receivers {
		select {
		case ch <- b:
			sent++
		case <-time.After(sendTimeout):
			log.Printf("live send timed out session_id=%s", id)
		}
	}
	return sent
}

// handleWS streams projection frames for the caller's session, starting with
// the current one.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(r)
	if id == "" || s.Live == nil {
		http.Error(w, "no session", http.StatusBadRequest)
		return
	}
	ps, ok, err := s.Store.Get(r.Context(), id)
	if err != nil || !ok {
		http.Error(w, "no session", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := s.Live.Subscribe(id)
	defer unsubscribe()
	s.debugf("live connected session_id=%s subscribers=%d", id, s.Live.Subscribers(id))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The client never sends anything we use; reading only notices closes
	// and answers pings.
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(msgType int, b []byte) error {
		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return err
		}
		return conn.WriteMessage(msgType, b)
	}

	first, err := json.Marshal(Frame{Type: "projection", Payload: s.Engine.Project(ps.Session)})
	if err != nil || write(websocket.TextMessage, first) != nil {
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case b := <-updates:
			if err := write(websocket.TextMessage, b); err != nil {
				s.debugf("live write failed session_id=%s error=%v", id, err)
				return
			}
		case <-ping.C:
			if err := write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
