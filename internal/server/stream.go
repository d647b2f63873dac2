package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const streamWriteTimeout = 5 * time.Second

// Stream pushes JSON frames to every connected websocket client. Slow or
// dead clients are dropped rather than stalling the broadcaster.
type Stream struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	log      *log.Logger
}

func NewStream(logger *log.Logger) *Stream {
	return &Stream{
		clients: map[*websocket.Conn]bool{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The API is same-origin only; presentation clients connect
			// from the page the server itself serves.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: logger,
	}
}

// Serve upgrades the request and keeps the connection registered until the
// client goes away.
func (s *Stream) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.log != nil {
			s.log.Printf("stream upgrade: %v", err)
		}
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Clients never send meaningful frames; the read loop just notices
	// disconnects.
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends one JSON frame to every client.
func (s *Stream) Broadcast(v any) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := c.WriteJSON(v); err != nil {
			s.drop(c)
		}
	}
}

func (s *Stream) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		conn.Close()
	}
	s.mu.Unlock()
}

// ClientCount reports connected clients, for readiness output and tests.
func (s *Stream) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
