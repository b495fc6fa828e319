package realtime

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	sessionBacklog = 64
)

// Session streams one user's change events over a websocket connection.
type Session struct {
	uid    string
	conn   *websocket.Conn
	events chan ChangeEvent
	done   chan struct{}
	once   sync.Once
	cancel func()
}

// NewSession subscribes the connection to all tables, filtered to the
// user's own rows.
func NewSession(hub *Hub, uid string, conn *websocket.Conn) *Session {
	s := &Session{
		uid:    uid,
		conn:   conn,
		events: make(chan ChangeEvent, sessionBacklog),
		done:   make(chan struct{}),
	}
	s.cancel = hub.Subscribe(TableAll, func(ev ChangeEvent) {
		if ev.UID != uid {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
		default:
			// A slow client drops frames rather than blocking the hub; it
			// re-reads current state on reconnect anyway.
		}
	})
	return s
}

// Run writes events and heartbeat pings until the client goes away.
func (s *Session) Run() {
	go s.readLoop()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer s.Close()

	for {
		select {
		case <-s.done:
			return
		case ev := <-s.events:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(ev); err != nil {
				log.Printf("[realtime] uid=%s stage=write_fail err=%v", s.uid, err)
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Session) readLoop() {
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.Close()
			return
		}
	}
}

// Close unsubscribes from the hub so the change stream does not leak.
func (s *Session) Close() {
	s.once.Do(func() {
		s.cancel()
		close(s.done)
		s.conn.Close()
	})
}
