// Package realtime carries row-change events from the write paths to the
// reconciler and to connected websocket clients.
package realtime

import "sync"

type ChangeType string

const (
	ChangeInsert ChangeType = "insert"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// TableAll subscribes to every table.
const TableAll = "*"

// ChangeEvent mirrors a committed row change. Old/New are JSON-shaped
// payloads; consumers must not rely on them for state and should re-read
// instead.
type ChangeEvent struct {
	Table string     `json:"table"`
	Type  ChangeType `json:"type"`
	UID   string     `json:"uid"`
	Old   any        `json:"old,omitempty"`
	New   any        `json:"new,omitempty"`
}

type Handler func(ChangeEvent)

// Hub is the in-process change broker. Publish never blocks on a handler.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[int]Handler
	nextID int
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]Handler)}
}

// Subscribe registers a handler for a table (or TableAll) and returns a
// cancel func. Cancel is idempotent.
func (h *Hub) Subscribe(table string, fn Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return func() {}
	}
	h.nextID++
	id := h.nextID
	if h.subs[table] == nil {
		h.subs[table] = make(map[int]Handler)
	}
	h.subs[table][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[table], id)
		})
	}
}

// Publish fans the event out to table subscribers and wildcard subscribers.
// Handlers run on their own goroutines; ordering across events is the
// store's, completion order is not guaranteed.
func (h *Hub) Publish(ev ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	for _, fn := range h.subs[ev.Table] {
		go fn(ev)
	}
	if ev.Table != TableAll {
		for _, fn := range h.subs[TableAll] {
			go fn(ev)
		}
	}
}

// Close drops all subscriptions; subsequent Publish calls are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.subs = make(map[string]map[int]Handler)
}
