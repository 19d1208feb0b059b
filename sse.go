package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	sseChannelBuffer = 16
	sseHeartbeat     = 30 * time.Second
)

// GameEvent is pushed to every player of a session.
type GameEvent struct {
	Type    string     `json:"type"` // game_state, player_joined, player_left, cell_update, solved
	Pseudo  string     `json:"pseudo,omitempty"`
	Color   string     `json:"color,omitempty"`
	Row     int        `json:"row"`
	Col     int        `json:"col"`
	Value   string     `json:"value,omitempty"`
	State   [][]string `json:"state,omitempty"`
	Players []Player   `json:"players,omitempty"`
}

// subscriber is a single SSE connection.
type subscriber struct {
	ch        chan []byte
	sessionID string
}

// Broadcaster fans game events out to the SSE connections of each session.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Subscribe adds a connection for a session and returns it.
func (b *Broadcaster) Subscribe(sessionID string) *subscriber {
	s := &subscriber{
		ch:        make(chan []byte, sseChannelBuffer),
		sessionID: sessionID,
	}
	b.mu.Lock()
	b.subscribers[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Unsubscribe removes a connection and closes its channel.
func (b *Broadcaster) Unsubscribe(s *subscriber) {
	b.mu.Lock()
	if _, ok := b.subscribers[s]; ok {
		delete(b.subscribers, s)
		close(s.ch)
	}
	b.mu.Unlock()
}

// Publish encodes evt once and queues it for every connection of the session.
// Slow connections with a full buffer miss the event.
func (b *Broadcaster) Publish(sessionID string, evt GameEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", evt.Type, err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for s := range b.subscribers {
		if s.sessionID != sessionID {
			continue
		}
		select {
		case s.ch <- data:
		default:
		}
	}
	return nil
}

// SubscriberCount returns the number of connections of a session.
func (b *Broadcaster) SubscriberCount(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for s := range b.subscribers {
		if s.sessionID == sessionID {
			n++
		}
	}
	return n
}

// Close ends every connection.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subscribers {
		delete(b.subscribers, s)
		close(s.ch)
	}
}

// ServeSSE streams the events of a session until the client goes away.
// initial, when set, is sent first to this connection only.
func (b *Broadcaster) ServeSSE(w http.ResponseWriter, r *http.Request, sessionID string, initial *GameEvent, onDisconnect func()) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming non supporté", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s := b.Subscribe(sessionID)
	defer func() {
		b.Unsubscribe(s)
		if onDisconnect != nil {
			onDisconnect()
		}
	}()

	if initial != nil {
		if data, err := json.Marshal(initial); err == nil {
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-s.ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
