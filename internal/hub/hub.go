// Package hub streams engine events to browsers over server-sent events.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"wiring/internal/service"
)

// KeepAlive is the interval between SSE comment frames
var KeepAlive = 30 * time.Second

// subscriber is one connected SSE stream. An empty filter accepts every
// event type.
type subscriber struct {
	id     string
	filter map[service.EventType]bool
	frames chan []byte
}

func (s *subscriber) accepts(t service.EventType) bool {
	return len(s.filter) == 0 || s.filter[t]
}

// Hub fans pipeline events out to SSE subscribers
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	join        chan *subscriber
	leave       chan *subscriber
	events      chan service.Event
	done        chan struct{}
	seq         uint64
}

// New creates a new Hub
func New() *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
		join:        make(chan *subscriber),
		leave:       make(chan *subscriber),
		events:      make(chan service.Event, 256),
		done:        make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled. Open streams are closed on
// return.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for s := range h.subscribers {
				delete(h.subscribers, s)
				close(s.frames)
			}
			h.mu.Unlock()
			return

		case s := <-h.join:
			h.mu.Lock()
			h.subscribers[s] = struct{}{}
			n := len(h.subscribers)
			h.mu.Unlock()
			log.Printf("SSE client connected: %s (total: %d)", s.id, n)

		case s := <-h.leave:
			h.mu.Lock()
			if _, ok := h.subscribers[s]; ok {
				delete(h.subscribers, s)
				close(s.frames)
			}
			n := len(h.subscribers)
			h.mu.Unlock()
			log.Printf("SSE client disconnected: %s (total: %d)", s.id, n)

		case event := <-h.events:
			h.dispatch(event)
		}
	}
}

// dispatch encodes one event as an SSE frame and queues it for every
// subscriber that accepts its type
func (h *Hub) dispatch(event service.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event.Type, err)
		return
	}
	h.seq++
	frame := []byte(fmt.Sprintf("id: %d\nevent: %s\ndata: %s\n\n", h.seq, event.Type, data))

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subscribers {
		if !s.accepts(event.Type) {
			continue
		}
		select {
		case s.frames <- frame:
		default:
			log.Printf("SSE client %s is slow, dropping event %d", s.id, h.seq)
		}
	}
}

// Forward subscribes to the bus and broadcasts every event it publishes
// until ctx is cancelled
func (h *Hub) Forward(ctx context.Context, bus *service.EventBus) {
	ch := make(chan service.Event, 64)
	bus.Subscribe(ch)
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			h.Broadcast(event)
		}
	}
}

// Broadcast queues an event for all subscribers
func (h *Hub) Broadcast(event service.Event) {
	select {
	case h.events <- event:
	default:
		log.Printf("Event queue full, dropping %s event", event.Type)
	}
}

// ClientCount returns the number of connected streams
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// ServeHTTP streams events to one client. The optional "types" query
// parameter is a comma-separated list of event types to receive.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	s := &subscriber{
		id:     fmt.Sprintf("%d", time.Now().UnixNano()),
		filter: parseFilter(r.URL.Query().Get("types")),
		frames: make(chan []byte, 64),
	}

	select {
	case h.join <- s:
	case <-h.done:
		http.Error(w, "hub stopped", http.StatusServiceUnavailable)
		return
	case <-r.Context().Done():
		return
	}
	defer func() {
		select {
		case h.leave <- s:
		case <-h.done:
		}
	}()

	// Streams outlive the server's write timeout
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		log.Printf("SSE client %s: failed to clear write deadline: %v", s.id, err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(KeepAlive)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-s.frames:
			if !ok {
				return
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprintf(w, ": keepalive\n\n"); err != nil {
				return
			}
		case <-r.Context().Done():
			return
		}
		flusher.Flush()
	}
}

func parseFilter(raw string) map[service.EventType]bool {
	if raw == "" {
		return nil
	}
	filter := make(map[service.EventType]bool)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			filter[service.EventType(t)] = true
		}
	}
	return filter
}
