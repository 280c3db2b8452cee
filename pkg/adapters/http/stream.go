package http

import (
	"log/slog"
	"sync"
)

// StreamManager fans content change notifications out to SSE clients.
// Subscribers keyed by "" receive every change.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // ContentID -> Set of Channels
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a client for changes to contentID, or to everything
// when contentID is empty. The returned func unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(contentID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[contentID]; !ok {
		sm.subscribers[contentID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[contentID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[contentID]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, contentID)
			}
		}
	}
}

// Broadcast delivers msg to the subscribers of contentID and to global subscribers.
func (sm *StreamManager) Broadcast(contentID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	keys := []string{""}
	if contentID != "" {
		keys = append(keys, contentID)
	}
	for _, key := range keys {
		for ch := range sm.subscribers[key] {
			select {
			case ch <- msg:
			default:
				// Drop message if channel is full (slow client)
				sm.logger.Warn("SSE: Client buffer full, dropping message", "content_id", contentID)
			}
		}
	}
}

// Subscribers returns the number of connected clients.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	n := 0
	for _, subs := range sm.subscribers {
		n += len(subs)
	}
	return n
}
