package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/nkinsurance/quoteflow/pkg/domain"
)

// StreamManager handles active SSE connections, grouped by page.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a listener for a page. The returned function
// unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(pageID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[pageID]; !ok {
		sm.subscribers[pageID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[pageID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[pageID]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(sm.subscribers, pageID)
				}
			}
			close(ch)
		})
	}
}

// Broadcast sends msg to every listener of a page without blocking.
func (sm *StreamManager) Broadcast(pageID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[pageID] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping message", "page_id", pageID)
		}
	}
}

// Subscribers returns the number of listeners of a page.
func (sm *StreamManager) Subscribers(pageID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[pageID])
}

// bannerListener publishes the banner events of a page to its stream.
func (sm *StreamManager) bannerListener(pageID string) func(domain.BannerEvent) {
	return func(e domain.BannerEvent) {
		b, err := json.Marshal(e)
		if err != nil {
			sm.logger.Error("SSE: failed to encode banner event", "page_id", pageID, "err", err)
			return
		}
		sm.Broadcast(pageID, string(b))
	}
}

// events handles GET /p/{page}/events.
func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "page")
	if _, err := s.pages.Get(pageID); err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("events: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.streams.Subscribe(pageID)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "page_id", pageID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: banner\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
