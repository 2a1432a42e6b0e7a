package www

import (
	"fmt"
	"net/http"
	"time"
)

// HandleStream is the HTTP handler for the notification push stream. Each
// broadcast message is emitted as one SSE event whose data is the literal
// rendered string.
func (h *Hub) HandleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	conn := h.Subscribe()
	defer h.Remove(conn)

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	idle := time.NewTimer(h.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-conn.Done():
			return
		case <-idle.C:
			return
		case msg := <-conn.Messages():
			if _, err := fmt.Fprintf(w, "data: %s\n\n", msg); err != nil {
				return
			}
			flusher.Flush()
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(h.idleTimeout)
		}
	}
}
