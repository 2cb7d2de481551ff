package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/karwey/ssecast/internal/event"
)

// Events streams broadcast events to one client as Server-Sent Events.
// The subscriber is registered before the first byte is written and
// deregistered on every exit path: client disconnect, write error, or
// server shutdown cancelling the request context. The stream never
// completes on its own.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	sub := h.Hub.Register()
	defer h.Hub.Deregister(sub)

	slog.Info("subscriber connected", "id", sub.ID(), "remote", r.RemoteAddr)
	defer slog.Info("subscriber disconnected", "id", sub.ID())

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Initial comment so the client sees the stream open immediately.
	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-sub.Events():
			if !ok {
				return
			}
			// Timestamp at delivery, per stream: two subscribers
			// stamp the same broadcast independently.
			if _, err := w.Write(event.Frame(evt, time.Now())); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
