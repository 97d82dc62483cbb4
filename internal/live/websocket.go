package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ashureev/interview-labs/internal/domain"
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// SnapshotSource returns the current session projection, or nil.
type SnapshotSource interface {
	Snapshot(ctx context.Context) *domain.Snapshot
}

// Handler upgrades viewers to WebSocket and registers them with the hub.
type Handler struct {
	hub            *Hub
	source         SnapshotSource
	originPatterns []string
}

// NewHandler creates a WebSocket handler. originPatterns restricts which
// browser origins may connect; nil allows same-origin only.
func NewHandler(hub *Hub, source SnapshotSource, originPatterns []string) *Handler {
	return &Handler{hub: hub, source: source, originPatterns: originPatterns}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "ip", r.RemoteAddr)
		return
	}

	id := uuid.NewString()
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "viewer left"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "viewer_id", id)
		}
	}()

	first := Message{Type: EventIdle}
	if snap := h.source.Snapshot(r.Context()); snap != nil {
		first = Message{Type: EventSnapshot, Snapshot: snap}
	}
	data, err := json.Marshal(first)
	if err != nil {
		slog.Error("Failed to encode initial snapshot", "error", err)
		return
	}

	// Viewers only receive; CloseRead discards input and cancels on disconnect.
	ctx := ws.CloseRead(r.Context())

	h.hub.Register(id, ws, data)
	defer h.hub.Unregister(id, ws)

	<-ctx.Done()
}
