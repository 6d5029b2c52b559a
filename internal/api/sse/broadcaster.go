package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/flashpuzzle/internal/api/response"
	"github.com/mcoot/flashpuzzle/internal/model"
)

// Broadcaster publishes session events to SSE clients
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends each event to the hub of its session. Sessions nobody is
// watching are skipped.
func (b *Broadcaster) Publish(events []model.Event) {
	for _, e := range events {
		hub := b.hubManager.GetHub(e.SessionID)
		if hub == nil {
			continue
		}
		data, err := json.Marshal(response.EventFromModel(e))
		if err != nil {
			b.logger.Error("sse failed to encode event",
				slog.String("session_id", string(e.SessionID)),
				slog.String("type", string(e.Type)),
				slog.Any("error", err))
			continue
		}
		hub.BroadcastEvent(string(e.Type), string(data))
	}
}

// Close disconnects every client of a deleted session
func (b *Broadcaster) Close(sessionID model.SessionID) {
	b.hubManager.RemoveHub(sessionID)
}
