package service

import (
	"context"

	"ai-knowledgebase-be/internal/pkg/logger"
	"ai-knowledgebase-be/internal/websocket"
	"ai-knowledgebase-be/pkg/events"
	pktNats "ai-knowledgebase-be/pkg/nats"
)

// SyncService relays store-change events from the NATS bus to every
// connected WebSocket client so open clients converge on the same view of
// the knowledge base without polling.
type SyncService struct {
	subscriber *pktNats.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewSyncService(sub *pktNats.Subscriber, hub *websocket.Hub, log logger.ILogger) *SyncService {
	return &SyncService{
		subscriber: sub,
		hub:        hub,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *SyncService) Start() {
	err := s.subscriber.Subscribe(pktNats.SubjectPrefix+".>", "sync-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("SyncService", "Failed to start sync subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("SyncService", "Sync service started, relaying store events", nil)
}

func (s *SyncService) handleEvent(ctx context.Context, event events.Event) error {
	s.hub.Broadcast(event.EventType(), event.Payload())
	return nil
}
