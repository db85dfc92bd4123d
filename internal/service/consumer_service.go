package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ai-knowledgebase-be/internal/constant"
	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/pkg/logger"
	"ai-knowledgebase-be/internal/repository/specification"
	"ai-knowledgebase-be/internal/repository/unitofwork"
	"ai-knowledgebase-be/pkg/events"
	"ai-knowledgebase-be/pkg/llm"
	"ai-knowledgebase-be/pkg/llm/gemini"
	pktNats "ai-knowledgebase-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// summarySchema constrains the classification response to a single field.
var summarySchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"summary": map[string]interface{}{
			"type": "string",
		},
	},
	"required": []string{"summary"},
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	llmProvider    llm.LLMProvider
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		llmProvider:    llmProvider,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage runs the classification chain for one ingested document:
// PENDING -> PROCESSING -> COMPLETED (model summary) or ERROR (fallback
// summary). The document's decoded content is never touched; summarization
// is enrichment, not a precondition for availability.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SummarizeDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		msg.Nack() // Retriable
		return
	}
	if doc == nil {
		// Deleted while the message sat in the queue. Silent no-op.
		msg.Ack()
		return
	}

	if err := uow.DocumentRepository().UpdateStatus(ctx, doc.Id, constant.DocumentStatusProcessing); err != nil {
		cs.logger.Error("ConsumerService", "Failed to mark document processing", map[string]interface{}{
			"document_id": doc.Id,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	summary, err := cs.summarize(ctx, &payload)
	status := constant.DocumentStatusCompleted
	eventType := constant.EventDocumentSummarized
	if err != nil {
		cs.logger.Warn("ConsumerService", "Classification failed, substituting fallback summary", map[string]interface{}{
			"document_id": doc.Id,
			"error":       err.Error(),
		})
		summary = fallbackSummary(doc.Name)
		status = constant.DocumentStatusError
		eventType = constant.EventDocumentSummaryFailed
	}

	// Patch-if-exists: a document deleted mid-call makes this a no-op.
	if err := uow.DocumentRepository().PatchSummary(ctx, doc.Id, summary, status); err != nil {
		cs.logger.Error("ConsumerService", "Failed to patch summary", map[string]interface{}{
			"document_id": doc.Id,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: eventType,
			Data: map[string]interface{}{
				"document_id": doc.Id,
				"summary":     summary,
				"status":      status,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to publish summary event", map[string]interface{}{
				"document_id": doc.Id,
				"error":       err.Error(),
			})
		}
	}

	msg.Ack()
}

func (cs *consumerService) summarize(ctx context.Context, payload *dto.SummarizeDocumentMessage) (string, error) {
	opts := []llm.Option{
		llm.WithResponseSchema(summarySchema),
		llm.WithThinkingBudget(0),
	}
	if payload.RawBase64 != "" {
		mimeType := payload.MimeType
		if mimeType == "" {
			mimeType = "text/plain"
		}
		opts = append(opts, llm.WithAttachments(llm.Attachment{
			MimeType: mimeType,
			Base64:   payload.RawBase64,
		}))
	}

	raw, err := cs.llmProvider.Generate(ctx, constant.SummarizeDocumentPromptV1, opts...)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(gemini.CleanJSONResponse(raw)), &parsed); err != nil {
		return "", err
	}
	if parsed.Summary == "" {
		return "", errors.New("model returned an empty summary")
	}

	return clampSummary(parsed.Summary), nil
}

// fallbackSummary derives a human-readable label from the filename when the
// remote classification is unavailable.
func fallbackSummary(name string) string {
	if name == "" {
		return "Unclassified document"
	}
	return clampSummary(name)
}
