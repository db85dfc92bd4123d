package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"time"

	"ai-knowledgebase-be/internal/constant"
	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/pkg/logger"
	"ai-knowledgebase-be/internal/repository/specification"
	"ai-knowledgebase-be/internal/repository/unitofwork"
	"ai-knowledgebase-be/pkg/events"
	"ai-knowledgebase-be/pkg/ingest"
	pktNats "ai-knowledgebase-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, req *dto.UploadDocumentsRequest) ([]*dto.DocumentResponse, error)
	AddLink(ctx context.Context, req *dto.AddLinkRequest) (*dto.DocumentResponse, error)
	List(ctx context.Context, partitionId *uuid.UUID) ([]*dto.DocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	Move(ctx context.Context, req *dto.MoveDocumentRequest) (*dto.MoveDocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// resolveTargetPartition maps a requested partition to the one documents may
// actually live in: nil and the virtual "all" bucket both land in
// "uncategorized"; anything else must exist.
func (s *documentService) resolveTargetPartition(ctx context.Context, uow unitofwork.UnitOfWork, requested *uuid.UUID) (uuid.UUID, error) {
	if requested == nil || *requested == constant.PartitionAllId {
		return constant.PartitionUncategorizedId, nil
	}
	partition, err := uow.PartitionRepository().FindOne(ctx, specification.ByID{ID: *requested})
	if err != nil {
		return uuid.Nil, err
	}
	if partition == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "partition not found")
	}
	return partition.Id, nil
}

func (s *documentService) Upload(ctx context.Context, req *dto.UploadDocumentsRequest) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	partitionId, err := s.resolveTargetPartition(ctx, uow, req.PartitionId)
	if err != nil {
		return nil, err
	}

	// The position read and the inserts share one transaction, so the
	// advisory lock under NextPosition holds until commit and concurrent
	// batches cannot interleave duplicate positions.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	basePosition, err := uow.DocumentRepository().NextPosition(ctx)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	type storedFile struct {
		doc  entity.Document
		file dto.UploadFilePayload
	}
	stored := make([]storedFile, 0, len(req.Files))

	// Each file is ingested independently: a bad file degrades that one
	// document, never its siblings.
	for _, file := range req.Files {
		raw, err := base64.StdEncoding.DecodeString(file.Data)
		if err != nil {
			s.logger.Warn("DocumentService", "Skipping file with invalid base64 payload", map[string]interface{}{
				"file_name": file.FileName,
				"error":     err.Error(),
			})
			continue
		}

		sizeLabel := ingest.SizeLabel(len(raw))
		doc := entity.Document{
			Id:          uuid.New(),
			PartitionId: partitionId,
			Position:    basePosition + len(stored),
			Name:        file.FileName,
			Kind:        ingest.Classify(file.FileName),
			Content:     ingest.DecodeText(raw),
			SizeLabel:   &sizeLabel,
			Status:      constant.DocumentStatusPending,
			CreatedAt:   time.Now(),
		}

		if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
			uow.Rollback()
			return nil, err
		}
		stored = append(stored, storedFile{doc: doc, file: file})
	}

	if len(stored) == 0 {
		uow.Rollback()
		return nil, fiber.NewError(fiber.StatusBadRequest, "no decodable files in the batch")
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Enqueue and announce only committed documents.
	responses := make([]*dto.DocumentResponse, 0, len(stored))
	for _, sf := range stored {
		msgPayload := dto.SummarizeDocumentMessage{
			DocumentId: sf.doc.Id,
			MimeType:   sf.file.MimeType,
			RawBase64:  sf.file.Data,
		}
		msgJson, err := json.Marshal(msgPayload)
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			// Summarization is enrichment, not a precondition: the document
			// stays usable in PENDING state.
			s.logger.Warn("DocumentService", "Failed to enqueue summarization", map[string]interface{}{
				"document_id": sf.doc.Id,
				"error":       err.Error(),
			})
		}

		s.publishEvent(ctx, constant.EventDocumentCreated, map[string]interface{}{
			"document_id":  sf.doc.Id,
			"partition_id": sf.doc.PartitionId,
			"name":         sf.doc.Name,
			"kind":         sf.doc.Kind,
			"status":       sf.doc.Status,
		})

		doc := sf.doc
		responses = append(responses, mapDocumentResponse(&doc))
	}

	return responses, nil
}

func (s *documentService) AddLink(ctx context.Context, req *dto.AddLinkRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	partitionId, err := s.resolveTargetPartition(ctx, uow, req.PartitionId)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	position, err := uow.DocumentRepository().NextPosition(ctx)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	// Links skip the classification round-trip: the document is complete
	// immediately, with placeholder content and a host-derived summary.
	summary := linkSummary(req.URL)
	sourceURL := req.URL
	doc := entity.Document{
		Id:          uuid.New(),
		PartitionId: partitionId,
		Position:    position,
		Name:        req.URL,
		Kind:        constant.DocumentKindWeb,
		Content:     "Linked resource: " + req.URL,
		SourceURL:   &sourceURL,
		Status:      constant.DocumentStatusCompleted,
		Summary:     &summary,
		CreatedAt:   time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, constant.EventDocumentCreated, map[string]interface{}{
		"document_id":  doc.Id,
		"partition_id": doc.PartitionId,
		"name":         doc.Name,
		"kind":         doc.Kind,
		"status":       doc.Status,
	})

	return mapDocumentResponse(&doc), nil
}

func (s *documentService) List(ctx context.Context, partitionId *uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "position"},
	}
	// The virtual "all" bucket matches everything, so no filter for it.
	if partitionId != nil && *partitionId != constant.PartitionAllId {
		specs = append(specs, specification.ByPartitionID{PartitionID: *partitionId})
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, mapDocumentResponse(doc))
	}
	return responses, nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil // Not found
	}

	return &dto.ShowDocumentResponse{
		DocumentResponse: *mapDocumentResponse(doc),
		Content:          doc.Content,
	}, nil
}

func (s *documentService) Move(ctx context.Context, req *dto.MoveDocumentRequest) (*dto.MoveDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil // Not found
	}

	targetId := req.PartitionId
	// "all" is a view, never a membership value.
	if targetId == constant.PartitionAllId {
		targetId = constant.PartitionUncategorizedId
	} else {
		partition, err := uow.PartitionRepository().FindOne(ctx, specification.ByID{ID: targetId})
		if err != nil {
			return nil, err
		}
		if partition == nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "partition not found")
		}
	}

	doc.PartitionId = targetId
	now := time.Now()
	doc.UpdatedAt = &now
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	return &dto.MoveDocumentResponse{
		Id:          doc.Id,
		PartitionId: doc.PartitionId,
	}, nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return fiber.NewError(fiber.StatusNotFound, "document not found")
	}

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, constant.EventDocumentDeleted, map[string]interface{}{
		"document_id":  id,
		"partition_id": doc.PartitionId,
	})

	return nil
}

func (s *documentService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	// Sync events are auxiliary; a publish failure never fails the request.
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("DocumentService", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func linkSummary(rawURL string) string {
	label := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		label = u.Host
	}
	return clampSummary(label)
}

func clampSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= constant.SummaryMaxChars {
		return s
	}
	return string(runes[:constant.SummaryMaxChars])
}

func mapDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:          doc.Id,
		PartitionId: doc.PartitionId,
		Position:    doc.Position,
		Name:        doc.Name,
		Kind:        doc.Kind,
		SourceURL:   doc.SourceURL,
		SizeLabel:   doc.SizeLabel,
		Status:      doc.Status,
		Summary:     doc.Summary,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}
