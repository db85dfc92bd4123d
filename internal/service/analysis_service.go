package service

import (
	"context"
	"strings"
	"time"

	"ai-knowledgebase-be/internal/constant"
	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/pkg/logger"
	"ai-knowledgebase-be/internal/repository/memory"
	"ai-knowledgebase-be/internal/repository/specification"
	"ai-knowledgebase-be/internal/repository/unitofwork"
	"ai-knowledgebase-be/pkg/assembler"
	"ai-knowledgebase-be/pkg/llm"
	"ai-knowledgebase-be/pkg/prompt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAnalysisService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	ListSessions(ctx context.Context) ([]*dto.SessionResponse, error)
	History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatHistoryResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
}

type analysisService struct {
	uowFactory      unitofwork.RepositoryFactory
	sessionRepo     *memory.SessionRepository
	llmProvider     llm.LLMProvider
	maxContextChars int
	logger          logger.ILogger
}

func NewAnalysisService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.SessionRepository,
	llmProvider llm.LLMProvider,
	maxContextChars int,
	log logger.ILogger,
) IAnalysisService {
	return &analysisService{
		uowFactory:      uowFactory,
		sessionRepo:     sessionRepo,
		llmProvider:     llmProvider,
		maxContextChars: maxContextChars,
		logger:          log,
	}
}

func (s *analysisService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := entity.ChatSession{
		Id:        uuid.New(),
		Title:     "New analysis",
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *analysisService) ListSessions(ctx context.Context) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, &dto.SessionResponse{
			Id:        session.Id,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
		})
	}
	return responses, nil
}

func (s *analysisService) History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ChatHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		responses = append(responses, &dto.ChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Chat:      msg.Chat,
			Thinking:  msg.Thinking,
			CreatedAt: msg.CreatedAt,
		})
	}
	return responses, nil
}

func (s *analysisService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.sessionRepo.Delete(sessionId.String())
	return nil
}

// Ask runs one full analysis turn: resolve the selected partitions to
// documents, assemble the context, build the prompt, call the model, and
// append exactly one user message and one model message, in that order.
// Precondition failures (empty query, empty document set) are answered
// locally without touching the model or the log. Remote failures still
// record the user's turn plus an inline error reply.
func (s *analysisService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return s.localReply(req.ChatSessionId, constant.AnalysisEmptyQueryReplyV1), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.ChatSessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	// Single-flight: one outstanding question per session, enforced here so
	// every entry point is covered, not just the UI.
	if !s.sessionRepo.TryAcquire(req.ChatSessionId.String(), query) {
		return nil, fiber.NewError(fiber.StatusConflict, "a question is already in flight for this session")
	}
	defer s.sessionRepo.Release(req.ChatSessionId.String())

	sources, err := s.resolveSources(ctx, uow, req.PartitionIds)
	if err != nil {
		return nil, err
	}

	assembled := assembler.Assemble(sources, s.maxContextChars)
	sourceCount := strings.Count(assembled, "=== FILE_START")
	if sourceCount == 0 {
		return s.localReply(req.ChatSessionId, constant.AnalysisNoDocumentsReplyV1), nil
	}

	history, err := s.loadHistory(ctx, uow, req.ChatSessionId)
	if err != nil {
		return nil, err
	}

	payload, err := prompt.Build(query, history, assembled)
	if err != nil {
		// Build only fails on the preconditions already checked above.
		return s.localReply(req.ChatSessionId, constant.AnalysisNoDocumentsReplyV1), nil
	}

	userMsg := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          query,
		Role:          constant.ChatMessageRoleUser,
		ChatSessionId: req.ChatSessionId,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMsg); err != nil {
		return nil, err
	}

	reply, callErr := s.llmProvider.Chat(ctx, payload, llm.WithTemperature(0.2))
	if callErr != nil || strings.TrimSpace(reply) == "" {
		if callErr != nil {
			s.logger.Error("AnalysisService", "Remote analysis call failed", map[string]interface{}{
				"session_id": req.ChatSessionId,
				"error":      callErr.Error(),
			})
		}
		reply = constant.AnalysisFailureReplyV1
	}

	modelMsg := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          reply,
		Role:          constant.ChatMessageRoleModel,
		ChatSessionId: req.ChatSessionId,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &modelMsg); err != nil {
		return nil, err
	}

	return &dto.AskResponse{
		ChatSessionId: req.ChatSessionId,
		Sent: &dto.AskResponseChat{
			Id:        userMsg.Id,
			Chat:      userMsg.Chat,
			Role:      userMsg.Role,
			CreatedAt: userMsg.CreatedAt,
		},
		Reply: &dto.AskResponseChat{
			Id:        modelMsg.Id,
			Chat:      modelMsg.Chat,
			Role:      modelMsg.Role,
			CreatedAt: modelMsg.CreatedAt,
		},
		SourceCount: sourceCount,
	}, nil
}

// resolveSources expands the selected partitions into ordered document
// snapshots. Selecting nothing yields nothing; only the virtual "all" bucket
// expands to every document.
func (s *analysisService) resolveSources(ctx context.Context, uow unitofwork.UnitOfWork, partitionIds []uuid.UUID) ([]assembler.Source, error) {
	if len(partitionIds) == 0 {
		return nil, nil
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "position"},
	}

	selectAll := false
	for _, id := range partitionIds {
		if id == constant.PartitionAllId {
			selectAll = true
			break
		}
	}
	if !selectAll {
		specs = append(specs, specification.ByPartitionIDs{PartitionIDs: partitionIds})
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	sources := make([]assembler.Source, 0, len(docs))
	for _, doc := range docs {
		sources = append(sources, assembler.Source{
			Id:      doc.Id.String(),
			Name:    doc.Name,
			Kind:    doc.Kind,
			Content: doc.Content,
		})
	}
	return sources, nil
}

func (s *analysisService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]prompt.Turn, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	turns := make([]prompt.Turn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, prompt.Turn{
			Role:    msg.Role,
			Content: msg.Chat,
		})
	}
	return turns, nil
}

// localReply answers a precondition-rejected question deterministically,
// without a remote call and without touching the conversation log.
func (s *analysisService) localReply(sessionId uuid.UUID, text string) *dto.AskResponse {
	return &dto.AskResponse{
		ChatSessionId: sessionId,
		Reply: &dto.AskResponseChat{
			Id:        uuid.New(),
			Chat:      text,
			Role:      constant.ChatMessageRoleModel,
			CreatedAt: time.Now(),
		},
	}
}
