package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-knowledgebase-be/internal/constant"
	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analysisFixture struct {
	uow         *fakeUow
	sessionRepo *memory.SessionRepository
	llm         *fakeLLM
	svc         IAnalysisService
	sessionId   uuid.UUID
}

func newAnalysisFixture(t *testing.T, llmReply string, llmErr error) *analysisFixture {
	t.Helper()

	uow := newFakeUow()
	sessionId := uuid.New()
	uow.sessions.sessions = []*entity.ChatSession{{Id: sessionId, Title: "New analysis"}}

	sessionRepo := memory.NewSessionRepository()
	llmFake := &fakeLLM{reply: llmReply, err: llmErr}
	svc := NewAnalysisService(&fakeUowFactory{uow: uow}, sessionRepo, llmFake, 100000, nopLogger{})

	return &analysisFixture{
		uow:         uow,
		sessionRepo: sessionRepo,
		llm:         llmFake,
		svc:         svc,
		sessionId:   sessionId,
	}
}

func (f *analysisFixture) addDocument(name, kind, content string) {
	f.uow.documents.docs = append(f.uow.documents.docs, &entity.Document{
		Id:          uuid.New(),
		PartitionId: constant.PartitionUncategorizedId,
		Position:    len(f.uow.documents.docs) + 1,
		Name:        name,
		Kind:        kind,
		Content:     content,
	})
}

func TestAskAppendsUserThenModelMessage(t *testing.T) {
	f := newAnalysisFixture(t, "The total is 42.", nil)
	f.addDocument("sales.csv", constant.DocumentKindCSV, "name,price\nwidget,42")

	res, err := f.svc.Ask(context.Background(), &dto.AskRequest{
		ChatSessionId: f.sessionId,
		Query:         "What is the total?",
		PartitionIds:  []uuid.UUID{constant.PartitionAllId},
	})
	require.NoError(t, err)

	require.NotNil(t, res.Sent)
	require.NotNil(t, res.Reply)
	assert.Equal(t, constant.ChatMessageRoleUser, res.Sent.Role)
	assert.Equal(t, constant.ChatMessageRoleModel, res.Reply.Role)
	assert.Equal(t, "The total is 42.", res.Reply.Chat)
	assert.Equal(t, 1, res.SourceCount)

	require.Len(t, f.uow.messages.messages, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, f.uow.messages.messages[0].Role)
	assert.Equal(t, constant.ChatMessageRoleModel, f.uow.messages.messages[1].Role)

	// Assembled context reaches the model wrapped in document sentinels.
	require.NotEmpty(t, f.llm.lastPayload)
	assert.Contains(t, f.llm.lastPayload[0].Content, "=== FILE_START")
	assert.Contains(t, f.llm.lastPayload[0].Content, "sales.csv")
}

func TestAskEmptyQueryAnsweredLocally(t *testing.T) {
	f := newAnalysisFixture(t, "unused", nil)
	f.addDocument("notes.txt", constant.DocumentKindText, "some notes")

	res, err := f.svc.Ask(context.Background(), &dto.AskRequest{
		ChatSessionId: f.sessionId,
		Query:         "   ",
	})
	require.NoError(t, err)

	assert.Nil(t, res.Sent)
	assert.Equal(t, constant.AnalysisEmptyQueryReplyV1, res.Reply.Chat)
	assert.Zero(t, f.llm.calls)
	assert.Empty(t, f.uow.messages.messages)
}

func TestAskWithoutDocumentsAnsweredLocally(t *testing.T) {
	f := newAnalysisFixture(t, "unused", nil)

	res, err := f.svc.Ask(context.Background(), &dto.AskRequest{
		ChatSessionId: f.sessionId,
		Query:         "Anything in there?",
		PartitionIds:  []uuid.UUID{constant.PartitionAllId},
	})
	require.NoError(t, err)

	assert.Equal(t, constant.AnalysisNoDocumentsReplyV1, res.Reply.Chat)
	assert.Zero(t, res.SourceCount)
	assert.Zero(t, f.llm.calls)
	assert.Empty(t, f.uow.messages.messages)
}

func TestAskWithEmptySelectionAnsweredLocally(t *testing.T) {
	f := newAnalysisFixture(t, "unused", nil)
	f.addDocument("sales.csv", constant.DocumentKindCSV, "name,price\nwidget,42")

	// Zero partitions selected means zero documents, even when the store has
	// content. The model is never called and nothing is persisted.
	res, err := f.svc.Ask(context.Background(), &dto.AskRequest{
		ChatSessionId: f.sessionId,
		Query:         "What is the total?",
	})
	require.NoError(t, err)

	assert.Equal(t, constant.AnalysisNoDocumentsReplyV1, res.Reply.Chat)
	assert.Zero(t, res.SourceCount)
	assert.Zero(t, f.llm.calls)
	assert.Empty(t, f.uow.messages.messages)
}

func TestAskMissingSessionFails(t *testing.T) {
	f := newAnalysisFixture(t, "unused", nil)

	_, err := f.svc.Ask(context.Background(), &dto.AskRequest{
		ChatSessionId: uuid.New(),
		Query:         "hello",
	})

	var fiberErr *fiber.Error
	require.True(t, errors.As(err, &fiberErr))
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
}

func TestAskRemoteFailureRecordsInlineErrorReply(t *testing.T) {
	f := newAnalysisFixture(t, "", errors.New("upstream unavailable"))
	f.addDocument("notes.txt", constant.DocumentKindText, "some notes")

	res, err := f.svc.Ask(context.Background(), &dto.AskRequest{
		ChatSessionId: f.sessionId,
		Query:         "Summarize the notes",
		PartitionIds:  []uuid.UUID{constant.PartitionAllId},
	})
	require.NoError(t, err)

	assert.Equal(t, constant.AnalysisFailureReplyV1, res.Reply.Chat)

	// The user's turn and the inline error reply both land in the log.
	require.Len(t, f.uow.messages.messages, 2)
	assert.Equal(t, "Summarize the notes", f.uow.messages.messages[0].Chat)
	assert.Equal(t, constant.AnalysisFailureReplyV1, f.uow.messages.messages[1].Chat)
}

func TestAskBlankReplyTreatedAsFailure(t *testing.T) {
	f := newAnalysisFixture(t, "   ", nil)
	f.addDocument("notes.txt", constant.DocumentKindText, "some notes")

	res, err := f.svc.Ask(context.Background(), &dto.AskRequest{
		ChatSessionId: f.sessionId,
		Query:         "Summarize the notes",
		PartitionIds:  []uuid.UUID{constant.PartitionAllId},
	})
	require.NoError(t, err)
	assert.Equal(t, constant.AnalysisFailureReplyV1, res.Reply.Chat)
}

func TestAskSecondQuestionWhileFirstInFlightRejected(t *testing.T) {
	f := newAnalysisFixture(t, "reply", nil)
	f.addDocument("notes.txt", constant.DocumentKindText, "some notes")

	// Simulate an outstanding question for this session.
	require.True(t, f.sessionRepo.TryAcquire(f.sessionId.String(), "first question"))

	_, err := f.svc.Ask(context.Background(), &dto.AskRequest{
		ChatSessionId: f.sessionId,
		Query:         "second question",
		PartitionIds:  []uuid.UUID{constant.PartitionAllId},
	})

	var fiberErr *fiber.Error
	require.True(t, errors.As(err, &fiberErr))
	assert.Equal(t, fiber.StatusConflict, fiberErr.Code)
	assert.Zero(t, f.llm.calls)

	// Once released the session accepts questions again.
	f.sessionRepo.Release(f.sessionId.String())
	_, err = f.svc.Ask(context.Background(), &dto.AskRequest{
		ChatSessionId: f.sessionId,
		Query:         "second question",
		PartitionIds:  []uuid.UUID{constant.PartitionAllId},
	})
	require.NoError(t, err)
}

func TestAskSelectionContainingAllBucketMatchesEverything(t *testing.T) {
	f := newAnalysisFixture(t, "reply", nil)
	f.addDocument("a.txt", constant.DocumentKindText, "alpha content")
	f.addDocument("b.txt", constant.DocumentKindText, "beta content")

	res, err := f.svc.Ask(context.Background(), &dto.AskRequest{
		ChatSessionId: f.sessionId,
		Query:         "what do we have?",
		PartitionIds:  []uuid.UUID{uuid.New(), constant.PartitionAllId},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.SourceCount)
}

func TestAskSelectionFiltersByPartition(t *testing.T) {
	f := newAnalysisFixture(t, "reply", nil)
	other := uuid.New()
	f.addDocument("in.txt", constant.DocumentKindText, "selected content")
	f.uow.documents.docs = append(f.uow.documents.docs, &entity.Document{
		Id:          uuid.New(),
		PartitionId: other,
		Position:    2,
		Name:        "out.txt",
		Kind:        constant.DocumentKindText,
		Content:     "excluded content",
	})

	res, err := f.svc.Ask(context.Background(), &dto.AskRequest{
		ChatSessionId: f.sessionId,
		Query:         "what is selected?",
		PartitionIds:  []uuid.UUID{constant.PartitionUncategorizedId},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.SourceCount)
	assert.False(t, strings.Contains(f.llm.lastPayload[0].Content, "excluded content"))
}

func TestDeleteSessionRemovesMessages(t *testing.T) {
	f := newAnalysisFixture(t, "reply", nil)
	f.uow.messages.messages = []*entity.ChatMessage{
		{Id: uuid.New(), ChatSessionId: f.sessionId, Role: constant.ChatMessageRoleUser, Chat: "q"},
		{Id: uuid.New(), ChatSessionId: f.sessionId, Role: constant.ChatMessageRoleModel, Chat: "a"},
	}

	require.NoError(t, f.svc.DeleteSession(context.Background(), f.sessionId))
	assert.Empty(t, f.uow.sessions.sessions)
	assert.Empty(t, f.uow.messages.messages)
}

func TestDeleteMissingSessionFails(t *testing.T) {
	f := newAnalysisFixture(t, "reply", nil)

	err := f.svc.DeleteSession(context.Background(), uuid.New())

	var fiberErr *fiber.Error
	require.True(t, errors.As(err, &fiberErr))
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
}

func TestCreateSessionReturnsId(t *testing.T) {
	f := newAnalysisFixture(t, "reply", nil)

	res, err := f.svc.CreateSession(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.Id)
	assert.Len(t, f.uow.sessions.sessions, 2)
}
