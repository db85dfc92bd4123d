package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"ai-knowledgebase-be/internal/constant"
	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsumer(uow *fakeUow, llmFake *fakeLLM) *consumerService {
	return &consumerService{
		topicName:   "SUMMARIZE_DOCUMENT",
		uowFactory:  &fakeUowFactory{uow: uow},
		llmProvider: llmFake,
		logger:      nopLogger{},
	}
}

func summarizeMessage(t *testing.T, docId uuid.UUID) *message.Message {
	t.Helper()
	payload, err := json.Marshal(dto.SummarizeDocumentMessage{
		DocumentId: docId,
		MimeType:   "text/plain",
		RawBase64:  b64("file content"),
	})
	require.NoError(t, err)
	return message.NewMessage("test", payload)
}

func TestProcessMessageCompletesDocumentWithModelSummary(t *testing.T) {
	uow := newFakeUow()
	doc := &entity.Document{
		Id:          uuid.New(),
		PartitionId: constant.PartitionUncategorizedId,
		Name:        "sales.csv",
		Content:     "name,price\nwidget,10",
		Status:      constant.DocumentStatusPending,
	}
	uow.documents.docs = []*entity.Document{doc}

	cs := newConsumer(uow, &fakeLLM{reply: `{"summary": "Product price table"}`})
	cs.processMessage(context.Background(), summarizeMessage(t, doc.Id))

	assert.Equal(t, constant.DocumentStatusCompleted, doc.Status)
	require.NotNil(t, doc.Summary)
	assert.Equal(t, "Product price table", *doc.Summary)
	// Classification never rewrites the decoded content.
	assert.Equal(t, "name,price\nwidget,10", doc.Content)
}

func TestProcessMessageStripsCodeFencesFromReply(t *testing.T) {
	uow := newFakeUow()
	doc := &entity.Document{Id: uuid.New(), Name: "notes.txt", Status: constant.DocumentStatusPending}
	uow.documents.docs = []*entity.Document{doc}

	cs := newConsumer(uow, &fakeLLM{reply: "```json\n{\"summary\": \"Meeting notes\"}\n```"})
	cs.processMessage(context.Background(), summarizeMessage(t, doc.Id))

	assert.Equal(t, constant.DocumentStatusCompleted, doc.Status)
	require.NotNil(t, doc.Summary)
	assert.Equal(t, "Meeting notes", *doc.Summary)
}

func TestProcessMessageClampsLongSummaries(t *testing.T) {
	uow := newFakeUow()
	doc := &entity.Document{Id: uuid.New(), Name: "notes.txt", Status: constant.DocumentStatusPending}
	uow.documents.docs = []*entity.Document{doc}

	long := strings.Repeat("x", 100)
	cs := newConsumer(uow, &fakeLLM{reply: `{"summary": "` + long + `"}`})
	cs.processMessage(context.Background(), summarizeMessage(t, doc.Id))

	require.NotNil(t, doc.Summary)
	assert.Len(t, []rune(*doc.Summary), constant.SummaryMaxChars)
}

func TestProcessMessageFailureSubstitutesFallbackSummary(t *testing.T) {
	uow := newFakeUow()
	doc := &entity.Document{
		Id:      uuid.New(),
		Name:    "quarterly-report.pdf",
		Content: "original decoded content",
		Status:  constant.DocumentStatusPending,
	}
	uow.documents.docs = []*entity.Document{doc}

	cs := newConsumer(uow, &fakeLLM{err: errors.New("upstream unavailable")})
	cs.processMessage(context.Background(), summarizeMessage(t, doc.Id))

	assert.Equal(t, constant.DocumentStatusError, doc.Status)
	require.NotNil(t, doc.Summary)
	assert.Equal(t, "quarterly-report.pdf", *doc.Summary)
	assert.Equal(t, "original decoded content", doc.Content)
}

func TestProcessMessageMalformedReplyIsFailure(t *testing.T) {
	uow := newFakeUow()
	doc := &entity.Document{Id: uuid.New(), Name: "notes.txt", Status: constant.DocumentStatusPending}
	uow.documents.docs = []*entity.Document{doc}

	cs := newConsumer(uow, &fakeLLM{reply: "not json at all"})
	cs.processMessage(context.Background(), summarizeMessage(t, doc.Id))

	assert.Equal(t, constant.DocumentStatusError, doc.Status)
}

func TestProcessMessageDeletedDocumentIsSilentNoop(t *testing.T) {
	uow := newFakeUow()
	llmFake := &fakeLLM{reply: `{"summary": "unused"}`}
	cs := newConsumer(uow, llmFake)

	cs.processMessage(context.Background(), summarizeMessage(t, uuid.New()))

	assert.Zero(t, llmFake.calls)
}

func TestProcessMessageInvalidPayloadAcked(t *testing.T) {
	uow := newFakeUow()
	llmFake := &fakeLLM{}
	cs := newConsumer(uow, llmFake)

	msg := message.NewMessage("test", []byte("{broken"))
	cs.processMessage(context.Background(), msg)

	assert.Zero(t, llmFake.calls)
}

func TestFallbackSummaryHandlesEmptyName(t *testing.T) {
	assert.Equal(t, "Unclassified document", fallbackSummary(""))
	assert.Equal(t, "report.pdf", fallbackSummary("report.pdf"))
}
