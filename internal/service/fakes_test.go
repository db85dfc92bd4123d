package service

import (
	"context"
	"sort"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/repository/contract"
	"ai-knowledgebase-be/internal/repository/specification"
	"ai-knowledgebase-be/internal/repository/unitofwork"
	"ai-knowledgebase-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory doubles for the repository layer. Specifications are interpreted
// by type switch since there is no gorm.DB to apply them to.

type fakeUow struct {
	documents  *fakeDocumentRepo
	partitions *fakePartitionRepo
	sessions   *fakeChatSessionRepo
	messages   *fakeChatMessageRepo
	settings   *fakeSettingRepo

	begins    int
	commits   int
	rollbacks int
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		documents:  &fakeDocumentRepo{},
		partitions: &fakePartitionRepo{},
		sessions:   &fakeChatSessionRepo{},
		messages:   &fakeChatMessageRepo{},
		settings:   &fakeSettingRepo{values: map[string]string{}},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { u.begins++; return nil }
func (u *fakeUow) Commit() error                   { u.commits++; return nil }
func (u *fakeUow) Rollback() error                 { u.rollbacks++; return nil }

func (u *fakeUow) DocumentRepository() contract.DocumentRepository       { return u.documents }
func (u *fakeUow) PartitionRepository() contract.PartitionRepository     { return u.partitions }
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository { return u.sessions }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository { return u.messages }
func (u *fakeUow) SettingRepository() contract.SettingRepository         { return u.settings }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// --- Documents ---

type fakeDocumentRepo struct {
	docs []*entity.Document
}

func (r *fakeDocumentRepo) filter(specs []specification.Specification) []*entity.Document {
	out := make([]*entity.Document, 0, len(r.docs))
	out = append(out, r.docs...)

	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			filtered := out[:0]
			for _, d := range out {
				if d.Id == s.ID {
					filtered = append(filtered, d)
				}
			}
			out = filtered
		case specification.ByPartitionID:
			filtered := out[:0]
			for _, d := range out {
				if d.PartitionId == s.PartitionID {
					filtered = append(filtered, d)
				}
			}
			out = filtered
		case specification.ByPartitionIDs:
			filtered := out[:0]
			for _, d := range out {
				for _, id := range s.PartitionIDs {
					if d.PartitionId == id {
						filtered = append(filtered, d)
						break
					}
				}
			}
			out = filtered
		case specification.OrderBy:
			if s.Field == "position" {
				sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
			}
		}
	}
	return out
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	r.docs = append(r.docs, doc)
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, doc *entity.Document) error {
	for i, d := range r.docs {
		if d.Id == doc.Id {
			r.docs[i] = doc
			return nil
		}
	}
	return nil
}

func (r *fakeDocumentRepo) PatchSummary(ctx context.Context, id uuid.UUID, summary string, status string) error {
	for _, d := range r.docs {
		if d.Id == id {
			s := summary
			d.Summary = &s
			d.Status = status
		}
	}
	return nil
}

func (r *fakeDocumentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	for _, d := range r.docs {
		if d.Id == id {
			d.Status = status
		}
	}
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, d := range r.docs {
		if d.Id == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	filtered := r.filter(specs)
	if len(filtered) == 0 {
		return nil, nil
	}
	return filtered[0], nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	return r.filter(specs), nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.filter(specs))), nil
}

func (r *fakeDocumentRepo) NextPosition(ctx context.Context) (int, error) {
	max := 0
	for _, d := range r.docs {
		if d.Position > max {
			max = d.Position
		}
	}
	return max + 1, nil
}

func (r *fakeDocumentRepo) ReassignPartition(ctx context.Context, from uuid.UUID, to uuid.UUID) error {
	for _, d := range r.docs {
		if d.PartitionId == from {
			d.PartitionId = to
		}
	}
	return nil
}

// --- Partitions ---

type fakePartitionRepo struct {
	partitions []*entity.Partition
}

func (r *fakePartitionRepo) Create(ctx context.Context, p *entity.Partition) error {
	r.partitions = append(r.partitions, p)
	return nil
}

func (r *fakePartitionRepo) Update(ctx context.Context, p *entity.Partition) error {
	for i, existing := range r.partitions {
		if existing.Id == p.Id {
			r.partitions[i] = p
		}
	}
	return nil
}

func (r *fakePartitionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, p := range r.partitions {
		if p.Id == id {
			r.partitions = append(r.partitions[:i], r.partitions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakePartitionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Partition, error) {
	for _, spec := range specs {
		if s, ok := spec.(specification.ByID); ok {
			for _, p := range r.partitions {
				if p.Id == s.ID {
					return p, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakePartitionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Partition, error) {
	return r.partitions, nil
}

// --- Chat sessions ---

type fakeChatSessionRepo struct {
	sessions []*entity.ChatSession
}

func (r *fakeChatSessionRepo) Create(ctx context.Context, s *entity.ChatSession) error {
	r.sessions = append(r.sessions, s)
	return nil
}

func (r *fakeChatSessionRepo) Update(ctx context.Context, s *entity.ChatSession) error { return nil }

func (r *fakeChatSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, s := range r.sessions {
		if s.Id == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeChatSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, spec := range specs {
		if s, ok := spec.(specification.ByID); ok {
			for _, session := range r.sessions {
				if session.Id == s.ID {
					return session, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeChatSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	return r.sessions, nil
}

// --- Chat messages ---

type fakeChatMessageRepo struct {
	messages []*entity.ChatMessage
}

func (r *fakeChatMessageRepo) Create(ctx context.Context, m *entity.ChatMessage) error {
	r.messages = append(r.messages, m)
	return nil
}

func (r *fakeChatMessageRepo) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.ChatSessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	out := make([]*entity.ChatMessage, 0, len(r.messages))
	for _, spec := range specs {
		if s, ok := spec.(specification.ByChatSessionID); ok {
			for _, m := range r.messages {
				if m.ChatSessionId == s.ChatSessionID {
					out = append(out, m)
				}
			}
			return out, nil
		}
	}
	return append(out, r.messages...), nil
}

// --- Settings ---

type fakeSettingRepo struct {
	values map[string]string
}

func (r *fakeSettingRepo) Set(ctx context.Context, key string, value string) error {
	r.values[key] = value
	return nil
}

func (r *fakeSettingRepo) Get(ctx context.Context, key string) (*entity.Setting, error) {
	v, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	return &entity.Setting{Key: key, Value: v}, nil
}

// --- LLM ---

type fakeLLM struct {
	reply       string
	err         error
	calls       int
	lastPayload []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	f.lastPayload = history
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

// --- Watermill publisher ---

type fakeQueuePublisher struct {
	published [][]byte
	err       error
}

func (f *fakeQueuePublisher) Publish(ctx context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, payload)
	return nil
}

// --- Logger ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
