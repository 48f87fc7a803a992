package summary_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/domain/message"
	"parley-server/services/chat-api/internal/domain/query"
	"parley-server/services/chat-api/internal/domain/summary"
	"parley-server/services/chat-api/internal/domain/thread"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

type mockSummaryRepository struct {
	UpsertFunc       func(ctx context.Context, s *summary.MessageSummary) error
	FindByThreadFunc func(ctx context.Context, threadID string) (*summary.MessageSummary, error)
	DeleteFunc       func(ctx context.Context, threadID string) error
}

func (m *mockSummaryRepository) Upsert(ctx context.Context, s *summary.MessageSummary) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, s)
	}
	return nil
}

func (m *mockSummaryRepository) FindByThread(ctx context.Context, threadID string) (*summary.MessageSummary, error) {
	if m.FindByThreadFunc != nil {
		return m.FindByThreadFunc(ctx, threadID)
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "no summary", nil, "summary-find-not-found")
}

func (m *mockSummaryRepository) DeleteByThread(ctx context.Context, threadID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, threadID)
	}
	return nil
}

type mockGenerator struct {
	SummarizeFunc func(ctx context.Context, content string) (string, string, error)
}

func (m *mockGenerator) Summarize(ctx context.Context, content string) (string, string, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, content)
	}
	return "", "", nil
}

// messageRepoWithRows backs a real message service with fixed rows for
// the generation path.
type messageRepoWithRows struct {
	rows []*message.Message
}

func (m *messageRepoWithRows) Upsert(ctx context.Context, msg *message.Message) error { return nil }

func (m *messageRepoWithRows) FindByID(ctx context.Context, id string) (*message.Message, error) {
	return nil, nil
}

func (m *messageRepoWithRows) ListByThread(ctx context.Context, threadID string) ([]*message.Message, error) {
	return m.rows, nil
}

func (m *messageRepoWithRows) UpdateContent(ctx context.Context, id, content string) error {
	return nil
}

func (m *messageRepoWithRows) DeleteTrailing(ctx context.Context, threadID string, cutoff time.Time, inclusive bool) (int64, error) {
	return 0, nil
}

type noopThreadRepo struct{}

func (noopThreadRepo) Create(ctx context.Context, t *thread.Thread) error { return nil }

func (noopThreadRepo) FindByID(ctx context.Context, id string) (*thread.Thread, error) {
	return nil, nil
}

func (noopThreadRepo) FindByFilter(ctx context.Context, filter thread.Filter, pagination *query.Pagination) ([]*thread.Thread, error) {
	return nil, nil
}

func (noopThreadRepo) Update(ctx context.Context, t *thread.Thread) error { return nil }

func (noopThreadRepo) Delete(ctx context.Context, id string) error { return nil }

func (noopThreadRepo) DeleteAllByUser(ctx context.Context, userID string) error { return nil }

func (noopThreadRepo) TouchLastMessageAt(ctx context.Context, id string, at time.Time) error {
	return nil
}

func authedContext(userID string) context.Context {
	return domain.WithPrincipal(context.Background(), domain.Principal{ID: userID})
}

func messagesWith(rows ...*message.Message) *message.Service {
	return message.NewService(&messageRepoWithRows{rows: rows}, noopThreadRepo{}, nil, nil, zerolog.Nop())
}

func TestGenerate_WithoutGeneratorIsNotImplemented(t *testing.T) {
	svc := summary.NewService(&mockSummaryRepository{}, messagesWith(), nil, zerolog.Nop())

	_, err := svc.Generate(authedContext("user-1"), "thread-1")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotImplemented) {
		t.Fatalf("expected NOT_IMPLEMENTED, got %v", err)
	}
}

func TestGenerate_FeedsTranscriptAndStoresResult(t *testing.T) {
	var stored *summary.MessageSummary
	repo := &mockSummaryRepository{
		UpsertFunc: func(ctx context.Context, s *summary.MessageSummary) error {
			stored = s
			return nil
		},
	}
	generator := &mockGenerator{
		SummarizeFunc: func(ctx context.Context, content string) (string, string, error) {
			if !strings.Contains(content, "user: hi there") {
				t.Errorf("expected transcript in prompt, got %q", content)
			}
			if strings.Contains(content, "empty-content") {
				t.Error("empty messages must be skipped")
			}
			return "a short recap", "gpt-4o-mini", nil
		},
	}
	messages := messagesWith(
		&message.Message{ID: "empty-content", Role: message.RoleUser},
		&message.Message{ID: "m1", Role: message.RoleUser, Content: "hi there"},
		&message.Message{ID: "m2", Role: message.RoleAssistant, Content: "hello"},
	)
	svc := summary.NewService(repo, messages, generator, zerolog.Nop())

	generated, err := svc.Generate(authedContext("user-1"), "thread-1")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if generated.Summary != "a short recap" || generated.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected summary: %+v", generated)
	}
	if stored == nil || stored.ThreadID != "thread-1" || stored.UserID != "user-1" {
		t.Fatalf("unexpected stored row: %+v", stored)
	}
}

func TestGenerate_GeneratorFailureIsExternal(t *testing.T) {
	generator := &mockGenerator{
		SummarizeFunc: func(ctx context.Context, content string) (string, string, error) {
			return "", "", context.DeadlineExceeded
		},
	}
	svc := summary.NewService(&mockSummaryRepository{}, messagesWith(), generator, zerolog.Nop())

	_, err := svc.Generate(authedContext("user-1"), "thread-1")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
		t.Fatalf("expected EXTERNAL, got %v", err)
	}
}

func TestGet_MissingSummaryYieldsNil(t *testing.T) {
	svc := summary.NewService(&mockSummaryRepository{}, messagesWith(), nil, zerolog.Nop())

	found, err := svc.Get(context.Background(), "thread-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil, got %+v", found)
	}
}
