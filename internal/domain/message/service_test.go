package message_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/domain/attachment"
	"parley-server/services/chat-api/internal/domain/message"
	"parley-server/services/chat-api/internal/domain/query"
	"parley-server/services/chat-api/internal/domain/thread"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

type mockMessageRepository struct {
	UpsertFunc         func(ctx context.Context, msg *message.Message) error
	FindByIDFunc       func(ctx context.Context, id string) (*message.Message, error)
	ListByThreadFunc   func(ctx context.Context, threadID string) ([]*message.Message, error)
	UpdateContentFunc  func(ctx context.Context, id, content string) error
	DeleteTrailingFunc func(ctx context.Context, threadID string, cutoff time.Time, inclusive bool) (int64, error)
}

func (m *mockMessageRepository) Upsert(ctx context.Context, msg *message.Message) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) FindByID(ctx context.Context, id string) (*message.Message, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockMessageRepository) ListByThread(ctx context.Context, threadID string) ([]*message.Message, error) {
	if m.ListByThreadFunc != nil {
		return m.ListByThreadFunc(ctx, threadID)
	}
	return nil, nil
}

func (m *mockMessageRepository) UpdateContent(ctx context.Context, id, content string) error {
	if m.UpdateContentFunc != nil {
		return m.UpdateContentFunc(ctx, id, content)
	}
	return nil
}

func (m *mockMessageRepository) DeleteTrailing(ctx context.Context, threadID string, cutoff time.Time, inclusive bool) (int64, error) {
	if m.DeleteTrailingFunc != nil {
		return m.DeleteTrailingFunc(ctx, threadID, cutoff, inclusive)
	}
	return 0, nil
}

type mockThreadRepository struct {
	CreateFunc             func(ctx context.Context, t *thread.Thread) error
	FindByIDFunc           func(ctx context.Context, id string) (*thread.Thread, error)
	FindByFilterFunc       func(ctx context.Context, filter thread.Filter, pagination *query.Pagination) ([]*thread.Thread, error)
	TouchLastMessageAtFunc func(ctx context.Context, id string, at time.Time) error
}

func (m *mockThreadRepository) Create(ctx context.Context, t *thread.Thread) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockThreadRepository) FindByID(ctx context.Context, id string) (*thread.Thread, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockThreadRepository) FindByFilter(ctx context.Context, filter thread.Filter, pagination *query.Pagination) ([]*thread.Thread, error) {
	if m.FindByFilterFunc != nil {
		return m.FindByFilterFunc(ctx, filter, pagination)
	}
	return nil, nil
}

func (m *mockThreadRepository) Update(ctx context.Context, t *thread.Thread) error { return nil }

func (m *mockThreadRepository) Delete(ctx context.Context, id string) error { return nil }

func (m *mockThreadRepository) DeleteAllByUser(ctx context.Context, userID string) error { return nil }

func (m *mockThreadRepository) TouchLastMessageAt(ctx context.Context, id string, at time.Time) error {
	if m.TouchLastMessageAtFunc != nil {
		return m.TouchLastMessageAtFunc(ctx, id, at)
	}
	return nil
}

type mockAttachmentRepository struct {
	InsertFunc func(ctx context.Context, att *attachment.FileAttachment) error
}

func (m *mockAttachmentRepository) Insert(ctx context.Context, att *attachment.FileAttachment) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, att)
	}
	return nil
}

func (m *mockAttachmentRepository) FindByID(ctx context.Context, id string) (*attachment.FileAttachment, error) {
	return nil, nil
}

func (m *mockAttachmentRepository) ListByMessage(ctx context.Context, messageID string) ([]*attachment.FileAttachment, error) {
	return nil, nil
}

func (m *mockAttachmentRepository) ListByThread(ctx context.Context, threadID string) ([]*attachment.FileAttachment, error) {
	return nil, nil
}

func (m *mockAttachmentRepository) ListByUser(ctx context.Context, userID string) ([]*attachment.FileAttachment, error) {
	return nil, nil
}

func (m *mockAttachmentRepository) Delete(ctx context.Context, id string) error { return nil }

func authedContext(userID string) context.Context {
	return domain.WithPrincipal(context.Background(), domain.Principal{ID: userID})
}

func existingThread(userID string) *mockThreadRepository {
	return &mockThreadRepository{
		FindByFilterFunc: func(ctx context.Context, filter thread.Filter, pagination *query.Pagination) ([]*thread.Thread, error) {
			return []*thread.Thread{{ID: *filter.ID, UserID: userID}}, nil
		},
	}
}

func TestCreate_NormalizesMalformedID(t *testing.T) {
	var saved *message.Message
	repo := &mockMessageRepository{
		UpsertFunc: func(ctx context.Context, msg *message.Message) error {
			saved = msg
			return nil
		},
	}
	svc := message.NewService(repo, existingThread("user-1"), &mockAttachmentRepository{}, nil, zerolog.Nop())

	created, err := svc.Create(authedContext("user-1"), message.CreateParams{
		ID:       "not-a-uuid",
		ThreadID: "thread-1",
		Content:  "hello",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if uuid.Validate(created.ID) != nil {
		t.Fatalf("expected a normalized uuid, got %q", created.ID)
	}
	if saved == nil || saved.ID != created.ID {
		t.Fatal("expected the normalized id to be persisted")
	}
	if created.Role != message.RoleUser {
		t.Fatalf("expected default role user, got %q", created.Role)
	}
}

func TestCreate_KeepsCallerSuppliedUUID(t *testing.T) {
	id := uuid.NewString()
	svc := message.NewService(&mockMessageRepository{}, existingThread("user-1"), &mockAttachmentRepository{}, nil, zerolog.Nop())

	created, err := svc.Create(authedContext("user-1"), message.CreateParams{
		ID:       id,
		ThreadID: "thread-1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != id {
		t.Fatalf("expected caller id %q kept, got %q", id, created.ID)
	}
}

func TestCreate_EnsuresMissingThread(t *testing.T) {
	inserts := 0
	threadRepo := &mockThreadRepository{
		FindByFilterFunc: func(ctx context.Context, filter thread.Filter, pagination *query.Pagination) ([]*thread.Thread, error) {
			if !filter.IncludeArchived {
				t.Error("thread lookup must include archived threads")
			}
			return nil, nil
		},
		CreateFunc: func(ctx context.Context, created *thread.Thread) error {
			inserts++
			if created.ID != "thread-1" || created.UserID != "user-1" {
				t.Errorf("unexpected thread row: %+v", created)
			}
			return nil
		},
	}
	svc := message.NewService(&mockMessageRepository{}, threadRepo, &mockAttachmentRepository{}, nil, zerolog.Nop())

	if _, err := svc.Create(authedContext("user-1"), message.CreateParams{ThreadID: "thread-1"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if inserts != 1 {
		t.Fatalf("expected exactly one thread insert, got %d", inserts)
	}
}

func TestCreate_ToleratesConcurrentThreadInsert(t *testing.T) {
	threadRepo := &mockThreadRepository{
		FindByFilterFunc: func(ctx context.Context, filter thread.Filter, pagination *query.Pagination) ([]*thread.Thread, error) {
			return nil, nil
		},
		CreateFunc: func(ctx context.Context, created *thread.Thread) error {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"duplicate key",
				nil,
				"thread-create-conflict",
			)
		},
	}
	svc := message.NewService(&mockMessageRepository{}, threadRepo, &mockAttachmentRepository{}, nil, zerolog.Nop())

	if _, err := svc.Create(authedContext("user-1"), message.CreateParams{ThreadID: "thread-1"}); err != nil {
		t.Fatalf("expected conflict to be tolerated, got %v", err)
	}
}

func TestCreate_AttachmentsBecomeParts(t *testing.T) {
	var insertedRows []*attachment.FileAttachment
	attRepo := &mockAttachmentRepository{
		InsertFunc: func(ctx context.Context, att *attachment.FileAttachment) error {
			insertedRows = append(insertedRows, att)
			return nil
		},
	}
	svc := message.NewService(&mockMessageRepository{}, existingThread("user-1"), attRepo, nil, zerolog.Nop())

	created, err := svc.Create(authedContext("user-1"), message.CreateParams{
		ThreadID: "thread-1",
		Uploads: []attachment.Upload{
			{FileName: "notes.txt", FileType: "text/plain", FileSize: 12, URL: "https://files/notes.txt"},
			{FileName: "missing-url.txt"},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(insertedRows) != 1 {
		t.Fatalf("expected the url-less upload to be skipped, got %d rows", len(insertedRows))
	}
	if insertedRows[0].MessageID != created.ID {
		t.Fatal("attachment row must reference the message")
	}

	var refs []attachment.Ref
	for _, part := range created.Parts {
		if part.Type == message.PartTypeFileAttachments {
			refs = part.Attachments
		}
	}
	if len(refs) != 1 || refs[0].FileName != "notes.txt" {
		t.Fatalf("expected a file_attachments part with one ref, got %+v", created.Parts)
	}
}

func TestCreate_AttachmentInsertFailureKeepsMessage(t *testing.T) {
	attRepo := &mockAttachmentRepository{
		InsertFunc: func(ctx context.Context, att *attachment.FileAttachment) error {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal, "boom", nil, "attachment-insert-failed")
		},
	}
	svc := message.NewService(&mockMessageRepository{}, existingThread("user-1"), attRepo, nil, zerolog.Nop())

	created, err := svc.Create(authedContext("user-1"), message.CreateParams{
		ThreadID: "thread-1",
		Uploads:  []attachment.Upload{{FileName: "a.txt", URL: "https://files/a.txt"}},
	})
	if err != nil {
		t.Fatalf("expected message to survive attachment failure, got %v", err)
	}
	if created == nil {
		t.Fatal("expected a created message")
	}
}

func TestUpdateContent_Outcomes(t *testing.T) {
	t.Run("denied for foreign user message", func(t *testing.T) {
		repo := &mockMessageRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*message.Message, error) {
				return &message.Message{ID: id, UserID: "other", Role: message.RoleUser}, nil
			},
		}
		svc := message.NewService(repo, &mockThreadRepository{}, &mockAttachmentRepository{}, nil, zerolog.Nop())

		outcome, err := svc.UpdateContent(authedContext("user-1"), "m1", "new")
		if err != nil {
			t.Fatalf("UpdateContent returned error: %v", err)
		}
		if !outcome.PermissionDenied || outcome.Updated {
			t.Fatalf("expected permission denied outcome, got %+v", outcome)
		}
	})

	t.Run("thread owner may edit assistant message", func(t *testing.T) {
		content := "old"
		repo := &mockMessageRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*message.Message, error) {
				return &message.Message{ID: id, ThreadID: "thread-1", UserID: "service", Role: message.RoleAssistant, Content: content}, nil
			},
			UpdateContentFunc: func(ctx context.Context, id, newContent string) error {
				content = newContent
				return nil
			},
		}
		threadRepo := &mockThreadRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*thread.Thread, error) {
				return &thread.Thread{ID: id, UserID: "user-1"}, nil
			},
		}
		svc := message.NewService(repo, threadRepo, &mockAttachmentRepository{}, nil, zerolog.Nop())

		outcome, err := svc.UpdateContent(authedContext("user-1"), "m1", "new")
		if err != nil {
			t.Fatalf("UpdateContent returned error: %v", err)
		}
		if !outcome.Updated {
			t.Fatalf("expected updated outcome, got %+v", outcome)
		}
	})

	t.Run("readback mismatch is reported", func(t *testing.T) {
		repo := &mockMessageRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*message.Message, error) {
				return &message.Message{ID: id, UserID: "user-1", Content: "stale"}, nil
			},
		}
		svc := message.NewService(repo, &mockThreadRepository{}, &mockAttachmentRepository{}, nil, zerolog.Nop())

		outcome, err := svc.UpdateContent(authedContext("user-1"), "m1", "new")
		if err != nil {
			t.Fatalf("UpdateContent returned error: %v", err)
		}
		if !outcome.VerificationMismatch || outcome.Updated {
			t.Fatalf("expected verification mismatch outcome, got %+v", outcome)
		}
	})
}

func TestDeleteTrailing(t *testing.T) {
	t.Run("rejects foreign thread", func(t *testing.T) {
		threadRepo := &mockThreadRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*thread.Thread, error) {
				return &thread.Thread{ID: id, UserID: "other"}, nil
			},
		}
		svc := message.NewService(&mockMessageRepository{}, threadRepo, &mockAttachmentRepository{}, nil, zerolog.Nop())

		_, err := svc.DeleteTrailing(authedContext("user-1"), "thread-1", time.Now(), false)
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
			t.Fatalf("expected FORBIDDEN, got %v", err)
		}
	})

	t.Run("passes the inclusive flag through", func(t *testing.T) {
		cutoff := time.Now().UTC()
		repo := &mockMessageRepository{
			DeleteTrailingFunc: func(ctx context.Context, threadID string, gotCutoff time.Time, inclusive bool) (int64, error) {
				if !inclusive {
					t.Error("expected inclusive flag to be true")
				}
				if !gotCutoff.Equal(cutoff) {
					t.Errorf("expected cutoff %v, got %v", cutoff, gotCutoff)
				}
				return 4, nil
			},
		}
		threadRepo := &mockThreadRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*thread.Thread, error) {
				return &thread.Thread{ID: id, UserID: "user-1"}, nil
			},
		}
		svc := message.NewService(repo, threadRepo, &mockAttachmentRepository{}, nil, zerolog.Nop())

		deleted, err := svc.DeleteTrailing(authedContext("user-1"), "thread-1", cutoff, true)
		if err != nil {
			t.Fatalf("DeleteTrailing returned error: %v", err)
		}
		if deleted != 4 {
			t.Fatalf("expected 4 deleted, got %d", deleted)
		}
	})
}
