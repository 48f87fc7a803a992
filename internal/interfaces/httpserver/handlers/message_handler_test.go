package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/domain/attachment"
	"parley-server/services/chat-api/internal/domain/message"
	"parley-server/services/chat-api/internal/domain/thread"
	"parley-server/services/chat-api/internal/interfaces/httpserver/handlers"
)

type mockMessageRepository struct {
	UpsertFunc func(ctx context.Context, msg *message.Message) error
}

func (m *mockMessageRepository) Upsert(ctx context.Context, msg *message.Message) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) FindByID(ctx context.Context, id string) (*message.Message, error) {
	return nil, nil
}

func (m *mockMessageRepository) ListByThread(ctx context.Context, threadID string) ([]*message.Message, error) {
	return nil, nil
}

func (m *mockMessageRepository) UpdateContent(ctx context.Context, id, content string) error {
	return nil
}

func (m *mockMessageRepository) DeleteTrailing(ctx context.Context, threadID string, cutoff time.Time, inclusive bool) (int64, error) {
	return 0, nil
}

type mockAttachmentRepository struct{}

func (m *mockAttachmentRepository) Insert(ctx context.Context, att *attachment.FileAttachment) error {
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

func (m *mockAttachmentRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func messageRouter(msgRepo *mockMessageRepository, threadRepo thread.Repository, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := message.NewService(
		msgRepo,
		threadRepo,
		&mockAttachmentRepository{},
		attachment.NewHydrator(nil, zerolog.Nop()),
		zerolog.Nop(),
	)
	handler := handlers.NewMessageHandler(service, zerolog.Nop())

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		ctx := domain.WithPrincipal(c.Request.Context(), domain.Principal{ID: userID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	engine.POST("/v1/threads/:thread_id/messages", handler.Create)
	return engine
}

func ownedThread(userID string) *mockThreadRepository {
	return &mockThreadRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*thread.Thread, error) {
			return &thread.Thread{ID: id, UserID: userID, Title: "Existing"}, nil
		},
	}
}

func TestMessageHandler_CreateCarriesParts(t *testing.T) {
	var stored *message.Message
	msgRepo := &mockMessageRepository{
		UpsertFunc: func(ctx context.Context, msg *message.Message) error {
			stored = msg
			return nil
		},
	}
	router := messageRouter(msgRepo, ownedThread("user-1"), "user-1")

	body, _ := json.Marshal(map[string]any{
		"role":    "assistant",
		"content": "final answer",
		"parts": []map[string]any{
			{"type": "reasoning", "reasoning": "thinking it through"},
			{"type": "text", "text": "final answer"},
		},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/threads/t1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if stored == nil {
		t.Fatal("expected message stored")
	}
	if len(stored.Parts) != 2 {
		t.Fatalf("expected 2 parts stored, got %d", len(stored.Parts))
	}
	if stored.Parts[0].Type != message.PartTypeReasoning || stored.Parts[0].Reasoning != "thinking it through" {
		t.Fatalf("unexpected first part: %+v", stored.Parts[0])
	}
	if stored.Parts[1].Type != message.PartTypeText || stored.Parts[1].Text != "final answer" {
		t.Fatalf("unexpected second part: %+v", stored.Parts[1])
	}

	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	parts, ok := payload["parts"].([]any)
	if !ok || len(parts) != 2 {
		t.Fatalf("expected parts echoed in response, got %v", payload["parts"])
	}
}

func TestMessageHandler_CreateRejectsAttachmentPart(t *testing.T) {
	router := messageRouter(&mockMessageRepository{}, ownedThread("user-1"), "user-1")

	body, _ := json.Marshal(map[string]any{
		"role": "user",
		"parts": []map[string]any{
			{"type": "file_attachments"},
		},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/threads/t1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for client-supplied attachment part, got %d", w.Code)
	}
}
