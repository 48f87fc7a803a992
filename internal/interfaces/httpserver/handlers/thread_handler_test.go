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
	"parley-server/services/chat-api/internal/domain/query"
	"parley-server/services/chat-api/internal/domain/thread"
	"parley-server/services/chat-api/internal/interfaces/httpserver/handlers"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// mockThreadRepository implements thread.Repository with overridable
// functions. Unset functions return zero values.
type mockThreadRepository struct {
	CreateFunc          func(ctx context.Context, t *thread.Thread) error
	FindByIDFunc        func(ctx context.Context, id string) (*thread.Thread, error)
	FindByFilterFunc    func(ctx context.Context, filter thread.Filter, pagination *query.Pagination) ([]*thread.Thread, error)
	UpdateFunc          func(ctx context.Context, t *thread.Thread) error
	DeleteFunc          func(ctx context.Context, id string) error
	DeleteAllByUserFunc func(ctx context.Context, userID string) error
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
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "thread not found", nil, "thread-find-not-found")
}

func (m *mockThreadRepository) FindByFilter(ctx context.Context, filter thread.Filter, pagination *query.Pagination) ([]*thread.Thread, error) {
	if m.FindByFilterFunc != nil {
		return m.FindByFilterFunc(ctx, filter, pagination)
	}
	return nil, nil
}

func (m *mockThreadRepository) Update(ctx context.Context, t *thread.Thread) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockThreadRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockThreadRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	if m.DeleteAllByUserFunc != nil {
		return m.DeleteAllByUserFunc(ctx, userID)
	}
	return nil
}

func (m *mockThreadRepository) TouchLastMessageAt(ctx context.Context, id string, at time.Time) error {
	return nil
}

// threadRouter mounts the thread handler behind a middleware that
// injects a fixed principal, standing in for the auth layer.
func threadRouter(repo thread.Repository, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewThreadHandler(thread.NewService(repo, zerolog.Nop()), zerolog.Nop())

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		ctx := domain.WithPrincipal(c.Request.Context(), domain.Principal{ID: userID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	group := engine.Group("/v1/threads")
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.DELETE("", handler.DeleteAll)
	group.GET("/:thread_id", handler.Get)
	group.PATCH("/:thread_id/title", handler.Rename)
	group.PATCH("/:thread_id/archive", handler.SetArchived)
	group.DELETE("/:thread_id", handler.Delete)
	return engine
}

func TestThreadHandler_List(t *testing.T) {
	repo := &mockThreadRepository{
		FindByFilterFunc: func(ctx context.Context, filter thread.Filter, pagination *query.Pagination) ([]*thread.Thread, error) {
			if filter.UserID == nil || *filter.UserID != "user-1" {
				t.Errorf("expected filter scoped to user-1, got %+v", filter)
			}
			if filter.IncludeArchived {
				t.Error("archived threads must be excluded by default")
			}
			return []*thread.Thread{{ID: "t1", UserID: "user-1", Title: "First"}}, nil
		},
	}
	router := threadRouter(repo, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/threads", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var payload []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(payload) != 1 || payload[0]["id"] != "t1" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestThreadHandler_ListPagination(t *testing.T) {
	repo := &mockThreadRepository{
		FindByFilterFunc: func(ctx context.Context, filter thread.Filter, pagination *query.Pagination) ([]*thread.Thread, error) {
			if pagination == nil {
				t.Error("expected pagination from query params")
			}
			return nil, nil
		},
	}
	router := threadRouter(repo, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/threads?page=2&page_size=10", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestThreadHandler_Create(t *testing.T) {
	var created *thread.Thread
	repo := &mockThreadRepository{
		CreateFunc: func(ctx context.Context, th *thread.Thread) error {
			created = th
			return nil
		},
	}
	router := threadRouter(repo, "user-1")

	body, _ := json.Marshal(map[string]any{"title": "  New Chat  "})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/threads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if created == nil || created.UserID != "user-1" {
		t.Fatalf("expected thread persisted for user-1, got %+v", created)
	}
	if created.Title != "New Chat" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}
}

func TestThreadHandler_GetMissingThread(t *testing.T) {
	router := threadRouter(&mockThreadRepository{}, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/threads/does-not-exist", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestThreadHandler_RenameForeignThread(t *testing.T) {
	repo := &mockThreadRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*thread.Thread, error) {
			return &thread.Thread{ID: id, UserID: "someone-else"}, nil
		},
	}
	router := threadRouter(repo, "user-1")

	body, _ := json.Marshal(map[string]any{"title": "Hijacked"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/v1/threads/t1/title", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestThreadHandler_RenameRequiresTitle(t *testing.T) {
	router := threadRouter(&mockThreadRepository{}, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/v1/threads/t1/title", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestThreadHandler_DeleteAll(t *testing.T) {
	deletedFor := ""
	repo := &mockThreadRepository{
		DeleteAllByUserFunc: func(ctx context.Context, userID string) error {
			deletedFor = userID
			return nil
		},
	}
	router := threadRouter(repo, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/threads", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if deletedFor != "user-1" {
		t.Fatalf("expected delete scoped to user-1, got %q", deletedFor)
	}
}

func TestThreadHandler_Unauthenticated(t *testing.T) {
	router := threadRouter(&mockThreadRepository{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/threads", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}
