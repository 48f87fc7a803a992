package shareclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"parley-server/services/chat-api/internal/infrastructure/shareclient"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

func TestFetch_PublicShare(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/shared/tok-1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"token":      "tok-1",
			"title":      "Shared chat",
			"view_count": 5,
		})
	}))
	defer server.Close()

	client := shareclient.NewClient(server.URL)
	view, err := client.Fetch(context.Background(), "tok-1", "")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if view.Token != "tok-1" || view.Title != "Shared chat" || view.ViewCount != 5 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestFetch_PasswordGoesInPostBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST for password submission, got %s", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("invalid body: %v", err)
		}
		if body["password"] != "opensesame" {
			t.Errorf("expected password in body, got %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"token": "tok-1"})
	}))
	defer server.Close()

	client := shareclient.NewClient(server.URL)
	if _, err := client.Fetch(context.Background(), "tok-1", "opensesame"); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
}

func TestFetch_EndpointErrorSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid password"})
	}))
	defer server.Close()

	client := shareclient.NewClient(server.URL)
	_, err := client.Fetch(context.Background(), "tok-1", "wrong")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		t.Fatalf("expected a platform error, got %T", err)
	}
	if platformErr.Message != "invalid password" {
		t.Fatalf("expected endpoint message surfaced, got %q", platformErr.Message)
	}
}

func TestMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/shared/tok-1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "m1", "role": "user", "content": "hi"},
			{"id": "m2", "role": "assistant", "content": "hello"},
		})
	}))
	defer server.Close()

	client := shareclient.NewClient(server.URL)
	messages, err := client.Messages(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Messages returned error: %v", err)
	}
	if len(messages) != 2 || messages[1].Role != "assistant" {
		t.Fatalf("unexpected messages: %+v", messages)
	}
}

func TestFetch_TransportError(t *testing.T) {
	client := shareclient.NewClient("http://127.0.0.1:1")
	_, err := client.Fetch(context.Background(), "tok-1", "")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
		t.Fatalf("expected EXTERNAL, got %v", err)
	}
}
