package attachment_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain/attachment"
)

type mockFetcher struct {
	mu        sync.Mutex
	fetched   []string
	FetchFunc func(ctx context.Context, url string) (string, error)
}

func (m *mockFetcher) FetchText(ctx context.Context, url string) (string, error) {
	m.mu.Lock()
	m.fetched = append(m.fetched, url)
	m.mu.Unlock()
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url)
	}
	return "", nil
}

func (m *mockFetcher) urls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.fetched...)
}

func TestHydrateRefs_FillsMissingContent(t *testing.T) {
	fetcher := &mockFetcher{
		FetchFunc: func(ctx context.Context, url string) (string, error) {
			return "body of " + url, nil
		},
	}
	h := attachment.NewHydrator(fetcher, zerolog.Nop())

	refs := []attachment.Ref{
		{ID: "a1", StorageURL: "https://files/a1"},
		{ID: "a2", StorageURL: "https://files/a2"},
	}
	h.HydrateRefs(context.Background(), refs)

	if refs[0].Content != "body of https://files/a1" {
		t.Fatalf("expected first ref hydrated, got %q", refs[0].Content)
	}
	if refs[1].Content != "body of https://files/a2" {
		t.Fatalf("expected second ref hydrated, got %q", refs[1].Content)
	}
}

func TestHydrateRefs_SkipsRefsWithContent(t *testing.T) {
	fetcher := &mockFetcher{}
	h := attachment.NewHydrator(fetcher, zerolog.Nop())

	refs := []attachment.Ref{
		{ID: "a1", StorageURL: "https://files/a1", Content: "already here"},
		{ID: "a2", StorageURL: "https://files/a2", ExtractedText: "pre-extracted"},
		{ID: "a3"},
	}
	h.HydrateRefs(context.Background(), refs)

	if got := fetcher.urls(); len(got) != 0 {
		t.Fatalf("expected no fetches, got %v", got)
	}
	if refs[0].Content != "already here" {
		t.Fatal("existing content must not be overwritten")
	}
}

func TestHydrateRefs_SwallowsFetchFailures(t *testing.T) {
	fetcher := &mockFetcher{
		FetchFunc: func(ctx context.Context, url string) (string, error) {
			if url == "https://files/bad" {
				return "", errors.New("storage unavailable")
			}
			return "ok", nil
		},
	}
	h := attachment.NewHydrator(fetcher, zerolog.Nop())

	refs := []attachment.Ref{
		{ID: "bad", StorageURL: "https://files/bad"},
		{ID: "good", StorageURL: "https://files/good"},
	}
	h.HydrateRefs(context.Background(), refs)

	if refs[0].Content != "" {
		t.Fatalf("failed fetch must leave the ref empty, got %q", refs[0].Content)
	}
	if refs[1].Content != "ok" {
		t.Fatalf("expected the healthy ref hydrated, got %q", refs[1].Content)
	}
}

func TestHydrateRefs_NilFetcherIsNoop(t *testing.T) {
	h := attachment.NewHydrator(nil, zerolog.Nop())

	refs := []attachment.Ref{{ID: "a1", StorageURL: "https://files/a1"}}
	h.HydrateRefs(context.Background(), refs)

	if refs[0].Content != "" {
		t.Fatalf("expected no hydration, got %q", refs[0].Content)
	}
}
