package persona_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/domain/persona"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

type mockPersonaRepository struct {
	ReplaceFunc             func(ctx context.Context, p *persona.ThreadPersona) error
	FindByThreadAndUserFunc func(ctx context.Context, threadID, userID string) (*persona.ThreadPersona, error)
	DeleteFunc              func(ctx context.Context, threadID, userID string) error
}

func (m *mockPersonaRepository) Replace(ctx context.Context, p *persona.ThreadPersona) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, p)
	}
	return nil
}

func (m *mockPersonaRepository) FindByThreadAndUser(ctx context.Context, threadID, userID string) (*persona.ThreadPersona, error) {
	if m.FindByThreadAndUserFunc != nil {
		return m.FindByThreadAndUserFunc(ctx, threadID, userID)
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "no persona", nil, "persona-find-not-found")
}

func (m *mockPersonaRepository) DeleteByThreadAndUser(ctx context.Context, threadID, userID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, threadID, userID)
	}
	return nil
}

func authedContext(userID string) context.Context {
	return domain.WithPrincipal(context.Background(), domain.Principal{ID: userID})
}

func TestSet_ReplacesExistingPersona(t *testing.T) {
	var replaced *persona.ThreadPersona
	repo := &mockPersonaRepository{
		ReplaceFunc: func(ctx context.Context, p *persona.ThreadPersona) error {
			replaced = p
			return nil
		},
	}
	svc := persona.NewService(repo, nil, zerolog.Nop())

	installed, err := svc.Set(authedContext("user-1"), "thread-1", "  Reviewer  ", "You review code.")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if replaced == nil {
		t.Fatal("expected repository replace to run")
	}
	if installed.Name != "Reviewer" {
		t.Fatalf("expected trimmed name, got %q", installed.Name)
	}
	if installed.ThreadID != "thread-1" || installed.UserID != "user-1" {
		t.Fatalf("unexpected scoping: %+v", installed)
	}
}

func TestGet_MissingPersonaYieldsNil(t *testing.T) {
	svc := persona.NewService(&mockPersonaRepository{}, nil, zerolog.Nop())

	found, err := svc.Get(authedContext("user-1"), "thread-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil for missing persona, got %+v", found)
	}
}

func TestPresets(t *testing.T) {
	presets := []persona.Preset{{Name: "Helper", SystemPrompt: "Be helpful."}}
	svc := persona.NewService(&mockPersonaRepository{}, presets, zerolog.Nop())

	got := svc.Presets()
	if len(got) != 1 || got[0].Name != "Helper" {
		t.Fatalf("unexpected presets: %+v", got)
	}
}
