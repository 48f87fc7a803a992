package preferences_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/domain/preferences"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

type mockPreferencesRepository struct {
	UpsertFunc     func(ctx context.Context, prefs *preferences.UserPreferences) error
	FindByUserFunc func(ctx context.Context, userID string) (*preferences.UserPreferences, error)
}

func (m *mockPreferencesRepository) Upsert(ctx context.Context, prefs *preferences.UserPreferences) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, prefs)
	}
	return nil
}

func (m *mockPreferencesRepository) FindByUser(ctx context.Context, userID string) (*preferences.UserPreferences, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return nil, nil
}

func authedContext(userID string) context.Context {
	return domain.WithPrincipal(context.Background(), domain.Principal{ID: userID})
}

func tableAbsentError(ctx context.Context) error {
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotImplemented,
		"preferences table not provisioned",
		nil,
		"preferences-upsert-not-provisioned",
	)
}

func TestGet_MissingRowYieldsNil(t *testing.T) {
	repo := &mockPreferencesRepository{
		FindByUserFunc: func(ctx context.Context, userID string) (*preferences.UserPreferences, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "no row", nil, "preferences-find-not-found")
		},
	}
	svc := preferences.NewService(repo, zerolog.Nop())

	found, err := svc.Get(authedContext("user-1"))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil for missing row, got %+v", found)
	}
}

func TestGet_MissingTableYieldsNil(t *testing.T) {
	repo := &mockPreferencesRepository{
		FindByUserFunc: func(ctx context.Context, userID string) (*preferences.UserPreferences, error) {
			return nil, tableAbsentError(ctx)
		},
	}
	svc := preferences.NewService(repo, zerolog.Nop())

	found, err := svc.Get(authedContext("user-1"))
	if err != nil {
		t.Fatalf("expected missing table to be tolerated, got %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil, got %+v", found)
	}
}

func TestSave_MissingTableSucceedsSilently(t *testing.T) {
	repo := &mockPreferencesRepository{
		UpsertFunc: func(ctx context.Context, prefs *preferences.UserPreferences) error {
			return tableAbsentError(ctx)
		},
	}
	svc := preferences.NewService(repo, zerolog.Nop())

	saved, err := svc.Save(authedContext("user-1"), map[string]any{"theme": "dark"})
	if err != nil {
		t.Fatalf("expected missing table to be tolerated, got %v", err)
	}
	if saved == nil || saved.Preferences["theme"] != "dark" {
		t.Fatalf("expected the document echoed back, got %+v", saved)
	}
}

func TestSave_OtherErrorsPropagate(t *testing.T) {
	repo := &mockPreferencesRepository{
		UpsertFunc: func(ctx context.Context, prefs *preferences.UserPreferences) error {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal, "write failed", nil, "preferences-upsert-failed")
		},
	}
	svc := preferences.NewService(repo, zerolog.Nop())

	if _, err := svc.Save(authedContext("user-1"), map[string]any{}); err == nil {
		t.Fatal("expected error to propagate")
	}
}
