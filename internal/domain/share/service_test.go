package share_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/domain/share"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

type mockShareRepository struct {
	CreateFunc             func(ctx context.Context, shared *share.SharedThread) error
	FindByIDFunc           func(ctx context.Context, id string) (*share.SharedThread, error)
	FindByTokenFunc        func(ctx context.Context, token string) (*share.SharedThread, error)
	ListByUserFunc         func(ctx context.Context, userID string) ([]*share.SharedThread, error)
	UpdateFunc             func(ctx context.Context, shared *share.SharedThread) error
	DeleteFunc             func(ctx context.Context, id string) error
	IncrementViewCountFunc func(ctx context.Context, id string) error
	RevokeExpiredFunc      func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockShareRepository) Create(ctx context.Context, shared *share.SharedThread) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, shared)
	}
	return nil
}

func (m *mockShareRepository) FindByID(ctx context.Context, id string) (*share.SharedThread, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockShareRepository) FindByToken(ctx context.Context, token string) (*share.SharedThread, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockShareRepository) ListByUser(ctx context.Context, userID string) ([]*share.SharedThread, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockShareRepository) Update(ctx context.Context, shared *share.SharedThread) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, shared)
	}
	return nil
}

func (m *mockShareRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockShareRepository) IncrementViewCount(ctx context.Context, id string) error {
	if m.IncrementViewCountFunc != nil {
		return m.IncrementViewCountFunc(ctx, id)
	}
	return nil
}

func (m *mockShareRepository) RevokeExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.RevokeExpiredFunc != nil {
		return m.RevokeExpiredFunc(ctx, now)
	}
	return 0, nil
}

func authedContext(userID string) context.Context {
	return domain.WithPrincipal(context.Background(), domain.Principal{ID: userID})
}

func TestCreate_HashesPassword(t *testing.T) {
	var stored *share.SharedThread
	repo := &mockShareRepository{
		CreateFunc: func(ctx context.Context, shared *share.SharedThread) error {
			stored = shared
			return nil
		},
	}
	svc := share.NewService(repo, nil, zerolog.Nop())

	created, err := svc.Create(authedContext("user-1"), share.CreateParams{
		ThreadID: "thread-1",
		Title:    "  My Share  ",
		IsPublic: true,
		Password: "opensesame",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected repository create to be called")
	}
	if created.Title != "My Share" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}
	if len(created.Token) != 22 {
		t.Fatalf("expected 22 character token, got %q", created.Token)
	}
	if created.PasswordHash == nil {
		t.Fatal("expected password hash to be set")
	}
	if *created.PasswordHash == "opensesame" {
		t.Fatal("password must not be stored in the clear")
	}
	if !share.VerifyPassword("opensesame", *created.PasswordHash) {
		t.Fatal("stored hash should verify against the original password")
	}
}

func TestCreate_RequiresPrincipal(t *testing.T) {
	svc := share.NewService(&mockShareRepository{}, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), share.CreateParams{ThreadID: "thread-1"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestResolveByToken_Gating(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)
	hash := share.HashPassword("opensesame")

	tests := []struct {
		name     string
		shared   *share.SharedThread
		password string
		wantType platformerrors.ErrorType
	}{
		{
			name:     "expired share hides existence",
			shared:   &share.SharedThread{ID: "s1", IsPublic: true, ExpiresAt: &past},
			wantType: platformerrors.ErrorTypeNotFound,
		},
		{
			name:     "revoked share hides existence",
			shared:   &share.SharedThread{ID: "s1", IsPublic: true, RevokedAt: &past},
			wantType: platformerrors.ErrorTypeNotFound,
		},
		{
			name:     "private share is forbidden",
			shared:   &share.SharedThread{ID: "s1", IsPublic: false},
			wantType: platformerrors.ErrorTypeForbidden,
		},
		{
			name:     "missing password",
			shared:   &share.SharedThread{ID: "s1", IsPublic: true, PasswordHash: &hash},
			wantType: platformerrors.ErrorTypeUnauthorized,
		},
		{
			name:     "wrong password",
			shared:   &share.SharedThread{ID: "s1", IsPublic: true, PasswordHash: &hash},
			password: "nope",
			wantType: platformerrors.ErrorTypeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockShareRepository{
				FindByTokenFunc: func(ctx context.Context, token string) (*share.SharedThread, error) {
					return tt.shared, nil
				},
			}
			svc := share.NewService(repo, nil, zerolog.Nop())

			_, err := svc.ResolveByToken(context.Background(), "tok", tt.password)
			if !platformerrors.IsErrorType(err, tt.wantType) {
				t.Fatalf("expected %s, got %v", tt.wantType, err)
			}
		})
	}

	t.Run("valid password counts the view", func(t *testing.T) {
		counted := false
		repo := &mockShareRepository{
			FindByTokenFunc: func(ctx context.Context, token string) (*share.SharedThread, error) {
				return &share.SharedThread{ID: "s1", IsPublic: true, PasswordHash: &hash, ExpiresAt: &future}, nil
			},
			IncrementViewCountFunc: func(ctx context.Context, id string) error {
				counted = true
				return nil
			},
		}
		svc := share.NewService(repo, nil, zerolog.Nop())

		resolved, err := svc.ResolveByToken(context.Background(), "tok", "opensesame")
		if err != nil {
			t.Fatalf("ResolveByToken returned error: %v", err)
		}
		if resolved.ID != "s1" {
			t.Fatalf("unexpected share resolved: %+v", resolved)
		}
		if !counted {
			t.Fatal("expected view count increment")
		}
	})
}

func TestUpdate_RejectsForeignShare(t *testing.T) {
	repo := &mockShareRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*share.SharedThread, error) {
			return &share.SharedThread{ID: id, UserID: "other-user"}, nil
		},
	}
	svc := share.NewService(repo, nil, zerolog.Nop())

	_, err := svc.Update(authedContext("user-1"), "s1", share.UpdateParams{})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestUpdate_ClearFlags(t *testing.T) {
	hash := share.HashPassword("opensesame")
	expiry := time.Now().UTC().Add(time.Hour)
	repo := &mockShareRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*share.SharedThread, error) {
			return &share.SharedThread{ID: id, UserID: "user-1", PasswordHash: &hash, ExpiresAt: &expiry}, nil
		},
	}
	svc := share.NewService(repo, nil, zerolog.Nop())

	updated, err := svc.Update(authedContext("user-1"), "s1", share.UpdateParams{
		ClearPassword: true,
		ClearExpiry:   true,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.PasswordHash != nil {
		t.Fatal("expected password hash to be cleared")
	}
	if updated.ExpiresAt != nil {
		t.Fatal("expected expiry to be cleared")
	}
}

func TestRevokeExpired(t *testing.T) {
	repo := &mockShareRepository{
		RevokeExpiredFunc: func(ctx context.Context, now time.Time) (int64, error) {
			return 3, nil
		},
	}
	svc := share.NewService(repo, nil, zerolog.Nop())

	revoked, err := svc.RevokeExpired(context.Background())
	if err != nil {
		t.Fatalf("RevokeExpired returned error: %v", err)
	}
	if revoked != 3 {
		t.Fatalf("expected 3 revoked shares, got %d", revoked)
	}
}
