package share

import (
	"context"
	"time"
)

// SharedThread grants read access to a thread through an unguessable
// token, optionally gated by a password digest and an expiry.
type SharedThread struct {
	ID           string
	ThreadID     string
	UserID       string
	Token        string
	Title        string
	Description  string
	IsPublic     bool
	PasswordHash *string
	ExpiresAt    *time.Time
	ViewCount    int64
	RevokedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Expired reports whether the share is past its expiry.
func (s *SharedThread) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// Revoked reports whether the share was revoked.
func (s *SharedThread) Revoked() bool {
	return s.RevokedAt != nil
}

// Repository persists shared threads.
type Repository interface {
	Create(ctx context.Context, shared *SharedThread) error
	FindByID(ctx context.Context, id string) (*SharedThread, error)
	FindByToken(ctx context.Context, token string) (*SharedThread, error)
	ListByUser(ctx context.Context, userID string) ([]*SharedThread, error)
	Update(ctx context.Context, shared *SharedThread) error
	Delete(ctx context.Context, id string) error
	IncrementViewCount(ctx context.Context, id string) error
	RevokeExpired(ctx context.Context, now time.Time) (int64, error)
}
