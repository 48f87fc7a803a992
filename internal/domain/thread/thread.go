package thread

import (
	"context"
	"time"

	"parley-server/services/chat-api/internal/domain/query"
)

// Thread is a conversation owned by a single user. Threads are
// archived rather than deleted in normal flows; deletion cascades to
// messages and attachments at the store level.
type Thread struct {
	ID            string
	UserID        string
	Title         string
	ProjectID     *string
	Archived      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastMessageAt time.Time
}

// Filter narrows thread queries.
type Filter struct {
	ID              *string
	UserID          *string
	ProjectID       *string
	IncludeArchived bool
}

// Repository persists threads.
type Repository interface {
	Create(ctx context.Context, thread *Thread) error
	FindByID(ctx context.Context, id string) (*Thread, error)
	FindByFilter(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Thread, error)
	Update(ctx context.Context, thread *Thread) error
	Delete(ctx context.Context, id string) error
	DeleteAllByUser(ctx context.Context, userID string) error
	TouchLastMessageAt(ctx context.Context, id string, at time.Time) error
}
