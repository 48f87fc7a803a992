package message

import (
	"context"
	"time"
)

// Role identifies the author kind of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one entry in a thread. The id is always a well-formed
// UUID; callers supplying a malformed id get a fresh one and must not
// assume the stored id equals the requested id.
type Message struct {
	ID        string
	ThreadID  string
	UserID    string
	Role      Role
	Content   string
	Parts     []Part
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository persists messages.
type Repository interface {
	// Upsert inserts the message or replaces the existing row with the
	// same id, making creation idempotent against retries.
	Upsert(ctx context.Context, msg *Message) error
	FindByID(ctx context.Context, id string) (*Message, error)
	ListByThread(ctx context.Context, threadID string) ([]*Message, error)
	UpdateContent(ctx context.Context, id, content string) error
	// DeleteTrailing removes messages in the thread created after the
	// cutoff; inclusive widens the comparison to greater-or-equal.
	DeleteTrailing(ctx context.Context, threadID string, cutoff time.Time, inclusive bool) (int64, error)
}
