package entities

import (
	"time"

	"parley-server/services/chat-api/internal/domain/pin"
)

// PinnedMessage marks a message pinned by a user.
type PinnedMessage struct {
	ID        string    `gorm:"type:text;primaryKey"`
	UserID    string    `gorm:"type:text;uniqueIndex:uq_pinned_messages_user_message;index;not null"`
	ThreadID  string    `gorm:"type:text;index;not null"`
	MessageID string    `gorm:"type:text;uniqueIndex:uq_pinned_messages_user_message;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for PinnedMessage.
func (PinnedMessage) TableName() string {
	return "pinned_messages"
}

// EtoD converts database entity to domain model
func (p *PinnedMessage) EtoD() *pin.PinnedMessage {
	return &pin.PinnedMessage{
		ID:        p.ID,
		UserID:    p.UserID,
		ThreadID:  p.ThreadID,
		MessageID: p.MessageID,
		CreatedAt: p.CreatedAt,
	}
}

// NewSchemaPinnedMessage creates a database entity from domain model
func NewSchemaPinnedMessage(p *pin.PinnedMessage) *PinnedMessage {
	return &PinnedMessage{
		ID:        p.ID,
		UserID:    p.UserID,
		ThreadID:  p.ThreadID,
		MessageID: p.MessageID,
		CreatedAt: p.CreatedAt,
	}
}
