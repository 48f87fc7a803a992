package entities

import (
	"time"

	"parley-server/services/chat-api/internal/domain/summary"
)

// MessageSummary stores one condensed view of a thread.
type MessageSummary struct {
	ID        string    `gorm:"type:text;primaryKey"`
	ThreadID  string    `gorm:"type:text;uniqueIndex;not null"`
	UserID    string    `gorm:"type:text;not null"`
	Summary   string    `gorm:"type:text;not null;default:''"`
	Model     string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for MessageSummary.
func (MessageSummary) TableName() string {
	return "message_summaries"
}

// EtoD converts database entity to domain model
func (m *MessageSummary) EtoD() *summary.MessageSummary {
	return &summary.MessageSummary{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		UserID:    m.UserID,
		Summary:   m.Summary,
		Model:     m.Model,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// NewSchemaMessageSummary creates a database entity from domain model
func NewSchemaMessageSummary(m *summary.MessageSummary) *MessageSummary {
	return &MessageSummary{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		UserID:    m.UserID,
		Summary:   m.Summary,
		Model:     m.Model,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
