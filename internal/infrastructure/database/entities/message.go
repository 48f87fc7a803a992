package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"parley-server/services/chat-api/internal/domain/message"
	"parley-server/services/chat-api/internal/infrastructure/logger"
)

// Message stores each entry of a thread.
type Message struct {
	ID        string         `gorm:"type:text;primaryKey"`
	ThreadID  string         `gorm:"type:text;index:idx_messages_thread_created;not null"`
	UserID    string         `gorm:"type:text;not null"`
	Role      string         `gorm:"size:32;not null"`
	Content   string         `gorm:"type:text;not null;default:''"`
	Parts     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_messages_thread_created"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Message.
func (Message) TableName() string {
	return "messages"
}

// EtoD converts database entity to domain model
func (m *Message) EtoD() *message.Message {
	var parts []message.Part
	if len(m.Parts) > 0 {
		if err := json.Unmarshal(m.Parts, &parts); err != nil {
			lg := logger.GetLogger()
			lg.Warn().
				Err(err).
				Str("message_id", m.ID).
				Msg("failed to decode message parts")
			parts = nil
		}
	}
	return &message.Message{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		UserID:    m.UserID,
		Role:      message.Role(m.Role),
		Content:   m.Content,
		Parts:     parts,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// NewSchemaMessage creates a database entity from domain model
func NewSchemaMessage(m *message.Message) *Message {
	var parts datatypes.JSON
	if len(m.Parts) > 0 {
		raw, err := json.Marshal(m.Parts)
		if err != nil {
			logger.GetLogger().Warn().
				Err(err).
				Str("message_id", m.ID).
				Msg("failed to encode message parts")
		} else {
			parts = raw
		}
	}
	return &Message{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		UserID:    m.UserID,
		Role:      string(m.Role),
		Content:   m.Content,
		Parts:     parts,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
