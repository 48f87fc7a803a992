package entities

import (
	"time"

	"parley-server/services/chat-api/internal/domain/persona"
)

// ThreadPersona stores the system prompt configured for a thread.
type ThreadPersona struct {
	ID           string    `gorm:"type:text;primaryKey"`
	ThreadID     string    `gorm:"type:text;index:idx_thread_personas_thread_user;not null"`
	UserID       string    `gorm:"type:text;index:idx_thread_personas_thread_user;not null"`
	Name         string    `gorm:"type:text;not null;default:''"`
	SystemPrompt string    `gorm:"type:text;not null;default:''"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for ThreadPersona.
func (ThreadPersona) TableName() string {
	return "thread_personas"
}

// EtoD converts database entity to domain model
func (t *ThreadPersona) EtoD() *persona.ThreadPersona {
	return &persona.ThreadPersona{
		ID:           t.ID,
		ThreadID:     t.ThreadID,
		UserID:       t.UserID,
		Name:         t.Name,
		SystemPrompt: t.SystemPrompt,
		CreatedAt:    t.CreatedAt,
	}
}

// NewSchemaThreadPersona creates a database entity from domain model
func NewSchemaThreadPersona(t *persona.ThreadPersona) *ThreadPersona {
	return &ThreadPersona{
		ID:           t.ID,
		ThreadID:     t.ThreadID,
		UserID:       t.UserID,
		Name:         t.Name,
		SystemPrompt: t.SystemPrompt,
		CreatedAt:    t.CreatedAt,
	}
}
