package entities

import (
	"time"

	"parley-server/services/chat-api/internal/domain/thread"
)

// Thread represents the database schema for threads
type Thread struct {
	ID            string    `gorm:"type:text;primaryKey"`
	UserID        string    `gorm:"type:text;index;not null"`
	Title         string    `gorm:"type:text;not null;default:''"`
	ProjectID     *string   `gorm:"type:text;index"`
	Archived      bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
	LastMessageAt time.Time `gorm:"index;not null"`
}

// TableName specifies the table name for Thread.
func (Thread) TableName() string {
	return "threads"
}

// EtoD converts database entity to domain model
func (t *Thread) EtoD() *thread.Thread {
	return &thread.Thread{
		ID:            t.ID,
		UserID:        t.UserID,
		Title:         t.Title,
		ProjectID:     t.ProjectID,
		Archived:      t.Archived,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		LastMessageAt: t.LastMessageAt,
	}
}

// NewSchemaThread creates a database entity from domain model
func NewSchemaThread(t *thread.Thread) *Thread {
	return &Thread{
		ID:            t.ID,
		UserID:        t.UserID,
		Title:         t.Title,
		ProjectID:     t.ProjectID,
		Archived:      t.Archived,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		LastMessageAt: t.LastMessageAt,
	}
}
