package entities

import (
	"time"

	"parley-server/services/chat-api/internal/domain/share"
)

// SharedThread stores a public share of a thread.
type SharedThread struct {
	ID           string     `gorm:"type:text;primaryKey"`
	ThreadID     string     `gorm:"type:text;index;not null"`
	UserID       string     `gorm:"type:text;index;not null"`
	Token        string     `gorm:"type:text;uniqueIndex;not null"`
	Title        string     `gorm:"type:text;not null;default:''"`
	Description  string     `gorm:"type:text;not null;default:''"`
	IsPublic     bool       `gorm:"not null;default:true"`
	PasswordHash *string    `gorm:"type:text"`
	ExpiresAt    *time.Time `gorm:"type:timestamptz"`
	ViewCount    int64      `gorm:"not null;default:0"`
	RevokedAt    *time.Time `gorm:"type:timestamptz"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for SharedThread.
func (SharedThread) TableName() string {
	return "shared_threads"
}

// EtoD converts database entity to domain model
func (s *SharedThread) EtoD() *share.SharedThread {
	return &share.SharedThread{
		ID:           s.ID,
		ThreadID:     s.ThreadID,
		UserID:       s.UserID,
		Token:        s.Token,
		Title:        s.Title,
		Description:  s.Description,
		IsPublic:     s.IsPublic,
		PasswordHash: s.PasswordHash,
		ExpiresAt:    s.ExpiresAt,
		ViewCount:    s.ViewCount,
		RevokedAt:    s.RevokedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// NewSchemaSharedThread creates a database entity from domain model
func NewSchemaSharedThread(s *share.SharedThread) *SharedThread {
	return &SharedThread{
		ID:           s.ID,
		ThreadID:     s.ThreadID,
		UserID:       s.UserID,
		Token:        s.Token,
		Title:        s.Title,
		Description:  s.Description,
		IsPublic:     s.IsPublic,
		PasswordHash: s.PasswordHash,
		ExpiresAt:    s.ExpiresAt,
		ViewCount:    s.ViewCount,
		RevokedAt:    s.RevokedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
