package entities

import (
	"time"

	"parley-server/services/chat-api/internal/domain/attachment"
)

// FileAttachment stores one uploaded file referencing a message.
type FileAttachment struct {
	ID           string    `gorm:"type:text;primaryKey"`
	MessageID    string    `gorm:"type:text;index;not null"`
	ThreadID     string    `gorm:"type:text;index;not null"`
	UserID       string    `gorm:"type:text;index;not null"`
	FileName     string    `gorm:"type:text;not null;default:''"`
	FileType     string    `gorm:"type:text;not null;default:''"`
	FileSize     int64     `gorm:"not null;default:0"`
	StorageURL   string    `gorm:"type:text;not null"`
	ThumbnailURL *string   `gorm:"type:text"`
	TextContent  *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for FileAttachment.
func (FileAttachment) TableName() string {
	return "file_attachments"
}

// EtoD converts database entity to domain model
func (f *FileAttachment) EtoD() *attachment.FileAttachment {
	return &attachment.FileAttachment{
		ID:           f.ID,
		MessageID:    f.MessageID,
		ThreadID:     f.ThreadID,
		UserID:       f.UserID,
		FileName:     f.FileName,
		FileType:     f.FileType,
		FileSize:     f.FileSize,
		StorageURL:   f.StorageURL,
		ThumbnailURL: f.ThumbnailURL,
		TextContent:  f.TextContent,
		CreatedAt:    f.CreatedAt,
	}
}

// NewSchemaFileAttachment creates a database entity from domain model
func NewSchemaFileAttachment(f *attachment.FileAttachment) *FileAttachment {
	return &FileAttachment{
		ID:           f.ID,
		MessageID:    f.MessageID,
		ThreadID:     f.ThreadID,
		UserID:       f.UserID,
		FileName:     f.FileName,
		FileType:     f.FileType,
		FileSize:     f.FileSize,
		StorageURL:   f.StorageURL,
		ThumbnailURL: f.ThumbnailURL,
		TextContent:  f.TextContent,
		CreatedAt:    f.CreatedAt,
	}
}
