package entities

import (
	"time"

	"parley-server/services/chat-api/internal/domain/codeconv"
)

// CodeConversion records one language conversion.
type CodeConversion struct {
	ID             string    `gorm:"type:text;primaryKey"`
	UserID         string    `gorm:"type:text;index;not null"`
	ThreadID       *string   `gorm:"type:text"`
	SourceLanguage string    `gorm:"type:text;not null;default:''"`
	TargetLanguage string    `gorm:"type:text;not null;default:''"`
	InputCode      string    `gorm:"type:text;not null;default:''"`
	OutputCode     string    `gorm:"type:text;not null;default:''"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for CodeConversion.
func (CodeConversion) TableName() string {
	return "code_conversions"
}

// EtoD converts database entity to domain model
func (c *CodeConversion) EtoD() *codeconv.CodeConversion {
	return &codeconv.CodeConversion{
		ID:             c.ID,
		UserID:         c.UserID,
		ThreadID:       c.ThreadID,
		SourceLanguage: c.SourceLanguage,
		TargetLanguage: c.TargetLanguage,
		InputCode:      c.InputCode,
		OutputCode:     c.OutputCode,
		CreatedAt:      c.CreatedAt,
	}
}

// NewSchemaCodeConversion creates a database entity from domain model
func NewSchemaCodeConversion(c *codeconv.CodeConversion) *CodeConversion {
	return &CodeConversion{
		ID:             c.ID,
		UserID:         c.UserID,
		ThreadID:       c.ThreadID,
		SourceLanguage: c.SourceLanguage,
		TargetLanguage: c.TargetLanguage,
		InputCode:      c.InputCode,
		OutputCode:     c.OutputCode,
		CreatedAt:      c.CreatedAt,
	}
}
