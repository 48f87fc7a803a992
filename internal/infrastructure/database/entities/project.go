package entities

import (
	"time"

	"parley-server/services/chat-api/internal/domain/project"
)

// Project groups threads under a user label.
type Project struct {
	ID          string    `gorm:"type:text;primaryKey"`
	UserID      string    `gorm:"type:text;index;not null"`
	Name        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	Color       string    `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Project.
func (Project) TableName() string {
	return "projects"
}

// EtoD converts database entity to domain model
func (p *Project) EtoD() *project.Project {
	return &project.Project{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewSchemaProject creates a database entity from domain model
func NewSchemaProject(p *project.Project) *Project {
	return &Project{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
