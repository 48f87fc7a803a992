package entities

import (
	"time"

	"parley-server/services/chat-api/internal/domain/profile"
)

// UserProfile stores display information keyed by user id.
type UserProfile struct {
	UserID      string    `gorm:"type:text;primaryKey"`
	DisplayName string    `gorm:"type:text;not null;default:''"`
	Bio         string    `gorm:"type:text;not null;default:''"`
	AvatarURL   string    `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for UserProfile.
func (UserProfile) TableName() string {
	return "user_profiles"
}

// EtoD converts database entity to domain model
func (u *UserProfile) EtoD() *profile.UserProfile {
	return &profile.UserProfile{
		UserID:      u.UserID,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// NewSchemaUserProfile creates a database entity from domain model
func NewSchemaUserProfile(u *profile.UserProfile) *UserProfile {
	return &UserProfile{
		UserID:      u.UserID,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
