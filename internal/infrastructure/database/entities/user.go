package entities

import (
	"time"

	"parley-server/services/chat-api/internal/domain/user"
)

// User mirrors the identity provider subject locally.
type User struct {
	Subject   string    `gorm:"type:text;primaryKey"`
	Email     string    `gorm:"type:text;not null;default:''"`
	Username  string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}

// EtoD converts database entity to domain model
func (u *User) EtoD() *user.User {
	return &user.User{
		Subject:   u.Subject,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewSchemaUser creates a database entity from domain model
func NewSchemaUser(u *user.User) *User {
	return &User{
		Subject:   u.Subject,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
