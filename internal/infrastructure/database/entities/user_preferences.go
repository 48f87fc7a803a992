package entities

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"parley-server/services/chat-api/internal/domain/preferences"
)

// JSONDocument is a custom type for map[string]any stored as JSON
type JSONDocument map[string]any

func (j JSONDocument) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONDocument) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// UserPreferences stores the opaque client settings document.
type UserPreferences struct {
	UserID      string       `gorm:"type:text;primaryKey"`
	Preferences JSONDocument `gorm:"type:jsonb"`
	CreatedAt   time.Time    `gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for UserPreferences.
func (UserPreferences) TableName() string {
	return "user_preferences"
}

// EtoD converts database entity to domain model
func (u *UserPreferences) EtoD() *preferences.UserPreferences {
	return &preferences.UserPreferences{
		UserID:      u.UserID,
		Preferences: u.Preferences,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// NewSchemaUserPreferences creates a database entity from domain model
func NewSchemaUserPreferences(u *preferences.UserPreferences) *UserPreferences {
	return &UserPreferences{
		UserID:      u.UserID,
		Preferences: u.Preferences,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
