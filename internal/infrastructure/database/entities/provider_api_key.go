package entities

import "time"

// ProviderAPIKey stores one encrypted provider API key per user.
// Ciphertext is AES-GCM sealed; the plaintext never reaches the table.
type ProviderAPIKey struct {
	UserID     string    `gorm:"type:text;primaryKey"`
	Provider   string    `gorm:"type:text;primaryKey"`
	Ciphertext string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ProviderAPIKey.
func (ProviderAPIKey) TableName() string {
	return "provider_api_keys"
}
