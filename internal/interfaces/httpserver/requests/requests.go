package requests

import "time"

// CreateThreadRequest creates a thread.
type CreateThreadRequest struct {
	Title     string  `json:"title"`
	ProjectID *string `json:"project_id,omitempty"`
}

// RenameThreadRequest renames a thread.
type RenameThreadRequest struct {
	Title string `json:"title" binding:"required"`
}

// ArchiveThreadRequest toggles the archived flag.
type ArchiveThreadRequest struct {
	Archived bool `json:"archived"`
}

// MoveThreadRequest moves a thread to a project, or out of one when
// project_id is null.
type MoveThreadRequest struct {
	ProjectID *string `json:"project_id"`
}

// AttachmentUploadRequest describes one uploaded file on a message.
type AttachmentUploadRequest struct {
	FileName     string  `json:"file_name"`
	FileType     string  `json:"file_type"`
	FileSize     int64   `json:"file_size"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	TextContent  *string `json:"text_content,omitempty"`
}

// MessagePartRequest is one structured content fragment, discriminated
// by type. Attachment fragments are derived server-side from uploads
// and cannot be submitted directly.
type MessagePartRequest struct {
	Type      string `json:"type" binding:"required,oneof=text reasoning"`
	Text      string `json:"text,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
}

// CreateMessageRequest appends a message to a thread.
type CreateMessageRequest struct {
	ID      string                    `json:"id"`
	Role    string                    `json:"role" binding:"required,oneof=user assistant system"`
	Content string                    `json:"content"`
	Parts   []MessagePartRequest      `json:"parts,omitempty" binding:"omitempty,dive"`
	Uploads []AttachmentUploadRequest `json:"uploads,omitempty"`
}

// UpdateMessageRequest rewrites message content.
type UpdateMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// DeleteTrailingRequest deletes messages after a cutoff.
type DeleteTrailingRequest struct {
	Cutoff    time.Time `json:"cutoff" binding:"required"`
	Inclusive bool      `json:"inclusive"`
}

// CreateShareRequest publishes a thread.
type CreateShareRequest struct {
	ThreadID    string     `json:"thread_id" binding:"required"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsPublic    bool       `json:"is_public"`
	Password    string     `json:"password,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// UpdateShareRequest edits a share. Pointer fields distinguish "leave
// unchanged" from "set empty".
type UpdateShareRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	IsPublic      *bool      `json:"is_public,omitempty"`
	Password      *string    `json:"password,omitempty"`
	ClearPassword bool       `json:"clear_password,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	ClearExpiry   bool       `json:"clear_expiry,omitempty"`
}

// PublicShareRequest carries the password for protected shares.
type PublicShareRequest struct {
	Password string `json:"password"`
}

// CreateProjectRequest creates a project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// UpdateProjectRequest replaces the project fields.
type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// SetPersonaRequest assigns a persona to a thread.
type SetPersonaRequest struct {
	Name         string `json:"name" binding:"required"`
	SystemPrompt string `json:"system_prompt" binding:"required"`
}

// PinMessageRequest pins a message.
type PinMessageRequest struct {
	ThreadID  string `json:"thread_id" binding:"required"`
	MessageID string `json:"message_id" binding:"required"`
}

// SetSummaryRequest stores a summary verbatim.
type SetSummaryRequest struct {
	Summary string `json:"summary" binding:"required"`
	Model   string `json:"model"`
}

// RecordConversionRequest stores a code conversion.
type RecordConversionRequest struct {
	ThreadID       *string `json:"thread_id,omitempty"`
	SourceLanguage string  `json:"source_language" binding:"required"`
	TargetLanguage string  `json:"target_language" binding:"required"`
	InputCode      string  `json:"input_code" binding:"required"`
	OutputCode     string  `json:"output_code"`
}

// SaveProfileRequest writes the user profile.
type SaveProfileRequest struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
}

// SavePreferencesRequest writes the opaque preference document.
type SavePreferencesRequest struct {
	Preferences map[string]any `json:"preferences" binding:"required"`
}

// SaveSettingsRequest submits provider API keys from the settings form.
type SaveSettingsRequest struct {
	OpenAIKey     string `json:"openai_key" validate:"omitempty,min=8"`
	GoogleKey     string `json:"google_key" validate:"omitempty,min=8"`
	OpenRouterKey string `json:"openrouter_key" validate:"omitempty,min=8"`
}
