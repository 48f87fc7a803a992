package responses

import (
	"time"

	"parley-server/services/chat-api/internal/domain/attachment"
	"parley-server/services/chat-api/internal/domain/codeconv"
	"parley-server/services/chat-api/internal/domain/message"
	"parley-server/services/chat-api/internal/domain/persona"
	"parley-server/services/chat-api/internal/domain/pin"
	"parley-server/services/chat-api/internal/domain/profile"
	"parley-server/services/chat-api/internal/domain/project"
	"parley-server/services/chat-api/internal/domain/share"
	"parley-server/services/chat-api/internal/domain/summary"
	"parley-server/services/chat-api/internal/domain/thread"
)

// ThreadPayload is returned to clients.
type ThreadPayload struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ProjectID     *string   `json:"project_id,omitempty"`
	Archived      bool      `json:"archived"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	LastMessageAt time.Time `json:"last_message_at"`
}

// FromThread maps the domain thread to DTO.
func FromThread(t *thread.Thread) ThreadPayload {
	return ThreadPayload{
		ID:            t.ID,
		Title:         t.Title,
		ProjectID:     t.ProjectID,
		Archived:      t.Archived,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		LastMessageAt: t.LastMessageAt,
	}
}

// FromThreads maps a thread list.
func FromThreads(threads []*thread.Thread) []ThreadPayload {
	out := make([]ThreadPayload, len(threads))
	for i, t := range threads {
		out[i] = FromThread(t)
	}
	return out
}

// MessagePayload is returned to clients.
type MessagePayload struct {
	ID        string         `json:"id"`
	ThreadID  string         `json:"thread_id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Parts     []message.Part `json:"parts,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// FromMessage maps the domain message to DTO.
func FromMessage(m *message.Message) MessagePayload {
	return MessagePayload{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		Role:      string(m.Role),
		Content:   m.Content,
		Parts:     m.Parts,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromMessages maps a message list.
func FromMessages(messages []*message.Message) []MessagePayload {
	out := make([]MessagePayload, len(messages))
	for i, m := range messages {
		out[i] = FromMessage(m)
	}
	return out
}

// AttachmentPayload is returned to clients.
type AttachmentPayload struct {
	ID           string    `json:"id"`
	MessageID    string    `json:"message_id"`
	ThreadID     string    `json:"thread_id"`
	FileName     string    `json:"file_name"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	StorageURL   string    `json:"storage_url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	TextContent  *string   `json:"text_content,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromAttachment maps the domain attachment to DTO.
func FromAttachment(a *attachment.FileAttachment) AttachmentPayload {
	return AttachmentPayload{
		ID:           a.ID,
		MessageID:    a.MessageID,
		ThreadID:     a.ThreadID,
		FileName:     a.FileName,
		FileType:     a.FileType,
		FileSize:     a.FileSize,
		StorageURL:   a.StorageURL,
		ThumbnailURL: a.ThumbnailURL,
		TextContent:  a.TextContent,
		CreatedAt:    a.CreatedAt,
	}
}

// FromAttachments maps an attachment list.
func FromAttachments(attachments []*attachment.FileAttachment) []AttachmentPayload {
	out := make([]AttachmentPayload, len(attachments))
	for i, a := range attachments {
		out[i] = FromAttachment(a)
	}
	return out
}

// SharePayload is the owner view of a share.
type SharePayload struct {
	ID          string     `json:"id"`
	ThreadID    string     `json:"thread_id"`
	Token       string     `json:"token"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsPublic    bool       `json:"is_public"`
	HasPassword bool       `json:"has_password"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	ViewCount   int64      `json:"view_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FromShare maps the domain share to the owner DTO. The password hash
// never leaves the service.
func FromShare(s *share.SharedThread) SharePayload {
	return SharePayload{
		ID:          s.ID,
		ThreadID:    s.ThreadID,
		Token:       s.Token,
		Title:       s.Title,
		Description: s.Description,
		IsPublic:    s.IsPublic,
		HasPassword: s.PasswordHash != nil,
		ExpiresAt:   s.ExpiresAt,
		RevokedAt:   s.RevokedAt,
		ViewCount:   s.ViewCount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromShares maps a share list.
func FromShares(shares []*share.SharedThread) []SharePayload {
	out := make([]SharePayload, len(shares))
	for i, s := range shares {
		out[i] = FromShare(s)
	}
	return out
}

// PublicSharePayload is the unauthenticated view of a share.
type PublicSharePayload struct {
	Token       string    `json:"token"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ViewCount   int64     `json:"view_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromPublicShare maps the domain share to the public DTO.
func FromPublicShare(s *share.SharedThread) PublicSharePayload {
	return PublicSharePayload{
		Token:       s.Token,
		Title:       s.Title,
		Description: s.Description,
		ViewCount:   s.ViewCount,
		CreatedAt:   s.CreatedAt,
	}
}

// PublicMessagePayload is the unauthenticated view of a shared message.
type PublicMessagePayload struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// FromPublicMessages maps shared messages to the public DTO, omitting
// parts and attachment URLs.
func FromPublicMessages(messages []*message.Message) []PublicMessagePayload {
	out := make([]PublicMessagePayload, len(messages))
	for i, m := range messages {
		out[i] = PublicMessagePayload{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return out
}

// ProjectPayload is returned to clients.
type ProjectPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromProject maps the domain project to DTO.
func FromProject(p *project.Project) ProjectPayload {
	return ProjectPayload{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromProjects maps a project list.
func FromProjects(projects []*project.Project) []ProjectPayload {
	out := make([]ProjectPayload, len(projects))
	for i, p := range projects {
		out[i] = FromProject(p)
	}
	return out
}

// PersonaPayload is returned to clients.
type PersonaPayload struct {
	ID           string    `json:"id"`
	ThreadID     string    `json:"thread_id"`
	Name         string    `json:"name"`
	SystemPrompt string    `json:"system_prompt"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromPersona maps the domain persona to DTO.
func FromPersona(p *persona.ThreadPersona) PersonaPayload {
	return PersonaPayload{
		ID:           p.ID,
		ThreadID:     p.ThreadID,
		Name:         p.Name,
		SystemPrompt: p.SystemPrompt,
		CreatedAt:    p.CreatedAt,
	}
}

// PinPayload is returned to clients.
type PinPayload struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	MessageID string    `json:"message_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FromPin maps the domain pin to DTO.
func FromPin(p *pin.PinnedMessage) PinPayload {
	return PinPayload{
		ID:        p.ID,
		ThreadID:  p.ThreadID,
		MessageID: p.MessageID,
		CreatedAt: p.CreatedAt,
	}
}

// FromPins maps a pin list.
func FromPins(pins []*pin.PinnedMessage) []PinPayload {
	out := make([]PinPayload, len(pins))
	for i, p := range pins {
		out[i] = FromPin(p)
	}
	return out
}

// SummaryPayload is returned to clients.
type SummaryPayload struct {
	ThreadID  string    `json:"thread_id"`
	Summary   string    `json:"summary"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromSummary maps the domain summary to DTO.
func FromSummary(s *summary.MessageSummary) SummaryPayload {
	return SummaryPayload{
		ThreadID:  s.ThreadID,
		Summary:   s.Summary,
		Model:     s.Model,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// CodeConversionPayload is returned to clients.
type CodeConversionPayload struct {
	ID             string    `json:"id"`
	ThreadID       *string   `json:"thread_id,omitempty"`
	SourceLanguage string    `json:"source_language"`
	TargetLanguage string    `json:"target_language"`
	InputCode      string    `json:"input_code"`
	OutputCode     string    `json:"output_code"`
	CreatedAt      time.Time `json:"created_at"`
}

// FromCodeConversion maps the domain conversion to DTO.
func FromCodeConversion(c *codeconv.CodeConversion) CodeConversionPayload {
	return CodeConversionPayload{
		ID:             c.ID,
		ThreadID:       c.ThreadID,
		SourceLanguage: c.SourceLanguage,
		TargetLanguage: c.TargetLanguage,
		InputCode:      c.InputCode,
		OutputCode:     c.OutputCode,
		CreatedAt:      c.CreatedAt,
	}
}

// FromCodeConversions maps a conversion list.
func FromCodeConversions(conversions []*codeconv.CodeConversion) []CodeConversionPayload {
	out := make([]CodeConversionPayload, len(conversions))
	for i, c := range conversions {
		out[i] = FromCodeConversion(c)
	}
	return out
}

// ProfilePayload is returned to clients.
type ProfilePayload struct {
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromProfile maps the domain profile to DTO.
func FromProfile(p *profile.UserProfile) ProfilePayload {
	return ProfilePayload{
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
		UpdatedAt:   p.UpdatedAt,
	}
}

// DeletedPayload reports how many rows an operation removed.
type DeletedPayload struct {
	Deleted int64 `json:"deleted"`
}

// StatusPayload reports a simple success outcome.
type StatusPayload struct {
	Status string `json:"status"`
}
