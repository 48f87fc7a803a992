package attachment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// FileAttachment is one stored file row referencing a message.
type FileAttachment struct {
	ID           string
	MessageID    string
	ThreadID     string
	UserID       string
	FileName     string
	FileType     string
	FileSize     int64
	StorageURL   string
	ThumbnailURL *string
	TextContent  *string
	CreatedAt    time.Time
}

// Upload is the result of a completed storage upload, supplied by the
// caller when creating a message with files.
type Upload struct {
	FileName     string
	FileType     string
	FileSize     int64
	URL          string
	ThumbnailURL string
	TextContent  string
}

// Valid reports whether the upload carries a usable storage URL.
// URL-less uploads are skipped with a warning, not an error.
func (u Upload) Valid() bool {
	return u.URL != ""
}

// Ref is the attachment shape embedded in message parts. Content is
// filled lazily by the hydrator when absent.
type Ref struct {
	ID            string `json:"id,omitempty"`
	FileName      string `json:"file_name,omitempty"`
	FileType      string `json:"file_type,omitempty"`
	FileSize      int64  `json:"file_size,omitempty"`
	StorageURL    string `json:"storage_url,omitempty"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
	Content       string `json:"content,omitempty"`
	ExtractedText string `json:"extracted_text,omitempty"`
}

// NeedsContent reports whether the ref still needs its text fetched.
func (r Ref) NeedsContent() bool {
	return r.Content == "" && r.ExtractedText == "" && r.StorageURL != ""
}

// Repository persists file attachments.
type Repository interface {
	Insert(ctx context.Context, att *FileAttachment) error
	FindByID(ctx context.Context, id string) (*FileAttachment, error)
	ListByMessage(ctx context.Context, messageID string) ([]*FileAttachment, error)
	ListByThread(ctx context.Context, threadID string) ([]*FileAttachment, error)
	ListByUser(ctx context.Context, userID string) ([]*FileAttachment, error)
	Delete(ctx context.Context, id string) error
}

// StorageRemover deletes an object from the backing store by path.
type StorageRemover interface {
	RemoveByPath(ctx context.Context, path string) error
}

// Service provides standalone attachment listing and deletion.
type Service struct {
	repo    Repository
	storage StorageRemover
	log     zerolog.Logger
}

// NewService creates an attachment service.
func NewService(repo Repository, storage StorageRemover, log zerolog.Logger) *Service {
	return &Service{repo: repo, storage: storage, log: log.With().Str("component", "attachment_service").Logger()}
}

// ListMine returns every attachment owned by the current user.
func (s *Service) ListMine(ctx context.Context) ([]*FileAttachment, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// ListByThread returns attachments belonging to a thread.
func (s *Service) ListByThread(ctx context.Context, threadID string) ([]*FileAttachment, error) {
	return s.repo.ListByThread(ctx, threadID)
}

// Get returns one attachment, or nil when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*FileAttachment, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return found, nil
}

// Delete removes the attachment row and its storage object. Storage
// removal failures are logged but do not resurrect the row.
func (s *Service) Delete(ctx context.Context, id string) error {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return err
	}

	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil
		}
		return err
	}
	if found.UserID != userID {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden,
			"attachment is owned by another user",
			nil,
			"attachment-not-owned",
		)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.storage != nil && found.StorageURL != "" {
		if err := s.storage.RemoveByPath(ctx, found.StorageURL); err != nil {
			s.log.Warn().
				Err(err).
				Str("attachment_id", id).
				Str("path", found.StorageURL).
				Msg("failed to remove storage object")
		}
	}
	return nil
}
