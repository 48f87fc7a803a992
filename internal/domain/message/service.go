package message

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"parley-server/services/chat-api/internal/domain"
	"parley-server/services/chat-api/internal/domain/attachment"
	"parley-server/services/chat-api/internal/domain/thread"
	"parley-server/services/chat-api/internal/utils/functional"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// CreateParams carries the payload for message creation. ID may be
// empty or malformed; it is normalized to a fresh UUID in that case.
type CreateParams struct {
	ID       string
	ThreadID string
	Role     Role
	Content  string
	Parts    []Part
	Uploads  []attachment.Upload
}

// UpdateOutcome reports the result of a content update. Permission and
// verification failures are outcomes, not errors, so callers can
// branch without unwrapping.
type UpdateOutcome struct {
	Updated              bool
	PermissionDenied     bool
	VerificationMismatch bool
}

// Service implements the message operation contracts.
type Service struct {
	repo        Repository
	threadRepo  thread.Repository
	attachments attachment.Repository
	hydrator    *attachment.Hydrator
	log         zerolog.Logger
}

// NewService creates a message service.
func NewService(
	repo Repository,
	threadRepo thread.Repository,
	attachments attachment.Repository,
	hydrator *attachment.Hydrator,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		threadRepo:  threadRepo,
		attachments: attachments,
		hydrator:    hydrator,
		log:         log.With().Str("component", "message_service").Logger(),
	}
}

// Create stores a message, creating the parent thread when it does not
// exist yet (assistant replies can arrive before the thread row is
// committed). The write is an upsert by id so retries are idempotent.
// Attachment rows are inserted after the message; their failure does
// not roll the message back.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Message, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.ensureThread(ctx, params.ThreadID, userID); err != nil {
		return nil, err
	}

	id := params.ID
	if uuid.Validate(id) != nil {
		id = uuid.NewString()
	}

	role := params.Role
	if role == "" {
		role = RoleUser
	}

	parts := params.Parts
	validUploads := functional.Filter(params.Uploads, attachment.Upload.Valid)
	if len(validUploads) < len(params.Uploads) {
		s.log.Warn().
			Int("skipped", len(params.Uploads)-len(validUploads)).
			Str("message_id", id).
			Msg("skipping uploads without a storage URL")
	}

	var rows []*attachment.FileAttachment
	if len(validUploads) > 0 {
		now := time.Now().UTC()
		rows = functional.Map(validUploads, func(u attachment.Upload) *attachment.FileAttachment {
			att := &attachment.FileAttachment{
				ID:         uuid.NewString(),
				MessageID:  id,
				ThreadID:   params.ThreadID,
				UserID:     userID,
				FileName:   u.FileName,
				FileType:   u.FileType,
				FileSize:   u.FileSize,
				StorageURL: u.URL,
				CreatedAt:  now,
			}
			if u.ThumbnailURL != "" {
				att.ThumbnailURL = &u.ThumbnailURL
			}
			if u.TextContent != "" {
				att.TextContent = &u.TextContent
			}
			return att
		})
		parts = append(parts, FileAttachmentsPart(functional.Map(rows, func(a *attachment.FileAttachment) attachment.Ref {
			ref := attachment.Ref{
				ID:         a.ID,
				FileName:   a.FileName,
				FileType:   a.FileType,
				FileSize:   a.FileSize,
				StorageURL: a.StorageURL,
			}
			if a.ThumbnailURL != nil {
				ref.ThumbnailURL = *a.ThumbnailURL
			}
			if a.TextContent != nil {
				ref.ExtractedText = *a.TextContent
			}
			return ref
		})))
	}

	now := time.Now().UTC()
	msg := &Message{
		ID:        id,
		ThreadID:  params.ThreadID,
		UserID:    userID,
		Role:      role,
		Content:   params.Content,
		Parts:     parts,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, msg); err != nil {
		return nil, err
	}

	for _, row := range rows {
		if err := s.attachments.Insert(ctx, row); err != nil {
			s.log.Warn().
				Err(err).
				Str("message_id", id).
				Str("attachment_id", row.ID).
				Msg("failed to insert attachment, message kept")
		}
	}

	if err := s.threadRepo.TouchLastMessageAt(ctx, params.ThreadID, msg.CreatedAt); err != nil {
		s.log.Warn().
			Err(err).
			Str("thread_id", params.ThreadID).
			Msg("failed to touch thread last message timestamp")
	}

	return msg, nil
}

// ListByThread returns a thread's messages ordered by creation time
// ascending, hydrating attachment content where it is missing.
func (s *Service) ListByThread(ctx context.Context, threadID string) ([]*Message, error) {
	msgs, err := s.repo.ListByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if s.hydrator != nil {
		for _, msg := range msgs {
			for i := range msg.Parts {
				if msg.Parts[i].Type == PartTypeFileAttachments {
					s.hydrator.HydrateRefs(ctx, msg.Parts[i].Attachments)
				}
			}
		}
	}
	return msgs, nil
}

// UpdateContent rewrites a message's content. The caller must own the
// message directly, or own the parent thread when the message is
// assistant-authored. After the write, the row is read back and a
// mismatch is reported instead of trusting the write blindly.
func (s *Service) UpdateContent(ctx context.Context, messageID, content string) (UpdateOutcome, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return UpdateOutcome{}, err
	}

	msg, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		return UpdateOutcome{}, err
	}

	allowed := msg.UserID == userID
	if !allowed && msg.Role == RoleAssistant {
		parent, err := s.threadRepo.FindByID(ctx, msg.ThreadID)
		if err != nil && !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return UpdateOutcome{}, err
		}
		allowed = parent != nil && parent.UserID == userID
	}
	if !allowed {
		s.log.Warn().
			Str("message_id", messageID).
			Str("user_id", userID).
			Msg("content update denied")
		return UpdateOutcome{PermissionDenied: true}, nil
	}

	if err := s.repo.UpdateContent(ctx, messageID, content); err != nil {
		return UpdateOutcome{}, err
	}

	persisted, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		return UpdateOutcome{}, err
	}
	if persisted.Content != content {
		s.log.Error().
			Str("message_id", messageID).
			Msg("persisted content does not match written content")
		return UpdateOutcome{VerificationMismatch: true}, nil
	}

	return UpdateOutcome{Updated: true}, nil
}

// DeleteTrailing removes the thread's messages created after the
// cutoff, used to discard messages past an edit or regeneration point.
func (s *Service) DeleteTrailing(ctx context.Context, threadID string, cutoff time.Time, inclusive bool) (int64, error) {
	userID, err := domain.ResolveCurrentUser(ctx)
	if err != nil {
		return 0, err
	}

	parent, err := s.threadRepo.FindByID(ctx, threadID)
	if err != nil {
		return 0, err
	}
	if parent.UserID != userID {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden,
			"thread is owned by another user",
			nil,
			"delete-trailing-not-owned",
		)
	}

	return s.repo.DeleteTrailing(ctx, threadID, cutoff, inclusive)
}

// ensureThread guarantees the thread row exists before the message
// write. Lookup then insert is not atomic; a concurrent creator is
// tolerated through the duplicate-key conflict on insert.
func (s *Service) ensureThread(ctx context.Context, threadID, userID string) error {
	found, err := s.threadRepo.FindByFilter(ctx, thread.Filter{
		ID:              &threadID,
		UserID:          &userID,
		IncludeArchived: true,
	}, nil)
	if err != nil {
		return err
	}
	if len(found) > 0 {
		return nil
	}

	now := time.Now().UTC()
	err = s.threadRepo.Create(ctx, &thread.Thread{
		ID:            threadID,
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
		LastMessageAt: now,
	})
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			return nil
		}
		return err
	}
	s.log.Info().
		Str("thread_id", threadID).
		Str("user_id", userID).
		Msg("created minimal thread row for incoming message")
	return nil
}
