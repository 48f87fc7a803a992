package attachment

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ContentFetcher retrieves the text body behind a storage URL.
type ContentFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Hydrator fills attachment ref content lazily. Refs that already
// carry content or extracted text are left untouched, and individual
// fetch failures never fail the surrounding read.
type Hydrator struct {
	fetcher ContentFetcher
	log     zerolog.Logger
}

// NewHydrator creates a hydrator.
func NewHydrator(fetcher ContentFetcher, log zerolog.Logger) *Hydrator {
	return &Hydrator{fetcher: fetcher, log: log.With().Str("component", "attachment_hydrator").Logger()}
}

// HydrateRefs fetches missing content for every ref in place. Fetches
// run concurrently; a failed fetch logs a warning and leaves the ref
// without content.
func (h *Hydrator) HydrateRefs(ctx context.Context, refs []Ref) {
	if h.fetcher == nil {
		return
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for i := range refs {
		if !refs[i].NeedsContent() {
			continue
		}
		ref := &refs[i]
		group.Go(func() error {
			content, err := h.fetcher.FetchText(groupCtx, ref.StorageURL)
			if err != nil {
				h.log.Warn().
					Err(err).
					Str("attachment_id", ref.ID).
					Str("url", ref.StorageURL).
					Msg("failed to hydrate attachment content")
				return nil
			}
			ref.Content = content
			return nil
		})
	}
	_ = group.Wait()
}
