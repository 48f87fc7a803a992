package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"

	"parley-server/services/chat-api/internal/config"
	"parley-server/services/chat-api/internal/domain/share"
	"parley-server/services/chat-api/internal/infrastructure/logger"
	"parley-server/services/chat-api/internal/infrastructure/metrics"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Crontab runs the scheduled maintenance jobs.
type Crontab struct {
	ctab   *crontab.Crontab
	cfg    *config.Config
	shares *share.Service
}

// NewCrontab builds the scheduler.
func NewCrontab(cfg *config.Config, shares *share.Service) *Crontab {
	return &Crontab{
		ctab:   crontab.New(),
		cfg:    cfg,
		shares: shares,
	}
}

// Run revokes expired shares once on start, then hourly, until the
// context ends.
func (c *Crontab) Run(ctx context.Context) error {
	c.revokeExpiredShares(ctx)

	if err := c.ctab.AddJob("0 * * * *", func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), c.jobTimeout())
		defer cancel()
		c.revokeExpiredShares(jobCtx)
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add share revocation job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) jobTimeout() time.Duration {
	if c.cfg.CronJobTimeout > 0 {
		return c.cfg.CronJobTimeout
	}
	return 10 * time.Minute
}

func (c *Crontab) revokeExpiredShares(ctx context.Context) {
	log := logger.GetLogger()

	revoked, err := c.shares.RevokeExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to revoke expired shares")
		return
	}
	if revoked == 0 {
		return
	}

	metrics.RecordSharesRevoked(revoked)
	log.Info().Int64("revoked", revoked).Msg("Revoked expired shares")
}
