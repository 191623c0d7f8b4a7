package crontab

import (
	"context"
	"time"

	"relay-server/services/control-api/internal/config"
	"relay-server/services/control-api/internal/domain/conversation"
	"relay-server/services/control-api/internal/infrastructure/logger"
	"relay-server/services/control-api/internal/infrastructure/metrics"
	"relay-server/services/control-api/internal/utils/platformerrors"

	"github.com/mileusna/crontab"
)

const (
	// CronJobTimeout bounds a single reconciliation run.
	CronJobTimeout = 10 * time.Minute
)

// Crontab runs the conversation reconciliation job: conversations whose
// messages were removed without the parent row going away (a crash between
// the two delete calls) are swept once they have been idle past the cutoff.
type Crontab struct {
	ctab          *crontab.Crontab
	cfg           *config.Config
	conversations conversation.ConversationRepository
	messages      conversation.MessageRepository
}

func NewCrontab(
	cfg *config.Config,
	conversations conversation.ConversationRepository,
	messages conversation.MessageRepository,
) *Crontab {
	return &Crontab{
		ctab:          crontab.New(),
		cfg:           cfg,
		conversations: conversations,
		messages:      messages,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	if c.cfg.CleanupEnabled {
		// execute once on server start
		c.cleanupEmptyConversations(ctx)

		if err := c.ctab.AddJob(c.cfg.CleanupSchedule, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.cleanupEmptyConversations(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add conversation cleanup job")
		}
		log.Info().
			Str("schedule", c.cfg.CleanupSchedule).
			Dur("cutoff", c.cfg.CleanupCutoff).
			Msg("Conversation cleanup scheduled")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) cleanupEmptyConversations(ctx context.Context) {
	log := logger.GetLogger()

	cutoff := time.Now().Add(-c.cfg.CleanupCutoff)
	staleFilter := conversation.ConversationFilter{UpdatedBefore: &cutoff}

	stale, err := c.conversations.FindByFilter(ctx, staleFilter, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list stale conversations")
		metrics.CleanupRunsTotal.WithLabelValues("error").Inc()
		return
	}

	deleted := 0
	for _, conv := range stale {
		count, err := c.messages.CountByConversationID(ctx, conv.ID)
		if err != nil {
			log.Error().Err(err).Str("conversation_id", conv.ID).Msg("Failed to count messages")
			continue
		}
		if count > 0 {
			continue
		}

		if err := c.conversations.Delete(ctx, conv.ID); err != nil {
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
				continue
			}
			log.Error().Err(err).Str("conversation_id", conv.ID).Msg("Failed to delete empty conversation")
			continue
		}
		metrics.RecordConversationDeleted("cleanup")
		metrics.CleanupOrphansDeletedTotal.Inc()
		deleted++
	}

	metrics.CleanupRunsTotal.WithLabelValues("ok").Inc()
	if deleted > 0 {
		log.Info().Int("deleted", deleted).Msg("Removed empty idle conversations")
	}
}
